package get_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/appointy-booking/internal/api/middleware"
	"github.com/m04kA/appointy-booking/internal/service/bookings"
	"github.com/m04kA/appointy-booking/internal/service/bookings/models"
	"github.com/m04kA/appointy-booking/internal/service/ledger"
	"github.com/m04kA/appointy-booking/pkg/logger"
)

type stubService struct {
	resp *models.BookingViewsResponse
	err  error
}

func (s stubService) GetByID(_ context.Context, _ string, _ int64) (*models.BookingViewsResponse, error) {
	return s.resp, s.err
}

func get(h *Handler, userID int64) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}", h.Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/bookings/b-1", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_ConsistencyHeader(t *testing.T) {
	consistent := &models.BookingViewsResponse{
		Booking:    &models.BookingResponse{ID: "b-1", Status: "pending"},
		Consistent: true,
	}
	rec := get(NewHandler(stubService{resp: consistent}, logger.NewNop()), 7)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(HeaderConsistency))

	drifted := &models.BookingViewsResponse{
		Booking: &models.BookingResponse{ID: "b-1", Status: "confirmed"},
		Drift:   []string{ledger.ProjectionProviderRequests, ledger.ProjectionCalendar},
	}
	rec = get(NewHandler(stubService{resp: drifted}, logger.NewNop()), 7)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "drift=provider_requests,user_calendar", rec.Header().Get(HeaderConsistency))
	assert.Contains(t, rec.Body.String(), `"consistent":false`)
}

func TestHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, get(NewHandler(stubService{err: bookings.ErrBookingNotFound}, logger.NewNop()), 7).Code)
	assert.Equal(t, http.StatusForbidden, get(NewHandler(stubService{err: bookings.ErrAccessDenied}, logger.NewNop()), 8).Code)
}
