package transition_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/appointy-booking/internal/api/middleware"
	"github.com/m04kA/appointy-booking/internal/domain"
	"github.com/m04kA/appointy-booking/internal/service/identity"
	"github.com/m04kA/appointy-booking/internal/service/ledger"
	transitionBooking "github.com/m04kA/appointy-booking/internal/usecase/transition_booking"
	"github.com/m04kA/appointy-booking/pkg/logger"
	"github.com/m04kA/appointy-booking/pkg/types"
)

type stubUseCase struct {
	got  *transitionBooking.Request
	resp *transitionBooking.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *transitionBooking.Request) (*transitionBooking.Response, error) {
	s.got = req
	return s.resp, s.err
}

type stubIdentity map[int64]*domain.Identity

func (s stubIdentity) Resolve(_ context.Context, userID int64) (*domain.Identity, error) {
	if id, ok := s[userID]; ok {
		return id, nil
	}
	return nil, identity.ErrUnknownUser
}

func serve(h *Handler, userID int64, path, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}/{action}", h.Handle).Methods(http.MethodPost)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPost, path, nil)
	} else {
		req = httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	}
	if userID != 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Accept(t *testing.T) {
	uc := &stubUseCase{resp: &transitionBooking.Response{
		From: domain.StatusPending,
		Booking: &domain.BookingRecord{
			ID:         "b-1",
			UserID:     7,
			ProviderID: 3,
			Date:       "2099-01-05",
			Time:       types.MustSlotLabel("10:00 AM"),
			Status:     domain.StatusConfirmed,
		},
	}}
	h := NewHandler(uc, stubIdentity{30: {UserID: 30, Role: domain.RoleProvider, ProviderID: 3}}, logger.NewNop())

	rec := serve(h, 30, "/bookings/b-1/accept", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		PreviousStatus string `json:"previousStatus"`
		Booking        struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"booking"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "pending", resp.PreviousStatus)
	assert.Equal(t, "b-1", resp.Booking.ID)
	assert.Equal(t, "confirmed", resp.Booking.Status)

	require.NotNil(t, uc.got)
	assert.Equal(t, "accept", uc.got.Action)
	assert.Equal(t, int64(3), uc.got.Identity.ProviderID)
}

func TestHandler_RescheduleBodyPassedThrough(t *testing.T) {
	uc := &stubUseCase{err: fmt.Errorf("%w: slot taken", transitionBooking.ErrSlotNotAvailable)}
	h := NewHandler(uc, stubIdentity{7: {UserID: 7, Role: domain.RoleUser}}, logger.NewNop())

	rec := serve(h, 7, "/bookings/b-1/reschedule", `{"date":"2099-01-06","time":"11:00 AM"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, "2099-01-06", uc.got.Date)
	assert.Equal(t, "11:00 AM", uc.got.Time)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: domain.NewFieldError("action", "unknown action"), want: http.StatusBadRequest},
		{name: "not found", err: transitionBooking.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "access denied", err: fmt.Errorf("%w: not the owner", domain.ErrAccessDenied), want: http.StatusForbidden},
		{name: "illegal transition", err: fmt.Errorf("%w: cancelled -> confirmed", domain.ErrIllegalTransition), want: http.StatusConflict},
		{name: "concurrent change", err: transitionBooking.ErrConflict, want: http.StatusConflict},
		{name: "projection drift", err: fmt.Errorf("%w: calendar", ledger.ErrConsistencyViolation), want: http.StatusInternalServerError},
		{name: "storage down", err: fmt.Errorf("%w: redis", domain.ErrCollaboratorUnavailable), want: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, stubIdentity{7: {UserID: 7, Role: domain.RoleUser}}, logger.NewNop())
			rec := serve(h, 7, "/bookings/b-1/cancel", "")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandler_Unauthenticated(t *testing.T) {
	h := NewHandler(&stubUseCase{}, stubIdentity{}, logger.NewNop())

	assert.Equal(t, http.StatusUnauthorized, serve(h, 0, "/bookings/b-1/cancel", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, 99, "/bookings/b-1/cancel", "").Code, "unknown user")
	assert.Equal(t, http.StatusBadRequest, serve(h, 99, "/bookings/b-1/cancel", `{"bogus":1}`).Code)
}
