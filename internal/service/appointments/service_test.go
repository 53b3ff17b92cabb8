package appointments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/appointy-booking/internal/domain"
	providerRepo "github.com/m04kA/appointy-booking/internal/infra/storage/provider"
	"github.com/m04kA/appointy-booking/internal/service/appointments/models"
	"github.com/m04kA/appointy-booking/pkg/logger"
)

type memAppointments struct {
	created []*domain.Appointment
}

func (m *memAppointments) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	a.ID = int64(len(m.created) + 1)
	a.Status = domain.DefaultAppointmentStatus
	m.created = append(m.created, a)
	return a, nil
}

func (m *memAppointments) ListByUserID(_ context.Context, userID int64) ([]*domain.AppointmentDetails, error) {
	var out []*domain.AppointmentDetails
	for _, a := range m.created {
		if a.UserID == userID {
			out = append(out, &domain.AppointmentDetails{Appointment: *a, ProviderName: "Dr. Lee"})
		}
	}
	return out, nil
}

type stubProviders map[int64]*domain.Provider

func (s stubProviders) GetByID(_ context.Context, id int64) (*domain.Provider, error) {
	if p, ok := s[id]; ok {
		return p, nil
	}
	return nil, providerRepo.ErrProviderNotFound
}

func TestService_Create(t *testing.T) {
	repo := &memAppointments{}
	svc := NewService(repo, stubProviders{3: {ID: 3}}, logger.NewNop())
	ctx := context.Background()

	resp, err := svc.Create(ctx, &models.CreateAppointmentRequest{
		RequesterID: 7, UserID: 7, ProviderID: 3, ServiceType: "doctors",
		AppointmentDate: "2025-10-20", AppointmentTime: "2:00 PM",
	})
	require.NoError(t, err)
	assert.Equal(t, "14:00", resp.AppointmentTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "scheduled", resp.Status)

	list, err := svc.ListByUser(ctx, 7, 7)
	require.NoError(t, err)
	require.Len(t, list.Appointments, 1)
	assert.Equal(t, "Dr. Lee", list.Appointments[0].ProviderName)
}

func TestService_Create_Errors(t *testing.T) {
	svc := NewService(&memAppointments{}, stubProviders{3: {ID: 3}}, logger.NewNop())
	ctx := context.Background()

	base := models.CreateAppointmentRequest{
		RequesterID: 7, UserID: 7, ProviderID: 3, ServiceType: "doctors",
		AppointmentDate: "2025-10-20", AppointmentTime: "09:30",
	}

	tests := []struct {
		name    string
		mutate  func(r *models.CreateAppointmentRequest)
		wantErr error
	}{
		{name: "missing service", mutate: func(r *models.CreateAppointmentRequest) { r.ServiceType = "" }, wantErr: ErrInvalidInput},
		{name: "bad date", mutate: func(r *models.CreateAppointmentRequest) { r.AppointmentDate = "20.10.2025" }, wantErr: ErrInvalidInput},
		{name: "bad time", mutate: func(r *models.CreateAppointmentRequest) { r.AppointmentTime = "noon" }, wantErr: ErrInvalidInput},
		{name: "other user", mutate: func(r *models.CreateAppointmentRequest) { r.RequesterID = 8 }, wantErr: ErrAccessDenied},
		{name: "unknown provider", mutate: func(r *models.CreateAppointmentRequest) { r.ProviderID = 99 }, wantErr: ErrProviderNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			_, err := svc.Create(ctx, &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := svc.ListByUser(ctx, 7, 8)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
