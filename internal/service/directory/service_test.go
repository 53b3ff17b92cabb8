package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/appointy-booking/internal/domain"
	providerRepo "github.com/m04kA/appointy-booking/internal/infra/storage/provider"
	"github.com/m04kA/appointy-booking/pkg/logger"
)

type stubServices struct {
	items []*domain.Service
	err   error
}

func (s stubServices) List(context.Context) ([]*domain.Service, error) {
	return s.items, s.err
}

type stubProviders []*domain.Provider

func (s stubProviders) GetByID(_ context.Context, id int64) (*domain.Provider, error) {
	for _, p := range s {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, providerRepo.ErrProviderNotFound
}

func (s stubProviders) ListByServiceType(_ context.Context, serviceType string) ([]*domain.Provider, error) {
	var out []*domain.Provider
	for _, p := range s {
		if p.ServiceType == serviceType {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s stubProviders) SetAvailable(_ context.Context, id int64, available bool) error {
	for _, p := range s {
		if p.ID == id {
			p.Available = available
			return nil
		}
	}
	return providerRepo.ErrProviderNotFound
}

func newTestService(services stubServices) *Service {
	providers := stubProviders{
		{ID: 1, UserID: 10, Name: "Dr. Lee", ServiceType: "doctors", Available: true, AverageRating: 4.5, ReviewCount: 2},
		{ID: 2, Name: "Ann Law", ServiceType: "lawyers", ServicesOffered: []string{"Contracts"}},
	}
	return NewService(services, providers, logger.NewNop())
}

func TestService_ListServices(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(stubServices{items: []*domain.Service{{ID: 1, Name: "Doctors", Category: "health"}}})
	resp, err := svc.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "Doctors", resp[0].Name)

	svc = newTestService(stubServices{err: errors.New("db down")})
	_, err = svc.ListServices(ctx)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_ListProviders(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(stubServices{})

	resp, err := svc.ListProviders(ctx, " doctors ")
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, 4.5, resp[0].AverageRating)
	assert.Equal(t, []string{}, resp[0].ServicesOffered)

	resp, err = svc.ListProviders(ctx, "salons")
	require.NoError(t, err)
	assert.Empty(t, resp)

	_, err = svc.ListProviders(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetProvider(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(stubServices{})

	p, err := svc.GetProvider(ctx, 2)
	require.NoError(t, err)
	assert.True(t, p.Offers("contracts"))

	_, err = svc.GetProvider(ctx, 9)
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestService_SetAvailability(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(stubServices{})

	resp, err := svc.SetAvailability(ctx, 1, 10, false)
	require.NoError(t, err)
	assert.False(t, resp.Available)

	p, err := svc.GetProvider(ctx, 1)
	require.NoError(t, err)
	assert.False(t, p.Available)

	_, err = svc.SetAvailability(ctx, 1, 99, true)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.SetAvailability(ctx, 404, 10, true)
	assert.ErrorIs(t, err, ErrProviderNotFound)
}
