package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/appointy-booking/internal/domain"
	providerRepo "github.com/m04kA/appointy-booking/internal/infra/storage/provider"
	userRepo "github.com/m04kA/appointy-booking/internal/infra/storage/user"
	"github.com/m04kA/appointy-booking/pkg/logger"
)

type stubUsers map[int64]*domain.User

func (s stubUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, userRepo.ErrUserNotFound
}

type stubProviders struct {
	byUser map[int64]*domain.Provider
	err    error
}

func (s stubProviders) GetByUserID(_ context.Context, userID int64) (*domain.Provider, error) {
	if s.err != nil {
		return nil, s.err
	}
	if p, ok := s.byUser[userID]; ok {
		return p, nil
	}
	return nil, providerRepo.ErrProviderNotFound
}

func TestService_Resolve(t *testing.T) {
	users := stubUsers{
		1: {ID: 1, Name: "Dana", Email: "dana@example.com", Role: domain.RoleUser},
		2: {ID: 2, Name: "Dr. Lee", Email: "lee@example.com", Phone: "555", Role: domain.RoleProvider},
		3: {ID: 3, Name: "New Pro", Role: domain.RoleProvider},
	}
	providers := stubProviders{byUser: map[int64]*domain.Provider{2: {ID: 20, UserID: 2}}}
	svc := NewService(users, providers, logger.NewNop())
	ctx := context.Background()

	tests := []struct {
		name         string
		userID       int64
		wantProvider int64
		wantErr      error
	}{
		{name: "plain user", userID: 1},
		{name: "provider with profile", userID: 2, wantProvider: 20},
		{name: "provider role without profile", userID: 3},
		{name: "unknown user", userID: 9, wantErr: ErrUnknownUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Resolve(ctx, tt.userID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.userID, got.UserID)
			assert.Equal(t, tt.wantProvider, got.ProviderID)
			assert.Equal(t, domain.Actor{UserID: tt.userID, ProviderID: tt.wantProvider}, got.Actor())
		})
	}
}

func TestService_Resolve_ProviderLookupFails(t *testing.T) {
	users := stubUsers{2: {ID: 2, Role: domain.RoleProvider}}
	svc := NewService(users, stubProviders{err: errors.New("db down")}, logger.NewNop())

	_, err := svc.Resolve(context.Background(), 2)
	assert.ErrorIs(t, err, ErrInternal)
}
