// File: internal/user/service_test.go
package user

import (
	"context"
	"testing"

	"tigerbites_backend/internal/cas"
	"tigerbites_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, usr *User) error {
	args := m.Called(ctx, usr)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByNetID(ctx context.Context, netid string) (*User, error) {
	args := m.Called(ctx, netid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) UpsertIdentity(ctx context.Context, usr *User) (*User, error) {
	args := m.Called(ctx, usr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) UpdateFavoriteCuisines(ctx context.Context, netid string, values []string) (*User, error) {
	args := m.Called(ctx, netid, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) UpdateAllergies(ctx context.Context, netid string, values []string) (*User, error) {
	args := m.Called(ctx, netid, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) UpdateDietaryRestrictions(ctx context.Context, netid string, values []string) (*User, error) {
	args := m.Called(ctx, netid, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func TestEnsureFromAssertion_NeverTouchesPreferences(t *testing.T) {
	repo := new(MockRepository)
	stored := &User{NetID: "alice", FavoriteCuisines: []string{"Thai"}}
	stored.ID = uuid.New()
	repo.On("UpsertIdentity", mock.Anything, mock.MatchedBy(func(u *User) bool {
		// Only identity attributes travel into the upsert.
		return u.NetID == "alice" &&
			u.Email == "alice@princeton.edu" &&
			len(u.FavoriteCuisines) == 0 &&
			len(u.Allergies) == 0 &&
			len(u.DietaryRestrictions) == 0
	})).Return(stored, nil)
	svc := NewService(repo, zap.NewNop())

	usr, err := svc.EnsureFromAssertion(context.Background(), &cas.Assertion{
		NetID: "alice",
		Email: "alice@princeton.edu",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", usr.NetID)
	repo.AssertExpectations(t)
}

func TestUpdateProfile_DispatchesFirstPresentField(t *testing.T) {
	repo := new(MockRepository)
	updated := &User{NetID: "alice"}
	repo.On("UpdateFavoriteCuisines", mock.Anything, "alice", []string{"Thai"}).Return(updated, nil)
	svc := NewService(repo, zap.NewNop())

	cuisines := []string{"Thai"}
	_, err := svc.UpdateProfile(context.Background(), "alice", UpdateProfileRequest{
		FavoriteCuisines: &cuisines,
	})

	require.NoError(t, err)
	repo.AssertNotCalled(t, "UpdateAllergies", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProfile_EmptySliceClearsField(t *testing.T) {
	repo := new(MockRepository)
	repo.On("UpdateAllergies", mock.Anything, "alice", []string{}).Return(&User{NetID: "alice"}, nil)
	svc := NewService(repo, zap.NewNop())

	empty := []string{}
	_, err := svc.UpdateProfile(context.Background(), "alice", UpdateProfileRequest{Allergies: &empty})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateProfile_NoFieldsIsBadRequest(t *testing.T) {
	svc := NewService(new(MockRepository), zap.NewNop())

	_, err := svc.UpdateProfile(context.Background(), "alice", UpdateProfileRequest{})

	assert.ErrorIs(t, err, common.ErrBadRequest)
}
