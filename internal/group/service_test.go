// File: internal/group/service_test.go
package group

import (
	"context"
	"testing"
	"time"

	"tigerbites_backend/internal/cas"
	"tigerbites_backend/internal/common"
	"tigerbites_backend/internal/config"
	"tigerbites_backend/internal/restaurant"
	"tigerbites_backend/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, groupModel *Group) error {
	args := m.Called(ctx, groupModel)
	return args.Error(0)
}

func (m *MockRepository) FindByIDWithMembers(ctx context.Context, id uuid.UUID) (*Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Group), args.Error(1)
}

func (m *MockRepository) FindGroupsForUser(ctx context.Context, userID uuid.UUID) ([]Group, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Group), args.Error(1)
}

func (m *MockRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

func (m *MockRepository) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) UpdateSelectedRestaurant(ctx context.Context, id uuid.UUID, restaurantID *uuid.UUID) error {
	args := m.Called(ctx, id, restaurantID)
	return args.Error(0)
}

func (m *MockRepository) UpdateScheduledMeal(ctx context.Context, id uuid.UUID, mealAt *time.Time) error {
	args := m.Called(ctx, id, mealAt)
	return args.Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) GetByNetID(ctx context.Context, netid string) (*user.User, error) {
	args := m.Called(ctx, netid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) EnsureFromAssertion(ctx context.Context, assertion *cas.Assertion) (*user.User, error) {
	args := m.Called(ctx, assertion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, netid string, req user.UpdateProfileRequest) (*user.User, error) {
	args := m.Called(ctx, netid, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockRestaurantService struct {
	mock.Mock
}

func (m *MockRestaurantService) GetAll(ctx context.Context) ([]restaurant.Restaurant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]restaurant.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) GetByID(ctx context.Context, id uuid.UUID) (*restaurant.Restaurant, []restaurant.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*restaurant.Restaurant), args.Get(1).([]restaurant.MenuItem), args.Error(2)
}

func (m *MockRestaurantService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRestaurantService) Search(ctx context.Context, name, category string) ([]restaurant.Restaurant, error) {
	args := m.Called(ctx, name, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]restaurant.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Helpers ---

func testConfig() *config.Config {
	return &config.Config{
		AddMemberPolicy:    config.PolicyAnyMember,
		RemoveMemberPolicy: config.PolicyAnyMember,
	}
}

func newTestService(repo *MockRepository, userSvc *MockUserService, restaurantSvc *MockRestaurantService, cfg *config.Config) Service {
	return NewService(repo, userSvc, restaurantSvc, cfg, zap.NewNop())
}

func testUser(netid string) *user.User {
	u := &user.User{NetID: netid, FullName: netid}
	u.ID = uuid.New()
	return u
}

func groupWithMembers(leader *user.User, members ...*user.User) *Group {
	g := &Group{Name: "Lunch Crew", CreatorID: leader.ID}
	g.ID = uuid.New()
	g.Memberships = []Membership{{
		GroupID: g.ID,
		UserID:  leader.ID,
		Role:    RoleLeader,
		User:    *leader,
	}}
	for _, m := range members {
		g.Memberships = append(g.Memberships, Membership{
			GroupID: g.ID,
			UserID:  m.ID,
			Role:    RoleMember,
			User:    *m,
		})
	}
	return g
}

// --- Tests ---

func TestCreateGroup_RequiresName(t *testing.T) {
	svc := newTestService(new(MockRepository), new(MockUserService), new(MockRestaurantService), testConfig())

	_, err := svc.CreateGroup(context.Background(), uuid.New(), CreateGroupRequest{Name: "   "})

	assert.ErrorIs(t, err, common.ErrBadRequest)
}

// A missing creator is a bad request at creation time, not a missing
// resource.
func TestCreateGroup_CreatorNotFoundIsBadRequest(t *testing.T) {
	userSvc := new(MockUserService)
	creatorID := uuid.New()
	userSvc.On("GetByID", mock.Anything, creatorID).Return(nil, common.ErrNotFound)
	svc := newTestService(new(MockRepository), userSvc, new(MockRestaurantService), testConfig())

	_, err := svc.CreateGroup(context.Background(), creatorID, CreateGroupRequest{Name: "Lunch Crew"})

	assert.ErrorIs(t, err, common.ErrBadRequest)
	assert.NotErrorIs(t, err, common.ErrNotFound)
}

func TestCreateGroup_RestaurantNotFoundIsBadRequest(t *testing.T) {
	alice := testUser("alice")
	userSvc := new(MockUserService)
	userSvc.On("GetByID", mock.Anything, alice.ID).Return(alice, nil)
	restaurantSvc := new(MockRestaurantService)
	restaurantID := uuid.New()
	restaurantSvc.On("Exists", mock.Anything, restaurantID).Return(false, nil)
	repo := new(MockRepository)
	svc := newTestService(repo, userSvc, restaurantSvc, testConfig())

	_, err := svc.CreateGroup(context.Background(), alice.ID, CreateGroupRequest{
		Name:                 "Lunch Crew",
		SelectedRestaurantID: &restaurantID,
	})

	assert.ErrorIs(t, err, common.ErrBadRequest)
	assert.NotErrorIs(t, err, common.ErrNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateGroup_Success(t *testing.T) {
	alice := testUser("alice")
	userSvc := new(MockUserService)
	userSvc.On("GetByID", mock.Anything, alice.ID).Return(alice, nil)

	created := groupWithMembers(alice)
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*group.Group")).Run(func(args mock.Arguments) {
		args.Get(1).(*Group).ID = created.ID
	}).Return(nil)
	repo.On("FindByIDWithMembers", mock.Anything, created.ID).Return(created, nil)

	svc := newTestService(repo, userSvc, new(MockRestaurantService), testConfig())

	groupModel, err := svc.CreateGroup(context.Background(), alice.ID, CreateGroupRequest{Name: "Lunch Crew"})

	require.NoError(t, err)
	require.Len(t, groupModel.Memberships, 1)
	assert.Equal(t, RoleLeader, groupModel.Memberships[0].Role)
	assert.Equal(t, alice.ID, groupModel.Memberships[0].UserID)
	repo.AssertExpectations(t)
}

// Clients send the name under "group_name"; it wins over "name" when both
// are present.
func TestCreateGroup_GroupNameKeyPreferred(t *testing.T) {
	alice := testUser("alice")
	userSvc := new(MockUserService)
	userSvc.On("GetByID", mock.Anything, alice.ID).Return(alice, nil)

	created := groupWithMembers(alice)
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*group.Group")).Run(func(args mock.Arguments) {
		saved := args.Get(1).(*Group)
		assert.Equal(t, "Dinner Squad", saved.Name)
		saved.ID = created.ID
	}).Return(nil)
	repo.On("FindByIDWithMembers", mock.Anything, created.ID).Return(created, nil)

	svc := newTestService(repo, userSvc, new(MockRestaurantService), testConfig())

	_, err := svc.CreateGroup(context.Background(), alice.ID, CreateGroupRequest{
		GroupName: " Dinner Squad ",
		Name:      "ignored",
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetGroup_NotFoundPrecedesForbidden(t *testing.T) {
	repo := new(MockRepository)
	groupID := uuid.New()
	repo.On("FindByIDWithMembers", mock.Anything, groupID).
		Return(nil, common.ErrNotFound.WithDetails("Group not found."))
	svc := newTestService(repo, new(MockUserService), new(MockRestaurantService), testConfig())

	_, err := svc.GetGroup(context.Background(), uuid.New(), groupID)

	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetGroup_NonMemberForbidden(t *testing.T) {
	alice := testUser("alice")
	g := groupWithMembers(alice)
	repo := new(MockRepository)
	repo.On("FindByIDWithMembers", mock.Anything, g.ID).Return(g, nil)
	svc := newTestService(repo, new(MockUserService), new(MockRestaurantService), testConfig())

	_, err := svc.GetGroup(context.Background(), uuid.New(), g.ID)

	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestAddMember_TargetNotFound(t *testing.T) {
	alice := testUser("alice")
	g := groupWithMembers(alice)
	repo := new(MockRepository)
	repo.On("FindByIDWithMembers", mock.Anything, g.ID).Return(g, nil)
	userSvc := new(MockUserService)
	userSvc.On("GetByNetID", mock.Anything, "ghost").
		Return(nil, common.ErrNotFound.WithDetails("User not found."))
	svc := newTestService(repo, userSvc, new(MockRestaurantService), testConfig())

	_, err := svc.AddMember(context.Background(), alice.ID, g.ID, "ghost")

	assert.ErrorIs(t, err, common.ErrNotFound)
	repo.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddMember_LeaderOnlyPolicyRejectsMember(t *testing.T) {
	alice := testUser("alice")
	bob := testUser("bob")
	g := groupWithMembers(alice, bob)
	repo := new(MockRepository)
	repo.On("FindByIDWithMembers", mock.Anything, g.ID).Return(g, nil)
	cfg := testConfig()
	cfg.AddMemberPolicy = config.PolicyLeaderOnly
	svc := newTestService(repo, new(MockUserService), new(MockRestaurantService), cfg)

	_, err := svc.AddMember(context.Background(), bob.ID, g.ID, "carol")

	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestRemoveMember_LeaderAlwaysRejected(t *testing.T) {
	alice := testUser("alice")
	bob := testUser("bob")
	g := groupWithMembers(alice, bob)
	repo := new(MockRepository)
	repo.On("FindByIDWithMembers", mock.Anything, g.ID).Return(g, nil)
	userSvc := new(MockUserService)
	userSvc.On("GetByNetID", mock.Anything, "alice").Return(alice, nil)
	svc := newTestService(repo, userSvc, new(MockRestaurantService), testConfig())

	// Even the leader removing themselves is rejected.
	for _, caller := range []uuid.UUID{alice.ID, bob.ID} {
		_, err := svc.RemoveMember(context.Background(), caller, g.ID, "alice")
		assert.ErrorIs(t, err, common.ErrInvalidOperation)
	}
	repo.AssertNotCalled(t, "RemoveMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveMember_Success(t *testing.T) {
	alice := testUser("alice")
	bob := testUser("bob")
	g := groupWithMembers(alice, bob)
	repo := new(MockRepository)
	repo.On("FindByIDWithMembers", mock.Anything, g.ID).Return(g, nil)
	repo.On("RemoveMember", mock.Anything, g.ID, bob.ID).Return(nil)
	userSvc := new(MockUserService)
	userSvc.On("GetByNetID", mock.Anything, "bob").Return(bob, nil)
	svc := newTestService(repo, userSvc, new(MockRestaurantService), testConfig())

	_, err := svc.RemoveMember(context.Background(), alice.ID, g.ID, "bob")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSetSelectedRestaurant_NonexistentLeavesStoreUntouched(t *testing.T) {
	alice := testUser("alice")
	g := groupWithMembers(alice)
	repo := new(MockRepository)
	repo.On("FindByIDWithMembers", mock.Anything, g.ID).Return(g, nil)
	restaurantSvc := new(MockRestaurantService)
	restaurantID := uuid.New()
	restaurantSvc.On("Exists", mock.Anything, restaurantID).Return(false, nil)
	svc := newTestService(repo, new(MockUserService), restaurantSvc, testConfig())

	_, err := svc.SetSelectedRestaurant(context.Background(), alice.ID, g.ID, &restaurantID)

	assert.ErrorIs(t, err, common.ErrNotFound)
	repo.AssertNotCalled(t, "UpdateSelectedRestaurant", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetSelectedRestaurant_ClearWithNull(t *testing.T) {
	alice := testUser("alice")
	g := groupWithMembers(alice)
	repo := new(MockRepository)
	repo.On("FindByIDWithMembers", mock.Anything, g.ID).Return(g, nil)
	repo.On("UpdateSelectedRestaurant", mock.Anything, g.ID, (*uuid.UUID)(nil)).Return(nil)
	svc := newTestService(repo, new(MockUserService), new(MockRestaurantService), testConfig())

	_, err := svc.SetSelectedRestaurant(context.Background(), alice.ID, g.ID, nil)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestGetGroupPreferences_AggregatesMemberProfiles(t *testing.T) {
	alice := testUser("alice")
	alice.FavoriteCuisines = []string{"Italian"}
	alice.Allergies = []string{"Peanuts"}
	bob := testUser("bob")
	bob.FavoriteCuisines = []string{"italian ", "Thai"}
	bob.DietaryRestrictions = []string{"vegetarian"}
	g := groupWithMembers(alice, bob)
	repo := new(MockRepository)
	repo.On("FindByIDWithMembers", mock.Anything, g.ID).Return(g, nil)
	svc := newTestService(repo, new(MockUserService), new(MockRestaurantService), testConfig())

	snapshot, err := svc.GetGroupPreferences(context.Background(), bob.ID, g.ID)

	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.CuisineCounts["Italian"])
	assert.Equal(t, []string{"Italian", "Thai"}, snapshot.RecommendedCuisines)
	assert.Equal(t, []string{"Vegetarian"}, snapshot.DietaryRestrictions)
	assert.Equal(t, []string{"Peanuts"}, snapshot.Allergies)
}

func TestDeleteGroup_NonMemberForbidden(t *testing.T) {
	alice := testUser("alice")
	g := groupWithMembers(alice)
	repo := new(MockRepository)
	repo.On("FindByIDWithMembers", mock.Anything, g.ID).Return(g, nil)
	svc := newTestService(repo, new(MockUserService), new(MockRestaurantService), testConfig())

	err := svc.DeleteGroup(context.Background(), uuid.New(), g.ID)

	assert.ErrorIs(t, err, common.ErrForbidden)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteGroup_Success(t *testing.T) {
	alice := testUser("alice")
	g := groupWithMembers(alice)
	repo := new(MockRepository)
	repo.On("FindByIDWithMembers", mock.Anything, g.ID).Return(g, nil)
	repo.On("Delete", mock.Anything, g.ID).Return(nil)
	svc := newTestService(repo, new(MockUserService), new(MockRestaurantService), testConfig())

	err := svc.DeleteGroup(context.Background(), alice.ID, g.ID)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
