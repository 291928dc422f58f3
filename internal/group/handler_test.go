// File: internal/group/handler_test.go
package group

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tigerbites_backend/internal/common"
	"tigerbites_backend/internal/preference"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) CreateGroup(ctx context.Context, creatorID uuid.UUID, req CreateGroupRequest) (*Group, error) {
	args := m.Called(ctx, creatorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Group), args.Error(1)
}

func (m *MockGroupService) GetGroup(ctx context.Context, callerID, groupID uuid.UUID) (*Group, error) {
	args := m.Called(ctx, callerID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Group), args.Error(1)
}

func (m *MockGroupService) ListGroupsForUser(ctx context.Context, userID uuid.UUID) ([]Group, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Group), args.Error(1)
}

func (m *MockGroupService) DeleteGroup(ctx context.Context, callerID, groupID uuid.UUID) error {
	args := m.Called(ctx, callerID, groupID)
	return args.Error(0)
}

func (m *MockGroupService) AddMember(ctx context.Context, callerID, groupID uuid.UUID, netid string) (*Group, error) {
	args := m.Called(ctx, callerID, groupID, netid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Group), args.Error(1)
}

func (m *MockGroupService) RemoveMember(ctx context.Context, callerID, groupID uuid.UUID, netid string) (*Group, error) {
	args := m.Called(ctx, callerID, groupID, netid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Group), args.Error(1)
}

func (m *MockGroupService) SetSelectedRestaurant(ctx context.Context, callerID, groupID uuid.UUID, restaurantID *uuid.UUID) (*Group, error) {
	args := m.Called(ctx, callerID, groupID, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Group), args.Error(1)
}

func (m *MockGroupService) SetScheduledMeal(ctx context.Context, callerID, groupID uuid.UUID, mealAt *time.Time) (*Group, error) {
	args := m.Called(ctx, callerID, groupID, mealAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Group), args.Error(1)
}

func (m *MockGroupService) GetGroupPreferences(ctx context.Context, callerID, groupID uuid.UUID) (preference.Snapshot, error) {
	args := m.Called(ctx, callerID, groupID)
	return args.Get(0).(preference.Snapshot), args.Error(1)
}

func stubIdentity(identity *common.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(common.IdentityKey, identity)
		c.Next()
	}
}

func setupHandlerRouter(svc Service, identity *common.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(svc, testConfig(), zap.NewNop())
	handler.RegisterRoutes(router.Group("/api"), stubIdentity(identity))
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

// A member payload without a netid is rejected by input validation before
// the service is consulted.
func TestAddMemberHandler_MissingNetIDFailsValidation(t *testing.T) {
	svc := new(MockGroupService)
	router := setupHandlerRouter(svc, &common.Identity{UserID: uuid.New(), NetID: "alice"})

	w := postJSON(router, "/api/groups/"+uuid.NewString()+"/members", `{}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.Equal(t, "The netid field is required.", body.Details["NetID"])
	svc.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// The create endpoint reads the group name from the "group_name" key.
func TestCreateGroupHandler_BindsGroupNameKey(t *testing.T) {
	alice := testUser("alice")
	created := groupWithMembers(alice)

	svc := new(MockGroupService)
	svc.On("CreateGroup", mock.Anything, alice.ID, mock.MatchedBy(func(req CreateGroupRequest) bool {
		return req.DisplayName() == "Dinner Squad"
	})).Return(created, nil)

	router := setupHandlerRouter(svc, &common.Identity{UserID: alice.ID, NetID: "alice"})

	w := postJSON(router, "/api/groups", `{"group_name": "Dinner Squad"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}
