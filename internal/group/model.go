// File: internal/group/model.go
package group

import (
	"strings"
	"time"

	"tigerbites_backend/internal/common"
	"tigerbites_backend/internal/user"

	"github.com/google/uuid"
)

// Membership roles. The creator receives RoleLeader at group creation and
// keeps it for the life of the group.
const (
	RoleLeader = "leader"
	RoleMember = "member"
)

// Group is a dining group: a named set of members who may settle on a shared
// restaurant and a meal time.
type Group struct {
	common.BaseModel
	Name                 string     `gorm:"type:text;not null"`
	CreatorID            uuid.UUID  `gorm:"type:uuid;not null"`
	SelectedRestaurantID *uuid.UUID `gorm:"type:uuid"`
	ScheduledMealAt      *time.Time
	Memberships          []Membership `gorm:"foreignKey:GroupID"`
}

// TableName specifies the table name for the Group model.
func (Group) TableName() string {
	return "groups"
}

// Membership links a user to a group with a role. The (group, user) pair is
// unique; join time is the row's CreatedAt.
type Membership struct {
	common.BaseModel
	GroupID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_group_user"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_memberships_group_user"`
	Role    string    `gorm:"type:text;not null"`
	User    user.User `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the Membership model.
func (Membership) TableName() string {
	return "memberships"
}

// --- DTOs ---

// CreateGroupRequest is the payload for creating a group. Clients send the
// group name under "group_name"; the shorter "name" key is accepted too.
type CreateGroupRequest struct {
	GroupName            string     `json:"group_name"`
	Name                 string     `json:"name"`
	SelectedRestaurantID *uuid.UUID `json:"restaurant_id"`
}

// DisplayName returns the requested group name, preferring "group_name"
// over "name", with surrounding whitespace trimmed.
func (r CreateGroupRequest) DisplayName() string {
	if name := strings.TrimSpace(r.GroupName); name != "" {
		return name
	}
	return strings.TrimSpace(r.Name)
}

// AddMemberRequest is the payload for adding a member by netid.
type AddMemberRequest struct {
	NetID string `json:"netid" binding:"required"`
}

// SetMealRequest is the payload for scheduling the group meal. A null
// timestamp clears the schedule.
type SetMealRequest struct {
	ScheduledMealAt *string `json:"scheduled_meal_at"`
}

// MemberResponse defines the member shape inside a group view.
type MemberResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	NetID    string    `json:"netid"`
	FullName string    `json:"fullname"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// GroupResponse defines the group shape sent in API responses. Members are
// ordered by join time.
type GroupResponse struct {
	ID                   uuid.UUID        `json:"id"`
	Name                 string           `json:"name"`
	CreatorID            uuid.UUID        `json:"creator_id"`
	SelectedRestaurantID *uuid.UUID       `json:"restaurant_id"`
	ScheduledMealAt      *time.Time       `json:"scheduled_meal_at"`
	CreatedAt            time.Time        `json:"created_at"`
	Members              []MemberResponse `json:"members"`
}

// ToGroupResponse converts a Group model (with memberships and users
// preloaded) to its DTO.
func ToGroupResponse(g *Group) GroupResponse {
	members := make([]MemberResponse, len(g.Memberships))
	for i, m := range g.Memberships {
		members[i] = MemberResponse{
			UserID:   m.UserID,
			NetID:    m.User.NetID,
			FullName: m.User.FullName,
			Role:     m.Role,
			JoinedAt: m.CreatedAt,
		}
	}
	return GroupResponse{
		ID:                   g.ID,
		Name:                 g.Name,
		CreatorID:            g.CreatorID,
		SelectedRestaurantID: g.SelectedRestaurantID,
		ScheduledMealAt:      g.ScheduledMealAt,
		CreatedAt:            g.CreatedAt,
		Members:              members,
	}
}
