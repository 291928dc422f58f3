// File: internal/user/model.go
package user

import (
	"tigerbites_backend/internal/common"

	"github.com/lib/pq"
)

// User represents the user model in the database. A row is created on first
// successful CAS login and never hard-deleted.
type User struct {
	common.BaseModel
	NetID               string         `gorm:"column:netid;type:varchar(64);not null;uniqueIndex:idx_users_netid"`
	Email               string         `gorm:"type:varchar(255)"`
	FirstName           string         `gorm:"column:firstname;type:varchar(100)"`
	FullName            string         `gorm:"column:fullname;type:varchar(255)"`
	FavoriteCuisines    pq.StringArray `gorm:"column:favorite_cuisine;type:text[]"`
	Allergies           pq.StringArray `gorm:"column:allergies;type:text[]"`
	DietaryRestrictions pq.StringArray `gorm:"column:dietary_restrictions;type:text[]"`
	IsAdmin             bool           `gorm:"column:admin_status;not null;default:false"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// ToIdentity converts a user record into the resolved caller identity
// carried through the request context.
func (u *User) ToIdentity() *common.Identity {
	return &common.Identity{
		UserID:    u.ID,
		NetID:     u.NetID,
		Email:     u.Email,
		FirstName: u.FirstName,
		FullName:  u.FullName,
		IsAdmin:   u.IsAdmin,
	}
}

// --- DTOs ---

// ProfileResponse mirrors the JSON shape the frontend consumes.
type ProfileResponse struct {
	Username            string   `json:"username"`
	FirstName           string   `json:"firstname"`
	FullName            string   `json:"fullname"`
	Email               string   `json:"email"`
	FavoriteCuisines    []string `json:"favorite_cuisine"`
	Allergies           []string `json:"allergies"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	IsAdmin             bool     `json:"admin_status"`
}

// ToProfileResponse converts a User model to a ProfileResponse DTO.
// Array fields are materialized so absent preferences serialize as [] and
// not null.
func ToProfileResponse(u *User) ProfileResponse {
	return ProfileResponse{
		Username:            u.NetID,
		FirstName:           u.FirstName,
		FullName:            u.FullName,
		Email:               u.Email,
		FavoriteCuisines:    emptyIfNil(u.FavoriteCuisines),
		Allergies:           emptyIfNil(u.Allergies),
		DietaryRestrictions: emptyIfNil(u.DietaryRestrictions),
		IsAdmin:             u.IsAdmin,
	}
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// UpdateProfileRequest carries a preference update. Exactly one field class
// is applied per call; the first non-nil field wins, matching the original
// API's behavior.
type UpdateProfileRequest struct {
	FavoriteCuisines    *[]string `json:"favorite_cuisine,omitempty"`
	Allergies           *[]string `json:"allergies,omitempty"`
	DietaryRestrictions *[]string `json:"dietary_restrictions,omitempty"`
}
