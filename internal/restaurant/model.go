// File: internal/restaurant/model.go
package restaurant

import (
	"tigerbites_backend/internal/common"

	"github.com/google/uuid"
)

// Restaurant represents a campus-area restaurant record. Rows are loaded by
// the catalog import tooling; this service treats them as read-only.
type Restaurant struct {
	common.BaseModel
	Name        string   `gorm:"type:text;not null;uniqueIndex:idx_restaurants_name_location,composite:name_location"`
	Description string   `gorm:"type:text"`
	Location    string   `gorm:"type:text;uniqueIndex:idx_restaurants_name_location,composite:name_location"`
	Hours       string   `gorm:"type:text"`
	Category    string   `gorm:"type:text"`
	AvgPrice    *float64 `gorm:"column:avg_price"`
	Latitude    *float64
	Longitude   *float64
	Picture     string `gorm:"type:text"`
	YelpRating  *float64
	WebsiteURL  string `gorm:"column:website_url;type:text"`
}

// TableName specifies the table name for the Restaurant model.
func (Restaurant) TableName() string {
	return "restaurants"
}

// MenuItem represents a single dish on a restaurant's menu.
type MenuItem struct {
	common.BaseModel
	RestaurantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:text;not null"`
	Description  string    `gorm:"type:text"`
	AvgPrice     *float64  `gorm:"column:avg_price"`
}

// TableName specifies the table name for the MenuItem model.
func (MenuItem) TableName() string {
	return "menu_items"
}

// --- DTOs ---

// RestaurantResponse defines the restaurant shape sent in API responses.
type RestaurantResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Hours       string    `json:"hours"`
	Category    string    `json:"category"`
	AvgPrice    *float64  `json:"avg_price"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Picture     string    `json:"picture"`
	YelpRating  *float64  `json:"yelp_rating"`
	WebsiteURL  string    `json:"website_url"`
}

// MenuItemResponse defines the menu item shape sent in API responses.
type MenuItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	AvgPrice    *float64  `json:"avg_price"`
}

// ToRestaurantResponse converts a Restaurant model to its DTO.
func ToRestaurantResponse(r *Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Location:    r.Location,
		Hours:       r.Hours,
		Category:    r.Category,
		AvgPrice:    r.AvgPrice,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Picture:     r.Picture,
		YelpRating:  r.YelpRating,
		WebsiteURL:  r.WebsiteURL,
	}
}

// ToMenuItemResponse converts a MenuItem model to its DTO.
func ToMenuItemResponse(m *MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		AvgPrice:    m.AvgPrice,
	}
}
