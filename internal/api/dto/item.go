package dto

import "time"

// CreateItemRequest binds from JSON or from a multipart form that may also
// carry an image in the "file" field.
type CreateItemRequest struct {
	Name        string `json:"name" form:"name"`
	Category    string `json:"category" form:"category"`
	Condition   string `json:"condition" form:"condition"`
	Description string `json:"description" form:"description"`
	AgeDays     int    `json:"age_days" form:"age_days"`
}

// UpdateItemRequest is a partial update; omitted fields are unchanged.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Condition   *string `json:"condition"`
	Description *string `json:"description"`
	AgeDays     *int    `json:"age_days"`
}

type ItemResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Condition   string    `json:"condition"`
	Description string    `json:"description"`
	AgeDays     int       `json:"age_days"`
	AgeYears    float64   `json:"age_years"`
	Image       string    `json:"image,omitempty"`
	DateAdded   int64     `json:"date_added"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
