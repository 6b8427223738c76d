package domain

import (
	"math"
	"time"
)

const daysPerYear = 365

type Item struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Category    string    `db:"category"`
	Condition   string    `db:"condition"`
	Description string    `db:"description"`
	AgeDays     int       `db:"age_days"`
	AgeYears    float64   `db:"age_years"`
	Image       string    `db:"image"`
	DateAdded   int64     `db:"date_added"` // epoch seconds, immutable
	UpdatedAt   time.Time `db:"updated_at"`
}

// ItemPatch carries a partial update; nil fields are left unchanged.
type ItemPatch struct {
	Name        *string
	Category    *string
	Condition   *string
	Description *string
	AgeDays     *int
}

func NewItem(name, category, condition, description string, ageDays int) *Item {
	now := time.Now().UTC()
	item := &Item{
		Name:        name,
		Category:    category,
		Condition:   condition,
		Description: description,
		DateAdded:   now.Unix(),
		UpdatedAt:   now,
	}
	item.SetAgeDays(ageDays)
	return item
}

// SetAgeDays keeps AgeYears in step with AgeDays.
func (i *Item) SetAgeDays(days int) {
	i.AgeDays = days
	i.AgeYears = AgeInYears(days)
}

// Apply copies the non-nil patch fields onto the item and stamps UpdatedAt.
func (i *Item) Apply(p ItemPatch) {
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Category != nil {
		i.Category = *p.Category
	}
	if p.Condition != nil {
		i.Condition = *p.Condition
	}
	if p.Description != nil {
		i.Description = *p.Description
	}
	if p.AgeDays != nil {
		i.SetAgeDays(*p.AgeDays)
	}
	i.UpdatedAt = time.Now().UTC()
}

// AgeInYears rounds days/365 to one decimal place.
func AgeInYears(days int) float64 {
	return math.Round(float64(days)/daysPerYear*10) / 10
}
