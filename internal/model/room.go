package model

import "time"

// Room represents a bookable sub-room within a facility. A booking that carries
// no room id reserves the facility as a whole.
type Room struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	FacilityID int64     `gorm:"index;not null" json:"facilityId"`
	Name       string    `gorm:"size:128;not null" json:"name"`
	Capacity   int       `json:"capacity"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`

	// Associations
	Facility Facility `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
