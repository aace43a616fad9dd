package entity

import "time"

// Club is owned by the user that created it. Deleting a club only clears
// the Active flag, the row itself is kept.
type Club struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	OwnerID     uint `gorm:"not null"`
	Owner       User
	Name        string `gorm:"not null"`
	Website     string
	Description string
	Location    string
	Latitude    float64
	Longitude   float64
	Active      bool `gorm:"default:true"`
}
