package models

import "time"

// Owner holds vehicle-owner contact data used for fine notices.
// Demo records only; no real personal data is stored.
type Owner struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string    `gorm:"size:255;not null"`
	Email     string    `gorm:"size:255;index"`
	Phone     string    `gorm:"size:64"`
	Vehicles  []Vehicle `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
