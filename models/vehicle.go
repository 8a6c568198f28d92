package models

import "time"

// Vehicle links a registered plate to its owner. PlateNumber is stored in
// canonical form (A-Z, 0-9 only) so recognized plates match directly.
type Vehicle struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PlateNumber string `gorm:"size:32;uniqueIndex;not null"`
	VehicleType string `gorm:"size:64"`
	OwnerID     uint   `gorm:"index;not null"`
	Owner       Owner  `gorm:"foreignKey:OwnerID;references:ID"`
}
