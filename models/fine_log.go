package models

import "time"

// FineLog records one processed violation: the recognized plate, the resolved
// fine and whether a notice email went out. OCRConf is nil when the
// recognizer produced no confidence for the reading.
type FineLog struct {
	ID            uint `gorm:"primaryKey"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Plate         string `gorm:"size:32;index;not null"`
	ViolationType string `gorm:"size:64;not null"`
	FineAmount    int    `gorm:"not null"`
	IsFined       bool   `gorm:"not null"`
	OCRText       string `gorm:"size:64"`
	OCRConf       *float64
	EmailSent     bool `gorm:"default:false"`
}
