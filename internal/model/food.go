package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Food is a catalog entry with macros for one standard serving.
type Food struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Calories  float64   `gorm:"not null;default:0" json:"calories"`
	Protein   float64   `gorm:"not null;default:0" json:"protein"`
	Fat       float64   `gorm:"not null;default:0" json:"fat"`
	Carbs     float64   `gorm:"not null;default:0" json:"carbs"`
	Fiber     float64   `gorm:"not null;default:0" json:"fiber"`
}

// NormalizeFoodName returns the catalog key for a free-text food name
func NormalizeFoodName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BeforeSave keeps catalog names normalized
func (f *Food) BeforeSave(tx *gorm.DB) error {
	f.Name = NormalizeFoodName(f.Name)
	return nil
}
