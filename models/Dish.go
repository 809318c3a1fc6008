package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dish is a menu item with its recipe.
type Dish struct {
	ID          string           `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name        string           `gorm:"not null" json:"name"`
	Section     Section          `gorm:"type:varchar(32);not null;default:Mains" json:"section"`
	MenuPrice   float64          `gorm:"not null;default:0" json:"menuPrice"`
	Description string           `gorm:"type:text" json:"description,omitempty"`
	Ingredients []DishIngredient `gorm:"foreignKey:DishID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Position    int              `gorm:"not null;default:0" json:"-"`
}

// BeforeCreate assigns a UUID when the record has none.
func (d *Dish) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// Usages returns the dish's recipe lines in order.
func (d Dish) Usages() []Usage {
	out := make([]Usage, 0, len(d.Ingredients))
	for _, line := range d.Ingredients {
		out = append(out, line.Usage)
	}
	return out
}

// DishLines wraps usages as dish-owned lines, numbering their positions.
func DishLines(dishID string, usages []Usage) []DishIngredient {
	lines := make([]DishIngredient, 0, len(usages))
	for i, u := range usages {
		lines = append(lines, DishIngredient{DishID: dishID, Position: i, Usage: u})
	}
	return lines
}
