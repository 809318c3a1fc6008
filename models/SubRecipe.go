package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubRecipe is an item manufactured in-house. Each one is mirrored into the
// ingredient list by a derived Ingredient sharing its ID.
type SubRecipe struct {
	ID            string                `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name          string                `gorm:"not null" json:"name"`
	YieldQuantity float64               `gorm:"not null;default:1" json:"yieldQuantity"`
	YieldUnit     string                `gorm:"not null" json:"yieldUnit"`
	Ingredients   []SubRecipeIngredient `gorm:"foreignKey:SubRecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Position      int                   `gorm:"not null;default:0" json:"-"`
}

// BeforeCreate assigns a UUID when the record has none.
func (s *SubRecipe) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// Usages returns the sub-recipe's component lines in order.
func (s SubRecipe) Usages() []Usage {
	out := make([]Usage, 0, len(s.Ingredients))
	for _, line := range s.Ingredients {
		out = append(out, line.Usage)
	}
	return out
}

// SubRecipeLines wraps usages as sub-recipe-owned lines, numbering their positions.
func SubRecipeLines(subRecipeID string, usages []Usage) []SubRecipeIngredient {
	lines := make([]SubRecipeIngredient, 0, len(usages))
	for i, u := range usages {
		lines = append(lines, SubRecipeIngredient{SubRecipeID: subRecipeID, Position: i, Usage: u})
	}
	return lines
}
