package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is a purchasable good, or the synthetic projection of a SubRecipe
// when IsSubRecipe is set.
type Ingredient struct {
	ID          string  `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name        string  `gorm:"not null;index" json:"name"`
	BuyingUnit  string  `gorm:"not null" json:"buyingUnit"`
	BuyingPrice float64 `gorm:"not null;default:0" json:"buyingPrice"`
	YieldAmount float64 `gorm:"not null;default:1" json:"yieldAmount"`
	RecipeUnit  string  `gorm:"not null" json:"recipeUnit"`
	IsSubRecipe bool    `gorm:"not null;default:false" json:"isSubRecipe"`
	// Cost caches the per-unit cost for display; BuyingPrice/YieldAmount is authoritative.
	Cost             float64  `json:"cost"`
	LastInvoicePrice *float64 `json:"lastInvoicePrice,omitempty"`
	LastInvoiceDate  string   `json:"lastInvoiceDate,omitempty"`
	Position         int      `gorm:"not null;default:0" json:"-"`
}

// BeforeCreate assigns a UUID when the record has none.
func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
