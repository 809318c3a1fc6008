package models

// Usage is one line of a recipe: a quantity of an ingredient, expressed in
// the ingredient's recipe unit. IngredientID is a lookup key, not ownership.
type Usage struct {
	IngredientID string  `gorm:"not null;index" json:"ingredientId"`
	Quantity     float64 `gorm:"not null" json:"quantity"`
	Unit         string  `json:"unit"`
}

// DishIngredient is a usage line owned by a Dish.
type DishIngredient struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	DishID   string `gorm:"not null;index" json:"-"`
	Position int    `gorm:"not null;default:0" json:"-"`
	Usage    `gorm:"embedded"`
}

// SubRecipeIngredient is a usage line owned by a SubRecipe.
type SubRecipeIngredient struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	SubRecipeID string `gorm:"not null;index" json:"-"`
	Position    int    `gorm:"not null;default:0" json:"-"`
	Usage       `gorm:"embedded"`
}
