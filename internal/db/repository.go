package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"chaoscatering/internal/workspace"
	"chaoscatering/models"
)

var _ workspace.Repository = (*Repository)(nil)

// Repository stores workspace checkpoints. Each Save replaces the stored
// kitchen wholesale inside one transaction.
type Repository struct {
	db *gorm.DB
}

// NewRepository wraps an open, migrated database.
func NewRepository(db *gorm.DB) (*Repository, error) {
	if db == nil {
		return nil, errors.New("database handle is nil")
	}
	return &Repository{db: db}, nil
}

func byPosition(tx *gorm.DB) *gorm.DB {
	return tx.Order("position asc")
}

// Load reads the last checkpoint, in the order it was saved.
func (r *Repository) Load(ctx context.Context) (workspace.State, error) {
	state := workspace.State{}
	tx := r.db.WithContext(ctx)

	if err := byPosition(tx).Find(&state.Ingredients).Error; err != nil {
		return workspace.State{}, fmt.Errorf("load ingredients: %w", err)
	}
	if err := byPosition(tx).Preload("Ingredients", byPosition).Find(&state.SubRecipes).Error; err != nil {
		return workspace.State{}, fmt.Errorf("load sub-recipes: %w", err)
	}
	if err := byPosition(tx).Preload("Ingredients", byPosition).Find(&state.Dishes).Error; err != nil {
		return workspace.State{}, fmt.Errorf("load dishes: %w", err)
	}
	if err := byPosition(tx).Find(&state.Suppliers).Error; err != nil {
		return workspace.State{}, fmt.Errorf("load suppliers: %w", err)
	}
	if err := byPosition(tx).Find(&state.Invoices).Error; err != nil {
		return workspace.State{}, fmt.Errorf("load invoices: %w", err)
	}
	return state, nil
}

// Save replaces the stored kitchen with state. state is modified: positions
// are numbered and line ids cleared.
func (r *Repository) Save(ctx context.Context, state workspace.State) error {
	for i := range state.Ingredients {
		state.Ingredients[i].Position = i
	}
	for i := range state.SubRecipes {
		state.SubRecipes[i].Position = i
		state.SubRecipes[i].Ingredients = models.SubRecipeLines(state.SubRecipes[i].ID, state.SubRecipes[i].Usages())
	}
	for i := range state.Dishes {
		state.Dishes[i].Position = i
		state.Dishes[i].Ingredients = models.DishLines(state.Dishes[i].ID, state.Dishes[i].Usages())
	}
	for i := range state.Suppliers {
		state.Suppliers[i].Position = i
	}
	for i := range state.Invoices {
		state.Invoices[i].Position = i
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []any{
			&models.DishIngredient{},
			&models.Dish{},
			&models.SubRecipeIngredient{},
			&models.SubRecipe{},
			&models.Ingredient{},
			&models.Supplier{},
			&models.LoggedInvoice{},
		} {
			if err := wipe.Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}

		if err := createAll(tx, state.Ingredients); err != nil {
			return fmt.Errorf("save ingredients: %w", err)
		}
		if err := createAll(tx, state.SubRecipes); err != nil {
			return fmt.Errorf("save sub-recipes: %w", err)
		}
		if err := createAll(tx, state.Dishes); err != nil {
			return fmt.Errorf("save dishes: %w", err)
		}
		if err := createAll(tx, state.Suppliers); err != nil {
			return fmt.Errorf("save suppliers: %w", err)
		}
		if err := createAll(tx, state.Invoices); err != nil {
			return fmt.Errorf("save invoices: %w", err)
		}
		return nil
	})
}

func createAll[T any](tx *gorm.DB, records []T) error {
	if len(records) == 0 {
		return nil
	}
	return tx.CreateInBatches(&records, 100).Error
}
