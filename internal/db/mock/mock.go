package mock

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"chaoscatering/internal/db"
	applog "chaoscatering/internal/log"
	"chaoscatering/internal/workspace"
	"chaoscatering/models"
)

const (
	DemoEmail    = "chef@chaoscatering.app"
	DemoPassword = "mise-en-place"
)

// New returns an in-memory sqlite database seeded with a small demo kitchen.
// Every call gets its own database.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	dsn := fmt.Sprintf("file:chaoscatering-mock-%s?mode=memory&cache=shared", uuid.NewString())
	database, err := gorm.Open(sqlite.Open(dsn), db.GormConfig(logger.Silent))
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:         "Sam Pass",
		Email:        DemoEmail,
		PasswordHash: string(password),
	}
	if err := database.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}

	repo, err := db.NewRepository(database)
	if err != nil {
		return err
	}

	// Settling through a workspace fills in the derived ingredients.
	kitchen := workspace.New(DemoKitchen())
	if err := repo.Save(ctx, kitchen.Snapshot()); err != nil {
		return fmt.Errorf("seed kitchen: %w", err)
	}
	return nil
}

func ptr(v float64) *float64 { return &v }

// DemoKitchen is a small menu with one nested sub-recipe chain.
func DemoKitchen() workspace.State {
	return workspace.State{
		Ingredients: []models.Ingredient{
			{ID: "flour", Name: "Cake Flour", BuyingUnit: "kg", BuyingPrice: 22, YieldAmount: 1000, RecipeUnit: "g", Cost: 0.022},
			{ID: "tomatoes", Name: "Tinned Tomatoes", BuyingUnit: "kg", BuyingPrice: 38, YieldAmount: 1000, RecipeUnit: "g", Cost: 0.038, LastInvoicePrice: ptr(41), LastInvoiceDate: "2026-10-01"},
			{ID: "mozzarella", Name: "Mozzarella", BuyingUnit: "kg", BuyingPrice: 145, YieldAmount: 1000, RecipeUnit: "g", Cost: 0.145},
			{ID: "olive-oil", Name: "Olive Oil", BuyingUnit: "l", BuyingPrice: 160, YieldAmount: 1000, RecipeUnit: "ml", Cost: 0.16},
			{ID: "basil", Name: "Basil", BuyingUnit: "bunch", BuyingPrice: 18, YieldAmount: 1, RecipeUnit: "bunch", Cost: 18},
			{ID: "lemons", Name: "Lemons", BuyingUnit: "each", BuyingPrice: 4, YieldAmount: 1, RecipeUnit: "each", Cost: 4},
		},
		SubRecipes: []models.SubRecipe{
			{
				ID: "dough", Name: "Pizza Dough", YieldQuantity: 8, YieldUnit: "ball",
				Ingredients: models.SubRecipeLines("dough", []models.Usage{
					{IngredientID: "flour", Quantity: 1000, Unit: "g"},
					{IngredientID: "olive-oil", Quantity: 40, Unit: "ml"},
				}),
			},
			{
				ID: "napoli-sauce", Name: "Napoli Sauce", YieldQuantity: 1200, YieldUnit: "g",
				Ingredients: models.SubRecipeLines("napoli-sauce", []models.Usage{
					{IngredientID: "tomatoes", Quantity: 1200, Unit: "g"},
					{IngredientID: "olive-oil", Quantity: 60, Unit: "ml"},
					{IngredientID: "basil", Quantity: 1, Unit: "bunch"},
				}),
			},
		},
		Dishes: []models.Dish{
			{
				ID: "margherita", Name: "Margherita", Section: models.SectionPizza, MenuPrice: 115,
				Description: "Napoli, mozzarella, basil.",
				Ingredients: models.DishLines("margherita", []models.Usage{
					{IngredientID: "dough", Quantity: 1, Unit: "ball"},
					{IngredientID: "napoli-sauce", Quantity: 90, Unit: "g"},
					{IngredientID: "mozzarella", Quantity: 120, Unit: "g"},
				}),
			},
			{
				ID: "garlic-focaccia", Name: "Focaccia", Section: models.SectionStarters, MenuPrice: 65,
				Ingredients: models.DishLines("garlic-focaccia", []models.Usage{
					{IngredientID: "dough", Quantity: 1, Unit: "ball"},
					{IngredientID: "olive-oil", Quantity: 20, Unit: "ml"},
				}),
			},
			{
				ID: "lemonade", Name: "Fresh Lemonade", Section: models.SectionDrinks, MenuPrice: 40,
				Ingredients: models.DishLines("lemonade", []models.Usage{
					{IngredientID: "lemons", Quantity: 2, Unit: "each"},
				}),
			},
		},
		Suppliers: []models.Supplier{
			{ID: "supplier-1", Name: "Cape Fresh Produce", ContactPerson: "Thandi", Email: "orders@capefresh.example", Phone: "021 555 0101", Category: "Produce"},
			{ID: "supplier-2", Name: "Dairy Direct", ContactPerson: "Pieter", Email: "sales@dairydirect.example", Category: "Dairy"},
		},
		Invoices: []models.LoggedInvoice{
			{ID: "invoice-1", SupplierName: "Cape Fresh Produce", InvoiceDate: "2026-10-01", TotalAmount: 492, ItemsCount: 1, FileName: "capefresh-0931.pdf"},
		},
	}
}
