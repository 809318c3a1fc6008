package costing

import "chaoscatering/models"

// DishCost carries the derived economics of one dish.
type DishCost struct {
	Total           float64 `json:"totalCost"`
	Profit          float64 `json:"profit"`
	FoodCostPercent float64 `json:"foodCostPercent"`
}

// TotalCost sums the dish's line costs.
func TotalCost(dish models.Dish, catalog Catalog) float64 {
	return LinesCost(dish.Usages(), catalog)
}

// CostDish derives profit and food-cost percentage from the menu price.
// A dish with no menu price reports 0%.
func CostDish(dish models.Dish, catalog Catalog) DishCost {
	total := TotalCost(dish, catalog)
	percent := 0.0
	if dish.MenuPrice > 0 {
		percent = total / dish.MenuPrice * 100
	}
	return DishCost{
		Total:           total,
		Profit:          dish.MenuPrice - total,
		FoodCostPercent: percent,
	}
}

// Summary aggregates a menu's economics for the dashboard.
type Summary struct {
	Dishes                 int     `json:"dishes"`
	SubRecipes             int     `json:"subRecipes"`
	AverageMargin          float64 `json:"averageMargin"`
	AverageFoodCostPercent float64 `json:"averageFoodCostPercent"`
}

// Summarize averages margin and food cost across dishes. Dishes without a
// menu price count towards the margin average but not the percentage.
func Summarize(dishes []models.Dish, subs []models.SubRecipe, catalog Catalog) Summary {
	summary := Summary{Dishes: len(dishes), SubRecipes: len(subs)}
	marginTotal := 0.0
	percentTotal := 0.0
	priced := 0
	for _, dish := range dishes {
		cost := CostDish(dish, catalog)
		marginTotal += cost.Profit
		if dish.MenuPrice > 0 {
			percentTotal += cost.FoodCostPercent
			priced++
		}
	}
	summary.AverageMargin = marginTotal / float64(max(len(dishes), 1))
	if priced > 0 {
		summary.AverageFoodCostPercent = percentTotal / float64(priced)
	}
	return summary
}
