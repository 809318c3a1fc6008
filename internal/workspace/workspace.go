// Package workspace holds the kitchen's authoritative collections in memory
// and keeps derived sub-recipe ingredients in step with every edit.
package workspace

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"chaoscatering/internal/costing"
	"chaoscatering/internal/ingest"
	"chaoscatering/internal/invoice"
	applog "chaoscatering/internal/log"
	"chaoscatering/models"
)

const (
	newSupplierName     = "New Supplier"
	defaultSupplierType = "General"
)

// Repository persists workspace checkpoints.
type Repository interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, state State) error
}

// Workspace is safe for concurrent use. Every mutation runs to completion,
// including re-settling derived ingredients, before any reader can observe
// the collections again.
type Workspace struct {
	mu    sync.RWMutex
	state State
	repo  Repository
	newID func() string
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithRepository checkpoints the workspace to repo after every mutation.
func WithRepository(repo Repository) Option {
	return func(w *Workspace) {
		w.repo = repo
	}
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(w *Workspace) {
		if fn != nil {
			w.newID = fn
		}
	}
}

// New builds a workspace from initial, which is copied and settled.
func New(initial State, opts ...Option) *Workspace {
	w := &Workspace{state: initial.Clone(), newID: uuid.NewString}
	for _, opt := range opts {
		opt(w)
	}
	w.settleLocked(context.Background())
	return w
}

// Open loads the last checkpoint from repo and checkpoints to it from then on.
func Open(ctx context.Context, repo Repository, opts ...Option) (*Workspace, error) {
	state, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("workspace: load checkpoint: %w", err)
	}
	opts = append([]Option{WithRepository(repo)}, opts...)
	return New(state, opts...), nil
}

// Snapshot returns a deep copy of the current collections.
func (w *Workspace) Snapshot() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state.Clone()
}

// Summary reports the menu's averages.
func (w *Workspace) Summary() costing.Summary {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return costing.Summarize(w.state.Dishes, w.state.SubRecipes, w.state.Catalog())
}

// Prep aggregates the selected dishes into production and pull lists.
func (w *Workspace) Prep(selected map[string]bool, tracked []models.Section) costing.PrepList {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return costing.Aggregate(selected, w.state.Dishes, w.state.Catalog(), tracked)
}

// settleLocked re-runs the synchroniser until derived prices stop moving.
// A chain of n sub-recipes needs at most n+1 passes; anything longer is a
// sub-recipe that contains itself.
func (w *Workspace) settleLocked(ctx context.Context) {
	passes := len(w.state.SubRecipes) + 1
	next, changed, stable := costing.Settle(w.state.Ingredients, w.state.SubRecipes, passes)
	if !stable {
		applog.Warn(ctx, "sub-recipe costs did not settle; check for recipes that contain themselves",
			"passes", changed, "subRecipes", len(w.state.SubRecipes))
	}
	w.state.Ingredients = next
}

// commitLocked settles when asked to and writes a checkpoint. Checkpoint
// failures are logged; the in-memory state stays authoritative.
func (w *Workspace) commitLocked(ctx context.Context, resettle bool) {
	if resettle {
		w.settleLocked(ctx)
	}
	if w.repo == nil {
		return
	}
	if err := w.repo.Save(ctx, w.state.Clone()); err != nil {
		applog.Error(ctx, "failed to checkpoint workspace", "error", err)
	}
}

func (w *Workspace) idInUseLocked(id string) bool {
	return indexOf(w.state.Ingredients, id, ingredientID) >= 0 ||
		indexOf(w.state.SubRecipes, id, subRecipeID) >= 0 ||
		indexOf(w.state.Dishes, id, dishID) >= 0
}

// Ingredient returns one ingredient by id.
func (w *Workspace) Ingredient(id string) (models.Ingredient, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	i := indexOf(w.state.Ingredients, id, ingredientID)
	if i < 0 {
		return models.Ingredient{}, ErrNotFound
	}
	return cloneIngredient(w.state.Ingredients[i]), nil
}

// CreateIngredient normalises draft and adds it as a raw ingredient.
func (w *Workspace) CreateIngredient(ctx context.Context, draft costing.IngredientDraft) (models.Ingredient, error) {
	if draft.IsSubRecipe != nil && *draft.IsSubRecipe {
		return models.Ingredient{}, ErrDerivedIngredient
	}
	ing := costing.Normalize(draft)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.idInUseLocked(ing.ID) {
		return models.Ingredient{}, ErrDuplicateID
	}
	w.state.Ingredients = append(w.state.Ingredients, ing)
	w.commitLocked(ctx, true)
	applog.Debug(ctx, "ingredient created", "id", ing.ID, "name", ing.Name)
	return cloneIngredient(ing), nil
}

// UpdateIngredient overlays patch on a raw ingredient and re-normalises it.
// Derived ingredients can only change through their sub-recipe.
func (w *Workspace) UpdateIngredient(ctx context.Context, id string, patch costing.IngredientDraft) (models.Ingredient, error) {
	if patch.IsSubRecipe != nil && *patch.IsSubRecipe {
		return models.Ingredient{}, ErrDerivedIngredient
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	i := indexOf(w.state.Ingredients, id, ingredientID)
	if i < 0 {
		return models.Ingredient{}, ErrNotFound
	}
	if w.state.Ingredients[i].IsSubRecipe {
		return models.Ingredient{}, ErrDerivedIngredient
	}
	merged := costing.DraftOf(w.state.Ingredients[i]).Merge(patch)
	merged.ID = id
	ing := costing.Normalize(merged)

	w.state.Ingredients[i] = ing
	w.commitLocked(ctx, true)
	return cloneIngredient(ing), nil
}

// DeleteIngredient removes a raw ingredient. Lines that used it cost nothing
// from then on.
func (w *Workspace) DeleteIngredient(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := indexOf(w.state.Ingredients, id, ingredientID)
	if i < 0 {
		return ErrNotFound
	}
	if w.state.Ingredients[i].IsSubRecipe {
		return ErrDerivedIngredient
	}
	w.state.Ingredients = slices.Delete(w.state.Ingredients, i, i+1)
	w.commitLocked(ctx, true)
	return nil
}

// SubRecipe returns one sub-recipe by id.
func (w *Workspace) SubRecipe(id string) (models.SubRecipe, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	i := indexOf(w.state.SubRecipes, id, subRecipeID)
	if i < 0 {
		return models.SubRecipe{}, ErrNotFound
	}
	return cloneSubRecipe(w.state.SubRecipes[i]), nil
}

// CreateSubRecipe adds sr and its derived ingredient.
func (w *Workspace) CreateSubRecipe(ctx context.Context, sr models.SubRecipe) (models.SubRecipe, error) {
	sr.Name = strings.TrimSpace(sr.Name)
	if sr.Name == "" {
		return models.SubRecipe{}, fmt.Errorf("%w: sub-recipe name is required", ErrInvalid)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if sr.ID == "" {
		sr.ID = w.newID()
	}
	if w.idInUseLocked(sr.ID) {
		return models.SubRecipe{}, ErrDuplicateID
	}
	sr.Ingredients = models.SubRecipeLines(sr.ID, sr.Usages())
	w.state.SubRecipes = append(w.state.SubRecipes, sr)
	w.commitLocked(ctx, true)
	applog.Debug(ctx, "sub-recipe created", "id", sr.ID, "name", sr.Name)
	return cloneSubRecipe(sr), nil
}

// UpdateSubRecipe replaces the sub-recipe with the given id. Its derived
// ingredient follows the new name, yield unit and cost before the lock is
// released.
func (w *Workspace) UpdateSubRecipe(ctx context.Context, id string, sr models.SubRecipe) (models.SubRecipe, error) {
	sr.Name = strings.TrimSpace(sr.Name)
	if sr.Name == "" {
		return models.SubRecipe{}, fmt.Errorf("%w: sub-recipe name is required", ErrInvalid)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	i := indexOf(w.state.SubRecipes, id, subRecipeID)
	if i < 0 {
		return models.SubRecipe{}, ErrNotFound
	}
	sr.ID = id
	sr.Ingredients = models.SubRecipeLines(id, sr.Usages())

	w.state.SubRecipes[i] = sr

	if j := indexOf(w.state.Ingredients, id, ingredientID); j >= 0 && w.state.Ingredients[j].IsSubRecipe {
		derived := &w.state.Ingredients[j]
		derived.Name = sr.Name
		derived.BuyingUnit = sr.YieldUnit
		derived.RecipeUnit = sr.YieldUnit
	}
	w.commitLocked(ctx, true)
	return cloneSubRecipe(sr), nil
}

// DeleteSubRecipe removes the sub-recipe together with its derived
// ingredient.
func (w *Workspace) DeleteSubRecipe(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := indexOf(w.state.SubRecipes, id, subRecipeID)
	if i < 0 {
		return ErrNotFound
	}
	w.state.SubRecipes = slices.Delete(w.state.SubRecipes, i, i+1)
	if j := indexOf(w.state.Ingredients, id, ingredientID); j >= 0 && w.state.Ingredients[j].IsSubRecipe {
		w.state.Ingredients = slices.Delete(w.state.Ingredients, j, j+1)
	}
	w.commitLocked(ctx, true)
	return nil
}

// Dish returns one dish by id.
func (w *Workspace) Dish(id string) (models.Dish, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	i := indexOf(w.state.Dishes, id, dishID)
	if i < 0 {
		return models.Dish{}, ErrNotFound
	}
	return cloneDish(w.state.Dishes[i]), nil
}

// CostDish returns a dish with its economics priced against the current
// ingredient list.
func (w *Workspace) CostDish(id string) (models.Dish, costing.DishCost, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	i := indexOf(w.state.Dishes, id, dishID)
	if i < 0 {
		return models.Dish{}, costing.DishCost{}, ErrNotFound
	}
	dish := cloneDish(w.state.Dishes[i])
	return dish, costing.CostDish(dish, w.state.Catalog()), nil
}

func prepareDish(d models.Dish) (models.Dish, error) {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return d, fmt.Errorf("%w: dish name is required", ErrInvalid)
	}
	d.Section = models.NormalizeSection(string(d.Section))
	return d, nil
}

// CreateDish adds a dish.
func (w *Workspace) CreateDish(ctx context.Context, d models.Dish) (models.Dish, error) {
	d, err := prepareDish(d)
	if err != nil {
		return models.Dish{}, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if d.ID == "" {
		d.ID = w.newID()
	}
	if w.idInUseLocked(d.ID) {
		return models.Dish{}, ErrDuplicateID
	}
	d.Ingredients = models.DishLines(d.ID, d.Usages())
	w.state.Dishes = append(w.state.Dishes, d)
	w.commitLocked(ctx, false)
	return cloneDish(d), nil
}

// UpdateDish replaces the dish with the given id.
func (w *Workspace) UpdateDish(ctx context.Context, id string, d models.Dish) (models.Dish, error) {
	d, err := prepareDish(d)
	if err != nil {
		return models.Dish{}, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	i := indexOf(w.state.Dishes, id, dishID)
	if i < 0 {
		return models.Dish{}, ErrNotFound
	}
	d.ID = id
	d.Ingredients = models.DishLines(id, d.Usages())
	w.state.Dishes[i] = d
	w.commitLocked(ctx, false)
	return cloneDish(d), nil
}

// DeleteDish removes a dish.
func (w *Workspace) DeleteDish(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := indexOf(w.state.Dishes, id, dishID)
	if i < 0 {
		return ErrNotFound
	}
	w.state.Dishes = slices.Delete(w.state.Dishes, i, i+1)
	w.commitLocked(ctx, false)
	return nil
}

// Import adds an ingested batch in one step: new ingredients, sub-recipes
// and dishes land together and the derived ingredients are settled before
// the lock is released. Nothing is added when any id collides.
func (w *Workspace) Import(ctx context.Context, batch ingest.Batch) error {
	ingredients := make([]models.Ingredient, 0, len(batch.NewIngredients))
	for _, ing := range batch.NewIngredients {
		ing.IsSubRecipe = false
		ingredients = append(ingredients, costing.Normalize(costing.DraftOf(ing)))
	}
	dishes := make([]models.Dish, 0, len(batch.Dishes))
	for _, d := range batch.Dishes {
		d, err := prepareDish(d)
		if err != nil {
			return err
		}
		dishes = append(dishes, d)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	seen := map[string]struct{}{}
	claim := func(id string) error {
		if _, dup := seen[id]; dup || w.idInUseLocked(id) {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
		return nil
	}
	subs := make([]models.SubRecipe, 0, len(batch.SubRecipes))
	for _, sr := range batch.SubRecipes {
		if sr.ID == "" {
			sr.ID = w.newID()
		}
		if err := claim(sr.ID); err != nil {
			return err
		}
		sr.Ingredients = models.SubRecipeLines(sr.ID, sr.Usages())
		subs = append(subs, sr)
	}
	for _, ing := range ingredients {
		if err := claim(ing.ID); err != nil {
			return err
		}
	}
	for i := range dishes {
		if dishes[i].ID == "" {
			dishes[i].ID = w.newID()
		}
		if err := claim(dishes[i].ID); err != nil {
			return err
		}
		dishes[i].Ingredients = models.DishLines(dishes[i].ID, dishes[i].Usages())
	}

	w.state.Ingredients = append(w.state.Ingredients, ingredients...)
	w.state.SubRecipes = append(w.state.SubRecipes, subs...)
	w.state.Dishes = append(w.state.Dishes, dishes...)
	w.commitLocked(ctx, true)
	applog.Info(ctx, "menu batch imported",
		"dishes", len(dishes), "subRecipes", len(subs), "ingredients", len(ingredients))
	return nil
}

// Supplier returns one supplier by id.
func (w *Workspace) Supplier(id string) (models.Supplier, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	i := indexOf(w.state.Suppliers, id, supplierID)
	if i < 0 {
		return models.Supplier{}, ErrNotFound
	}
	return w.state.Suppliers[i], nil
}

func prepareSupplier(s models.Supplier) models.Supplier {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		s.Name = newSupplierName
	}
	s.Category = strings.TrimSpace(s.Category)
	if s.Category == "" {
		s.Category = defaultSupplierType
	}
	return s
}

// CreateSupplier adds an address-book entry.
func (w *Workspace) CreateSupplier(ctx context.Context, s models.Supplier) (models.Supplier, error) {
	s = prepareSupplier(s)

	w.mu.Lock()
	defer w.mu.Unlock()
	if s.ID == "" {
		s.ID = w.newID()
	}
	if indexOf(w.state.Suppliers, s.ID, supplierID) >= 0 {
		return models.Supplier{}, ErrDuplicateID
	}
	w.state.Suppliers = append(w.state.Suppliers, s)
	w.commitLocked(ctx, false)
	return s, nil
}

// UpdateSupplier replaces the supplier with the given id.
func (w *Workspace) UpdateSupplier(ctx context.Context, id string, s models.Supplier) (models.Supplier, error) {
	s = prepareSupplier(s)

	w.mu.Lock()
	defer w.mu.Unlock()
	i := indexOf(w.state.Suppliers, id, supplierID)
	if i < 0 {
		return models.Supplier{}, ErrNotFound
	}
	s.ID = id
	w.state.Suppliers[i] = s
	w.commitLocked(ctx, false)
	return s, nil
}

// DeleteSupplier removes a supplier. Its logged invoices are kept.
func (w *Workspace) DeleteSupplier(ctx context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := indexOf(w.state.Suppliers, id, supplierID)
	if i < 0 {
		return ErrNotFound
	}
	w.state.Suppliers = slices.Delete(w.state.Suppliers, i, i+1)
	w.commitLocked(ctx, false)
	return nil
}

// ApplyInvoice records invoice prices against matching ingredients and logs
// the invoices, newest first.
func (w *Workspace) ApplyInvoice(ctx context.Context, lines []invoice.Line) (invoice.Result, error) {
	if len(lines) == 0 {
		return invoice.Result{}, fmt.Errorf("%w: no invoice lines", ErrInvalid)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	result := invoice.Apply(w.state.Ingredients, lines, w.newID)
	w.state.Ingredients = result.Ingredients
	w.state.Invoices = append(append([]models.LoggedInvoice{}, result.Logged...), w.state.Invoices...)
	w.commitLocked(ctx, false)
	applog.Info(ctx, "invoices applied", "logged", len(result.Logged), "matched", result.Matched)
	return result, nil
}

// ClearInvoices empties the invoice history.
func (w *Workspace) ClearInvoices(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Invoices = []models.LoggedInvoice{}
	w.commitLocked(ctx, false)
}
