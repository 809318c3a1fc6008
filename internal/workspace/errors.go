package workspace

import "errors"

var (
	ErrNotFound          = errors.New("workspace: not found")
	ErrDerivedIngredient = errors.New("workspace: ingredient is derived from a sub-recipe")
	ErrDuplicateID       = errors.New("workspace: id already in use")
	ErrInvalid           = errors.New("workspace: invalid record")
)
