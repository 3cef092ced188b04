package recipe

import "errors"

var (
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrNotRecipeAuthor = errors.New("only the author can modify this recipe")

	ErrUnknownTag        = errors.New("one or more tags do not exist")
	ErrUnknownIngredient = errors.New("one or more ingredients do not exist")

	ErrAlreadyFavorited = errors.New("recipe is already in favorites")
	ErrNotFavorited     = errors.New("recipe is not in favorites")
	ErrAlreadyInCart    = errors.New("recipe is already in the shopping cart")
	ErrNotInCart        = errors.New("recipe is not in the shopping cart")
)
