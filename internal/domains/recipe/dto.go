package recipe

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"foodgram-backend/internal/domains/tag"
	"foodgram-backend/internal/shared/utils"
	user "foodgram-backend/internal/domains/user"
)

// ========================================
// REQUESTS
// ========================================

// IngredientAmount is an ingredient line as written by clients.
// ingredient_id is accepted as an alias of id.
type IngredientAmount struct {
	ID           int64 `json:"id"`
	IngredientID int64 `json:"ingredient_id,omitempty"`
	Amount       int   `json:"amount"`
}

// UnmarshalJSON accepts amount as a number or a numeric string.
func (a *IngredientAmount) UnmarshalJSON(b []byte) error {
	type plain IngredientAmount
	aux := struct {
		*plain
		Amount utils.FlexInt `json:"amount"`
	}{plain: (*plain)(a)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	a.Amount = int(aux.Amount)
	return nil
}

func (a IngredientAmount) Ref() int64 {
	if a.ID != 0 {
		return a.ID
	}
	return a.IngredientID
}

func (a IngredientAmount) Validate() error {
	ref := a.Ref()
	return validation.ValidateStruct(&a,
		validation.Field(&a.ID, validation.By(func(interface{}) error {
			if ref <= 0 {
				return validation.NewError("validation_required", "cannot be blank")
			}
			return nil
		})),
		validation.Field(&a.Amount, validation.Required, validation.Min(MinAmount), validation.Max(MaxAmount)),
	)
}

type CreateRecipeRequest struct {
	Name        string             `json:"name"`
	Text        string             `json:"text"`
	CookingTime int                `json:"cooking_time"`
	Image       string             `json:"image"`
	Tags        []int64            `json:"tags"`
	Ingredients []IngredientAmount `json:"ingredients"`

	// ImageFile is set from a multipart upload and takes precedence over Image.
	ImageFile []byte `json:"-"`
}

// UnmarshalJSON accepts cooking_time as a number or a numeric string.
func (r *CreateRecipeRequest) UnmarshalJSON(b []byte) error {
	type plain CreateRecipeRequest
	aux := struct {
		*plain
		CookingTime utils.FlexInt `json:"cooking_time"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.CookingTime = int(aux.CookingTime)
	return nil
}

func (r *CreateRecipeRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Text = strings.TrimSpace(r.Text)
}

func (r CreateRecipeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Text, validation.Required, validation.Length(1, 5000)),
		validation.Field(&r.CookingTime, validation.Required, validation.Min(MinAmount), validation.Max(MaxAmount)),
		validation.Field(&r.Image, validation.When(len(r.ImageFile) == 0, validation.Required)),
		validation.Field(&r.Tags, validation.Required, validation.By(uniqueTagIDs)),
		validation.Field(&r.Ingredients, validation.Required, validation.By(uniqueIngredients)),
	)
}

// UpdateRecipeRequest is a partial update. Nil fields are unchanged;
// tags and ingredients, when present, must not be empty.
type UpdateRecipeRequest struct {
	Name        *string            `json:"name"`
	Text        *string            `json:"text"`
	CookingTime *int               `json:"cooking_time"`
	Image       *string            `json:"image"`
	Tags        []int64            `json:"tags"`
	Ingredients []IngredientAmount `json:"ingredients"`

	ImageFile []byte `json:"-"`
}

func (r *UpdateRecipeRequest) UnmarshalJSON(b []byte) error {
	type plain UpdateRecipeRequest
	aux := struct {
		*plain
		CookingTime *utils.FlexInt `json:"cooking_time"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.CookingTime != nil {
		v := int(*aux.CookingTime)
		r.CookingTime = &v
	}
	return nil
}

func (r *UpdateRecipeRequest) Normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.Text != nil {
		text := strings.TrimSpace(*r.Text)
		r.Text = &text
	}
}

func (r UpdateRecipeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&r.Text, validation.NilOrNotEmpty, validation.Length(1, 5000)),
		validation.Field(&r.CookingTime, validation.NilOrNotEmpty, validation.Min(MinAmount), validation.Max(MaxAmount)),
		validation.Field(&r.Image, validation.NilOrNotEmpty),
		validation.Field(&r.Tags, validation.NilOrNotEmpty, validation.By(uniqueTagIDs)),
		validation.Field(&r.Ingredients, validation.NilOrNotEmpty, validation.By(uniqueIngredients)),
	)
}

func uniqueTagIDs(value interface{}) error {
	ids, _ := value.([]int64)
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return validation.NewError("validation_invalid_tag", fmt.Sprintf("invalid tag id %d", id))
		}
		if seen[id] {
			return validation.NewError("validation_duplicate_tag", fmt.Sprintf("tag %d is listed twice", id))
		}
		seen[id] = true
	}
	return nil
}

func uniqueIngredients(value interface{}) error {
	lines, _ := value.([]IngredientAmount)
	seen := make(map[int64]bool, len(lines))
	for _, line := range lines {
		ref := line.Ref()
		if ref <= 0 {
			continue
		}
		if seen[ref] {
			return validation.NewError("validation_duplicate_ingredient", fmt.Sprintf("ingredient %d is listed twice", ref))
		}
		seen[ref] = true
	}
	return nil
}

// ListQuery is the parsed query string of GET /recipes.
type ListQuery struct {
	TagSlugs  []string
	AuthorID  int64
	Favorited *bool
	InCart    *bool
}

// ========================================
// RESPONSES
// ========================================

type IngredientLineResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse is the full read representation for one viewer.
type RecipeResponse struct {
	ID               int64                    `json:"id"`
	Tags             []tag.Tag                `json:"tags"`
	Author           user.UserResponse        `json:"author"`
	Ingredients      []IngredientLineResponse `json:"ingredients"`
	IsFavorited      bool                     `json:"is_favorited"`
	IsInShoppingCart bool                     `json:"is_in_shopping_cart"`
	Name             string                   `json:"name"`
	Image            string                   `json:"image"`
	Text             string                   `json:"text"`
	CookingTime      int                      `json:"cooking_time"`
	PubDate          time.Time                `json:"pub_date"`
}

// ShortRecipeResponse is used by favorite/cart responses and subscription previews.
type ShortRecipeResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// Export is a rendered shopping list download.
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}
