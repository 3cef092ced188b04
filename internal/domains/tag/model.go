package tag

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Tag is a recipe label such as "breakfast".
type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// Validate is used by the importer before upserting.
func (t Tag) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&t.Color, validation.Required, validation.Match(hexColor).Error("must be a #RRGGBB color")),
		validation.Field(&t.Slug, validation.Required, validation.Length(1, 200)),
	)
}
