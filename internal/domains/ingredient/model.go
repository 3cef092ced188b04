package ingredient

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Ingredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func (i Ingredient) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&i.MeasurementUnit, validation.Required, validation.Length(1, 200)),
	)
}
