package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"

	"foodgram-backend/internal/domains/recipe"
)

const maxImageUpload = 10 << 20

// recipeForm is a multipart/form-data recipe. Absent fields stay nil.
// tags are repeated fields, ingredients is a JSON array string.
type recipeForm struct {
	Name        *string
	Text        *string
	CookingTime *int
	Image       *string
	Tags        []int64
	Ingredients []recipe.IngredientAmount
	ImageFile   []byte
}

func isMultipart(c *gin.Context) bool {
	return c.ContentType() == "multipart/form-data"
}

func parseForm(c *gin.Context) (*recipeForm, error) {
	form := &recipeForm{}
	errs := validation.Errors{}

	if v, ok := c.GetPostForm("name"); ok {
		form.Name = &v
	}
	if v, ok := c.GetPostForm("text"); ok {
		form.Text = &v
	}
	if v, ok := c.GetPostForm("image"); ok {
		form.Image = &v
	}
	if v, ok := c.GetPostForm("cooking_time"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs["cooking_time"] = validation.NewError("validation_is_int", "must be an integer")
		} else {
			form.CookingTime = &n
		}
	}

	if values, ok := c.GetPostFormArray("tags"); ok {
		form.Tags = make([]int64, 0, len(values))
		for _, v := range values {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				errs["tags"] = validation.NewError("validation_is_int", fmt.Sprintf("invalid tag id %q", v))
				break
			}
			form.Tags = append(form.Tags, id)
		}
	}

	if v, ok := c.GetPostForm("ingredients"); ok {
		form.Ingredients = []recipe.IngredientAmount{}
		if err := json.Unmarshal([]byte(v), &form.Ingredients); err != nil {
			errs["ingredients"] = validation.NewError("validation_invalid_json", "must be a JSON array of {id, amount}")
		}
	}

	data, err := readImageFile(c)
	if err != nil {
		errs["image"] = validation.NewError("validation_invalid_upload", err.Error())
	}
	form.ImageFile = data

	if len(errs) > 0 {
		return nil, errs
	}
	return form, nil
}

func readImageFile(c *gin.Context) ([]byte, error) {
	header, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(io.LimitReader(f, maxImageUpload))
}

func (f *recipeForm) toCreate() recipe.CreateRecipeRequest {
	req := recipe.CreateRecipeRequest{
		Tags:        f.Tags,
		Ingredients: f.Ingredients,
		ImageFile:   f.ImageFile,
	}
	if f.Name != nil {
		req.Name = *f.Name
	}
	if f.Text != nil {
		req.Text = *f.Text
	}
	if f.CookingTime != nil {
		req.CookingTime = *f.CookingTime
	}
	if f.Image != nil {
		req.Image = *f.Image
	}
	return req
}

func (f *recipeForm) toUpdate() recipe.UpdateRecipeRequest {
	return recipe.UpdateRecipeRequest{
		Name:        f.Name,
		Text:        f.Text,
		CookingTime: f.CookingTime,
		Image:       f.Image,
		Tags:        f.Tags,
		Ingredients: f.Ingredients,
		ImageFile:   f.ImageFile,
	}
}
