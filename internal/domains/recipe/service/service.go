package service

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"foodgram-backend/internal/domains/recipe"
	"foodgram-backend/internal/domains/tag"
	"foodgram-backend/internal/infrastructure/storage"
	"foodgram-backend/internal/shared/pagination"
)

const imagePrefix = "recipes/images/"

type recipeService struct {
	repo    recipe.Repository
	authors recipe.AuthorPresenter
	storage storage.Storage
	images  *storage.ImageProcessor
}

func NewRecipeService(
	repo recipe.Repository,
	authors recipe.AuthorPresenter,
	store storage.Storage,
	images *storage.ImageProcessor,
) recipe.Service {
	return &recipeService{
		repo:    repo,
		authors: authors,
		storage: store,
		images:  images,
	}
}

// ========================================
// WRITES
// ========================================

func (s *recipeService) Create(ctx context.Context, viewerID int64, req recipe.CreateRecipeRequest) (*recipe.RecipeResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key, err := s.storeImage(ctx, req.Image, req.ImageFile)
	if err != nil {
		return nil, err
	}

	rec := &recipe.Recipe{
		AuthorID:    viewerID,
		Name:        req.Name,
		Image:       key,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}
	if err := s.repo.Create(ctx, rec, req.Tags, req.Ingredients); err != nil {
		s.discardImage(ctx, key)
		return nil, fieldError(err)
	}

	log.Info().Int64("recipe_id", rec.ID).Int64("author_id", viewerID).Msg("recipe created")

	return s.render(ctx, viewerID, rec)
}

func (s *recipeService) Update(ctx context.Context, viewerID, id int64, req recipe.UpdateRecipeRequest) (*recipe.RecipeResponse, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != viewerID {
		return nil, recipe.ErrNotRecipeAuthor
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	changes := &recipe.Changes{
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: req.Ingredients,
	}

	if req.Image != nil || len(req.ImageFile) > 0 {
		uri := ""
		if req.Image != nil {
			uri = *req.Image
		}
		key, err := s.storeImage(ctx, uri, req.ImageFile)
		if err != nil {
			return nil, err
		}
		changes.Image = &key
	}

	oldImage, err := s.repo.Update(ctx, id, viewerID, changes)
	if err != nil {
		if changes.Image != nil {
			s.discardImage(ctx, *changes.Image)
		}
		return nil, fieldError(err)
	}
	if oldImage != "" {
		s.discardImage(ctx, oldImage)
	}

	return s.Get(ctx, viewerID, id)
}

func (s *recipeService) Delete(ctx context.Context, viewerID, id int64) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.AuthorID != viewerID {
		return recipe.ErrNotRecipeAuthor
	}

	image, err := s.repo.Delete(ctx, id, viewerID)
	if err != nil {
		return err
	}
	s.discardImage(ctx, image)

	log.Info().Int64("recipe_id", id).Int64("author_id", viewerID).Msg("recipe deleted")
	return nil
}

// storeImage decodes the upload (raw file bytes win over a data URI),
// normalises it and stores it under a fresh key.
func (s *recipeService) storeImage(ctx context.Context, dataURI string, file []byte) (string, error) {
	data := file
	if len(data) == 0 {
		decoded, _, err := storage.ParseDataURI(dataURI)
		if err != nil {
			return "", validation.Errors{"image": err}
		}
		data = decoded
	}

	processed, contentType, ext, err := s.images.Process(data)
	if errors.Is(err, storage.ErrInvalidImage) || errors.Is(err, storage.ErrImageTooLarge) {
		return "", validation.Errors{"image": err}
	}
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s%s.%s", imagePrefix, uuid.NewString(), ext)
	if err := s.storage.Upload(ctx, key, processed, contentType); err != nil {
		return "", fmt.Errorf("upload recipe image: %w", err)
	}
	return key, nil
}

func (s *recipeService) discardImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to remove recipe image")
	}
}

// fieldError turns unknown tag/ingredient references into field errors.
func fieldError(err error) error {
	switch {
	case errors.Is(err, recipe.ErrUnknownTag):
		return validation.Errors{"tags": err}
	case errors.Is(err, recipe.ErrUnknownIngredient):
		return validation.Errors{"ingredients": err}
	default:
		return err
	}
}

// ========================================
// READS
// ========================================

func (s *recipeService) Get(ctx context.Context, viewerID, id int64) (*recipe.RecipeResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.render(ctx, viewerID, rec)
}

func (s *recipeService) List(ctx context.Context, viewerID int64, q recipe.ListQuery, page pagination.Params) ([]recipe.RecipeResponse, int64, error) {
	f := recipe.ListFilter{
		TagSlugs:  q.TagSlugs,
		AuthorID:  q.AuthorID,
		ViewerID:  viewerID,
		Favorited: q.Favorited,
		InCart:    q.InCart,
		Limit:     page.Limit,
		Offset:    page.Offset(),
	}

	if viewerID == 0 {
		// Anonymous viewers own no favorites or cart entries.
		if isSet(q.Favorited) || isSet(q.InCart) {
			return []recipe.RecipeResponse{}, 0, nil
		}
		f.Favorited, f.InCart = nil, nil
	}

	recipes, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	out, err := s.present(ctx, viewerID, recipes)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func isSet(b *bool) bool {
	return b != nil && *b
}

func (s *recipeService) render(ctx context.Context, viewerID int64, rec *recipe.Recipe) (*recipe.RecipeResponse, error) {
	out, err := s.present(ctx, viewerID, []recipe.Recipe{*rec})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

// present renders recipes for viewerID with a fixed number of queries:
// tags, ingredient lines, viewer flags and authors are each loaded in bulk.
func (s *recipeService) present(ctx context.Context, viewerID int64, recipes []recipe.Recipe) ([]recipe.RecipeResponse, error) {
	if len(recipes) == 0 {
		return []recipe.RecipeResponse{}, nil
	}

	ids := make([]int64, len(recipes))
	authorIDs := make([]int64, 0, len(recipes))
	seenAuthor := map[int64]bool{}
	for i, rec := range recipes {
		ids[i] = rec.ID
		if !seenAuthor[rec.AuthorID] {
			seenAuthor[rec.AuthorID] = true
			authorIDs = append(authorIDs, rec.AuthorID)
		}
	}

	tags, err := s.repo.TagsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	lines, err := s.repo.IngredientsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	flags := map[int64]recipe.Flags{}
	if viewerID != 0 {
		if flags, err = s.repo.FlagsFor(ctx, viewerID, ids); err != nil {
			return nil, err
		}
	}
	authors, err := s.authors.Present(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	out := make([]recipe.RecipeResponse, len(recipes))
	for i, rec := range recipes {
		recipeTags := tags[rec.ID]
		if recipeTags == nil {
			recipeTags = []tag.Tag{}
		}

		ingredients := make([]recipe.IngredientLineResponse, 0, len(lines[rec.ID]))
		for _, l := range lines[rec.ID] {
			ingredients = append(ingredients, recipe.IngredientLineResponse{
				ID:              l.IngredientID,
				Name:            l.Name,
				MeasurementUnit: l.MeasurementUnit,
				Amount:          l.Amount,
			})
		}

		author, ok := authors[rec.AuthorID]
		if !ok {
			author.ID = rec.AuthorID
		}

		out[i] = recipe.RecipeResponse{
			ID:               rec.ID,
			Tags:             recipeTags,
			Author:           author,
			Ingredients:      ingredients,
			IsFavorited:      flags[rec.ID].Favorited,
			IsInShoppingCart: flags[rec.ID].InCart,
			Name:             rec.Name,
			Image:            s.imageURL(rec.Image),
			Text:             rec.Text,
			CookingTime:      rec.CookingTime,
			PubDate:          rec.PubDate,
		}
	}
	return out, nil
}

func (s *recipeService) short(rec *recipe.Recipe) recipe.ShortRecipeResponse {
	return recipe.ShortRecipeResponse{
		ID:          rec.ID,
		Name:        rec.Name,
		Image:       s.imageURL(rec.Image),
		CookingTime: rec.CookingTime,
	}
}

func (s *recipeService) imageURL(key string) string {
	if key == "" {
		return ""
	}
	return s.storage.URL(key)
}

func (s *recipeService) AuthorPreviews(ctx context.Context, authorIDs []int64, limit int) (map[int64][]recipe.ShortRecipeResponse, map[int64]int64, error) {
	if len(authorIDs) == 0 {
		return map[int64][]recipe.ShortRecipeResponse{}, map[int64]int64{}, nil
	}

	byAuthor, err := s.repo.ListByAuthors(ctx, authorIDs, limit)
	if err != nil {
		return nil, nil, err
	}
	counts, err := s.repo.CountByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, nil, err
	}

	previews := make(map[int64][]recipe.ShortRecipeResponse, len(authorIDs))
	for _, id := range authorIDs {
		list := make([]recipe.ShortRecipeResponse, 0, len(byAuthor[id]))
		for i := range byAuthor[id] {
			list = append(list, s.short(&byAuthor[id][i]))
		}
		previews[id] = list
	}
	return previews, counts, nil
}

// ========================================
// FAVORITES / SHOPPING CART
// ========================================

type relationFunc func(ctx context.Context, userID, recipeID int64) (bool, error)

func (s *recipeService) AddFavorite(ctx context.Context, viewerID, id int64) (*recipe.ShortRecipeResponse, error) {
	return s.add(ctx, viewerID, id, s.repo.AddFavorite, recipe.ErrAlreadyFavorited)
}

func (s *recipeService) RemoveFavorite(ctx context.Context, viewerID, id int64) error {
	return s.remove(ctx, viewerID, id, s.repo.RemoveFavorite, recipe.ErrNotFavorited)
}

func (s *recipeService) AddToCart(ctx context.Context, viewerID, id int64) (*recipe.ShortRecipeResponse, error) {
	return s.add(ctx, viewerID, id, s.repo.AddToCart, recipe.ErrAlreadyInCart)
}

func (s *recipeService) RemoveFromCart(ctx context.Context, viewerID, id int64) error {
	return s.remove(ctx, viewerID, id, s.repo.RemoveFromCart, recipe.ErrNotInCart)
}

func (s *recipeService) add(ctx context.Context, viewerID, id int64, insert relationFunc, conflict error) (*recipe.ShortRecipeResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	inserted, err := insert(ctx, viewerID, id)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, conflict
	}

	out := s.short(rec)
	return &out, nil
}

func (s *recipeService) remove(ctx context.Context, viewerID, id int64, del relationFunc, absent error) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	removed, err := del(ctx, viewerID, id)
	if err != nil {
		return err
	}
	if !removed {
		return absent
	}
	return nil
}

// ========================================
// SHOPPING LIST
// ========================================

func (s *recipeService) ExportShoppingList(ctx context.Context, viewerID int64, format string) (*recipe.Export, error) {
	if format != "" && format != "txt" && format != "xlsx" {
		return nil, validation.Errors{
			"format": validation.NewError("validation_invalid_format", "must be txt or xlsx"),
		}
	}

	items, err := s.repo.ShoppingList(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	if format == "xlsx" {
		body, err := buildShoppingListExcel(items)
		if err != nil {
			return nil, err
		}
		return &recipe.Export{Filename: shoppingListXlsx, ContentType: contentTypeXlsx, Body: body}, nil
	}

	return &recipe.Export{
		Filename:    shoppingListTxt,
		ContentType: "text/plain; charset=utf-8",
		Body:        formatShoppingList(items),
	}, nil
}
