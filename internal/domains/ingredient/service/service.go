package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"foodgram-backend/internal/domains/ingredient"
	"foodgram-backend/pkg/cache"
)

const (
	cacheKeySearch = "ingredients:search:"
	cacheKeyItem   = "ingredients:item:"
	cacheTTL       = 10 * time.Minute
)

type ingredientService struct {
	repo  ingredient.Repository
	cache cache.Cache
}

func NewIngredientService(repo ingredient.Repository, cache cache.Cache) ingredient.Service {
	return &ingredientService{repo: repo, cache: cache}
}

func (s *ingredientService) Search(ctx context.Context, name string) ([]ingredient.Ingredient, error) {
	prefix := strings.ToLower(strings.TrimSpace(name))
	key := cacheKeySearch + prefix

	var items []ingredient.Ingredient
	if found, err := s.cache.Get(ctx, key, &items); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("ingredient cache read failed")
	} else if found {
		return items, nil
	}

	items, err := s.repo.Search(ctx, prefix)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []ingredient.Ingredient{}
	}

	if err := s.cache.Set(ctx, key, items, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("ingredient cache write failed")
	}
	return items, nil
}

func (s *ingredientService) Get(ctx context.Context, id int64) (*ingredient.Ingredient, error) {
	key := fmt.Sprintf("%s%d", cacheKeyItem, id)

	var cached ingredient.Ingredient
	if found, err := s.cache.Get(ctx, key, &cached); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("ingredient cache read failed")
	} else if found {
		return &cached, nil
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, item, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("ingredient cache write failed")
	}
	return item, nil
}

func (s *ingredientService) Import(ctx context.Context, items []ingredient.Ingredient) (int64, error) {
	errs := validation.Errors{}
	for i := range items {
		items[i].Name = strings.TrimSpace(items[i].Name)
		items[i].MeasurementUnit = strings.TrimSpace(items[i].MeasurementUnit)
		if err := items[i].Validate(); err != nil {
			errs[fmt.Sprintf("%d", i)] = err
		}
	}
	if len(errs) > 0 {
		return 0, errs
	}

	existing, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		log.Info().Int64("existing", existing).Msg("ingredients already loaded, skipping import")
		return 0, nil
	}

	n, err := s.repo.CopyIn(ctx, items)
	if err != nil {
		return 0, err
	}

	if err := s.cache.DeletePattern(ctx, "ingredients:*"); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate ingredient cache")
	}
	return n, nil
}
