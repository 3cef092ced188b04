package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"foodgram-backend/internal/domains/tag"
	"foodgram-backend/internal/shared/utils"
	"foodgram-backend/pkg/cache"
)

const (
	cacheKeyList   = "tags:list"
	cacheKeyPrefix = "tags:"
	cacheTTL       = 10 * time.Minute
)

type tagService struct {
	repo  tag.Repository
	cache cache.Cache
}

func NewTagService(repo tag.Repository, cache cache.Cache) tag.Service {
	return &tagService{repo: repo, cache: cache}
}

func (s *tagService) List(ctx context.Context) ([]tag.Tag, error) {
	var tags []tag.Tag
	if s.fromCache(ctx, cacheKeyList, &tags) {
		return tags, nil
	}

	tags, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []tag.Tag{}
	}

	s.toCache(ctx, cacheKeyList, tags)
	return tags, nil
}

func (s *tagService) Get(ctx context.Context, id int64) (*tag.Tag, error) {
	key := fmt.Sprintf("%s%d", cacheKeyPrefix, id)

	var cached tag.Tag
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, key, t)
	return t, nil
}

func (s *tagService) Import(ctx context.Context, tags []tag.Tag) (int, error) {
	errs := validation.Errors{}
	for i := range tags {
		tags[i].Name = strings.TrimSpace(tags[i].Name)
		if tags[i].Slug == "" {
			tags[i].Slug = utils.GenerateSlug(tags[i].Name)
		}
		if err := tags[i].Validate(); err != nil {
			errs[fmt.Sprintf("%d", i)] = err
		}
	}
	if len(errs) > 0 {
		return 0, errs
	}

	n, err := s.repo.Upsert(ctx, tags)
	if err != nil {
		return 0, err
	}

	if err := s.cache.DeletePattern(ctx, cacheKeyPrefix+"*"); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate tag cache")
	}
	return n, nil
}

func (s *tagService) fromCache(ctx context.Context, key string, dest interface{}) bool {
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("tag cache read failed")
		return false
	}
	return found
}

func (s *tagService) toCache(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("tag cache write failed")
	}
}
