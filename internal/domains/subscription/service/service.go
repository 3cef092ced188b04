package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"foodgram-backend/internal/domains/subscription"
	user "foodgram-backend/internal/domains/user"
	"foodgram-backend/internal/shared/pagination"
)

type subscriptionService struct {
	repo    subscription.Repository
	users   subscription.Users
	recipes subscription.RecipePreviews
}

func NewSubscriptionService(
	repo subscription.Repository,
	users subscription.Users,
	recipes subscription.RecipePreviews,
) subscription.Service {
	return &subscriptionService{repo: repo, users: users, recipes: recipes}
}

func (s *subscriptionService) Subscribe(ctx context.Context, viewerID, authorID int64, recipesLimit int) (*subscription.SubscriptionResponse, error) {
	if viewerID == authorID {
		return nil, subscription.ErrSelfFollow
	}
	if _, err := s.users.Get(ctx, viewerID, authorID); err != nil {
		return nil, err
	}

	inserted, err := s.repo.Follow(ctx, viewerID, authorID)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, subscription.ErrAlreadySubscribed
	}

	log.Info().Int64("user_id", viewerID).Int64("author_id", authorID).Msg("subscribed")

	author, err := s.users.Get(ctx, viewerID, authorID)
	if err != nil {
		return nil, err
	}
	out, err := s.present(ctx, []user.UserResponse{*author}, recipesLimit)
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, viewerID, authorID int64) error {
	if _, err := s.users.Get(ctx, viewerID, authorID); err != nil {
		return err
	}

	removed, err := s.repo.Unfollow(ctx, viewerID, authorID)
	if err != nil {
		return err
	}
	if !removed {
		return subscription.ErrNotSubscribed
	}
	return nil
}

func (s *subscriptionService) List(ctx context.Context, viewerID int64, recipesLimit int, page pagination.Params) ([]subscription.SubscriptionResponse, int64, error) {
	authors, total, err := s.repo.ListFollowed(ctx, viewerID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}

	rendered, err := s.users.PresentUsers(ctx, viewerID, authors)
	if err != nil {
		return nil, 0, err
	}
	out, err := s.present(ctx, rendered, recipesLimit)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *subscriptionService) present(ctx context.Context, authors []user.UserResponse, recipesLimit int) ([]subscription.SubscriptionResponse, error) {
	out := make([]subscription.SubscriptionResponse, 0, len(authors))
	if len(authors) == 0 {
		return out, nil
	}

	ids := make([]int64, len(authors))
	for i, a := range authors {
		ids[i] = a.ID
	}

	previews, recipeCounts, err := s.recipes.AuthorPreviews(ctx, ids, recipesLimit)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.Counts(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, a := range authors {
		out = append(out, subscription.SubscriptionResponse{
			UserResponse:   a,
			Recipes:        previews[a.ID],
			RecipesCount:   recipeCounts[a.ID],
			FollowersCount: counts[a.ID].Followers,
			FollowingCount: counts[a.ID].Following,
		})
	}
	return out, nil
}
