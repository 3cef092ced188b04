package subscription

import (
	"foodgram-backend/internal/domains/recipe"
	user "foodgram-backend/internal/domains/user"
)

// Counts are the follow statistics of one user.
type Counts struct {
	Followers int64
	Following int64
}

// SubscriptionResponse is a followed author with a preview of their recipes.
type SubscriptionResponse struct {
	user.UserResponse
	Recipes        []recipe.ShortRecipeResponse `json:"recipes"`
	RecipesCount   int64                        `json:"recipes_count"`
	FollowersCount int64                        `json:"followers_count"`
	FollowingCount int64                        `json:"following_count"`
}
