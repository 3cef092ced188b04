package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"foodgram-backend/internal/config"
	infraCache "foodgram-backend/internal/infrastructure/cache"
	"foodgram-backend/internal/infrastructure/database"
	"foodgram-backend/internal/infrastructure/storage"
	"foodgram-backend/internal/shared/pagination"
	"foodgram-backend/pkg/cache"
	"foodgram-backend/pkg/jwt"
	"foodgram-backend/pkg/logger"

	"foodgram-backend/internal/domains/ingredient"
	ingredientHandler "foodgram-backend/internal/domains/ingredient/handler"
	ingredientRepo "foodgram-backend/internal/domains/ingredient/repository"
	ingredientService "foodgram-backend/internal/domains/ingredient/service"

	"foodgram-backend/internal/domains/recipe"
	recipeHandler "foodgram-backend/internal/domains/recipe/handler"
	recipeRepo "foodgram-backend/internal/domains/recipe/repository"
	recipeService "foodgram-backend/internal/domains/recipe/service"

	"foodgram-backend/internal/domains/subscription"
	subscriptionHandler "foodgram-backend/internal/domains/subscription/handler"
	subscriptionRepo "foodgram-backend/internal/domains/subscription/repository"
	subscriptionService "foodgram-backend/internal/domains/subscription/service"

	"foodgram-backend/internal/domains/tag"
	tagHandler "foodgram-backend/internal/domains/tag/handler"
	tagRepo "foodgram-backend/internal/domains/tag/repository"
	tagService "foodgram-backend/internal/domains/tag/service"

	"foodgram-backend/internal/domains/user"
	userHandler "foodgram-backend/internal/domains/user/handler"
	userRepo "foodgram-backend/internal/domains/user/repository"
	userService "foodgram-backend/internal/domains/user/service"
)

// Container holds the application's dependency graph.
// Build order: config, infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Storage    storage.Storage
	Images     *storage.ImageProcessor

	// Repositories
	UserRepo         user.Repository
	TagRepo          tag.Repository
	IngredientRepo   ingredient.Repository
	RecipeRepo       recipe.Repository
	SubscriptionRepo subscription.Repository

	// Services
	UserService         user.Service
	TagService          tag.Service
	IngredientService   ingredient.Service
	RecipeService       recipe.Service
	SubscriptionService subscription.Service

	// Handlers
	UserHandler         *userHandler.UserHandler
	TagHandler          *tagHandler.TagHandler
	IngredientHandler   *ingredientHandler.IngredientHandler
	RecipeHandler       *recipeHandler.RecipeHandler
	SubscriptionHandler *subscriptionHandler.SubscriptionHandler
}

// NewContainer loads configuration and builds every layer.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	log.Info().Str("env", cfg.App.Environment).Msg("initializing container")

	c := &Container{Config: cfg}

	if err := c.initInfrastructure(); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("container initialized")
	return c, nil
}

func (c *Container) initInfrastructure() error {
	// ----------------------------------------
	// DATABASE
	// ----------------------------------------
	db := database.NewPostgresDB(c.Config.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Info().Str("host", c.Config.Database.Host).Msg("database connected")

	// ----------------------------------------
	// CACHE
	// ----------------------------------------
	// Redis is not critical: fall back to the in-process cache.
	redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, using in-memory cache")
		_ = redisCache.Close()
		c.Cache = cache.NewMemoryCache()
	} else {
		log.Info().Str("host", c.Config.Redis.Host).Msg("redis connected")
		c.Cache = redisCache
	}

	// ----------------------------------------
	// MEDIA + TOKENS
	// ----------------------------------------
	store, err := storage.New(ctx, c.Config)
	if err != nil {
		return fmt.Errorf("failed to init media storage: %w", err)
	}
	c.Storage = store
	c.Images = storage.NewImageProcessor()

	c.JWTManager = jwt.NewManager(
		c.Config.JWT.Secret,
		time.Duration(c.Config.JWT.AccessTokenExpiry)*time.Hour,
	)

	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.TagRepo = tagRepo.NewPostgresRepository(pool)
	c.IngredientRepo = ingredientRepo.NewPostgresRepository(pool)
	c.RecipeRepo = recipeRepo.NewPostgresRepository(pool)
	c.SubscriptionRepo = subscriptionRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.Cache, c.JWTManager)
	c.TagService = tagService.NewTagService(c.TagRepo, c.Cache)
	c.IngredientService = ingredientService.NewIngredientService(c.IngredientRepo, c.Cache)

	// Recipes render their authors through the user service.
	c.RecipeService = recipeService.NewRecipeService(c.RecipeRepo, c.UserService, c.Storage, c.Images)

	c.SubscriptionService = subscriptionService.NewSubscriptionService(
		c.SubscriptionRepo,
		c.UserService,
		c.RecipeService,
	)
}

func (c *Container) initHandlers() {
	paging := c.Paging()

	c.UserHandler = userHandler.NewUserHandler(c.UserService, paging)
	c.TagHandler = tagHandler.NewTagHandler(c.TagService)
	c.IngredientHandler = ingredientHandler.NewIngredientHandler(c.IngredientService)
	c.RecipeHandler = recipeHandler.NewRecipeHandler(c.RecipeService, paging)
	c.SubscriptionHandler = subscriptionHandler.NewSubscriptionHandler(c.SubscriptionService, paging)
}

// Paging returns the configured pagination bounds.
func (c *Container) Paging() pagination.Defaults {
	return pagination.Defaults{
		PageSize: c.Config.Pagination.PageSize,
		MaxLimit: c.Config.Pagination.MaxLimit,
	}
}

// LocalMediaRoot returns the directory served under the media base URL,
// or "" when media lives in MinIO.
func (c *Container) LocalMediaRoot() string {
	if local, ok := c.Storage.(*storage.LocalStorage); ok {
		return local.Root()
	}
	return ""
}

// Cleanup closes the pool and the Redis client.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		} else {
			log.Info().Msg("redis connections closed")
		}
	}
}
