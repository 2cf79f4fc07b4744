package container

import (
	"context"
	"fmt"
	"time"

	"marketplace-backend/internal/attachment"
	"marketplace-backend/internal/config"
	infraCache "marketplace-backend/internal/infrastructure/cache"
	"marketplace-backend/internal/infrastructure/database"
	"marketplace-backend/internal/infrastructure/storage"
	"marketplace-backend/internal/shared/response"
	"marketplace-backend/pkg/cache"
	"marketplace-backend/pkg/jwt"
	"marketplace-backend/pkg/logger"

	"marketplace-backend/internal/domains/category"
	categoryHandler "marketplace-backend/internal/domains/category/handler"
	categoryRepo "marketplace-backend/internal/domains/category/repository"
	categoryService "marketplace-backend/internal/domains/category/service"
	postHandler "marketplace-backend/internal/domains/post/handler"
	postRepo "marketplace-backend/internal/domains/post/repository"
	postService "marketplace-backend/internal/domains/post/service"
	productHandler "marketplace-backend/internal/domains/product/handler"
	productRepo "marketplace-backend/internal/domains/product/repository"
	productSvc "marketplace-backend/internal/domains/product/service"
	"marketplace-backend/internal/domains/user"
	userHandler "marketplace-backend/internal/domains/user/handler"
	userRepo "marketplace-backend/internal/domains/user/repository"
	userService "marketplace-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config first, then
// infrastructure, repositories, services, handlers.
type Container struct {
	Config         *config.Config
	DB             *database.PostgresDB
	Cache          cache.Cache
	Storage        *storage.MinIOStorage
	JWTManager     *jwt.Manager
	ImageProcessor *storage.ImageProcessor
	Attachments    *attachment.Manager

	UserRepo     user.Repository
	ProductRepo  productRepo.ProductRepository
	PostRepo     postRepo.PostRepository
	CategoryRepo category.Repository

	UserService     user.Service
	ProductService  productSvc.ServiceInterface
	PostService     postService.ServiceInterface
	CategoryService category.Service

	UserHandler     *userHandler.UserHandler
	ProductHandler  *productHandler.ProductHandler
	PostHandler     *postHandler.PostHandler
	CategoryHandler *categoryHandler.CategoryHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	response.Init(cfg.App.Debug)
	logger.Info("config loaded", map[string]interface{}{"env": cfg.App.Environment})

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", nil)
	return c, nil
}

func (c *Container) initInfrastructure() error {
	db := database.NewPostgresDB(c.Config.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	logger.Info("database connected", nil)

	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		// Redis being down is not fatal; cached reads fall through to Postgres
		if err := rc.Connect(ctx); err != nil {
			logger.Warn("redis connection failed", map[string]interface{}{"error": err.Error()})
		} else {
			logger.Info("redis connected", nil)
		}
	}
	c.Cache = redisCache

	store, err := storage.NewMinIOStorage(c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = store
	logger.Info("object storage ready", map[string]interface{}{"bucket": c.Config.MinIO.Bucket})

	c.JWTManager = jwt.NewManager(c.Config.JWT.Secret, c.Config.JWT.ExpiryHours)
	c.ImageProcessor = storage.NewImageProcessor()
	c.Attachments = attachment.NewManager(store, c.ImageProcessor)

	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
	c.ProductRepo = productRepo.NewPostgresProductRepository(pool)
	c.PostRepo = postRepo.NewPostgresPostRepository(pool)
	c.CategoryRepo = categoryRepo.NewPostgresCategoryRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Attachments, c.ImageProcessor)
	c.ProductService = productSvc.NewProductService(c.ProductRepo, c.UserRepo, c.Attachments, c.Cache)
	c.PostService = postService.NewPostService(c.PostRepo, c.Attachments)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.ProductHandler = productHandler.NewProductHandler(c.ProductService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
}

// Cleanup releases infrastructure connections on shutdown
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		rc.Close()
	}
	logger.Info("container cleaned up", nil)
}
