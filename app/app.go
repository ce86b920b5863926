// Package app wires configuration, storage, services and the HTTP router
// into one runnable application.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"quickbite/config"
	"quickbite/controllers"
	"quickbite/libs"
	"quickbite/middleware"
	"quickbite/repositories"
	"quickbite/routes"
	"quickbite/services"
	"quickbite/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	restaurantCachePrefix = "quickbite:restaurants:"
	restaurantCacheTTL    = time.Minute
)

type App struct {
	Config *config.Config
	Router *gin.Engine

	db     *pgxpool.Pool
	redis  *redis.Client
	orders *services.OrderService
}

type stores struct {
	catalog   *repositories.Catalog
	orders    services.OrderRepository
	reviews   services.ReviewRepository
	favorites services.FavoriteRepository
	users     services.UserRepository
	carts     services.CartStore
	usage     services.UsageCounter
}

// New builds the application. Postgres is required when STORE_DRIVER is
// postgres; redis is optional and only replaces in-process stores when it
// answers.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	st, err := a.openStores(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	promos, err := repositories.SeedPromotions()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load promotions: %w", err)
	}

	uploader, err := a.photoUploader()
	if err != nil {
		a.Close()
		return nil, err
	}

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)

	restaurantSvc := services.NewRestaurantService(st.catalog, cfg.SimulatedLatency)
	menuSvc := services.NewMenuService(st.catalog, cfg.SimulatedLatency)
	promotionSvc := services.NewPromotionService(promos, st.usage)
	cartSvc := services.NewCartService(st.carts, st.catalog, cfg.DeliveryFee, cfg.ServiceFee)
	reviewSvc := services.NewReviewService(st.reviews, st.catalog, uploader)
	favoriteSvc := services.NewFavoriteService(st.favorites, st.catalog)

	orderOpts := services.OrderServiceOptions{
		Orders:            st.orders,
		Carts:             cartSvc,
		Catalog:           st.catalog,
		Promotions:        promotionSvc,
		Hub:               services.NewOrderHub(),
		Publisher:         a.eventPublisher(),
		DeliveryFee:       cfg.DeliveryFee,
		ServiceFee:        cfg.ServiceFee,
		StatusDelays:      cfg.StatusDelays,
		EstimatedDelivery: cfg.EstimatedDelivery,
	}
	if cfg.SMTPConfigured() {
		mailer, err := libs.NewMailer(cfg)
		if err != nil {
			log.Error().Err(err).Msg("mailer disabled")
		} else {
			orderOpts.Mailer = mailer
		}
	}
	a.orders = services.NewOrderService(orderOpts)

	authSvc := services.NewAuthService(st.users, tokens)
	userSvc := services.NewUserService(services.UserServiceOptions{
		Users:      st.users,
		Orders:     a.orders,
		Carts:      cartSvc,
		Favorites:  favoriteSvc,
		Reviews:    reviewSvc,
		Promotions: promotionSvc,
		Uploader:   uploader,
	})

	// responses cached by a previous process may describe a different catalog
	restaurantCache := repositories.NewResponseCache(a.redis, restaurantCachePrefix, restaurantCacheTTL)
	if err := restaurantCache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate restaurant cache")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		middleware.CORSMiddleware(cfg),
		middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware(),
	)

	routes.SetupRoutes(router, routes.Controllers{
		Tokens:        tokens,
		SecureCookies: cfg.IsProduction(),
		UploadDir:     cfg.UploadDir,
		Auth:          controllers.NewAuthController(authSvc),
		Account:       controllers.NewAccountController(userSvc, authSvc),
		Restaurants:   controllers.NewRestaurantController(restaurantSvc, menuSvc, reviewSvc, promotionSvc, restaurantCache),
		Cart:          controllers.NewCartController(cartSvc),
		Orders:        controllers.NewOrderController(a.orders),
		Tracking:      controllers.NewTrackingController(a.orders),
		Promotions:    controllers.NewPromotionController(promotionSvc, cfg.DeliveryFee),
		Reviews:       controllers.NewReviewController(reviewSvc),
		Favorites:     controllers.NewFavoriteController(favoriteSvc),
	})
	a.Router = router

	return a, nil
}

func (a *App) openStores(ctx context.Context) (*stores, error) {
	cfg := a.Config
	st := &stores{}

	a.redis = config.ConnectRedis(ctx, cfg)
	if a.redis != nil {
		st.carts = repositories.NewRedisCartStore(a.redis, cfg.CartTTL)
		st.usage = repositories.NewRedisPromotionUsage(a.redis)
	} else {
		st.carts = repositories.NewMemoryCartStore()
		st.usage = repositories.NewMemoryPromotionUsage()
	}

	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := config.ConnectDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.db = db

		catalog, err := repositories.LoadCatalog(ctx, db)
		if err != nil {
			return nil, err
		}
		st.catalog = catalog
		st.orders = repositories.NewPostgresOrderRepository(db)
		st.reviews = repositories.NewPostgresReviewRepository(db)
		st.favorites = repositories.NewPostgresFavoriteRepository(db)
		st.users = repositories.NewUserRepository(db)

	case config.StoreMemory:
		catalog, err := repositories.SeedCatalog()
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		st.catalog = catalog
		st.orders = repositories.NewMemoryOrderRepository()
		st.reviews = repositories.NewMemoryReviewRepository()
		st.favorites = repositories.NewMemoryFavoriteRepository()
		st.users = repositories.NewMemoryUserRepository()

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	log.Info().
		Str("store", cfg.StoreDriver).
		Bool("redis", a.redis != nil).
		Msg("stores ready")
	return st, nil
}

func (a *App) photoUploader() (services.PhotoUploader, error) {
	cfg := a.Config
	if cfg.CloudinaryConfigured() {
		uploader, err := libs.NewCloudinaryUploader(cfg)
		if err == nil {
			return uploader, nil
		}
		log.Error().Err(err).Msg("cloudinary unavailable, storing photos locally")
	}
	if err := os.MkdirAll(cfg.UploadDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return libs.NewLocalUploader(cfg.UploadDir, cfg.MaxUploadSize), nil
}

func (a *App) eventPublisher() services.OrderEventPublisher {
	switch a.Config.EventsDriver {
	case config.EventsRedis:
		if a.redis == nil {
			log.Warn().Msg("EVENTS_DRIVER=redis but redis is unavailable, order events stay in-process")
			return services.NoopPublisher{}
		}
		return libs.NewRedisPublisher(a.redis, libs.OrderEventsChannel)
	case config.EventsKafka:
		return libs.NewKafkaPublisher(a.Config.KafkaBrokers, a.Config.KafkaTopic)
	}
	return services.NoopPublisher{}
}

// Close stops status timers and releases connections.
func (a *App) Close() {
	if a.orders != nil {
		a.orders.Shutdown()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis")
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}
