package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	appfavorite "github.com/xiebiao/bookshelf/internal/application/favorite"
	appreview "github.com/xiebiao/bookshelf/internal/application/review"
	appuser "github.com/xiebiao/bookshelf/internal/application/user"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/event"
	"github.com/xiebiao/bookshelf/internal/domain/favorite"
	"github.com/xiebiao/bookshelf/internal/domain/review"
	"github.com/xiebiao/bookshelf/internal/domain/user"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/notification"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/pkg/jwt"
	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/mq"
	"github.com/xiebiao/bookshelf/pkg/response"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// main wires the app by hand; cmd/api/wire.go mirrors the same graph for
// wire-generated injection.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer("bookshelf-api", cfg.Tracing.CollectorAddr)
		if err != nil {
			log.Fatalf("failed to init tracing: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("failed to init database: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("failed to init redis: %v", err)
	}

	// Notifications degrade to a no-op when the broker is not configured;
	// review and favorite writes must not depend on RabbitMQ being up.
	var notifier event.Notifier = event.NopNotifier{}
	if cfg.MQ.Enabled {
		publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("failed to init mq publisher: %v", err)
		}
		defer publisher.Close()
		notifier = notification.NewAMQPNotifier(publisher)
	}

	// Infrastructure.
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	reviewRepo := mysql.NewReviewRepository(db)
	favoriteRepo := mysql.NewFavoriteRepository(db)
	cacheStore := redis.NewCacheStore(redisClient)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
	metricsRegistry := metrics.NewRegistry()

	// Domain services.
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)
	reviewService := review.NewService(reviewRepo, bookRepo)
	favoriteService := favorite.NewService(favoriteRepo, bookRepo)

	// Use cases.
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore, cfg.JWT.RefreshTokenExpire)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore, cfg.JWT.AccessTokenExpire)
	refreshUseCase := appuser.NewRefreshTokenUseCase(jwtManager)

	createBookUseCase := appbook.NewCreateBookUseCase(bookService, cacheStore)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService, cacheStore)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService, cacheStore)
	getBookUseCase := appbook.NewGetBookUseCase(bookService, reviewService, cacheStore, metricsRegistry, cfg.Cache.DetailTTL)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService, cacheStore, metricsRegistry, cfg.Cache.ListTTL)

	createReviewUseCase := appreview.NewCreateReviewUseCase(reviewService, bookService, cacheStore, notifier)
	getReviewUseCase := appreview.NewGetReviewUseCase(reviewService)
	listReviewsUseCase := appreview.NewListReviewsUseCase(reviewService)
	topRatedUseCase := appreview.NewTopRatedUseCase(reviewService, bookRepo, cacheStore, metricsRegistry, cfg.Cache.TopRatedTTL)

	addFavoriteUseCase := appfavorite.NewAddFavoriteUseCase(favoriteService, bookService, notifier)
	removeFavoriteUseCase := appfavorite.NewRemoveFavoriteUseCase(favoriteService, bookService, notifier)
	listFavoritesUseCase := appfavorite.NewListFavoritesUseCase(favoriteService)

	// Interface.
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase, refreshUseCase)
	bookHandler := handler.NewBookHandler(createBookUseCase, updateBookUseCase, deleteBookUseCase, getBookUseCase, listBooksUseCase)
	reviewHandler := handler.NewReviewHandler(createReviewUseCase, getReviewUseCase, listReviewsUseCase, topRatedUseCase)
	favoriteHandler := handler.NewFavoriteHandler(addFavoriteUseCase, removeFavoriteUseCase, listFavoritesUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), metricsRegistry.GinMiddleware())

	registerRoutes(r, userHandler, bookHandler, reviewHandler, favoriteHandler, authMiddleware, metricsRegistry)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	// Graceful shutdown: stop accepting, drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("server stopped")
}

func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	reviewHandler *handler.ReviewHandler,
	favoriteHandler *handler.FavoriteHandler,
	authMiddleware *middleware.AuthMiddleware,
	metricsRegistry *metrics.Registry,
) {
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})
	r.GET("/metrics", metricsRegistry.Handler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/refresh", userHandler.RefreshToken)
			users.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}

		books := v1.Group("/books")
		{
			// Public reads. top-rated must be registered before :id.
			books.GET("", bookHandler.ListBooks)
			books.GET("/top-rated", reviewHandler.TopRated)
			books.GET("/:id", bookHandler.GetBook)

			// Authenticated writes.
			books.POST("", authMiddleware.RequireAuth(), bookHandler.CreateBook)
			books.PUT("/:id", authMiddleware.RequireAuth(), bookHandler.UpdateBook)
			books.DELETE("/:id", authMiddleware.RequireAuth(), bookHandler.DeleteBook)

			books.POST("/:id/favorite", authMiddleware.RequireAuth(), favoriteHandler.AddFavorite)
			books.DELETE("/:id/favorite", authMiddleware.RequireAuth(), favoriteHandler.RemoveFavorite)
		}

		reviews := v1.Group("/reviews")
		{
			reviews.GET("", reviewHandler.ListReviews)
			reviews.GET("/:id", reviewHandler.GetReview)
			reviews.POST("", authMiddleware.RequireAuth(), reviewHandler.CreateReview)
		}

		v1.GET("/favorites", authMiddleware.RequireAuth(), favoriteHandler.ListFavorites)
	}
}
