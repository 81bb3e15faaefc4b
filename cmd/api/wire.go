//go:build wireinject
// +build wireinject

// Wire injector mirroring the manual graph in main.go.
// Regenerate with: wire gen ./cmd/api

package main

import (
	"github.com/google/wire"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	appfavorite "github.com/xiebiao/bookshelf/internal/application/favorite"
	appreview "github.com/xiebiao/bookshelf/internal/application/review"
	appuser "github.com/xiebiao/bookshelf/internal/application/user"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/cache"
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
)

// App bundles everything main needs to run the server.
type App struct {
	Config          *config.Config
	UserHandler     *handler.UserHandler
	BookHandler     *handler.BookHandler
	ReviewHandler   *handler.ReviewHandler
	FavoriteHandler *handler.FavoriteHandler
	AuthMiddleware  *middleware.AuthMiddleware
	Metrics         *metrics.Registry
}

// Config-derived scalar providers. Wire cannot inject bare time.Duration
// values unambiguously, so the constructors that need them are wrapped.

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
}

func provideNotifier(cfg *config.Config) (event.Notifier, error) {
	if !cfg.MQ.Enabled {
		return event.NopNotifier{}, nil
	}
	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		return nil, err
	}
	return notification.NewAMQPNotifier(publisher), nil
}

func provideLoginUseCase(cfg *config.Config, us user.Service, jm *jwt.Manager, ss *redis.SessionStore) *appuser.LoginUseCase {
	return appuser.NewLoginUseCase(us, jm, ss, cfg.JWT.RefreshTokenExpire)
}

func provideLogoutUseCase(cfg *config.Config, ss *redis.SessionStore) *appuser.LogoutUseCase {
	return appuser.NewLogoutUseCase(ss, cfg.JWT.AccessTokenExpire)
}

func provideGetBookUseCase(cfg *config.Config, bs book.Service, rs review.Service, c cache.Cache, m *metrics.Registry) *appbook.GetBookUseCase {
	return appbook.NewGetBookUseCase(bs, rs, c, m, cfg.Cache.DetailTTL)
}

func provideListBooksUseCase(cfg *config.Config, bs book.Service, c cache.Cache, m *metrics.Registry) *appbook.ListBooksUseCase {
	return appbook.NewListBooksUseCase(bs, c, m, cfg.Cache.ListTTL)
}

func provideTopRatedUseCase(cfg *config.Config, rs review.Service, br book.Repository, c cache.Cache, m *metrics.Registry) *appreview.TopRatedUseCase {
	return appreview.NewTopRatedUseCase(rs, br, c, m, cfg.Cache.TopRatedTTL)
}

var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
	redis.NewSessionStore,
	redis.NewCacheStore,
	wire.Bind(new(cache.Cache), new(*redis.CacheStore)),
	provideJWTManager,
	provideNotifier,
	metrics.NewRegistry,
)

var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewReviewRepository,
	mysql.NewFavoriteRepository,
)

var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	review.NewService,
	favorite.NewService,
)

var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	provideLoginUseCase,
	provideLogoutUseCase,
	appuser.NewRefreshTokenUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	provideGetBookUseCase,
	provideListBooksUseCase,
	appreview.NewCreateReviewUseCase,
	appreview.NewGetReviewUseCase,
	appreview.NewListReviewsUseCase,
	provideTopRatedUseCase,
	appfavorite.NewAddFavoriteUseCase,
	appfavorite.NewRemoveFavoriteUseCase,
	appfavorite.NewListFavoritesUseCase,
)

var interfaceSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewReviewHandler,
	handler.NewFavoriteHandler,
	middleware.NewAuthMiddleware,
)

// InitializeApp builds the full dependency graph.
func InitializeApp() (*App, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil
}
