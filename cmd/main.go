package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"memgame/internal/adapters"
	"memgame/internal/bootstrap"
	authDelivery "memgame/internal/delivery/auth"
	historyDelivery "memgame/internal/delivery/history"
	scoreDelivery "memgame/internal/delivery/score"
	userDelivery "memgame/internal/delivery/user"
	"memgame/internal/httpresponse"
	ownMiddleware "memgame/internal/middleware"
	repo "memgame/internal/repository"
	"memgame/internal/token"
	authUC "memgame/internal/usecase/auth"
	historyUC "memgame/internal/usecase/history"
	scoreUC "memgame/internal/usecase/score"
	userUC "memgame/internal/usecase/user"
)

type mainDeliveryHandler struct {
	auth    *authDelivery.AuthHandler
	user    *userDelivery.UserHandler
	score   *scoreDelivery.ScoreHandler
	history *historyDelivery.HistoryHandler
	tokens  *token.Manager
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	databaseAdapters := initDatabaseAdapters(ctx, logger, cfg)
	defer databaseAdapters.mongoAdapter.Close(ctx)
	defer databaseAdapters.redisAdapter.Close(ctx)

	r := chi.NewRouter()
	handlers := initializeDeliveryHandlers(ctx, cfg, logger, databaseAdapters)
	handlers.Router(r, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Infof("Server is running on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	shutCtx, shutCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutCancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		logger.Error("Failed to shut down cleanly", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, cfg *bootstrap.Config) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "x-auth-token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	requireAuth := ownMiddleware.RequireAuth(h.tokens)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("API is running..."))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/", h.auth.Login)
		r.Post("/signin", h.auth.Login)
		r.Post("/register", h.auth.Register)
		r.With(requireAuth).Get("/", h.auth.Me)
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/", h.auth.Register)
		r.Put("/{id}", h.user.Update)
		r.Delete("/{id}", h.user.Delete)
	})

	r.Route("/api/history", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", h.history.List)
		r.Post("/", h.history.Append)
		r.Delete("/", h.history.Clear)
	})

	r.Route("/api/highscore", func(r chi.Router) {
		// revisions disagree on whether these routes are public, so
		// the deployment decides via PROTECT_HIGHSCORE
		if cfg.ProtectHighScore {
			r.Use(requireAuth)
		}
		r.Post("/", h.score.Submit)
		r.Get("/{level}", h.score.GetBest)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
			httpresponse.ErrorResponse{ErrorDescription: "Route not found"})
	})
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) *dataBaseAdapters {
	mongoAdapter := adapters.NewAdapterMongo(cfg)
	if err := mongoAdapter.Init(ctx); err != nil {
		log.Fatal("Failed to initialize MongoDB", zap.Error(err))
	}

	redisAdapter := adapters.NewAdapterRedis(cfg)
	if err := redisAdapter.Init(ctx); err != nil {
		log.Fatal("Failed to initialize Redis", zap.Error(err))
	}

	log.Info("Database adapters initialized")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}
}

func initializeDeliveryHandlers(
	ctx context.Context,
	cfg *bootstrap.Config,
	log *zap.SugaredLogger,
	databaseAdapters *dataBaseAdapters,
) *mainDeliveryHandler {
	userStorage := repo.NewMongoUserStorage(databaseAdapters.mongoAdapter, log)
	scoreStorage := repo.NewMongoScoreStorage(databaseAdapters.mongoAdapter, log)
	historyStorage := repo.NewMongoHistoryStorage(databaseAdapters.mongoAdapter, log)
	scoreCache := repo.NewRedisScoreCache(databaseAdapters.redisAdapter.GetClient())

	if err := userStorage.EnsureIndexes(ctx); err != nil {
		log.Fatal("Failed to create user indexes", zap.Error(err))
	}
	if err := scoreStorage.EnsureIndexes(ctx); err != nil {
		log.Fatal("Failed to create high score indexes", zap.Error(err))
	}

	tokens := token.NewManager(cfg.JwtSecret, time.Duration(cfg.TokenTTLSeconds)*time.Second)

	authUsecase := authUC.NewAuthUsecaseHandler(userStorage, tokens)
	userUsecase := userUC.NewUserUsecaseHandler(userStorage)
	scoreUsecase := scoreUC.NewScoreUseCase(scoreStorage, scoreCache, log)
	historyUsecase := historyUC.NewHistoryUseCase(historyStorage)

	return &mainDeliveryHandler{
		auth:    authDelivery.NewAuthHandler(authUsecase, log),
		user:    userDelivery.NewUserHandler(userUsecase, log),
		score:   scoreDelivery.NewScoreHandler(scoreUsecase, authUsecase, log),
		history: historyDelivery.NewHistoryHandler(historyUsecase, log),
		tokens:  tokens,
	}
}

func waitForShutdown(log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
}
