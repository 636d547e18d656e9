package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"gamey/internal/adapters"
	"gamey/internal/bootstrap"
	"gamey/internal/bot"
	"gamey/internal/delivery"
	gameDelivery "gamey/internal/delivery/game"
	sessionDelivery "gamey/internal/delivery/session"
	userDelivery "gamey/internal/delivery/user"
	ybotDelivery "gamey/internal/delivery/ybot"
	repo "gamey/internal/repository"
	gameuc "gamey/internal/usecase/game"
	sessionuc "gamey/internal/usecase/session"
	useruc "gamey/internal/usecase/user"
	"gamey/internal/usecase/ybot"
	ybotRPC "gamey/microservices/proto"
)

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Errorw("Failed to setup configuration", "error", err)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	databaseAdapters := initDatabaseAdapters(ctx, logger, cfg)
	defer databaseAdapters.redisAdapter.Close(context.Background())
	if databaseAdapters.mongoAdapter != nil {
		defer databaseAdapters.mongoAdapter.Close(context.Background())
	}

	botClient, closeBot := initBotClient(logger, cfg)
	defer closeBot()

	handlers := initializeDeliveryHandlers(ctx, cfg, logger, botClient, databaseAdapters)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handlers.Router(cfg.IsLocalCors),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("Received shutdown signal")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorw("graceful shutdown failed", "error", err)
		}
	}()

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalw("Failed to start server", "error", err)
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

// initDatabaseAdapters requires Redis for sessions. MongoDB only backs user
// sign-up, so the server starts without it.
func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) *dataBaseAdapters {
	redisAdapter := adapters.NewAdapterRedis(cfg, log)
	if err := redisAdapter.Init(ctx); err != nil {
		log.Fatalw("failed to initialize Redis", "error", err)
	}

	var mongoAdapter *adapters.AdapterMongo
	if cfg.MongoUri != "" {
		mongoAdapter = adapters.NewAdapterMongo(cfg, log)
		if err := mongoAdapter.Init(ctx); err != nil {
			log.Warnw("MongoDB unavailable, /createuser disabled", "error", err)
			mongoAdapter = nil
		}
	}

	log.Info("database adapters initialized")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}
}

// initBotClient talks to the ybot microservice when BOT_GRPC_ADDR is set and
// falls back to the built-in bots otherwise.
func initBotClient(log *zap.SugaredLogger, cfg *bootstrap.Config) (ybot.BotClient, func()) {
	if cfg.BotGrpcAddr == "" {
		log.Infow("using in-process bots", "bots", bot.DefaultRegistry().IDs())
		return ybot.NewLocalBotClient(bot.DefaultRegistry()), func() {}
	}

	conn, err := grpc.NewClient(cfg.BotGrpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalw("Failed to dial grpc", "addr", cfg.BotGrpcAddr, "error", err)
	}
	log.Infow("using ybot service", "addr", cfg.BotGrpcAddr)
	return repo.NewGrpcBotClient(ybotRPC.NewYBotServiceClient(conn)), func() { _ = conn.Close() }
}

func initializeDeliveryHandlers(
	ctx context.Context,
	cfg *bootstrap.Config,
	log *zap.SugaredLogger,
	botClient ybot.BotClient,
	databaseAdapters *dataBaseAdapters,
) *delivery.MainDeliveryHandler {
	botUC := ybot.NewBotUseCase(botClient, log)
	sessionStorage := repo.NewRedisSessionStorage(databaseAdapters.redisAdapter.GetClient(), log)
	sessionUC := sessionuc.NewSessionUseCase(sessionStorage, botUC, log, cfg.SessionTTL(), cfg.DefaultBoardSize)

	handlers := &delivery.MainDeliveryHandler{
		Game:    gameDelivery.NewGameHandler(log, gameuc.NewGameUseCase(log, cfg.DefaultBoardSize)),
		YBot:    ybotDelivery.NewYBotHandler(log, botUC),
		Session: sessionDelivery.NewSessionHandler(log, sessionUC, sessionDelivery.NewHub()),
	}

	if databaseAdapters.mongoAdapter != nil {
		userStorage := repo.NewMongoUserStorage(databaseAdapters.mongoAdapter.Database, log)
		if err := userStorage.EnsureIndexes(ctx); err != nil {
			log.Warnw("failed to create users index", "error", err)
		}
		handlers.User = userDelivery.NewUserHandler(log, useruc.NewUserUseCase(userStorage, log))
	}
	return handlers
}
