package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	gameapi "github.com/beka-birhanu/vinom-maze/api/game"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/config"
	logger "github.com/beka-birhanu/vinom-maze/infrastruture/log"
	"github.com/beka-birhanu/vinom-maze/infrastruture/repo"
	"github.com/beka-birhanu/vinom-maze/infrastruture/sortedstorage"
	"github.com/beka-birhanu/vinom-maze/infrastruture/telemetry"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/trace"
)

// Global variables for dependencies
var (
	mongoClient           *mongo.Client
	redisClient           *redis.Client
	userRepo              i.UserRepo
	resultRepo            i.ResultRepo
	leaderboard           i.Leaderboard
	roundManager          *service.RoundManager
	roundController       api_i.Controller
	leaderboardController api_i.Controller
	jwtTokenizer          i.Tokenizer
	authService           i.Authenticator
	authController        api_i.Controller
	router                *api.Router
	tracer                trace.Tracer
	appLogger             *logger.Logger
)

func newLogger(prefix, color string) *logger.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating %s logger: %v", prefix, err))
		os.Exit(1)
	}
	return l
}

func initTelemetry(ctx context.Context) func(context.Context) error {
	if !config.Envs.OTelEnabled {
		tracer = telemetry.NoopTracer()
		return func(context.Context) error { return nil }
	}

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Setting up telemetry: %v", err))
		os.Exit(1)
	}
	tracer = telemetry.Tracer("rounds")
	appLogger.Info("Telemetry initialized")
	return shutdown
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initRepos(client *mongo.Client) {
	var err error
	userRepo, err = repo.NewUserRepo(client, config.Envs.DBName, "users")
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating user repository: %v", err))
		os.Exit(1)
	}
	appLogger.Info("User repository initialized")

	resultRepo, err = repo.NewResultRepo(client, config.Envs.DBName, "results")
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating result repository: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Result repository initialized")
}

func initLeaderboard(client *redis.Client) {
	store, err := sortedstorage.NewRedisSortedStore(client, config.Envs.LeaderboardTTL)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating sorted store: %v", err))
		os.Exit(1)
	}

	leaderboard, err = service.NewLeaderboard(store, newLogger("LEADERBOARD", config.ColorPurple), nil)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating leaderboard: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Leaderboard initialized")
}

func initRoundManager() {
	var err error
	roundManager, err = service.NewRoundManager(&service.RoundManagerConfig{
		Results:     resultRepo,
		Users:       userRepo,
		Leaderboard: leaderboard,
		Logger:      newLogger("ROUNDS", config.ColorCyan),
		Tracer:      tracer,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating round manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Round manager initialized")
}

func initGameControllers() {
	var err error
	roundController, err = gameapi.NewRoundController(roundManager)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating round controller: %v", err))
		os.Exit(1)
	}

	leaderboardController, err = gameapi.NewLeaderboardController(leaderboard)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating leaderboard controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Game controllers initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		GinMode:                 config.Envs.GinMode,
		Controllers:             []api_i.Controller{authController, roundController, leaderboardController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)
	config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	setupCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	shutdownTelemetry := initTelemetry(setupCtx)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTelemetry(shutdownCtx)
	}()

	initMongo(setupCtx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRedis(setupCtx)
	defer redisClient.Close()

	initRepos(mongoClient)
	initLeaderboard(redisClient)
	initRoundManager()
	go roundManager.Run(ctx)

	initGameControllers()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initRouter(jwtTokenizer)

	errCh := make(chan error, 1)
	go func() {
		errCh <- router.Run()
	}()

	select {
	case err := <-errCh:
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	case <-ctx.Done():
		appLogger.Info("Shutting down")
	}
}
