package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/blogbox-store/go-backend/internal/cfg"
	v1Http "github.com/blogbox-store/go-backend/internal/delivery/v1/http"
	"github.com/blogbox-store/go-backend/internal/infrastructure/kafka"
	"github.com/blogbox-store/go-backend/internal/repository/pgdb"
	pgdbConv "github.com/blogbox-store/go-backend/internal/repository/pgdb/converter"
	"github.com/blogbox-store/go-backend/internal/repository/redis"
	redisConv "github.com/blogbox-store/go-backend/internal/repository/redis/converter"
	"github.com/blogbox-store/go-backend/internal/usecase"
	"github.com/blogbox-store/go-backend/pkg/clients"
	"github.com/blogbox-store/go-backend/pkg/closer"
	"github.com/blogbox-store/go-backend/pkg/e"
	"github.com/blogbox-store/go-backend/pkg/logger"
	"github.com/blogbox-store/go-backend/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// App собирает все зависимости сервиса заказов и управляет их жизненным циклом.
type App struct {
	cfg          *config.Config
	logger       logger.Logger
	closer       *closer.Closer
	httpSrv      *v1Http.Server
	outboxWorker *kafka.OutboxWorker
}

func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	cl := closer.NewCloser(5 * time.Second)

	db, err := initPGDB(logger, cfg)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		logger.Infof("database pool closed")
		return nil
	})

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	orderRepo := pgdb.NewOrderRepo(db.Pool, pgdbConv.NewOrderConverter())
	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverter())
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.NewOutboxEventConverter())
	cacheRepo := redis.NewCacheRepo(redisClient, redisConv.NewProductConverter(), cfg.Redis, logger)

	producer, err := kafka.NewProducer(logger, cfg.Kafka)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	outboxWorker := kafka.NewOutboxWorker(outboxRepo, logger, producer, db.Dsn)

	orderUC := usecase.NewOrderUC(orderRepo, productRepo, outboxRepo, cacheRepo, db.Pool, logger)
	productUC := usecase.NewProductUC(productRepo, cacheRepo, db.Pool, logger)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, cfg.Cors, logger)
	router.Init(orderUC, productUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)
	cl.Add(func(ctx context.Context) error {
		return httpSrv.Stop(ctx)
	})

	return &App{
		cfg:     cfg,
		logger:       logger,
		closer:       cl,
		httpSrv:      httpSrv,
		outboxWorker: outboxWorker,
	}, nil
}

// Run запускает HTTP-сервер и outbox-воркер, блокируется до сигнала
// завершения или фатальной ошибки сервера, после чего закрывает
// ресурсы в обратном порядке.
func (a *App) Run() error {
	workerCtx, workerCancel := context.WithCancel(context.Background())
	a.outboxWorker.Start(workerCtx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	workerCancel()
	a.outboxWorker.Stop()
	a.logger.Infof("outbox worker stopped")

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown finished with errors")
		if appErr == nil {
			appErr = err
		}
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
