package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	migrations "github.com/DRSN-tech/stock-backend/db"
	"github.com/DRSN-tech/stock-backend/internal/analytics"
	config "github.com/DRSN-tech/stock-backend/internal/cfg"
	v1Grpc "github.com/DRSN-tech/stock-backend/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/stock-backend/internal/delivery/v1/http"
	"github.com/DRSN-tech/stock-backend/internal/infrastructure/kafka"
	"github.com/DRSN-tech/stock-backend/internal/infrastructure/report"
	s3Repo "github.com/DRSN-tech/stock-backend/internal/repository/minio"
	"github.com/DRSN-tech/stock-backend/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/stock-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/stock-backend/internal/repository/redis"
	redisConv "github.com/DRSN-tech/stock-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/stock-backend/internal/usecase"
	"github.com/DRSN-tech/stock-backend/pkg/clients"
	"github.com/DRSN-tech/stock-backend/pkg/closer"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/DRSN-tech/stock-backend/pkg/logger"
	"github.com/DRSN-tech/stock-backend/pkg/metrics"
	"github.com/DRSN-tech/stock-backend/pkg/postgres"
	"github.com/DRSN-tech/stock-backend/pkg/tr"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	shutdownTimeout   = 10 * time.Second
	dependencyTimeout = 10 * time.Second
)

type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv *v1Http.Server
	grpcSrv *v1Grpc.GRPCServer
	worker  *kafka.OutboxWorker
}

// NewApp поднимает зависимости и собирает приложение. Уже открытые ресурсы
// закрываются, если дальнейшая инициализация не удалась.
func NewApp(cfg *config.Config, log logger.Logger) (_ *App, err error) {
	a := &App{cfg: cfg, logger: log, closer: closer.NewCloser(0)}
	defer func() {
		if err != nil {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = a.closer.Close(ctx)
		}
	}()

	db, err := initPGDB(log, cfg)
	if err != nil {
		return nil, err
	}
	a.closer.AddFunc("postgres", db.Close)

	m := metrics.New()
	txManager := tr.NewManager(db.Pool)
	normalizer := analytics.NewNormalizer(cfg.Dashboard.NoneLabel)

	categoryRepo := pgdb.NewCategoryRepo(db.Pool, pgdbConv.CategoryConverter{})
	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.ProductConverter{})

	events, err := a.initEvents(db)
	if err != nil {
		return nil, err
	}

	reportRepo, err := a.initReports()
	if err != nil {
		return nil, err
	}

	redisClient := clients.NewRedisClient(cfg.Redis)
	a.closer.Add("redis", func(context.Context) error { return redisClient.Close() })
	redisCtx, redisCancel := context.WithTimeout(context.Background(), dependencyTimeout)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		// Защита от повторной отправки деградирует до прямой обработки запросов.
		log.Warnf("redis is unavailable, idempotency keys will not be enforced until it recovers: %v", err)
	}
	idempotencyRepo := redis.NewIdempotencyRepo(redisClient, redisConv.IdempotencyConverter{}, cfg.Redis.IdempotencyTTL)

	categoryUC := usecase.NewCategoryUC(categoryRepo, txManager, events, m, log)
	productUC := usecase.NewProductUC(productRepo, categoryRepo, txManager, normalizer, events, m, log)
	dashboardUC := usecase.NewDashboardUC(
		productRepo,
		reportRepo,
		report.NewCSVRenderer(),
		normalizer,
		cfg.Dashboard.TopN,
		cfg.Dashboard.ReportURLTTL,
		log,
	)

	a.grpcSrv = v1Grpc.NewGRPCServer(cfg.Grpc, log)
	a.grpcSrv.RegisterServices(dashboardUC)

	r := chi.NewRouter()
	v1Http.NewRouter(r, log).Init(v1Http.Deps{
		CategoryUC:  categoryUC,
		ProductUC:   productUC,
		DashboardUC: dashboardUC,
		Idempotency: idempotencyRepo,
		Metrics:     m,
		Ready:       db.Ping,
	})
	a.httpSrv = v1Http.NewServer(r, cfg.Http)

	return a, nil
}

// initEvents включает публикацию изменений в Kafka через outbox, если заданы брокеры.
func (a *App) initEvents(db *postgres.PgDatabase) (usecase.EventRecorder, error) {
	if a.cfg.Kafka == nil {
		a.logger.Infof("KAFKA_BROKERS is empty, change events are disabled")
		return usecase.NopEventRecorder{}, nil
	}

	producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
	a.closer.Add("kafka producer", func(context.Context) error { return producer.Close() })

	if err := producer.EnsureTopic(dependencyTimeout); err != nil {
		a.logger.Errorf(err, "failed to ensure kafka topic %s", a.cfg.Kafka.Topic)
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.OutboxEventConverter{})
	a.worker = kafka.NewOutboxWorker(outboxRepo, a.logger, producer, db.Dsn)
	a.closer.AddFunc("outbox worker", a.worker.Stop)

	return kafka.NewOutboxRecorder(outboxRepo), nil
}

// initReports включает выгрузку отчётов в S3, если задан бакет.
func (a *App) initReports() (usecase.ReportRepository, error) {
	if a.cfg.Minio == nil {
		a.logger.Infof("BUCKET_NAME is empty, report export is disabled")
		// Именно nil-интерфейс: типизированный nil usecase принял бы за включённое хранилище.
		return nil, nil
	}

	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		a.logger.Errorf(err, "failed to initialize minio client")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), dependencyTimeout)
	defer cancel()
	if err := clients.EnsureBucket(ctx, minioClient, a.cfg.Minio.BucketName); err != nil {
		a.logger.Errorf(err, "failed to initialize MinIO bucket")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return s3Repo.NewReportRepo(minioClient, a.cfg.Minio.BucketName), nil
}

// Run запускает серверы и блокируется до сигнала остановки или фатальной ошибки.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.worker != nil {
		a.worker.Start(ctx)
	}

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			a.logger.Errorf(err, "gRPC server failed")
			grpcErrCh <- err
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	if err := a.grpcSrv.Stop(shutdownCtx); err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			a.logger.Errorf(err, "gRPC server shutdown error")
		} else {
			a.logger.Warnf("gRPC server shutdown timeout")
		}
	}

	// Воркер останавливается через closer, после серверов: новые события уже не появятся.
	cancel()
	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("resources closed with errors: %v", err)
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

	if err := db.RunMigrations(logger, migrations.Migrations, migrations.MigrationsDir); err != nil {
		logger.Errorf(err, "failed to run migrations")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
