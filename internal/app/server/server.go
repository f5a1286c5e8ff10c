package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"hrms/internal/domain/attendance"
	"hrms/internal/domain/audit"
	"hrms/internal/domain/auth"
	"hrms/internal/domain/leave"
	"hrms/internal/domain/payroll"
	"hrms/internal/domain/profile"
	"hrms/internal/platform/config"
	"hrms/internal/platform/db"
	"hrms/internal/platform/lock"
	"hrms/internal/platform/metrics"
	"hrms/internal/transport/http/api"
	adminhandler "hrms/internal/transport/http/handlers/admin"
	attendancehandler "hrms/internal/transport/http/handlers/attendance"
	authhandler "hrms/internal/transport/http/handlers/auth"
	leavehandler "hrms/internal/transport/http/handlers/leave"
	payrollhandler "hrms/internal/transport/http/handlers/payroll"
	profilehandler "hrms/internal/transport/http/handlers/profile"
	"hrms/internal/transport/http/middleware"
)

const (
	lockTTL         = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Redis   *redis.Client
	Metrics *metrics.Collector
	Router  http.Handler
}

// Services is everything the HTTP layer needs from the domain.
type Services struct {
	Accounts   *auth.Service
	Attendance *attendance.Service
	Leave      *leave.Service
	Payroll    *payroll.Service
	Profiles   *profile.Service
	Audit      adminhandler.AuditLog
	Perms      middleware.PermissionStore
}

// ReadyCheck reports whether a backing dependency can serve traffic.
type ReadyCheck func(ctx context.Context) error

// New connects to Postgres and Redis, applies migrations and the HR seed when
// configured, and assembles the router.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("resolve timezone: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, cfg.DatabaseURL, false); err != nil {
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect failed: %w", err)
	}

	rdb, err := lock.Connect(ctx, cfg.RedisURL)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("redis connect failed: %w", err)
	}
	if rdb == nil {
		slog.Info("REDIS_URL not set; request locks rely on database constraints only")
	}
	guard := lock.NewGuard(rdb, lockTTL)

	services := Services{
		Accounts:   auth.NewService(auth.NewStore(pool), cfg.JWTSecret, cfg.SessionTTL),
		Attendance: attendance.NewService(attendance.NewStore(pool), guard, loc),
		Leave:      leave.NewService(leave.NewStore(pool), guard),
		Payroll:    payroll.NewService(payroll.NewStore(pool), guard),
		Profiles:   profile.NewService(profile.NewStore(pool)),
		Audit:      audit.New(pool),
		Perms:      auth.StaticPermissions{},
	}

	if cfg.RunSeed {
		if err := seedOnBoot(ctx, services.Accounts, cfg); err != nil {
			pool.Close()
			if rdb != nil {
				_ = rdb.Close()
			}
			return nil, fmt.Errorf("seed failed: %w", err)
		}
	}

	collector := metrics.New()
	checks := []ReadyCheck{pool.Ping, guard.Ping}

	return &App{
		Config:  cfg,
		DB:      pool,
		Redis:   rdb,
		Metrics: collector,
		Router:  NewRouter(cfg, services, collector, checks...),
	}, nil
}

// seedOnBoot creates the bootstrap HR account when SEED_HR_PASSWORD is set.
// Without one it only warns; `hrms seed` prints a generated password once.
func seedOnBoot(ctx context.Context, accounts *auth.Service, cfg config.Config) error {
	if strings.TrimSpace(cfg.SeedHREmail) == "" {
		return nil
	}
	if strings.TrimSpace(cfg.SeedHRPassword) == "" {
		slog.Warn("SEED_HR_PASSWORD not set; skipping HR seed on boot, run `hrms seed` to create the account",
			"email", cfg.SeedHREmail)
		return nil
	}
	res, err := db.Seed(ctx, accounts, cfg)
	if err != nil {
		return err
	}
	if res.Created {
		slog.Info("seeded HR account", "employeeId", res.EmployeeID)
	}
	return nil
}

// NewRouter mounts health checks, the JSON API under /api and, when configured, the
// built frontend.
func NewRouter(cfg config.Config, svc Services, collector *metrics.Collector, checks ...ReadyCheck) http.Handler {
	var recorder middleware.MetricsRecorder
	if collector != nil {
		recorder = collector
	}

	router := chi.NewRouter()
	if cfg.TrustProxyHeaders {
		router.Use(chimw.RealIP)
	}
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(recorder))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		for _, check := range checks {
			if err := check(ctx); err != nil {
				slog.Warn("readiness check failed", "err", err)
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled && collector != nil {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
		r.Use(middleware.Auth(cfg.JWTSecret, svc.Accounts))
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
		r.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			api.Fail(w, http.StatusNotFound, "not_found", "route not found", middleware.GetRequestID(r.Context()))
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			api.Fail(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", middleware.GetRequestID(r.Context()))
		})

		authhandler.NewHandler(svc.Accounts, cfg.AllowSelfSignup).RegisterRoutes(r)
		attendancehandler.NewHandler(svc.Attendance, svc.Perms).RegisterRoutes(r)
		leavehandler.NewHandler(svc.Leave, svc.Perms, svc.Audit).RegisterRoutes(r)
		payrollhandler.NewHandler(svc.Payroll, svc.Perms, svc.Audit).RegisterRoutes(r)
		profilehandler.NewHandler(svc.Profiles, svc.Perms, svc.Audit).RegisterRoutes(r)
		adminhandler.NewHandler(svc.Accounts, svc.Profiles, svc.Perms, svc.Audit).RegisterRoutes(r)
	})

	if cfg.FrontendDir != "" {
		router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})
	}

	return router
}

// Run serves until ctx is cancelled and then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HRMS server listening", "addr", a.Config.Addr, "env", a.Config.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			slog.Warn("redis close failed", "err", err)
		}
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, filepath.Clean("/"+r.URL.Path))
	info, err := os.Stat(path)
	if err == nil && !info.IsDir() {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if err == nil || os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
