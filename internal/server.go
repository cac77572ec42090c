package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/fittrackhq/fittrack/internal/auth"
	"github.com/fittrackhq/fittrack/internal/config"
	"github.com/fittrackhq/fittrack/internal/db"
	"github.com/fittrackhq/fittrack/internal/fitness/dashboard"
	"github.com/fittrackhq/fittrack/internal/fitness/exercises"
	"github.com/fittrackhq/fittrack/internal/fitness/goals"
	"github.com/fittrackhq/fittrack/internal/fitness/measurements"
	"github.com/fittrackhq/fittrack/internal/fitness/progress"
	"github.com/fittrackhq/fittrack/internal/fitness/recommendations"
	"github.com/fittrackhq/fittrack/internal/fitness/records"
	"github.com/fittrackhq/fittrack/internal/fitness/routines"
	"github.com/fittrackhq/fittrack/internal/fitness/sessions"
	"github.com/fittrackhq/fittrack/internal/fitness/streak"
	"github.com/fittrackhq/fittrack/internal/fitness/users"
	"github.com/fittrackhq/fittrack/internal/middleware"
	"github.com/fittrackhq/fittrack/internal/telemetry/metrics"
	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/fittrackhq/fittrack/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	RedisPassword           string
	VersionInfo             string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("fittrack", "backend", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	if params.HoneycombTracingEnabled {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	authService := auth.NewService(users.NewRepo(dbPool), auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fittrack-backend")
	if err != nil {
		return nil, err
	}

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, "fittrack backend")
	}).Methods("GET")
	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	authHandler := auth.NewHandler(s.authService)
	r.Handle("/a/login",
		middleware.RateLimit(
			reqRateLimiter,
			"login",
			s.config.LoginRateLimitAllowedPerMin,
			s.metricsManager,
		)(http.HandlerFunc(authHandler.HandleLogin)),
	).Methods("POST", "OPTIONS").Name("login")
	r.HandleFunc("/a/logout", authHandler.HandleLogout).Methods("POST", "OPTIONS").Name("logout")

	usersHandler := users.NewHandler(users.NewRepo(s.dbPool))
	r.HandleFunc("/users", usersHandler.HandleRegister).Methods("POST", "OPTIONS").Name("register")
	r.HandleFunc("/users/me", usersHandler.HandleGetProfile).Methods("GET", "OPTIONS")
	r.HandleFunc("/users/me", usersHandler.HandleUpdateProfile).Methods("PUT", "OPTIONS")

	exercisesHandler := exercises.NewHandler(exercises.NewRepo(s.dbPool), s.config.ExerciseCacheSize)
	r.HandleFunc("/exercises", exercisesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	r.HandleFunc("/exercises", exercisesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-exercise")
	r.HandleFunc("/exercises/{id}", exercisesHandler.HandleGet).Methods("GET", "OPTIONS")
	r.HandleFunc("/exercises/{id}", exercisesHandler.HandleUpdate).Methods("PUT", "OPTIONS")

	streakRepo := streak.NewRepo(s.dbPool)
	recordsRepo := records.NewRepo(s.dbPool)
	sessionsHandler := sessions.NewHandler(
		sessions.NewRepo(s.dbPool),
		streakRepo,
		records.NewDetector(recordsRepo),
		s.metricsManager,
	)
	r.HandleFunc("/sessions", sessionsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-session")
	r.HandleFunc("/sessions", sessionsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-sessions")
	r.HandleFunc("/sessions/{id}", sessionsHandler.HandleGet).Methods("GET", "OPTIONS")
	r.HandleFunc("/sessions/{id}", sessionsHandler.HandleDelete).Methods("DELETE", "OPTIONS")

	streakHandler := streak.NewHandler(streakRepo)
	r.HandleFunc("/streak", streakHandler.HandleGet).Methods("GET", "OPTIONS")

	recordsHandler := records.NewHandler(recordsRepo)
	r.HandleFunc("/records", recordsHandler.HandleList).Methods("GET", "OPTIONS")

	goalsHandler := goals.NewHandler(goals.NewRepo(s.dbPool))
	// register before /goals/{id} so "progress" is not read as an id
	r.HandleFunc("/goals/progress", goalsHandler.HandleProgress).Methods("GET", "OPTIONS")
	r.HandleFunc("/goals", goalsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-goal")
	r.HandleFunc("/goals", goalsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-goals")
	r.HandleFunc("/goals/{id}", goalsHandler.HandleUpdate).Methods("PUT", "OPTIONS")
	r.HandleFunc("/goals/{id}", goalsHandler.HandleDelete).Methods("DELETE", "OPTIONS")

	progressHandler := progress.NewHandler(progress.NewRepo(s.dbPool))
	r.HandleFunc("/progress", progressHandler.HandleUpsert).Methods("PUT", "OPTIONS")
	r.HandleFunc("/progress", progressHandler.HandleList).Methods("GET", "OPTIONS")
	r.HandleFunc("/progress", progressHandler.HandleDelete).Methods("DELETE", "OPTIONS")

	routinesHandler := routines.NewHandler(routines.NewRepo(s.dbPool))
	r.HandleFunc("/routines", routinesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-routine")
	r.HandleFunc("/routines", routinesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-routines")
	r.HandleFunc("/routines/{id}", routinesHandler.HandleUpdate).Methods("PUT", "OPTIONS")
	r.HandleFunc("/routines/{id}", routinesHandler.HandleDelete).Methods("DELETE", "OPTIONS")
	r.HandleFunc("/routines/{id}/exercises", routinesHandler.HandleAddExercise).Methods("POST", "OPTIONS")
	r.HandleFunc("/routines/{id}/exercises/{exerciseId}", routinesHandler.HandleRemoveExercise).Methods("DELETE", "OPTIONS")

	measurementsHandler := measurements.NewHandler(measurements.NewRepo(s.dbPool))
	r.HandleFunc("/measurements", measurementsHandler.HandleAdd).Methods("POST", "OPTIONS")
	r.HandleFunc("/measurements", measurementsHandler.HandleList).Methods("GET", "OPTIONS")

	dashboardHandler := dashboard.NewHandler(dashboard.NewRepo(s.dbPool))
	r.HandleFunc("/dashboard", dashboardHandler.HandleSummary).Methods("GET", "OPTIONS")

	recommendationsRepo := recommendations.NewRepo(s.dbPool)
	recommendationsEngine := recommendations.NewEngine(
		recommendationsRepo,
		recommendations.NewWebhookNotifier(s.config.RecommendationsWebhookURL),
		s.metricsManager,
	)
	recommendationsHandler := recommendations.NewHandler(recommendationsRepo, recommendationsEngine)
	r.HandleFunc("/recommendations/generate", recommendationsHandler.HandleGenerate).Methods("POST", "OPTIONS")
	r.HandleFunc("/recommendations", recommendationsHandler.HandleList).Methods("GET", "OPTIONS")
	r.HandleFunc("/recommendations/{id}/status", recommendationsHandler.HandleUpdateStatus).Methods("PUT", "OPTIONS")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(_ context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
