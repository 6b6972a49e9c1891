package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Virgo-SSS/Ternakku/docs"
	blobmem "github.com/Virgo-SSS/Ternakku/internal/adapters/blob/memory"
	mem "github.com/Virgo-SSS/Ternakku/internal/adapters/storage/memory"
	"github.com/Virgo-SSS/Ternakku/internal/adapters/storage/sqlrepo"
	"github.com/Virgo-SSS/Ternakku/internal/domain/cows"
	"github.com/Virgo-SSS/Ternakku/internal/domain/profiles"
	"github.com/Virgo-SSS/Ternakku/internal/domain/sessions"
	"github.com/Virgo-SSS/Ternakku/internal/domain/transactions"
	"github.com/Virgo-SSS/Ternakku/internal/domain/workers"
	"github.com/Virgo-SSS/Ternakku/internal/middleware"
	"github.com/Virgo-SSS/Ternakku/internal/platform/httpx"
	"github.com/Virgo-SSS/Ternakku/internal/platform/logger"
	"github.com/Virgo-SSS/Ternakku/internal/platform/query"
	"github.com/Virgo-SSS/Ternakku/internal/ports/auth"
	"github.com/Virgo-SSS/Ternakku/internal/ports/blob"
)

type Options struct {
	AuthVerifier auth.AuthVerifier   // puede ser nil (modo dev: X-Debug-User-ID)
	Refresher    auth.TokenRefresher // puede ser nil: /auth/refresh responde 503

	// Opcional: si viene, repos SQL con Dialect. Si no, in-memory.
	DB      *sql.DB
	Dialect query.Dialect

	Blob   blob.Store    // nil => in-memory
	Logger logger.Logger // nil => Nop

	// Registry de /metrics; nil => uno nuevo por router.
	Metrics *prometheus.Registry

	RefreshPerMinute int // rate limit de /auth/refresh (0 = sin límite)

	// TrustProxy: X-Forwarded-For / X-Real-IP definen la IP del cliente.
	// Sin proxy delante cualquiera los puede falsificar.
	TrustProxy bool
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	reg := opts.Metrics
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.NewMetrics(reg).Handler)
	r.Use(middleware.Recover(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusNotFound, httpx.Envelope{Message: "route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusMethodNotAllowed, httpx.Envelope{Message: "method not allowed"})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		cowRepo     cows.Repository
		workerRepo  workers.Repository
		txRepo      transactions.Repository
		profileRepo profiles.Repository
	)

	profileCodec := profiles.NewCodec(profiles.DefaultRegistry)

	if opts.DB != nil {
		store := sqlrepo.NewStore(opts.DB, opts.Dialect)
		cowRepo = sqlrepo.NewTable(store, cows.Codec)
		workerRepo = sqlrepo.NewTable(store, workers.Codec)
		txRepo = sqlrepo.NewTable(store, transactions.Codec)
		profileRepo = sqlrepo.NewTable(store, profileCodec)
	} else {
		cowRepo = mem.NewTable(cows.Codec)
		workerRepo = mem.NewTable(workers.Codec)
		txRepo = mem.NewTable(transactions.Codec)
		profileRepo = mem.NewTable(profileCodec)
	}

	photos := opts.Blob
	if photos == nil {
		photos = blobmem.NewStore()
	}

	// Services por módulo
	cowsSvc := cows.NewService(cowRepo, photos).WithLogger(log)
	workersSvc := workers.NewService(workerRepo)
	txSvc := transactions.NewService(txRepo)
	profilesSvc := profiles.NewService(profileRepo, profiles.DefaultRegistry)
	sessionsSvc := sessions.NewService(opts.Refresher)

	// Públicas
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RateLimit(opts.RefreshPerMinute, 5))
		sessions.RegisterRoutes(pr, sessionsSvc, log)
	})

	// Requieren usuario
	r.Group(func(ar chi.Router) {
		ar.Use(middleware.RequireUser)

		cows.RegisterRoutes(ar, cowsSvc, log)
		workers.RegisterRoutes(ar, workersSvc, log)
		transactions.RegisterRoutes(ar, txSvc, log)
		profiles.RegisterRoutes(ar, profilesSvc, log)
	})

	return r
}
