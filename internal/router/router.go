package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	mem "tingrrr/internal/adapters/storage/memory"
	"tingrrr/internal/adapters/storage/sqlstore"
	"tingrrr/internal/adapters/vision/azure"
	_ "tingrrr/internal/docs"
	"tingrrr/internal/domain/dogs"
	"tingrrr/internal/domain/rescue"
	"tingrrr/internal/domain/swipes"
	"tingrrr/internal/domain/users"
	"tingrrr/internal/middleware"
	"tingrrr/internal/platform/logger"
	"tingrrr/internal/ports/auth"
	"tingrrr/internal/ports/vision"
	"tingrrr/internal/seed"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Verifier auth.Verifier // nil => modo dev con X-Debug-User-ID

	// Opcional: si viene, usa SQL. Si no, in-memory.
	Store *sqlstore.Store

	// SeedMockData carga el catálogo demo cuando los repos son in-memory.
	SeedMockData bool

	Logger  logger.Logger
	AppName string

	// Vision nil => adapter Azure sin credenciales (análisis mock).
	Vision vision.Analyzer

	Swipes swipes.HandlerOptions

	CORSOrigins     []string
	RateLimit       int // requests por ventana y por IP; 0 = sin límite
	RateLimitWindow time.Duration
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	appName := opts.AppName
	if appName == "" {
		appName = "tingrrr"
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLog(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins(opts.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Debug-User-ID"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.AuthContext(opts.Verifier, log))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "app": appName})
	})
	r.Get("/health", healthHandler(opts.Store))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		dogRepo   dogs.Repository
		userRepo  users.Repository
		swipeRepo swipes.Repository
	)

	if opts.Store != nil {
		dogRepo = sqlstore.NewDogsRepo(opts.Store)
		userRepo = sqlstore.NewUsersRepo(opts.Store)
		swipeRepo = sqlstore.NewSwipesRepo(opts.Store)
	} else {
		dogRepo = mem.NewDogRepo()
		userRepo = mem.NewUserRepo()
		swipeRepo = mem.NewSwipeRepo()

		if opts.SeedMockData {
			if _, err := seed.Run(context.Background(), dogRepo, userRepo, log); err != nil {
				log.Error("seed failed", map[string]any{"err": err})
			}
		}
	}

	analyzer := opts.Vision
	if analyzer == nil {
		// sin endpoint/key New no puede fallar
		analyzer, _ = azure.New(azure.Options{Logger: log})
	}

	// Services por módulo
	dogsSvc := dogs.NewService(dogRepo)
	usersSvc := users.NewService(userRepo)
	swipesSvc := swipes.NewService(swipeRepo, dogsSvc, usersSvc, log)
	rescueSvc := rescue.NewService(analyzer, dogsSvc, log)

	// Rutas por módulo
	r.Route("/api/v1", func(api chi.Router) {
		if opts.RateLimit > 0 {
			api.Use(httprate.LimitByIP(opts.RateLimit, opts.RateLimitWindow))
		}

		dogs.RegisterRoutes(api, dogsSvc)
		users.RegisterRoutes(api, usersSvc)
		swipes.RegisterRoutes(api, swipesSvc, opts.Swipes)
		rescue.RegisterRoutes(api, rescueSvc)
	})

	return r
}

func healthHandler(store *sqlstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

func corsOrigins(in []string) []string {
	if len(in) == 0 {
		return []string{"*"}
	}
	return in
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
