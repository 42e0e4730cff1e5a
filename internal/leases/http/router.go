package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/botofarm/internal/leases/service"
	"github.com/aussiebroadwan/botofarm/internal/leases/store"
	"github.com/aussiebroadwan/botofarm/pkg/httpx"
	"github.com/aussiebroadwan/botofarm/pkg/slogx"

	_ "github.com/aussiebroadwan/botofarm/api/leases" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	prefix       string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store        store.Store
	LeaseManager *service.LeaseManager
}

// NewRouter builds a router mounting the account API under prefix
// ("" or e.g. "/api").
func NewRouter(
	prefix, buildVersion string,
	st store.Store,
	logger *slog.Logger,
	cors httpx.CORSConfig,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		prefix:       normalizePrefix(prefix),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(cors),
	}

	return r
}

func normalizePrefix(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimRight(p, "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerLeases()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Botofarm Account Lease API
//	@version		0.1.0
//	@description	Registry of leasable automation accounts. Lock an account before using it and unlock it afterwards.
//	@description	With a lease TTL configured, a lock that is never released becomes reclaimable once the TTL has elapsed.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/botofarm
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8000
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccounts() {
	h := &AccountsHandler{LeaseManager: r.LeaseManager}

	// Registration hashes with argon2, keep it tight
	r.Mux.Handle("POST "+r.prefix+"/users",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("GET "+r.prefix+"/users",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerLeases() {
	h := &LeasesHandler{LeaseManager: r.LeaseManager}

	r.Mux.Handle("POST "+r.prefix+"/users/{id}/lock",
		httpx.Chain(http.HandlerFunc(h.HandleLock),
			httpx.RateLimitByIPAndPathValue(httpx.ModerateLimit, "id"),
		),
	)
	r.Mux.Handle("POST "+r.prefix+"/users/{id}/unlock",
		httpx.Chain(http.HandlerFunc(h.HandleUnlock),
			httpx.RateLimitByIPAndPathValue(httpx.ModerateLimit, "id"),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET "+r.prefix+"/health",
		httpx.Chain(HealthHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
