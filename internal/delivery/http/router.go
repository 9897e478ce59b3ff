package http

import (
	"net/http"
	"strings"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/http/handler"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/http/middleware"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	healthAgencyHandler *handler.HealthAgencyHandler
	polyMasterHandler   *handler.PolyMasterHandler
	userHandler         *handler.UserHandler
	waitingListHandler  *handler.WaitingListHandler
	auditLogHandler     *handler.AuditLogHandler
	storageHandler      *handler.StorageHandler
	healthHandler       *handler.HealthHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	cacheMiddleware     *middleware.CacheMiddleware
	storagePrefix       string
}

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Auth         *handler.AuthHandler
	HealthAgency *handler.HealthAgencyHandler
	PolyMaster   *handler.PolyMasterHandler
	User         *handler.UserHandler
	WaitingList  *handler.WaitingListHandler
	AuditLog     *handler.AuditLogHandler
	Storage      *handler.StorageHandler
	Health       *handler.HealthHandler
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	cacheMiddleware *middleware.CacheMiddleware,
	storagePrefix string,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         handlers.Auth,
		healthAgencyHandler: handlers.HealthAgency,
		polyMasterHandler:   handlers.PolyMaster,
		userHandler:         handlers.User,
		waitingListHandler:  handlers.WaitingList,
		auditLogHandler:     handlers.AuditLog,
		storageHandler:      handlers.Storage,
		healthHandler:       handlers.Health,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		cacheMiddleware:     cacheMiddleware,
		storagePrefix:       storagePrefix,
	}
}

// superAdmin guards writes that change cached listings.
func (r *Router) superAdmin(h http.HandlerFunc) http.Handler {
	return r.cacheMiddleware.Invalidate(middleware.RequireSuperAdmin(h))
}

func (r *Router) cached(h http.HandlerFunc) http.Handler {
	return r.cacheMiddleware.Cache(h)
}

var routeMethods = []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

// unmatched answers 405 with an Allow header when the path is routed for
// other methods, 404 otherwise. mux drops a method mismatch as soon as a
// later route under the same prefix is tried, so the router cannot be
// trusted to tell the two apart on the API subrouters.
func (r *Router) unmatched() http.Handler {
	notFound := response.NotFoundHandler()
	methodNotAllowed := response.MethodNotAllowedHandler()

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		var allowed []string
		for _, method := range routeMethods {
			if method == req.Method {
				continue
			}
			alt := req.Clone(req.Context())
			alt.Method = method

			var match mux.RouteMatch
			if r.router.Match(alt, &match) && match.MatchErr == nil {
				allowed = append(allowed, method)
			}
		}

		if len(allowed) == 0 {
			notFound.ServeHTTP(w, req)
			return
		}
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		methodNotAllowed.ServeHTTP(w, req)
	})
}

func (r *Router) Setup() http.Handler {
	r.router.NotFoundHandler = r.unmatched()
	r.router.MethodNotAllowedHandler = r.router.NotFoundHandler

	r.router.PathPrefix(r.storagePrefix).Handler(r.storageHandler).Methods(http.MethodGet, http.MethodHead)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", r.healthHandler.Check).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Everything below requires an access token
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/auth/logout", r.authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Health agencies
	agencies := r.healthAgencyHandler
	protected.Handle("/health-agencies/search", r.cached(agencies.Search)).Methods(http.MethodGet)
	protected.HandleFunc("/health-agencies", agencies.Index).Methods(http.MethodGet)
	protected.Handle("/health-agencies", r.superAdmin(agencies.Store)).Methods(http.MethodPost)
	protected.HandleFunc("/health-agencies/{id:[0-9]+}", agencies.Show).Methods(http.MethodGet)
	protected.Handle("/health-agencies/{id:[0-9]+}", r.superAdmin(agencies.Update)).Methods(http.MethodPut)
	protected.Handle("/health-agencies/{id:[0-9]+}", r.superAdmin(agencies.Destroy)).Methods(http.MethodDelete)
	protected.Handle("/health-agencies/{id:[0-9]+}/polyclinics", r.cached(agencies.Polyclinics)).Methods(http.MethodGet)
	protected.Handle("/health-agencies/{id:[0-9]+}/polyclinics/admin", middleware.RequireAdmin(http.HandlerFunc(agencies.AdminPolyclinics))).Methods(http.MethodGet)

	// Poly masters
	polyMasters := r.polyMasterHandler
	protected.HandleFunc("/poly-masters", polyMasters.Index).Methods(http.MethodGet)
	protected.Handle("/poly-masters", r.superAdmin(polyMasters.Store)).Methods(http.MethodPost)
	protected.HandleFunc("/poly-masters/{id:[0-9]+}", polyMasters.Show).Methods(http.MethodGet)
	protected.Handle("/poly-masters/{id:[0-9]+}", r.superAdmin(polyMasters.Update)).Methods(http.MethodPut)
	protected.Handle("/poly-masters/{id:[0-9]+}", r.superAdmin(polyMasters.Destroy)).Methods(http.MethodDelete)

	// Users. Self-service routes check ownership in the usecase.
	users := r.userHandler
	protected.HandleFunc("/users/residence-number", users.ResidenceNumber).Methods(http.MethodGet)
	protected.Handle("/users/admins", middleware.RequireSuperAdmin(http.HandlerFunc(users.Admins))).Methods(http.MethodGet)
	protected.Handle("/users", middleware.RequireSuperAdmin(http.HandlerFunc(users.Index))).Methods(http.MethodGet)
	protected.Handle("/users", middleware.RequireSuperAdmin(http.HandlerFunc(users.Store))).Methods(http.MethodPost)
	protected.Handle("/users/{id:[0-9]+}", middleware.RequireAdmin(http.HandlerFunc(users.Show))).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id:[0-9]+}", users.Update).Methods(http.MethodPut)
	protected.Handle("/users/{id:[0-9]+}", middleware.RequireSuperAdmin(http.HandlerFunc(users.Destroy))).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{id:[0-9]+}/password", users.ChangePassword).Methods(http.MethodPut)
	protected.HandleFunc("/users/{id:[0-9]+}/image", users.ChangeImage).Methods(http.MethodPost)

	// Waiting list of the caller's agency
	waitingList := protected.PathPrefix("/waiting-list").Subrouter()
	waitingList.Use(middleware.RequireAdmin)
	waitingList.HandleFunc("", r.waitingListHandler.Index).Methods(http.MethodGet)
	waitingList.HandleFunc("/export", r.waitingListHandler.Export).Methods(http.MethodGet)

	// Audit logs (super admin only)
	auditLogs := protected.PathPrefix("/audit-logs").Subrouter()
	auditLogs.Use(middleware.RequireSuperAdmin)
	auditLogs.HandleFunc("", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	auditLogs.HandleFunc("/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// CORS wraps the whole router so preflight requests never reach route matching
	return r.corsMiddleware.Handle(r.router)
}
