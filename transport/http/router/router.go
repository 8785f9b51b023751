package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"

	"yadoya/config"
	"yadoya/internal/handlers/auth"
	"yadoya/internal/handlers/backup"
	"yadoya/internal/handlers/booking"
	"yadoya/internal/handlers/message"
	"yadoya/internal/handlers/news"
	"yadoya/internal/handlers/room"
	"yadoya/internal/handlers/sitecontent"
	"yadoya/shared/metrics"
	"yadoya/transport/http/middleware"
	"yadoya/transport/http/response"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Room        room.Handler
	Booking     booking.Handler
	Message     message.Handler
	News        news.Handler
	SiteContent sitecontent.Handler
	Backup      backup.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AppMiddleware  middleware.AppMiddleware
	AuthMiddleware middleware.Auth
	Config         *config.Config
	Registry       *prometheus.Registry
}

func New(
	domainHandlers DomainHandlers,
	appMiddleware middleware.AppMiddleware,
	authMiddleware middleware.Auth,
	cfg *config.Config,
	registry *prometheus.Registry,
) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AppMiddleware:  appMiddleware,
		AuthMiddleware: authMiddleware,
		Config:         cfg,
		Registry:       registry,
	}
}

func (r *Router) SetupRoutes(router chi.Router) {
	if r.Config.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.Config.App.CORS.AllowedOrigins,
			AllowedMethods:   r.Config.App.CORS.AllowedMethods,
			AllowedHeaders:   r.Config.App.CORS.AllowedHeaders,
			AllowCredentials: r.Config.App.CORS.AllowCredentials,
			MaxAge:           r.Config.App.CORS.MaxAgeSeconds,
		}))
	}

	router.Use(r.AppMiddleware.Tracing)
	router.Use(r.AppMiddleware.Locale)

	if r.Config.App.RateLimiter.Enable {
		router.Use(r.AppMiddleware.RateLimit())
	}

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.WithMessage(w, http.StatusOK, "OK")
	})

	router.Method(http.MethodGet, "/metrics", metrics.Handler(r.Registry))

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	// Brochure assets (room photos, homepage imagery) are served
	// straight from the static root.
	fileServer := http.FileServer(http.Dir(r.Config.Data.StaticDir))
	router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Message.Router(routerGroup)
		r.DomainHandlers.News.Router(routerGroup)
		r.DomainHandlers.SiteContent.Router(routerGroup)

		routerGroup.Route("/admin", func(adminGroup chi.Router) {
			adminGroup.Use(r.AuthMiddleware.Auth)

			r.DomainHandlers.Auth.AdminRouter(adminGroup)
			r.DomainHandlers.Room.AdminRouter(adminGroup)
			r.DomainHandlers.Booking.AdminRouter(adminGroup)
			r.DomainHandlers.Message.AdminRouter(adminGroup)
			r.DomainHandlers.News.AdminRouter(adminGroup)
			r.DomainHandlers.SiteContent.AdminRouter(adminGroup)
			r.DomainHandlers.Backup.AdminRouter(adminGroup)
		})
	})
}
