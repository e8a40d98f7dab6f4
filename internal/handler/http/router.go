package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/worktravel/worktravel-api/internal/domain/user"
	"github.com/worktravel/worktravel-api/internal/handler/http/middleware"
	"github.com/worktravel/worktravel-api/internal/pkg/jwt"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	masterHandler MasterHandler,
	settingsHandler SettingsHandler,
	workDayHandler WorkDayHandler,
	importHandler ImportHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelDebug,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.ReportPanics)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/locations", func(r chi.Router) {
				r.Get("/", masterHandler.ListLocations)
				r.Get("/{cityName}", masterHandler.GetLocation)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLocationsManage))
					r.Post("/", masterHandler.CreateLocation)
					r.Post("/seed", masterHandler.SeedLocations)
					r.Put("/{cityName}", masterHandler.UpdateLocation)
					r.Delete("/{cityName}", masterHandler.DeleteLocation)
				})
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", settingsHandler.Get)
				r.With(middleware.RequirePermission(user.PermissionSettingsManage)).Put("/", settingsHandler.Update)
			})

			r.Route("/workdays", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionWorkdaysOwn))
				r.Get("/", workDayHandler.List)
				r.Post("/", workDayHandler.Create)
				r.Post("/preview", workDayHandler.Preview)
				r.With(middleware.RequirePermission(user.PermissionImportOwn)).Post("/import", importHandler.Upload)
				r.Get("/{date}", workDayHandler.Get)
				r.Put("/{date}", workDayHandler.Update)
				r.Delete("/{date}", workDayHandler.Delete)
			})

			r.Route("/imports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionImportOwn))
				r.Get("/", importHandler.History)
				r.Get("/{id}/file", importHandler.Download)
			})

			r.Route("/reports", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionReportsOwn)).Get("/monthly", reportHandler.GetMonthlyReport)
				r.With(middleware.RequirePermission(user.PermissionReportsViewAll)).Get("/monthly/team", reportHandler.GetTeamMonthlyReport)
			})
		})
	})

	return r
}
