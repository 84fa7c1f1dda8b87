package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/nardosm/ik-registry/internal/account"
	"github.com/nardosm/ik-registry/internal/auth"
	"github.com/nardosm/ik-registry/internal/department"
	"github.com/nardosm/ik-registry/internal/sheet"
	"github.com/nardosm/ik-registry/internal/transport/middleware"
	"github.com/nardosm/ik-registry/internal/transport/swagger"
)

// RegisterAllRoutes wires every route of the portal API onto the router.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	accountHandler *account.Handler,
	departmentHandler *department.Handler,
	sheetOneHandler *sheet.SheetOneHandler,
	sheetTwoHandler *sheet.SheetTwoHandler,
	uploadsDir string,
	allowedOrigins []string,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logging(logger))
	router.Use(middleware.CORS(allowedOrigins))

	// OpenAPI spec and Swagger UI live outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Stored attachments.
	router.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(uploadsDir))))

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Credential routes. Logout reads the token itself so it works
		// with or without the guard; the legacy /api/logout alias is
		// kept for older clients.
		r.Post("/users/createUser", authHandler.Register)
		r.Post("/user/login", authHandler.Login)
		r.Post("/user/logout", authHandler.Logout)
		r.Post("/logout", authHandler.Logout)

		// Account resource, authenticated. Listing is admin only;
		// update and delete enforce owner-or-admin in the service.
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.Authenticate)

			pr.Get("/users/me", accountHandler.GetCurrentAccount)
			pr.With(authHandler.RequireAdmin).Get("/users", accountHandler.ListAccounts)
			pr.Get("/users/{id}", accountHandler.GetAccount)
			pr.Put("/users/{id}", accountHandler.UpdateAccount)
			pr.Delete("/users/{id}", accountHandler.DeleteAccount)
		})

		// Department submissions. Reads and creation are public; a
		// valid token on create claims ownership. Mutation requires
		// authentication, review is admin only.
		r.Route("/departments", func(dr chi.Router) {
			dr.With(authHandler.AuthenticateOptional).Post("/", departmentHandler.CreateDepartment)
			dr.Get("/", departmentHandler.ListDepartments)
			dr.Get("/indigenous/{department}", departmentHandler.ListByCategory)
			dr.Get("/{id}", departmentHandler.GetDepartment)

			dr.Group(func(pr chi.Router) {
				pr.Use(authHandler.Authenticate)

				pr.Put("/{id}", departmentHandler.UpdateDepartment)
				pr.Delete("/{id}", departmentHandler.DeleteDepartment)
				pr.With(authHandler.RequireAdmin).Patch("/{id}/status", departmentHandler.UpdateStatus)
			})
		})

		// Sheet records, authenticated end to end.
		r.Route("/sheet-one", func(sr chi.Router) {
			sr.Use(authHandler.Authenticate)

			sr.Post("/", sheetOneHandler.Create)
			sr.Get("/", sheetOneHandler.List)
			sr.Get("/{id}", sheetOneHandler.Get)
			sr.Put("/{id}", sheetOneHandler.Update)
			sr.Delete("/{id}", sheetOneHandler.Delete)
		})

		r.Route("/sheet-two", func(sr chi.Router) {
			sr.Use(authHandler.Authenticate)

			sr.Post("/", sheetTwoHandler.Create)
			sr.Get("/", sheetTwoHandler.List)
			sr.Get("/{id}", sheetTwoHandler.Get)
			sr.Put("/{id}", sheetTwoHandler.Update)
			sr.Delete("/{id}", sheetTwoHandler.Delete)
		})
	})
}
