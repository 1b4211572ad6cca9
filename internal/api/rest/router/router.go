package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/beginnergain/server/internal/api/rest/handler"
	"github.com/beginnergain/server/internal/api/rest/middleware"
	"github.com/beginnergain/server/internal/logger"
	"github.com/beginnergain/server/internal/model"
	"github.com/beginnergain/server/internal/service"
)

// Router wires services and middleware into the HTTP route table.
type Router struct {
	userService    *service.User
	projectService *service.Project
	tokenManager   model.TokenManager
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates new Router instance.
func New(
	userService *service.User,
	projectService *service.Project,
	tokenManager model.TokenManager,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		userService:    userService,
		projectService: projectService,
		tokenManager:   tokenManager,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the chi mux with all routes and middleware.
func (r *Router) Register() *chi.Mux {
	logging := middleware.NewLogging(r.logger)
	identity := middleware.NewIdentity(r.tokenManager, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(logging.Handle)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	userHandler := handler.NewUser(r.userService, r.logger)
	projectHandler := handler.NewProject(r.projectService, r.contextManager, r.logger)

	mux.Route("/user", func(sr chi.Router) {
		sr.Post("/register", userHandler.Register)
		sr.Post("/login", userHandler.Login)
		sr.Get("/{userID}", userHandler.GetByID)
	})

	mux.Route("/project", func(sr chi.Router) {
		sr.Use(identity.Handle)

		sr.Post("/", projectHandler.Create)
		sr.Get("/", projectHandler.List)
		sr.Get("/user/{userID}", projectHandler.ListByUser)
		sr.Get("/{projectID}", projectHandler.GetByID)
		sr.Delete("/{projectID}", projectHandler.Delete)

		sr.With(identity.Require).Put("/{projectID}/document", projectHandler.UploadDocument)
		sr.With(identity.Require).Get("/{projectID}/document", projectHandler.DownloadDocument)
	})

	return mux
}
