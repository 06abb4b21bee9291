package api

import (
	"context"

	"github.com/garnizeh/trainhub/internal/config"
	"github.com/garnizeh/trainhub/internal/db"
	"github.com/garnizeh/trainhub/internal/importer"
	"github.com/garnizeh/trainhub/internal/repository/sqlite"
	"github.com/garnizeh/trainhub/internal/training"
	"github.com/gorilla/mux"
)

func SetupRoutes(ctx context.Context, cfg *config.Config, version, buildTime string, conn *db.DB) (*mux.Router, error) {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository and services
	repo := sqlite.New(conn, logger)
	assigner := training.NewAssigner(repo, repo, repo, repo)
	mutator := training.NewMutator(repo, cfg.Progress.AllowRegression)
	queries := training.NewQueries(repo, repo, repo, repo)

	loader, err := importer.NewLoader(ctx, repo)
	if err != nil {
		return nil, err
	}
	imp := importer.New(loader, repo, repo, repo)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	programsHandler := NewProgramsHandler(repo, queries)
	modulesHandler := NewModulesHandler(repo, repo)
	employeesHandler := NewEmployeesHandler(repo, queries)
	trainingHandler := NewTrainingHandler(assigner, mutator, queries)
	reportsHandler := NewReportsHandler(queries)
	importsHandler := NewImportsHandler(imp, loader, repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/v1/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/v1/auth/signin", authHandler.Signin).Methods("POST")

	// API v1 Protected routes
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.Use(JWTAuthMiddlewareWithSecret(cfg.JWTSecret))

	// Auth endpoints
	apiV1.HandleFunc("/auth/signout", authHandler.Signout).Methods("POST")

	// Program endpoints
	apiV1.HandleFunc("/programs", programsHandler.CreateProgram).Methods("POST")
	apiV1.HandleFunc("/programs", programsHandler.ListPrograms).Methods("GET")
	apiV1.HandleFunc("/programs/{id}", programsHandler.GetProgram).Methods("GET")
	apiV1.HandleFunc("/programs/{id}", programsHandler.UpdateProgram).Methods("PUT")
	apiV1.HandleFunc("/programs/{id}", programsHandler.DeleteProgram).Methods("DELETE")

	// Module endpoints
	apiV1.HandleFunc("/programs/{id}/modules", modulesHandler.CreateModule).Methods("POST")
	apiV1.HandleFunc("/programs/{id}/modules", modulesHandler.ListModules).Methods("GET")
	apiV1.HandleFunc("/modules/{id}", modulesHandler.UpdateModule).Methods("PUT")
	apiV1.HandleFunc("/modules/{id}", modulesHandler.DeleteModule).Methods("DELETE")
	apiV1.HandleFunc("/modules/{id}/order", modulesHandler.ReorderModule).Methods("PUT")

	// Employee endpoints
	apiV1.HandleFunc("/employees", employeesHandler.CreateEmployee).Methods("POST")
	apiV1.HandleFunc("/employees", employeesHandler.ListEmployees).Methods("GET")
	apiV1.HandleFunc("/employees/{id}", employeesHandler.GetEmployee).Methods("GET")
	apiV1.HandleFunc("/employees/{id}", employeesHandler.UpdateEmployee).Methods("PUT")
	apiV1.HandleFunc("/employees/{id}", employeesHandler.DeleteEmployee).Methods("DELETE")

	// Training assignment endpoints
	apiV1.HandleFunc("/employees/{id}/assignments", trainingHandler.AssignProgram).Methods("POST")
	apiV1.HandleFunc("/employees/{id}/assignments", trainingHandler.ListAssignments).Methods("GET")
	apiV1.HandleFunc("/employees/{id}/progress/{moduleId}", trainingHandler.SetProgressStatus).Methods("PUT")

	// Report endpoints
	apiV1.HandleFunc("/reports/departments", reportsHandler.DepartmentCompliance).Methods("GET")
	apiV1.HandleFunc("/reports/completion", reportsHandler.CompletionSummary).Methods("GET")

	// Catalog import endpoints
	apiV1.HandleFunc("/import", importsHandler.Import).Methods("POST")
	apiV1.HandleFunc("/import/schemas", importsHandler.CreateOrUpdateSchema).Methods("POST")
	apiV1.HandleFunc("/import/schemas", importsHandler.ListSchemas).Methods("GET")

	return r, nil
}
