package server

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/alvaro-estudiante/lifeos-sub000/internal/config"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/handlers"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/llm"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/middleware"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/repository"
	"github.com/alvaro-estudiante/lifeos-sub000/internal/services"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	router *chi.Mux
	config config.Config
}

func New(database *sql.DB, cfg config.Config, authService *services.AuthService, completions llm.CompletionClient) *Server {
	userRepo := repository.NewUserRepository(database)
	profileRepo := repository.NewProfileRepository(database)
	tokenRepo := repository.NewAPITokenRepository(database)
	mealRepo := repository.NewMealRepository(database)
	goalRepo := repository.NewNutritionGoalRepository(database)
	taskRepo := repository.NewTaskRepository(database)
	habitRepo := repository.NewHabitRepository(database)
	workoutRepo := repository.NewWorkoutRepository(database)
	sleepRepo := repository.NewSleepRepository(database)
	financeRepo := repository.NewFinanceRepository(database)
	noteRepo := repository.NewNoteRepository(database)
	pantryRepo := repository.NewPantryRepository(database)

	nutritionService := services.NewNutritionService(mealRepo, goalRepo)
	fitnessService := services.NewFitnessService(workoutRepo)
	recipeService := services.NewRecipeService(pantryRepo)
	reportService := services.NewReportService(mealRepo, goalRepo, workoutRepo, sleepRepo, habitRepo, profileRepo)
	dashboardService := services.NewDashboardService(nutritionService, goalRepo, taskRepo, habitRepo, workoutRepo, sleepRepo, profileRepo)
	voiceService := services.NewVoiceService(completions, nutritionService, taskRepo, habitRepo, workoutRepo, sleepRepo, noteRepo)
	quickAddService := services.NewQuickAddService(taskRepo, habitRepo, nutritionService, voiceService)

	authHandler := handlers.NewAuthHandler(authService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	nutritionHandler := handlers.NewNutritionHandler(nutritionService, mealRepo, goalRepo)
	taskHandler := handlers.NewTaskHandler(taskRepo)
	habitHandler := handlers.NewHabitHandler(habitRepo)
	fitnessHandler := handlers.NewFitnessHandler(fitnessService, workoutRepo)
	sleepHandler := handlers.NewSleepHandler(sleepRepo)
	financeHandler := handlers.NewFinanceHandler(financeRepo)
	noteHandler := handlers.NewNoteHandler(noteRepo)
	recipeHandler := handlers.NewRecipeHandler(recipeService, pantryRepo)
	quickAddHandler := handlers.NewQuickAddHandler(quickAddService, voiceService)
	reportHandler := handlers.NewReportHandler(reportService, profileRepo)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	tokenHandler := handlers.NewTokenHandler(tokenRepo)
	userHandler := handlers.NewUserHandler(userRepo)
	icalHandler := handlers.NewICalHandler(taskRepo, tokenRepo)

	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Compress(5))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)
	router.Post("/auth/logout", authHandler.Logout)

	router.Get("/ical", icalHandler.Feed)

	router.Group(func(r chi.Router) {
		r.Use(middleware.SessionOrTokenAuth(authService, tokenRepo, userRepo))

		r.Get("/api/me", authHandler.Me)
		r.Get("/api/dashboard", dashboardHandler.Snapshot)

		r.Post("/api/quick-add", quickAddHandler.QuickAdd)
		r.Post("/api/voice", quickAddHandler.Voice)

		r.Get("/api/nutrition/summary", nutritionHandler.DailySummary)
		r.Get("/api/nutrition/meals", nutritionHandler.ListMeals)
		r.Get("/api/nutrition/meals/{id}/items", nutritionHandler.MealItems)
		r.Post("/api/nutrition/items", nutritionHandler.AddItem)
		r.Delete("/api/nutrition/meals/{id}/items/{itemID}", nutritionHandler.DeleteItem)
		r.Get("/api/nutrition/goal", nutritionHandler.GetGoal)
		r.Post("/api/nutrition/goal", nutritionHandler.SetGoal)

		r.Get("/api/tasks", taskHandler.List)
		r.Post("/api/tasks", taskHandler.Create)
		r.Get("/api/tasks/{id}", taskHandler.Get)
		r.Put("/api/tasks/{id}", taskHandler.Update)
		r.Post("/api/tasks/{id}/complete", taskHandler.Complete)
		r.Delete("/api/tasks/{id}", taskHandler.Delete)

		r.Get("/api/habits", habitHandler.List)
		r.Post("/api/habits", habitHandler.Create)
		r.Put("/api/habits/{id}", habitHandler.Update)
		r.Post("/api/habits/{id}/log", habitHandler.Log)
		r.Delete("/api/habits/{id}", habitHandler.Delete)

		r.Get("/api/workouts", fitnessHandler.ListWorkouts)
		r.Get("/api/workouts/active", fitnessHandler.Active)
		r.Post("/api/workouts", fitnessHandler.Start)
		r.Post("/api/workouts/{id}/finish", fitnessHandler.Finish)
		r.Post("/api/workouts/{id}/exercises", fitnessHandler.AddExercise)
		r.Post("/api/workouts/{id}/exercises/{exerciseID}/sets", fitnessHandler.AddSet)
		r.Get("/api/fitness/progress", fitnessHandler.Progress)

		r.Get("/api/sleep", sleepHandler.List)
		r.Post("/api/sleep", sleepHandler.Upsert)

		r.Get("/api/transactions", financeHandler.ListTransactions)
		r.Post("/api/transactions", financeHandler.CreateTransaction)
		r.Delete("/api/transactions/{id}", financeHandler.DeleteTransaction)
		r.Get("/api/budgets", financeHandler.ListBudgets)
		r.Post("/api/budgets", financeHandler.UpsertBudget)
		r.Delete("/api/budgets/{id}", financeHandler.DeleteBudget)

		r.Get("/api/notes", noteHandler.List)
		r.Post("/api/notes", noteHandler.Create)
		r.Put("/api/notes/{id}", noteHandler.Update)
		r.Delete("/api/notes/{id}", noteHandler.Delete)

		r.Get("/api/pantry", recipeHandler.ListPantry)
		r.Post("/api/pantry", recipeHandler.AddPantryItem)
		r.Delete("/api/pantry/{id}", recipeHandler.DeletePantryItem)
		r.Get("/api/recipes/suggestions", recipeHandler.Suggestions)

		r.Get("/api/reports/weekly", reportHandler.Weekly)
		r.Get("/api/reports/tdee", reportHandler.TDEE)

		r.Get("/api/profile", profileHandler.Get)
		r.Put("/api/profile", profileHandler.Upsert)

		r.Get("/api/tokens", tokenHandler.List)
		r.Post("/api/tokens", tokenHandler.Create)
		r.Delete("/api/tokens/{id}", tokenHandler.Delete)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/api/admin/users", userHandler.List)
		})
	})

	server := &Server{
		router: router,
		config: cfg,
	}

	return server
}

func (server *Server) Start() error {
	address := ":" + server.config.Port
	slog.Info("starting server", "address", address)
	return http.ListenAndServe(address, server.router)
}
