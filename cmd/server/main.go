package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"quizlink/internal/auth"
	"quizlink/internal/models"
	"quizlink/internal/quiz"
	"quizlink/internal/user"
	"quizlink/pkg/cache"
	"quizlink/pkg/database"
	"quizlink/pkg/websocket"

	"github.com/gorilla/mux"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	dbConfig := &database.Config{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}

	db, err := database.NewPostgresDB(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.Submission{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisCache := cache.NewRedisCache(os.Getenv("REDIS_ADDR"))

	wsHub := websocket.NewHub()
	go wsHub.Run()

	authRepo := auth.NewRepository(db)
	quizRepo := quiz.NewRepository(db)
	userRepo := user.NewRepository(db)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	authService := auth.NewService(authRepo, jwtSecret)
	quizService := quiz.NewService(quizRepo, redisCache, wsHub)
	userService := user.NewService(userRepo)
	wsHub.SetQuizResolver(quizService)

	secureCookies := os.Getenv("ENV") == "production"
	authHandler := auth.NewHandler(authService, secureCookies)
	quizHandler := quiz.NewHandler(quizService)
	userHandler := user.NewHandler(userService)

	router := mux.NewRouter()

	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:3000"
	}
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	handler := corsMiddleware.Handler(router)

	requireAuth := auth.RequireAuth(jwtSecret)
	optionalAuth := auth.OptionalAuth(jwtSecret)
	admin := func(h http.HandlerFunc) http.Handler {
		return requireAuth(auth.RequireAdmin(h))
	}

	// Auth routes - no session required.
	router.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Fixed quiz paths go first so the idOrSlug catch-all cannot shadow them.
	router.Handle("/api/quiz/create", requireAuth(http.HandlerFunc(quizHandler.Create))).Methods("POST", "OPTIONS")
	router.Handle("/api/quiz/my-quizzes", requireAuth(http.HandlerFunc(quizHandler.MyQuizzes))).Methods("GET")
	router.Handle("/api/quiz/submit", optionalAuth(http.HandlerFunc(quizHandler.Submit))).Methods("POST", "OPTIONS")

	// Admin browsing/deletion of any user's quizzes.
	router.Handle("/api/quiz/user/{userID}", admin(quizHandler.UserQuizzes)).Methods("GET")
	router.Handle("/api/quiz/user/{userID}", admin(quizHandler.DeleteUserQuiz)).Methods("DELETE", "OPTIONS")

	// Owner analytics and exports.
	router.Handle("/api/quiz/{quizID:[0-9]+}/submissions", requireAuth(http.HandlerFunc(quizHandler.Submissions))).Methods("GET")
	router.Handle("/api/quiz/{quizID:[0-9]+}/submissions/export", requireAuth(http.HandlerFunc(quizHandler.ExportSubmissions))).Methods("GET")

	// Public quiz read and password gate, owner-gated mutations.
	router.HandleFunc("/api/quiz/{idOrSlug}", quizHandler.Get).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/quiz/{idOrSlug}", quizHandler.VerifyPassword).Methods("POST")
	router.Handle("/api/quiz/{idOrSlug}", requireAuth(http.HandlerFunc(quizHandler.Update))).Methods("PUT")
	router.Handle("/api/quiz/{idOrSlug}", requireAuth(http.HandlerFunc(quizHandler.Delete))).Methods("DELETE")

	router.Handle("/api/submissions/my-submissions", requireAuth(http.HandlerFunc(quizHandler.MySubmissions))).Methods("GET")

	// Admin user management.
	router.Handle("/api/users", admin(userHandler.List)).Methods("GET")
	router.Handle("/api/users/{userID}", admin(userHandler.Update)).Methods("PATCH", "OPTIONS")
	router.Handle("/api/users/{userID}", admin(userHandler.Delete)).Methods("DELETE")

	// Own profile.
	router.Handle("/api/user/profile", requireAuth(http.HandlerFunc(userHandler.Profile))).Methods("GET")
	router.Handle("/api/user/profile", requireAuth(http.HandlerFunc(userHandler.UpdateProfile))).Methods("PUT", "OPTIONS")

	// Live results feed for quiz owners.
	router.Handle("/ws/quiz/{idOrSlug}", requireAuth(http.HandlerFunc(wsHub.HandleWebSocket)))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server shutdown gracefully")
}
