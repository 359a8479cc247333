package main

import (
	"context"
	"log"
	"net/http"

	"generosml/internal/cache"
	"generosml/internal/config"
	"generosml/internal/db"
	"generosml/internal/handler"
	"generosml/internal/repository"
	"generosml/internal/scraper"
	"generosml/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title GenerosML Movie Recommender API
// @version 1.0
// @description API de recomendaciones por perfil de géneros (user-based, Mongo, Redis)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// Mongo y Redis
	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	// repos
	userRepo := repository.NewUserRepository()
	movieRepo := repository.NewMovieRepository()
	ratingRepo := repository.NewRatingRepository()
	recRepo := repository.NewRecommendationRepository()

	// services
	// el motor se construye acá: carga catálogo + ratings y deriva todos
	// los perfiles antes de aceptar tráfico
	recSvc, err := service.NewRecommendService(context.Background(), ratingRepo, movieRepo, recRepo)
	if err != nil {
		log.Fatalf("[api] no se pudo construir el motor: %v", err)
	}

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	movieSvc := service.NewMovieService(movieRepo, recSvc)
	ratingSvc := service.NewRatingService(ratingRepo, movieRepo, recSvc)
	ingestSvc := service.NewIngestService(scraper.New(cfg.DatasetURL), movieRepo, recSvc)

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	movieH := handler.NewMovieHandler(movieSvc)
	ratingH := handler.NewRatingHandler(ratingSvc)
	recH := handler.NewRecommendHandler(recSvc)
	ingestH := handler.NewAdminIngestHandler(ingestSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", handler.Health)

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	// Películas (públicas)
	r.Get("/movies/{id}", movieH.GetMovie)
	r.Get("/movies/search", movieH.Search)
	r.Get("/movies/top", movieH.Top)

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	authMw := handler.JWTAuth(cfg.JWTSecret)

	r.Group(func(r chi.Router) {
		r.Use(authMw)

		// ---- Endpoints /me (USER normal) ----
		r.Route("/me", func(r chi.Router) {
			r.Get("/ratings", ratingH.GetMyRatings)
			r.Post("/ratings", ratingH.PostMyRating)
			r.Get("/similar-user", recH.GetMySimilarUser)
			r.Get("/recommendations", recH.GetMyRecommendations)
		})

		// ---- Endpoints solo ADMIN ----
		r.Group(func(r chi.Router) {
			r.Use(handler.AdminOnly())

			// edición de usuario
			r.Put("/users/{id}/update", authH.UpdateUser)
			r.Get("/users", authH.ListUsers)

			// gestión de películas
			r.Post("/admin/movies", movieH.CreateMovie)
			r.Put("/admin/movies/{id}", movieH.UpdateMovie)

			// ratings y recomendaciones de cualquier usuario
			r.Route("/users/{id}", func(r chi.Router) {
				// obtener info del usuario por id
				r.Get("/", authH.GetUserByID)

				r.Get("/ratings", ratingH.GetRatings)
				r.Post("/ratings", ratingH.PostRating)

				r.Get("/similar-user", recH.GetSimilarUser)

				// HTTP normal
				r.Get("/recommendations", recH.GetRecommendations)
				r.Get("/recommendations/history", recH.GetHistory)

				// WebSocket
				r.Get("/ws/recommendations", recH.GetRecommendationsWS)
			})

			// --- ingesta de datos (scraper) ---
			handler.MountAdminIngestRoutes(r, ingestH)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
