package main

import (
	authController "lingua_backend/internal/auth/controller"
	authRepository "lingua_backend/internal/auth/repository"
	authUsecase "lingua_backend/internal/auth/usecase"

	"fmt"
	"github.com/joho/godotenv"
	"lingua_backend/domain"
	gamestateController "lingua_backend/internal/gamestate/controller"
	gamestateRepository "lingua_backend/internal/gamestate/repository"
	gamestateUsecase "lingua_backend/internal/gamestate/usecase"
	"lingua_backend/internal/service/logger"
	"lingua_backend/internal/service/middleware"
	"lingua_backend/internal/service/router"
	"log"
	"net/http"
	"os"
)

func main() {
	_ = godotenv.Load()
	db := middleware.DbConnect()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secret-key"
	}
	jwtToken, err := middleware.NewJwtToken(secret)
	if err != nil {
		log.Fatalf("Failed to create JWT token: %v", err)
	}

	if err := logger.InitLoggers(); err != nil {
		log.Fatalf("Failed to initialize loggers: %v", err)
	}
	defer func() {
		err := logger.SyncLoggers()
		if err != nil {
			log.Fatalf("Failed to sync loggers: %v", err)
		}
	}()

	var leaderboardCache domain.LeaderboardCache
	if redisClient, err := middleware.InitRedis(); err != nil {
		log.Printf("Leaderboard cache disabled: %v", err)
	} else {
		leaderboardCache = gamestateRepository.NewLeaderboardCache(redisClient)
	}

	authRepository := authRepository.NewAuthRepository(db)
	authUseCase := authUsecase.NewAuthUsecase(authRepository)
	authHandler := authController.NewAuthHandler(authUseCase, jwtToken)

	gameStateRepository := gamestateRepository.NewGameStateRepository(db)
	gameStateUseCase := gamestateUsecase.NewGameStateUsecase(gameStateRepository, leaderboardCache)
	gameStateHandler := gamestateController.NewGameStateHandler(gameStateUseCase, jwtToken)

	mainRouter := router.SetUpRoutes(authHandler, gameStateHandler)
	mainRouter.Use(middleware.RequestIDMiddleware)
	mainRouter.Use(middleware.RateLimitMiddleware)
	http.Handle("/", middleware.EnableCORS(mainRouter))
	fmt.Printf("Starting HTTP server on adress %s\n", os.Getenv("BACKEND_URL"))
	if err := http.ListenAndServe(os.Getenv("BACKEND_URL"), nil); err != nil {
		fmt.Printf("Error on starting server: %s", err)
	}
}
