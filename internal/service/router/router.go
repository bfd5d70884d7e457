package router

import (
	"github.com/gorilla/mux"
	auth "lingua_backend/internal/auth/controller"
	gamestate "lingua_backend/internal/gamestate/controller"
)

func SetUpRoutes(authHandler *auth.AuthHandler, gameStateHandler *gamestate.GameStateHandler) *mux.Router {
	router := mux.NewRouter()
	api := "/api"

	router.HandleFunc(api+"/auth/register", authHandler.RegisterUser).Methods("POST") // Create account and issue token
	router.HandleFunc(api+"/auth/login", authHandler.LoginUser).Methods("POST")       // Issue token for existing account

	router.HandleFunc(api+"/users/me", authHandler.GetProfile).Methods("GET")      // Get own profile with game stats
	router.HandleFunc(api+"/users/me", authHandler.UpdateProfile).Methods("PUT")   // Partial profile update
	router.HandleFunc(api+"/users/me", authHandler.DeleteUser).Methods("DELETE")   // Deactivate account

	router.HandleFunc(api+"/users/me/game-stats", gameStateHandler.GetGameStats).Methods("GET")    // Get gamification state
	router.HandleFunc(api+"/users/me/game-stats", gameStateHandler.UpdateGameStats).Methods("PUT") // Overwrite chosen stats fields
	router.HandleFunc(api+"/users/me/lives/consume", gameStateHandler.ConsumeLife).Methods("POST") // Spend one life on a failed exercise
	router.HandleFunc(api+"/users/me/reset-lives", gameStateHandler.ResetLives).Methods("PUT")     // Refill lives when a new day started
	router.HandleFunc(api+"/users/me/points", gameStateHandler.AddPoints).Methods("POST")          // Add points for completed lessons
	router.HandleFunc(api+"/users/me/streak", gameStateHandler.SetStreak).Methods("PUT")           // Set current streak
	router.HandleFunc(api+"/leaderboard", gameStateHandler.Leaderboard).Methods("GET")             // Public points ranking

	return router
}
