package controller

import (
	"encoding/json"
	"errors"
	"go.uber.org/zap"
	"lingua_backend/domain"
	"lingua_backend/internal/gamestate/usecase"
	"lingua_backend/internal/service/logger"
	"lingua_backend/internal/service/middleware"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type GameStateHandler struct {
	usecase  usecase.GameStateUsecase
	jwtToken middleware.JwtTokenService
}

func NewGameStateHandler(usecase usecase.GameStateUsecase, jwtToken middleware.JwtTokenService) *GameStateHandler {
	return &GameStateHandler{
		usecase:  usecase,
		jwtToken: jwtToken,
	}
}

// authenticate extracts and validates the bearer token from the JWT-Token
// header, returning the caller's user id.
func (h *GameStateHandler) authenticate(r *http.Request) (string, error) {
	authHeader := r.Header.Get("JWT-Token")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", errors.New("Missing JWT-Token header")
	}

	claims, err := h.jwtToken.Validate(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return "", errors.New("Invalid JWT token")
	}
	return claims.UserID, nil
}

func (h *GameStateHandler) GetGameStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received GetGameStats request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	userID, err := h.authenticate(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	stats, err := h.usecase.GetGameState(ctx, userID, time.Now().UTC())
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		h.handleError(w, err, requestID)
		return
	}

	duration := time.Since(start)
	logger.AccessLogger.Info("Completed GetGameStats request",
		zap.String("request_id", requestID),
		zap.Duration("duration", duration),
		zap.Int("status", http.StatusOK))
}

func (h *GameStateHandler) UpdateGameStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received UpdateGameStats request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	userID, err := h.authenticate(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	var patch domain.GameStatsPatch
	if err = json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.handleError(w, errors.New("invalid request body"), requestID)
		return
	}

	stats, err := h.usecase.UpdateGameStats(ctx, userID, patch)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		h.handleError(w, err, requestID)
		return
	}

	duration := time.Since(start)
	logger.AccessLogger.Info("Completed UpdateGameStats request",
		zap.String("request_id", requestID),
		zap.Duration("duration", duration),
		zap.Int("status", http.StatusOK))
}

func (h *GameStateHandler) ConsumeLife(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received ConsumeLife request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	userID, err := h.authenticate(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	stats, err := h.usecase.ConsumeLife(ctx, userID, time.Now().UTC())
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		h.handleError(w, err, requestID)
		return
	}

	duration := time.Since(start)
	logger.AccessLogger.Info("Completed ConsumeLife request",
		zap.String("request_id", requestID),
		zap.Duration("duration", duration),
		zap.Int("status", http.StatusOK))
}

func (h *GameStateHandler) ResetLives(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received ResetLives request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	userID, err := h.authenticate(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	stats, err := h.usecase.ResetDailyLives(ctx, userID, time.Now().UTC())
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		h.handleError(w, err, requestID)
		return
	}

	duration := time.Since(start)
	logger.AccessLogger.Info("Completed ResetLives request",
		zap.String("request_id", requestID),
		zap.Duration("duration", duration),
		zap.Int("status", http.StatusOK))
}

func (h *GameStateHandler) AddPoints(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received AddPoints request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	userID, err := h.authenticate(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	var data domain.PointsRequest
	if err = json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.handleError(w, errors.New("invalid request body"), requestID)
		return
	}
	if data.Points == nil {
		h.handleError(w, errors.New("points value is required"), requestID)
		return
	}

	stats, err := h.usecase.AddPoints(ctx, userID, *data.Points)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		h.handleError(w, err, requestID)
		return
	}

	duration := time.Since(start)
	logger.AccessLogger.Info("Completed AddPoints request",
		zap.String("request_id", requestID),
		zap.Duration("duration", duration),
		zap.Int("status", http.StatusOK))
}

func (h *GameStateHandler) SetStreak(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received SetStreak request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	userID, err := h.authenticate(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	var data domain.StreakRequest
	if err = json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.handleError(w, errors.New("invalid request body"), requestID)
		return
	}
	if data.CurrentStreak == nil {
		h.handleError(w, errors.New("streak value is required"), requestID)
		return
	}

	stats, err := h.usecase.SetStreak(ctx, userID, *data.CurrentStreak)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		h.handleError(w, err, requestID)
		return
	}

	duration := time.Since(start)
	logger.AccessLogger.Info("Completed SetStreak request",
		zap.String("request_id", requestID),
		zap.Duration("duration", duration),
		zap.Int("status", http.StatusOK))
}

func (h *GameStateHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received Leaderboard request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.handleError(w, errors.New("invalid limit parameter"), requestID)
			return
		}
		limit = parsed
	}

	entries, err := h.usecase.Leaderboard(ctx, limit)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		h.handleError(w, err, requestID)
		return
	}

	duration := time.Since(start)
	logger.AccessLogger.Info("Completed Leaderboard request",
		zap.String("request_id", requestID),
		zap.Duration("duration", duration),
		zap.Int("status", http.StatusOK))
}

func (h *GameStateHandler) handleError(w http.ResponseWriter, err error, requestID string) {
	w.Header().Set("Content-Type", "application/json")

	if errors.Is(err, domain.ErrNoLivesRemaining) {
		logger.AccessLogger.Info("No lives remaining",
			zap.String("request_id", requestID),
		)
		w.WriteHeader(http.StatusTooManyRequests)
		response := map[string]interface{}{
			"error":             err.Error(),
			"secondsUntilReset": domain.SecondsUntilLivesReset(time.Now().UTC()),
		}
		if jsonErr := json.NewEncoder(w).Encode(response); jsonErr != nil {
			logger.AccessLogger.Error("Failed to encode error response",
				zap.String("request_id", requestID),
				zap.Error(jsonErr),
			)
			http.Error(w, jsonErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	logger.AccessLogger.Error("Handling error",
		zap.String("request_id", requestID),
		zap.Error(err),
	)

	errorResponse := map[string]string{"error": err.Error()}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		switch err.Error() {
		case "missing user id", "invalid request body", "no fields to update",
			"game stats must not be negative", "daily lives exceed the maximum",
			"points value is required", "streak value is required", "invalid limit parameter":
			w.WriteHeader(http.StatusBadRequest)
		case "Invalid JWT token", "Missing JWT-Token header":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}

	if jsonErr := json.NewEncoder(w).Encode(errorResponse); jsonErr != nil {
		logger.AccessLogger.Error("Failed to encode error response",
			zap.String("request_id", requestID),
			zap.Error(jsonErr),
		)
		http.Error(w, jsonErr.Error(), http.StatusInternalServerError)
	}
}
