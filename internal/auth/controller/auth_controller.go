package controller

import (
	"encoding/json"
	"errors"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"lingua_backend/domain"
	"lingua_backend/internal/auth/usecase"
	"lingua_backend/internal/service/logger"
	"lingua_backend/internal/service/middleware"
	"net/http"
	"strings"
	"time"
)

type AuthHandler struct {
	usecase  usecase.AuthUsecase
	jwtToken middleware.JwtTokenService
}

func NewAuthHandler(usecase usecase.AuthUsecase, jwtToken middleware.JwtTokenService) *AuthHandler {
	return &AuthHandler{
		usecase:  usecase,
		jwtToken: jwtToken,
	}
}

func (h *AuthHandler) authenticate(r *http.Request) (string, error) {
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

func (h *AuthHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	sanitizer := bluemonday.UGCPolicy()
	defer cancel()

	logger.AccessLogger.Info("Received RegisterUser request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	authHeader := r.Header.Get("JWT-Token")
	if authHeader != "" {
		logger.AccessLogger.Warn("jwt_token already exists",
			zap.String("request_id", requestID),
			zap.Error(errors.New("jwt_token already exists")),
		)
		h.handleError(w, errors.New("jwt_token already exists"), requestID)
		return
	}

	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.AccessLogger.Error("Failed to decode request body",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		h.handleError(w, errors.New("invalid request body"), requestID)
		return
	}

	req.Username = sanitizer.Sanitize(req.Username)
	req.Email = sanitizer.Sanitize(req.Email)
	req.FirstName = sanitizer.Sanitize(req.FirstName)
	req.LastName = sanitizer.Sanitize(req.LastName)
	req.PreferredLanguage = sanitizer.Sanitize(req.PreferredLanguage)
	req.Timezone = sanitizer.Sanitize(req.Timezone)

	user, err := h.usecase.RegisterUser(ctx, req, time.Now().UTC())
	if err != nil {
		logger.AccessLogger.Error("Failed to register",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.handleError(w, err, requestID)
		return
	}

	tokenExpTime := time.Now().Add(24 * time.Hour).Unix()
	jwtToken, err := h.jwtToken.Create(user.UUID, tokenExpTime)
	if err != nil {
		logger.AccessLogger.Error("Failed to create JWT token",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		h.handleError(w, err, requestID)
		return
	}

	body := map[string]interface{}{
		"token": jwtToken,
		"user":  user.Profile(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.AccessLogger.Error("Failed to encode response",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	duration := time.Since(start)
	logger.AccessLogger.Info("Completed RegisterUser request",
		zap.String("request_id", requestID),
		zap.Duration("duration", duration),
		zap.Int("status", http.StatusCreated),
	)
}

func (h *AuthHandler) LoginUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	sanitizer := bluemonday.UGCPolicy()
	defer cancel()

	logger.AccessLogger.Info("Received LoginUser request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	authHeader := r.Header.Get("JWT-Token")
	if authHeader != "" {
		logger.AccessLogger.Warn("jwt_token already exists",
			zap.String("request_id", requestID),
			zap.Error(errors.New("jwt_token already exists")),
		)
		h.handleError(w, errors.New("jwt_token already exists"), requestID)
		return
	}

	var creds domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		logger.AccessLogger.Error("Failed to decode request body",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		h.handleError(w, errors.New("invalid request body"), requestID)
		return
	}

	creds.Username = sanitizer.Sanitize(creds.Username)

	userID, err := h.usecase.LoginUser(ctx, creds.Username, creds.Password)
	if err != nil {
		logger.AccessLogger.Error("Failed to login",
			zap.String("request_id", requestID),
			zap.Error(err))
		h.handleError(w, err, requestID)
		return
	}

	tokenExpTime := time.Now().Add(24 * time.Hour).Unix()
	jwtToken, err := h.jwtToken.Create(userID, tokenExpTime)
	if err != nil {
		logger.AccessLogger.Error("Failed to create JWT token",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		h.handleError(w, err, requestID)
		return
	}

	body := map[string]interface{}{
		"token": jwtToken,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.AccessLogger.Error("Failed to encode response",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	duration := time.Since(start)
	logger.AccessLogger.Info("Completed LoginUser request",
		zap.String("request_id", requestID),
		zap.Duration("duration", duration),
		zap.Int("status", http.StatusOK),
	)
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received GetProfile request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	userID, err := h.authenticate(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	user, err := h.usecase.GetProfile(ctx, userID)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(user.Profile()); err != nil {
		h.handleError(w, err, requestID)
		return
	}

	duration := time.Since(start)
	logger.AccessLogger.Info("Completed GetProfile request",
		zap.String("request_id", requestID),
		zap.Duration("duration", duration),
		zap.Int("status", http.StatusOK))
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	sanitizer := bluemonday.UGCPolicy()
	defer cancel()

	logger.AccessLogger.Info("Received UpdateProfile request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	userID, err := h.authenticate(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	var patch domain.ProfilePatch
	if err = json.NewDecoder(r.Body).Decode(&patch); err != nil {
		logger.AccessLogger.Error("Failed to decode request body",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		h.handleError(w, errors.New("invalid request body"), requestID)
		return
	}

	for _, field := range []*string{patch.FirstName, patch.LastName, patch.AvatarURL, patch.PreferredLanguage, patch.Timezone} {
		if field != nil {
			*field = sanitizer.Sanitize(*field)
		}
	}

	user, err := h.usecase.UpdateProfile(ctx, userID, patch)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(user.Profile()); err != nil {
		h.handleError(w, err, requestID)
		return
	}

	duration := time.Since(start)
	logger.AccessLogger.Info("Completed UpdateProfile request",
		zap.String("request_id", requestID),
		zap.Duration("duration", duration),
		zap.Int("status", http.StatusOK))
}

func (h *AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received DeleteUser request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	userID, err := h.authenticate(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	if err := h.usecase.DeactivateUser(ctx, userID); err != nil {
		h.handleError(w, err, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)

	duration := time.Since(start)
	logger.AccessLogger.Info("Completed DeleteUser request",
		zap.String("request_id", requestID),
		zap.Duration("duration", duration),
		zap.Int("status", http.StatusNoContent))
}

func (h *AuthHandler) handleError(w http.ResponseWriter, err error, requestID string) {
	logger.AccessLogger.Error("Handling error",
		zap.String("request_id", requestID),
		zap.Error(err),
	)

	w.Header().Set("Content-Type", "application/json")
	errorResponse := map[string]string{"error": err.Error()}

	switch {
	case errors.Is(err, domain.ErrUserAlreadyExists):
		w.WriteHeader(http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidCredentials):
		w.WriteHeader(http.StatusUnauthorized)
	case errors.Is(err, domain.ErrUserNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		switch err.Error() {
		case "not correct username", "not correct email", "not correct password",
			"jwt_token already exists", "Input contains invalid characters",
			"Input exceeds character limit", "invalid request body",
			"no fields to update", "missing user id":
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
