package api

import (
	"net/http"
	"time"

	"github.com/amontes/portfolio-backend/config"
	"github.com/amontes/portfolio-backend/errs"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type authHandler struct {
	responder         Responder
	logger            zerolog.Logger
	secret            []byte
	tokenLifetime     time.Duration
	adminEmail        string
	adminPasswordHash string
}

func newAuthHandler(c map[string]string) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:         NewResponder(logger),
		logger:            logger,
		secret:            []byte(config.GetString(c, "JWT_SECRET", "")),
		tokenLifetime:     time.Duration(config.GetInt(c, "JWT_EXPIRES_HOURS", 24)) * time.Hour,
		adminEmail:        config.GetString(c, "ADMIN_EMAIL", ""),
		adminPasswordHash: config.GetString(c, "ADMIN_PASSWORD_HASH", ""),
	}
}

// login verifies the single admin principal and mints a bearer token.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeAndValidate(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if req.Email != h.adminEmail ||
			bcrypt.CompareHashAndPassword([]byte(h.adminPasswordHash), []byte(req.Password)) != nil {
			h.logger.Warn().Str("email", req.Email).Msg("rejected login attempt")
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		now := time.Now()
		expiresAt := now.Add(h.tokenLifetime)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": req.Email,
			"iat": now.Unix(),
			"exp": expiresAt.Unix(),
		})

		signed, err := token.SignedString(h.secret)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to sign token", err))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, "login successful", map[string]any{
			"token":      signed,
			"expires_at": expiresAt.UTC(),
		})
	}
}
