package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/vfg2006/policy-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/policy-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/policy-dashboard-api/pkg/log"
	"github.com/vfg2006/policy-dashboard-api/pkg/middleware"
)

type LoginRequest struct {
	Secret string `json:"secret"`
}

// Login troca a palavra secreta por um token e grava o cookie de sessão
func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		session, err := service.Login(req.Secret)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("login: tentativa rejeitada")
			handleLoginError(w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookieName,
			Value:    session.Token,
			Path:     "/",
			Expires:  session.ExpiresAt,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})

		writeJSON(w, r, http.StatusOK, session)
	}
}

// Logout remove o cookie de sessão
func Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})

		writeJSON(w, r, http.StatusOK, map[string]string{
			"message": "Sessão encerrada",
		})
	}
}

func handleLoginError(w http.ResponseWriter, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}

	if authenticating.IsCredentialsError(err) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Credenciais inválidas", nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao realizar login", nil)
}
