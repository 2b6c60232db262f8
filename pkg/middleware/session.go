package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/policy-dashboard-api/pkg/apiErrors"
)

// RequireAlliance restringe a rota a sessões emitidas para a aliança informada
func RequireAlliance(alliance string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := SessionFromContext(r.Context())
			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Sessão não autenticada", nil)
				return
			}

			if alliance != "" && claims.Alliance != alliance {
				logrus.WithFields(logrus.Fields{
					"alliance": claims.Alliance,
					"path":     r.URL.Path,
				}).Warning("Tentativa de acesso com sessão de outra aliança")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Sessão não pertence a esta aliança", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
