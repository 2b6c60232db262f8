package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims são os dados carregados no token de sessão do painel
type Claims struct {
	Alliance string `json:"alliance"`
	jwt.RegisteredClaims
}

// Session é a resposta do login
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
