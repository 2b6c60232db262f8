package authenticating

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/policy-dashboard-api/internal/config"
	"github.com/vfg2006/policy-dashboard-api/internal/domain"
	"github.com/vfg2006/policy-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/policy-dashboard-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

const tokenIDSize = 21

// Authenticator controla o acesso ao painel por palavra secreta
type Authenticator interface {
	Login(secret string) (*domain.Session, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	passwordHash []byte
	secretKey    []byte
	alliance     string
	tokenTTL     time.Duration
	now          func() time.Time
}

// NewService prepara o autenticador. Se só a palavra secreta em texto
// estiver configurada, o hash é gerado na inicialização.
func NewService(cfg *config.Config) (Authenticator, error) {
	return newService(cfg)
}

func newService(cfg *config.Config) (*Service, error) {
	s := &Service{
		secretKey: []byte(cfg.Auth.Secret),
		alliance:  cfg.Dashboard.Alliance,
		tokenTTL:  cfg.Auth.TokenTTL,
		now:       time.Now,
	}

	if s.tokenTTL <= 0 {
		s.tokenTTL = time.Hour
	}

	switch {
	case cfg.Auth.PasswordHash != "":
		if _, err := bcrypt.Cost([]byte(cfg.Auth.PasswordHash)); err != nil {
			return nil, fmt.Errorf("AUTH_PASSWORD_HASH inválido: %w", err)
		}
		s.passwordHash = []byte(cfg.Auth.PasswordHash)
	case cfg.Auth.Password != "":
		hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		s.passwordHash = hashed
	default:
		logrus.Warn("Login desabilitado: nenhuma palavra secreta configurada")
	}

	return s, nil
}

func (s *Service) Login(secret string) (*domain.Session, error) {
	if secret == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Palavra secreta é obrigatória")
	}

	if len(s.passwordHash) == 0 {
		return nil, NewAuthError(ErrLoginDisabled, apiErrors.ErrInvalidCredentials, "Login desabilitado")
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(secret)); err != nil {
		return nil, NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "Palavra secreta incorreta")
	}

	session, err := s.generateJWT()
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return session, nil
}

func (s *Service) generateJWT() (*domain.Session, error) {
	tokenID, err := utils.GenerateID(tokenIDSize)
	if err != nil {
		return nil, err
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.tokenTTL)

	claims := domain.Claims{
		Alliance: s.alliance,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return nil, err
	}

	return &domain.Session{Token: signed, ExpiresAt: expiresAt}, nil
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if tokenString == "" {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "Token ausente")
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "Sessão expirada")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "Token inválido")
	}

	return claims, nil
}
