package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/policy-dashboard-api/internal/config"
	"github.com/vfg2006/policy-dashboard-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

func newAuthConfig(password, hash string) *config.Config {
	return &config.Config{
		Auth: config.Auth{
			Secret:       "segredo-de-teste",
			Password:     password,
			PasswordHash: hash,
			TokenTTL:     time.Hour,
		},
		Dashboard: config.Dashboard{Alliance: "bivett"},
	}
}

func TestService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("bivett2024"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name     string
		cfg      *config.Config
		secret   string
		wantErr  error
		wantCode string
	}{
		{name: "Palavra secreta em texto correta", cfg: newAuthConfig("bivett2024", ""), secret: "bivett2024"},
		{name: "Hash configurado correto", cfg: newAuthConfig("", string(hash)), secret: "bivett2024"},
		{name: "Palavra secreta incorreta", cfg: newAuthConfig("bivett2024", ""), secret: "outra", wantErr: ErrInvalidCredentials, wantCode: apiErrors.ErrInvalidCredentials},
		{name: "Palavra secreta vazia", cfg: newAuthConfig("bivett2024", ""), secret: "", wantErr: ErrMissingRequiredData, wantCode: apiErrors.ErrMissingRequiredData},
		{name: "Login desabilitado", cfg: newAuthConfig("", ""), secret: "qualquer", wantErr: ErrLoginDisabled, wantCode: apiErrors.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := newService(tt.cfg)
			require.NoError(t, err)

			session, err := service.Login(tt.secret)
			if tt.wantErr != nil {
				assert.Nil(t, session)
				assert.True(t, errors.Is(err, tt.wantErr))

				var authErr *AuthError
				require.True(t, errors.As(err, &authErr))
				assert.Equal(t, tt.wantCode, authErr.Code)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, session.Token)

			claims, err := service.ValidateToken(session.Token)
			require.NoError(t, err)
			assert.Equal(t, "bivett", claims.Alliance)
			assert.Len(t, claims.ID, tokenIDSize)
		})
	}
}

func TestService_ValidateToken_Expired(t *testing.T) {
	service, err := newService(newAuthConfig("bivett2024", ""))
	require.NoError(t, err)

	issuedAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issuedAt }

	session, err := service.Login("bivett2024")
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(time.Hour), session.ExpiresAt)

	service.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = service.ValidateToken(session.Token)
	assert.True(t, errors.Is(err, ErrExpiredToken))
	assert.True(t, IsTokenError(err))
}

func TestService_ValidateToken_Invalid(t *testing.T) {
	service, err := newService(newAuthConfig("bivett2024", ""))
	require.NoError(t, err)

	other, err := newService(&config.Config{Auth: config.Auth{Secret: "outro-segredo", Password: "bivett2024"}})
	require.NoError(t, err)
	foreign, err := other.Login("bivett2024")
	require.NoError(t, err)

	for _, token := range []string{"", "nao.e.jwt", foreign.Token} {
		_, err := service.ValidateToken(token)
		assert.True(t, errors.Is(err, ErrInvalidToken), token)
	}
}

func TestNewService_InvalidHash(t *testing.T) {
	_, err := NewService(newAuthConfig("", "não-é-bcrypt"))
	assert.Error(t, err)
}
