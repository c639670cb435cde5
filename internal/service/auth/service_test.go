package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/auditor"
	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-auditor/internal/pkg/jwt"
	"github.com/cmlabs-hris/timesheet-auditor/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
	testPassword   = "password123"
)

type fakeAuditorRepository struct {
	byEmail map[string]auditor.Auditor
}

func (f *fakeAuditorRepository) GetByEmail(ctx context.Context, email string) (auditor.Auditor, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return auditor.Auditor{}, pgx.ErrNoRows
	}
	return a, nil
}

func (f *fakeAuditorRepository) GetByID(ctx context.Context, id string) (auditor.Auditor, error) {
	for _, a := range f.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return auditor.Auditor{}, pgx.ErrNoRows
}

func (f *fakeAuditorRepository) Create(ctx context.Context, newAuditor auditor.Auditor) (auditor.Auditor, error) {
	if _, ok := f.byEmail[newAuditor.Email]; ok {
		return auditor.Auditor{}, &pgconn.PgError{Code: "23505"}
	}
	newAuditor.ID = "auditor-" + newAuditor.Email
	f.byEmail[newAuditor.Email] = newAuditor
	return newAuditor, nil
}

type storedToken struct {
	auditorID string
	revoked   bool
}

type fakeJWTRepository struct {
	tokens map[string]*storedToken
}

func (f *fakeJWTRepository) CreateRefreshToken(ctx context.Context, auditorID string, token string, expiresAt int64, sessionReq auth.SessionTrackingRequest) error {
	f.tokens[token] = &storedToken{auditorID: auditorID}
	return nil
}

func (f *fakeJWTRepository) IsRefreshTokenRevoked(ctx context.Context, token string) (string, bool, error) {
	t, ok := f.tokens[token]
	if !ok {
		return "", false, pgx.ErrNoRows
	}
	return t.auditorID, t.revoked, nil
}

func (f *fakeJWTRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	if t, ok := f.tokens[token]; ok {
		t.revoked = true
	}
	return nil
}

func noTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

func newTestAuthService(t *testing.T) (auth.AuthService, jwt.Service, *fakeJWTRepository) {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	hashed := string(hash)

	auditors := &fakeAuditorRepository{byEmail: map[string]auditor.Auditor{
		"ana@example.com":    {ID: "auditor-1", Email: "ana@example.com", Name: "Ana", PasswordHash: &hashed},
		"nopass@example.com": {ID: "auditor-2", Email: "nopass@example.com", Name: "No Pass"},
	}}
	tokens := &fakeJWTRepository{tokens: map[string]*storedToken{}}
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)

	return NewAuthService(noTx, auditors, jwtService, tokens), jwtService, tokens
}

func TestLogin_Success(t *testing.T) {
	svc, _, tokens := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: " ANA@example.com ", Password: testPassword}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Contains(t, tokens.tokens, resp.RefreshToken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@example.com", testPassword},
		{"wrong password", "ana@example.com", "wrong-password"},
		{"account without password", "nopass@example.com", testPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), auth.LoginRequest{Email: tt.email, Password: tt.password}, auth.SessionTrackingRequest{})
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		})
	}
}

func TestLogin_ValidationError(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email"}, auth.SessionTrackingRequest{})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "email")
	assert.Contains(t, verrs.ToMap(), "password")
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService(t)

	login, err := svc.Login(ctx, auth.LoginRequest{Email: "ana@example.com", Password: testPassword}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	t.Run("issues a new access token", func(t *testing.T) {
		resp, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("rejects an access token", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.AccessToken})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: "not-a-jwt"})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestLogout_RevokesBothTokens(t *testing.T) {
	ctx := context.Background()
	svc, jwtService, _ := newTestAuthService(t)

	login, err := svc.Login(ctx, auth.LoginRequest{Email: "ana@example.com", Password: testPassword}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	err = svc.Logout(ctx, auth.LogoutRequest{AccessToken: login.AccessToken, RefreshToken: login.RefreshToken})
	require.NoError(t, err)

	assert.True(t, jwtService.IsTokenRevoked(login.AccessToken))
	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestLogout_UnknownRefreshToken(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	err := svc.Logout(context.Background(), auth.LogoutRequest{RefreshToken: "unknown"})
	assert.NoError(t, err)
}

func TestCreateAuditor(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService(t)

	created, err := svc.CreateAuditor(ctx, auditor.CreateAuditorRequest{Email: "Bruno@Example.com", Name: "Bruno", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "bruno@example.com", created.Email)
	require.NotNil(t, created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*created.PasswordHash), []byte("s3cret-pass")))

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "bruno@example.com", Password: "s3cret-pass"}, auth.SessionTrackingRequest{})
	assert.NoError(t, err)

	_, err = svc.CreateAuditor(ctx, auditor.CreateAuditorRequest{Email: "bruno@example.com", Name: "Bruno", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, auditor.ErrEmailAlreadyExists)
}
