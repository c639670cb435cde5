package auth

import (
	"context"

	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/auditor"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, sessionReq SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, req LogoutRequest) error

	// CreateAuditor registers an account with a bcrypt hashed password
	CreateAuditor(ctx context.Context, req auditor.CreateAuditorRequest) (auditor.Auditor, error)
}
