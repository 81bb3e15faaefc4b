package user

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/bookshelf/internal/domain/user"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshelf/pkg/jwt"
)

// LoginUseCase verifies credentials, issues a token pair and records the
// session in Redis.
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
	sessionTTL   time.Duration
}

// NewLoginUseCase creates the use case. sessionTTL should match the
// refresh token lifetime.
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
	sessionTTL time.Duration,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
	}
}

// LoginRequest carries the credentials. ClientIP is recorded in the
// session for audit.
type LoginRequest struct {
	Email    string
	Password string
	ClientIP string
}

// UserInfo is the public identity in login responses.
type UserInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginResponse bundles the identity and tokens.
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"`
}

// Execute logs the user in. A session write failure does not fail the
// login; the tokens are already valid on their own.
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := uc.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Email, u.Username)
	if err != nil {
		return nil, err
	}

	sessionData := map[string]interface{}{
		"user_id":  u.ID,
		"email":    u.Email,
		"username": u.Username,
		"login_at": time.Now().Unix(),
		"ip":       req.ClientIP,
	}
	if err := uc.sessionStore.SaveSession(ctx, u.ID, sessionData, uc.sessionTTL); err != nil {
		log.Printf("user: session save failed: %v", err)
	}

	return &LoginResponse{
		User: UserInfo{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
		},
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase drops the session and blacklists the access token until it
// would have expired anyway.
type LogoutUseCase struct {
	sessionStore *redis.SessionStore
	blacklistTTL time.Duration
}

// NewLogoutUseCase creates the use case. blacklistTTL should match the
// access token lifetime.
func NewLogoutUseCase(sessionStore *redis.SessionStore, blacklistTTL time.Duration) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore, blacklistTTL: blacklistTTL}
}

// Execute logs the user out.
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, uc.blacklistTTL)
}

// RefreshTokenUseCase exchanges a valid refresh token for a new access
// token.
type RefreshTokenUseCase struct {
	jwtManager *jwt.Manager
}

// NewRefreshTokenUseCase creates the use case.
func NewRefreshTokenUseCase(jwtManager *jwt.Manager) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{jwtManager: jwtManager}
}

// RefreshResponse carries the new access token.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// Execute refreshes the access token.
func (uc *RefreshTokenUseCase) Execute(_ context.Context, refreshToken string) (*RefreshResponse, error) {
	token, err := uc.jwtManager.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, err
	}
	return &RefreshResponse{AccessToken: token}, nil
}
