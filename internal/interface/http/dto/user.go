package dto

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=2,max=50" example:"gopher"`
	Email    string `json:"email" binding:"required,email" example:"gopher@example.com"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"secret123"`
}

// RegisterResponse confirms the created account.
type RegisterResponse struct {
	ID       uint   `json:"id" example:"1"`
	Username string `json:"username" example:"gopher"`
	Email    string `json:"email" example:"gopher@example.com"`
}

// LoginRequest is the credential payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"gopher@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// UserInfo is the public identity embedded in login responses.
type UserInfo struct {
	ID       uint   `json:"id" example:"1"`
	Username string `json:"username" example:"gopher"`
	Email    string `json:"email" example:"gopher@example.com"`
}

// LoginResponse returns the identity and token pair.
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in" example:"7200"` // seconds
}

// RefreshTokenRequest exchanges a refresh token for a new access token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResponse carries the new access token.
type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
}
