package user

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/user"
)

// RegisterUseCase creates an account. Email uniqueness is enforced by the
// database index; the duplicate surfaces as a conflict error here.
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase creates the use case.
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// RegisterRequest carries the signup fields.
type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

// RegisterResponse confirms the created account. The password hash never
// leaves the application layer.
type RegisterResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Execute registers the user.
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	u, err := uc.userService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}, nil
}
