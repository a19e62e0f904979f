// AngelaMos | 2026
// dto.go

package identity

import (
	"time"
)

type RequestCodeRequest struct {
	Phone string `json:"phone" validate:"required,len=10,numeric"`
}

type VerifyCodeRequest struct {
	Phone string `json:"phone" validate:"required,len=10,numeric"`
	Code  string `json:"code"  validate:"required,len=6,numeric"`
}

type CompleteRegistrationRequest struct {
	Phone string `json:"phone" validate:"required,len=10,numeric"`
	Name  string `json:"name"  validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"required,email,max=255"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name"  validate:"omitempty,min=1,max=100"`
	Email *string `json:"email" validate:"omitempty,email,max=255"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	UDC       string    `json:"udc"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type VerifyCodeResponse struct {
	IsNewUser bool          `json:"is_new_user"`
	Token     string        `json:"token,omitempty"`
	ExpiresAt time.Time     `json:"expires_at,omitempty"`
	User      *UserResponse `json:"user,omitempty"`
}

type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		UDC:       u.UDC,
		Phone:     u.Phone,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
