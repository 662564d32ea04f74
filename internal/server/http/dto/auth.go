package dto

import "time"

// RegisterRequest describes a new account.
type RegisterRequest struct {
	LastName  string `json:"nom" binding:"required"`
	FirstName string `json:"prenom" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"telephone"`
	Password  string `json:"password" binding:"required"`
}

// StaffRequest registers personnel with an explicit role.
type StaffRequest struct {
	RegisterRequest
	Role string `json:"role" binding:"required"`
}

// LoginRequest describes email/password payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse returns an access token with the account it belongs to.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        int64     `json:"id"`
	LastName  string    `json:"nom"`
	FirstName string    `json:"prenom"`
	Email     string    `json:"email"`
	Phone     string    `json:"telephone,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"actif"`
	Verified  bool      `json:"email_verifie"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries the reason of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
