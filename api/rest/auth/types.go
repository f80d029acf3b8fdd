package auth

// RegisterRequest is the payload for creating an account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest carries the credential form fields
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// TokenResponse is the successful login payload
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ResetRequest asks for a password reset email
type ResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// MessageResponse wraps a human-readable status message
type MessageResponse struct {
	Message string `json:"message"`
}
