package model

// AccessToken is the claims object embedded in the signed token.
type AccessToken struct {
	ID   string `json:"id" mapstructure:"id"`
	Role string `json:"role" mapstructure:"role"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	User User `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}
