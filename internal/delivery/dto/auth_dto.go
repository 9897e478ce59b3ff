package dto

import "github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/validator"

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Fields() validator.Fields {
	return validator.Fields{"email": r.Email, "password": r.Password}
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Fields() validator.Fields {
	return validator.Fields{"refresh_token": r.RefreshToken}
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
