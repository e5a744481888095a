package model

import "time"

type User struct {
	ID           int64
	LoginID      string
	PasswordHash string
	CreatedAt    time.Time
}

type AuthUser struct {
	ID      int64
	LoginID string
}

type RefreshTokenRecord struct {
	ID        int64
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
}

type AuthRequest struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}
