package auth

import (
	"context"
	"time"

	"roomshare/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, userID, hash string) error
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
}

type TokenIssuer interface {
	GenerateToken(userID string, role string) (string, error)
}
