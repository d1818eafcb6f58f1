package repository

import (
	"context"

	"github.com/upzy-app/hub-api/internal/domain/entity"
)

// UserRepository define a porta de persistência de User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
