package users

import (
	"context"

	"github.com/nestjs-store-microservices/auth-ms/internal/server/models"
)

// Repository is the credential store contract. Implementations must enforce
// email uniqueness at the storage layer: Create returns
// common.ErrDuplicateUser on a collision, and the lookup methods return
// common.ErrNotFound for missing records.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
