// Package users declares and implements the repository of registered
// learners.
package users

import (
	"context"

	"github.com/dmitrijs2005/studyplanner/internal/server/models"
)

// Repository stores users. Lookups return common.ErrorNotFound for missing
// rows and Create returns common.ErrorAlreadyExists for a taken username or
// email.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
