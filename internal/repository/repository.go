package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Repository defines the interface for a generic repository that can manage resources.
type Repository interface {
	Create(ctx context.Context, resource Resource) (result Resource, err error)
	List(ctx context.Context, query Query) (result []Resource, err error)
	FindByID(ctx context.Context, id uuid.UUID) (result Resource, err error)
	Update(ctx context.Context, resource Resource) (result Resource, err error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// Resource represents a generic resource that can be managed by the repository.
type Resource interface {
	InitMeta()
}

// ErrNotFound is returned when no resource matches the given identifier.
var ErrNotFound = errors.New("resource not found")

// ErrInvalidType is returned when a repository receives a resource of the wrong concrete type.
var ErrInvalidType = errors.New("unexpected resource type")

// UniqueConstraintError represents a database unique constraint violation error.
type UniqueConstraintError struct {
	Detail string
}

func (u *UniqueConstraintError) Error() string {
	return "resource must be unique: " + u.Detail
}
