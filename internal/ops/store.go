package ops

import (
	"context"

	"github.com/postit-dev/postit/internal/model"
)

// Store defines the persistence interface required by business logic operations.
// The concrete implementations live in the persist package, but this interface
// allows in-memory backends for testing.
type Store interface {
	Exists(ctx context.Context) (bool, error)
	Read(ctx context.Context) (*model.TaskList, error)
	Save(ctx context.Context, l *model.TaskList) error
	Clean(ctx context.Context) error
	Remove(ctx context.Context) error
	String() string
}
