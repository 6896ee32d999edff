package sessions

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/medkeeper/internal/client/models"
)

// ErrMalformed is returned by Load when the stored value cannot be decoded
// or lacks a username or token.
var ErrMalformed = errors.New("malformed stored credentials")

type Repository interface {
	// Load returns (nil, nil) when nothing is stored.
	Load(ctx context.Context) (*models.StoredCredentials, error)
	Save(ctx context.Context, creds models.StoredCredentials) error
	Clear(ctx context.Context) error
}
