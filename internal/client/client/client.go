package client

import (
	"context"

	"github.com/dmitrijs2005/medkeeper/internal/client/models"
)

// Client is the record store API. token is the encoded Basic credential.
type Client interface {
	Close() error
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context, token string) error
	Status(ctx context.Context, token string) (bool, error)
	Signup(ctx context.Context, req models.SignupRequest) (*models.SignupResponse, error)
	ListMedicines(ctx context.Context, token string) ([]models.Medicine, error)
	CreateMedicine(ctx context.Context, token string, m models.Medicine) (*models.Medicine, error)
	UpdateMedicine(ctx context.Context, token string, id int64, m models.Medicine) (*models.Medicine, error)
	DeleteMedicine(ctx context.Context, token string, id int64) error
}
