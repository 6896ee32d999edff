package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/medkeeper/internal/client/client"
	"github.com/dmitrijs2005/medkeeper/internal/client/models"
	"github.com/dmitrijs2005/medkeeper/internal/logging"
)

type InventoryService interface {
	List(ctx context.Context) ([]models.Medicine, error)
	Create(ctx context.Context, draft models.Medicine) (*models.Medicine, error)
	Update(ctx context.Context, id int64, m models.Medicine) (*models.Medicine, error)
	Delete(ctx context.Context, id int64) error
}

// SessionSource supplies the credentials inventory calls are made with.
type SessionSource interface {
	Current() models.Session
}

// InventoryClient makes one store call per operation, with no caching and
// no retries. Callers re-list after a mutation.
type InventoryClient struct {
	client   client.Client
	sessions SessionSource
	logger   logging.Logger
}

var _ InventoryService = (*InventoryClient)(nil)

func NewInventoryClient(c client.Client, sessions SessionSource, logger logging.Logger) *InventoryClient {
	return &InventoryClient{
		client:   c,
		sessions: sessions,
		logger:   logger.With("component", "inventory"),
	}
}

func (s *InventoryClient) List(ctx context.Context) ([]models.Medicine, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	list, err := s.client.ListMedicines(ctx, token)
	if err != nil {
		return nil, s.mapError(ctx, "list", err)
	}
	return list, nil
}

// Create submits a draft. A record that already carries an ID is refused.
func (s *InventoryClient) Create(ctx context.Context, draft models.Medicine) (*models.Medicine, error) {
	if !draft.IsDraft() {
		return nil, fmt.Errorf("%w: record %d is already stored", ErrInvalidRecord, draft.ID)
	}
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	created, err := s.client.CreateMedicine(ctx, token, draft.Normalized())
	if err != nil {
		return nil, s.mapError(ctx, "create", err)
	}
	s.logger.Info(ctx, "medicine created", "id", created.ID)
	return created, nil
}

func (s *InventoryClient) Update(ctx context.Context, id int64, m models.Medicine) (*models.Medicine, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id %d", ErrInvalidRecord, id)
	}
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	m.ID = id
	updated, err := s.client.UpdateMedicine(ctx, token, id, m.Normalized())
	if err != nil {
		return nil, s.mapError(ctx, "update", err)
	}
	s.logger.Info(ctx, "medicine updated", "id", id)
	return updated, nil
}

func (s *InventoryClient) Delete(ctx context.Context, id int64) error {
	token, err := s.token()
	if err != nil {
		return err
	}
	if err := s.client.DeleteMedicine(ctx, token, id); err != nil {
		return s.mapError(ctx, "delete", err)
	}
	s.logger.Info(ctx, "medicine deleted", "id", id)
	return nil
}

func (s *InventoryClient) token() (string, error) {
	session := s.sessions.Current()
	if !session.IsAuthenticated() {
		return "", ErrSessionExpired
	}
	return session.Token, nil
}

func (s *InventoryClient) mapError(ctx context.Context, op string, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		s.logger.Info(ctx, "store rejected credentials", "op", op)
		return ErrSessionExpired
	}

	s.logger.Warn(ctx, "inventory call failed", "op", op, "error", err)

	var se *client.StatusError
	switch {
	case errors.As(err, &se):
		return &RequestFailedError{Detail: se.Error(), Err: err}
	case errors.Is(err, client.ErrUnavailable):
		return &RequestFailedError{Detail: "cannot reach the record store", Err: err}
	default:
		return &RequestFailedError{Detail: err.Error(), Err: err}
	}
}
