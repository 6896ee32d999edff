package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/medkeeper/internal/client/client"
	"github.com/dmitrijs2005/medkeeper/internal/client/client/storetest"
	"github.com/dmitrijs2005/medkeeper/internal/client/models"
	"github.com/dmitrijs2005/medkeeper/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/medkeeper/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- fake client ----

type fakeClient struct {
	LoginErr  error
	LogoutErr error

	StatusRet bool
	StatusErr error

	SignupRet *models.SignupResponse
	SignupErr error

	ListRet   []models.Medicine
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error

	calls      []string
	lastToken  string
	lastRecord models.Medicine
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Login(_ context.Context, token string) error {
	f.calls, f.lastToken = append(f.calls, "login"), token
	return f.LoginErr
}

func (f *fakeClient) Logout(_ context.Context, token string) error {
	f.calls, f.lastToken = append(f.calls, "logout"), token
	return f.LogoutErr
}

func (f *fakeClient) Status(_ context.Context, token string) (bool, error) {
	f.calls, f.lastToken = append(f.calls, "status"), token
	return f.StatusRet, f.StatusErr
}

func (f *fakeClient) Signup(_ context.Context, _ models.SignupRequest) (*models.SignupResponse, error) {
	f.calls = append(f.calls, "signup")
	return f.SignupRet, f.SignupErr
}

func (f *fakeClient) ListMedicines(_ context.Context, token string) ([]models.Medicine, error) {
	f.calls, f.lastToken = append(f.calls, "list"), token
	return f.ListRet, f.ListErr
}

func (f *fakeClient) CreateMedicine(_ context.Context, token string, m models.Medicine) (*models.Medicine, error) {
	f.calls, f.lastToken, f.lastRecord = append(f.calls, "create"), token, m
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	m.ID = 1
	return &m, nil
}

func (f *fakeClient) UpdateMedicine(_ context.Context, token string, _ int64, m models.Medicine) (*models.Medicine, error) {
	f.calls, f.lastToken, f.lastRecord = append(f.calls, "update"), token, m
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	return &m, nil
}

func (f *fakeClient) DeleteMedicine(_ context.Context, token string, _ int64) error {
	f.calls, f.lastToken = append(f.calls, "delete"), token
	return f.DeleteErr
}

var _ client.Client = (*fakeClient)(nil)

// ---- fake repository ----

type fakeRepo struct {
	stored *models.StoredCredentials

	LoadErr  error
	SaveErr  error
	ClearErr error

	cleared int
}

func (r *fakeRepo) Load(context.Context) (*models.StoredCredentials, error) {
	if r.LoadErr != nil {
		return nil, r.LoadErr
	}
	return r.stored, nil
}

func (r *fakeRepo) Save(_ context.Context, creds models.StoredCredentials) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.stored = &creds
	return nil
}

func (r *fakeRepo) Clear(context.Context) error {
	r.cleared++
	if r.ClearErr != nil {
		return r.ClearErr
	}
	r.stored = nil
	return nil
}

var _ sessions.Repository = (*fakeRepo)(nil)

// ---- fixed session ----

type staticSession models.Session

func (s staticSession) Current() models.Session { return models.Session(s) }

// ---- integration wiring ----

type stack struct {
	store     *storetest.Store
	repo      *sessions.SQLiteRepository
	auth      *SessionManager
	inventory *InventoryClient
}

// newStack wires the real HTTP client and SQLite storage against an
// in-process store.
func newStack(t *testing.T) *stack {
	t.Helper()
	ctx := context.Background()

	store := storetest.New()
	t.Cleanup(store.Close)

	db, err := client.OpenDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := logging.NewNopLogger()
	c := client.NewHTTPClient(store.URL(), logger)
	repo := sessions.NewSQLiteRepository(db)
	auth := NewSessionManager(c, repo, logger)

	return &stack{
		store:     store,
		repo:      repo,
		auth:      auth,
		inventory: NewInventoryClient(c, auth, logger),
	}
}

// restart simulates a new process sharing the same storage and store.
func (s *stack) restart() *SessionManager {
	logger := logging.NewNopLogger()
	return NewSessionManager(client.NewHTTPClient(s.store.URL(), logger), s.repo, logger)
}

func aspirin() models.Medicine {
	return models.Medicine{
		Name:         "Aspirin",
		Manufacturer: "Bayer",
		BatchNumber:  "ASP-001",
		Quantity:     10,
		ExpiryDate:   models.NewDate(2030, 6, 1),
	}
}
