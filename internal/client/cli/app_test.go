package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/medkeeper/internal/client/client"
	"github.com/dmitrijs2005/medkeeper/internal/client/client/storetest"
	"github.com/dmitrijs2005/medkeeper/internal/client/models"
	"github.com/dmitrijs2005/medkeeper/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/medkeeper/internal/client/services"
	"github.com/dmitrijs2005/medkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type harness struct {
	app   *App
	out   *bytes.Buffer
	store *storetest.Store
	auth  *services.SessionManager
	repo  *sessions.SQLiteRepository
}

func newHarness(t *testing.T) *harness {
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
	auth := services.NewSessionManager(c, repo, logger)
	inventory := services.NewInventoryClient(c, auth, logger)

	out := &bytes.Buffer{}
	app := NewApp(auth, inventory, 7, logger)
	app.out = out
	app.now = func() time.Time { return today }

	return &harness{app: app, out: out, store: store, auth: auth, repo: repo}
}

// input feeds the text prompts, one answer per line.
func (h *harness) input(lines ...string) {
	h.app.reader = bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

// stubPasswords answers password prompts in order.
func stubPasswords(t *testing.T, passwords ...string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		pw := passwords[0]
		passwords = passwords[1:]
		return []byte(pw), nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	h.input(storetest.DefaultUsername)
	stubPasswords(t, storetest.DefaultPassword)
	require.NoError(t, h.app.Login(context.Background()))
	require.Equal(t, ScreenInventory, h.app.Screen())
	h.out.Reset()
}

func TestNewApp_DefaultsWarningWindow(t *testing.T) {
	app := NewApp(nil, nil, 0, logging.NewNopLogger())
	assert.Equal(t, models.DefaultExpiryWarningDays, app.warningDays)
	assert.Equal(t, ScreenLogin, app.Screen())
}

func TestLogin_WrongPasswordStaysOnLogin(t *testing.T) {
	h := newHarness(t)
	h.input("hitesh")
	stubPasswords(t, "wrong")

	require.Error(t, h.app.Login(context.Background()))
	assert.Equal(t, ScreenLogin, h.app.Screen())
	assert.Contains(t, h.out.String(), "Invalid username or password. Please try again.")
}

func TestLogin_EmptyFieldsMakeNoCall(t *testing.T) {
	h := newHarness(t)
	h.input("")
	stubPasswords(t, "secret")

	require.Error(t, h.app.Login(context.Background()))
	assert.Contains(t, h.out.String(), "Please enter both username and password.")
	assert.Empty(t, h.store.Calls())
}

func TestLogin_StoreDown(t *testing.T) {
	h := newHarness(t)
	h.store.Close()
	h.input("hitesh")
	stubPasswords(t, "hitesh33")

	require.Error(t, h.app.Login(context.Background()))
	assert.Contains(t, h.out.String(), "Cannot connect to server. Please check if the backend is running.")
}

func TestLogin_OtherFailure(t *testing.T) {
	h := newHarness(t)
	h.store.Override(storetest.RouteLogin, http.StatusInternalServerError)
	h.input("hitesh")
	stubPasswords(t, "hitesh33")

	require.Error(t, h.app.Login(context.Background()))
	assert.Contains(t, h.out.String(), "Login failed. Please try again.")
}

func TestLogin_PasswordUnreadable(t *testing.T) {
	h := newHarness(t)
	h.input("hitesh")
	stubPasswords(t)

	require.ErrorIs(t, h.app.Login(context.Background()), io.EOF)
	assert.Contains(t, h.out.String(), "Could not read password.")
	assert.Empty(t, h.store.Calls())
}

func TestLogin_SuccessShowsInventory(t *testing.T) {
	h := newHarness(t)
	h.store.Seed(storetest.DefaultUsername, models.Medicine{
		Name: "Paracetamol", BatchNumber: "P-1", Quantity: 2, ExpiryDate: models.NewDate(2026, 1, 1),
	})
	h.input("hitesh")
	stubPasswords(t, "hitesh33")

	require.NoError(t, h.app.Login(context.Background()))
	assert.Equal(t, ScreenInventory, h.app.Screen())
	assert.Contains(t, h.out.String(), "Paracetamol")
}

func TestStart_RestoresSession(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	next := NewApp(h.auth, h.app.inventoryService, 7, logging.NewNopLogger())
	next.out = &bytes.Buffer{}
	next.Start(context.Background())
	assert.Equal(t, ScreenInventory, next.Screen())

	h.store.Revoke(storetest.DefaultUsername)
	next.Start(context.Background())
	assert.Equal(t, ScreenLogin, next.Screen())
}

func TestSignup_ValidationMessage(t *testing.T) {
	h := newHarness(t)
	h.input("al", "al@example.com", "Al")
	stubPasswords(t, "secret1", "secret1")

	require.Error(t, h.app.Signup(context.Background()))
	assert.Equal(t, ScreenSignup, h.app.Screen())
	assert.Contains(t, h.out.String(), "Username must be at least 3 characters long")
	assert.Empty(t, h.store.Calls())
}

func TestSignup_RejectionShownVerbatim(t *testing.T) {
	h := newHarness(t)
	h.input(storetest.DefaultUsername, "new@example.com", "Someone")
	stubPasswords(t, "secret1", "secret1")

	require.Error(t, h.app.Signup(context.Background()))
	assert.Contains(t, h.out.String(), "Username already exists")
	assert.Equal(t, ScreenSignup, h.app.Screen())
}

func TestSignup_GenericFailure(t *testing.T) {
	h := newHarness(t)
	h.store.Override(storetest.RouteSignup, http.StatusInternalServerError)
	h.input("alice", "alice@example.com", "Alice")
	stubPasswords(t, "secret1", "secret1")

	require.Error(t, h.app.Signup(context.Background()))
	assert.Contains(t, h.out.String(), "Signup failed. Please try again.")
}

func TestSignup_ConfirmationUnreadable(t *testing.T) {
	h := newHarness(t)
	h.input("alice", "alice@example.com", "Alice Doe")
	stubPasswords(t, "secret1")

	require.ErrorIs(t, h.app.Signup(context.Background()), io.EOF)
	assert.Contains(t, h.out.String(), "Could not read password.")
	assert.Zero(t, h.store.CallCount(storetest.RouteSignup))
}

func TestSignup_SuccessReturnsToLogin(t *testing.T) {
	h := newHarness(t)
	h.input("alice", "alice@example.com", "Alice")
	stubPasswords(t, "secret1", "secret1")

	require.NoError(t, h.app.Signup(context.Background()))
	assert.Equal(t, ScreenLogin, h.app.Screen())
	assert.Equal(t, "Account created successfully! You can now login.", h.app.Notice())
}

func TestAdd_RelistsAndFlagsExpiring(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	h.input("Amoxicillin", "", "AMX-9", "12abc", "2025-03-17")
	require.NoError(t, h.app.Add(context.Background()))

	got := h.store.Medicines(storetest.DefaultUsername)
	require.Len(t, got, 1)
	assert.Equal(t, 12, got[0].Quantity)

	out := h.out.String()
	assert.Contains(t, out, "Medicine added.")
	assert.Contains(t, out, "AMX-9")
	assert.Contains(t, out, expiringFlag, "seven days out is still inside the window")
}

func TestAdd_MissingFieldsSendNothing(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	before := len(h.store.Calls())

	h.input("", "", "B-1", "1", "2030-01-01")
	require.Error(t, h.app.Add(context.Background()))
	assert.Contains(t, h.out.String(), "Name is required")
	assert.Len(t, h.store.Calls(), before)
}

func TestEdit_ConfirmedAndDiscarded(t *testing.T) {
	h := newHarness(t)
	seeded := h.store.Seed(storetest.DefaultUsername, models.Medicine{
		Name: "Aspirin", BatchNumber: "A-1", Quantity: 5, ExpiryDate: models.NewDate(2030, 1, 1),
	})
	h.login(t)
	id := strconv.FormatInt(seeded.ID, 10)

	h.input("", "", "", "9", "", "n")
	require.NoError(t, h.app.Edit(context.Background(), id))
	assert.Equal(t, 5, h.store.Medicines(storetest.DefaultUsername)[0].Quantity, "edits stay local until confirmed")
	assert.Zero(t, h.store.CallCount(storetest.RouteUpdate))

	h.input("", "Bayer", "", "9", "", "y")
	require.NoError(t, h.app.Edit(context.Background(), id))
	got := h.store.Medicines(storetest.DefaultUsername)[0]
	assert.Equal(t, 9, got.Quantity)
	assert.Equal(t, "Bayer", got.Manufacturer)
	assert.Equal(t, "Aspirin", got.Name)
}

func TestEdit_DashClearsManufacturer(t *testing.T) {
	h := newHarness(t)
	seeded := h.store.Seed(storetest.DefaultUsername, models.Medicine{
		Name: "Aspirin", Manufacturer: "Bayer", BatchNumber: "A-1", Quantity: 5, ExpiryDate: models.NewDate(2030, 1, 1),
	})
	h.login(t)

	h.input("", "-", "", "", "", "y")
	require.NoError(t, h.app.Edit(context.Background(), strconv.FormatInt(seeded.ID, 10)))

	got := h.store.Medicines(storetest.DefaultUsername)[0]
	assert.Empty(t, got.Manufacturer)
	assert.Equal(t, "Aspirin", got.Name)
	assert.Equal(t, 5, got.Quantity)
}

func TestEdit_UnknownID(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	require.Error(t, h.app.Edit(context.Background(), "42"))
	assert.Contains(t, h.out.String(), "No medicine with id 42.")

	require.Error(t, h.app.Edit(context.Background(), "abc"))
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	h := newHarness(t)
	m := h.store.Seed(storetest.DefaultUsername, models.Medicine{
		Name: "Aspirin", BatchNumber: "A-1", ExpiryDate: models.NewDate(2030, 1, 1),
	})
	h.login(t)
	id := strconv.FormatInt(m.ID, 10)

	h.input("no")
	require.NoError(t, h.app.Delete(context.Background(), id))
	assert.Len(t, h.store.Medicines(storetest.DefaultUsername), 1)
	assert.Contains(t, h.out.String(), "Are you sure you want to delete this medicine?")

	h.input("y")
	require.NoError(t, h.app.Delete(context.Background(), id))
	assert.Empty(t, h.store.Medicines(storetest.DefaultUsername))
	assert.Contains(t, h.out.String(), "No medicines found.")
}

func TestSearchAndExpiring(t *testing.T) {
	h := newHarness(t)
	h.store.Seed(storetest.DefaultUsername, models.Medicine{Name: "Paracetamol", BatchNumber: "P-1", ExpiryDate: models.NewDate(2025, 3, 12)})
	h.store.Seed(storetest.DefaultUsername, models.Medicine{Name: "Ibuprofen", BatchNumber: "IBU-7", ExpiryDate: models.NewDate(2027, 1, 1)})
	h.store.Seed(storetest.DefaultUsername, models.Medicine{Name: "Cetirizine", BatchNumber: "C-3", ExpiryDate: models.NewDate(2025, 3, 1)})
	h.login(t)

	require.NoError(t, h.app.Search(context.Background(), "ibu"))
	assert.Contains(t, h.out.String(), "Ibuprofen")
	assert.NotContains(t, h.out.String(), "Paracetamol")

	h.out.Reset()
	require.NoError(t, h.app.Expiring(context.Background()))
	assert.Contains(t, h.out.String(), "Paracetamol")
	assert.NotContains(t, h.out.String(), "Ibuprofen")
	assert.NotContains(t, h.out.String(), "Cetirizine", "already expired records are not expiring")

	h.out.Reset()
	require.NoError(t, h.app.List(context.Background()))
	for _, line := range strings.Split(h.out.String(), "\n") {
		switch {
		case strings.Contains(line, "Cetirizine"):
			assert.Contains(t, line, expiredFlag)
		case strings.Contains(line, "Paracetamol"):
			assert.Contains(t, line, expiringFlag)
		case strings.Contains(line, "Ibuprofen"):
			assert.NotContains(t, line, expiringFlag)
			assert.NotContains(t, line, expiredFlag)
		}
	}
}

func TestSessionExpiredReturnsToLogin(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.store.Revoke(storetest.DefaultUsername)

	err := h.app.List(context.Background())
	require.ErrorIs(t, err, services.ErrSessionExpired)

	assert.Equal(t, ScreenLogin, h.app.Screen())
	assert.Equal(t, "Session expired. Please login again.", h.app.Notice())
	assert.Equal(t, models.StatusAnonymous, h.auth.Current().Status)

	creds, err := h.repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestRequestFailureStaysOnInventory(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.store.Override(storetest.RouteList, http.StatusInternalServerError)

	require.Error(t, h.app.List(context.Background()))
	assert.Equal(t, ScreenInventory, h.app.Screen())
	assert.Contains(t, h.out.String(), "Error: unexpected status 500")
}

func TestLogout(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	require.NoError(t, h.app.Logout(context.Background()))
	assert.Equal(t, ScreenLogin, h.app.Screen())
	assert.Equal(t, 1, h.store.CallCount(storetest.RouteLogout))

	creds, err := h.repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestStatusLine(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, "login", h.app.status())
	h.login(t)
	assert.Equal(t, "hitesh inventory", h.app.status())
}
