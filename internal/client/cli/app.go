package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/medkeeper/internal/client/models"
	"github.com/dmitrijs2005/medkeeper/internal/client/services"
	"github.com/dmitrijs2005/medkeeper/internal/logging"
)

type Screen string

const (
	ScreenLogin     Screen = "login"
	ScreenSignup    Screen = "signup"
	ScreenInventory Screen = "inventory"
)

// User-facing messages.
const (
	msgEmptyLogin         = "Please enter both username and password."
	msgInvalidCredentials = "Invalid username or password. Please try again."
	msgUnreachable        = "Cannot connect to server. Please check if the backend is running."
	msgLoginFailed        = "Login failed. Please try again."
	msgSignupFailed       = "Signup failed. Please try again."
	msgSignupSucceeded    = "Account created successfully! You can now login."
	msgSessionExpired     = "Session expired. Please login again."
	msgConfirmDelete      = "Are you sure you want to delete this medicine?"
	msgPasswordUnread     = "Could not read password."
)

type App struct {
	authService      services.AuthService
	inventoryService services.InventoryService
	logger           logging.Logger

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	warningDays int
	screen      Screen
	notice      string
}

// NewApp builds an App reading from stdin and writing to stdout. A
// non-positive warningDays falls back to the default window.
func NewApp(auth services.AuthService, inventory services.InventoryService, warningDays int, logger logging.Logger) *App {
	if warningDays <= 0 {
		warningDays = models.DefaultExpiryWarningDays
	}
	return &App{
		authService:      auth,
		inventoryService: inventory,
		logger:           logger,
		reader:           bufio.NewReader(os.Stdin),
		out:              os.Stdout,
		now:              time.Now,
		warningDays:      warningDays,
		screen:           ScreenLogin,
	}
}

// Run restores the previous session, then serves the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.authService.Close(ctx); err != nil {
			a.logger.Warn(ctx, "close failed", "error", err)
		}
	}()

	a.println("Welcome to MedKeeper (type 'help' for commands)")
	a.Start(ctx)
	runREPL(ctx, a, a.status, a.reader)
}

// Start picks the first screen from the restored session.
func (a *App) Start(ctx context.Context) {
	session := a.authService.Restore(ctx)
	if !session.IsAuthenticated() {
		a.screen = ScreenLogin
		return
	}
	a.screen = ScreenInventory
	a.println(fmt.Sprintf("Signed in as %s.", session.Username))
	_ = a.List(ctx)
}

func (a *App) Screen() Screen { return a.screen }

// Notice is the last banner shown to the user, e.g. after an expired session.
func (a *App) Notice() string { return a.notice }

func (a *App) status() string {
	if a.screen == ScreenInventory {
		if user := a.authService.Current().Username; user != "" {
			return fmt.Sprintf("%s %s", user, a.screen)
		}
	}
	return string(a.screen)
}

func (a *App) setNotice(msg string) {
	a.notice = msg
	a.println(msg)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// handleError reports a failed inventory action. An expired session is
// torn down and the user is sent back to the login screen.
func (a *App) handleError(ctx context.Context, err error) error {
	var rf *services.RequestFailedError
	switch {
	case errors.Is(err, services.ErrSessionExpired):
		a.authService.Expire(ctx)
		a.screen = ScreenLogin
		a.setNotice(msgSessionExpired)
	case errors.As(err, &rf):
		a.println("Error:", rf.Detail)
	default:
		a.println("Error:", err.Error())
	}
	return err
}
