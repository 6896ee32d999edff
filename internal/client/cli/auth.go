package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/medkeeper/internal/client/models"
	"github.com/dmitrijs2005/medkeeper/internal/client/services"
	"github.com/dmitrijs2005/medkeeper/internal/shared"
)

// Login prompts for credentials and authenticates. Empty fields are
// refused before any call is made. On success the inventory screen opens
// with a fresh list; on failure the screen stays LOGIN.
func (a *App) Login(ctx context.Context) error {
	a.screen = ScreenLogin

	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		a.println(msgPasswordUnread)
		return err
	}
	defer shared.WipeByteArray(password)

	if username == "" || len(password) == 0 {
		a.println(msgEmptyLogin)
		return errors.New("empty credentials")
	}

	session, err := a.authService.Login(ctx, username, string(password))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			a.println(msgInvalidCredentials)
		case errors.Is(err, services.ErrUnreachable):
			a.println(msgUnreachable)
		default:
			a.logger.Warn(ctx, "login failed", "error", err)
			a.println(msgLoginFailed)
		}
		return err
	}

	a.screen = ScreenInventory
	a.notice = ""
	a.println(fmt.Sprintf("Welcome, %s!", session.Username))
	_ = a.List(ctx)
	return nil
}

// Signup collects the signup form. Validation and store rejections are shown
// verbatim and keep the SIGNUP screen; success returns to LOGIN.
func (a *App) Signup(ctx context.Context) error {
	a.screen = ScreenSignup

	var req models.SignupRequest
	var err error

	if req.Username, err = getSimpleText(a.reader, "Username", a.out); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if req.FullName, err = getSimpleText(a.reader, "Full name", a.out); err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		a.println(msgPasswordUnread)
		return err
	}
	defer shared.WipeByteArray(password)
	confirmation, err := getPassword("Confirm password", a.out)
	if err != nil {
		a.println(msgPasswordUnread)
		return err
	}
	defer shared.WipeByteArray(confirmation)
	req.Password, req.ConfirmPassword = string(password), string(confirmation)

	if _, err := a.authService.Signup(ctx, req); err != nil {
		var (
			ve *models.ValidationError
			re *services.SignupRejectedError
		)
		switch {
		case errors.As(err, &ve):
			a.println(ve.Message)
		case errors.As(err, &re):
			a.println(re.Message)
		case errors.Is(err, services.ErrUnreachable):
			a.println(msgUnreachable)
		default:
			a.println(msgSignupFailed)
		}
		return err
	}

	a.screen = ScreenLogin
	a.setNotice(msgSignupSucceeded)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	a.screen = ScreenLogin
	a.notice = ""
	a.println("Logged out.")
	return nil
}
