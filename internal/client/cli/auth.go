package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/rashedul-dev/Qourio-client/internal/client/api"
	"github.com/rashedul-dev/Qourio-client/internal/client/guard"
	"github.com/rashedul-dev/Qourio-client/internal/client/models"
	"github.com/rashedul-dev/Qourio-client/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getTextWithDefault = GetTextWithDefault
var getPassword = GetPassword

// cmdLogin prompts for credentials and authenticates. The email of the last
// successful login is offered as the default. An unverified account falls
// through to the OTP flow straight away.
func (a *App) cmdLogin(ctx context.Context) error {
	if res := guard.Guest(a.session); res.Decision == guard.DecisionRedirect {
		fmt.Fprintln(a.out, "Already logged in; 'logout' first.")
		return nil
	}

	email, err := getTextWithDefault(a.reader, "Enter email", a.auth.RememberedEmail(ctx), a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, api.ErrUserNotVerified) {
			fmt.Fprintln(a.out, "Your account is not verified yet.")
			return a.verifyOTPFor(ctx, email)
		}
		return err
	}

	a.resolveSession(ctx)
	fmt.Fprintf(a.out, "Welcome back, %s! Home: %s\n", res.User.Name, guard.DefaultRoute(res.User.Role))
	return nil
}

// cmdRegister creates a sender or receiver account and immediately starts
// the OTP verification flow.
func (a *App) cmdRegister(ctx context.Context) error {
	var in models.RegisterInput
	var err error

	if in.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
		return err
	}
	if in.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	in.Password = string(password)

	if in.Phone, err = getSimpleText(a.reader, "Enter phone (optional)", a.out); err != nil {
		return err
	}
	if in.Address, err = getSimpleText(a.reader, "Enter default address (optional)", a.out); err != nil {
		return err
	}

	u, err := a.auth.Register(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Account created for %s.\n", u.Email)
	return a.verifyOTPFor(ctx, u.Email)
}

// cmdVerifyOTP verifies an account with a previously mailed OTP code.
func (a *App) cmdVerifyOTP(ctx context.Context) error {
	email, err := getTextWithDefault(a.reader, "Enter email", a.auth.RememberedEmail(ctx), a.out)
	if err != nil {
		return err
	}
	return a.verifyOTPFor(ctx, email)
}

func (a *App) verifyOTPFor(ctx context.Context, email string) error {
	if err := a.auth.SendOTP(ctx, "", email); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "An OTP was sent to", email)

	otp, err := getSimpleText(a.reader, "Enter OTP", a.out)
	if err != nil {
		return err
	}
	if err := a.auth.VerifyOTP(ctx, email, otp); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Verified! You can log in now.")
	return nil
}

func (a *App) cmdForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if err := a.auth.ForgotPassword(ctx, email); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "If the account exists, a reset link was mailed to it.")
	return nil
}

func (a *App) cmdResetPassword(ctx context.Context) error {
	token, err := getSimpleText(a.reader, "Enter reset token", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.ResetPassword(ctx, string(password), token); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password reset. Log in with the new password.")
	return nil
}

func (a *App) cmdChangePassword(ctx context.Context) error {
	return a.protected(ctx, nil, func(ctx context.Context) error {
		oldPw, err := getPassword(a.out, "Current password")
		if err != nil {
			return err
		}
		defer common.WipeByteArray(oldPw)
		newPw, err := getPassword(a.out, "New password")
		if err != nil {
			return err
		}
		defer common.WipeByteArray(newPw)

		if err := a.auth.ChangePassword(ctx, string(oldPw), string(newPw)); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Password changed.")
		return nil
	})
}

func (a *App) cmdWhoami(ctx context.Context) error {
	return a.protected(ctx, nil, func(ctx context.Context) error {
		u, err := a.auth.CurrentUser(ctx)
		if err != nil {
			return err
		}
		a.renderUserProfile(u)
		return nil
	})
}

// cmdLogout ends the session and resets every per-session view state.
func (a *App) cmdLogout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Warning:", api.ServerMessage(err, "could not end the server session"))
	}
	a.session = guard.Session{State: guard.SessionAnonymous}
	a.parcelView.ClearSearch()
	a.userView.ClearSearch()
	a.active = listParcels
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
