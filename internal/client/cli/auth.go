package cli

import (
	"context"
	"fmt"
	"os"

	"memento/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// Register prompts for email, username and password and creates a new
// account. On success the account is logged in right away and the journal
// loaded. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Register(ctx, email, username, string(password)); err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", a.session.User().Username))
	a.onAuthenticated(ctx)
	return nil
}

// Login prompts for credentials and authenticates. On success the journal
// is loaded once. A failed login leaves the prior session state untouched
// and the form usable.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Welcome back, %s!", a.session.User().Username))
	a.onAuthenticated(ctx)
	return nil
}

// Logout ends the session and clears the cached journal. It never fails.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.journal.Clear()
	printlnFn("Logged out.")
	return nil
}

// WhoAmI prints the authenticated user's profile.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s>, joined %s", u.Username, u.Email, u.CreatedAt.Format("Jan 2, 2006")))
	return nil
}
