package cli

import (
	"context"

	"github.com/dmitrijs2005/gophprofile/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup prompts for email, password and an optional name, creates the
// account and stores the returned token.
//
// The password byte slice is wiped before returning.
func (a *App) Signup(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Enter name (optional)", a.out)
	if err != nil {
		return err
	}

	u, err := a.session.Signup(ctx, email, string(password), name)
	if err != nil {
		return err
	}

	a.printf("Signed up as %s (id %d)\n", u.Email, u.ID)
	return nil
}

// Login prompts for credentials and stores the returned token.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.printf("Logged in as %s\n", u.Email)
	return nil
}

// Refresh swaps the stored token for one with a new expiry.
func (a *App) Refresh(ctx context.Context) error {
	if _, err := a.session.Refresh(ctx); err != nil {
		return err
	}
	a.printf("Token refreshed\n")
	return nil
}

// Logout forgets the stored token. Tokens are stateless, so the server is
// not contacted.
func (a *App) Logout() error {
	if err := a.session.Logout(); err != nil {
		return err
	}
	a.printf("Logged out\n")
	return nil
}
