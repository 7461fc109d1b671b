package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/gophprofile/internal/client/client"
)

func (a *App) printUser(u *client.User) {
	name := "-"
	if u.Name != nil {
		name = *u.Name
	}
	a.printf("id:       %d\nemail:    %s\nname:     %s\ncreated:  %s\nupdated:  %s\n",
		u.ID, u.Email, name, u.CreatedAt, u.UpdatedAt)
}

// Me prints the current profile.
func (a *App) Me(ctx context.Context) error {
	u, err := a.session.Me(ctx)
	if err != nil {
		return err
	}
	if u == nil {
		a.printf("No profile found\n")
		return nil
	}
	a.printUser(u)
	return nil
}

// Update asks for a new name and email. Leaving an answer blank keeps the
// current value.
func (a *App) Update(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "New name (blank to keep)", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "New email (blank to keep)", a.out)
	if err != nil {
		return err
	}

	var namePtr, emailPtr *string
	if name != "" {
		namePtr = &name
	}
	if email != "" {
		emailPtr = &email
	}
	if namePtr == nil && emailPtr == nil {
		a.printf("Nothing to update\n")
		return nil
	}

	u, err := a.session.Update(ctx, namePtr, emailPtr)
	if err != nil {
		return err
	}
	a.printUser(u)
	return nil
}

// Delete removes the account after the user types "yes".
func (a *App) Delete(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete your account permanently? Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		a.printf("Cancelled\n")
		return nil
	}

	ok, err := a.session.Delete(ctx)
	if err != nil {
		return err
	}
	if !ok {
		a.printf("Account was not found\n")
		return nil
	}
	a.printf("Account deleted\n")
	return nil
}
