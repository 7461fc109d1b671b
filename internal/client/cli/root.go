package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	helpLoggedIn  = "Available commands: me, refresh, update, delete, logout, exit"
	helpAnonymous = "Available commands: signup, login, exit"
)

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) prompt() string {
	if a.session.LoggedIn() {
		return "gp (logged in)> "
	}
	return "gp> "
}

// Root runs the read-eval-print loop until "exit" or end of input.
func (a *App) Root(ctx context.Context) {
	a.printf("Welcome to gophprofile CLI (type 'help' for commands)\n")

	for {
		a.printf("%s", a.prompt())
		line, err := a.reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			a.printf("\n")
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		var cmdErr error

		switch cmd := parts[0]; cmd {
		case "help":
			if a.session.LoggedIn() {
				a.printf("%s\n", helpLoggedIn)
			} else {
				a.printf("%s\n", helpAnonymous)
			}
		case "signup", "register":
			cmdErr = a.Signup(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "me":
			cmdErr = a.Me(ctx)
		case "refresh":
			cmdErr = a.Refresh(ctx)
		case "update":
			cmdErr = a.Update(ctx)
		case "delete":
			cmdErr = a.Delete(ctx)
		case "logout":
			cmdErr = a.Logout()
		case "exit", "quit":
			a.printf("Bye!\n")
			return
		default:
			a.printf("Unknown command: %s\n", cmd)
		}

		if cmdErr != nil {
			a.printf("Error: %v\n", cmdErr)
		}
	}
}
