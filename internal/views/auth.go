package views

import (
	"context"
	"fmt"

	"tenderdesk/internal/api"
	"tenderdesk/internal/models"
)

// Home is the navigation shell: a session-aware menu with a logout action.
func (ui *UI) Home(ctx context.Context) string {
	_, loggedIn := ui.session.Token()

	fmt.Fprintln(ui.out, "\n== tenderdesk ==")
	if !loggedIn {
		fmt.Fprintln(ui.out, "login | register | quit")
	} else {
		fmt.Fprintln(ui.out, "tenders | profile | apply | applied | proposal | companies | logout | quit")
	}

	switch cmd := ui.prompt("> "); cmd {
	case "login":
		return RouteLogin
	case "register":
		return RouteRegister
	case "tenders":
		return RouteTenders
	case "profile":
		return RouteProfile
	case "apply":
		return RouteApply
	case "applied":
		return RouteApplied
	case "proposal":
		return RouteProposal
	case "companies":
		return RouteCompanies
	case "logout":
		if err := ui.session.Clear(); err != nil {
			fmt.Fprintln(ui.out, "Failed to log out:", err)
			return RouteHome
		}
		fmt.Fprintln(ui.out, "Logged out.")
		return RouteLogin
	case "quit", "exit":
		return RouteQuit
	default:
		if cmd != "" {
			fmt.Fprintln(ui.out, "Unknown command.")
		}
		return RouteHome
	}
}

// Login prompts for credentials, stores the issued token and moves on to the
// company profile. The server's message is shown verbatim when it sent one.
func (ui *UI) Login(ctx context.Context) string {
	fmt.Fprintln(ui.out, "\n== Log in ==")
	email := ui.prompt("Email: ")
	if email == "" {
		return RouteHome
	}
	password := ui.prompt("Password: ")

	token, err := ui.api.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		fmt.Fprintln(ui.out, api.Message(err, "Login failed"))
		return RouteLogin
	}
	if err := ui.session.Set(token); err != nil {
		fmt.Fprintln(ui.out, "Failed to store session:", err)
		return RouteLogin
	}
	return RouteProfile
}

// Register creates an account and redirects to login on success.
func (ui *UI) Register(ctx context.Context) string {
	fmt.Fprintln(ui.out, "\n== Register ==")
	email := ui.prompt("Email: ")
	if email == "" {
		return RouteHome
	}
	password := ui.prompt("Password: ")

	if err := ui.api.Register(ctx, models.Credentials{Email: email, Password: password}); err != nil {
		fmt.Fprintln(ui.out, api.Message(err, "Registration failed"))
		return RouteRegister
	}
	fmt.Fprintln(ui.out, "Account created. Please log in.")
	return RouteLogin
}
