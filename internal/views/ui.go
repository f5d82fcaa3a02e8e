// Package views renders the client's screens over a terminal. Navigation
// mirrors the platform's pages: each view runs to completion and names the
// next route, and protected views redirect to the login route before issuing
// any request when no session token is stored.
package views

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"tenderdesk/internal/api"
	"tenderdesk/internal/identity"
	"tenderdesk/internal/session"
)

// Route names for the view loop.
const (
	RouteHome      = "home"
	RouteLogin     = "login"
	RouteRegister  = "register"
	RouteProfile   = "profile"
	RouteTenders   = "tenders"
	RouteApply     = "apply"
	RouteApplied   = "applied"
	RouteProposal  = "proposal"
	RouteCompanies = "companies"
	RouteQuit      = "quit"
)

// UI drives the view loop over an input scanner and an output writer.
type UI struct {
	in      *bufio.Scanner
	out     io.Writer
	api     *api.Client
	session *session.Store
	ident   *identity.Resolver
	log     *zap.Logger
	eof     bool
}

// New constructs a UI. The zap logger may be nil.
func New(in io.Reader, out io.Writer, client *api.Client, store *session.Store, log *zap.Logger) *UI {
	if log == nil {
		log = zap.NewNop()
	}
	return &UI{
		in:      bufio.NewScanner(in),
		out:     out,
		api:     client,
		session: store,
		ident:   identity.NewResolver(client),
		log:     log,
	}
}

// Run executes views starting at the given route until the quit route is
// reached or input ends.
func (ui *UI) Run(ctx context.Context, start string) {
	routes := map[string]func(context.Context) string{
		RouteHome:      ui.Home,
		RouteLogin:     ui.Login,
		RouteRegister:  ui.Register,
		RouteProfile:   ui.Profile,
		RouteTenders:   ui.Tenders,
		RouteApply:     ui.Apply,
		RouteApplied:   ui.Applied,
		RouteProposal:  ui.Proposal,
		RouteCompanies: ui.Companies,
	}

	route := start
	for route != RouteQuit && !ui.eof {
		view, ok := routes[route]
		if !ok {
			route = RouteHome
			continue
		}
		route = view(ctx)
	}
	fmt.Fprintln(ui.out, "Bye")
}

// guard returns the stored token. Without one it redirects to the login view
// and the caller performs no data fetch.
func (ui *UI) guard() (string, bool) {
	token, ok := ui.session.Token()
	if !ok {
		fmt.Fprintln(ui.out, "Please log in first.")
		return "", false
	}
	return token, true
}

// prompt reads one line after showing a label.
func (ui *UI) prompt(label string) string {
	fmt.Fprint(ui.out, label)
	if !ui.in.Scan() {
		ui.eof = true
		return ""
	}
	return strings.TrimSpace(ui.in.Text())
}

// promptDefault reads one line, keeping the current value on empty input.
func (ui *UI) promptDefault(label, current string) string {
	text := ui.prompt(fmt.Sprintf("%s [%s]: ", label, current))
	if text == "" {
		return current
	}
	return text
}

// confirm asks a yes/no question; only an explicit yes confirms.
func (ui *UI) confirm(label string) bool {
	answer := strings.ToLower(ui.prompt(label + " (y/n): "))
	return answer == "y" || answer == "yes"
}

// parseID parses a positive integer id, zero when malformed.
func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}
