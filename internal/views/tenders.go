package views

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tenderdesk/internal/api"
	"tenderdesk/internal/workspace"
)

// Tenders is the tender workspace view. It drives the workspace state
// machine: identity resolution, the parallel collection load, the
// client-side search filter, pagination, and the inline mutations.
func (ui *UI) Tenders(ctx context.Context) string {
	token, _ := ui.session.Token()

	ws := workspace.New(ui.api, ui.ident, ui.log)
	if err := ws.Start(ctx, token); err != nil {
		if errors.Is(err, workspace.ErrLoginRequired) {
			fmt.Fprintln(ui.out, "Please log in first.")
		} else {
			fmt.Fprintln(ui.out, "Failed to fetch company. Please login again.")
		}
		return RouteLogin
	}

	for {
		ui.renderTenders(ws)

		line := ui.prompt("tenders> ")
		if ui.eof {
			return RouteQuit
		}
		cmd, arg := splitCommand(line)

		switch cmd {
		case "help":
			fmt.Fprintln(ui.out, "Commands: search <text>, clear, add, edit <id>, del <id>, apply <id>, next, prev, back")

		case "search":
			ws.SetSearch(arg)

		case "clear":
			ws.SetSearch("")

		case "add":
			ws.ResetForm()
			ui.editTenderForm(ws)
			if err := ws.Submit(ctx); err != nil {
				fmt.Fprintln(ui.out, api.Message(err, "Error saving tender"))
			}

		case "edit":
			id := parseID(arg)
			if id == 0 || !ws.Edit(id) {
				fmt.Fprintln(ui.out, "Usage: edit <id> (id must be on this page)")
				continue
			}
			ui.editTenderForm(ws)
			if err := ws.Submit(ctx); err != nil {
				fmt.Fprintln(ui.out, api.Message(err, "Error saving tender"))
			}

		case "del":
			id := parseID(arg)
			if id == 0 {
				fmt.Fprintln(ui.out, "Usage: del <id>")
				continue
			}
			confirmed, err := ws.Delete(ctx, id, ui.confirm)
			if err != nil {
				fmt.Fprintln(ui.out, api.Message(err, "Failed to delete tender"))
			} else if !confirmed {
				fmt.Fprintln(ui.out, "Delete cancelled.")
			}

		case "apply":
			id := parseID(arg)
			if id == 0 {
				fmt.Fprintln(ui.out, "Usage: apply <id>")
				continue
			}
			if err := ws.Apply(ctx, id); err != nil {
				fmt.Fprintln(ui.out, api.Message(err, "Failed to apply"))
			} else {
				fmt.Fprintln(ui.out, "Applied successfully!")
			}

		case "next":
			if err := ws.NextPage(ctx); err != nil {
				fmt.Fprintln(ui.out, api.Message(err, "Failed to load tenders"))
			}

		case "prev":
			if err := ws.PrevPage(ctx); err != nil {
				fmt.Fprintln(ui.out, api.Message(err, "Failed to load tenders"))
			}

		case "back":
			return RouteHome

		case "logout":
			_ = ui.session.Clear()
			return RouteLogin

		default:
			if cmd != "" {
				fmt.Fprintln(ui.out, "Unknown command. Type 'help' for a list of commands.")
			}
		}
	}
}

// renderTenders prints the filtered page with applied badges and ownership
// markers.
func (ui *UI) renderTenders(ws *workspace.Workspace) {
	fmt.Fprintf(ui.out, "\n== Tenders (page %d", ws.Page())
	if ws.Search() != "" {
		fmt.Fprintf(ui.out, ", search %q", ws.Search())
	}
	fmt.Fprintln(ui.out, ") ==")

	visible := ws.Visible()
	if len(visible) == 0 {
		fmt.Fprintln(ui.out, "No tenders to show.")
		return
	}
	for _, t := range visible {
		marks := ""
		if ws.Owns(t) {
			marks += " (yours)"
		}
		if ws.Applied(t.ID) {
			marks += " [applied]"
		}
		fmt.Fprintf(ui.out, "#%d  %s%s\n    budget %s, deadline %s\n    %s\n",
			t.ID, t.Title, marks, t.BudgetString(), t.DeadlineDate(), t.Description)
	}
}

// editTenderForm prompts for the tender fields, keeping current values on
// empty input.
func (ui *UI) editTenderForm(ws *workspace.Workspace) {
	form := ws.Form()
	form.Title = ui.promptDefault("Title", form.Title)

	budgetStr := ui.promptDefault("Budget", strconv.FormatFloat(form.Budget, 'f', -1, 64))
	if budget, err := strconv.ParseFloat(budgetStr, 64); err == nil {
		form.Budget = budget
	}

	form.Deadline = ui.promptDefault("Deadline (YYYY-MM-DD)", form.Deadline)
	form.Description = ui.promptDefault("Description", form.Description)
	ws.SetForm(form)
}

// splitCommand separates a command word from its argument.
func splitCommand(line string) (cmd, arg string) {
	parts := strings.SplitN(line, " ", 2)
	cmd = parts[0]
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg
}
