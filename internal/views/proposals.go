package views

import (
	"context"
	"fmt"
	"time"

	"tenderdesk/internal/api"
	"tenderdesk/internal/models"
)

// Apply is the proposal submission view: a selector over the full tender
// collection plus a free-text proposal. Submission needs a selected tender,
// non-empty text and a resolved company id; missing any of the three makes
// the submit a no-op rather than an error.
func (ui *UI) Apply(ctx context.Context) string {
	token, ok := ui.guard()
	if !ok {
		return RouteLogin
	}

	companyID, hasCompany, err := ui.ident.CompanyID(ctx, token)
	if err != nil {
		fmt.Fprintln(ui.out, api.Message(err, "Failed to fetch company"))
		return RouteHome
	}
	if !hasCompany {
		fmt.Fprintln(ui.out, "Company not found. Create your company first.")
		return RouteProfile
	}

	tenders, err := ui.api.Tenders(ctx, token, 0)
	if err != nil {
		fmt.Fprintln(ui.out, api.Message(err, "Failed to load tenders"))
		return RouteHome
	}

	for {
		fmt.Fprintln(ui.out, "\n== Apply for a tender ==")
		for _, t := range tenders {
			fmt.Fprintf(ui.out, "#%d  %s (%s)\n", t.ID, t.Title, t.BudgetString())
		}

		selection := ui.prompt("Tender id (empty to go back): ")
		if ui.eof {
			return RouteQuit
		}
		if selection == "" {
			return RouteHome
		}
		tenderID := parseID(selection)
		text := ui.prompt("Proposal text: ")

		// All three preconditions required; silently skip otherwise.
		if tenderID == 0 || text == "" || companyID == 0 {
			continue
		}

		app := models.Application{
			TenderID:     tenderID,
			CompanyID:    companyID,
			ProposalText: text,
			SubmittedAt:  time.Now().UTC().Format(time.RFC3339),
		}
		if err := ui.api.SubmitApplication(ctx, token, app); err != nil {
			fmt.Fprintln(ui.out, api.Message(err, "Failed to submit proposal"))
			continue
		}
		fmt.Fprintln(ui.out, "Proposal submitted successfully!")
	}
}

// Applied lists the tenders the acting company has applied to.
func (ui *UI) Applied(ctx context.Context) string {
	token, ok := ui.guard()
	if !ok {
		return RouteLogin
	}

	tenders, err := ui.api.AppliedTenders(ctx, token)
	if err != nil {
		fmt.Fprintln(ui.out, api.Message(err, "Failed to load applied tenders"))
		return RouteHome
	}

	fmt.Fprintln(ui.out, "\n== Applied tenders ==")
	if len(tenders) == 0 {
		fmt.Fprintln(ui.out, "You have not applied to any tenders yet.")
		return RouteHome
	}
	for _, t := range tenders {
		fmt.Fprintf(ui.out, "#%d  %s\n    budget %s, deadline %s\n",
			t.ID, t.Title, t.BudgetString(), t.DeadlineDate())
	}
	return RouteHome
}

// Proposal is the application detail view: the record itself plus the title
// of the tender it references.
func (ui *UI) Proposal(ctx context.Context) string {
	token, ok := ui.guard()
	if !ok {
		return RouteLogin
	}

	id := parseID(ui.prompt("\nProposal id: "))
	if id == 0 {
		return RouteHome
	}

	app, err := ui.api.Application(ctx, token, id)
	if err != nil {
		fmt.Fprintln(ui.out, api.Message(err, "Failed to load proposal"))
		return RouteHome
	}

	title := fmt.Sprintf("tender #%d", app.TenderID)
	if tender, err := ui.api.Tender(ctx, token, app.TenderID); err == nil {
		title = tender.Title
	}

	fmt.Fprintf(ui.out, "\n== Proposal #%d ==\n", app.ID)
	fmt.Fprintf(ui.out, "Tender:    %s\n", title)
	fmt.Fprintf(ui.out, "Submitted: %s\n", app.SubmittedAt)
	fmt.Fprintf(ui.out, "Text:      %s\n", app.ProposalText)
	return RouteHome
}
