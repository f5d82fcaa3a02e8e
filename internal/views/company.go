package views

import (
	"context"
	"fmt"
	"strconv"

	"tenderdesk/internal/api"
	"tenderdesk/internal/models"
)

// Profile is the company profile view: a single create-or-update form. A 404
// from /companies/me is the valid "no company yet" state and renders an
// empty creatable form; saves pick create vs update by that rule.
func (ui *UI) Profile(ctx context.Context) string {
	token, ok := ui.guard()
	if !ok {
		return RouteLogin
	}

	existing, err := ui.api.CurrentCompany(ctx, token)
	if err != nil && !api.IsNotFound(err) {
		fmt.Fprintln(ui.out, api.Message(err, "Failed to fetch company"))
		return RouteHome
	}

	for {
		form := models.Company{}
		if existing != nil {
			form = *existing
			fmt.Fprintf(ui.out, "\n== Company profile: %s ==\n", existing.Name)
			fmt.Fprintf(ui.out, "Industry:    %s\n", existing.Industry)
			fmt.Fprintf(ui.out, "Description: %s\n", existing.Description)
			if existing.LogoURL != "" {
				fmt.Fprintf(ui.out, "Logo:        %s\n", existing.LogoURL)
			}
			fmt.Fprintln(ui.out, "save | delete | back")
		} else {
			fmt.Fprintln(ui.out, "\n== Add your company ==")
			fmt.Fprintln(ui.out, "save | back")
		}

		switch ui.prompt("> ") {
		case "save":
			form.Name = ui.promptDefault("Company name", form.Name)
			form.Industry = ui.promptDefault("Industry", form.Industry)
			form.Description = ui.promptDefault("Description", form.Description)
			form.LogoURL = ui.promptDefault("Logo URL (optional)", form.LogoURL)

			if existing != nil {
				err = ui.api.UpdateCompany(ctx, token, form)
			} else {
				err = ui.api.CreateCompany(ctx, token, form)
			}
			if err != nil {
				fmt.Fprintln(ui.out, api.Message(err, "Failed to save company"))
				continue
			}
			fmt.Fprintln(ui.out, "Company saved.")
			existing, err = ui.api.CurrentCompany(ctx, token)
			if err != nil {
				existing = nil
			}

		case "delete":
			if existing == nil {
				continue
			}
			if !ui.confirm("Are you sure you want to delete your company?") {
				continue
			}
			if err := ui.api.DeleteCompany(ctx, token, existing.ID); err != nil {
				fmt.Fprintln(ui.out, api.Message(err, "Failed to delete company"))
				continue
			}
			fmt.Fprintln(ui.out, "Company deleted.")
			existing = nil

		case "back":
			return RouteHome

		default:
			if ui.eof {
				return RouteQuit
			}
		}
	}
}

// Companies is the keyword search view over all companies.
func (ui *UI) Companies(ctx context.Context) string {
	token, ok := ui.guard()
	if !ok {
		return RouteLogin
	}

	for {
		query := ui.prompt("\nSearch companies (empty to go back): ")
		if query == "" {
			return RouteHome
		}

		companies, err := ui.api.SearchCompanies(ctx, token, query)
		if err != nil {
			fmt.Fprintln(ui.out, api.Message(err, "Failed to search companies"))
			continue
		}
		if len(companies) == 0 {
			fmt.Fprintln(ui.out, "No companies found.")
			continue
		}
		for _, c := range companies {
			fmt.Fprintf(ui.out, "#%s  %s (%s)\n    %s\n",
				strconv.FormatInt(c.ID, 10), c.Name, c.Industry, c.Description)
		}
	}
}
