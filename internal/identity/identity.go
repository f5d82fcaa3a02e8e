// Package identity resolves the company record tied to the current session.
package identity

import (
	"context"

	"tenderdesk/internal/api"
	"tenderdesk/internal/models"
)

// CompanyAPI is the part of the platform API the resolver needs.
type CompanyAPI interface {
	// CurrentCompany returns the caller's company record.
	CurrentCompany(ctx context.Context, token string) (*models.Company, error)
}

// Resolver resolves the acting company for a session token.
type Resolver struct {
	api CompanyAPI
}

// NewResolver constructs a Resolver over the given API client.
func NewResolver(companies CompanyAPI) *Resolver {
	return &Resolver{api: companies}
}

// CompanyID returns the id of the company tied to the token.
// A 404 from the platform means the account has no company yet: it yields
// ok=false with a nil error. Any other failure is returned as an error.
func (r *Resolver) CompanyID(ctx context.Context, token string) (int64, bool, error) {
	company, err := r.api.CurrentCompany(ctx, token)
	if err != nil {
		if api.IsNotFound(err) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return company.ID, true, nil
}
