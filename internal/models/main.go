// Package models defines the records exchanged with the tender platform API.
package models

import "strconv"

// Credentials is the payload for registration and login.
type Credentials struct {
	// Email is the account's login email.
	Email string `json:"email"`
	// Password is the account's plain-text password, sent only over the wire.
	Password string `json:"password"`
}

// Company is the organizational profile associated with an account.
// At most one company exists per account.
type Company struct {
	// ID is the server-assigned identifier.
	ID int64 `json:"id,omitempty"`
	// Name is the company's display name.
	Name string `json:"name"`
	// Industry is a free-form industry label.
	Industry string `json:"industry"`
	// Description is a free-form company description.
	Description string `json:"description"`
	// LogoURL is an optional link to the company's logo.
	LogoURL string `json:"logo_url,omitempty"`
}

// Tender is a published request for proposals, owned by a company.
// Deadline and CreatedAt are opaque date strings owned by the server;
// the client never parses them beyond display trimming.
type Tender struct {
	ID          int64   `json:"id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
	Deadline    string  `json:"deadline"`
	CompanyID   int64   `json:"company_id,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// BudgetString renders the budget in its shortest decimal form,
// the representation the workspace search filter matches against.
func (t Tender) BudgetString() string {
	return strconv.FormatFloat(t.Budget, 'f', -1, 64)
}

// DeadlineDate returns the date-only prefix of the deadline,
// cutting any time component an ISO timestamp may carry.
func (t Tender) DeadlineDate() string {
	return DateOnly(t.Deadline)
}

// Application is one company's submission against one tender.
type Application struct {
	ID           int64  `json:"id,omitempty"`
	TenderID     int64  `json:"tender_id"`
	CompanyID    int64  `json:"company_id"`
	ProposalText string `json:"proposal_text"`
	SubmittedAt  string `json:"submitted_at,omitempty"`
}

// DateOnly truncates an ISO-8601 timestamp to its date part.
// Values without a time component pass through unchanged.
func DateOnly(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == 'T' {
			return s[:i]
		}
	}
	return s
}
