package stubapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"tenderdesk/internal/models"
)

// Register handles POST /auth/register. It expects a JSON body with
// non-empty email and password and answers 201 on success.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	hash, err := HashPassword(creds.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	user, err := s.store.CreateUser(creds.Email, hash)
	if err != nil {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]int64{"id": user.ID})
}

// Login handles POST /auth/login and answers with a bearer token.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := s.store.UserByEmail(creds.Email)
	if err != nil || !CheckPassword(user.PasswordHash, creds.Password) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := IssueToken(s.secret, user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// CurrentCompany handles GET /companies/me. A user without a company gets a
// 404; the client treats that as a valid empty state.
func (s *Server) CurrentCompany(w http.ResponseWriter, r *http.Request) {
	company, err := s.store.CompanyByUser(userID(r.Context()))
	if err != nil {
		writeError(w, http.StatusNotFound, "company not found")
		return
	}
	writeJSON(w, http.StatusOK, company)
}

// CreateCompany handles POST /companies, one company per user.
func (s *Server) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var company models.Company
	if err := json.NewDecoder(r.Body).Decode(&company); err != nil || company.Name == "" {
		writeError(w, http.StatusBadRequest, "company name is required")
		return
	}

	created, err := s.store.CreateCompany(userID(r.Context()), company)
	if err != nil {
		writeError(w, http.StatusConflict, "company already exists for this account")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateCompany handles PUT /companies against the caller's company.
func (s *Server) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	var company models.Company
	if err := json.NewDecoder(r.Body).Decode(&company); err != nil || company.Name == "" {
		writeError(w, http.StatusBadRequest, "company name is required")
		return
	}

	updated, err := s.store.UpdateCompany(userID(r.Context()), company)
	if err != nil {
		writeError(w, http.StatusNotFound, "company not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteCompany handles DELETE /companies/{id}, owner-only.
func (s *Server) DeleteCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	switch err := s.store.DeleteCompany(id, userID(r.Context())); {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "company not found")
	case errors.Is(err, ErrConflict):
		writeError(w, http.StatusForbidden, "not your company")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

// SearchCompanies handles GET /companies/search?q=.
func (s *Server) SearchCompanies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.SearchCompanies(r.URL.Query().Get("q")))
}

// ListTenders handles GET /tenders?page=. Pages are fixed at ten tenders;
// a missing or malformed page reads as page 1.
func (s *Server) ListTenders(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	writeJSON(w, http.StatusOK, s.store.Tenders(page, pageSize))
}

// CreateTender handles POST /tenders. The tender is attributed to the
// caller's company regardless of the submitted company_id.
func (s *Server) CreateTender(w http.ResponseWriter, r *http.Request) {
	company, err := s.store.CompanyByUser(userID(r.Context()))
	if err != nil {
		writeError(w, http.StatusBadRequest, "create a company before publishing tenders")
		return
	}

	var tender models.Tender
	if err := json.NewDecoder(r.Body).Decode(&tender); err != nil || tender.Title == "" {
		writeError(w, http.StatusBadRequest, "tender title is required")
		return
	}
	tender.CompanyID = company.ID

	writeJSON(w, http.StatusCreated, s.store.CreateTender(tender))
}

// GetTender handles GET /tenders/{id}.
func (s *Server) GetTender(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tender id")
		return
	}
	tender, err := s.store.Tender(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "tender not found")
		return
	}
	writeJSON(w, http.StatusOK, tender)
}

// UpdateTender handles PUT /tenders/{id}, owner-only.
func (s *Server) UpdateTender(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tender id")
		return
	}
	if !s.ownsTender(r, id, w) {
		return
	}

	var tender models.Tender
	if err := json.NewDecoder(r.Body).Decode(&tender); err != nil || tender.Title == "" {
		writeError(w, http.StatusBadRequest, "tender title is required")
		return
	}

	updated, err := s.store.UpdateTender(id, tender)
	if err != nil {
		writeError(w, http.StatusNotFound, "tender not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTender handles DELETE /tenders/{id}, owner-only.
func (s *Server) DeleteTender(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tender id")
		return
	}
	if !s.ownsTender(r, id, w) {
		return
	}
	if err := s.store.DeleteTender(id); err != nil {
		writeError(w, http.StatusNotFound, "tender not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAppliedTenders handles GET /applications: the tenders the caller's
// company has applied to, as joined tender records.
func (s *Server) ListAppliedTenders(w http.ResponseWriter, r *http.Request) {
	company, err := s.store.CompanyByUser(userID(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusOK, []models.Tender{})
		return
	}
	writeJSON(w, http.StatusOK, s.store.AppliedTenders(company.ID))
}

// SubmitApplication handles POST /applications with a full proposal payload.
func (s *Server) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	company, err := s.store.CompanyByUser(userID(r.Context()))
	if err != nil {
		writeError(w, http.StatusBadRequest, "create a company before applying")
		return
	}

	var app models.Application
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil || app.TenderID == 0 || app.ProposalText == "" {
		writeError(w, http.StatusBadRequest, "tender_id and proposal_text are required")
		return
	}
	if _, err := s.store.Tender(app.TenderID); err != nil {
		writeError(w, http.StatusNotFound, "tender not found")
		return
	}
	app.CompanyID = company.ID

	created, err := s.store.CreateApplication(app)
	if err != nil {
		writeError(w, http.StatusConflict, "already applied to this tender")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetApplication handles GET /applications/{id}.
func (s *Server) GetApplication(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid application id")
		return
	}
	app, err := s.store.Application(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "application not found")
		return
	}
	writeJSON(w, http.StatusOK, app)
}

// QuickApply handles POST /applications/{id} with an empty body, where {id}
// is the tender to apply to. Duplicate applications are rejected with 409.
func (s *Server) QuickApply(w http.ResponseWriter, r *http.Request) {
	company, err := s.store.CompanyByUser(userID(r.Context()))
	if err != nil {
		writeError(w, http.StatusBadRequest, "create a company before applying")
		return
	}

	tenderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tender id")
		return
	}
	if _, err := s.store.Tender(tenderID); err != nil {
		writeError(w, http.StatusNotFound, "tender not found")
		return
	}

	app := models.Application{
		TenderID:    tenderID,
		CompanyID:   company.ID,
		SubmittedAt: time.Now().UTC().Format(time.RFC3339),
	}
	created, err := s.store.CreateApplication(app)
	if err != nil {
		writeError(w, http.StatusConflict, "already applied to this tender")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ownsTender writes the failure response and returns false unless the
// caller's company owns the tender.
func (s *Server) ownsTender(r *http.Request, tenderID int64, w http.ResponseWriter) bool {
	tender, err := s.store.Tender(tenderID)
	if err != nil {
		writeError(w, http.StatusNotFound, "tender not found")
		return false
	}
	company, err := s.store.CompanyByUser(userID(r.Context()))
	if err != nil || company.ID != tender.CompanyID {
		writeError(w, http.StatusForbidden, "not your tender")
		return false
	}
	return true
}

// pathID parses an integer URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
