// Package workspace coordinates the tender list screen: it resolves the
// acting company, fetches the tender page and the applied-tenders list in
// parallel, derives the client-side search filter, and runs the
// create/update/delete/apply mutations.
//
// Mutation policy: create, update and delete need server-assigned fields
// (ids, created_at), so they reload the collection after success. Apply only
// toggles a client-side badge, so it updates the applied set optimistically
// and never refetches.
package workspace

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"tenderdesk/internal/models"
)

// ErrLoginRequired is returned when no session token is available; the
// caller redirects to the login view without issuing any request.
var ErrLoginRequired = errors.New("login required")

// State names the phase the workspace is in.
type State int

const (
	// StateUnauthenticated means no token is present.
	StateUnauthenticated State = iota
	// StateResolvingIdentity means the company lookup is in flight.
	StateResolvingIdentity
	// StateLoading means the tender and applied collections are in flight.
	StateLoading
	// StateReady means the list is loaded and interactive.
	StateReady
	// StateMutating means a create/update/delete/apply request is in flight.
	StateMutating
	// StateFailed means an unrecoverable failure occurred.
	StateFailed
)

// PlatformAPI is the slice of the platform client the workspace drives.
type PlatformAPI interface {
	Tenders(ctx context.Context, token string, page int) ([]models.Tender, error)
	AppliedTenders(ctx context.Context, token string) ([]models.Tender, error)
	CreateTender(ctx context.Context, token string, tender models.Tender) error
	UpdateTender(ctx context.Context, token string, id int64, tender models.Tender) error
	DeleteTender(ctx context.Context, token string, id int64) error
	QuickApply(ctx context.Context, token string, tenderID int64) error
}

// IdentityResolver yields the acting company for a token.
type IdentityResolver interface {
	CompanyID(ctx context.Context, token string) (int64, bool, error)
}

// Form holds the tender editor's fields between renders.
type Form struct {
	Title       string
	Description string
	Budget      float64
	Deadline    string
}

// Workspace is the state of one tender list screen.
type Workspace struct {
	api   PlatformAPI
	ident IdentityResolver
	log   *zap.Logger

	token     string
	state     State
	companyID int64

	page    int
	search  string
	tenders []models.Tender

	mu      sync.Mutex
	applied map[int64]bool
	loadSeq int64

	form      Form
	editingID int64
}

// New constructs a Workspace. The zap logger may be nil.
func New(api PlatformAPI, ident IdentityResolver, log *zap.Logger) *Workspace {
	if log == nil {
		log = zap.NewNop()
	}
	return &Workspace{
		api:     api,
		ident:   ident,
		log:     log,
		state:   StateUnauthenticated,
		page:    1,
		applied: make(map[int64]bool),
	}
}

// State returns the current phase.
func (w *Workspace) State() State { return w.state }

// CompanyID returns the resolved acting company id, zero before Start.
func (w *Workspace) CompanyID() int64 { return w.companyID }

// Page returns the current tender page number.
func (w *Workspace) Page() int { return w.page }

// Search returns the current search text.
func (w *Workspace) Search() string { return w.search }

// SetSearch replaces the search text. The filter is re-derived by Visible;
// no request is issued.
func (w *Workspace) SetSearch(text string) { w.search = text }

// Start gates on the session token, resolves the acting company and loads
// the collections. Without a token it returns ErrLoginRequired before any
// request is made. An identity failure is unrecoverable: every later write
// needs the company id, so the caller must redirect to login.
func (w *Workspace) Start(ctx context.Context, token string) error {
	if token == "" {
		w.state = StateUnauthenticated
		return ErrLoginRequired
	}
	w.token = token

	w.state = StateResolvingIdentity
	companyID, ok, err := w.ident.CompanyID(ctx, token)
	if err != nil || !ok {
		w.state = StateFailed
		if err == nil {
			err = errors.New("no company for this account")
		}
		return err
	}
	w.companyID = companyID

	return w.Load(ctx)
}

// Load fetches the current tender page and the applied-tenders list in
// parallel. The applied fetch is decorative: its failure is logged and the
// list renders without badges. Results of a load superseded by a newer one
// are discarded rather than applied to stale state.
func (w *Workspace) Load(ctx context.Context) error {
	w.state = StateLoading
	seq := atomic.AddInt64(&w.loadSeq, 1)

	var (
		wg         sync.WaitGroup
		tenders    []models.Tender
		tendersErr error
		appliedTo  []models.Tender
		appliedErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		tenders, tendersErr = w.api.Tenders(ctx, w.token, w.page)
	}()
	go func() {
		defer wg.Done()
		appliedTo, appliedErr = w.api.AppliedTenders(ctx, w.token)
	}()
	wg.Wait()

	if atomic.LoadInt64(&w.loadSeq) != seq {
		return nil
	}

	if tendersErr != nil {
		w.state = StateFailed
		return tendersErr
	}
	w.tenders = tenders

	if appliedErr != nil {
		w.log.Warn("could not fetch applied tenders", zap.Error(appliedErr))
	} else {
		w.mu.Lock()
		for _, t := range appliedTo {
			w.applied[t.ID] = true
		}
		w.mu.Unlock()
	}

	w.state = StateReady
	return nil
}

// Visible re-derives the filtered tender list from the fetched page and the
// current search text.
func (w *Workspace) Visible() []models.Tender {
	return Filter(w.tenders, w.search)
}

// Applied reports whether the acting company has applied to the tender.
func (w *Workspace) Applied(id int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.applied[id]
}

// Owns reports whether the tender belongs to the acting company. Edit and
// delete controls are shown only for owned tenders; the server enforces
// ownership regardless.
func (w *Workspace) Owns(t models.Tender) bool {
	return t.CompanyID == w.companyID
}

// Form returns the current editor fields.
func (w *Workspace) Form() Form { return w.form }

// SetForm replaces the editor fields.
func (w *Workspace) SetForm(f Form) { w.form = f }

// EditingID returns the id being edited, zero when the form would create.
func (w *Workspace) EditingID() int64 { return w.editingID }

// Edit copies the identified tender from the fetched page into the form,
// trimming the deadline to its date-only representation, and marks the form
// as an update of that id. It reports whether the id was on the page.
func (w *Workspace) Edit(id int64) bool {
	for _, t := range w.tenders {
		if t.ID == id {
			w.form = Form{
				Title:       t.Title,
				Description: t.Description,
				Budget:      t.Budget,
				Deadline:    t.DeadlineDate(),
			}
			w.editingID = id
			return true
		}
	}
	return false
}

// ResetForm clears the editor and leaves create mode.
func (w *Workspace) ResetForm() {
	w.form = Form{}
	w.editingID = 0
}

// Submit sends the form merged with the acting company id: an update when an
// editing id is set, a create otherwise. Success resets the form and reloads
// the collection so server-assigned fields come back authoritative.
func (w *Workspace) Submit(ctx context.Context) error {
	tender := models.Tender{
		Title:       w.form.Title,
		Description: w.form.Description,
		Budget:      w.form.Budget,
		Deadline:    w.form.Deadline,
		CompanyID:   w.companyID,
	}

	w.state = StateMutating
	var err error
	if w.editingID != 0 {
		err = w.api.UpdateTender(ctx, w.token, w.editingID, tender)
	} else {
		err = w.api.CreateTender(ctx, w.token, tender)
	}
	if err != nil {
		w.state = StateReady
		return err
	}

	w.ResetForm()
	return w.Load(ctx)
}

// Delete removes a tender after the confirm callback approves it. Declining
// issues no request and reports confirmed=false. Success reloads the
// collection.
func (w *Workspace) Delete(ctx context.Context, id int64, confirm func(prompt string) bool) (bool, error) {
	if confirm == nil || !confirm("Delete this tender?") {
		return false, nil
	}

	w.state = StateMutating
	if err := w.api.DeleteTender(ctx, w.token, id); err != nil {
		w.state = StateReady
		return true, err
	}
	return true, w.Load(ctx)
}

// Apply quick-applies to a tender. On success the id joins the applied set
// optimistically, with no refetch: the only observable effect is the badge.
// On rejection the set is left untouched and the server's error is returned.
func (w *Workspace) Apply(ctx context.Context, id int64) error {
	w.state = StateMutating
	if err := w.api.QuickApply(ctx, w.token, id); err != nil {
		w.state = StateReady
		return err
	}

	w.mu.Lock()
	w.applied[id] = true
	w.mu.Unlock()

	w.state = StateReady
	return nil
}

// NextPage advances to the next page and reloads. There is no known upper
// bound; pages past the end come back empty.
func (w *Workspace) NextPage(ctx context.Context) error {
	w.page++
	return w.Load(ctx)
}

// PrevPage steps back one page and reloads; it refuses at page 1.
func (w *Workspace) PrevPage(ctx context.Context) error {
	if w.page <= 1 {
		return nil
	}
	w.page--
	return w.Load(ctx)
}
