package views_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"tenderdesk/internal/api"
	"tenderdesk/internal/models"
	"tenderdesk/internal/session"
	"tenderdesk/internal/stubapi"
	"tenderdesk/internal/views"
)

// env wires a UI over the stub API with scripted input.
type env struct {
	client *api.Client
	store  *session.Store
	out    *bytes.Buffer
}

func newEnv(t *testing.T) *env {
	t.Helper()
	server := stubapi.NewServer(stubapi.NewStore(), []byte("test-secret"), nil)
	srv := httptest.NewServer(server.NewRouter())
	t.Cleanup(srv.Close)
	return &env{
		client: api.New(srv.URL, nil),
		store:  session.NewStore(filepath.Join(t.TempDir(), "token")),
		out:    &bytes.Buffer{},
	}
}

func (e *env) ui(input string) *views.UI {
	return views.New(strings.NewReader(input), e.out, e.client, e.store, nil)
}

// signup registers and logs an account in directly through the client.
func (e *env) signup(t *testing.T, email string) string {
	t.Helper()
	ctx := context.Background()
	creds := models.Credentials{Email: email, Password: "secret123"}
	if err := e.client.Register(ctx, creds); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, err := e.client.Login(ctx, creds)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return token
}

func TestTendersView_NoTokenRedirectsWithoutFetching(t *testing.T) {
	var requests int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	store := session.NewStore(filepath.Join(t.TempDir(), "token"))
	out := &bytes.Buffer{}
	ui := views.New(strings.NewReader(""), out, api.New(srv.URL, nil), store, nil)

	next := ui.Tenders(context.Background())
	if next != views.RouteLogin {
		t.Errorf("next route = %q; want login", next)
	}
	if n := atomic.LoadInt64(&requests); n != 0 {
		t.Errorf("issued %d requests; want zero without a token", n)
	}
}

func TestLoginView_StoresTokenAndMovesOn(t *testing.T) {
	e := newEnv(t)
	if err := e.client.Register(context.Background(), models.Credentials{Email: "a@acme.io", Password: "secret123"}); err != nil {
		t.Fatal(err)
	}

	ui := e.ui("a@acme.io\nsecret123\n")
	next := ui.Login(context.Background())
	if next != views.RouteProfile {
		t.Errorf("next route = %q; want profile", next)
	}
	if _, ok := e.store.Token(); !ok {
		t.Error("token not stored after login")
	}
}

func TestLoginView_SurfacesServerMessage(t *testing.T) {
	e := newEnv(t)
	e.signup(t, "a@acme.io")

	ui := e.ui("a@acme.io\nwrong\n")
	next := ui.Login(context.Background())
	if next != views.RouteLogin {
		t.Errorf("next route = %q; want login again", next)
	}
	if !strings.Contains(e.out.String(), "invalid email or password") {
		t.Errorf("output %q does not surface the server's message", e.out.String())
	}
}

func TestRegisterView_RedirectsToLogin(t *testing.T) {
	e := newEnv(t)
	ui := e.ui("a@acme.io\nsecret123\n")
	if next := ui.Register(context.Background()); next != views.RouteLogin {
		t.Errorf("next route = %q; want login", next)
	}
}

func TestProfileView_NoCompanyIsCreatableNotError(t *testing.T) {
	e := newEnv(t)
	token := e.signup(t, "a@acme.io")
	if err := e.store.Set(token); err != nil {
		t.Fatal(err)
	}

	ui := e.ui("back\n")
	next := ui.Profile(context.Background())
	if next != views.RouteHome {
		t.Errorf("next route = %q; want home", next)
	}
	output := e.out.String()
	if !strings.Contains(output, "Add your company") {
		t.Errorf("output %q should present the empty create form", output)
	}
	if strings.Contains(output, "Failed to fetch company") {
		t.Error("a 404 on /companies/me must not render as an error")
	}
}

func TestProfileView_CreateThenUpdate(t *testing.T) {
	e := newEnv(t)
	token := e.signup(t, "a@acme.io")
	if err := e.store.Set(token); err != nil {
		t.Fatal(err)
	}

	input := strings.Join([]string{
		"save", "Acme", "Steel", "We forge", "",
		"back",
	}, "\n") + "\n"
	if next := e.ui(input).Profile(context.Background()); next != views.RouteHome {
		t.Fatalf("unexpected route after create")
	}

	company, err := e.client.CurrentCompany(context.Background(), token)
	if err != nil {
		t.Fatalf("company not created: %v", err)
	}
	if company.Name != "Acme" || company.Industry != "Steel" {
		t.Errorf("company = %+v; want Acme/Steel", company)
	}

	// Second visit sees the existing record and updates it; empty answers
	// keep current values.
	e.out.Reset()
	input = strings.Join([]string{
		"save", "Acme Ltd", "", "", "",
		"back",
	}, "\n") + "\n"
	if next := e.ui(input).Profile(context.Background()); next != views.RouteHome {
		t.Fatalf("unexpected route after update")
	}
	company, err = e.client.CurrentCompany(context.Background(), token)
	if err != nil {
		t.Fatal(err)
	}
	if company.Name != "Acme Ltd" || company.Industry != "Steel" {
		t.Errorf("company = %+v; want renamed with industry preserved", company)
	}
}

func TestTendersView_ApplyScenario(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.signup(t, "owner@acme.io")
	if err := e.client.CreateCompany(ctx, owner, models.Company{Name: "Acme"}); err != nil {
		t.Fatal(err)
	}
	if err := e.client.CreateTender(ctx, owner, models.Tender{Title: "Bridge", Budget: 5000, Deadline: "2026-10-01"}); err != nil {
		t.Fatal(err)
	}

	applicant := e.signup(t, "b@birch.io")
	if err := e.client.CreateCompany(ctx, applicant, models.Company{Name: "Birch"}); err != nil {
		t.Fatal(err)
	}
	if err := e.store.Set(applicant); err != nil {
		t.Fatal(err)
	}
	tenders, err := e.client.Tenders(ctx, applicant, 1)
	if err != nil || len(tenders) != 1 {
		t.Fatalf("tenders = %v, %v", tenders, err)
	}

	// Apply once, then try again: the second attempt surfaces the server's
	// rejection and the badge stays.
	input := fmt.Sprintf("apply %d\napply %d\nback\n", tenders[0].ID, tenders[0].ID)
	next := e.ui(input).Tenders(ctx)
	if next != views.RouteHome {
		t.Errorf("next route = %q; want home", next)
	}

	output := e.out.String()
	if !strings.Contains(output, "Applied successfully!") {
		t.Error("first apply should succeed")
	}
	if !strings.Contains(output, "already applied to this tender") {
		t.Error("second apply should surface the server's message")
	}
	if !strings.Contains(output, "[applied]") {
		t.Error("applied badge missing from the rendered list")
	}
}

func TestTendersView_EditIssuesUpdate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.signup(t, "owner@acme.io")
	if err := e.client.CreateCompany(ctx, owner, models.Company{Name: "Acme"}); err != nil {
		t.Fatal(err)
	}
	if err := e.client.CreateTender(ctx, owner, models.Tender{Title: "Bridge", Budget: 5000, Deadline: "2026-10-01"}); err != nil {
		t.Fatal(err)
	}
	if err := e.store.Set(owner); err != nil {
		t.Fatal(err)
	}
	tenders, err := e.client.Tenders(ctx, owner, 1)
	if err != nil || len(tenders) != 1 {
		t.Fatalf("tenders = %v, %v", tenders, err)
	}

	// Rename via edit; the other answers keep current values.
	input := fmt.Sprintf("edit %d\nTunnel\n\n\n\nback\n", tenders[0].ID)
	e.ui(input).Tenders(ctx)

	after, err := e.client.Tenders(ctx, owner, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != 1 || after[0].ID != tenders[0].ID {
		t.Fatalf("edit must update in place, got %+v", after)
	}
	if after[0].Title != "Tunnel" {
		t.Errorf("title = %q; want Tunnel", after[0].Title)
	}
	if after[0].Budget != 5000 {
		t.Errorf("budget = %v; want preserved 5000", after[0].Budget)
	}
}

func TestApplyView_PreconditionsMakeSubmitNoOp(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	owner := e.signup(t, "owner@acme.io")
	if err := e.client.CreateCompany(ctx, owner, models.Company{Name: "Acme"}); err != nil {
		t.Fatal(err)
	}
	if err := e.client.CreateTender(ctx, owner, models.Tender{Title: "Bridge", Budget: 5000, Deadline: "2026-10-01"}); err != nil {
		t.Fatal(err)
	}

	applicant := e.signup(t, "b@birch.io")
	if err := e.client.CreateCompany(ctx, applicant, models.Company{Name: "Birch"}); err != nil {
		t.Fatal(err)
	}
	if err := e.store.Set(applicant); err != nil {
		t.Fatal(err)
	}
	tenders, err := e.client.Tenders(ctx, applicant, 1)
	if err != nil {
		t.Fatal(err)
	}

	// Empty proposal text first (no-op), then a real submission.
	input := fmt.Sprintf("%d\n\n%d\nWe can build this.\n\n", tenders[0].ID, tenders[0].ID)
	e.ui(input).Apply(ctx)

	applied, err := e.client.AppliedTenders(ctx, applicant)
	if err != nil {
		t.Fatal(err)
	}
	if len(applied) != 1 {
		t.Fatalf("applied tenders = %d; want exactly one (empty text must be a no-op)", len(applied))
	}
	if !strings.Contains(e.out.String(), "Proposal submitted successfully!") {
		t.Error("success message missing")
	}
}
