package stubapi

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"tenderdesk/internal/models"
)

var (
	// ErrNotFound means the record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means the write violates a uniqueness rule.
	ErrConflict = errors.New("conflict")
)

// User is an account able to hold a session.
type User struct {
	ID           int64
	Email        string
	PasswordHash []byte
}

// Store is the in-memory state behind the stub API. All access is guarded by
// one mutex; ids are assigned from a single counter across record kinds.
type Store struct {
	mu     sync.Mutex
	nextID int64

	users        map[int64]*User
	userByEmail  map[string]int64
	companies    map[int64]*models.Company
	companyOwner map[int64]int64 // company id -> user id
	userCompany  map[int64]int64 // user id -> company id
	tenders      map[int64]*models.Tender
	apps         map[int64]*models.Application
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		users:        make(map[int64]*User),
		userByEmail:  make(map[string]int64),
		companies:    make(map[int64]*models.Company),
		companyOwner: make(map[int64]int64),
		userCompany:  make(map[int64]int64),
		tenders:      make(map[int64]*models.Tender),
		apps:         make(map[int64]*models.Application),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// CreateUser registers an account. A reused email yields ErrConflict.
func (s *Store) CreateUser(email string, passwordHash []byte) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.userByEmail[email]; ok {
		return nil, ErrConflict
	}
	u := &User{ID: s.id(), Email: email, PasswordHash: passwordHash}
	s.users[u.ID] = u
	s.userByEmail[email] = u.ID
	return u, nil
}

// UserByEmail looks an account up by email.
func (s *Store) UserByEmail(email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.userByEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return s.users[id], nil
}

// CompanyByUser returns the company owned by the user, if any.
func (s *Store) CompanyByUser(userID int64) (*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	companyID, ok := s.userCompany[userID]
	if !ok {
		return nil, ErrNotFound
	}
	c := *s.companies[companyID]
	return &c, nil
}

// CreateCompany creates the user's company. A second company per user yields
// ErrConflict.
func (s *Store) CreateCompany(userID int64, c models.Company) (*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.userCompany[userID]; ok {
		return nil, ErrConflict
	}
	c.ID = s.id()
	s.companies[c.ID] = &c
	s.companyOwner[c.ID] = userID
	s.userCompany[userID] = c.ID
	out := c
	return &out, nil
}

// UpdateCompany replaces the mutable fields of the user's company.
func (s *Store) UpdateCompany(userID int64, c models.Company) (*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	companyID, ok := s.userCompany[userID]
	if !ok {
		return nil, ErrNotFound
	}
	existing := s.companies[companyID]
	existing.Name = c.Name
	existing.Industry = c.Industry
	existing.Description = c.Description
	existing.LogoURL = c.LogoURL
	out := *existing
	return &out, nil
}

// DeleteCompany removes the company when the caller owns it.
func (s *Store) DeleteCompany(companyID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	owner, ok := s.companyOwner[companyID]
	if !ok {
		return ErrNotFound
	}
	if owner != userID {
		return ErrConflict
	}
	delete(s.companies, companyID)
	delete(s.companyOwner, companyID)
	delete(s.userCompany, userID)
	return nil
}

// SearchCompanies returns companies whose name, industry or description
// contains the keyword case-insensitively. An empty keyword matches all.
func (s *Store) SearchCompanies(q string) []models.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	q = strings.ToLower(q)
	out := make([]models.Company, 0)
	for _, c := range s.companies {
		haystack := strings.ToLower(c.Name + " " + c.Industry + " " + c.Description)
		if strings.Contains(haystack, q) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CreateTender publishes a tender for the company, stamping created_at.
func (s *Store) CreateTender(t models.Tender) *models.Tender {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.id()
	t.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	s.tenders[t.ID] = &t
	out := t
	return &out
}

// Tenders returns one page of all tenders ordered by id.
func (s *Store) Tenders(page, pageSize int) []models.Tender {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]models.Tender, 0, len(s.tenders))
	for _, t := range s.tenders {
		all = append(all, *t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	start := (page - 1) * pageSize
	if start >= len(all) {
		return []models.Tender{}
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

// Tender returns one tender by id.
func (s *Store) Tender(id int64) (*models.Tender, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tenders[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *t
	return &out, nil
}

// UpdateTender replaces the mutable fields of a tender, keeping the
// server-owned ones.
func (s *Store) UpdateTender(id int64, t models.Tender) (*models.Tender, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.tenders[id]
	if !ok {
		return nil, ErrNotFound
	}
	existing.Title = t.Title
	existing.Description = t.Description
	existing.Budget = t.Budget
	existing.Deadline = t.Deadline
	out := *existing
	return &out, nil
}

// DeleteTender removes a tender by id.
func (s *Store) DeleteTender(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tenders[id]; !ok {
		return ErrNotFound
	}
	delete(s.tenders, id)
	return nil
}

// CreateApplication records a submission. A second application by the same
// company against the same tender yields ErrConflict.
func (s *Store) CreateApplication(a models.Application) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.apps {
		if existing.TenderID == a.TenderID && existing.CompanyID == a.CompanyID {
			return nil, ErrConflict
		}
	}
	a.ID = s.id()
	if a.SubmittedAt == "" {
		a.SubmittedAt = time.Now().UTC().Format(time.RFC3339)
	}
	s.apps[a.ID] = &a
	out := a
	return &out, nil
}

// Application returns one application by id.
func (s *Store) Application(id int64) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *a
	return &out, nil
}

// AppliedTenders returns the tenders the company has applied to, ordered by
// id. Applications whose tender has since been deleted are skipped.
func (s *Store) AppliedTenders(companyID int64) []models.Tender {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Tender, 0)
	for _, a := range s.apps {
		if a.CompanyID != companyID {
			continue
		}
		if t, ok := s.tenders[a.TenderID]; ok {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
