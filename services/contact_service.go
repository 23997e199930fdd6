package services

import (
	"strings"
	"sync"
	"time"

	"contact-book/models"
)

// ContactService handles business logic for contacts. It owns a read-only
// snapshot of the table, replaced wholesale after every mutation, plus the
// filter state applied when exposing that snapshot.
type ContactService struct {
	repo ContactRepository

	mu            sync.RWMutex
	snapshot      []models.Contact
	query         string
	favoritesOnly bool
}

// NewContactService creates a new contact service
func NewContactService(repo ContactRepository) *ContactService {
	return &ContactService{repo: repo}
}

// Load re-reads the full table into the snapshot. On failure the previous
// snapshot is kept so existing data stays visible.
func (cs *ContactService) Load() error {
	contacts, err := cs.repo.ListContacts()
	if err != nil {
		return err
	}

	cs.mu.Lock()
	cs.snapshot = contacts
	cs.mu.Unlock()
	return nil
}

// Snapshot returns the last loaded contact list, unfiltered.
func (cs *ContactService) Snapshot() []models.Contact {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.snapshot
}

// SetFilter updates the free-text query and the favorites-only flag. Filter
// changes never touch the store.
func (cs *ContactService) SetFilter(query string, favoritesOnly bool) {
	cs.mu.Lock()
	cs.query = strings.TrimSpace(query)
	cs.favoritesOnly = favoritesOnly
	cs.mu.Unlock()
}

// Visible returns the subset of the last snapshot matching the filter state:
// favorites-only off or favorite set, and query empty or a case-insensitive
// substring of name or phone.
func (cs *ContactService) Visible() []models.Contact {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	visible := make([]models.Contact, 0, len(cs.snapshot))
	query := strings.ToLower(cs.query)
	for _, c := range cs.snapshot {
		if cs.favoritesOnly && !c.Favorite {
			continue
		}
		if query != "" && !matchesQuery(c, query) {
			continue
		}
		visible = append(visible, c)
	}
	return visible
}

// Add trims all inputs, maps empty optionals onto null, and inserts one row
// with favorite off and created_at set to the current time.
func (cs *ContactService) Add(name, phone, email string) (*models.Contact, error) {
	name, phonePtr, emailPtr, err := normalize(name, phone, email)
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	id, err := cs.repo.CreateContact(name, phonePtr, emailPtr, false, now)
	if err != nil {
		return nil, err
	}

	contact, getErr := cs.repo.GetContact(id)
	if getErr != nil || contact == nil {
		contact = &models.Contact{ID: id, Name: name, Phone: phonePtr, Email: emailPtr, CreatedAt: now}
	}

	return contact, cs.refresh()
}

// Update rewrites name/phone/email for the matching row with the same
// trimming rules as Add, leaving favorite and created_at untouched. An
// unknown id succeeds silently, same as a matched one.
func (cs *ContactService) Update(id int64, name, phone, email string) error {
	name, phonePtr, emailPtr, err := normalize(name, phone, email)
	if err != nil {
		return err
	}

	if err := cs.repo.UpdateContact(id, name, phonePtr, emailPtr); err != nil {
		return err
	}

	return cs.refresh()
}

// Delete removes the matching row. No-op if absent.
func (cs *ContactService) Delete(id int64) error {
	if err := cs.repo.DeleteContact(id); err != nil {
		return err
	}
	return cs.refresh()
}

// ToggleFavorite writes the opposite of the favorite value the caller
// observed. The flip is computed from the caller's copy, not re-read from the
// store, so a stale copy flips the row back (single local writer assumed).
func (cs *ContactService) ToggleFavorite(contact models.Contact) error {
	if err := cs.repo.SetFavorite(contact.ID, !contact.Favorite); err != nil {
		return err
	}
	return cs.refresh()
}

// Refresh reloads the snapshot after an externally performed mutation, such
// as a completed import.
func (cs *ContactService) Refresh() error {
	return cs.refresh()
}

// refresh performs the silent reload that follows every mutation. Its failure
// is wrapped in ErrRefresh so callers can distinguish "mutation failed" from
// "mutation committed, snapshot stale".
func (cs *ContactService) refresh() error {
	if err := cs.Load(); err != nil {
		return &RefreshError{Err: err}
	}
	return nil
}

// RefreshError wraps a reload failure that happened after a committed
// mutation. errors.Is(err, ErrRefresh) reports true for it.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return ErrRefresh.Error() + ": " + e.Err.Error()
}

func (e *RefreshError) Unwrap() error { return e.Err }

func (e *RefreshError) Is(target error) bool { return target == ErrRefresh }

func matchesQuery(c models.Contact, query string) bool {
	if strings.Contains(strings.ToLower(c.Name), query) {
		return true
	}
	return c.Phone != nil && strings.Contains(strings.ToLower(*c.Phone), query)
}

// normalize applies the shared trimming rules: name must be non-empty after
// trimming, optional fields collapse to nil when empty.
func normalize(name, phone, email string) (string, *string, *string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, nil, ErrNameRequired
	}

	var phonePtr, emailPtr *string
	if p := strings.TrimSpace(phone); p != "" {
		phonePtr = &p
	}
	if e := strings.TrimSpace(email); e != "" {
		emailPtr = &e
	}

	return name, phonePtr, emailPtr, nil
}
