package sync

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"contact-book/models"
)

var (
	// ErrImportInProgress is returned while another import is in flight.
	// The operation is not reentrant: it mutates a local dedup set across
	// an unbounded number of writes.
	ErrImportInProgress = errors.New("an import is already in progress")

	ErrNoImportSource = errors.New("no import source URL configured")
	ErrImportSource   = errors.New("import source fetch failed")
	ErrImportDecode   = errors.New("import source returned an unexpected shape")
)

// ContactStore defines the repository operations the importer needs.
type ContactStore interface {
	ExistingPhones() (map[string]struct{}, error)
	CreateContact(name string, phone, email *string, favorite bool, createdAt int64) (int64, error)
}

// Importer performs one-shot merges of remote contact records into the local
// table, deduplicated by phone number. Re-running against the same source is
// idempotent, so partial results from an interrupted run are acceptable.
type Importer struct {
	store     ContactStore
	client    *http.Client
	sourceURL string
	inFlight  atomic.Bool
}

// NewImporter creates an importer. A nil client falls back to a plain
// http.Client with the transport's default timeout behavior.
func NewImporter(store ContactStore, client *http.Client, sourceURL string) *Importer {
	if client == nil {
		client = &http.Client{}
	}
	return &Importer{
		store:     store,
		client:    client,
		sourceURL: sourceURL,
	}
}

// Import fetches a JSON array of loosely-typed records from url (falling back
// to the configured source URL), inserts every record whose phone is neither
// empty nor already present, and returns the number of rows inserted.
// Duplicates within the same batch are suppressed too. A second call while
// one is in flight is rejected with ErrImportInProgress.
func (im *Importer) Import(url string) (int, error) {
	if url == "" {
		url = im.sourceURL
	}
	if url == "" {
		return 0, ErrNoImportSource
	}

	if !im.inFlight.CompareAndSwap(false, true) {
		return 0, ErrImportInProgress
	}
	defer im.inFlight.Store(false)

	log.Printf("[Importer] Fetching contacts from %s", url)

	records, err := im.fetch(url)
	if err != nil {
		return 0, err
	}

	seen, err := im.store.ExistingPhones()
	if err != nil {
		return 0, fmt.Errorf("failed to read existing phones: %w", err)
	}

	inserted := 0
	for _, rec := range records {
		name, phone, email := rec.Normalize()
		if phone == nil {
			continue
		}
		key := strings.TrimSpace(*phone)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}

		if _, err := im.store.CreateContact(name, phone, email, false, time.Now().UnixMilli()); err != nil {
			// Rows already committed stay; re-import picks up the rest.
			return inserted, fmt.Errorf("import insert failed: %w", err)
		}
		seen[key] = struct{}{}
		inserted++
	}

	log.Printf("[Importer] Imported %d of %d remote contacts", inserted, len(records))
	return inserted, nil
}

func (im *Importer) fetch(url string) ([]models.RemoteContact, error) {
	resp, err := im.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportSource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrImportSource, resp.StatusCode)
	}

	var records []models.RemoteContact
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportDecode, err)
	}

	return records, nil
}
