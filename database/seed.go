package database

import (
	"database/sql"
	"fmt"
	"time"
)

// seedContacts are inserted only when the table is first found empty.
// Timestamps are assigned as now + index so seed order stays deterministic.
var seedContacts = []struct {
	Name  string
	Phone string
	Email string
}{
	{Name: "Ada Lovelace", Phone: "+44 20 7946 0001", Email: "ada@example.com"},
	{Name: "Grace Hopper", Phone: "+1 202 555 0102", Email: "grace@example.com"},
	{Name: "Alan Turing", Phone: "+44 16 2551 0203", Email: "alan@example.com"},
}

// Seed populates an empty contacts table with the fixed sample rows and then
// guarantees at least one favorite exists. Idempotent: a populated table is
// never re-seeded, and an existing favorite is never overridden.
func (r *Repository) Seed() error {
	count, err := r.CountContacts()
	if err != nil {
		return fmt.Errorf("seed: count failed: %w", err)
	}

	if count == 0 {
		now := time.Now().UnixMilli()
		for i, c := range seedContacts {
			phone, email := c.Phone, c.Email
			if _, err := r.CreateContact(c.Name, &phone, &email, false, now+int64(i)); err != nil {
				return fmt.Errorf("seed: insert %q failed: %w", c.Name, err)
			}
		}
	}

	return r.ensureFavorite()
}

// ensureFavorite promotes the lowest-id row to favorite when no favorite
// exists. Skipped for an empty table and when any favorite is already set.
func (r *Repository) ensureFavorite() error {
	var id int64
	err := r.db.QueryRow("SELECT id FROM contacts WHERE favorite = 1 LIMIT 1").Scan(&id)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("seed: favorite lookup failed: %w", err)
	}

	err = r.db.QueryRow("SELECT id FROM contacts ORDER BY id ASC LIMIT 1").Scan(&id)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed: lowest id lookup failed: %w", err)
	}

	return r.SetFavorite(id, true)
}
