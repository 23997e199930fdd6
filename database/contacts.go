package database

import (
	"contact-book/models"
	"database/sql"
	"strings"
)

// ==================== CONTACT OPERATIONS ====================

// ListContacts returns every contact in the default listing order:
// favorites first, then name ascending case-insensitively.
func (r *Repository) ListContacts() ([]models.Contact, error) {
	rows, err := r.db.Query(`
		SELECT id, name, phone, email, favorite, created_at
		FROM contacts
		ORDER BY favorite DESC, name COLLATE NOCASE ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	contacts := make([]models.Contact, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}

	return contacts, rows.Err()
}

// GetContact retrieves a single contact by id. Returns nil when absent.
func (r *Repository) GetContact(id int64) (*models.Contact, error) {
	var contact models.Contact
	var phone, email sql.NullString
	var favorite int

	err := r.db.QueryRow(`
		SELECT id, name, phone, email, favorite, created_at
		FROM contacts
		WHERE id = ?
	`, id).Scan(&contact.ID, &contact.Name, &phone, &email, &favorite, &contact.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if phone.Valid {
		contact.Phone = &phone.String
	}
	if email.Valid {
		contact.Email = &email.String
	}
	contact.Favorite = favorite == 1

	return &contact, nil
}

// CreateContact inserts one row and returns its assigned id.
func (r *Repository) CreateContact(name string, phone, email *string, favorite bool, createdAt int64) (int64, error) {
	fav := 0
	if favorite {
		fav = 1
	}

	res, err := r.db.Exec(`
		INSERT INTO contacts (name, phone, email, favorite, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, name, nullable(phone), nullable(email), fav, createdAt)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

// UpdateContact rewrites name/phone/email for the matching row, leaving
// favorite and created_at untouched. An unknown id is a silent no-op; callers
// wanting stricter semantics must check existence themselves.
func (r *Repository) UpdateContact(id int64, name string, phone, email *string) error {
	_, err := r.db.Exec(`
		UPDATE contacts SET
			name = ?,
			phone = ?,
			email = ?
		WHERE id = ?
	`, name, nullable(phone), nullable(email), id)
	return err
}

// DeleteContact hard-deletes the matching row. No-op if absent.
func (r *Repository) DeleteContact(id int64) error {
	_, err := r.db.Exec("DELETE FROM contacts WHERE id = ?", id)
	return err
}

// SetFavorite writes the favorite flag for the matching row.
func (r *Repository) SetFavorite(id int64, favorite bool) error {
	fav := 0
	if favorite {
		fav = 1
	}
	_, err := r.db.Exec("UPDATE contacts SET favorite = ? WHERE id = ?", fav, id)
	return err
}

// ExistingPhones returns the set of trimmed non-null phone numbers currently
// stored. Used by import to suppress duplicates.
func (r *Repository) ExistingPhones() (map[string]struct{}, error) {
	rows, err := r.db.Query("SELECT phone FROM contacts WHERE phone IS NOT NULL")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	phones := make(map[string]struct{})
	for rows.Next() {
		var phone string
		if err := rows.Scan(&phone); err != nil {
			return nil, err
		}
		if p := strings.TrimSpace(phone); p != "" {
			phones[p] = struct{}{}
		}
	}

	return phones, rows.Err()
}

// CountContacts returns the number of stored contacts.
func (r *Repository) CountContacts() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM contacts").Scan(&count)
	return count, err
}

func scanContact(rows *sql.Rows) (models.Contact, error) {
	var contact models.Contact
	var phone, email sql.NullString
	var favorite int

	if err := rows.Scan(&contact.ID, &contact.Name, &phone, &email, &favorite, &contact.CreatedAt); err != nil {
		return models.Contact{}, err
	}

	if phone.Valid {
		contact.Phone = &phone.String
	}
	if email.Valid {
		contact.Email = &email.String
	}
	contact.Favorite = favorite == 1

	return contact, nil
}

// nullable maps a nil or empty optional string onto SQL NULL.
func nullable(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
