package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

type Contact struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Favorite  bool    `json:"favorite"`
	CreatedAt int64   `json:"created_at"`
}

type CreateContactRequest struct {
	Name  string `json:"name" validate:"required,max=120,contactname"`
	Phone string `json:"phone" validate:"omitempty,max=40,phone"`
	Email string `json:"email" validate:"omitempty,max=254,email"`
}

type UpdateContactRequest struct {
	Name  string `json:"name" validate:"required,max=120,contactname"`
	Phone string `json:"phone" validate:"omitempty,max=40,phone"`
	Email string `json:"email" validate:"omitempty,max=254,email"`
}

type ToggleFavoriteRequest struct {
	// Favorite is the value the caller last observed; the write sets its
	// opposite. A stale observation flips the row back (optimistic toggle).
	Favorite bool `json:"favorite"`
}

type ImportRequest struct {
	URL string `json:"url" validate:"omitempty,url"`
}

// LooseString decodes a JSON value that may arrive as a string, a number,
// a boolean, or null. Anything non-scalar decodes to the empty string.
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = LooseString(str)
		return nil
	}
	if data[0] == '{' || data[0] == '[' {
		*s = ""
		return nil
	}
	// Numbers and booleans keep their literal text.
	*s = LooseString(data)
	return nil
}

// RemoteContact is one record from the import source. Field shapes are not
// trusted: strings, numbers, and missing values are all accepted.
type RemoteContact struct {
	Name  LooseString `json:"name"`
	Phone LooseString `json:"phone"`
	Email LooseString `json:"email"`
}

const noNamePlaceholder = "(No name)"

// Normalize maps a remote record onto local field semantics: name falls back
// to a placeholder, phone loses all whitespace, empty optionals become nil.
func (rc RemoteContact) Normalize() (name string, phone, email *string) {
	name = strings.TrimSpace(string(rc.Name))
	if name == "" {
		name = noNamePlaceholder
	}

	if p := stripWhitespace(string(rc.Phone)); p != "" {
		phone = &p
	}
	if e := strings.TrimSpace(string(rc.Email)); e != "" {
		email = &e
	}
	return name, phone, email
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
