package services

import "contact-book/models"

// ContactRepository defines the interface for contact data access
type ContactRepository interface {
	ListContacts() ([]models.Contact, error)
	GetContact(id int64) (*models.Contact, error)
	CreateContact(name string, phone, email *string, favorite bool, createdAt int64) (int64, error)
	UpdateContact(id int64, name string, phone, email *string) error
	DeleteContact(id int64) error
	SetFavorite(id int64, favorite bool) error
	ExistingPhones() (map[string]struct{}, error)
	CountContacts() (int, error)
}
