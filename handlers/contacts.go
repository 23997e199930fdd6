package handlers

import (
	"errors"

	"contact-book/app"
	"contact-book/models"
	"contact-book/services"
	"contact-book/sync"

	"github.com/gofiber/fiber/v2"
)

// GetContacts returns the visible contact list for the given filter state.
// `query` filters by case-insensitive substring of name or phone, `favorites`
// limits the view to favorite contacts. Filters only narrow the loaded
// snapshot; they never touch the store.
func GetContacts(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a.Contacts.SetFilter(c.Query("query"), c.QueryBool("favorites"))

		if err := a.Contacts.Load(); err != nil {
			return serverErrorWithDetails(c, "Failed to load contacts", err)
		}

		return success(c, fiber.Map{
			"contacts": a.Contacts.Visible(),
			"total":    len(a.Contacts.Snapshot()),
		})
	}
}

// CreateContact adds a new contact. Name is required; phone and email are
// optional and stored as null when empty.
func CreateContact(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateContactRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return badRequest(c, err.Error())
		}

		contact, err := a.Contacts.Add(req.Name, req.Phone, req.Email)
		if err != nil {
			if errors.Is(err, services.ErrNameRequired) {
				return badRequest(c, err.Error())
			}
			if errors.Is(err, services.ErrRefresh) {
				// The insert committed; only the snapshot reload failed.
				return created(c, fiber.Map{
					"contact":       contact,
					"contacts":      a.Contacts.Visible(),
					"refresh_error": err.Error(),
				})
			}
			return serverErrorWithDetails(c, "Failed to add contact", err)
		}

		return created(c, fiber.Map{
			"contact":  contact,
			"contacts": a.Contacts.Visible(),
		})
	}
}

// UpdateContact rewrites name/phone/email for a contact. An unknown id
// succeeds silently with no row changed; the response cannot distinguish the
// two cases.
func UpdateContact(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return badRequest(c, "Invalid contact id")
		}

		var req models.UpdateContactRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(req); err != nil {
			return badRequest(c, err.Error())
		}

		if err := a.Contacts.Update(int64(id), req.Name, req.Phone, req.Email); err != nil {
			if errors.Is(err, services.ErrNameRequired) {
				return badRequest(c, err.Error())
			}
			if errors.Is(err, services.ErrRefresh) {
				return success(c, fiber.Map{
					"contacts":      a.Contacts.Visible(),
					"refresh_error": err.Error(),
				})
			}
			return serverErrorWithDetails(c, "Failed to update contact", err)
		}

		return success(c, fiber.Map{"contacts": a.Contacts.Visible()})
	}
}

// DeleteContact removes a contact. No-op if the id matches nothing.
func DeleteContact(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return badRequest(c, "Invalid contact id")
		}

		if err := a.Contacts.Delete(int64(id)); err != nil {
			if errors.Is(err, services.ErrRefresh) {
				return success(c, fiber.Map{
					"contacts":      a.Contacts.Visible(),
					"refresh_error": err.Error(),
				})
			}
			return serverErrorWithDetails(c, "Failed to delete contact", err)
		}

		return success(c, fiber.Map{
			"message":  "Contact deleted successfully",
			"contacts": a.Contacts.Visible(),
		})
	}
}

// ToggleFavorite flips a contact's favorite flag. The body carries the value
// the caller last observed and the write sets its opposite, so a stale
// observation flips the row back rather than erroring.
func ToggleFavorite(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return badRequest(c, "Invalid contact id")
		}

		var req models.ToggleFavoriteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		observed := models.Contact{ID: int64(id), Favorite: req.Favorite}
		if err := a.Contacts.ToggleFavorite(observed); err != nil {
			if errors.Is(err, services.ErrRefresh) {
				return success(c, fiber.Map{
					"contacts":      a.Contacts.Visible(),
					"refresh_error": err.Error(),
				})
			}
			return serverErrorWithDetails(c, "Failed to toggle favorite", err)
		}

		return success(c, fiber.Map{"contacts": a.Contacts.Visible()})
	}
}

// ImportContacts runs a one-shot import from the remote source. The body may
// override the configured source URL. Import errors are reported separately
// from snapshot refresh errors: committed rows stay either way.
func ImportContacts(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.ImportRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return badRequest(c, "Invalid request body")
			}
			if err := a.Validator.Validate(req); err != nil {
				return badRequest(c, err.Error())
			}
		}

		imported, err := a.Importer.Import(req.URL)
		if err != nil {
			switch {
			case errors.Is(err, sync.ErrImportInProgress):
				return conflict(c, err.Error())
			case errors.Is(err, sync.ErrNoImportSource):
				return badRequest(c, err.Error())
			default:
				return serverErrorWithDetails(c, "Import failed", err)
			}
		}

		resp := fiber.Map{"imported": imported}
		if err := a.Contacts.Refresh(); err != nil {
			resp["refresh_error"] = err.Error()
		}
		resp["contacts"] = a.Contacts.Visible()

		return success(c, resp)
	}
}
