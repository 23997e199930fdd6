package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) (*Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "contact-book-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := New(dbPath)
	require.NoError(t, err)

	err = db.Migrate()
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}

	return repo, cleanup
}

func strPtr(s string) *string { return &s }

func TestSeed(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	t.Run("Empty table gets seeded with one favorite", func(t *testing.T) {
		err := repo.Seed()
		require.NoError(t, err)

		contacts, err := repo.ListContacts()
		require.NoError(t, err)
		require.Len(t, contacts, 3)

		favorites := 0
		var lowestID int64
		for _, c := range contacts {
			if lowestID == 0 || c.ID < lowestID {
				lowestID = c.ID
			}
			if c.Favorite {
				favorites++
				assert.Equal(t, int64(1), c.ID, "lowest id should be promoted to favorite")
			}
		}
		assert.Equal(t, 1, favorites)
		assert.Equal(t, int64(1), lowestID)
	})

	t.Run("Re-seeding is a no-op", func(t *testing.T) {
		err := repo.Seed()
		require.NoError(t, err)

		count, err := repo.CountContacts()
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("Existing favorite is not overridden", func(t *testing.T) {
		// Move the favorite to a different row, then re-run.
		require.NoError(t, repo.SetFavorite(1, false))
		require.NoError(t, repo.SetFavorite(3, true))

		err := repo.Seed()
		require.NoError(t, err)

		contact, err := repo.GetContact(3)
		require.NoError(t, err)
		require.NotNil(t, contact)
		assert.True(t, contact.Favorite)

		contact, err = repo.GetContact(1)
		require.NoError(t, err)
		require.NotNil(t, contact)
		assert.False(t, contact.Favorite)
	})
}

func TestSeedEnsureFavoriteOnExistingRows(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	// Pre-populate without favorites; Seed must not add sample rows but must
	// promote the lowest id.
	now := time.Now().UnixMilli()
	_, err := repo.CreateContact("Zed", strPtr("111"), nil, false, now)
	require.NoError(t, err)
	_, err = repo.CreateContact("Amy", strPtr("222"), nil, false, now+1)
	require.NoError(t, err)

	require.NoError(t, repo.Seed())

	count, err := repo.CountContacts()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	contact, err := repo.GetContact(1)
	require.NoError(t, err)
	require.NotNil(t, contact)
	assert.True(t, contact.Favorite, "lowest id should become the favorite")
}

func TestCreateAndGetContact(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	now := time.Now().UnixMilli()
	id, err := repo.CreateContact("Bob", strPtr("123"), nil, false, now)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	contact, err := repo.GetContact(id)
	require.NoError(t, err)
	require.NotNil(t, contact)

	assert.Equal(t, "Bob", contact.Name)
	require.NotNil(t, contact.Phone)
	assert.Equal(t, "123", *contact.Phone)
	assert.Nil(t, contact.Email)
	assert.False(t, contact.Favorite)
	assert.Equal(t, now, contact.CreatedAt)
}

func TestGetContactMissing(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	contact, err := repo.GetContact(999)
	require.NoError(t, err)
	assert.Nil(t, contact)
}

func TestListContactsOrdering(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	now := time.Now().UnixMilli()
	_, err := repo.CreateContact("charlie", nil, nil, false, now)
	require.NoError(t, err)
	_, err = repo.CreateContact("Alice", nil, nil, false, now+1)
	require.NoError(t, err)
	zedID, err := repo.CreateContact("Zed", nil, nil, false, now+2)
	require.NoError(t, err)
	_, err = repo.CreateContact("bob", nil, nil, false, now+3)
	require.NoError(t, err)

	require.NoError(t, repo.SetFavorite(zedID, true))

	contacts, err := repo.ListContacts()
	require.NoError(t, err)
	require.Len(t, contacts, 4)

	// Favorites first, then case-insensitive name order.
	assert.Equal(t, "Zed", contacts[0].Name)
	assert.True(t, contacts[0].Favorite)
	assert.Equal(t, "Alice", contacts[1].Name)
	assert.Equal(t, "bob", contacts[2].Name)
	assert.Equal(t, "charlie", contacts[3].Name)
}

func TestUpdateContact(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	now := time.Now().UnixMilli()
	id, err := repo.CreateContact("Bob", strPtr("123"), strPtr("bob@example.com"), false, now)
	require.NoError(t, err)
	require.NoError(t, repo.SetFavorite(id, true))

	err = repo.UpdateContact(id, "Robert", strPtr("456"), nil)
	require.NoError(t, err)

	contact, err := repo.GetContact(id)
	require.NoError(t, err)
	require.NotNil(t, contact)

	assert.Equal(t, "Robert", contact.Name)
	require.NotNil(t, contact.Phone)
	assert.Equal(t, "456", *contact.Phone)
	assert.Nil(t, contact.Email)
	// favorite and created_at stay untouched
	assert.True(t, contact.Favorite)
	assert.Equal(t, now, contact.CreatedAt)
}

func TestUpdateContactUnknownIDIsSilent(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	err := repo.UpdateContact(42, "Ghost", nil, nil)
	assert.NoError(t, err)

	count, err := repo.CountContacts()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestDeleteContact(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	id, err := repo.CreateContact("Bob", nil, nil, false, time.Now().UnixMilli())
	require.NoError(t, err)

	require.NoError(t, repo.DeleteContact(id))

	contact, err := repo.GetContact(id)
	require.NoError(t, err)
	assert.Nil(t, contact)

	// Deleting again is a no-op
	assert.NoError(t, repo.DeleteContact(id))
}

func TestSetFavoriteTouchesOnlyTarget(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	now := time.Now().UnixMilli()
	first, err := repo.CreateContact("First", nil, nil, false, now)
	require.NoError(t, err)
	second, err := repo.CreateContact("Second", nil, nil, false, now+1)
	require.NoError(t, err)

	require.NoError(t, repo.SetFavorite(second, true))

	c1, err := repo.GetContact(first)
	require.NoError(t, err)
	assert.False(t, c1.Favorite)

	c2, err := repo.GetContact(second)
	require.NoError(t, err)
	assert.True(t, c2.Favorite)
}

func TestExistingPhones(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	now := time.Now().UnixMilli()
	_, err := repo.CreateContact("A", strPtr("123"), nil, false, now)
	require.NoError(t, err)
	_, err = repo.CreateContact("B", nil, nil, false, now+1)
	require.NoError(t, err)
	_, err = repo.CreateContact("C", strPtr(" 456 "), nil, false, now+2)
	require.NoError(t, err)

	phones, err := repo.ExistingPhones()
	require.NoError(t, err)

	assert.Len(t, phones, 2)
	assert.Contains(t, phones, "123")
	assert.Contains(t, phones, "456")
}
