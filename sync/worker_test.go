package sync

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerRunsImportOnStart(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`[{"name": "Alice", "phone": "555 0100"}]`))
	}))
	defer srv.Close()

	importer := NewImporter(repo, srv.Client(), srv.URL)

	var refreshed atomic.Int32
	refresh := func() error {
		refreshed.Add(1)
		return nil
	}

	worker := NewWorker(importer, refresh, time.Hour)
	worker.Start()
	defer worker.Stop()

	require.Eventually(t, func() bool {
		return hits.Load() >= 1 && refreshed.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)

	count, err := repo.CountContacts()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestWorkerStartStopIdempotent(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	// No source configured: runs fail fast and log, nothing is inserted.
	importer := NewImporter(repo, nil, "")
	worker := NewWorker(importer, nil, time.Hour)

	worker.Start()
	worker.Start()
	worker.Stop()
	worker.Stop()

	count, err := repo.CountContacts()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
