package sync

import (
	"log"
	"sync"
	"time"
)

// Worker re-runs the configured import on a fixed interval with adaptive
// backoff. Safe to run unattended because import is idempotent and the
// importer serializes in-flight runs.
type Worker struct {
	importer        *Importer
	refresh         func() error
	baseInterval    time.Duration
	maxInterval     time.Duration
	currentInterval time.Duration
	running         bool
	mu              sync.Mutex
	stopChan        chan struct{}
}

// NewWorker creates a periodic import worker. refresh is called after every
// run that inserted rows, so cached snapshots stay consistent.
func NewWorker(importer *Importer, refresh func() error, interval time.Duration) *Worker {
	return &Worker{
		importer:        importer,
		refresh:         refresh,
		baseInterval:    interval,
		maxInterval:     5 * interval, // Back off up to 5x when nothing new arrives
		currentInterval: interval,
		stopChan:        make(chan struct{}),
	}
}

// Start begins the background import worker
func (w *Worker) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	log.Println("[Import Worker] Starting background import worker")

	go w.run()
}

// Stop gracefully stops the background import worker
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}

	log.Println("[Import Worker] Stopping background import worker")
	close(w.stopChan)
	w.running = false
}

// run is the main worker loop with adaptive backoff
func (w *Worker) run() {
	ticker := time.NewTicker(w.currentInterval)
	defer ticker.Stop()

	// Run immediately on start
	w.runImport()

	for {
		select {
		case <-ticker.C:
			hadWork := w.runImport()

			// Adaptive backoff: reset to base interval when rows arrived,
			// stretch to max when nothing new was found.
			w.mu.Lock()
			if hadWork {
				if w.currentInterval != w.baseInterval {
					w.currentInterval = w.baseInterval
					ticker.Reset(w.currentInterval)
					log.Printf("[Import Worker] New contacts found, reset interval to %v", w.currentInterval)
				}
			} else {
				if w.currentInterval < w.maxInterval {
					w.currentInterval = w.maxInterval
					ticker.Reset(w.currentInterval)
					log.Printf("[Import Worker] No new contacts, increased interval to %v", w.currentInterval)
				}
			}
			w.mu.Unlock()
		case <-w.stopChan:
			return
		}
	}
}

// runImport performs one import run and reports whether it inserted rows.
func (w *Worker) runImport() bool {
	inserted, err := w.importer.Import("")
	if err != nil {
		log.Printf("[Import Worker] Import failed: %v", err)
		return false
	}

	if inserted > 0 && w.refresh != nil {
		if err := w.refresh(); err != nil {
			log.Printf("[Import Worker] Snapshot refresh failed after import: %v", err)
		}
	}

	return inserted > 0
}
