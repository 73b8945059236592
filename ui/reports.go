package ui

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"heartrisk/internal/report"
)

// reportTTL bounds how long a generated report stays downloadable. Reports
// are the only cross-request state and never outlive the session.
const reportTTL = 15 * time.Minute

type storedReport struct {
	report    report.Report
	createdAt time.Time
}

// reportStore holds generated reports keyed by a per-submission id until
// they are downloaded or expire.
type reportStore struct {
	mu      sync.Mutex
	entries map[string]storedReport
}

func newReportStore() *reportStore {
	return &reportStore{entries: make(map[string]storedReport)}
}

// Put stores a report and returns its download id.
func (rs *reportStore) Put(r report.Report) string {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.sweepLocked()

	id := uuid.NewString()
	rs.entries[id] = storedReport{report: r, createdAt: time.Now()}
	return id
}

// Get returns the report for id if it exists and has not expired.
func (rs *reportStore) Get(id string) (report.Report, bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	entry, ok := rs.entries[id]
	if !ok {
		return report.Report{}, false
	}
	if time.Since(entry.createdAt) > reportTTL {
		delete(rs.entries, id)
		return report.Report{}, false
	}
	return entry.report, true
}

func (rs *reportStore) sweepLocked() {
	for id, entry := range rs.entries {
		if time.Since(entry.createdAt) > reportTTL {
			delete(rs.entries, id)
		}
	}
}
