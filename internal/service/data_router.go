package service

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/msoliva/atalaya/atalaya-backend/internal/domain"
)

// Data source names.
const (
	SourceAirtable = "airtable"
	SourcePostgres = "postgres"
)

// DataRouter selects the active booking data source at runtime. The
// dashboard can be pointed at either the Airtable sheet or the Postgres
// mirror; both expose the same repository contract, and the engine never
// knows which one fed it.
type DataRouter struct {
	mu      sync.RWMutex
	current string
	sources map[string]domain.BookingRepository
}

// NewDataRouter creates a router over the available repositories. Nil
// repositories are ignored; initial must name a registered source.
func NewDataRouter(airtable, postgres domain.BookingRepository, initial string) (*DataRouter, error) {
	sources := make(map[string]domain.BookingRepository)
	if airtable != nil {
		sources[SourceAirtable] = airtable
	}
	if postgres != nil {
		sources[SourcePostgres] = postgres
	}
	if _, ok := sources[initial]; !ok {
		return nil, domain.ErrUnknownDataSource
	}
	return &DataRouter{current: initial, sources: sources}, nil
}

// Current returns the active repository.
func (r *DataRouter) Current() domain.BookingRepository {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sources[r.current]
}

// CurrentName returns the active source name.
func (r *DataRouter) CurrentName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Toggle switches to the other data source and returns its name. It fails
// with ErrSourceUnavailable when only one source is configured.
func (r *DataRouter) Toggle() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := SourceAirtable
	if r.current == SourceAirtable {
		next = SourcePostgres
	}
	if _, ok := r.sources[next]; !ok {
		return r.current, domain.ErrSourceUnavailable
	}

	log.Info().Str("from", r.current).Str("to", next).Msg("Switching booking data source")
	r.current = next
	return r.current, nil
}
