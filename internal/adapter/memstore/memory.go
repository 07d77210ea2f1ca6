// Package memstore is an in-memory regatta result store with the same matching
// and ordering semantics as the PostgreSQL repository. It backs service tests
// and the CLI's offline mode.
package memstore

import (
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/regatta-backend/internal/domain"
)

// Store keeps records in insertion order.
type Store struct {
	mu      sync.RWMutex
	records []domain.ResultRecord
	now     func() time.Time
}

// New creates a store preloaded with records.
func New(records ...domain.ResultRecord) *Store {
	s := &Store{now: time.Now}
	if len(records) > 0 {
		if _, err := s.InsertBatch(context.Background(), records); err != nil {
			panic(fmt.Sprintf("memstore: seed: %v", err))
		}
	}
	return s
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// RunInTx runs fn and restores the previous contents if it fails.
// Writes made concurrently by other goroutines during fn are lost on rollback.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.RLock()
	snapshot := slices.Clone(s.records)
	s.mu.RUnlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.records = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// InsertBatch validates every record first and stores none if any is invalid.
func (s *Store) InsertBatch(_ context.Context, records []domain.ResultRecord) ([]domain.ResultRecord, error) {
	if len(records) == 0 {
		return nil, nil
	}

	now := s.now().UTC()
	stored := make([]domain.ResultRecord, len(records))

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[uuid.UUID]struct{}, len(s.records)+len(records))
	for _, r := range s.records {
		seen[r.ID] = struct{}{}
	}

	for i, rec := range records {
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		rec.YachtClub = domain.NormalizeClub(rec.YachtClub)
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("insert record %d: %w", i, domain.ErrAlreadyExists)
		}
		seen[rec.ID] = struct{}{}
		stored[i] = rec
	}

	s.records = append(s.records, stored...)
	return slices.Clone(stored), nil
}

// Clear deletes every record and returns how many were removed.
func (s *Store) Clear(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.records))
	s.records = nil
	return n, nil
}

func (s *Store) selectWhere(match func(r *domain.ResultRecord) bool) []domain.ResultRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.ResultRecord
	for i := range s.records {
		if match(&s.records[i]) {
			out = append(out, s.records[i])
		}
	}
	return out
}

func sortByDateDesc(records []domain.ResultRecord) {
	slices.SortStableFunc(records, func(a, b domain.ResultRecord) int {
		return domain.CompareDatesDesc(a.RegattaDate, b.RegattaDate)
	})
}

// SearchCandidates returns records whose skipper or boat name contains term, ignoring case.
func (s *Store) SearchCandidates(_ context.Context, term string) ([]domain.ResultRecord, error) {
	out := s.selectWhere(func(r *domain.ResultRecord) bool {
		return domain.ContainsFold(r.Skipper, term) || domain.ContainsFold(r.BoatName, term)
	})
	sortByDateDesc(out)
	return out, nil
}

func fieldValue(r *domain.ResultRecord, field domain.RecordField) string {
	switch field {
	case domain.FieldSkipper:
		return r.Skipper
	case domain.FieldBoatName:
		return r.BoatName
	case domain.FieldYachtClub:
		return r.YachtClub
	case domain.FieldRegattaName:
		return r.RegattaName
	}
	return ""
}

// FindByField matches field exactly (case-insensitive) or by substring, ordered by position.
func (s *Store) FindByField(_ context.Context, field domain.RecordField, value string, exact bool) ([]domain.ResultRecord, error) {
	if !field.IsValid() {
		return nil, domain.NewValidationError("field", fmt.Sprintf("unsupported field %q", field))
	}
	out := s.selectWhere(func(r *domain.ResultRecord) bool {
		v := fieldValue(r, field)
		if exact {
			return value != "" && strings.ToLower(v) == strings.ToLower(value)
		}
		return domain.ContainsFold(v, value)
	})
	slices.SortStableFunc(out, func(a, b domain.ResultRecord) int {
		if c := domain.ComparePositions(a.Position, b.Position); c != 0 {
			return c
		}
		return domain.CompareDatesDesc(a.RegattaDate, b.RegattaDate)
	})
	return out, nil
}

// Filter applies the conjunction of the non-empty filters, newest first, then by position.
func (s *Store) Filter(_ context.Context, f domain.RecordFilter) ([]domain.ResultRecord, error) {
	out := s.selectWhere(func(r *domain.ResultRecord) bool {
		if f.BoatName != "" && !domain.ContainsFold(r.BoatName, f.BoatName) {
			return false
		}
		if f.YachtClub != "" && !domain.ContainsFold(r.YachtClub, f.YachtClub) {
			return false
		}
		if f.RegattaName != "" && !domain.ContainsFold(r.RegattaName, f.RegattaName) {
			return false
		}
		if f.Year > 0 && r.Year() != f.Year {
			return false
		}
		if f.Location != "" && !domain.ContainsFold(r.RegattaName, f.Location) && !domain.ContainsFold(r.YachtClub, f.Location) {
			return false
		}
		return true
	})
	domain.SortByDateThenPosition(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// Recent returns the newest records; limit <= 0 returns all.
func (s *Store) Recent(_ context.Context, limit int) ([]domain.ResultRecord, error) {
	out := s.selectWhere(func(*domain.ResultRecord) bool { return true })
	slices.SortStableFunc(out, func(a, b domain.ResultRecord) int {
		if c := domain.CompareDatesDesc(a.RegattaDate, b.RegattaDate); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var twoCapitalizedWords = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+$`)

// SuspectBoatNames returns records whose boat name is two capitalized words different from the skipper.
func (s *Store) SuspectBoatNames(_ context.Context) ([]domain.ResultRecord, error) {
	out := s.selectWhere(func(r *domain.ResultRecord) bool {
		return twoCapitalizedWords.MatchString(r.BoatName) && r.BoatName != r.Skipper
	})
	slices.SortStableFunc(out, func(a, b domain.ResultRecord) int {
		if c := cmp.Compare(a.BoatName, b.BoatName); c != 0 {
			return c
		}
		return domain.CompareDatesDesc(a.RegattaDate, b.RegattaDate)
	})
	return out, nil
}
