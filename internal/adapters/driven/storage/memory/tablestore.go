package memory

import (
	"context"
	"encoding/csv"
	"strings"
	"sync"

	"github.com/custodia-labs/crawlsync/internal/core/ports/driven"
)

// Ensure TableStore implements the interface.
var _ driven.TableStore = (*TableStore)(nil)

// Table is one stored table with its parsed rows.
type Table struct {
	Name        string
	Description string
	Rows        [][]string
}

// TableStore is an in-memory tabular store. Truncate-mode upserts replace
// the table's rows wholesale; otherwise rows append.
type TableStore struct {
	mu     sync.RWMutex
	tables map[string]Table
}

// NewTableStore creates an empty in-memory table store.
func NewTableStore() *TableStore {
	return &TableStore{
		tables: make(map[string]Table),
	}
}

// UpsertTable stores tabular content under its table id.
func (s *TableStore) UpsertTable(_ context.Context, upsert driven.TableUpsert) error {
	rows, err := csv.NewReader(strings.NewReader(upsert.CSV)).ReadAll()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	table := Table{
		Name:        upsert.TableName,
		Description: upsert.TableDescription,
		Rows:        rows,
	}
	if !upsert.Truncate {
		if existing, ok := s.tables[upsert.TableID]; ok {
			table.Rows = append(existing.Rows, rows...)
		}
	}
	s.tables[upsert.TableID] = table
	return nil
}

// Table returns the stored table for an id, if any.
func (s *TableStore) Table(tableID string) (Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table, ok := s.tables[tableID]
	return table, ok
}

// Len returns how many tables are stored.
func (s *TableStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tables)
}
