// Package ledger owns the authoritative collection of cash transactions.
//
// The Store keeps the full collection in memory and mirrors every successful
// mutation into durable storage as one serialized JSON array. A mutation whose
// save fails is rolled back, so in-memory and durable state never diverge.
// All derived views (sorted lists, balance, cash book, daily stats) are
// computed on demand; no aggregates are persisted.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"kassa/internal/core"
)

// StorageKey is the fixed key the whole collection is stored under.
const StorageKey = "cashTransactions"

// Store is the ledger store. Construct it with New and pass the instance to
// whatever layer needs it; there is no ambient global. Mutations are
// serialized through an internal mutex so concurrent callers cannot race
// order-number generation against each other.
type Store struct {
	mu  sync.Mutex
	kv  storageKV
	txs []core.Transaction

	now   func() time.Time
	newID func() string
}

// storageKV is the slice of the storage contract the ledger needs.
type storageKV interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, value string) error
}

// CashBookEntry is one cash-book row: a transaction annotated with the balance
// as of and including that transaction.
type CashBookEntry struct {
	core.Transaction
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// DayStats holds today's income and expense totals, partitioned by the
// business date only. CreatedAt never influences them.
type DayStats struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// New loads the collection stored under StorageKey. An absent key starts an
// empty ledger. A stored value that fails to parse is a *CorruptStateError;
// a failed read is a *PersistenceError. Both are fatal for initialization.
func New(ctx context.Context, kv storageKV) (*Store, error) {
	s := &Store{
		kv:    kv,
		now:   time.Now,
		newID: uuid.NewString,
	}

	raw, ok, err := kv.Load(ctx, StorageKey)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	if !ok {
		slog.InfoContext(ctx, "No stored ledger found, starting empty", "key", StorageKey)
		return s, nil
	}

	var txs []core.Transaction
	if err := json.Unmarshal([]byte(raw), &txs); err != nil {
		return nil, &CorruptStateError{Key: StorageKey, Err: err}
	}
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return nil, &CorruptStateError{Key: StorageKey, Err: fmt.Errorf("transaction %q: %w", tx.ID, err)}
		}
	}

	s.txs = txs
	slog.InfoContext(ctx, "Ledger loaded", "key", StorageKey, "transactions", len(txs))
	return s, nil
}

// GenerateOrderNumber returns the order number the next transaction of the
// given type would receive: prefix, current year, and a 4-digit sequence
// derived from a live count of same-type transactions.
//
// The sequence is a recount, not a persisted counter: after a deletion the
// next number can reuse a previously issued suffix. Callers must not assume
// the sequence only grows.
func (s *Store) GenerateOrderNumber(t core.Type) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextOrderNumber(t)
}

func (s *Store) nextOrderNumber(t core.Type) string {
	count := 0
	for _, tx := range s.txs {
		if tx.Type == t {
			count++
		}
	}
	return fmt.Sprintf("%s-%d-%04d", t.Prefix(), s.now().Year(), count+1)
}

// Add finalizes a draft into a transaction, appends it and persists the full
// collection. The draft is assumed well-formed; input validation happens at
// the caller's boundary. On a failed save the append is rolled back and a
// *PersistenceError returned.
func (s *Store) Add(ctx context.Context, d core.Draft) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := core.Transaction{
		ID:          s.newID(),
		OrderNumber: s.nextOrderNumber(d.Type),
		Type:        d.Type,
		Amount:      d.Amount,
		Date:        d.Date,
		CreatedAt:   s.now(),
		Income:      d.Income,
		Expense:     d.Expense,
	}

	s.txs = append(s.txs, tx)
	if err := s.persist(ctx); err != nil {
		s.txs = s.txs[:len(s.txs)-1]
		return core.Transaction{}, err
	}

	slog.InfoContext(ctx, "Transaction added",
		"id", tx.ID,
		"order_number", tx.OrderNumber,
		"type", tx.Type,
		"amount", tx.Amount,
		"date", tx.Date)
	return tx, nil
}

// Delete removes the transaction with the given id and persists. A missing id
// is the soft (false, nil) outcome, not an error. On a failed save the removal
// is rolled back.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, tx := range s.txs {
		if tx.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	removed := s.txs[idx]
	trimmed := make([]core.Transaction, 0, len(s.txs)-1)
	trimmed = append(trimmed, s.txs[:idx]...)
	trimmed = append(trimmed, s.txs[idx+1:]...)
	before := s.txs
	s.txs = trimmed
	if err := s.persist(ctx); err != nil {
		s.txs = before
		return false, err
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id, "order_number", removed.OrderNumber)
	return true, nil
}

// persist writes the whole collection under StorageKey. Callers hold the lock.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.txs)
	if err != nil {
		return &PersistenceError{Op: "marshal", Err: err}
	}
	if err := s.kv.Save(ctx, StorageKey, string(data)); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

// All returns every transaction sorted by business date, newest first.
// The sort is stable; transactions sharing a date keep insertion order.
func (s *Store) All() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedDesc()
}

func (s *Store) sortedDesc() []core.Transaction {
	out := make([]core.Transaction, len(s.txs))
	copy(out, s.txs)
	// Dates are fixed-width YYYY-MM-DD, so string comparison is date order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// ByType returns All filtered to one type, order preserved.
func (s *Store) ByType(t core.Type) []core.Transaction {
	all := s.All()
	out := make([]core.Transaction, 0, len(all))
	for _, tx := range all {
		if tx.Type == t {
			out = append(out, tx)
		}
	}
	return out
}

// Balance returns the authoritative current balance: the signed sum over all
// transactions regardless of date order.
func (s *Store) Balance() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, tx := range s.txs {
		total = total.Add(tx.Signed())
	}
	return total
}

// CashBook derives the running-balance ledger view. Transactions are walked
// oldest to newest (the exact reverse of All, ties included) accumulating the
// balance, then the annotated rows are presented newest first. The newest
// row's running balance always equals Balance.
func (s *Store) CashBook() []CashBookEntry {
	asc := s.All()
	reverse(asc)

	entries := make([]CashBookEntry, len(asc))
	running := decimal.Zero
	for i, tx := range asc {
		running = running.Add(tx.Signed())
		entries[i] = CashBookEntry{Transaction: tx, RunningBalance: running}
	}
	reverse(entries)
	return entries
}

// TodayStats sums today's income and expense amounts, comparing business
// dates only.
func (s *Store) TodayStats() DayStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now().Format(core.DateLayout)
	stats := DayStats{Income: decimal.Zero, Expense: decimal.Zero}
	for _, tx := range s.txs {
		if tx.Date != today {
			continue
		}
		if tx.Type == core.Income {
			stats.Income = stats.Income.Add(tx.Amount)
		} else {
			stats.Expense = stats.Expense.Add(tx.Amount)
		}
	}
	return stats
}

// Count returns the number of stored transactions.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txs)
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
