// Package memory is a process-local storage backend with the same contracts as
// the Postgres repositories. Every read returns a copy.
// Readers get no isolation from units of work: an APPROVED status can be seen
// before its credit lands, and a rollback can revert a status already read.
package memory

import (
	"context"
	"github.com/AhmedKotbb/simple-payment-geteway/internal/domain/models"
	"sort"
	"sync"
	"time"
)

// Store holds all records. mu guards every map and every record field.
type Store struct {
	mu  sync.RWMutex
	seq uint64

	users        map[string]*userRecord
	emails       map[string]string
	merchants    map[string]*merchantRecord
	names        map[string]string
	transactions map[string]*transactionRecord

	now func() time.Time
}

type userRecord struct {
	models.User
	seq uint64
}

type merchantRecord struct {
	models.Merchant
	seq uint64
}

type transactionRecord struct {
	models.Transaction
	seq uint64
}

func NewStore() *Store {
	return &Store{
		users:        make(map[string]*userRecord),
		emails:       make(map[string]string),
		merchants:    make(map[string]*merchantRecord),
		names:        make(map[string]string),
		transactions: make(map[string]*transactionRecord),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// next returns a strictly increasing insertion number. Caller holds mu.
func (s *Store) next() uint64 {
	s.seq++
	return s.seq
}

type uowKey struct{}

// unitOfWork collects compensating actions for writes made inside WithinTransaction.
type unitOfWork struct {
	undo []func()
}

// record registers undo with the unit of work carried by ctx, if any.
func record(ctx context.Context, undo func()) {
	if u, ok := ctx.Value(uowKey{}).(*unitOfWork); ok {
		u.undo = append(u.undo, undo)
	}
}

// newestFirst orders by creation time descending, breaking ties by insertion order.
func newestFirst(aTime, bTime time.Time, aSeq, bSeq uint64) bool {
	if !aTime.Equal(bTime) {
		return aTime.After(bTime)
	}
	return aSeq > bSeq
}

// paginate slices an already ordered list.
func paginate[T any](all []T, page models.Page) models.PaginatedResult[T] {
	start := page.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := len(all)
	if page.Limit > 0 && page.Limit < end-start {
		end = start + page.Limit
	}

	docs := make([]T, end-start)
	copy(docs, all[start:end])
	return models.NewPaginatedResult(docs, len(all), page)
}

func sortTransactions(records []*transactionRecord) []models.Transaction {
	sort.Slice(records, func(i, j int) bool {
		return newestFirst(records[i].CreatedAt, records[j].CreatedAt, records[i].seq, records[j].seq)
	})
	out := make([]models.Transaction, len(records))
	for i, r := range records {
		out[i] = r.Transaction
	}
	return out
}
