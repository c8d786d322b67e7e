// Package memory provides in-memory implementations of the repository
// interfaces for development and tests. A single store mutex is held for the
// lifetime of a transaction, which gives the same single-writer guarantee the
// PostgreSQL row locks do.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/petalforge/grovetender/internal/domain"
)

// Store is the shared state behind the in-memory repositories
type Store struct {
	mu sync.Mutex

	plants    map[string]domain.Plant
	farming   map[string]domain.FarmingState
	inventory map[string]map[domain.ConsumableType]int
	balances  map[string]float64
	consumed  map[string]string
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		plants:    make(map[string]domain.Plant),
		farming:   make(map[string]domain.FarmingState),
		inventory: make(map[string]map[domain.ConsumableType]int),
		balances:  make(map[string]float64),
		consumed:  make(map[string]string),
	}
}

// snapshot deep-copies the store state so a rollback can restore it
func (s *Store) snapshot() *storeState {
	st := &storeState{
		plants:    make(map[string]domain.Plant, len(s.plants)),
		farming:   make(map[string]domain.FarmingState, len(s.farming)),
		inventory: make(map[string]map[domain.ConsumableType]int, len(s.inventory)),
		balances:  make(map[string]float64, len(s.balances)),
		consumed:  make(map[string]string, len(s.consumed)),
	}
	for k, v := range s.plants {
		st.plants[k] = v
	}
	for k, v := range s.farming {
		st.farming[k] = cloneFarmingState(v)
	}
	for k, v := range s.inventory {
		inner := make(map[domain.ConsumableType]int, len(v))
		for ct, q := range v {
			inner[ct] = q
		}
		st.inventory[k] = inner
	}
	for k, v := range s.balances {
		st.balances[k] = v
	}
	for k, v := range s.consumed {
		st.consumed[k] = v
	}
	return st
}

// restore replaces the store state with a snapshot
func (s *Store) restore(st *storeState) {
	s.plants = st.plants
	s.farming = st.farming
	s.inventory = st.inventory
	s.balances = st.balances
	s.consumed = st.consumed
}

type storeState struct {
	plants    map[string]domain.Plant
	farming   map[string]domain.FarmingState
	inventory map[string]map[domain.ConsumableType]int
	balances  map[string]float64
	consumed  map[string]string
}

func cloneFarmingState(state domain.FarmingState) domain.FarmingState {
	out := state
	out.ActiveItems = append([]domain.ActiveItemRecord(nil), state.ActiveItems...)
	if state.LastSettledAt != nil {
		t := *state.LastSettledAt
		out.LastSettledAt = &t
	}
	return out
}

func (s *Store) markPaymentConsumed(txHash, purpose string) error {
	if _, used := s.consumed[txHash]; used {
		return domain.ErrPaymentAlreadyUsed
	}
	s.consumed[txHash] = purpose
	return nil
}

// tx is the shared transaction base. The store mutex is acquired at begin and
// released at the first Commit or Rollback; later calls report a closed tx.
type tx struct {
	store  *Store
	saved  *storeState
	closed bool
}

func (t *tx) Commit(ctx context.Context) error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.closed = true
	t.store.mu.Unlock()
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.closed = true
	t.store.restore(t.saved)
	t.store.mu.Unlock()
	return nil
}

func (t *tx) guard() error {
	if t.closed {
		return errors.New(domain.ErrMsgTxClosed)
	}
	return nil
}

func now() time.Time {
	return time.Now().UTC()
}
