package ledger

import (
	"context"
	"fmt"
	"math"
	"sync"
)

// MemStore 内存版 Store，事务在影子副本上执行，提交时整体换入。
// 全局一把锁，同一时刻只有一个事务在跑，天然满足记录独占访问。
// 用于测试和本地调试，生产环境走 repository 的 gorm 实现。
type MemStore struct {
	mu       sync.Mutex
	records  map[Address][]byte
	balances map[Address]uint64
}

// NewMemStore 创建内存存储
func NewMemStore() *MemStore {
	return &MemStore{
		records:  make(map[Address][]byte),
		balances: make(map[Address]uint64),
	}
}

// ExecTx 实现 Store
func (s *MemStore) ExecTx(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		store:    s,
		records:  make(map[Address][]byte),
		balances: make(map[Address]uint64),
	}
	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// memTx 事务影子状态，只记录被触碰的键
type memTx struct {
	store    *MemStore
	records  map[Address][]byte
	balances map[Address]uint64
}

func (t *memTx) commit() {
	for addr, data := range t.records {
		t.store.records[addr] = data
	}
	for addr, amount := range t.balances {
		t.store.balances[addr] = amount
	}
}

func (t *memTx) exists(addr Address) bool {
	if _, ok := t.records[addr]; ok {
		return true
	}
	_, ok := t.store.records[addr]
	return ok
}

// Create 实现 Tx
func (t *memTx) Create(addr Address, data []byte) error {
	if t.exists(addr) {
		return fmt.Errorf("create %s: %w", addr, ErrAddressInUse)
	}
	t.records[addr] = append([]byte(nil), data...)
	return nil
}

// Get 实现 Tx
func (t *memTx) Get(addr Address) ([]byte, error) {
	if data, ok := t.records[addr]; ok {
		return append([]byte(nil), data...), nil
	}
	if data, ok := t.store.records[addr]; ok {
		return append([]byte(nil), data...), nil
	}
	return nil, fmt.Errorf("get %s: %w", addr, ErrRecordNotFound)
}

// Update 实现 Tx
func (t *memTx) Update(addr Address, data []byte) error {
	if !t.exists(addr) {
		return fmt.Errorf("update %s: %w", addr, ErrRecordNotFound)
	}
	t.records[addr] = append([]byte(nil), data...)
	return nil
}

// ForEach 实现 Tx
func (t *memTx) ForEach(kind Discriminator, fn func(addr Address, data []byte) error) error {
	seen := make(map[Address]bool, len(t.records))
	visit := func(addr Address, data []byte) error {
		got, err := RecordKind(data)
		if err != nil || got != kind {
			return nil
		}
		return fn(addr, append([]byte(nil), data...))
	}
	for addr, data := range t.records {
		seen[addr] = true
		if err := visit(addr, data); err != nil {
			return err
		}
	}
	for addr, data := range t.store.records {
		if seen[addr] {
			continue
		}
		if err := visit(addr, data); err != nil {
			return err
		}
	}
	return nil
}

func (t *memTx) balance(addr Address) uint64 {
	if amount, ok := t.balances[addr]; ok {
		return amount
	}
	return t.store.balances[addr]
}

// Balance 实现 Tx
func (t *memTx) Balance(addr Address) (uint64, error) {
	return t.balance(addr), nil
}

// Credit 实现 Tx。余额上限与 gorm 实现的 int64 列保持一致。
func (t *memTx) Credit(addr Address, amount uint64) error {
	current := t.balance(addr)
	if amount > math.MaxInt64 || current > math.MaxInt64-amount {
		return fmt.Errorf("credit %s: %w", addr, ErrOverflow)
	}
	t.balances[addr] = current + amount
	return nil
}

// Transfer 实现 Tx
func (t *memTx) Transfer(from, to Address, amount uint64) error {
	fromBalance := t.balance(from)
	if fromBalance < amount {
		return fmt.Errorf("transfer %s -> %s: %w", from, to, ErrInsufficientFunds)
	}
	// 同址转账不产生净变动，直接短路，避免先读后写凭空铸币
	if from == to {
		return nil
	}
	toBalance := t.balance(to)
	if toBalance > math.MaxInt64-amount {
		return fmt.Errorf("transfer %s -> %s: %w", from, to, ErrOverflow)
	}
	t.balances[from] = fromBalance - amount
	t.balances[to] = toBalance + amount
	return nil
}
