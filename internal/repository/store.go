package repository

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"github.com/MinjiLee-gloria/solclassis/internal/ledger"
	"github.com/MinjiLee-gloria/solclassis/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore 把账本的 Store 接口落到 postgres 上。
// ExecTx 映射为一个数据库事务；Get 带 FOR UPDATE 行锁，
// 同一 Campaign 上的并发指令在这里被串行化。
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建存储
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// ExecTx 实现 ledger.Store
func (s *GormStore) ExecTx(ctx context.Context, fn func(tx ledger.Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{tx: tx})
	})
}

type gormTx struct {
	tx *gorm.DB
}

// Create 实现 ledger.Tx，主键冲突翻译为 ErrAddressInUse
func (t *gormTx) Create(addr ledger.Address, data []byte) error {
	kind, err := ledger.RecordKind(data)
	if err != nil {
		return err
	}
	row := model.RecordModel{
		Address: addr.Hex(),
		Kind:    hex.EncodeToString(kind[:]),
		Data:    data,
	}
	if err := t.tx.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create %s: %w", addr, ledger.ErrAddressInUse)
		}
		return err
	}
	return nil
}

// Get 实现 ledger.Tx，记录加行锁直到事务结束
func (t *gormTx) Get(addr ledger.Address) ([]byte, error) {
	var row model.RecordModel
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("address = ?", addr.Hex()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("get %s: %w", addr, ledger.ErrRecordNotFound)
		}
		return nil, err
	}
	return row.Data, nil
}

// Update 实现 ledger.Tx
func (t *gormTx) Update(addr ledger.Address, data []byte) error {
	result := t.tx.Model(&model.RecordModel{}).
		Where("address = ?", addr.Hex()).
		Update("data", data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update %s: %w", addr, ledger.ErrRecordNotFound)
	}
	return nil
}

// ForEach 实现 ledger.Tx，按类型标签分批遍历
func (t *gormTx) ForEach(kind ledger.Discriminator, fn func(addr ledger.Address, data []byte) error) error {
	var rows []model.RecordModel
	result := t.tx.Where("kind = ?", hex.EncodeToString(kind[:])).
		FindInBatches(&rows, 200, func(_ *gorm.DB, _ int) error {
			for _, row := range rows {
				addr, err := ledger.ParseAddress(row.Address)
				if err != nil {
					return err
				}
				if err := fn(addr, row.Data); err != nil {
					return err
				}
			}
			return nil
		})
	return result.Error
}

// Balance 实现 ledger.Tx，未知地址余额为 0
func (t *gormTx) Balance(addr ledger.Address) (uint64, error) {
	amount, _, err := t.lockBalance(addr)
	return amount, err
}

// Credit 实现 ledger.Tx
func (t *gormTx) Credit(addr ledger.Address, amount uint64) error {
	current, exists, err := t.lockBalance(addr)
	if err != nil {
		return err
	}
	next, err := checkedBalance(current, amount)
	if err != nil {
		return fmt.Errorf("credit %s: %w", addr, err)
	}
	return t.setBalance(addr, next, exists)
}

// Transfer 实现 ledger.Tx
func (t *gormTx) Transfer(from, to ledger.Address, amount uint64) error {
	fromBalance, fromExists, err := t.lockBalance(from)
	if err != nil {
		return err
	}
	if fromBalance < amount {
		return fmt.Errorf("transfer %s -> %s: %w", from, to, ledger.ErrInsufficientFunds)
	}
	// 同址转账不产生净变动，直接短路，避免先读后写凭空铸币
	if from == to {
		return nil
	}
	toBalance, toExists, err := t.lockBalance(to)
	if err != nil {
		return err
	}
	next, err := checkedBalance(toBalance, amount)
	if err != nil {
		return fmt.Errorf("transfer %s -> %s: %w", from, to, err)
	}

	if err := t.setBalance(from, fromBalance-amount, fromExists); err != nil {
		return err
	}
	return t.setBalance(to, next, toExists)
}

// lockBalance 行锁读取余额，返回是否已有该行
func (t *gormTx) lockBalance(addr ledger.Address) (uint64, bool, error) {
	var row model.BalanceModel
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("address = ?", addr.Hex()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return uint64(row.Amount), true, nil
}

func (t *gormTx) setBalance(addr ledger.Address, amount uint64, exists bool) error {
	if exists {
		return t.tx.Model(&model.BalanceModel{}).
			Where("address = ?", addr.Hex()).
			Update("amount", int64(amount)).Error
	}
	return t.tx.Create(&model.BalanceModel{Address: addr.Hex(), Amount: int64(amount)}).Error
}

// checkedBalance 余额必须同时可被 uint64 运算和 int64 存储容纳
func checkedBalance(current, delta uint64) (uint64, error) {
	next := current + delta
	if next < current || next > math.MaxInt64 {
		return 0, ledger.ErrOverflow
	}
	return next, nil
}
