package event

import (
	"encoding/json"

	"github.com/MinjiLee-gloria/solclassis/internal/ledger"
	"github.com/MinjiLee-gloria/solclassis/internal/logger"
	"github.com/MinjiLee-gloria/solclassis/internal/model"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// Processor 事件处理器
type Processor interface {
	Name() string
	Process(event ledger.Event) error
}

// Dispatcher 账本事件出口：先落库，再用协程池分发给各处理器。
// 实现 ledger.Emitter，只会收到已提交事务的事件。
type Dispatcher struct {
	db         *gorm.DB
	pool       *ants.Pool
	processors []Processor
}

// NewDispatcher 创建事件分发器
func NewDispatcher(db *gorm.DB, poolSize int) (*Dispatcher, error) {
	if poolSize <= 0 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	return &Dispatcher{
		db:   db,
		pool: pool,
	}, nil
}

// Register 注册处理器
func (d *Dispatcher) Register(p Processor) {
	d.processors = append(d.processors, p)
}

// Emit 实现 ledger.Emitter
func (d *Dispatcher) Emit(event ledger.Event) {
	if err := d.persist(event); err != nil {
		logger.Error("Failed to persist event %s: %v", event.Type, err)
	}

	for _, p := range d.processors {
		p := p
		err := d.pool.Submit(func() {
			if err := p.Process(event); err != nil {
				logger.Error("Processor %s failed on event %s: %v", p.Name(), event.Type, err)
			}
		})
		if err != nil {
			logger.Error("Failed to submit event %s to pool: %v", event.Type, err)
		}
	}
}

// persist 事件落库
func (d *Dispatcher) persist(event ledger.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	record := model.EventModel{
		EventType: string(event.Type),
		Data:      string(data),
	}
	if !event.Campaign.IsZero() {
		record.Campaign = event.Campaign.Hex()
	}
	if !event.Donor.IsZero() {
		record.Donor = event.Donor.Hex()
	}
	return d.db.Create(&record).Error
}

// Stop 释放协程池
func (d *Dispatcher) Stop() {
	d.pool.Release()
}
