// Package ledger 实现众筹托管账本的核心状态机：
// Campaign / Donation 记录、七条指令以及它们的不变量。
// 处理器不持有时钟和存储，全部由外部注入，保证确定性和可测性。
package ledger

import (
	"context"
	"fmt"
	"time"
)

// Clock 注入的"当前时间"，核心从不自己读墙钟
type Clock func() time.Time

// Ledger 指令处理器集合
type Ledger struct {
	store       Store
	clock       Clock
	emitter     Emitter
	minWithdraw uint64
}

// Option Ledger 选项
type Option func(*Ledger)

// WithClock 替换时钟（测试用）
func WithClock(clock Clock) Option {
	return func(l *Ledger) { l.clock = clock }
}

// WithEmitter 设置事件出口
func WithEmitter(emitter Emitter) Option {
	return func(l *Ledger) { l.emitter = emitter }
}

// WithMinWithdraw 覆盖最小提现金额
func WithMinWithdraw(amount uint64) Option {
	return func(l *Ledger) { l.minWithdraw = amount }
}

// New 创建 Ledger
func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:       store,
		clock:       time.Now,
		emitter:     NopEmitter(),
		minWithdraw: DefaultMinWithdraw,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CreateCampaignParams 创建活动的入参
type CreateCampaignParams struct {
	Creator         Address
	PayoutRecipient Address
	Title           string
	Description     string
	Goal            uint64
	DonationUnit    uint64
	EndDate         int64 // unix 秒
}

// CreateCampaign 创建活动，返回新记录的地址。
// 校验失败不留任何痕迹。
func (l *Ledger) CreateCampaign(ctx context.Context, p CreateCampaignParams) (Address, error) {
	now := l.clock()
	if err := validateCreateCampaign(p, now); err != nil {
		return Address{}, err
	}

	addr := NewCampaignAddress(p.Creator)
	campaign := Campaign{
		Creator:         p.Creator,
		PayoutRecipient: p.PayoutRecipient,
		Title:           p.Title,
		Description:     p.Description,
		Goal:            p.Goal,
		DonationUnit:    p.DonationUnit,
		Raised:          0,
		EndDate:         p.EndDate,
		Complete:        false,
		Failed:          false,
	}

	err := l.store.ExecTx(ctx, func(tx Tx) error {
		return tx.Create(addr, EncodeCampaign(&campaign))
	})
	if err != nil {
		return Address{}, fmt.Errorf("create campaign: %w", err)
	}

	l.emitter.Emit(Event{
		Type:     EventCampaignCreated,
		Campaign: addr,
		Title:    p.Title,
		Goal:     p.Goal,
	})
	return addr, nil
}

// CreateDonationMarker 为 (donor, campaign) 创建捐赠标记，amount=0。
// 地址由两者推导，重复创建被存储层以 ErrAddressInUse 拒绝——
// 唯一性由地址本身保证，这里没有任何查重逻辑。
func (l *Ledger) CreateDonationMarker(ctx context.Context, donor, campaign Address) (Address, error) {
	addr := DeriveDonationAddress(donor, campaign)
	err := l.store.ExecTx(ctx, func(tx Tx) error {
		if _, err := tx.Get(campaign); err != nil {
			return fmt.Errorf("campaign %s: %w", campaign, err)
		}
		donation := Donation{Donor: donor, Amount: 0}
		return tx.Create(addr, EncodeDonation(&donation))
	})
	if err != nil {
		return Address{}, fmt.Errorf("create donation marker: %w", err)
	}
	return addr, nil
}

// Deposit 给钱包入账。不属于活动状态机，仅作为资金入口。
func (l *Ledger) Deposit(ctx context.Context, wallet Address, amount uint64) error {
	if amount == 0 {
		return ErrInvalidDepositAmount
	}
	err := l.store.ExecTx(ctx, func(tx Tx) error {
		return tx.Credit(wallet, amount)
	})
	if err != nil {
		return fmt.Errorf("deposit: %w", err)
	}
	l.emitter.Emit(Event{Type: EventDeposited, Donor: wallet, Amount: amount})
	return nil
}

// WalletBalance 查询钱包余额
func (l *Ledger) WalletBalance(ctx context.Context, wallet Address) (uint64, error) {
	var balance uint64
	err := l.store.ExecTx(ctx, func(tx Tx) error {
		var err error
		balance, err = tx.Balance(wallet)
		return err
	})
	return balance, err
}

// GetCampaignStatus 只读快照，无前置条件，不做任何修改
func (l *Ledger) GetCampaignStatus(ctx context.Context, campaign Address) (*CampaignSnapshot, error) {
	var snapshot CampaignSnapshot
	err := l.store.ExecTx(ctx, func(tx Tx) error {
		data, err := tx.Get(campaign)
		if err != nil {
			return err
		}
		c, err := DecodeCampaign(data)
		if err != nil {
			return err
		}
		balance, err := tx.Balance(campaign)
		if err != nil {
			return err
		}
		snapshot = CampaignSnapshot{Address: campaign, Campaign: *c, Balance: balance}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get campaign status: %w", err)
	}
	return &snapshot, nil
}

// GetDonation 读取捐赠标记，地址由 (donor, campaign) 重算
func (l *Ledger) GetDonation(ctx context.Context, donor, campaign Address) (*Donation, error) {
	addr := DeriveDonationAddress(donor, campaign)
	var donation *Donation
	err := l.store.ExecTx(ctx, func(tx Tx) error {
		data, err := tx.Get(addr)
		if err != nil {
			return err
		}
		donation, err = DecodeDonation(data)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get donation: %w", err)
	}
	return donation, nil
}

// loadCampaign 事务内读取并解码 Campaign
func loadCampaign(tx Tx, addr Address) (*Campaign, error) {
	data, err := tx.Get(addr)
	if err != nil {
		return nil, fmt.Errorf("campaign %s: %w", addr, err)
	}
	return DecodeCampaign(data)
}

// loadDonation 事务内读取并解码 Donation
func loadDonation(tx Tx, addr Address) (*Donation, error) {
	data, err := tx.Get(addr)
	if err != nil {
		return nil, fmt.Errorf("donation %s: %w", addr, err)
	}
	return DecodeDonation(data)
}
