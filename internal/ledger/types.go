package ledger

import (
	"crypto/sha256"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// MaxDescriptionLength 描述最大长度（字节）
const MaxDescriptionLength = 500

// DefaultMinWithdraw 默认最小提现金额（native unit）
const DefaultMinWithdraw = 100_000

// Address 账本地址，32字节，所有身份和记录都用它寻址
type Address [32]byte

// Hex 十六进制表示
func (a Address) Hex() string {
	return hexutil.Encode(a[:])
}

func (a Address) String() string {
	return a.Hex()
}

// IsZero 是否为零地址
func (a Address) IsZero() bool {
	return a == Address{}
}

// MarshalText JSON 等文本格式里按十六进制呈现
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText 从十六进制恢复
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress 解析十六进制地址
func ParseAddress(s string) (Address, error) {
	var a Address
	b, err := hexutil.Decode(s)
	if err != nil {
		return a, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if len(b) != len(a) {
		return a, fmt.Errorf("invalid address %q: want %d bytes, got %d", s, len(a), len(b))
	}
	copy(a[:], b)
	return a, nil
}

// Discriminator 记录类型标签，前缀在每条持久化记录上
type Discriminator [8]byte

// discriminatorFor 按 "account:<Name>" 的 sha256 前8字节计算类型标签
func discriminatorFor(name string) Discriminator {
	var d Discriminator
	sum := sha256.Sum256([]byte("account:" + name))
	copy(d[:], sum[:8])
	return d
}

var (
	// CampaignDiscriminator Campaign 记录的类型标签
	CampaignDiscriminator = discriminatorFor("Campaign")
	// DonationDiscriminator Donation 记录的类型标签
	DonationDiscriminator = discriminatorFor("Donation")
)

// Campaign 众筹活动记录
type Campaign struct {
	Creator         Address // 创建者（仅记录，创建后不承载权限）
	PayoutRecipient Address // 成功后唯一可提现的收款账户，创建后不可变
	Title           string
	Description     string
	Goal            uint64 // 目标金额，必须是 DonationUnit 的整数倍
	DonationUnit    uint64 // 单笔捐赠的唯一合法金额
	Raised          uint64 // 已筹金额，只通过成功捐赠按 DonationUnit 递增
	EndDate         int64  // 截止时间，unix 秒，创建后不可变
	Complete        bool   // 达标，仅在 Donate 内同步置位
	Failed          bool   // 失败，仅在 EndCampaign 置位，与 Complete 互斥
}

// Status 活动状态
type Status string

const (
	StatusActive   Status = "active"   // 进行中
	StatusComplete Status = "complete" // 达标
	StatusFailed   Status = "failed"   // 失败
)

// Status 当前状态
func (c *Campaign) Status() Status {
	switch {
	case c.Complete:
		return StatusComplete
	case c.Failed:
		return StatusFailed
	default:
		return StatusActive
	}
}

// Donation 捐赠标记记录，每个 (donor, campaign) 恰好一条，地址由二者推导
type Donation struct {
	Donor  Address // 捐赠者，创建时固定
	Amount uint64  // 0 表示无有效捐赠，DonationUnit 表示已捐且未退款
}

// CampaignSnapshot 只读状态快照，含托管余额
type CampaignSnapshot struct {
	Address  Address
	Campaign Campaign
	Balance  uint64
}
