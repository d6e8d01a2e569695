package ledger

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
)

// donationSeed 捐赠标记地址的固定前缀
const donationSeed = "donation"

// DeriveDonationAddress 推导 (donor, campaign) 对应的捐赠标记地址。
// 地址完全由输入决定，任何协作方都可以离线重算；
// 重复创建同一地址由存储层拒绝，唯一性不依赖任何索引。
func DeriveDonationAddress(donor, campaign Address) Address {
	var a Address
	h := crypto.Keccak256([]byte(donationSeed), donor[:], campaign[:])
	copy(a[:], h)
	return a
}

// NewCampaignAddress 为新活动生成地址，uuid 作盐避免同一创建者的活动相撞
func NewCampaignAddress(creator Address) Address {
	var a Address
	salt := uuid.New()
	h := crypto.Keccak256(creator[:], salt[:])
	copy(a[:], h)
	return a
}
