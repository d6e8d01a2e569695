package ledger

import (
	"fmt"
	"time"
)

// 纯参数/状态前置校验，不触存储。任何一条不过，整个指令原样丢弃。

// validateCreateCampaign 创建活动的参数校验
func validateCreateCampaign(p CreateCampaignParams, now time.Time) error {
	if len(p.Description) > MaxDescriptionLength {
		return fmt.Errorf("description is %d bytes, limit %d: %w",
			len(p.Description), MaxDescriptionLength, ErrDescriptionTooLong)
	}
	if p.DonationUnit == 0 {
		return fmt.Errorf("donation unit must be positive: %w", ErrInvalidGoalAmount)
	}
	if p.Goal == 0 {
		return fmt.Errorf("goal must be positive: %w", ErrInvalidGoalAmount)
	}
	if p.Goal%p.DonationUnit != 0 {
		return fmt.Errorf("goal %d is not a multiple of donation unit %d: %w",
			p.Goal, p.DonationUnit, ErrInvalidGoalAmount)
	}
	if p.EndDate <= now.Unix() {
		return fmt.Errorf("end date %d is not in the future: %w", p.EndDate, ErrEndDatePassed)
	}
	if p.Creator.IsZero() || p.PayoutRecipient.IsZero() {
		return fmt.Errorf("creator and payout recipient are required: %w", ErrUnauthorized)
	}
	return nil
}

// validateDonate 捐赠的状态与参数校验，对照 Campaign 当前状态
func validateDonate(c *Campaign, d *Donation, donor Address, amount uint64, now time.Time) error {
	if now.Unix() >= c.EndDate {
		return ErrCampaignEnded
	}
	if amount != c.DonationUnit {
		return fmt.Errorf("amount %d, campaign accepts exactly %d: %w",
			amount, c.DonationUnit, ErrInvalidDonationAmount)
	}
	if d.Donor != donor {
		return ErrDonorMismatch
	}
	// 重复捐赠优先于活动状态报错，已捐过的人无论活动后续如何都拿同一个错
	if d.Amount > 0 {
		return ErrAlreadyDonated
	}
	if c.Complete || c.Failed {
		return ErrCampaignAlreadyComplete
	}
	return nil
}

// checkedAdd 溢出检查的加法
func checkedAdd(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrOverflow
	}
	return sum, nil
}
