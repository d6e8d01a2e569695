package ledger

import (
	"context"
	"fmt"
)

// Withdraw 达标活动向收款账户释放全部托管余额。
// 调用者声明的账户必须等于活动记录的 PayoutRecipient，不符按权限错误拒绝。
// 没有"已提现"标志，重复调用受限于余额归零，表现为 ErrNoFundsAvailable。
func (l *Ledger) Withdraw(ctx context.Context, campaign, recipient Address) (uint64, error) {
	var withdrawn uint64
	err := l.store.ExecTx(ctx, func(tx Tx) error {
		c, err := loadCampaign(tx, campaign)
		if err != nil {
			return err
		}
		if !c.Complete {
			return ErrCampaignNotComplete
		}
		if recipient != c.PayoutRecipient {
			return ErrUnauthorized
		}

		available, err := tx.Balance(campaign)
		if err != nil {
			return err
		}
		if available == 0 {
			return ErrNoFundsAvailable
		}
		if available < l.minWithdraw {
			return fmt.Errorf("available %d, minimum %d: %w",
				available, l.minWithdraw, ErrWithdrawAmountTooSmall)
		}

		withdrawn = available
		return tx.Transfer(campaign, recipient, available)
	})
	if err != nil {
		return 0, fmt.Errorf("withdraw: %w", err)
	}
	return withdrawn, nil
}
