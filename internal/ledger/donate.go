package ledger

import (
	"context"
	"fmt"
)

// Donate 捐赠。金额必须恰好等于活动的 DonationUnit，没有部分捐赠。
// 资金划转、raised 递增、达标判定在同一个事务内完成：
// raised 跨过 goal 的那条捐赠一定同步看到 complete 置位，
// 不存在"已达标但未标记"的窗口。
func (l *Ledger) Donate(ctx context.Context, donor, campaign Address, amount uint64) error {
	now := l.clock()
	markerAddr := DeriveDonationAddress(donor, campaign)

	var events []Event
	err := l.store.ExecTx(ctx, func(tx Tx) error {
		c, err := loadCampaign(tx, campaign)
		if err != nil {
			return err
		}
		d, err := loadDonation(tx, markerAddr)
		if err != nil {
			return err
		}
		if err := validateDonate(c, d, donor, amount, now); err != nil {
			return err
		}

		if err := tx.Transfer(donor, campaign, amount); err != nil {
			return err
		}

		c.Raised, err = checkedAdd(c.Raised, amount)
		if err != nil {
			return err
		}
		d.Amount = amount

		events = append(events, Event{
			Type:     EventDonationReceived,
			Campaign: campaign,
			Donor:    donor,
			Amount:   amount,
		})

		// 达标判定只发生在这里，且与转账同事务
		if c.Raised >= c.Goal {
			c.Complete = true
			events = append(events, Event{
				Type:     EventCampaignCompleted,
				Campaign: campaign,
				Raised:   c.Raised,
			})
		}

		if err := tx.Update(campaign, EncodeCampaign(c)); err != nil {
			return err
		}
		return tx.Update(markerAddr, EncodeDonation(d))
	})
	if err != nil {
		return fmt.Errorf("donate: %w", err)
	}

	for _, event := range events {
		l.emitter.Emit(event)
	}
	return nil
}
