package ledger

import (
	"context"
	"fmt"
)

// Refund 失败活动的捐赠者取回捐款。
// 标记清零和资金划转同事务；第二次退款因为标记已是 0 会拿到
// ErrNoFundsAvailable，这就是防重复退款的全部机制。
// 活动的 raised 不回退，它记录的是历史筹集额。
func (l *Ledger) Refund(ctx context.Context, donor, campaign Address) error {
	markerAddr := DeriveDonationAddress(donor, campaign)

	var event Event
	err := l.store.ExecTx(ctx, func(tx Tx) error {
		c, err := loadCampaign(tx, campaign)
		if err != nil {
			return err
		}
		d, err := loadDonation(tx, markerAddr)
		if err != nil {
			return err
		}

		if !c.Failed {
			return ErrCampaignNotFailed
		}
		if d.Donor != donor {
			return ErrDonorMismatch
		}
		refund := d.Amount
		if refund == 0 {
			return ErrNoFundsAvailable
		}

		d.Amount = 0
		if err := tx.Update(markerAddr, EncodeDonation(d)); err != nil {
			return err
		}
		if err := tx.Transfer(campaign, donor, refund); err != nil {
			return err
		}

		event = Event{
			Type:     EventRefundProcessed,
			Campaign: campaign,
			Donor:    donor,
			Amount:   refund,
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("refund: %w", err)
	}

	l.emitter.Emit(event)
	return nil
}
