package ledger

import (
	"context"
	"fmt"
)

// EndCampaign 截止后把未达标的活动置为失败。
// 核心没有定时器，这个转换只有在外部协作方（运维定时任务）调用时才发生；
// 已经达标或失败的活动返回 ErrCampaignAlreadyComplete，调用方应先查状态。
func (l *Ledger) EndCampaign(ctx context.Context, campaign Address) error {
	now := l.clock()

	var event Event
	err := l.store.ExecTx(ctx, func(tx Tx) error {
		c, err := loadCampaign(tx, campaign)
		if err != nil {
			return err
		}
		if now.Unix() < c.EndDate {
			return ErrCampaignNotEnded
		}
		if c.Complete || c.Failed {
			return ErrCampaignAlreadyComplete
		}

		c.Failed = true
		event = Event{Type: EventCampaignFailed, Campaign: campaign, Raised: c.Raised}
		return tx.Update(campaign, EncodeCampaign(c))
	})
	if err != nil {
		return fmt.Errorf("end campaign: %w", err)
	}

	l.emitter.Emit(event)
	return nil
}
