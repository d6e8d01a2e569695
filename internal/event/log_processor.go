package event

import (
	"github.com/MinjiLee-gloria/solclassis/internal/ledger"
	"github.com/MinjiLee-gloria/solclassis/internal/logger"
)

// LogProcessor 把账本事件写进日志，默认注册
type LogProcessor struct{}

// NewLogProcessor 创建日志处理器
func NewLogProcessor() *LogProcessor {
	return &LogProcessor{}
}

// Name 实现 Processor
func (p *LogProcessor) Name() string {
	return "log"
}

// Process 实现 Processor
func (p *LogProcessor) Process(event ledger.Event) error {
	switch event.Type {
	case ledger.EventCampaignCreated:
		logger.Info("Campaign %s created: %q goal=%d", event.Campaign, event.Title, event.Goal)
	case ledger.EventDonationReceived:
		logger.Info("Donation of %d received on campaign %s from %s", event.Amount, event.Campaign, event.Donor)
	case ledger.EventCampaignCompleted:
		logger.Info("Campaign %s completed with raised=%d", event.Campaign, event.Raised)
	case ledger.EventCampaignFailed:
		logger.Info("Campaign %s failed with raised=%d", event.Campaign, event.Raised)
	case ledger.EventRefundProcessed:
		logger.Info("Refund of %d processed on campaign %s for %s", event.Amount, event.Campaign, event.Donor)
	case ledger.EventDeposited:
		logger.Info("Deposited %d to wallet %s", event.Amount, event.Donor)
	default:
		logger.Warn("Unknown event type: %s", event.Type)
	}
	return nil
}
