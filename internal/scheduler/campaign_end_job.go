package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/MinjiLee-gloria/solclassis/internal/config"
	"github.com/MinjiLee-gloria/solclassis/internal/ledger"
	"github.com/MinjiLee-gloria/solclassis/internal/logger"
	"github.com/MinjiLee-gloria/solclassis/internal/logic"
	"github.com/go-co-op/gocron/v2"
)

// CampaignEndJob 扫描截止时间已过仍在进行中的活动并逐个调用 EndCampaign。
// 核心只在被调用时推进状态；两次扫描之间活动停留在"逻辑上已过期
// 但仍 Active"的状态，这是设计内的行为。
type CampaignEndJob struct {
	ldg    *ledger.Ledger
	logic  *logic.CampaignLogic
	config *config.Config
}

// NewCampaignEndJob 创建活动结束任务
func NewCampaignEndJob(ldg *ledger.Ledger, campaignLogic *logic.CampaignLogic, cfg *config.Config) *CampaignEndJob {
	return &CampaignEndJob{
		ldg:    ldg,
		logic:  campaignLogic,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *CampaignEndJob) GetName() string {
	return "campaign_end_sweeper"
}

// GetSchedule 获取调度配置
func (j *CampaignEndJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行任务
func (j *CampaignEndJob) Execute() {
	ctx := context.Background()
	now := time.Now().Unix()

	expired, err := j.logic.ExpiredActive(ctx, now)
	if err != nil {
		logger.Error("Failed to fetch expired campaigns: %v", err)
		return
	}
	if len(expired) == 0 {
		return
	}

	endedCount := 0
	for _, addr := range expired {
		if err := j.ldg.EndCampaign(ctx, addr); err != nil {
			// 扫描和结束之间有捐赠达标的活动会拿到该错误，属正常竞争
			if errors.Is(err, ledger.ErrCampaignAlreadyComplete) {
				logger.Info("Campaign %s resolved before sweep, skipping", addr)
				continue
			}
			logger.Error("Failed to end campaign %s: %v", addr, err)
			continue
		}
		logger.Info("Campaign %s marked as failed after deadline", addr)
		endedCount++
	}

	logger.Info("Campaign end sweep completed. Ended %d of %d expired campaigns", endedCount, len(expired))
}
