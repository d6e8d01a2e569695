package scheduler

import (
	"github.com/MinjiLee-gloria/solclassis/internal/config"
	"github.com/MinjiLee-gloria/solclassis/internal/ledger"
	"github.com/MinjiLee-gloria/solclassis/internal/logger"
	"github.com/MinjiLee-gloria/solclassis/internal/logic"
	"github.com/go-co-op/gocron/v2"
)

// Manager 任务管理器。
// 账本核心不会自己结束活动，到期失败的转换全靠这里的定时任务触发。
type Manager struct {
	scheduler gocron.Scheduler
	ldg       *ledger.Ledger
	logic     *logic.CampaignLogic
	config    *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(ldg *ledger.Ledger, campaignLogic *logic.CampaignLogic, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler: s,
		ldg:       ldg,
		logic:     campaignLogic,
		config:    cfg,
	}
}

// Start 启动任务管理器
func Start(ldg *ledger.Ledger, campaignLogic *logic.CampaignLogic, cfg *config.Config) *Manager {
	manager := NewManager(ldg, campaignLogic, cfg)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	// 注册活动结束任务
	m.RegisterCampaignEndJob()
}

// RegisterCampaignEndJob 注册活动结束任务
func (m *Manager) RegisterCampaignEndJob() {
	job := NewCampaignEndJob(m.ldg, m.logic, m.config)

	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
