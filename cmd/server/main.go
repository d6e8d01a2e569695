package main

import (
	"github.com/MinjiLee-gloria/solclassis/internal/config"
	"github.com/MinjiLee-gloria/solclassis/internal/event"
	"github.com/MinjiLee-gloria/solclassis/internal/ledger"
	"github.com/MinjiLee-gloria/solclassis/internal/logger"
	"github.com/MinjiLee-gloria/solclassis/internal/logic"
	"github.com/MinjiLee-gloria/solclassis/internal/repository"
	"github.com/MinjiLee-gloria/solclassis/internal/router"
	"github.com/MinjiLee-gloria/solclassis/internal/scheduler"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if err := logger.Setup(cfg.Log.Level, cfg.Log.Output, cfg.Log.File); err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := repository.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化事件分发器
	dispatcher, err := event.NewDispatcher(db, cfg.Ledger.PoolSize)
	if err != nil {
		logger.Fatal("Failed to initialize event dispatcher: %v", err)
	}
	dispatcher.Register(event.NewLogProcessor())
	defer dispatcher.Stop()

	// 初始化账本核心
	store := repository.NewGormStore(db)
	ldg := ledger.New(store,
		ledger.WithEmitter(dispatcher),
		ledger.WithMinWithdraw(cfg.Ledger.MinWithdraw),
	)
	campaignLogic := logic.NewCampaignLogic(store)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(ldg, campaignLogic)

	// 启动定时任务
	manager := scheduler.Start(ldg, campaignLogic, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
