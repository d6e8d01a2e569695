package router

import (
	"github.com/MinjiLee-gloria/solclassis/internal/handler"
	"github.com/MinjiLee-gloria/solclassis/internal/ledger"
	"github.com/MinjiLee-gloria/solclassis/internal/logic"
	"github.com/gin-gonic/gin"
)

func Setup(ldg *ledger.Ledger, campaignLogic *logic.CampaignLogic) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "solclassis",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 活动相关路由
		campaignHandler := handler.NewCampaignHandler(ldg, campaignLogic)
		donationHandler := handler.NewDonationHandler(ldg)
		campaigns := v1.Group("/campaigns")
		{
			campaigns.POST("", campaignHandler.CreateCampaign)
			campaigns.GET("", campaignHandler.GetCampaigns)
			campaigns.GET("/stats", campaignHandler.GetCampaignStats)
			campaigns.GET("/:address", campaignHandler.GetCampaignStatus)
			campaigns.POST("/:address/end", campaignHandler.EndCampaign)
			campaigns.POST("/:address/withdraw", campaignHandler.Withdraw)
			campaigns.POST("/:address/donations", donationHandler.CreateDonationMarker)
			campaigns.POST("/:address/donations/donate", donationHandler.Donate)
			campaigns.POST("/:address/donations/refund", donationHandler.Refund)
			campaigns.GET("/:address/donations/:donor", donationHandler.GetDonation)
		}

		// 钱包相关路由
		walletHandler := handler.NewWalletHandler(ldg)
		wallets := v1.Group("/wallets")
		{
			wallets.POST("/:address/deposit", walletHandler.Deposit)
			wallets.GET("/:address", walletHandler.GetBalance)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
