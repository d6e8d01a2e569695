package handler

import (
	"net/http"

	"github.com/MinjiLee-gloria/solclassis/internal/ledger"
	"github.com/MinjiLee-gloria/solclassis/internal/logic"
	"github.com/gin-gonic/gin"
)

// CampaignHandler 活动相关接口
type CampaignHandler struct {
	ldg           *ledger.Ledger
	campaignLogic *logic.CampaignLogic
}

// NewCampaignHandler 创建活动接口
func NewCampaignHandler(ldg *ledger.Ledger, campaignLogic *logic.CampaignLogic) *CampaignHandler {
	return &CampaignHandler{
		ldg:           ldg,
		campaignLogic: campaignLogic,
	}
}

// CreateCampaign 创建活动
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	creator, err := ledger.ParseAddress(req.Creator)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的创建者地址")
		return
	}
	recipient, err := ledger.ParseAddress(req.PayoutRecipient)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的收款地址")
		return
	}

	addr, err := h.ldg.CreateCampaign(c.Request.Context(), ledger.CreateCampaignParams{
		Creator:         creator,
		PayoutRecipient: recipient,
		Title:           req.Title,
		Description:     req.Description,
		Goal:            req.Goal,
		DonationUnit:    req.DonationUnit,
		EndDate:         req.EndDate,
	})
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "活动创建成功", gin.H{"address": addr.Hex()})
}

// GetCampaigns 获取活动列表
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	campaigns, err := h.campaignLogic.ListCampaigns(c.Request.Context())
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"campaigns": campaigns,
		"total":     len(campaigns),
	})
}

// GetCampaignStatus 获取单个活动状态
func (h *CampaignHandler) GetCampaignStatus(c *gin.Context) {
	addr, err := ledger.ParseAddress(c.Param("address"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动地址")
		return
	}

	snapshot, err := h.ldg.GetCampaignStatus(c.Request.Context(), addr)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"address":       snapshot.Address.Hex(),
		"creator":       snapshot.Campaign.Creator.Hex(),
		"title":         snapshot.Campaign.Title,
		"description":   snapshot.Campaign.Description,
		"goal":          snapshot.Campaign.Goal,
		"donation_unit": snapshot.Campaign.DonationUnit,
		"raised":        snapshot.Campaign.Raised,
		"end_date":      snapshot.Campaign.EndDate,
		"complete":      snapshot.Campaign.Complete,
		"failed":        snapshot.Campaign.Failed,
		"status":        snapshot.Campaign.Status(),
		"balance":       snapshot.Balance,
	})
}

// GetCampaignStats 获取活动统计信息
func (h *CampaignHandler) GetCampaignStats(c *gin.Context) {
	stats, err := h.campaignLogic.Stats(c.Request.Context())
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "", stats)
}

// EndCampaign 结束活动（截止后未达标置为失败）
func (h *CampaignHandler) EndCampaign(c *gin.Context) {
	addr, err := ledger.ParseAddress(c.Param("address"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动地址")
		return
	}

	if err := h.ldg.EndCampaign(c.Request.Context(), addr); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "活动已结束", nil)
}

// Withdraw 提现
func (h *CampaignHandler) Withdraw(c *gin.Context) {
	addr, err := ledger.ParseAddress(c.Param("address"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动地址")
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	recipient, err := ledger.ParseAddress(req.Recipient)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的收款地址")
		return
	}

	withdrawn, err := h.ldg.Withdraw(c.Request.Context(), addr, recipient)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "提现成功", gin.H{"amount": withdrawn})
}
