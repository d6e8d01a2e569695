package handler

import (
	"net/http"

	"github.com/MinjiLee-gloria/solclassis/internal/ledger"
	"github.com/gin-gonic/gin"
)

// DonationHandler 捐赠相关接口
type DonationHandler struct {
	ldg *ledger.Ledger
}

// NewDonationHandler 创建捐赠接口
func NewDonationHandler(ldg *ledger.Ledger) *DonationHandler {
	return &DonationHandler{ldg: ldg}
}

// parseDonorAndCampaign 解析路径里的活动地址和请求里的捐赠者地址
func parseDonorAndCampaign(c *gin.Context, donor string) (ledger.Address, ledger.Address, bool) {
	campaign, err := ledger.ParseAddress(c.Param("address"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的活动地址")
		return ledger.Address{}, ledger.Address{}, false
	}
	donorAddr, err := ledger.ParseAddress(donor)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的捐赠者地址")
		return ledger.Address{}, ledger.Address{}, false
	}
	return donorAddr, campaign, true
}

// CreateDonationMarker 创建捐赠标记
func (h *DonationHandler) CreateDonationMarker(c *gin.Context) {
	var req CreateDonationMarkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	donor, campaign, ok := parseDonorAndCampaign(c, req.Donor)
	if !ok {
		return
	}

	addr, err := h.ldg.CreateDonationMarker(c.Request.Context(), donor, campaign)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "捐赠标记创建成功", gin.H{"address": addr.Hex()})
}

// Donate 捐赠
func (h *DonationHandler) Donate(c *gin.Context) {
	var req DonateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	donor, campaign, ok := parseDonorAndCampaign(c, req.Donor)
	if !ok {
		return
	}

	if err := h.ldg.Donate(c.Request.Context(), donor, campaign, req.Amount); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "捐赠成功", gin.H{"amount": req.Amount})
}

// Refund 退款
func (h *DonationHandler) Refund(c *gin.Context) {
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	donor, campaign, ok := parseDonorAndCampaign(c, req.Donor)
	if !ok {
		return
	}

	if err := h.ldg.Refund(c.Request.Context(), donor, campaign); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "退款成功", nil)
}

// GetDonation 查询捐赠标记，地址由 (donor, campaign) 直接重算，不做扫描
func (h *DonationHandler) GetDonation(c *gin.Context) {
	donor, campaign, ok := parseDonorAndCampaign(c, c.Param("donor"))
	if !ok {
		return
	}

	donation, err := h.ldg.GetDonation(c.Request.Context(), donor, campaign)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"address": ledger.DeriveDonationAddress(donor, campaign).Hex(),
		"donor":   donation.Donor.Hex(),
		"amount":  donation.Amount,
	})
}
