package handler

import (
	"net/http"

	"github.com/MinjiLee-gloria/solclassis/internal/ledger"
	"github.com/gin-gonic/gin"
)

// WalletHandler 钱包余额接口
type WalletHandler struct {
	ldg *ledger.Ledger
}

// NewWalletHandler 创建钱包接口
func NewWalletHandler(ldg *ledger.Ledger) *WalletHandler {
	return &WalletHandler{ldg: ldg}
}

// Deposit 充值（管理接口，资金入口）
func (h *WalletHandler) Deposit(c *gin.Context) {
	addr, err := ledger.ParseAddress(c.Param("address"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的钱包地址")
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.ldg.Deposit(c.Request.Context(), addr, req.Amount); err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "充值成功", gin.H{"amount": req.Amount})
}

// GetBalance 查询余额
func (h *WalletHandler) GetBalance(c *gin.Context) {
	addr, err := ledger.ParseAddress(c.Param("address"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的钱包地址")
		return
	}

	balance, err := h.ldg.WalletBalance(c.Request.Context(), addr)
	if err != nil {
		LedgerErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"address": addr.Hex(),
		"balance": balance,
	})
}
