package handler

import (
	"errors"
	"net/http"

	"github.com/MinjiLee-gloria/solclassis/internal/ledger"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// LedgerErrorResponse 按错误分类映射 HTTP 状态码：
// 参数校验 400，权限 403，记录不存在 404，
// 状态/重复/资金 409，溢出 500。
func LedgerErrorResponse(c *gin.Context, err error) {
	ErrorResponse(c, ledgerErrorStatus(err), err.Error())
}

func ledgerErrorStatus(err error) int {
	switch {
	case errors.Is(err, ledger.ErrInvalidGoalAmount),
		errors.Is(err, ledger.ErrInvalidDonationAmount),
		errors.Is(err, ledger.ErrInvalidDepositAmount),
		errors.Is(err, ledger.ErrDescriptionTooLong),
		errors.Is(err, ledger.ErrEndDatePassed):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrUnauthorized),
		errors.Is(err, ledger.ErrDonorMismatch):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrCampaignEnded),
		errors.Is(err, ledger.ErrCampaignNotEnded),
		errors.Is(err, ledger.ErrCampaignNotComplete),
		errors.Is(err, ledger.ErrCampaignNotFailed),
		errors.Is(err, ledger.ErrCampaignAlreadyComplete),
		errors.Is(err, ledger.ErrAlreadyDonated),
		errors.Is(err, ledger.ErrAddressInUse),
		errors.Is(err, ledger.ErrNoFundsAvailable),
		errors.Is(err, ledger.ErrWithdrawAmountTooSmall),
		errors.Is(err, ledger.ErrInsufficientFunds):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
