package handler

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// CreateCampaignRequest 创建活动请求
type CreateCampaignRequest struct {
	Creator         string `json:"creator" binding:"required"`
	PayoutRecipient string `json:"payout_recipient" binding:"required"`
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	Goal            uint64 `json:"goal" binding:"required"`
	DonationUnit    uint64 `json:"donation_unit" binding:"required"`
	EndDate         int64  `json:"end_date" binding:"required"`
}

// CreateDonationMarkerRequest 创建捐赠标记请求
type CreateDonationMarkerRequest struct {
	Donor string `json:"donor" binding:"required"`
}

// DonateRequest 捐赠请求
type DonateRequest struct {
	Donor  string `json:"donor" binding:"required"`
	Amount uint64 `json:"amount" binding:"required"`
}

// RefundRequest 退款请求
type RefundRequest struct {
	Donor string `json:"donor" binding:"required"`
}

// WithdrawRequest 提现请求
type WithdrawRequest struct {
	Recipient string `json:"recipient" binding:"required"`
}

// DepositRequest 充值请求
type DepositRequest struct {
	Amount uint64 `json:"amount" binding:"required"`
}
