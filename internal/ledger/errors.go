package ledger

import "errors"

// 指令错误码，按五类划分：
// 参数校验 / 状态违例 / 权限违例 / 重复操作 / 资源违例。
// 每个错误都表示指令不该在当前状态下被提交，账本本身保持有效。
var (
	// ErrOverflow 算术溢出
	ErrOverflow = errors.New("overflow error occurred")
	// ErrCampaignEnded 活动已过截止时间，不再接受捐赠
	ErrCampaignEnded = errors.New("the campaign has already ended")
	// ErrCampaignNotComplete 活动未达标，不能提现
	ErrCampaignNotComplete = errors.New("the campaign has not reached its goal")
	// ErrNoFundsAvailable 无可提现或可退款资金
	ErrNoFundsAvailable = errors.New("no funds available for withdrawal or refund")
	// ErrInvalidDonationAmount 捐赠金额不等于活动的单笔捐赠额
	ErrInvalidDonationAmount = errors.New("invalid donation amount")
	// ErrDescriptionTooLong 描述超长
	ErrDescriptionTooLong = errors.New("campaign description is too long")
	// ErrWithdrawAmountTooSmall 提现金额过小
	ErrWithdrawAmountTooSmall = errors.New("withdrawal amount is too small")
	// ErrInvalidGoalAmount 目标金额非法（非正数或不是单笔捐赠额的整数倍）
	ErrInvalidGoalAmount = errors.New("invalid goal amount")
	// ErrAlreadyDonated 该捐赠者已有未退款的捐赠
	ErrAlreadyDonated = errors.New("you have already donated to this campaign")
	// ErrCampaignNotFailed 活动未失败，不能退款
	ErrCampaignNotFailed = errors.New("the campaign has not failed")
	// ErrCampaignNotEnded 未到截止时间，不能结束活动
	ErrCampaignNotEnded = errors.New("the campaign cannot be ended before its end date")
	// ErrCampaignAlreadyComplete 活动已经达标或失败
	ErrCampaignAlreadyComplete = errors.New("the campaign is already complete or failed")
	// ErrEndDatePassed 创建时截止时间不在未来
	ErrEndDatePassed = errors.New("the campaign end date must be in the future")
	// ErrUnauthorized 调用者声明的账户与记录绑定的身份不符
	ErrUnauthorized = errors.New("account does not match the one recorded on the campaign")
	// ErrDonorMismatch 捐赠标记上的捐赠者与调用者不符
	ErrDonorMismatch = errors.New("donation record does not belong to this donor")
	// ErrInvalidDepositAmount 充值金额非法
	ErrInvalidDepositAmount = errors.New("invalid deposit amount")

	// 存储层错误，由 Store 实现返回
	// ErrAddressInUse 地址已被占用，重复创建被存储层拒绝
	ErrAddressInUse = errors.New("a record already exists at this address")
	// ErrRecordNotFound 记录不存在
	ErrRecordNotFound = errors.New("record not found")
	// ErrInsufficientFunds 余额不足
	ErrInsufficientFunds = errors.New("insufficient funds for transfer")
)
