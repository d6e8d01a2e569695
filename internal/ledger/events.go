package ledger

// 每条成功指令对外发布的结构化事实，读侧据此失效缓存。
// 事件只在事务提交之后发出，回滚的指令不产生事件。

// EventType 事件类型
type EventType string

const (
	EventCampaignCreated   EventType = "campaign_created"
	EventDonationReceived  EventType = "donation_received"
	EventCampaignCompleted EventType = "campaign_completed"
	EventCampaignFailed    EventType = "campaign_failed"
	EventRefundProcessed   EventType = "refund_processed"
	EventDeposited         EventType = "deposited"
)

// Event 已发生的账本事实
type Event struct {
	Type     EventType `json:"type"`
	Campaign Address   `json:"campaign"`
	Donor    Address   `json:"donor"`
	Title    string    `json:"title,omitempty"`
	Goal     uint64    `json:"goal,omitempty"`
	Raised   uint64    `json:"raised,omitempty"`
	Amount   uint64    `json:"amount,omitempty"`
}

// Emitter 事件出口，由外部注入
type Emitter interface {
	Emit(event Event)
}

// EmitterFunc 函数式 Emitter
type EmitterFunc func(event Event)

// Emit 实现 Emitter
func (f EmitterFunc) Emit(event Event) {
	f(event)
}

// NopEmitter 丢弃全部事件
func NopEmitter() Emitter {
	return EmitterFunc(func(Event) {})
}
