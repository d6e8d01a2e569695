package ledger

import "context"

// Store 账本存储接口，由外部注入，指令处理器不持有任何隐藏状态。
// 一次 ExecTx 内的全部修改要么全部提交，要么全部丢弃；
// 同一记录上的操作由存储实现串行化。
type Store interface {
	// ExecTx 在一个事务里执行 fn，fn 返回错误则整个事务回滚
	ExecTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx 一次事务内可用的操作
type Tx interface {
	// Create 在 addr 处创建记录，地址已存在返回 ErrAddressInUse
	Create(addr Address, data []byte) error
	// Get 读取记录，不存在返回 ErrRecordNotFound
	Get(addr Address) ([]byte, error)
	// Update 覆写已存在的记录，不存在返回 ErrRecordNotFound
	Update(addr Address, data []byte) error
	// ForEach 按类型标签遍历全部记录，fn 返回错误则中止
	ForEach(kind Discriminator, fn func(addr Address, data []byte) error) error

	// Balance 查询地址的 native-unit 余额，未知地址余额为 0
	Balance(addr Address) (uint64, error)
	// Credit 给地址入账，溢出返回 ErrOverflow
	Credit(addr Address, amount uint64) error
	// Transfer 余额划转，from 余额不足返回 ErrInsufficientFunds
	Transfer(from, to Address, amount uint64) error
}
