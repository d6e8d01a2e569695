package logic

import (
	"context"
	"fmt"
	"sort"

	"github.com/MinjiLee-gloria/solclassis/internal/ledger"
)

// CampaignLogic 读侧业务逻辑：枚举账本记录、按类型标签解码、投影进度。
// 写路径不经过这里，全部走 ledger 的指令处理器。
type CampaignLogic struct {
	store ledger.Store
}

// NewCampaignLogic 创建读侧逻辑
func NewCampaignLogic(store ledger.Store) *CampaignLogic {
	return &CampaignLogic{store: store}
}

// CampaignView 列表投影
type CampaignView struct {
	Address      ledger.Address `json:"address"`
	Creator      ledger.Address `json:"creator"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Goal         uint64         `json:"goal"`
	DonationUnit uint64         `json:"donation_unit"`
	Raised       uint64         `json:"raised"`
	EndDate      int64          `json:"end_date"`
	Status       ledger.Status  `json:"status"`
	Progress     float64        `json:"progress"` // raised / goal
}

// ListCampaigns 枚举全部 Campaign 记录并解码。
// 记录靠类型标签区分，Donation 的字节在遍历时就被过滤掉了。
func (l *CampaignLogic) ListCampaigns(ctx context.Context) ([]CampaignView, error) {
	var views []CampaignView
	err := l.store.ExecTx(ctx, func(tx ledger.Tx) error {
		return tx.ForEach(ledger.CampaignDiscriminator, func(addr ledger.Address, data []byte) error {
			c, err := ledger.DecodeCampaign(data)
			if err != nil {
				return fmt.Errorf("campaign %s: %w", addr, err)
			}
			views = append(views, newCampaignView(addr, c))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("获取活动列表失败: %w", err)
	}

	// 遍历顺序不稳定，按截止时间排序
	sort.Slice(views, func(i, j int) bool {
		if views[i].EndDate != views[j].EndDate {
			return views[i].EndDate < views[j].EndDate
		}
		return views[i].Address.Hex() < views[j].Address.Hex()
	})
	return views, nil
}

// ExpiredActive 截止时间已过但仍是 Active 的活动地址，调度器据此触发 EndCampaign
func (l *CampaignLogic) ExpiredActive(ctx context.Context, now int64) ([]ledger.Address, error) {
	var expired []ledger.Address
	err := l.store.ExecTx(ctx, func(tx ledger.Tx) error {
		return tx.ForEach(ledger.CampaignDiscriminator, func(addr ledger.Address, data []byte) error {
			c, err := ledger.DecodeCampaign(data)
			if err != nil {
				return fmt.Errorf("campaign %s: %w", addr, err)
			}
			if !c.Complete && !c.Failed && now >= c.EndDate {
				expired = append(expired, addr)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("获取过期活动失败: %w", err)
	}
	return expired, nil
}

// Stats 全局统计
func (l *CampaignLogic) Stats(ctx context.Context) (map[string]interface{}, error) {
	var total, active, complete, failed int
	var totalRaised uint64

	err := l.store.ExecTx(ctx, func(tx ledger.Tx) error {
		return tx.ForEach(ledger.CampaignDiscriminator, func(addr ledger.Address, data []byte) error {
			c, err := ledger.DecodeCampaign(data)
			if err != nil {
				return fmt.Errorf("campaign %s: %w", addr, err)
			}
			total++
			switch c.Status() {
			case ledger.StatusComplete:
				complete++
			case ledger.StatusFailed:
				failed++
			default:
				active++
			}
			totalRaised += c.Raised
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("获取活动统计失败: %w", err)
	}

	return map[string]interface{}{
		"totalCampaigns":    total,
		"activeCampaigns":   active,
		"completeCampaigns": complete,
		"failedCampaigns":   failed,
		"totalRaised":       fmt.Sprintf("%d", totalRaised),
	}, nil
}

func newCampaignView(addr ledger.Address, c *ledger.Campaign) CampaignView {
	progress := float64(0)
	if c.Goal > 0 {
		progress = float64(c.Raised) / float64(c.Goal)
	}
	return CampaignView{
		Address:      addr,
		Creator:      c.Creator,
		Title:        c.Title,
		Description:  c.Description,
		Goal:         c.Goal,
		DonationUnit: c.DonationUnit,
		Raised:       c.Raised,
		EndDate:      c.EndDate,
		Status:       c.Status(),
		Progress:     progress,
	}
}
