package logic

import (
	"context"
	"testing"
	"time"

	"github.com/MinjiLee-gloria/solclassis/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unit = 1_000_000

func addr(b byte) ledger.Address {
	var a ledger.Address
	for i := range a {
		a[i] = b
	}
	return a
}

type env struct {
	ledger *ledger.Ledger
	logic  *CampaignLogic
	now    time.Time
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := ledger.NewMemStore()
	e := &env{now: time.Unix(1_748_736_000, 0)}
	e.ledger = ledger.New(store,
		ledger.WithClock(func() time.Time { return e.now }),
		ledger.WithMinWithdraw(1),
	)
	e.logic = NewCampaignLogic(store)
	return e
}

func (e *env) createCampaign(t *testing.T, title string, goal uint64, endIn time.Duration) ledger.Address {
	t.Helper()
	campaign, err := e.ledger.CreateCampaign(context.Background(), ledger.CreateCampaignParams{
		Creator:         addr(0x01),
		PayoutRecipient: addr(0x02),
		Title:           title,
		Goal:            goal,
		DonationUnit:    unit,
		EndDate:         e.now.Add(endIn).Unix(),
	})
	require.NoError(t, err)
	return campaign
}

func TestListCampaigns(t *testing.T) {
	e := newEnv(t)

	first := e.createCampaign(t, "first", 2*unit, time.Hour)
	second := e.createCampaign(t, "second", 4*unit, 2*time.Hour)

	donor := addr(0x0a)
	require.NoError(t, e.ledger.Deposit(context.Background(), donor, unit))
	_, err := e.ledger.CreateDonationMarker(context.Background(), donor, first)
	require.NoError(t, err)
	require.NoError(t, e.ledger.Donate(context.Background(), donor, first, unit))

	views, err := e.logic.ListCampaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2, "donation markers must not show up as campaigns")

	// 按截止时间排序
	assert.Equal(t, first, views[0].Address)
	assert.Equal(t, second, views[1].Address)

	assert.Equal(t, "first", views[0].Title)
	assert.Equal(t, uint64(unit), views[0].Raised)
	assert.InDelta(t, 0.5, views[0].Progress, 1e-9)
	assert.Equal(t, ledger.StatusActive, views[0].Status)
	assert.Equal(t, float64(0), views[1].Progress)
}

func TestExpiredActive(t *testing.T) {
	e := newEnv(t)

	short := e.createCampaign(t, "short", 2*unit, time.Hour)
	long := e.createCampaign(t, "long", 2*unit, 48*time.Hour)
	funded := e.createCampaign(t, "funded", unit, time.Hour)

	donor := addr(0x0a)
	require.NoError(t, e.ledger.Deposit(context.Background(), donor, unit))
	_, err := e.ledger.CreateDonationMarker(context.Background(), donor, funded)
	require.NoError(t, err)
	require.NoError(t, e.ledger.Donate(context.Background(), donor, funded, unit))

	now := e.now.Add(2 * time.Hour).Unix()
	expired, err := e.logic.ExpiredActive(context.Background(), now)
	require.NoError(t, err)

	// 只有 short：long 未到期，funded 已达标
	require.Len(t, expired, 1)
	assert.Equal(t, short, expired[0])
	assert.NotContains(t, expired, long)
}

func TestStats(t *testing.T) {
	e := newEnv(t)

	e.createCampaign(t, "active", 2*unit, time.Hour)
	done := e.createCampaign(t, "done", unit, time.Hour)

	donor := addr(0x0a)
	require.NoError(t, e.ledger.Deposit(context.Background(), donor, unit))
	_, err := e.ledger.CreateDonationMarker(context.Background(), donor, done)
	require.NoError(t, err)
	require.NoError(t, e.ledger.Donate(context.Background(), donor, done, unit))

	stats, err := e.logic.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats["totalCampaigns"])
	assert.Equal(t, 1, stats["activeCampaigns"])
	assert.Equal(t, 1, stats["completeCampaigns"])
	assert.Equal(t, 0, stats["failedCampaigns"])
	assert.Equal(t, "1000000", stats["totalRaised"])
}
