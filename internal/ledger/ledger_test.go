package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unit = 1_000_000 // 测试用单笔捐赠额

var (
	creator    = testAddress(0x01)
	foundation = testAddress(0x02)
	alice      = testAddress(0x0a)
	bob        = testAddress(0x0b)
)

func testAddress(b byte) Address {
	var a Address
	for i := range a {
		a[i] = b
	}
	return a
}

// recorder 记录发出的事件
type recorder struct {
	events []Event
}

func (r *recorder) Emit(event Event) {
	r.events = append(r.events, event)
}

func (r *recorder) types() []EventType {
	var out []EventType
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	ledger *Ledger
	store  *MemStore
	events *recorder
	now    time.Time
}

// newFixture 固定时钟 2025-06-01 00:00:00 UTC
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:  NewMemStore(),
		events: &recorder{},
		now:    time.Unix(1_748_736_000, 0),
	}
	f.ledger = New(f.store,
		WithClock(func() time.Time { return f.now }),
		WithEmitter(f.events),
		WithMinWithdraw(1),
	)
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *fixture) params(goal, donationUnit uint64) CreateCampaignParams {
	return CreateCampaignParams{
		Creator:         creator,
		PayoutRecipient: foundation,
		Title:           "clean water",
		Description:     "wells for the village",
		Goal:            goal,
		DonationUnit:    donationUnit,
		EndDate:         f.now.Add(24 * time.Hour).Unix(),
	}
}

// fund 充值并创建捐赠标记
func (f *fixture) fund(t *testing.T, donor, campaign Address, amount uint64) {
	t.Helper()
	require.NoError(t, f.ledger.Deposit(context.Background(), donor, amount))
	_, err := f.ledger.CreateDonationMarker(context.Background(), donor, campaign)
	require.NoError(t, err)
}

func TestCreateCampaignValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*fixture, *CreateCampaignParams)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(*fixture, *CreateCampaignParams) {},
		},
		{
			name: "goal not a multiple of unit",
			mutate: func(_ *fixture, p *CreateCampaignParams) {
				p.Goal = unit + unit/2 // 1.5x
			},
			wantErr: ErrInvalidGoalAmount,
		},
		{
			name: "zero donation unit",
			mutate: func(_ *fixture, p *CreateCampaignParams) {
				p.DonationUnit = 0
			},
			wantErr: ErrInvalidGoalAmount,
		},
		{
			name: "zero goal",
			mutate: func(_ *fixture, p *CreateCampaignParams) {
				p.Goal = 0
			},
			wantErr: ErrInvalidGoalAmount,
		},
		{
			name: "description at limit accepted",
			mutate: func(_ *fixture, p *CreateCampaignParams) {
				p.Description = string(make([]byte, MaxDescriptionLength))
			},
		},
		{
			name: "description over limit rejected",
			mutate: func(_ *fixture, p *CreateCampaignParams) {
				p.Description = string(make([]byte, MaxDescriptionLength+1))
			},
			wantErr: ErrDescriptionTooLong,
		},
		{
			name: "end date in the past",
			mutate: func(f *fixture, p *CreateCampaignParams) {
				p.EndDate = f.now.Add(-time.Hour).Unix()
			},
			wantErr: ErrEndDatePassed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			p := f.params(2*unit, unit)
			tt.mutate(f, &p)

			addr, err := f.ledger.CreateCampaign(context.Background(), p)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, f.events.events, "failed create must not emit")
				return
			}
			require.NoError(t, err)
			assert.False(t, addr.IsZero())

			snapshot, err := f.ledger.GetCampaignStatus(context.Background(), addr)
			require.NoError(t, err)
			assert.Equal(t, uint64(0), snapshot.Campaign.Raised)
			assert.False(t, snapshot.Campaign.Complete)
			assert.False(t, snapshot.Campaign.Failed)
			assert.Equal(t, []EventType{EventCampaignCreated}, f.events.types())
		})
	}
}

func TestDonateSingleUnitCompletes(t *testing.T) {
	// goal = 1 unit：一笔捐赠同时推进 raised 并置位 complete
	f := newFixture(t)
	campaign, err := f.ledger.CreateCampaign(context.Background(), f.params(unit, unit))
	require.NoError(t, err)
	f.fund(t, alice, campaign, unit)

	require.NoError(t, f.ledger.Donate(context.Background(), alice, campaign, unit))

	snapshot, err := f.ledger.GetCampaignStatus(context.Background(), campaign)
	require.NoError(t, err)
	assert.Equal(t, uint64(unit), snapshot.Campaign.Raised)
	assert.True(t, snapshot.Campaign.Complete)
	assert.Equal(t, uint64(unit), snapshot.Balance)
	assert.Equal(t, StatusComplete, snapshot.Campaign.Status())
	assert.Equal(t,
		[]EventType{EventCampaignCreated, EventDeposited, EventDonationReceived, EventCampaignCompleted},
		f.events.types())
}

func TestDonatePreconditions(t *testing.T) {
	f := newFixture(t)
	campaign, err := f.ledger.CreateCampaign(context.Background(), f.params(2*unit, unit))
	require.NoError(t, err)
	f.fund(t, alice, campaign, 10*unit)

	t.Run("wrong amount", func(t *testing.T) {
		err := f.ledger.Donate(context.Background(), alice, campaign, unit/2)
		require.ErrorIs(t, err, ErrInvalidDonationAmount)
	})

	t.Run("no marker", func(t *testing.T) {
		require.NoError(t, f.ledger.Deposit(context.Background(), bob, unit))
		err := f.ledger.Donate(context.Background(), bob, campaign, unit)
		require.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		broke := testAddress(0x0c)
		_, err := f.ledger.CreateDonationMarker(context.Background(), broke, campaign)
		require.NoError(t, err)
		err = f.ledger.Donate(context.Background(), broke, campaign, unit)
		require.ErrorIs(t, err, ErrInsufficientFunds)

		// 失败的捐赠不留任何痕迹
		snapshot, err := f.ledger.GetCampaignStatus(context.Background(), campaign)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), snapshot.Campaign.Raised)
	})

	t.Run("duplicate donation", func(t *testing.T) {
		require.NoError(t, f.ledger.Donate(context.Background(), alice, campaign, unit))
		err := f.ledger.Donate(context.Background(), alice, campaign, unit)
		require.ErrorIs(t, err, ErrAlreadyDonated)
	})

	t.Run("after deadline", func(t *testing.T) {
		f.advance(48 * time.Hour)
		_, err := f.ledger.CreateDonationMarker(context.Background(), bob, campaign)
		require.NoError(t, err)
		err = f.ledger.Donate(context.Background(), bob, campaign, unit)
		require.ErrorIs(t, err, ErrCampaignEnded)
	})
}

func TestDonateOnCompletedCampaign(t *testing.T) {
	// goal = 1 unit：alice 一笔捐满，活动立即 complete
	f := newFixture(t)
	campaign, err := f.ledger.CreateCampaign(context.Background(), f.params(unit, unit))
	require.NoError(t, err)
	f.fund(t, alice, campaign, 2*unit)
	require.NoError(t, f.ledger.Donate(context.Background(), alice, campaign, unit))

	t.Run("repeat donor gets duplicate error", func(t *testing.T) {
		// 重复捐赠的报错不随活动状态改变
		err := f.ledger.Donate(context.Background(), alice, campaign, unit)
		require.ErrorIs(t, err, ErrAlreadyDonated)
	})

	t.Run("fresh donor gets state error", func(t *testing.T) {
		f.fund(t, bob, campaign, unit)
		err := f.ledger.Donate(context.Background(), bob, campaign, unit)
		require.ErrorIs(t, err, ErrCampaignAlreadyComplete)
	})
}

func TestDuplicateMarkerRejectedByStore(t *testing.T) {
	f := newFixture(t)
	campaign, err := f.ledger.CreateCampaign(context.Background(), f.params(2*unit, unit))
	require.NoError(t, err)

	first, err := f.ledger.CreateDonationMarker(context.Background(), alice, campaign)
	require.NoError(t, err)
	assert.Equal(t, DeriveDonationAddress(alice, campaign), first)

	_, err = f.ledger.CreateDonationMarker(context.Background(), alice, campaign)
	require.ErrorIs(t, err, ErrAddressInUse)
}

func TestMarkerRequiresCampaign(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.CreateDonationMarker(context.Background(), alice, testAddress(0xff))
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func TestTwoDonorsReachGoal(t *testing.T) {
	// goal = 2 units，两个捐赠者各一笔，顺序无关，第二笔置位 complete
	f := newFixture(t)
	campaign, err := f.ledger.CreateCampaign(context.Background(), f.params(2*unit, unit))
	require.NoError(t, err)
	f.fund(t, alice, campaign, unit)
	f.fund(t, bob, campaign, unit)

	require.NoError(t, f.ledger.Donate(context.Background(), bob, campaign, unit))

	snapshot, err := f.ledger.GetCampaignStatus(context.Background(), campaign)
	require.NoError(t, err)
	assert.False(t, snapshot.Campaign.Complete, "one of two units must not complete")

	require.NoError(t, f.ledger.Donate(context.Background(), alice, campaign, unit))

	snapshot, err = f.ledger.GetCampaignStatus(context.Background(), campaign)
	require.NoError(t, err)
	assert.Equal(t, uint64(2*unit), snapshot.Campaign.Raised)
	assert.True(t, snapshot.Campaign.Complete)
	assert.Equal(t, uint64(2*unit), snapshot.Balance)
}

func TestEndCampaign(t *testing.T) {
	f := newFixture(t)
	campaign, err := f.ledger.CreateCampaign(context.Background(), f.params(2*unit, unit))
	require.NoError(t, err)
	f.fund(t, alice, campaign, unit)
	require.NoError(t, f.ledger.Donate(context.Background(), alice, campaign, unit))

	t.Run("before deadline", func(t *testing.T) {
		err := f.ledger.EndCampaign(context.Background(), campaign)
		require.ErrorIs(t, err, ErrCampaignNotEnded)
	})

	t.Run("after deadline goal unmet", func(t *testing.T) {
		f.advance(48 * time.Hour)
		require.NoError(t, f.ledger.EndCampaign(context.Background(), campaign))

		snapshot, err := f.ledger.GetCampaignStatus(context.Background(), campaign)
		require.NoError(t, err)
		assert.True(t, snapshot.Campaign.Failed)
		assert.False(t, snapshot.Campaign.Complete)
		assert.Equal(t, StatusFailed, snapshot.Campaign.Status())
	})

	t.Run("already resolved", func(t *testing.T) {
		err := f.ledger.EndCampaign(context.Background(), campaign)
		require.ErrorIs(t, err, ErrCampaignAlreadyComplete)
	})
}

func TestEndCampaignOnCompleteCampaign(t *testing.T) {
	f := newFixture(t)
	campaign, err := f.ledger.CreateCampaign(context.Background(), f.params(unit, unit))
	require.NoError(t, err)
	f.fund(t, alice, campaign, unit)
	require.NoError(t, f.ledger.Donate(context.Background(), alice, campaign, unit))

	f.advance(48 * time.Hour)
	err = f.ledger.EndCampaign(context.Background(), campaign)
	require.ErrorIs(t, err, ErrCampaignAlreadyComplete, "no-op error, not a silent success")
}

func TestRefundFlow(t *testing.T) {
	// 目标 2 units 只筹到 1：截止后置失败，捐赠者退款，第二次退款拿 no-funds
	f := newFixture(t)
	campaign, err := f.ledger.CreateCampaign(context.Background(), f.params(2*unit, unit))
	require.NoError(t, err)
	f.fund(t, alice, campaign, unit)
	require.NoError(t, f.ledger.Donate(context.Background(), alice, campaign, unit))

	t.Run("not failed yet", func(t *testing.T) {
		err := f.ledger.Refund(context.Background(), alice, campaign)
		require.ErrorIs(t, err, ErrCampaignNotFailed)
	})

	f.advance(48 * time.Hour)
	require.NoError(t, f.ledger.EndCampaign(context.Background(), campaign))

	t.Run("refund returns the unit", func(t *testing.T) {
		require.NoError(t, f.ledger.Refund(context.Background(), alice, campaign))

		balance, err := f.ledger.WalletBalance(context.Background(), alice)
		require.NoError(t, err)
		assert.Equal(t, uint64(unit), balance)

		donation, err := f.ledger.GetDonation(context.Background(), alice, campaign)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), donation.Amount)

		// raised 不回退
		snapshot, err := f.ledger.GetCampaignStatus(context.Background(), campaign)
		require.NoError(t, err)
		assert.Equal(t, uint64(unit), snapshot.Campaign.Raised)
		assert.Equal(t, uint64(0), snapshot.Balance)
	})

	t.Run("second refund fails", func(t *testing.T) {
		err := f.ledger.Refund(context.Background(), alice, campaign)
		require.ErrorIs(t, err, ErrNoFundsAvailable)
	})

	t.Run("donor without donation", func(t *testing.T) {
		_, err := f.ledger.CreateDonationMarker(context.Background(), bob, campaign)
		require.NoError(t, err)
		err = f.ledger.Refund(context.Background(), bob, campaign)
		require.ErrorIs(t, err, ErrNoFundsAvailable)
	})
}

func TestWithdraw(t *testing.T) {
	f := newFixture(t)
	campaign, err := f.ledger.CreateCampaign(context.Background(), f.params(2*unit, unit))
	require.NoError(t, err)
	f.fund(t, alice, campaign, unit)
	f.fund(t, bob, campaign, unit)
	require.NoError(t, f.ledger.Donate(context.Background(), alice, campaign, unit))

	t.Run("not complete", func(t *testing.T) {
		_, err := f.ledger.Withdraw(context.Background(), campaign, foundation)
		require.ErrorIs(t, err, ErrCampaignNotComplete)
	})

	require.NoError(t, f.ledger.Donate(context.Background(), bob, campaign, unit))

	t.Run("wrong recipient", func(t *testing.T) {
		_, err := f.ledger.Withdraw(context.Background(), campaign, alice)
		require.ErrorIs(t, err, ErrUnauthorized)

		// 资金未移动
		snapshot, err := f.ledger.GetCampaignStatus(context.Background(), campaign)
		require.NoError(t, err)
		assert.Equal(t, uint64(2*unit), snapshot.Balance)
	})

	t.Run("success releases full balance", func(t *testing.T) {
		withdrawn, err := f.ledger.Withdraw(context.Background(), campaign, foundation)
		require.NoError(t, err)
		assert.Equal(t, uint64(2*unit), withdrawn)

		balance, err := f.ledger.WalletBalance(context.Background(), foundation)
		require.NoError(t, err)
		assert.Equal(t, uint64(2*unit), balance)
	})

	t.Run("repeat withdraw bounded by empty balance", func(t *testing.T) {
		_, err := f.ledger.Withdraw(context.Background(), campaign, foundation)
		require.ErrorIs(t, err, ErrNoFundsAvailable)
	})
}

func TestWithdrawBelowMinimum(t *testing.T) {
	f := newFixture(t)
	f.ledger = New(f.store,
		WithClock(func() time.Time { return f.now }),
		WithEmitter(f.events),
		WithMinWithdraw(10*unit),
	)
	campaign, err := f.ledger.CreateCampaign(context.Background(), f.params(unit, unit))
	require.NoError(t, err)
	f.fund(t, alice, campaign, unit)
	require.NoError(t, f.ledger.Donate(context.Background(), alice, campaign, unit))

	_, err = f.ledger.Withdraw(context.Background(), campaign, foundation)
	require.ErrorIs(t, err, ErrWithdrawAmountTooSmall)
}

func TestDeposit(t *testing.T) {
	f := newFixture(t)

	require.ErrorIs(t, f.ledger.Deposit(context.Background(), alice, 0), ErrInvalidDepositAmount)

	require.NoError(t, f.ledger.Deposit(context.Background(), alice, 7))
	balance, err := f.ledger.WalletBalance(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), balance)
}
