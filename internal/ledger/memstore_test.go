package ledger

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreTxAtomicity(t *testing.T) {
	store := NewMemStore()
	addr := testAddress(0x30)
	boom := errors.New("boom")

	// 失败的事务不留任何修改
	err := store.ExecTx(context.Background(), func(tx Tx) error {
		require.NoError(t, tx.Create(addr, []byte("data")))
		require.NoError(t, tx.Credit(addr, 100))
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = store.ExecTx(context.Background(), func(tx Tx) error {
		_, err := tx.Get(addr)
		assert.ErrorIs(t, err, ErrRecordNotFound)
		balance, err := tx.Balance(addr)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), balance)
		return nil
	})
	require.NoError(t, err)
}

func TestMemStoreCreateDuplicate(t *testing.T) {
	store := NewMemStore()
	addr := testAddress(0x30)

	require.NoError(t, store.ExecTx(context.Background(), func(tx Tx) error {
		return tx.Create(addr, []byte("one"))
	}))

	// 跨事务重复
	err := store.ExecTx(context.Background(), func(tx Tx) error {
		return tx.Create(addr, []byte("two"))
	})
	require.ErrorIs(t, err, ErrAddressInUse)

	// 同事务内重复
	err = store.ExecTx(context.Background(), func(tx Tx) error {
		other := testAddress(0x31)
		if err := tx.Create(other, []byte("one")); err != nil {
			return err
		}
		return tx.Create(other, []byte("two"))
	})
	require.ErrorIs(t, err, ErrAddressInUse)
}

func TestMemStoreUpdateMissing(t *testing.T) {
	store := NewMemStore()
	err := store.ExecTx(context.Background(), func(tx Tx) error {
		return tx.Update(testAddress(0x30), []byte("data"))
	})
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func TestMemStoreTransfer(t *testing.T) {
	store := NewMemStore()
	from, to := testAddress(0x30), testAddress(0x31)

	err := store.ExecTx(context.Background(), func(tx Tx) error {
		require.NoError(t, tx.Credit(from, 10))

		if err := tx.Transfer(from, to, 11); !errors.Is(err, ErrInsufficientFunds) {
			t.Fatalf("want ErrInsufficientFunds, got %v", err)
		}
		require.NoError(t, tx.Transfer(from, to, 10))

		fromBalance, _ := tx.Balance(from)
		toBalance, _ := tx.Balance(to)
		assert.Equal(t, uint64(0), fromBalance)
		assert.Equal(t, uint64(10), toBalance)
		return nil
	})
	require.NoError(t, err)
}

func TestMemStoreSelfTransfer(t *testing.T) {
	store := NewMemStore()
	addr := testAddress(0x30)

	err := store.ExecTx(context.Background(), func(tx Tx) error {
		require.NoError(t, tx.Credit(addr, 10))

		// 同址转账余额不变，余额不足照样报错
		require.NoError(t, tx.Transfer(addr, addr, 10))
		balance, _ := tx.Balance(addr)
		assert.Equal(t, uint64(10), balance)

		if err := tx.Transfer(addr, addr, 11); !errors.Is(err, ErrInsufficientFunds) {
			t.Fatalf("want ErrInsufficientFunds, got %v", err)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestMemStoreCreditOverflow(t *testing.T) {
	store := NewMemStore()
	addr := testAddress(0x30)

	// 余额上限是 int64 可表示的最大值，和数据库余额列一致
	err := store.ExecTx(context.Background(), func(tx Tx) error {
		if err := tx.Credit(addr, math.MaxInt64); err != nil {
			return err
		}
		return tx.Credit(addr, 1)
	})
	require.ErrorIs(t, err, ErrOverflow)

	err = store.ExecTx(context.Background(), func(tx Tx) error {
		other := testAddress(0x31)
		return tx.Credit(other, math.MaxUint64)
	})
	require.ErrorIs(t, err, ErrOverflow)
}

func TestMemStoreForEachFiltersKind(t *testing.T) {
	store := NewMemStore()
	campaign := EncodeCampaign(&Campaign{Title: "a", Goal: unit, DonationUnit: unit})
	donation := EncodeDonation(&Donation{Donor: alice, Amount: unit})

	require.NoError(t, store.ExecTx(context.Background(), func(tx Tx) error {
		require.NoError(t, tx.Create(testAddress(0x30), campaign))
		require.NoError(t, tx.Create(testAddress(0x31), donation))
		return nil
	}))

	var kinds []Discriminator
	err := store.ExecTx(context.Background(), func(tx Tx) error {
		return tx.ForEach(CampaignDiscriminator, func(addr Address, data []byte) error {
			kind, err := RecordKind(data)
			require.NoError(t, err)
			kinds = append(kinds, kind)
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []Discriminator{CampaignDiscriminator}, kinds)
}
