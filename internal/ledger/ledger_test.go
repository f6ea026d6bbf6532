package ledger

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tripsplit-dev/tripsplit/internal/id"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestLedger(t *testing.T, names ...string) (*Ledger, []string) {
	t.Helper()
	l := New(WithIDGenerator(id.Sequential()), WithScale(0))
	ids := make([]string, len(names))
	for i, n := range names {
		p, err := l.AddParticipant(n)
		require.NoError(t, err)
		ids[i] = p.ID
	}
	return l, ids
}

func TestAddParticipant(t *testing.T) {
	l := New()

	p, err := l.AddParticipant("  Alice ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.Name)
	assert.Regexp(t, "^p_", p.ID)

	q, err := l.AddParticipant("Bob")
	require.NoError(t, err)
	assert.NotEqual(t, p.ID, q.ID)

	got := l.Participants()
	require.Len(t, got, 2)
	assert.Equal(t, "Alice", got[0].Name)
	assert.Equal(t, "Bob", got[1].Name)
}

func TestAddParticipant_EmptyName(t *testing.T) {
	l := New()
	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := l.AddParticipant(name)
		require.ErrorIs(t, err, ErrValidation, "name %q", name)
	}
	assert.Empty(t, l.Participants())
}

func TestRemoveParticipant(t *testing.T) {
	l, ids := newTestLedger(t, "A", "B", "C")

	require.NoError(t, l.RemoveParticipant(ids[1]))

	got := l.Participants()
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "C", got[1].Name)
}

func TestRemoveParticipant_NotFound(t *testing.T) {
	l, _ := newTestLedger(t, "A")
	err := l.RemoveParticipant("p_missing")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, l.Participants(), 1)
}

func TestRemoveParticipant_Referenced(t *testing.T) {
	l, ids := newTestLedger(t, "A", "B", "C")
	_, err := l.AddTransaction("dinner", dec("100"), ids[0], []string{ids[0], ids[1]})
	require.NoError(t, err)

	beforeP := l.Participants()
	beforeT := l.Transactions()

	// Payer.
	err = l.RemoveParticipant(ids[0])
	require.ErrorIs(t, err, ErrConstraint)

	// Split member only.
	err = l.RemoveParticipant(ids[1])
	require.ErrorIs(t, err, ErrConstraint)

	assert.Equal(t, beforeP, l.Participants())
	assert.Equal(t, beforeT, l.Transactions())

	// Unreferenced member can still go.
	require.NoError(t, l.RemoveParticipant(ids[2]))
}

func TestRemoveParticipant_AfterTransactionRemoved(t *testing.T) {
	l, ids := newTestLedger(t, "A", "B")
	tx, err := l.AddTransaction("taxi", dec("1200"), ids[0], []string{ids[0], ids[1]})
	require.NoError(t, err)

	require.ErrorIs(t, l.RemoveParticipant(ids[1]), ErrConstraint)
	require.NoError(t, l.RemoveTransaction(tx.ID))
	require.NoError(t, l.RemoveParticipant(ids[1]))
}

func TestAddTransaction(t *testing.T) {
	created := time.Date(2025, 4, 2, 19, 30, 0, 0, time.UTC)
	l := New(WithIDGenerator(id.Sequential()), WithScale(0), WithClock(func() time.Time { return created }))
	a, err := l.AddParticipant("A")
	require.NoError(t, err)
	b, err := l.AddParticipant("B")
	require.NoError(t, err)

	tx, err := l.AddTransaction("", dec("3000"), a.ID, []string{b.ID, a.ID})
	require.NoError(t, err)
	assert.Equal(t, "tx_3", tx.ID)
	assert.Equal(t, uint64(1), tx.Seq)
	assert.Empty(t, tx.Description, "empty description is allowed")
	assert.True(t, tx.Amount.Equal(dec("3000")))
	assert.Equal(t, a.ID, tx.PaidBy)
	assert.Equal(t, []string{b.ID, a.ID}, tx.SplitAmong, "split order is preserved")
	assert.Equal(t, created, tx.CreatedAt)

	got, err := l.Transaction(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx, got)
}

func TestAddTransaction_ZeroAmount(t *testing.T) {
	l, ids := newTestLedger(t, "A")
	_, err := l.AddTransaction("free tea", decimal.Zero, ids[0], ids)
	require.NoError(t, err)
}

func TestAddTransaction_Errors(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		payer  int // index into ids, -1 = unknown
		split  []int
		want   error
	}{
		{"negative amount", "-1", 0, []int{0, 1}, ErrValidation},
		{"finer than minor unit", "10.5", 0, []int{0, 1}, ErrValidation},
		{"empty split", "10", 0, nil, ErrValidation},
		{"duplicate in split", "10", 0, []int{0, 1, 0}, ErrValidation},
		{"unknown payer", "10", -1, []int{0, 1}, ErrNotFound},
		{"unknown split member", "10", 0, []int{0, -1}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, ids := newTestLedger(t, "A", "B")
			pick := func(i int) string {
				if i < 0 {
					return "p_ghost"
				}
				return ids[i]
			}
			split := make([]string, len(tt.split))
			for i, s := range tt.split {
				split[i] = pick(s)
			}

			_, err := l.AddTransaction("x", dec(tt.amount), pick(tt.payer), split)
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, l.Transactions(), "failed add must not append")
		})
	}
}

func TestAddTransaction_SplitIsCopied(t *testing.T) {
	l, ids := newTestLedger(t, "A", "B")
	split := []string{ids[0], ids[1]}
	tx, err := l.AddTransaction("x", dec("10"), ids[0], split)
	require.NoError(t, err)

	split[0] = "p_ghost"
	tx.SplitAmong[1] = "p_ghost"

	stored, err := l.Transaction(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{ids[0], ids[1]}, stored.SplitAmong)
}

func TestSeqStrictlyIncreasing(t *testing.T) {
	l, ids := newTestLedger(t, "A", "B")

	first, err := l.AddTransaction("1", dec("10"), ids[0], ids)
	require.NoError(t, err)
	second, err := l.AddTransaction("2", dec("10"), ids[0], ids)
	require.NoError(t, err)
	require.NoError(t, l.RemoveTransaction(second.ID))
	third, err := l.AddTransaction("3", dec("10"), ids[0], ids)
	require.NoError(t, err)

	assert.Less(t, first.Seq, second.Seq)
	assert.Less(t, second.Seq, third.Seq, "sequence numbers are never reused")
}

func TestRemoveTransaction(t *testing.T) {
	l, ids := newTestLedger(t, "A", "B")
	t1, err := l.AddTransaction("1", dec("10"), ids[0], ids)
	require.NoError(t, err)
	t2, err := l.AddTransaction("2", dec("20"), ids[1], ids)
	require.NoError(t, err)
	t3, err := l.AddTransaction("3", dec("30"), ids[0], ids)
	require.NoError(t, err)

	require.NoError(t, l.RemoveTransaction(t2.ID))

	got := l.Transactions()
	require.Len(t, got, 2)
	assert.Equal(t, t1.ID, got[0].ID)
	assert.Equal(t, t3.ID, got[1].ID)

	err = l.RemoveTransaction(t2.ID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, l.Transactions(), 2)
}

func TestListsAreSnapshots(t *testing.T) {
	l, ids := newTestLedger(t, "A", "B")
	_, err := l.AddTransaction("x", dec("10"), ids[0], ids)
	require.NoError(t, err)

	ps := l.Participants()
	ps[0].Name = "Mallory"
	txs := l.Transactions()
	txs[0].SplitAmong[0] = "p_ghost"
	txs[0].Amount = dec("999")

	assert.Equal(t, "A", l.Participants()[0].Name)
	assert.Equal(t, ids[0], l.Transactions()[0].SplitAmong[0])
	assert.True(t, l.Transactions()[0].Amount.Equal(dec("10")))
}

func TestListIdempotent(t *testing.T) {
	l, ids := newTestLedger(t, "A", "B", "C")
	_, err := l.AddTransaction("x", dec("100"), ids[0], ids)
	require.NoError(t, err)
	_, err = l.AddTransaction("y", dec("50"), ids[2], ids[1:])
	require.NoError(t, err)

	assert.Equal(t, l.Transactions(), l.Transactions())
	assert.Equal(t, l.Participants(), l.Participants())
	assert.Equal(t, l.Snapshot(), l.Snapshot())
}

func TestLookups(t *testing.T) {
	l, ids := newTestLedger(t, "Alice", "Bob")

	p, err := l.Participant(ids[1])
	require.NoError(t, err)
	assert.Equal(t, "Bob", p.Name)

	p, err = l.ParticipantByName(" Alice ")
	require.NoError(t, err)
	assert.Equal(t, ids[0], p.ID)

	_, err = l.Participant("p_nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = l.ParticipantByName("Carol")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = l.Transaction("tx_nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshot(t *testing.T) {
	l, ids := newTestLedger(t, "A", "B")
	_, err := l.AddTransaction("x", dec("10"), ids[0], ids)
	require.NoError(t, err)

	snap := l.Snapshot()
	assert.Equal(t, int32(0), snap.Scale)
	assert.Len(t, snap.Participants, 2)
	assert.Len(t, snap.Transactions, 1)

	_, err = l.AddTransaction("y", dec("10"), ids[1], ids)
	require.NoError(t, err)
	assert.Len(t, snap.Transactions, 1, "snapshot is not affected by later mutation")
}

func TestDefaultScale(t *testing.T) {
	l := New()
	assert.Equal(t, DefaultScale, l.Scale())

	a, err := l.AddParticipant("A")
	require.NoError(t, err)
	_, err = l.AddTransaction("x", dec("10.25"), a.ID, []string{a.ID})
	require.NoError(t, err)
	_, err = l.AddTransaction("x", dec("10.255"), a.ID, []string{a.ID})
	require.ErrorIs(t, err, ErrValidation)
}

func TestErrorKinds(t *testing.T) {
	l, _ := newTestLedger(t)
	err := l.RemoveTransaction("tx_1")

	var lerr *Error
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, "remove transaction", lerr.Op)
	assert.Equal(t, ErrNotFound, lerr.Kind)
	assert.Contains(t, err.Error(), "tx_1")
	assert.True(t, IsUserError(err))

	inv := Invariant("compute balances", "sum is %s", "3")
	assert.ErrorIs(t, inv, ErrInvariant)
	assert.False(t, IsUserError(inv))
	assert.False(t, IsUserError(fmt.Errorf("wrapped: %w", inv)))
	assert.True(t, IsUserError(fmt.Errorf("wrapped: %w", err)))
}

func TestLogsMutations(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := New(WithLogger(zap.New(core)), WithIDGenerator(id.Sequential()))

	a, err := l.AddParticipant("A")
	require.NoError(t, err)
	tx, err := l.AddTransaction("x", dec("5"), a.ID, []string{a.ID})
	require.NoError(t, err)
	require.NoError(t, l.RemoveTransaction(tx.ID))

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "participant added", entries[0].Message)
	assert.Equal(t, a.ID, entries[0].ContextMap()["participant_id"])
	assert.Equal(t, "transaction added", entries[1].Message)
	assert.Equal(t, tx.ID, entries[1].ContextMap()["transaction_id"])
	assert.Equal(t, "transaction removed", entries[2].Message)
}

func TestConcurrentMutation(t *testing.T) {
	l := New()
	a, err := l.AddParticipant("A")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				p, err := l.AddParticipant("guest")
				assert.NoError(t, err)
				_, err = l.AddTransaction("round", dec("3"), a.ID, []string{a.ID, p.ID})
				assert.NoError(t, err)
				_ = l.Snapshot()
			}
		}()
	}
	wg.Wait()

	txs := l.Transactions()
	require.Len(t, txs, 200)
	assert.Len(t, l.Participants(), 201)
	for i := 1; i < len(txs); i++ {
		assert.Less(t, txs[i-1].Seq, txs[i].Seq)
	}
}
