package ledger

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tripsplit-dev/tripsplit/internal/id"
	"github.com/tripsplit-dev/tripsplit/internal/model"
	"github.com/tripsplit-dev/tripsplit/internal/money"
)

// Ledger owns a trip's participants and shared expenses. All mutation goes
// through its methods, which enforce that every transaction references live
// participants. Safe for concurrent use.
type Ledger struct {
	mu           sync.RWMutex
	participants []model.Participant
	transactions []model.Transaction
	lastSeq      uint64

	scale int32
	newID id.Generator
	now   func() time.Time
	log   *zap.Logger
}

// Snapshot is a consistent copy of ledger state.
type Snapshot struct {
	Participants []model.Participant
	Transactions []model.Transaction
	Scale        int32
}

// New creates an empty Ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		scale: DefaultScale,
		newID: id.New,
		now:   time.Now,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.scale < 0 {
		l.scale = 0
	}
	return l
}

// Scale returns the minor-unit scale amounts must fit.
func (l *Ledger) Scale() int32 {
	return l.scale
}

// AddParticipant appends a participant with a fresh id.
func (l *Ledger) AddParticipant(name string) (model.Participant, error) {
	const op = "add participant"

	name = strings.TrimSpace(name)
	if name == "" {
		return model.Participant{}, newError(op, ErrValidation, "name is empty")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	p := model.Participant{ID: l.newID(id.KindParticipant), Name: name}
	l.participants = append(l.participants, p)

	l.log.Debug("participant added", zap.String("participant_id", p.ID), zap.String("name", p.Name))
	return p, nil
}

// RemoveParticipant deletes a participant no transaction refers to.
// Referenced participants are never removed; the caller must first remove
// the transactions that name them.
func (l *Ledger) RemoveParticipant(participantID string) error {
	const op = "remove participant"

	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.participantIndex(participantID)
	if i < 0 {
		return newError(op, ErrNotFound, "participant %q", participantID)
	}

	var refs int
	for _, tx := range l.transactions {
		if tx.References(participantID) {
			refs++
		}
	}
	if refs > 0 {
		return newError(op, ErrConstraint, "participant %q is referenced by %d transaction(s)", participantID, refs)
	}

	l.participants = slices.Delete(l.participants, i, i+1)

	l.log.Debug("participant removed", zap.String("participant_id", participantID))
	return nil
}

// AddTransaction records an expense of amount paid by paidBy and shared
// evenly by splitAmong. The order of splitAmong decides who absorbs
// remainder minor units. On error the ledger is unchanged.
func (l *Ledger) AddTransaction(description string, amount decimal.Decimal, paidBy string, splitAmong []string) (model.Transaction, error) {
	const op = "add transaction"

	if amount.IsNegative() {
		return model.Transaction{}, newError(op, ErrValidation, "amount %s is negative", amount)
	}
	if !money.FitsScale(amount, l.scale) {
		return model.Transaction{}, newError(op, ErrValidation, "amount %s has more than %d decimal places", amount, l.scale)
	}
	if len(splitAmong) == 0 {
		return model.Transaction{}, newError(op, ErrValidation, "split set is empty")
	}
	seen := make(map[string]bool, len(splitAmong))
	for _, pid := range splitAmong {
		if seen[pid] {
			return model.Transaction{}, newError(op, ErrValidation, "participant %q appears twice in split set", pid)
		}
		seen[pid] = true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.participantIndex(paidBy) < 0 {
		return model.Transaction{}, newError(op, ErrNotFound, "payer %q", paidBy)
	}
	for _, pid := range splitAmong {
		if l.participantIndex(pid) < 0 {
			return model.Transaction{}, newError(op, ErrNotFound, "participant %q in split set", pid)
		}
	}

	l.lastSeq++
	tx := model.Transaction{
		ID:          l.newID(id.KindTransaction),
		Seq:         l.lastSeq,
		Description: description,
		Amount:      amount,
		PaidBy:      paidBy,
		SplitAmong:  slices.Clone(splitAmong),
		CreatedAt:   l.now(),
	}
	l.transactions = append(l.transactions, tx)

	l.log.Debug("transaction added",
		zap.String("transaction_id", tx.ID),
		zap.Uint64("seq", tx.Seq),
		zap.String("amount", tx.Amount.String()),
		zap.String("paid_by", tx.PaidBy),
		zap.Int("split_count", len(tx.SplitAmong)),
	)
	return tx.Clone(), nil
}

// RemoveTransaction deletes a transaction. Transactions are never edited in
// place; corrections are a remove followed by an add.
func (l *Ledger) RemoveTransaction(transactionID string) error {
	const op = "remove transaction"

	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.transactions, func(tx model.Transaction) bool { return tx.ID == transactionID })
	if i < 0 {
		return newError(op, ErrNotFound, "transaction %q", transactionID)
	}
	l.transactions = slices.Delete(l.transactions, i, i+1)

	l.log.Debug("transaction removed", zap.String("transaction_id", transactionID))
	return nil
}

// Participants returns participants in insertion order.
func (l *Ledger) Participants() []model.Participant {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.participants)
}

// Transactions returns transactions in insertion order.
func (l *Ledger) Transactions() []model.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneTransactions(l.transactions)
}

// Participant looks up a participant by id.
func (l *Ledger) Participant(participantID string) (model.Participant, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i := l.participantIndex(participantID)
	if i < 0 {
		return model.Participant{}, newError("get participant", ErrNotFound, "participant %q", participantID)
	}
	return l.participants[i], nil
}

// ParticipantByName returns the first participant with the given name.
func (l *Ledger) ParticipantByName(name string) (model.Participant, error) {
	name = strings.TrimSpace(name)

	l.mu.RLock()
	defer l.mu.RUnlock()

	i := slices.IndexFunc(l.participants, func(p model.Participant) bool { return p.Name == name })
	if i < 0 {
		return model.Participant{}, newError("get participant", ErrNotFound, "no participant named %q", name)
	}
	return l.participants[i], nil
}

// Transaction looks up a transaction by id.
func (l *Ledger) Transaction(transactionID string) (model.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i := slices.IndexFunc(l.transactions, func(tx model.Transaction) bool { return tx.ID == transactionID })
	if i < 0 {
		return model.Transaction{}, newError("get transaction", ErrNotFound, "transaction %q", transactionID)
	}
	return l.transactions[i].Clone(), nil
}

// Snapshot copies participants and transactions under a single read lock.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Snapshot{
		Participants: slices.Clone(l.participants),
		Transactions: cloneTransactions(l.transactions),
		Scale:        l.scale,
	}
}

func (l *Ledger) participantIndex(participantID string) int {
	return slices.IndexFunc(l.participants, func(p model.Participant) bool { return p.ID == participantID })
}

func cloneTransactions(txs []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txs))
	for i, tx := range txs {
		out[i] = tx.Clone()
	}
	return out
}
