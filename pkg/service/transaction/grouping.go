package transaction

import (
	"context"
	"sort"
	"time"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/amirasaad/finance/pkg/domain/transaction"
	"github.com/amirasaad/finance/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryKind is the kind of a grouped history entry. Plain transactions pass
// their own kind through; collapsed transfer pairs report the direction seen
// from the requesting user.
type EntryKind string

const (
	EntryIncome   EntryKind = "income"
	EntryExpense  EntryKind = "expense"
	EntrySent     EntryKind = "transfer_sent"
	EntryReceived EntryKind = "transfer_received"
	EntryTransfer EntryKind = "transfer"
)

// Entry is one row of the grouped transaction history. Exactly one of ID and
// TransferGroupID is set.
type Entry struct {
	ID              *uuid.UUID      `json:"id,omitempty"`
	TransferGroupID *uuid.UUID      `json:"transfer_group_id,omitempty"`
	Kind            EntryKind       `json:"kind"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category,omitempty"`
	Description     string          `json:"description"`
	SourceAccount   string          `json:"source_account,omitempty"`
	DestAccount     string          `json:"dest_account,omitempty"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

// ListGrouped returns the user's history with transfer pairs collapsed into
// one synthetic entry each: transfer_sent with the amount negated when the
// user owns the expense leg, transfer_received otherwise. Plain transactions
// pass through unchanged. Ordered by occurrence, newest first.
func (s *Service) ListGrouped(ctx context.Context, userID uuid.UUID) (entries []Entry, err error) {
	var (
		list         []*transaction.Transaction
		accountNames map[uuid.UUID]string
	)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		list, err = txs.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		owned, err := accounts.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		accountNames = make(map[uuid.UUID]string, len(owned))
		for _, a := range owned {
			accountNames[a.ID] = a.Name
		}
		return nil
	})
	if err != nil {
		return nil, domain.WrapStore(err)
	}

	type group struct {
		id   uuid.UUID
		legs []*transaction.Transaction
	}
	var (
		groups  []*group
		byGroup = map[uuid.UUID]*group{}
	)
	entries = make([]Entry, 0, len(list))
	for _, tx := range list {
		if tx.TransferGroupID == nil {
			id := tx.ID
			entries = append(entries, Entry{
				ID:          &id,
				Kind:        EntryKind(tx.Kind),
				Amount:      tx.Amount,
				Category:    tx.Category,
				Description: tx.Description,
				OccurredAt:  tx.OccurredAt,
			})
			continue
		}
		g, ok := byGroup[*tx.TransferGroupID]
		if !ok {
			g = &group{id: *tx.TransferGroupID}
			byGroup[*tx.TransferGroupID] = g
			groups = append(groups, g)
		}
		g.legs = append(g.legs, tx)
	}

	for _, g := range groups {
		entries = append(entries, s.collapse(g.id, g.legs, userID, accountNames))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].OccurredAt.After(entries[j].OccurredAt)
	})
	return entries, nil
}

// collapse turns the legs of one transfer group into a single entry. In
// cross-user transfers only the requesting user's leg is visible, so either
// leg may be absent.
func (s *Service) collapse(groupID uuid.UUID, legs []*transaction.Transaction, userID uuid.UUID, accountNames map[uuid.UUID]string) Entry {
	var sent, received *transaction.Transaction
	for _, leg := range legs {
		switch leg.Kind {
		case transaction.KindExpense:
			sent = leg
		case transaction.KindIncome:
			received = leg
		}
	}

	id := groupID
	entry := Entry{
		TransferGroupID: &id,
		Kind:            EntryTransfer,
		Description:     "Transfer",
		OccurredAt:      legs[0].OccurredAt,
	}
	if sent != nil {
		entry.SourceAccount = accountNames[sent.AccountID]
	}
	if received != nil {
		entry.DestAccount = accountNames[received.AccountID]
	}

	switch {
	case sent != nil && sent.UserID == userID:
		entry.Kind = EntrySent
		entry.Amount = sent.Amount.Neg()
		entry.Description = "Transfer sent"
		if received != nil {
			entry.Description = "Sent to " + accountNames[received.AccountID]
		}
	case received != nil && received.UserID == userID:
		entry.Kind = EntryReceived
		entry.Amount = received.Amount
		entry.Description = "Transfer received"
		if sent != nil {
			entry.Description = "Received from " + accountNames[sent.AccountID]
		}
	default:
		entry.Amount = legs[0].Amount
	}
	return entry
}
