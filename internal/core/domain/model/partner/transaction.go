package partner

import (
	"errors"
	"fmt"
	"time"

	"gromart/internal/core/domain/model/kernel"
	"gromart/internal/pkg/errs"
	"gromart/internal/pkg/guard"
)

// ErrTransactionIsNotConstructed is returned when a CreditTransaction was not
// created through the aggregate's Allocate method or RestoreCreditTransaction.
var ErrTransactionIsNotConstructed = errors.New(
	"CreditTransaction must be created via DeliveryPartner.Allocate or RestoreCreditTransaction")

// TransactionType classifies a ledger entry by its business reason.
// Credit and refund entries increase the partner's balance; debit and
// penalty entries decrease it.
type TransactionType int

const (
	// TransactionTypeUnknown represents an invalid or undefined type.
	TransactionTypeUnknown TransactionType = iota
	// TransactionTypeCredit increases the balance (advance issued, cash handed over).
	TransactionTypeCredit
	// TransactionTypeDebit decreases the balance (settlement, reimbursement paid out).
	TransactionTypeDebit
	// TransactionTypeRefund increases the balance, reversing an earlier debit.
	TransactionTypeRefund
	// TransactionTypePenalty decreases the balance as a sanction.
	TransactionTypePenalty
)

func getTransactionTypeStrings() map[TransactionType]string {
	return map[TransactionType]string{
		TransactionTypeUnknown: "unknown",
		TransactionTypeCredit:  "credit",
		TransactionTypeDebit:   "debit",
		TransactionTypeRefund:  "refund",
		TransactionTypePenalty: "penalty",
	}
}

// Validate checks if the TransactionType is one of the defined types.
func (t TransactionType) Validate() error {
	if t == TransactionTypeUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"transaction type", fmt.Errorf("%d is not a valid transaction type", int(t)))
	}
	if _, ok := getTransactionTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"transaction type", fmt.Errorf("%d is not a valid transaction type", int(t)))
	}
	return nil
}

// String returns the persisted name of the type. Implements fmt.Stringer.
func (t TransactionType) String() string {
	if str, ok := getTransactionTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// TransactionTypeFromString parses a persisted type name.
func TransactionTypeFromString(s string) (TransactionType, error) {
	for tt, str := range getTransactionTypeStrings() {
		if str == s && tt != TransactionTypeUnknown {
			return tt, nil
		}
	}
	return TransactionTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"transaction type", fmt.Errorf("%q is not a valid transaction type", s))
}

// Sign returns +1 for balance-increasing types and -1 for
// balance-decreasing types.
func (t TransactionType) Sign() int {
	switch t {
	case TransactionTypeCredit, TransactionTypeRefund:
		return 1
	case TransactionTypeDebit, TransactionTypePenalty:
		return -1
	default:
		return 0
	}
}

// CreditTransaction is one append-only ledger entry. It records the amount
// moved, the business reason and the partner's balance immediately after
// the entry was applied. Entries are never mutated or deleted; the entire
// history of a partner replayed in creation order must reproduce the stored
// balance exactly.
type CreditTransaction struct {
	id           kernel.UUID
	partnerID    kernel.UUID
	txType       TransactionType
	amount       kernel.Money
	balanceAfter Balance
	description  string
	orderID      *kernel.UUID
	createdBy    kernel.UUID
	createdAt    time.Time

	guard guard.ConstructorGuard
}

// newCreditTransaction is called by DeliveryPartner.Allocate; it is the only
// path that creates fresh ledger entries, which keeps balance bookkeeping in
// one place.
func newCreditTransaction(
	id kernel.UUID,
	partnerID kernel.UUID,
	txType TransactionType,
	amount kernel.Money,
	balanceAfter Balance,
	description string,
	orderID *kernel.UUID,
	createdBy kernel.UUID,
	createdAt time.Time,
) *CreditTransaction {
	return &CreditTransaction{
		id:           id,
		partnerID:    partnerID,
		txType:       txType,
		amount:       amount,
		balanceAfter: balanceAfter,
		description:  description,
		orderID:      orderID,
		createdBy:    createdBy,
		createdAt:    createdAt,
		guard:        guard.NewConstructorGuard(),
	}
}

// RestoreCreditTransaction reconstructs a ledger entry from persistent storage.
func RestoreCreditTransaction(
	id kernel.UUID,
	partnerID kernel.UUID,
	txType TransactionType,
	amount kernel.Money,
	balanceAfter Balance,
	description string,
	orderID *kernel.UUID,
	createdBy kernel.UUID,
	createdAt time.Time,
) (*CreditTransaction, error) {
	if err := errors.Join(
		id.Validate(),
		partnerID.Validate(),
		txType.Validate(),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, NewInvalidAmountError(amount.String())
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}

	return newCreditTransaction(
		id, partnerID, txType, amount, balanceAfter, description, orderID, createdBy, createdAt,
	), nil
}

// Validate ensures the transaction was created through a constructor.
func (t *CreditTransaction) Validate() error {
	if t == nil {
		return ErrTransactionIsNotConstructed
	}
	return t.guard.Validate(ErrTransactionIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (t *CreditTransaction) ID() kernel.UUID { return t.id }

// PartnerID returns the partner whose balance this entry changed.
func (t *CreditTransaction) PartnerID() kernel.UUID { return t.partnerID }

// Type returns the business reason of the entry.
func (t *CreditTransaction) Type() TransactionType { return t.txType }

// Amount returns the positive amount moved by this entry.
func (t *CreditTransaction) Amount() kernel.Money { return t.amount }

// BalanceAfter returns the partner's balance immediately after applying this entry.
func (t *CreditTransaction) BalanceAfter() Balance { return t.balanceAfter }

// Description returns the free-text reason recorded with the entry.
func (t *CreditTransaction) Description() string { return t.description }

// OrderID returns the related order, or nil if not tied to one.
func (t *CreditTransaction) OrderID() *kernel.UUID { return t.orderID }

// CreatedBy returns the admin who recorded the entry.
func (t *CreditTransaction) CreatedBy() kernel.UUID { return t.createdBy }

// CreatedAt returns when the entry was recorded.
func (t *CreditTransaction) CreatedAt() time.Time { return t.createdAt }

// SignedAmount returns the amount with the sign implied by the entry type.
func (t *CreditTransaction) SignedAmount() Balance {
	if t.txType.Sign() < 0 {
		return Balance{amount: t.amount.Amount().Neg()}
	}
	return Balance{amount: t.amount.Amount()}
}
