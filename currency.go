package stockfolio

import "sort"

// CurrencyTxType identifies the kind of a currency-ledger transaction.
type CurrencyTxType string

const (
	CurExchangeBuy    CurrencyTxType = "exchange-buy"
	CurExchangeSell   CurrencyTxType = "exchange-sell"
	CurInitialBalance CurrencyTxType = "initial-balance"
	CurDeposit        CurrencyTxType = "deposit"
	CurWithdraw       CurrencyTxType = "withdraw"
	CurInterest       CurrencyTxType = "interest"
	CurSpend          CurrencyTxType = "spend"
	CurOtherIncome    CurrencyTxType = "other-income"
	CurOtherExpense   CurrencyTxType = "other-expense"
)

// costBearing reports whether the type adds both balance and cost basis.
func (t CurrencyTxType) costBearing() bool {
	switch t {
	case CurExchangeBuy, CurInitialBalance, CurDeposit:
		return true
	}
	return false
}

// proportionalOut reports whether the type removes balance and cost
// proportionally at the current average cost.
func (t CurrencyTxType) proportionalOut() bool {
	switch t {
	case CurExchangeSell, CurSpend, CurOtherExpense, CurWithdraw:
		return true
	}
	return false
}

// balanceOnly reports whether the type adds balance with no cost attached,
// diluting the average cost.
func (t CurrencyTxType) balanceOnly() bool {
	return t == CurInterest || t == CurOtherIncome
}

// lifoIncome reports whether the type counts as available funds for the
// LIFO exchange-rate imputation.
func (t CurrencyTxType) lifoIncome() bool {
	switch t {
	case CurExchangeBuy, CurInitialBalance, CurInterest, CurOtherIncome:
		return true
	}
	return false
}

// exchangeSourced reports whether a drawn portion of the type carries an
// FX cost for the imputed rate. Interest and other income reduce the
// remaining purchase amount for free.
func (t CurrencyTxType) exchangeSourced() bool {
	return t == CurExchangeBuy || t == CurInitialBalance
}

// CurrencyTransaction is one append-only row of a currency ledger.
type CurrencyTransaction struct {
	ID                 int64
	LedgerID           int64
	Date               Date
	Type               CurrencyTxType
	Amount             Quantity // in the ledger's currency
	HomeAmount         Money    // optional, home currency
	Rate               Quantity // optional exchange rate to home
	StockTransactionID int64    // optional link to a funded stock purchase
	Deleted            bool
}

// homeValue resolves the home-currency value of the row: the recorded home
// amount, then amount × recorded rate, then the amount at par.
func (t CurrencyTransaction) homeValue() Money {
	if !t.HomeAmount.IsZero() {
		return t.HomeAmount
	}
	if !t.Rate.IsZero() {
		return M(t.Amount.Mul(t.Rate).value, HomeCurrency)
	}
	return M(t.Amount.value, HomeCurrency)
}

// Ledger is an immutable snapshot of one currency ledger and its
// transaction history.
type Ledger struct {
	ID           int64
	OwnerID      int64
	Currency     string
	Active       bool
	transactions []CurrencyTransaction
}

// NewLedger copies and sorts the transactions into a Ledger. The sort is
// stable so same-day rows keep their creation order.
func NewLedger(id, ownerID int64, currency string, active bool, txs ...CurrencyTransaction) *Ledger {
	l := &Ledger{ID: id, OwnerID: ownerID, Currency: currency, Active: active,
		transactions: make([]CurrencyTransaction, len(txs)),
	}
	copy(l.transactions, txs)
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
	return l
}

// hasFundingActivity reports whether the ledger records any non-deleted
// external funding event.
func (l *Ledger) hasFundingActivity() bool {
	for _, tx := range l.transactions {
		if tx.Deleted {
			continue
		}
		switch tx.Type {
		case CurInitialBalance, CurDeposit, CurWithdraw:
			return true
		}
	}
	return false
}

// LedgerState is the derived state of a currency ledger: the foreign
// balance, its moving-average home cost basis, and the realized gain
// accumulated by exchange sells.
type LedgerState struct {
	Currency string
	Balance  Quantity
	Cost     Money // home currency
	Realized Money // home currency
}

// AverageCost is the blended home cost per foreign unit, zero when the
// balance is empty.
func (s LedgerState) AverageCost() Money {
	if !s.Balance.IsPositive() {
		return M(0, HomeCurrency)
	}
	return s.Cost.Div(s.Balance)
}

// State replays the full ledger history into its current state.
func (l *Ledger) State() LedgerState {
	return l.state(Date{})
}

// StateAsOf replays the history up to and including a date.
func (l *Ledger) StateAsOf(on Date) LedgerState {
	return l.state(on)
}

func (l *Ledger) state(max Date) LedgerState {
	s := LedgerState{Currency: l.Currency,
		Cost:     M(0, HomeCurrency),
		Realized: M(0, HomeCurrency),
	}
	for _, tx := range l.transactions {
		if tx.Deleted {
			continue
		}
		if !max.IsZero() && tx.Date.After(max) {
			break
		}
		s = foldLedger(s, tx)
	}
	return s
}

// foldLedger applies one transaction to a ledger state using the
// moving-average cost method.
func foldLedger(s LedgerState, t CurrencyTransaction) LedgerState {
	switch {
	case t.Type.costBearing():
		s.Balance = s.Balance.Add(t.Amount)
		s.Cost = s.Cost.Add(t.homeValue())
	case t.Type.proportionalOut():
		if s.Balance.IsPositive() {
			costOut := s.AverageCost().Mul(t.Amount)
			if t.Type == CurExchangeSell {
				// An exchange sell locks in the difference between what the
				// foreign amount fetched and what it cost on average. There
				// is no fee concept here, unlike stock transactions.
				s.Realized = s.Realized.Add(t.homeValue().Sub(costOut))
			}
			s.Cost = s.Cost.Sub(costOut)
		}
		s.Balance = s.Balance.Sub(t.Amount)
	case t.Type.balanceOnly():
		s.Balance = s.Balance.Add(t.Amount)
	}
	// Clamp decimal-rounding leftovers.
	if s.Balance.IsNegative() {
		s.Balance = Quantity{}
	}
	if s.Cost.IsNegative() {
		s.Cost = M(0, HomeCurrency)
	}
	return s
}

// ImputedRate approximates the exchange rate at which a stock purchase of
// the given foreign amount on the given date was funded from this ledger.
//
// The heuristic traces the purchase back through the ledger LIFO-style:
// the most recently added funds are assumed spent first. Earlier expenses
// consume availability from the oldest funds up, then the purchase draws
// against what remains, newest first. Only portions drawn from exchange
// buys and the initial balance carry an FX cost; interest and other income
// shrink the remaining purchase amount at no cost. The result is the
// weighted exchange cost over the weighted exchange amount, or zero when
// nothing exchange-sourced was drawn.
func (l *Ledger) ImputedRate(amount Quantity, on Date) Quantity {
	var incomes []CurrencyTransaction
	expenses := Quantity{}
	for _, tx := range l.transactions {
		if tx.Deleted || tx.Date.After(on) {
			continue
		}
		if tx.Type.lifoIncome() {
			incomes = append(incomes, tx)
		} else if tx.Type.proportionalOut() && tx.Date.Before(on) {
			// Same-day expenses are not counted against availability: the
			// purchase being traced is itself one of them.
			expenses = expenses.Add(tx.Amount)
		}
	}

	// Expenses consume the oldest funds first, leaving each income row
	// with its remaining available amount.
	remaining := make([]Quantity, len(incomes))
	for i, tx := range incomes {
		take := expenses.Min(tx.Amount)
		remaining[i] = tx.Amount.Sub(take)
		expenses = expenses.Sub(take)
	}

	// The purchase draws the remaining availability newest first.
	need := amount
	weightedCost := Quantity{}
	weightedAmount := Quantity{}
	for i := len(incomes) - 1; i >= 0 && need.IsPositive(); i-- {
		if !remaining[i].IsPositive() {
			continue
		}
		draw := need.Min(remaining[i])
		if incomes[i].Type.exchangeSourced() && incomes[i].Amount.IsPositive() {
			fraction := draw.Div(incomes[i].Amount)
			weightedCost = weightedCost.Add(incomes[i].homeValue().Amount().Mul(fraction))
			weightedAmount = weightedAmount.Add(draw)
		}
		need = need.Sub(draw)
	}

	if !weightedAmount.IsPositive() {
		return Quantity{}
	}
	return weightedCost.Div(weightedAmount)
}
