package stockfolio

// FlowSource tags where a cash-flow event was derived from.
type FlowSource string

const (
	FlowFromTrades FlowSource = "trades"
	FlowFromLedger FlowSource = "ledger"
)

// CashFlow is one external cash-flow event of a portfolio, in the home
// currency. Investments are negative, withdrawals positive.
type CashFlow struct {
	PortfolioID int64
	SourceID    int64
	Date        Date
	Amount      float64
	Source      FlowSource
}

// CashFlowSource derives the external cash-flow events the return
// calculators consume. Implementations are selected per portfolio; adding
// a new derivation strategy means adding a new implementation, not
// touching the callers.
type CashFlowSource interface {
	// Source identifies the strategy.
	Source() FlowSource
	// Flows returns the portfolio's external cash flows in date order.
	Flows() []CashFlow
}

// SelectCashFlowSource chooses how a portfolio's external cash flows are
// derived. The funding-ledger strategy is selected only when the ledger
// actually records funding events (initial balance, deposits or
// withdrawals), is active, belongs to the user, and the portfolio has
// trading activity; in every other case flows fall back to the trades
// themselves.
func SelectCashFlowSource(portfolioID, userID int64, book *Book, ledger *Ledger) CashFlowSource {
	if ledger != nil &&
		ledger.Active &&
		ledger.OwnerID == userID &&
		ledger.hasFundingActivity() &&
		book.hasTradingActivity() {
		return &LedgerFlows{PortfolioID: portfolioID, Ledger: ledger}
	}
	return &TradeFlows{PortfolioID: portfolioID, Book: book}
}

// TradeFlows derives cash flows from the trades themselves: each buy is an
// investment at its total home cost, each sell a withdrawal at its net
// home proceeds.
type TradeFlows struct {
	PortfolioID int64
	Book        *Book
}

func (s *TradeFlows) Source() FlowSource { return FlowFromTrades }

func (s *TradeFlows) Flows() []CashFlow {
	var flows []CashFlow
	for _, tx := range s.Book.transactions {
		if tx.Deleted {
			continue
		}
		var amount Money
		switch tx.Type {
		case TxBuy:
			amount = tx.SourceCost().Convert(tx.rate(s.Book.rates), HomeCurrency).Neg()
		case TxSell:
			amount = tx.NetProceeds().Convert(tx.rate(s.Book.rates), HomeCurrency)
		default:
			continue
		}
		flows = append(flows, CashFlow{
			PortfolioID: s.PortfolioID,
			SourceID:    tx.ID,
			Date:        tx.Date,
			Amount:      amount.AsFloat(),
			Source:      FlowFromTrades,
		})
	}
	return flows
}

// LedgerFlows derives cash flows from the funding ledger: initial balances
// and deposits are investments, withdrawals are withdrawals. Exchange and
// spending entries move money inside the portfolio and are not external
// flows.
type LedgerFlows struct {
	PortfolioID int64
	Ledger      *Ledger
}

func (s *LedgerFlows) Source() FlowSource { return FlowFromLedger }

func (s *LedgerFlows) Flows() []CashFlow {
	var flows []CashFlow
	for _, tx := range s.Ledger.transactions {
		if tx.Deleted {
			continue
		}
		var amount Money
		switch tx.Type {
		case CurInitialBalance, CurDeposit:
			amount = tx.homeValue().Neg()
		case CurWithdraw:
			amount = tx.homeValue()
		default:
			continue
		}
		flows = append(flows, CashFlow{
			PortfolioID: s.PortfolioID,
			SourceID:    tx.ID,
			Date:        tx.Date,
			Amount:      amount.AsFloat(),
			Source:      FlowFromLedger,
		})
	}
	return flows
}
