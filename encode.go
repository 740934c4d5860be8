package stockfolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Records is the decoded content of a portfolio file: stock transactions,
// split events and currency-ledger transactions.
type Records struct {
	Stocks     []StockTransaction
	Splits     []SplitEvent
	Currencies []CurrencyTransaction
}

// recordKind discriminates the JSONL line types.
type recordKind string

const (
	recordStock recordKind = "stock"
	recordSplit recordKind = "split"
	recordFx    recordKind = "fx"
)

// stockRecord is the wire form of a StockTransaction.
type stockRecord struct {
	Record  recordKind      `json:"record"`
	ID      int64           `json:"id,omitempty"`
	Ticker  string          `json:"ticker"`
	Market  string          `json:"market,omitempty"`
	Type    string          `json:"type"`
	Shares  decimal.Decimal `json:"shares"`
	Price   decimal.Decimal `json:"price,omitempty"`
	Fee     decimal.Decimal `json:"fee,omitempty"`
	Rate    decimal.Decimal `json:"rate,omitempty"`
	Date    Date            `json:"date"`
	Deleted bool            `json:"deleted,omitempty"`
}

// splitRecord is the wire form of a SplitEvent.
type splitRecord struct {
	Record recordKind      `json:"record"`
	Symbol string          `json:"symbol"`
	Market string          `json:"market,omitempty"`
	Date   Date            `json:"date"`
	Ratio  decimal.Decimal `json:"ratio"`
}

// fxRecord is the wire form of a CurrencyTransaction.
type fxRecord struct {
	Record     recordKind      `json:"record"`
	ID         int64           `json:"id,omitempty"`
	Ledger     int64           `json:"ledger,omitempty"`
	Type       string          `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	HomeAmount decimal.Decimal `json:"homeAmount,omitempty"`
	Rate       decimal.Decimal `json:"rate,omitempty"`
	StockTx    int64           `json:"stockTx,omitempty"`
	Date       Date            `json:"date"`
	Deleted    bool            `json:"deleted,omitempty"`
}

// DecodeRecords decodes a JSONL stream into Records. Every line carries a
// "record" discriminator; a stock line without a market falls back to the
// symbol-based market detection.
func DecodeRecords(r io.Reader) (*Records, error) {
	recs := &Records{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var identifier struct {
			Record recordKind `json:"record"`
		}
		if err := json.Unmarshal(raw, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: could not identify record: %w", line, err)
		}
		switch identifier.Record {
		case recordStock:
			var rec stockRecord
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			tx, err := rec.transaction()
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			recs.Stocks = append(recs.Stocks, tx)
		case recordSplit:
			var rec splitRecord
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			ev, err := rec.event()
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			recs.Splits = append(recs.Splits, ev)
		case recordFx:
			var rec fxRecord
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			recs.Currencies = append(recs.Currencies, rec.transaction())
		default:
			return nil, fmt.Errorf("line %d: unknown record kind %q", line, identifier.Record)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read records: %w", err)
	}
	return recs, nil
}

// EncodeRecords writes Records back out as JSONL, one record per line.
func EncodeRecords(w io.Writer, recs *Records) error {
	enc := json.NewEncoder(w)
	for _, tx := range recs.Stocks {
		if err := enc.Encode(newStockRecord(tx)); err != nil {
			return fmt.Errorf("could not encode stock transaction: %w", err)
		}
	}
	for _, ev := range recs.Splits {
		rec := splitRecord{Record: recordSplit, Symbol: ev.Symbol, Market: string(ev.Market), Date: ev.Date, Ratio: ev.Ratio.value}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("could not encode split event: %w", err)
		}
	}
	for _, tx := range recs.Currencies {
		if err := enc.Encode(newFxRecord(tx)); err != nil {
			return fmt.Errorf("could not encode currency transaction: %w", err)
		}
	}
	return nil
}

func (rec stockRecord) transaction() (StockTransaction, error) {
	txType, err := ParseTxType(rec.Type)
	if err != nil {
		return StockTransaction{}, err
	}
	market := DetectMarket(rec.Ticker)
	if rec.Market != "" {
		if market, err = ParseMarket(rec.Market); err != nil {
			return StockTransaction{}, err
		}
	}
	return StockTransaction{
		ID:      rec.ID,
		Ticker:  rec.Ticker,
		Market:  market,
		Type:    txType,
		Shares:  Q(rec.Shares),
		Price:   M(rec.Price, market.Currency()),
		Fee:     M(rec.Fee, market.Currency()),
		Rate:    Q(rec.Rate),
		Date:    rec.Date,
		Deleted: rec.Deleted,
	}, nil
}

func newStockRecord(tx StockTransaction) stockRecord {
	return stockRecord{
		Record:  recordStock,
		ID:      tx.ID,
		Ticker:  tx.Ticker,
		Market:  string(tx.Market),
		Type:    string(tx.Type),
		Shares:  tx.Shares.value,
		Price:   tx.Price.value,
		Fee:     tx.Fee.value,
		Rate:    tx.Rate.value,
		Date:    tx.Date,
		Deleted: tx.Deleted,
	}
}

func (rec splitRecord) event() (SplitEvent, error) {
	market := DetectMarket(rec.Symbol)
	if rec.Market != "" {
		var err error
		if market, err = ParseMarket(rec.Market); err != nil {
			return SplitEvent{}, err
		}
	}
	return SplitEvent{Symbol: rec.Symbol, Market: market, Date: rec.Date, Ratio: Q(rec.Ratio)}, nil
}

func (rec fxRecord) transaction() CurrencyTransaction {
	tx := CurrencyTransaction{
		ID:                 rec.ID,
		LedgerID:           rec.Ledger,
		Date:               rec.Date,
		Type:               CurrencyTxType(rec.Type),
		Amount:             Q(rec.Amount),
		Rate:               Q(rec.Rate),
		StockTransactionID: rec.StockTx,
		Deleted:            rec.Deleted,
	}
	if !rec.HomeAmount.IsZero() {
		tx.HomeAmount = M(rec.HomeAmount, HomeCurrency)
	}
	return tx
}

func newFxRecord(tx CurrencyTransaction) fxRecord {
	return fxRecord{
		Record:     recordFx,
		ID:         tx.ID,
		Ledger:     tx.LedgerID,
		Type:       string(tx.Type),
		Amount:     tx.Amount.value,
		HomeAmount: tx.HomeAmount.value,
		Rate:       tx.Rate.value,
		StockTx:    tx.StockTransactionID,
		Date:       tx.Date,
		Deleted:    tx.Deleted,
	}
}
