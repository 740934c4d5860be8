package stockfolio

import (
	"bytes"
	"strings"
	"testing"
)

const sampleRecords = `{"record":"stock","id":1,"ticker":"2330","type":"buy","shares":10,"price":100,"fee":1,"rate":30,"date":"2025-01-01"}
{"record":"stock","id":2,"ticker":"AAPL","market":"NASDAQ","type":"sell","shares":5,"price":120.5,"date":"2025-06-01"}
{"record":"split","symbol":"AAPL","market":"NASDAQ","date":"2025-03-01","ratio":4}
{"record":"fx","id":3,"ledger":1,"type":"exchange-buy","amount":1000,"homeAmount":30000,"date":"2025-01-01"}
`

func TestDecodeRecords(t *testing.T) {
	recs, err := DecodeRecords(strings.NewReader(sampleRecords))
	if err != nil {
		t.Fatalf("DecodeRecords: %v", err)
	}
	if len(recs.Stocks) != 2 || len(recs.Splits) != 1 || len(recs.Currencies) != 1 {
		t.Fatalf("got %d/%d/%d records, want 2/1/1",
			len(recs.Stocks), len(recs.Splits), len(recs.Currencies))
	}

	buy := recs.Stocks[0]
	if buy.Market != TWSE {
		t.Errorf("market = %s, want detected TWSE", buy.Market)
	}
	if buy.Type != TxBuy || !buy.Shares.Equal(Q(10)) || !buy.Price.Equal(M(100, "TWD")) {
		t.Errorf("buy decoded as %+v", buy)
	}

	sell := recs.Stocks[1]
	if sell.Market != NASDAQ || !sell.Price.Equal(M(120.5, "USD")) {
		t.Errorf("sell decoded as %+v", sell)
	}

	if ev := recs.Splits[0]; !ev.Ratio.Equal(Q(4)) {
		t.Errorf("split ratio = %s, want 4", ev.Ratio)
	}

	fx := recs.Currencies[0]
	if fx.Type != CurExchangeBuy || !fx.HomeAmount.Equal(M(30000, "TWD")) {
		t.Errorf("fx decoded as %+v", fx)
	}
}

func TestDecodeRecords_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "unknown kind", input: `{"record":"bond","date":"2025-01-01"}`},
		{name: "unknown trade type", input: `{"record":"stock","ticker":"2330","type":"short","shares":1,"date":"2025-01-01"}`},
		{name: "broken json", input: `{"record":`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeRecords(strings.NewReader(tc.input)); err == nil {
				t.Error("DecodeRecords succeeded, want error")
			}
		})
	}
}

func TestEncodeRecords_RoundTrip(t *testing.T) {
	recs, err := DecodeRecords(strings.NewReader(sampleRecords))
	if err != nil {
		t.Fatalf("DecodeRecords: %v", err)
	}
	var buf bytes.Buffer
	if err := EncodeRecords(&buf, recs); err != nil {
		t.Fatalf("EncodeRecords: %v", err)
	}
	again, err := DecodeRecords(&buf)
	if err != nil {
		t.Fatalf("DecodeRecords(encoded): %v", err)
	}
	if len(again.Stocks) != 2 || len(again.Splits) != 1 || len(again.Currencies) != 1 {
		t.Fatalf("round trip lost records: %d/%d/%d",
			len(again.Stocks), len(again.Splits), len(again.Currencies))
	}
	if !again.Stocks[0].Price.Equal(recs.Stocks[0].Price) {
		t.Errorf("price changed across round trip: %s != %s",
			again.Stocks[0].Price, recs.Stocks[0].Price)
	}
}
