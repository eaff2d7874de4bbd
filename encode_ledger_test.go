package stonkstats

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

const sampleJournal = `{"command":"trade","id":"t1","date":"2025-03-02","ticker":"AAPL","entryPrice":200,"stopPrice":190,"shares":10,"status":"closed","closeDate":"2025-03-05","totalRealizedPnL":500}
{"command":"trade","id":"t2","date":"2025-03-03","ticker":"NVDA","entryPrice":50,"stopPrice":45,"shares":100,"status":"trimmed","totalRealizedPnL":160,"trims":[{"date":"2025-03-08","shares":40}]}
{"command":"deposit","id":"f1","date":"2025-03-07","amount":2000}
{"command":"withdraw","id":"f2","date":"2025-03-09","amount":300}
`

func TestDecodeLedger(t *testing.T) {
	ledger, err := DecodeLedger(strings.NewReader(sampleJournal), "USD")
	if err != nil {
		t.Fatalf("DecodeLedger: %v", err)
	}
	if ledger.NumEntries() != 2 {
		t.Fatalf("decoded %d trades, want 2", ledger.NumEntries())
	}

	t1 := ledger.Get("t1")
	if t1 == nil {
		t.Fatal("trade t1 missing")
	}
	if t1.Status != StatusClosed || !t1.RealizedPnL.Equal(USD(500)) {
		t.Errorf("t1 = %v %v, want closed with 500 realized", t1.Status, t1.RealizedPnL)
	}
	if !t1.Remaining.IsZero() {
		t.Errorf("closed trade keeps %v remaining shares, want 0", t1.Remaining)
	}

	t2 := ledger.Get("t2")
	if t2 == nil {
		t.Fatal("trade t2 missing")
	}
	if !t2.Remaining.Equal(Q(60)) {
		t.Errorf("trimmed remaining = %v, want 60 recomputed from trims", t2.Remaining)
	}
	if len(t2.Trims) != 1 || t2.Trims[0].On != D(2025, time.March, 8) {
		t.Errorf("t2 trims = %v", t2.Trims)
	}
}

func TestDecodeLedgerDerivedFields(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantStatus Status
		wantPnL    float64
	}{
		{
			"status derived from closeDate",
			`{"command":"trade","date":"2025-03-02","ticker":"AAPL","entryPrice":200,"stopPrice":190,"shares":10,"closeDate":"2025-03-05","totalRealizedPnL":500}`,
			StatusClosed, 500,
		},
		{
			"status derived from trims",
			`{"command":"trade","date":"2025-03-03","ticker":"NVDA","entryPrice":50,"stopPrice":45,"shares":100,"totalRealizedPnL":160,"trims":[{"date":"2025-03-08","shares":40}]}`,
			StatusTrimmed, 160,
		},
		{
			"bare trade defaults to open",
			`{"command":"trade","date":"2025-03-03","ticker":"NVDA","entryPrice":50,"stopPrice":45,"shares":100}`,
			StatusOpen, 0,
		},
		{
			"legacy pnl field still read",
			`{"command":"trade","date":"2025-03-02","ticker":"AAPL","entryPrice":200,"stopPrice":190,"shares":10,"status":"closed","closeDate":"2025-03-05","pnl":500}`,
			StatusClosed, 500,
		},
		{
			"totalRealizedPnL wins over legacy pnl",
			`{"command":"trade","date":"2025-03-02","ticker":"AAPL","entryPrice":200,"stopPrice":190,"shares":10,"status":"closed","closeDate":"2025-03-05","pnl":1,"totalRealizedPnL":500}`,
			StatusClosed, 500,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, err := DecodeLedger(strings.NewReader(tt.line+"\n"), "USD")
			if err != nil {
				t.Fatalf("DecodeLedger: %v", err)
			}
			var got *JournalEntry
			for e := range ledger.Entries() {
				got = e
			}
			if got == nil {
				t.Fatal("no trade decoded")
			}
			if got.Status != tt.wantStatus {
				t.Errorf("status = %v, want %v", got.Status, tt.wantStatus)
			}
			if !got.RealizedPnL.Equal(USD(tt.wantPnL)) {
				t.Errorf("realized = %v, want %v", got.RealizedPnL, tt.wantPnL)
			}
			if got.ID == "" {
				t.Error("missing id was not assigned")
			}
		})
	}
}

func TestDecodeLedgerErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"unknown command", `{"command":"split","ticker":"AAPL"}`},
		{"not json", `trade AAPL 10 @ 200`},
		{"invalid trade", `{"command":"trade","date":"2025-03-02","ticker":"","entryPrice":200,"stopPrice":190,"shares":10}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeLedger(strings.NewReader(tt.line+"\n"), "USD"); err == nil {
				t.Error("want an error, got none")
			}
		})
	}
}

func TestDecodeLedgerSkipsBlankLines(t *testing.T) {
	src := "\n" + sampleJournal + "\n\n"
	ledger, err := DecodeLedger(strings.NewReader(src), "USD")
	if err != nil {
		t.Fatalf("DecodeLedger: %v", err)
	}
	if ledger.NumEntries() != 2 {
		t.Errorf("decoded %d trades, want 2", ledger.NumEntries())
	}
}

func TestEncodeLedgerRoundtrip(t *testing.T) {
	ledger, err := DecodeLedger(strings.NewReader(sampleJournal), "USD")
	if err != nil {
		t.Fatalf("DecodeLedger: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		t.Fatalf("EncodeLedger: %v", err)
	}

	again, err := DecodeLedger(bytes.NewReader(buf.Bytes()), "USD")
	if err != nil {
		t.Fatalf("re-decoding own output: %v", err)
	}
	if again.NumEntries() != ledger.NumEntries() {
		t.Fatalf("roundtrip lost trades: %d vs %d", again.NumEntries(), ledger.NumEntries())
	}
	for e := range ledger.Entries() {
		back := again.Get(e.ID)
		if back == nil {
			t.Fatalf("trade %s lost in roundtrip", e.ID)
		}
		if back.Status != e.Status || !back.RealizedPnL.Equal(e.RealizedPnL) ||
			!back.Remaining.Equal(e.Remaining) || back.Opened != e.Opened {
			t.Errorf("trade %s changed in roundtrip: %+v vs %+v", e.ID, back, e)
		}
	}
}

func TestEncodeLedgerFormat(t *testing.T) {
	ledger, err := DecodeLedger(strings.NewReader(sampleJournal), "USD")
	if err != nil {
		t.Fatalf("DecodeLedger: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		t.Fatalf("EncodeLedger: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("encoded %d lines, want 4", len(lines))
	}
	// trades first, then flows, command always leading the line
	if !strings.HasPrefix(lines[0], `{"command":"trade"`) {
		t.Errorf("line 0 = %s", lines[0])
	}
	if !strings.HasPrefix(lines[2], `{"command":"deposit"`) {
		t.Errorf("line 2 = %s", lines[2])
	}
	if !strings.HasPrefix(lines[3], `{"command":"withdraw"`) {
		t.Errorf("line 3 = %s", lines[3])
	}
	// numbers written bare, not quoted
	if strings.Contains(lines[2], `"2000"`) {
		t.Errorf("amount quoted in %s", lines[2])
	}
	// an open trade with no realized profit omits the optional fields
	if strings.Contains(lines[1], "closeDate") {
		t.Errorf("trimmed trade carries a closeDate: %s", lines[1])
	}
}
