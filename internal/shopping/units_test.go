package shopping

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNormalizeUnit(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"g", UnitGram},
		{"  Grams ", UnitGram},
		{"г", UnitGram},
		{"KG", UnitKilogram},
		{"Ст. Л.", UnitTablespoon},
		{"ч.л.", UnitTeaspoon},
		{"шт.", UnitPiece},
		{"Pieces", UnitPiece},
		{"по вкусу", UnitToTaste},
		{"  Handful  ", "Handful"},
		{"big\n\tbowl", "big bowl"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeUnit(tt.raw); got != tt.want {
				t.Errorf("NormalizeUnit(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("  Sea   SALT "); got != "sea salt" {
		t.Errorf("Expected 'sea salt', got %q", got)
	}
	if got := DisplayName("  Sea   SALT "); got != "Sea SALT" {
		t.Errorf("Expected 'Sea SALT', got %q", got)
	}
	if NormalizeName("Картофель") != NormalizeName("картофель") {
		t.Error("Expected Cyrillic names to fold to the same key")
	}
}

func TestParseAmount(t *testing.T) {
	valid := map[string]string{
		"200":   "200",
		" 2 ":   "2",
		"100.5": "100.5",
		"1,5":   "1.5",
		"0":     "0",
	}
	for raw, want := range valid {
		got, err := ParseAmount(raw)
		if err != nil {
			t.Errorf("ParseAmount(%q) failed: %v", raw, err)
			continue
		}
		if !got.Equal(decimal.RequireFromString(want)) {
			t.Errorf("ParseAmount(%q) = %s, want %s", raw, got, want)
		}
	}

	invalid := map[string]string{
		"":     "empty",
		"   ":  "empty",
		"NaN":  "not a finite number",
		"+Inf": "not a finite number",
		"-1":   "negative",
		"abc":  "not a decimal number",
	}
	for raw, reason := range invalid {
		_, err := ParseAmount(raw)
		var invalidErr *InvalidAmountError
		if !errors.As(err, &invalidErr) {
			t.Errorf("ParseAmount(%q): expected *InvalidAmountError, got %v", raw, err)
			continue
		}
		if invalidErr.Reason != reason {
			t.Errorf("ParseAmount(%q): expected reason %q, got %q", raw, reason, invalidErr.Reason)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		entry AggregatedEntry
		want  string
	}{
		{AggregatedEntry{Unit: UnitPiece, TotalAmount: decimal.NewFromInt(2)}, "2"},
		{AggregatedEntry{Unit: UnitPiece, TotalAmount: decimal.RequireFromString("2.5")}, "2.50"},
		{AggregatedEntry{Unit: UnitGram, TotalAmount: decimal.NewFromInt(350)}, "350.00"},
		{AggregatedEntry{Unit: UnitMillilitre, TotalAmount: decimal.RequireFromString("0.125")}, "0.13"},
		{AggregatedEntry{Unit: "", TotalAmount: decimal.NewFromInt(1)}, "1.00"},
	}
	for _, tt := range tests {
		if got := tt.entry.FormatAmount(); got != tt.want {
			t.Errorf("FormatAmount(%s %q) = %q, want %q", tt.entry.TotalAmount, tt.entry.Unit, got, tt.want)
		}
	}
}
