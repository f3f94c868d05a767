package shopping

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// UnitKind groups canonical units by what they measure.
type UnitKind int

const (
	KindUnknown UnitKind = iota
	KindMass
	KindVolume
	KindCount
	KindOther
)

// Canonical unit tokens.
const (
	UnitGram       = "g"
	UnitKilogram   = "kg"
	UnitMilligram  = "mg"
	UnitMillilitre = "ml"
	UnitLitre      = "l"
	UnitTeaspoon   = "tsp"
	UnitTablespoon = "tbsp"
	UnitCup        = "cup"
	UnitDrop       = "drop"
	UnitPiece      = "pcs"
	UnitClove      = "clove"
	UnitPinch      = "pinch"
	UnitCan        = "can"
	UnitBunch      = "bunch"
	UnitSlice      = "slice"
	UnitPack       = "pack"
	UnitToTaste    = "to taste"
)

var unitKinds = map[string]UnitKind{
	UnitGram:       KindMass,
	UnitKilogram:   KindMass,
	UnitMilligram:  KindMass,
	UnitMillilitre: KindVolume,
	UnitLitre:      KindVolume,
	UnitTeaspoon:   KindVolume,
	UnitTablespoon: KindVolume,
	UnitCup:        KindVolume,
	UnitDrop:       KindVolume,
	UnitPiece:      KindCount,
	UnitClove:      KindCount,
	UnitPinch:      KindCount,
	UnitCan:        KindCount,
	UnitBunch:      KindCount,
	UnitSlice:      KindCount,
	UnitPack:       KindCount,
	UnitToTaste:    KindOther,
}

// unitAliases maps spellings found in recipe data onto canonical tokens.
// Keys are compacted with unitKey at init.
var unitAliases = map[string]string{}

func init() {
	aliases := map[string][]string{
		UnitGram:       {"g", "gr", "gram", "grams", "gramme", "grammes", "г", "гр", "грамм"},
		UnitKilogram:   {"kg", "kilo", "kilos", "kilogram", "kilograms", "кг", "килограмм"},
		UnitMilligram:  {"mg", "milligram", "milligrams", "мг"},
		UnitMillilitre: {"ml", "millilitre", "millilitres", "milliliter", "milliliters", "мл"},
		UnitLitre:      {"l", "litre", "litres", "liter", "liters", "л"},
		UnitTeaspoon:   {"tsp", "teaspoon", "teaspoons", "ч. л.", "ч.л.", "чайная ложка"},
		UnitTablespoon: {"tbsp", "tablespoon", "tablespoons", "ст. л.", "ст.л.", "столовая ложка"},
		UnitCup:        {"cup", "cups", "стакан", "стакана", "стаканов"},
		UnitDrop:       {"drop", "drops", "капля", "капли", "капель"},
		UnitPiece:      {"pcs", "pc", "piece", "pieces", "шт", "шт.", "штука", "штуки"},
		UnitClove:      {"clove", "cloves", "зубчик", "зубчика", "зубчиков"},
		UnitPinch:      {"pinch", "pinches", "щепотка", "щепотки"},
		UnitCan:        {"can", "cans", "tin", "tins", "банка", "банки"},
		UnitBunch:      {"bunch", "bunches", "пучок", "пучка"},
		UnitSlice:      {"slice", "slices", "ломтик", "ломтика", "кусок"},
		UnitPack:       {"pack", "packs", "package", "упаковка", "упаковки", "пакет"},
		UnitToTaste:    {"to taste", "по вкусу"},
	}
	for canonical, spellings := range aliases {
		for _, s := range spellings {
			unitAliases[unitKey(s)] = canonical
		}
	}
}

// unitKey folds case and drops all whitespace so "ст. л." and "Ст.Л." match.
func unitKey(s string) string {
	folded := cases.Fold().String(norm.NFC.String(s))
	return strings.Join(strings.Fields(folded), "")
}

// NormalizeUnit returns the canonical token for a known unit. Unknown units
// keep their case with whitespace runs collapsed to single spaces, so a unit
// can never span lines.
func NormalizeUnit(raw string) string {
	if canonical, ok := unitAliases[unitKey(raw)]; ok {
		return canonical
	}
	return DisplayName(raw)
}

// KindOf reports the kind of a canonical unit token.
func KindOf(unit string) UnitKind {
	return unitKinds[unit]
}

// IsCountUnit reports whether unit counts whole things (pieces, cloves...).
func IsCountUnit(unit string) bool {
	return KindOf(unit) == KindCount
}

// NormalizeName is the canonical form used as the name part of the merge key.
func NormalizeName(raw string) string {
	return cases.Fold().String(DisplayName(raw))
}

// DisplayName trims and collapses whitespace without changing case.
func DisplayName(raw string) string {
	return strings.Join(strings.Fields(norm.NFC.String(raw)), " ")
}

// ParseAmount parses an amount as stored upstream. Empty, malformed,
// non-finite and negative values fail with *InvalidAmountError.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, &InvalidAmountError{Amount: raw, Reason: "empty"}
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	// decimal rejects these too, but with a less useful message.
	if f, err := strconv.ParseFloat(s, 64); err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return decimal.Zero, &InvalidAmountError{Amount: raw, Reason: "not a finite number"}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &InvalidAmountError{Amount: raw, Reason: "not a decimal number"}
	}
	if d.IsNegative() {
		return decimal.Zero, &InvalidAmountError{Amount: raw, Reason: "negative"}
	}
	return d, nil
}
