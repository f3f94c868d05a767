package shopping

type entryKey struct {
	name string
	unit string
}

// Aggregate merges lines sharing a normalized (name, unit) key and sums
// their amounts exactly. Lines with different units are never merged, even
// when the units measure the same thing. The result order is unspecified;
// pass it through Sort before rendering.
//
// A negative amount aborts the whole aggregation with *InvalidAmountError.
func Aggregate(lines []IngredientLine) ([]AggregatedEntry, error) {
	totals := make(map[entryKey]*AggregatedEntry, len(lines))
	order := make([]entryKey, 0, len(lines))

	for _, line := range lines {
		if line.Amount.IsNegative() {
			return nil, &InvalidAmountError{
				Name:   line.Name,
				Unit:   line.Unit,
				Amount: line.Amount.String(),
				Reason: "negative",
			}
		}

		name := DisplayName(line.Name)
		unit := NormalizeUnit(line.Unit)
		key := entryKey{name: NormalizeName(line.Name), unit: unit}

		entry, ok := totals[key]
		if !ok {
			totals[key] = &AggregatedEntry{Name: name, Unit: unit, TotalAmount: line.Amount}
			order = append(order, key)
			continue
		}

		entry.TotalAmount = entry.TotalAmount.Add(line.Amount)
		// Keep the smallest spelling so the display name does not depend on input order.
		if name < entry.Name {
			entry.Name = name
		}
	}

	entries := make([]AggregatedEntry, 0, len(order))
	for _, key := range order {
		entries = append(entries, *totals[key])
	}
	return entries, nil
}
