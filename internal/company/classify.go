package company

// Classify splits funding entries into regular rounds and the totals row.
// The first entry whose share class is exactly "Totals" becomes the totals row;
// any later matches are kept as regular rows in their original position.
// Regular rows keep their relative order.
func Classify(entries []FundingEntry) ([]FundingEntry, *FundingEntry) {
	regular := make([]FundingEntry, 0, len(entries))
	var totals *FundingEntry
	for i := range entries {
		if totals == nil && entries[i].IsTotals() {
			t := entries[i]
			totals = &t
			continue
		}
		regular = append(regular, entries[i])
	}
	return regular, totals
}
