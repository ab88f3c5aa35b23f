package rules

// Row is one entry of a payment method list. Card brands covered by a
// grouping rule share a single row.
type Row struct {
	Codes   []string
	Grouped bool
}

// Group partitions codes into list rows. Codes with a grouping rule are
// collected into one row placed where the first of them appeared; all other
// codes keep their own row in input order.
func (r *Repository) Group(codes []string) []Row {
	known := make(map[string]struct{}, len(r.GroupingRules()))
	for _, rule := range r.GroupingRules() {
		known[rule.Code] = struct{}{}
	}

	rows := make([]Row, 0, len(codes))
	groupIndex := -1
	for _, code := range codes {
		if _, ok := known[code]; !ok {
			rows = append(rows, Row{Codes: []string{code}})
			continue
		}
		if groupIndex < 0 {
			groupIndex = len(rows)
			rows = append(rows, Row{Grouped: true})
		}
		rows[groupIndex].Codes = append(rows[groupIndex].Codes, code)
	}
	return rows
}
