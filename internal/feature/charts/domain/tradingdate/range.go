package tradingdate

// Range is an inclusive tradingDate filter. An empty bound is unbounded.
// From is the start of the first Kolkata day, To the last millisecond of the final one.
type Range struct {
	From string
	To   string
}

// NewRange builds a Range from optional calendar-date strings.
// A start after the end is kept as-is and matches nothing.
func NewRange(startDate, endDate string) (Range, error) {
	var r Range
	if startDate != "" {
		from, err := StartOfDay(startDate)
		if err != nil {
			return Range{}, err
		}
		r.From = Format(from)
	}
	if endDate != "" {
		to, err := EndOfDay(endDate)
		if err != nil {
			return Range{}, err
		}
		r.To = Format(to)
	}
	return r, nil
}

// Unbounded reports whether the range matches every record.
func (r Range) Unbounded() bool {
	return r.From == "" && r.To == ""
}
