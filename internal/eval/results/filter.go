package results

// Filter narrows a result table the way the dashboard does. A nil threshold
// is not applied; a set threshold excludes records whose metric is null.
type Filter struct {
	MinRecall *float64
	MinMRR    *float64
	MinF1     *float64
	// EMZeroOnly keeps only answers that missed exact match.
	EMZeroOnly bool
}

func (f Filter) Match(r Record) bool {
	if !atLeast(r.CtxRecall, f.MinRecall) {
		return false
	}
	if !atLeast(r.MRR, f.MinMRR) {
		return false
	}
	if !atLeast(r.GenF1, f.MinF1) {
		return false
	}
	if f.EMZeroOnly && (r.GenEM == nil || *r.GenEM != 0) {
		return false
	}
	return true
}

func (f Filter) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

func atLeast(v, threshold *float64) bool {
	if threshold == nil {
		return true
	}
	return v != nil && *v >= *threshold
}
