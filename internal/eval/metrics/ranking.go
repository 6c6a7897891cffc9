package metrics

// Set is a relevance set of passage identifiers.
type Set map[string]struct{}

func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// RecallAtK computes the fraction of relevant IDs found in the top-K.
func RecallAtK(retrieved []string, relevant Set, k int) float64 {
	if len(relevant) == 0 {
		return 0
	}

	var found int
	for _, id := range topK(retrieved, k) {
		if relevant.Contains(id) {
			found++
		}
	}

	return float64(found) / float64(len(relevant))
}

// MRRAtK returns 1/rank of the first relevant ID within the top-K.
func MRRAtK(retrieved []string, relevant Set, k int) float64 {
	for i, id := range topK(retrieved, k) {
		if relevant.Contains(id) {
			return 1.0 / float64(i+1)
		}
	}
	return 0
}

// MAPAtK sums precision at every relevant rank within the top-K and divides by
// the total number of relevant IDs, not by the number of hits.
func MAPAtK(retrieved []string, relevant Set, k int) float64 {
	if len(relevant) == 0 {
		return 0
	}

	var sumPrecision float64
	var hits int

	for i, id := range topK(retrieved, k) {
		if relevant.Contains(id) {
			hits++
			sumPrecision += float64(hits) / float64(i+1)
		}
	}

	return sumPrecision / float64(len(relevant))
}

func topK(retrieved []string, k int) []string {
	if k <= 0 {
		return nil
	}
	return retrieved[:min(k, len(retrieved))]
}
