package metrics

// ExactMatch returns 1 when the normalized prediction equals any normalized
// ground truth, 0 otherwise. No ground truths means no match.
func ExactMatch(prediction string, groundTruths []string) int {
	pred := Normalize(prediction)
	for _, gt := range groundTruths {
		if Normalize(gt) == pred {
			return 1
		}
	}
	return 0
}

// F1 returns the best token-level F1 between the prediction and any ground truth.
// Tokens are compared as sets; precision and recall are taken over the token counts.
func F1(prediction string, groundTruths []string) float64 {
	predTokens := Tokens(prediction)

	var best float64
	for _, gt := range groundTruths {
		if f := tokenF1(predTokens, Tokens(gt)); f > best {
			best = f
		}
	}
	return best
}

func tokenF1(pred, truth []string) float64 {
	if len(pred) == 0 || len(truth) == 0 {
		return 0
	}

	truthSet := make(map[string]struct{}, len(truth))
	for _, t := range truth {
		truthSet[t] = struct{}{}
	}

	common := make(map[string]struct{})
	for _, p := range pred {
		if _, ok := truthSet[p]; ok {
			common[p] = struct{}{}
		}
	}
	if len(common) == 0 {
		return 0
	}

	precision := float64(len(common)) / float64(len(pred))
	recall := float64(len(common)) / float64(len(truth))

	return 2 * precision * recall / (precision + recall)
}
