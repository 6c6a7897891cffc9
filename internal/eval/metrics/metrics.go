package metrics

// Cutoff is the rank window used for every retrieval score in a result record.
const Cutoff = 5

type RetrievalScores struct {
	Recall float64
	MRR    float64
	MAP    float64
}

type GenerationScores struct {
	EM int
	F1 float64
}

// ComputeRetrieval scores a ranked ID list against the gold passage IDs.
func ComputeRetrieval(retrieved []string, goldIDs []string, k int) RetrievalScores {
	relevant := NewSet(goldIDs...)
	return RetrievalScores{
		Recall: RecallAtK(retrieved, relevant, k),
		MRR:    MRRAtK(retrieved, relevant, k),
		MAP:    MAPAtK(retrieved, relevant, k),
	}
}

// ComputeGeneration scores a predicted answer against the acceptable answers.
func ComputeGeneration(prediction string, answers []string) GenerationScores {
	return GenerationScores{
		EM: ExactMatch(prediction, answers),
		F1: F1(prediction, answers),
	}
}
