package results

// Record is one row of the result table. Pointer fields are null when the
// stage producing them failed; Error is only set on failed records, so a
// successful row carries exactly the thirteen evaluation columns.
type Record struct {
	Question           string   `json:"question" schema:"required"`
	GroundTruthAnswers []string `json:"ground_truth_answers" schema:"required"`
	RetrievedIDs       []string `json:"retrieved_ids" schema:"required" description:"Retrieved passage IDs, best match first"`
	CtxRecall          *float64 `json:"ctx_recall@5" schema:"required,min=0,max=1"`
	MRR                *float64 `json:"mrr@5" schema:"required,min=0,max=1"`
	MAP                *float64 `json:"map@5" schema:"required,min=0,max=1"`
	PredAnswer         *string  `json:"pred_answer" schema:"required"`
	GenEM              *int     `json:"gen_em" schema:"required,min=0,max=1"`
	GenF1              *float64 `json:"gen_f1" schema:"required,min=0,max=1"`
	E2EEM              *int     `json:"e2e_em" schema:"required,min=0,max=1"`
	E2EF1              *float64 `json:"e2e_f1" schema:"required,min=0,max=1"`
	// latencies are in milliseconds
	RetrievalLatency  *float64 `json:"retrieval_latency" schema:"required,min=0" description:"Milliseconds"`
	GenerationLatency *float64 `json:"generation_latency" schema:"required,min=0" description:"Milliseconds"`
	Error             string   `json:"error,omitempty" description:"Set only on failed records, as <stage>: <message>"`
}

func (r Record) Failed() bool {
	return r.Error != ""
}

// Ptr returns a pointer to v, for filling nullable record fields.
func Ptr[T any](v T) *T {
	return &v
}

// Value dereferences p, returning the zero value for nil.
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
