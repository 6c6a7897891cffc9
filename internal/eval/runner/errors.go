package runner

import "fmt"

type Stage string

const (
	StageRetrieve Stage = "retrieve"
	StageGenerate Stage = "generate"
	StagePersist  Stage = "persist"
)

// ItemError is a failure while evaluating one dataset item.
type ItemError struct {
	Index    int
	Question string
	Stage    Stage
	Err      error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d (%q): %s: %v", e.Index, e.Question, e.Stage, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
