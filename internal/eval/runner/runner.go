package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/rag-eval/internal/eval/config"
	"github.com/DjordjeVuckovic/rag-eval/internal/eval/dataset"
	"github.com/DjordjeVuckovic/rag-eval/internal/eval/metrics"
	"github.com/DjordjeVuckovic/rag-eval/internal/eval/prompt"
	"github.com/DjordjeVuckovic/rag-eval/internal/eval/results"
	"github.com/DjordjeVuckovic/rag-eval/internal/llm"
	"github.com/DjordjeVuckovic/rag-eval/internal/vectorstore"
)

// Retriever returns up to topK passages for a question, best match first.
// vectorstore.Store satisfies it.
type Retriever interface {
	Query(ctx context.Context, text string, topK int) ([]vectorstore.Hit, error)
}

type Runner struct {
	config    Config
	retriever Retriever
	generator llm.Generator
	writer    results.Writer
	template  *prompt.Template
	now       func() time.Time
}

type Option func(*Runner)

func WithTemplate(t *prompt.Template) Option {
	return func(r *Runner) {
		if t != nil {
			r.template = t
		}
	}
}

// WithClock replaces time.Now for latency measurement.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

func New(cfg Config, retriever Retriever, generator llm.Generator, writer results.Writer, opts ...Option) *Runner {
	if cfg.TopK <= 0 {
		cfg.TopK = config.DefaultTopK
	}
	if cfg.Cutoff <= 0 {
		cfg.Cutoff = metrics.Cutoff
	}
	if cfg.OnError == "" {
		cfg.OnError = config.OnErrorAbort
	}

	r := &Runner{
		config:    cfg,
		retriever: retriever,
		generator: generator,
		writer:    writer,
		template:  prompt.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Seed adds every indexed passage to the store.
func Seed(ctx context.Context, store vectorstore.Store, index *dataset.PassageIndex) error {
	docs := index.Documents()
	if len(docs) == 0 {
		slog.Warn("passage index is empty, nothing to seed")
		return nil
	}

	start := time.Now()
	if err := store.Add(ctx, docs); err != nil {
		return fmt.Errorf("seed vector store: %w", err)
	}
	slog.Info("seeded vector store", "passages", len(docs), "took", time.Since(start))
	return nil
}

// Run evaluates items strictly in order. The full table is persisted once
// before the first item and again after every item. With the abort policy
// the first item failure stops the run and is returned as an *ItemError
// together with the table accumulated so far.
func (r *Runner) Run(ctx context.Context, items []dataset.Item) (*results.Table, error) {
	table := results.NewTable()
	if err := r.writer.Write(ctx, table.Snapshot()); err != nil {
		return table, fmt.Errorf("persist empty result table: %w", err)
	}

	for i := range items {
		item := &items[i]

		if err := ctx.Err(); err != nil {
			return table, err
		}

		record, err := r.evaluate(ctx, i, item)
		if err != nil {
			if ctx.Err() != nil || r.config.OnError == config.OnErrorAbort {
				return table, err
			}
			slog.Warn("item failed, recording", "index", i, "question", item.Question, "error", err)
		}

		n := table.Append(record)
		if err := r.writer.Write(ctx, table.Snapshot()); err != nil {
			return table, &ItemError{Index: i, Question: item.Question, Stage: StagePersist, Err: err}
		}

		if record.Failed() {
			continue
		}
		slog.Info("evaluated item",
			"progress", fmt.Sprintf("%d/%d", n, len(items)),
			"question", record.Question,
			"retrieved_ids", record.RetrievedIDs,
			"recall", results.Value(record.CtxRecall),
			"mrr", results.Value(record.MRR),
			"map", results.Value(record.MAP),
			"pred_answer", results.Value(record.PredAnswer),
			"gen_em", results.Value(record.GenEM),
			"gen_f1", results.Value(record.GenF1),
		)
	}

	return table, nil
}

// evaluate runs one item through retrieval, prompting and generation. On
// failure the returned record holds whatever the earlier stages produced and
// null fields for the rest.
func (r *Runner) evaluate(ctx context.Context, index int, item *dataset.Item) (results.Record, error) {
	record := results.Record{
		Question:           item.Question,
		GroundTruthAnswers: item.Answers,
		RetrievedIDs:       []string{},
	}
	fail := func(stage Stage, err error) (results.Record, error) {
		itemErr := &ItemError{Index: index, Question: item.Question, Stage: stage, Err: err}
		record.Error = fmt.Sprintf("%s: %v", stage, err)
		return record, itemErr
	}

	start := r.now()
	hits, err := r.retriever.Query(ctx, item.Question, r.config.TopK)
	retrievalLatency := millis(r.now().Sub(start))
	if err != nil {
		return fail(StageRetrieve, err)
	}

	ids := vectorstore.IDs(hits)
	retrieval := metrics.ComputeRetrieval(ids, item.ContextIDs, r.config.Cutoff)
	record.RetrievedIDs = ids
	record.CtxRecall = results.Ptr(retrieval.Recall)
	record.MRR = results.Ptr(retrieval.MRR)
	record.MAP = results.Ptr(retrieval.MAP)
	record.RetrievalLatency = results.Ptr(retrievalLatency)

	p := r.template.Render(item.Question, vectorstore.Texts(hits))

	start = r.now()
	answer, err := r.generator.Generate(ctx, p)
	generationLatency := millis(r.now().Sub(start))
	if err != nil {
		return fail(StageGenerate, err)
	}

	gen := metrics.ComputeGeneration(answer, item.Answers)
	record.PredAnswer = results.Ptr(answer)
	record.GenEM = results.Ptr(gen.EM)
	record.GenF1 = results.Ptr(gen.F1)
	// there is no separate end-to-end answer path, e2e scores mirror generation
	record.E2EEM = results.Ptr(gen.EM)
	record.E2EF1 = results.Ptr(gen.F1)
	record.GenerationLatency = results.Ptr(generationLatency)

	return record, nil
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
