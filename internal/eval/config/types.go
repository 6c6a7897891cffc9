package config

import (
	"github.com/DjordjeVuckovic/rag-eval/internal/embedding"
	"github.com/DjordjeVuckovic/rag-eval/internal/llm"
	"github.com/DjordjeVuckovic/rag-eval/internal/vectorstore/factory"
)

// RunConfig describes one evaluation run.
type RunConfig struct {
	Dataset        string              `yaml:"dataset" schema:"required" description:"Labeled dataset, JSON or YAML"`
	Output         string              `yaml:"output" schema:"default=eval_results.json"`
	Summary        string              `yaml:"summary,omitempty" description:"Optional JSON run summary path"`
	PromptTemplate string              `yaml:"prompt_template,omitempty" description:"Template file using {{passages}} and {{question}}"`
	Retrieval      RetrievalConfig     `yaml:"retrieval"`
	Run            RunOptions          `yaml:"run"`
	Embedding      embedding.Config    `yaml:"embedding"`
	LLM            llm.Config          `yaml:"llm"`
	VectorStore    factory.StoreConfig `yaml:"vector_store"`
	ResultsDB      *ResultsDBConfig    `yaml:"results_db,omitempty"`
}

type RetrievalConfig struct {
	TopK int `yaml:"top_k" schema:"min=1,default=5"`
}

type OnError string

const (
	// OnErrorAbort stops the batch at the first failing item.
	OnErrorAbort OnError = "abort"
	// OnErrorRecord stores a failed record and moves on.
	OnErrorRecord OnError = "record"
)

type RunOptions struct {
	OnError OnError `yaml:"on_error" schema:"enum=abort|record,default=abort"`
}

type ResultsDBConfig struct {
	Connection string `yaml:"connection" schema:"required"`
}
