package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/rag-eval/internal/apperr"
	"github.com/DjordjeVuckovic/rag-eval/internal/embedding"
	"github.com/DjordjeVuckovic/rag-eval/internal/llm"
	"github.com/DjordjeVuckovic/rag-eval/internal/vectorstore"
)

func TestParse(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		yaml := `
dataset: data/squad_sample.json
output: out/eval_results.json
summary: out/summary.json
prompt_template: configs/prompt.txt

retrieval:
  top_k: 10

run:
  on_error: record

embedding:
  provider: openai
  model: text-embedding-3-small
  max_length: 256

llm:
  provider: anthropic
  model: claude-3-5-haiku-latest
  max_tokens: 512
  temperature: 0

vector_store:
  type: pg
  pg:
    connection: "postgresql://localhost/rag"
    collection: squad
    reset: false

results_db:
  connection: "postgresql://localhost/rag"
`
		c, err := Parse([]byte(yaml))
		require.NoError(t, err)

		assert.Equal(t, "data/squad_sample.json", c.Dataset)
		assert.Equal(t, "out/eval_results.json", c.Output)
		assert.Equal(t, "out/summary.json", c.Summary)
		assert.Equal(t, "configs/prompt.txt", c.PromptTemplate)
		assert.Equal(t, 10, c.Retrieval.TopK)
		assert.Equal(t, OnErrorRecord, c.Run.OnError)
		assert.Equal(t, embedding.ProviderOpenAI, c.Embedding.Provider)
		assert.Equal(t, 256, c.Embedding.MaxLength)
		assert.Equal(t, llm.ProviderAnthropic, c.LLM.Provider)
		require.NotNil(t, c.LLM.Temperature)
		assert.Zero(t, *c.LLM.Temperature)
		assert.Equal(t, vectorstore.PG, c.VectorStore.Type)
		assert.Equal(t, "squad", c.VectorStore.Pg.Collection)
		require.NotNil(t, c.VectorStore.Pg.Reset)
		assert.False(t, c.VectorStore.Pg.ResetOnOpen())
		require.NotNil(t, c.ResultsDB)
	})

	t.Run("defaults", func(t *testing.T) {
		c, err := Parse([]byte("dataset: data.json\n"))
		require.NoError(t, err)

		assert.Equal(t, "eval_results.json", c.Output)
		assert.Empty(t, c.Summary)
		assert.Equal(t, DefaultTopK, c.Retrieval.TopK)
		assert.Equal(t, OnErrorAbort, c.Run.OnError)
		assert.Equal(t, embedding.ProviderOllama, c.Embedding.Provider)
		assert.Equal(t, llm.ProviderLMStudio, c.LLM.Provider)
		assert.Equal(t, vectorstore.InMem, c.VectorStore.Type)
		assert.Nil(t, c.ResultsDB)
	})

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "no dataset",
			yaml:    "output: x.json\n",
			wantErr: "no dataset",
		},
		{
			name:    "negative top_k",
			yaml:    "dataset: d.json\nretrieval:\n  top_k: -1\n",
			wantErr: "top_k",
		},
		{
			name:    "unknown on_error",
			yaml:    "dataset: d.json\nrun:\n  on_error: skip\n",
			wantErr: "on_error",
		},
		{
			name:    "unknown embedding provider",
			yaml:    "dataset: d.json\nembedding:\n  provider: cohere\n",
			wantErr: "embedding provider",
		},
		{
			name:    "unknown llm provider",
			yaml:    "dataset: d.json\nllm:\n  provider: gemini\n",
			wantErr: "llm provider",
		},
		{
			name:    "pg store without connection",
			yaml:    "dataset: d.json\nvector_store:\n  type: pg\n",
			wantErr: "pg.connection",
		},
		{
			name:    "unsupported store",
			yaml:    "dataset: d.json\nvector_store:\n  type: chroma\n",
			wantErr: "unsupported vector store type: chroma",
		},
		{
			name:    "results_db without connection",
			yaml:    "dataset: d.json\nresults_db: {}\n",
			wantErr: "results_db",
		},
		{
			name:    "malformed yaml",
			yaml:    "dataset: [unclosed\n",
			wantErr: "parse run config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var verr *apperr.ValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}
}

func TestValidate_AfterOverride(t *testing.T) {
	c := &RunConfig{}
	assert.Error(t, c.Validate())
	assert.Equal(t, DefaultTopK, c.Retrieval.TopK)

	c.Dataset = "data.json"
	c.Run.OnError = OnErrorRecord
	require.NoError(t, c.Validate())
	assert.Equal(t, OnErrorRecord, c.Run.OnError)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dataset: data.json\nretrieval:\n  top_k: 3\n"), 0644))

	c, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Retrieval.TopK)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestReadFile_DoesNotValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retrieval:\n  top_k: 7\n"), 0644))

	c, err := ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, c.Dataset)
	assert.Equal(t, 7, c.Retrieval.TopK)

	c.Dataset = "data.json"
	require.NoError(t, c.Validate())
	assert.Equal(t, OnErrorAbort, c.Run.OnError)
}

func TestLoadFromFile_SampleConfig(t *testing.T) {
	c, err := LoadFromFile("../../../configs/rag_eval.yaml")
	require.NoError(t, err)

	assert.Equal(t, "data/squad_sample.json", c.Dataset)
	assert.Equal(t, DefaultTopK, c.Retrieval.TopK)
	assert.Equal(t, vectorstore.InMem, c.VectorStore.Type)
	assert.Equal(t, "all-minilm", c.Embedding.Model)
}
