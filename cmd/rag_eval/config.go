package main

import (
	"flag"
	"fmt"

	"github.com/DjordjeVuckovic/rag-eval/internal/eval/config"
)

type cliConfig struct {
	ConfigPath     string
	Dataset        string
	Output         string
	Summary        string
	PromptTemplate string
	TopK           int
	OnError        string
	Verbose        bool
}

func parseFlags(args []string) (cliConfig, error) {
	cfg := cliConfig{}

	fs := flag.NewFlagSet("rag_eval", flag.ContinueOnError)
	fs.StringVar(&cfg.ConfigPath, "config", "", "Path to run config YAML")
	fs.StringVar(&cfg.Dataset, "dataset", "", "Path to labeled dataset (JSON or YAML), overrides config")
	fs.StringVar(&cfg.Output, "output", "", "Path of the result file, overrides config (default eval_results.json)")
	fs.StringVar(&cfg.Summary, "summary", "", "Optional path for a JSON run summary")
	fs.StringVar(&cfg.PromptTemplate, "prompt", "", "Optional prompt template file with {{passages}} and {{question}}")
	fs.IntVar(&cfg.TopK, "top-k", 0, "Passages retrieved per question, overrides config (default 5)")
	fs.StringVar(&cfg.OnError, "on-error", "", "Item failure policy: abort or record, overrides config")
	fs.BoolVar(&cfg.Verbose, "v", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// runConfig loads the YAML config when one is given, lets non-empty flags
// override it and validates the result.
func (c cliConfig) runConfig() (*config.RunConfig, error) {
	rc := &config.RunConfig{}
	if c.ConfigPath != "" {
		var err error
		if rc, err = config.ReadFile(c.ConfigPath); err != nil {
			return nil, fmt.Errorf("load run config %s: %w", c.ConfigPath, err)
		}
	}

	c.apply(rc)
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	return rc, nil
}

func (c cliConfig) apply(rc *config.RunConfig) {
	if c.Dataset != "" {
		rc.Dataset = c.Dataset
	}
	if c.Output != "" {
		rc.Output = c.Output
	}
	if c.Summary != "" {
		rc.Summary = c.Summary
	}
	if c.PromptTemplate != "" {
		rc.PromptTemplate = c.PromptTemplate
	}
	if c.TopK > 0 {
		rc.Retrieval.TopK = c.TopK
	}
	if c.OnError != "" {
		rc.Run.OnError = config.OnError(c.OnError)
	}
}
