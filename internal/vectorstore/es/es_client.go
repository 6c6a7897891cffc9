package es

import (
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
)

const DefaultIndex = "rag_eval_passages"

type ClientConfig struct {
	Addresses []string `yaml:"addresses"`
	IndexName string   `yaml:"index"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`
	// Reset drops the index before seeding. Unset means true.
	Reset *bool `yaml:"reset,omitempty"`
}

// ResetOnOpen reports whether the index is dropped before seeding.
func (c ClientConfig) ResetOnOpen() bool {
	return c.Reset == nil || *c.Reset
}

func newClient(config ClientConfig) (*elasticsearch.Client, error) {
	if len(config.Addresses) == 0 {
		return nil, fmt.Errorf("elasticsearch configuration is incomplete: no addresses")
	}

	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	return elasticsearch.NewClient(cfg)
}
