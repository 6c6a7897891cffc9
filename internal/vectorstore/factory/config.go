package factory

import (
	"fmt"

	"github.com/DjordjeVuckovic/rag-eval/internal/vectorstore"
	"github.com/DjordjeVuckovic/rag-eval/internal/vectorstore/es"
)

type PgConfig struct {
	Connection string `yaml:"connection" schema:"required"`
	Collection string `yaml:"collection"`
	// Reset clears the collection before seeding. Unset means true.
	Reset *bool `yaml:"reset,omitempty"`
}

// ResetOnOpen reports whether the collection is cleared before seeding.
func (c PgConfig) ResetOnOpen() bool {
	return c.Reset == nil || *c.Reset
}

type StoreConfig struct {
	Type vectorstore.Type `yaml:"type" schema:"enum=in_mem|pg|es,default=in_mem"`
	Pg   *PgConfig        `yaml:"pg,omitempty"`
	Es   *es.ClientConfig `yaml:"es,omitempty"`
}

func (c *StoreConfig) Validate() error {
	switch c.Type {
	case "":
		c.Type = vectorstore.InMem
	case vectorstore.InMem:
	case vectorstore.PG:
		if c.Pg == nil || c.Pg.Connection == "" {
			return fmt.Errorf("vector store %q requires pg.connection", c.Type)
		}
	case vectorstore.ES:
		if c.Es == nil || len(c.Es.Addresses) == 0 {
			return fmt.Errorf("vector store %q requires es.addresses", c.Type)
		}
	default:
		return fmt.Errorf(string(vectorstore.ErrUnsupportedStore), c.Type)
	}
	return nil
}
