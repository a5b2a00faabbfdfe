package valuation

import (
	"fmt"
	"log"
	"sync"

	"statvalue-backend/internal/model"
	"statvalue-backend/internal/store"
)

// Context owns the lazily-initialized projection state: the model artifact and
// the engineered historical dataset. Loading happens at most once per process
// under the mutex; once loaded, the bundle is read-only and safe for
// concurrent use. A failed load is reported to the caller and attempted again
// on the next request rather than being retried in the background.
type Context struct {
	modelDir string

	mu       sync.Mutex
	artifact *Artifact
	dataset  *Dataset
}

// NewContext prepares a projection context; nothing is loaded until first use.
func NewContext(modelDir string) *Context {
	return &Context{modelDir: modelDir}
}

func (c *Context) ensureLoaded() (*Artifact, *Dataset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.artifact != nil && c.dataset != nil {
		return c.artifact, c.dataset, nil
	}

	log.Printf("loading value projection model from %s", c.modelDir)
	artifact, err := LoadArtifact(c.modelDir)
	if err != nil {
		log.Printf("value projection model load failed: %v", err)
		return nil, nil, fmt.Errorf("%w: %v", model.ErrModelUnavailable, err)
	}

	raw, err := store.ValueRows()
	if err != nil {
		log.Printf("historical dataset load failed: %v", err)
		return nil, nil, fmt.Errorf("%w: %v", model.ErrModelUnavailable, err)
	}
	dataset := BuildDataset(raw, artifact.Features)

	c.artifact = artifact
	c.dataset = dataset
	log.Printf("value projection model ready: %d features, lookback %d, %d players",
		len(artifact.Features), artifact.Lookback, len(dataset.byPlayer))
	return artifact, dataset, nil
}
