package cli

import (
	"path/filepath"

	"github.com/propscan/ddrgen/internal/cache"
	"github.com/propscan/ddrgen/internal/llm"
	"github.com/propscan/ddrgen/internal/model"
	"github.com/propscan/ddrgen/internal/worker"
)

// newClientAndCache builds the rate-limited LLM client plus the response
// cache the LLM-backed stages share.
func newClientAndCache(cfg *model.Config) (llm.Client, cache.Cache, error) {
	limiter := worker.NewLimiter(cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.Burst)
	client, err := llm.NewOpenAIClient(cfg.LLM, limiter)
	if err != nil {
		return nil, nil, err
	}

	var respCache cache.Cache
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			dir = filepath.Join(cfg.Output.Dir, ".cache")
		}
		respCache = cache.NewLayeredCache(cfg.Cache.TTL, dir, cfg.Cache.TTL)
	}

	return client, respCache, nil
}
