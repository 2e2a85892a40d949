// Package pool builds seed pools: per size and difficulty, lists of
// seeds whose generated grids a propagation solve finishes without
// guessing. Serving from a pool guarantees the player a puzzle that
// never needs trial and error.
package pool

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"nonogrid/internal/domain"
	"nonogrid/internal/generator"
	"nonogrid/internal/ports"
	"nonogrid/internal/solver"
)

// Config asks for Count vetted seeds at one size and difficulty.
type Config struct {
	Size       int
	Difficulty domain.Difficulty
	Count      int
}

// Result carries the pool built for a Config. Attempts is the number
// of budget draws consumed, duplicate draws included, so a Result with
// a short pool and Attempts == Budget means the band was exhausted.
type Result struct {
	Config   Config
	Pool     domain.SeedPool
	Attempts int
}

type Curator struct {
	Gen     ports.Generator
	Log     *logrus.Logger
	Workers int
	Budget  int

	// Source overrides the random seed draw, mainly for tests. It must
	// be safe for concurrent use when Workers > 1.
	Source func() domain.Seed
}

func New(gen ports.Generator, log *logrus.Logger) *Curator {
	return &Curator{Gen: gen, Log: log, Workers: 4, Budget: 2000}
}

// Curate vets every config in parallel and returns results ordered by
// (size, difficulty key) regardless of completion order.
func (c *Curator) Curate(ctx context.Context, cfgs []Config) []Result {
	workers := c.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan Config)
	results := make(chan Result, len(cfgs))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cfg := range jobs {
				results <- c.curateOne(ctx, cfg)
			}
		}()
	}
	for _, cfg := range cfgs {
		jobs <- cfg
	}
	close(jobs)
	wg.Wait()
	close(results)

	out := make([]Result, 0, len(cfgs))
	for res := range results {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Config.Size != out[j].Config.Size {
			return out[i].Config.Size < out[j].Config.Size
		}
		return out[i].Config.Difficulty.Key < out[j].Config.Difficulty.Key
	})
	return out
}

func (c *Curator) curateOne(ctx context.Context, cfg Config) Result {
	prop := solver.NewPropagator(solver.NewLineSolver(4096))

	draw := c.Source
	if draw == nil {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		draw = func() domain.Seed { return domain.Seed(rng.Uint32()) }
	}

	seen := mapset.New[domain.Seed]()
	pool := domain.SeedPool{
		Version:    generator.Version,
		Size:       cfg.Size,
		Difficulty: cfg.Difficulty.Key,
	}
	attempts := 0
	for attempts < c.Budget && len(pool.Seeds) < cfg.Count {
		if ctx.Err() != nil {
			break
		}
		attempts++
		seed := draw()
		if seen.Has(seed) {
			continue
		}
		seen.Put(seed)

		grid := c.Gen.Synthesize(seed, cfg.Size, cfg.Difficulty)
		b := domain.NewBoard(cfg.Size)
		if solved, _ := prop.Run(b, domain.ExtractClues(grid)); solved && b.MatchesGrid(grid) {
			pool.Seeds = append(pool.Seeds, seed)
		}
	}

	if len(pool.Seeds) < cfg.Count && c.Log != nil {
		c.Log.WithFields(logrus.Fields{
			"size":       cfg.Size,
			"difficulty": cfg.Difficulty.Key,
			"want":       cfg.Count,
			"got":        len(pool.Seeds),
			"attempts":   attempts,
		}).Warn("seed pool under target")
	}
	return Result{Config: cfg, Pool: pool, Attempts: attempts}
}
