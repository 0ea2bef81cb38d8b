// Package calculator computes specular reflectivity of one-dimensional slab
// models with the Abelès characteristic-matrix recursion.
//
// The pipeline is a map over q composed with a left fold over layers:
//
//	Wavevectors → FresnelCoefficients → Phases → CharacteristicMatrices → Compose → Extract
//
// Reflectivity runs it sequentially. Calculator runs the same stages on
// chunks of q in parallel and can memoize whole curves; both give
// bit-identical results.
package calculator

import (
	"context"

	log "github.com/sirupsen/logrus"

	"refl/cache"
)

type Calculator struct {
	cfg  Config
	e    *executor
	memo *cache.Memo
}

type Option func(c *Calculator)

// WithMemo attaches a memo. A nil memo disables memoization.
func WithMemo(m *cache.Memo) Option {
	return func(c *Calculator) {
		c.memo = m
	}
}

func New(cfg Config, opts ...Option) *Calculator {
	c := &Calculator{
		cfg: cfg,
		e:   newExecutor(cfg.Workers, cfg.MinChunk),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Calculator) Memo() *cache.Memo {
	return c.memo
}

// Reflectivity is the parallel form of the package-level Reflectivity.
// It returns ctx.Err() if ctx ends before every chunk has been handed out.
func (c *Calculator) Reflectivity(ctx context.Context, q []float64, beta []complex128, d []float64) ([]float64, error) {
	if err := validate(beta, d); err != nil {
		return nil, err
	}

	var key cache.Key
	if c.memo != nil {
		var err error
		if key, err = cache.KeyOf(q, beta, d); err != nil {
			return nil, err
		}
		if out, ok := c.memo.Get(key); ok {
			log.WithFields(log.Fields{
				"points": len(q),
				"layers": len(beta),
			}).Debug("reflectivity served from memo")
			return out, nil
		}
	}

	out := make([]float64, len(q))
	tasks, elapsed, err := c.e.dispatch(ctx, len(q), func(t task) {
		evaluate(q[t.start:t.end], beta, d, out[t.start:t.end])
	})
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"points":  len(q),
		"layers":  len(beta),
		"tasks":   tasks,
		"elapsed": elapsed,
	}).Debug("reflectivity evaluated")

	c.memo.Put(key, out)
	return out, nil
}
