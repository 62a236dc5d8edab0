package session

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/razeghi71/ask/ast"
	"github.com/razeghi71/ask/engine"
	"github.com/razeghi71/ask/lexer"
	"github.com/razeghi71/ask/loader"
	"github.com/razeghi71/ask/metrics"
	"github.com/razeghi71/ask/parser"
	"github.com/razeghi71/ask/table"
	"github.com/sirupsen/logrus"
)

// ErrEmptyQuery is returned for questions that are empty or whitespace.
var ErrEmptyQuery = errors.New("empty question")

// Options configure a Session. Zero values disable memoization, metrics
// and logging.
type Options struct {
	Identifier string // identifier column for datasets loaded by LoadFile
	CacheTTL   time.Duration
	CacheSize  int
	Metrics    *metrics.Metrics
	Logger     *logrus.Logger
}

// snapshot pairs a dataset with its generation so both are swapped at once.
type snapshot struct {
	ds     *table.Dataset
	gen    uint64
	source string
}

type cacheKey struct {
	gen   uint64
	query string // normalized question text
}

// Session owns the dataset questions are answered against.
//
// Replacing the dataset swaps an immutable snapshot, so a question being
// answered keeps reading the dataset it started with.
type Session struct {
	current    atomic.Pointer[snapshot]
	nextGen    atomic.Uint64
	identifier string
	cache      *ttlcache.Cache[cacheKey, *engine.Result]
	metrics    *metrics.Metrics
	log        *logrus.Logger
}

// New creates a session answering against ds. source names where ds came
// from and is only used for display.
func New(ds *table.Dataset, source string, opts Options) *Session {
	s := &Session{
		identifier: opts.Identifier,
		metrics:    opts.Metrics,
		log:        opts.Logger,
	}
	if s.log == nil {
		s.log = logrus.New()
		s.log.Out = io.Discard
	}

	if opts.CacheSize > 0 {
		s.cache = ttlcache.New[cacheKey, *engine.Result](
			ttlcache.WithTTL[cacheKey, *engine.Result](opts.CacheTTL),
			ttlcache.WithCapacity[cacheKey, *engine.Result](uint64(opts.CacheSize)),
		)
		go s.cache.Start()
	}

	s.Replace(ds, source)
	if s.metrics != nil {
		s.metrics.ObserveLoad(ds.Len(), nil)
	}
	return s
}

// Close stops background work.
func (s *Session) Close() {
	if s.cache != nil {
		s.cache.Stop()
	}
}

// Dataset returns the current dataset.
func (s *Session) Dataset() *table.Dataset {
	return s.current.Load().ds
}

// Source returns where the current dataset came from.
func (s *Session) Source() string {
	return s.current.Load().source
}

// Generation returns the number of times the dataset has been set.
func (s *Session) Generation() uint64 {
	return s.current.Load().gen
}

// Replace makes ds the current dataset. Memoized answers for the previous
// dataset are dropped.
func (s *Session) Replace(ds *table.Dataset, source string) {
	gen := s.nextGen.Add(1)
	s.current.Store(&snapshot{ds: ds, gen: gen, source: source})
	if s.cache != nil {
		s.cache.DeleteAll()
	}
	s.log.WithFields(logrus.Fields{
		"source":     source,
		"rows":       ds.Len(),
		"columns":    len(ds.Columns()),
		"identifier": ds.Identifier(),
		"generation": gen,
	}).Info("dataset ready")
}

// LoadFile loads a dataset file and makes it current. On error the current
// dataset is kept.
func (s *Session) LoadFile(path string) error {
	ds, err := s.load(path)
	if s.metrics != nil {
		rows := 0
		if ds != nil {
			rows = ds.Len()
		}
		s.metrics.ObserveLoad(rows, err)
	}
	if err != nil {
		s.log.WithFields(logrus.Fields{"source": path, "err": err}).Error("dataset load failed")
		return err
	}
	s.Replace(ds, path)
	return nil
}

func (s *Session) load(path string) (*table.Dataset, error) {
	tbl, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	ds, err := table.NewDataset(tbl, s.identifier)
	if err != nil {
		return nil, fmt.Errorf("invalid dataset %s: %w", path, err)
	}
	return ds, nil
}

// Ask answers a question against the current dataset.
func (s *Session) Ask(question string) (*engine.Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuery
	}

	snap := s.current.Load()
	q := lexer.Normalize(question)
	key := cacheKey{gen: snap.gen, query: q.Clean}

	if s.cache != nil {
		if item := s.cache.Get(key); item != nil {
			if s.metrics != nil {
				s.metrics.ObserveCacheHit()
			}
			return item.Value(), nil
		}
	}

	start := time.Now()
	result := engine.Execute(parser.Plan(q, snap.ds.Columns()), snap.ds)
	elapsed := time.Since(start)

	if s.metrics != nil {
		s.metrics.ObserveResolution(result.Mode.String(), elapsed)
	}
	s.log.WithFields(logrus.Fields{
		"question": question,
		"mode":     result.Mode,
		"column":   result.Column,
		"rows":     len(result.Table.Rows),
		"took":     elapsed,
	}).Debug("question answered")

	if s.cache != nil {
		s.cache.Set(key, result, ttlcache.DefaultTTL)
	}
	return result, nil
}

// Explain returns the plan for a question without running it.
func (s *Session) Explain(question string) (*ast.Plan, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuery
	}
	return parser.Parse(question, s.Dataset().Columns()), nil
}
