package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"wordbrowse/internal/domain"
	"wordbrowse/internal/ports"
)

// WordOrigin tells where a loaded collection came from
type WordOrigin int

const (
	OriginCache WordOrigin = iota
	OriginRemote
	OriginMemory
)

func (o WordOrigin) String() string {
	switch o {
	case OriginRemote:
		return "remote"
	case OriginMemory:
		return "memory"
	default:
		return "cache"
	}
}

// LoadResult is the outcome of a successful load, one per caller.
// CacheWrite yields the result of the background cache write once and is
// then closed; it is already closed when nothing was written.
type LoadResult struct {
	Words      domain.Collection
	Origin     WordOrigin
	CacheWrite <-chan error
}

// WordProvider produces the word collection, preferring the cache over the
// remote source. Concurrent loads share a single in-flight attempt.
type WordProvider struct {
	cache  ports.WordCache
	source ports.WordSource
	log    *slog.Logger

	group singleflight.Group

	mu    sync.RWMutex
	words domain.Collection
}

// NewWordProvider creates a provider over the given cache and source
func NewWordProvider(cache ports.WordCache, source ports.WordSource, logger *slog.Logger) *WordProvider {
	return &WordProvider{
		cache:  cache,
		source: source,
		log:    logger.With("component", "provider"),
	}
}

// Load returns the words already in memory, else the cached collection, or
// fetches it remotely when the cache is empty or unavailable. onProgress may
// be nil.
func (p *WordProvider) Load(ctx context.Context, onProgress ports.ProgressFunc) (*LoadResult, error) {
	if words := p.Words(); len(words) > 0 {
		return &LoadResult{Words: words, Origin: OriginMemory, CacheWrite: closedErrChan()}, nil
	}
	return p.do(ctx, "load", onProgress, true)
}

// Refresh fetches the collection remotely regardless of the cache contents
func (p *WordProvider) Refresh(ctx context.Context, onProgress ports.ProgressFunc) (*LoadResult, error) {
	return p.do(ctx, "refresh", onProgress, false)
}

// flight is the outcome of one load attempt, shared by every caller that
// joined it
type flight struct {
	words   domain.Collection
	origin  WordOrigin
	percent int
	written *writeOutcome // nil when nothing was written
}

// result builds a caller's own view of the flight
func (f *flight) result() *LoadResult {
	cacheWrite := closedErrChan()
	if f.written != nil {
		cacheWrite = f.written.subscribe()
	}
	return &LoadResult{Words: f.words, Origin: f.origin, CacheWrite: cacheWrite}
}

// writeOutcome holds the result of a background cache write. err is set
// before done is closed.
type writeOutcome struct {
	done chan struct{}
	err  error
}

// subscribe returns a channel that receives the outcome once and is closed
func (w *writeOutcome) subscribe() <-chan error {
	ch := make(chan error, 1)
	go func() {
		<-w.done
		ch <- w.err
		close(ch)
	}()
	return ch
}

func (p *WordProvider) do(ctx context.Context, key string, onProgress ports.ProgressFunc, useCache bool) (*LoadResult, error) {
	leader := false
	v, err, _ := p.group.Do(key, func() (any, error) {
		leader = true
		return p.load(ctx, onProgress, useCache)
	})

	f, _ := v.(*flight)
	if !leader {
		// Joined callers saw none of the progress, only its end
		p.log.DebugContext(ctx, "joined in-flight load", slog.String("kind", key))
		if onProgress != nil {
			end := domain.LoadProgress{Loading: false}
			if f != nil {
				end.Percent = f.percent
			}
			onProgress(end)
		}
	}
	if err != nil {
		return nil, err
	}
	return f.result(), nil
}

func (p *WordProvider) load(ctx context.Context, onProgress ports.ProgressFunc, useCache bool) (*flight, error) {
	log := p.log.With(slog.String("load_id", uuid.NewString()))

	if useCache {
		words, err := p.cache.GetCachedWords(ctx)
		switch {
		case err != nil:
			log.WarnContext(ctx, "cache read failed, fetching remotely", slog.String("error", err.Error()))
		case len(words) > 0:
			log.InfoContext(ctx, "words loaded from cache", slog.Int("count", len(words)))
			p.setWords(words)
			return &flight{words: words, origin: OriginCache}, nil
		default:
			log.InfoContext(ctx, "cache empty, fetching remotely")
		}
	}

	last := domain.LoadProgress{Loading: true}
	report := func(lp domain.LoadProgress) {
		last = lp
		if onProgress != nil {
			onProgress(lp)
		}
	}

	report(last)
	words, err := p.source.FetchWords(ctx, report)
	report(domain.LoadProgress{Loading: false, Percent: last.Percent})

	if err != nil {
		loadErr := newLoadError(err)
		log.ErrorContext(ctx, "load failed",
			slog.String("kind", loadErr.Kind.Error()),
			slog.String("error", err.Error()),
		)
		return &flight{percent: last.Percent}, loadErr
	}

	p.setWords(words)
	return &flight{
		words:   words,
		origin:  OriginRemote,
		percent: last.Percent,
		written: p.writeThrough(ctx, words, log),
	}, nil
}

// writeThrough stores words in the background
func (p *WordProvider) writeThrough(ctx context.Context, words domain.Collection, log *slog.Logger) *writeOutcome {
	w := &writeOutcome{done: make(chan struct{})}
	ctx = context.WithoutCancel(ctx)

	go func() {
		defer close(w.done)
		err := p.cache.CacheWords(ctx, words)
		if err != nil {
			log.WarnContext(ctx, "cache write failed", slog.String("error", err.Error()))
			if !errors.Is(err, ErrCacheWrite) {
				err = fmt.Errorf("%w: %w", ErrCacheWrite, err)
			}
			w.err = err
			return
		}
		log.DebugContext(ctx, "cache write finished", slog.Int("count", len(words)))
	}()

	return w
}

// Words returns the collection loaded last, empty before the first success
func (p *WordProvider) Words() domain.Collection {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.words
}

// RandomWord picks a random word from the loaded collection
func (p *WordProvider) RandomWord() (domain.WordRecord, bool) {
	return domain.RandomWord(p.Words())
}

func (p *WordProvider) setWords(words domain.Collection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.words = words
}

func closedErrChan() <-chan error {
	ch := make(chan error)
	close(ch)
	return ch
}
