package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordbrowse/internal/domain"
	"wordbrowse/internal/ports"
)

type fakeCache struct {
	mu       sync.Mutex
	words    domain.Collection
	readErr  error
	writeErr error
	reads    int
	writes   int
}

func (c *fakeCache) GetCachedWords(context.Context) (domain.Collection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads++
	if c.readErr != nil {
		return nil, c.readErr
	}
	return c.words, nil
}

func (c *fakeCache) CacheWords(_ context.Context, words domain.Collection) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes++
	if c.writeErr != nil {
		return c.writeErr
	}
	c.words = words
	return nil
}

func (c *fakeCache) stored() domain.Collection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.words
}

type fakeSource struct {
	words   domain.Collection
	err     error
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (s *fakeSource) FetchWords(_ context.Context, onProgress ports.ProgressFunc) (domain.Collection, error) {
	s.calls.Add(1)
	if s.started != nil {
		close(s.started)
	}
	if s.release != nil {
		<-s.release
	}
	if onProgress != nil {
		onProgress(domain.LoadProgress{Loading: true, Percent: 40})
		onProgress(domain.LoadProgress{Loading: true, Percent: 80})
	}
	return s.words, s.err
}

var testWords = domain.Collection{
	{Word: "爱", Pinyin: "ài", Explanation: "love"},
	{Word: "水", Pinyin: "shuǐ", Explanation: "water"},
}

func newTestProvider(cache ports.WordCache, source ports.WordSource) *WordProvider {
	return NewWordProvider(cache, source, slog.New(slog.DiscardHandler))
}

func waitCacheWrite(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("cache write did not finish")
		return nil
	}
}

func TestLoad_FromCache(t *testing.T) {
	cache := &fakeCache{words: testWords}
	source := &fakeSource{}
	p := newTestProvider(cache, source)

	res, err := p.Load(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, OriginCache, res.Origin)
	assert.Equal(t, testWords, res.Words)
	assert.Equal(t, testWords, p.Words())
	assert.Zero(t, source.calls.Load(), "cache hit must not fetch")

	_, open := <-res.CacheWrite
	assert.False(t, open, "CacheWrite should be closed for cache hits")
}

func TestLoad_EmptyCacheFetchesAndWritesThrough(t *testing.T) {
	cache := &fakeCache{}
	source := &fakeSource{words: testWords}
	p := newTestProvider(cache, source)

	var progress []domain.LoadProgress
	res, err := p.Load(context.Background(), func(lp domain.LoadProgress) {
		progress = append(progress, lp)
	})
	require.NoError(t, err)

	assert.Equal(t, OriginRemote, res.Origin)
	assert.Equal(t, testWords, res.Words)
	assert.EqualValues(t, 1, source.calls.Load())

	assert.Equal(t, []domain.LoadProgress{
		{Loading: true, Percent: 0},
		{Loading: true, Percent: 40},
		{Loading: true, Percent: 80},
		{Loading: false, Percent: 80},
	}, progress)

	require.NoError(t, waitCacheWrite(t, res.CacheWrite))
	assert.Equal(t, testWords, cache.stored())
}

func TestLoad_CacheUnavailableFetchesOnce(t *testing.T) {
	cache := &fakeCache{readErr: fmt.Errorf("%w: disk gone", ErrCacheUnavailable)}
	source := &fakeSource{words: testWords}
	p := newTestProvider(cache, source)

	res, err := p.Load(context.Background(), nil)
	require.NoError(t, err)

	assert.EqualValues(t, 1, source.calls.Load())
	assert.Equal(t, 1, cache.reads)
	assert.Equal(t, OriginRemote, res.Origin)
}

func TestLoad_NetworkFailure(t *testing.T) {
	cache := &fakeCache{}
	source := &fakeSource{err: fmt.Errorf("%w: connection refused", ErrNetwork)}
	p := newTestProvider(cache, source)

	var last domain.LoadProgress
	res, err := p.Load(context.Background(), func(lp domain.LoadProgress) { last = lp })

	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.NotErrorIs(t, err, ErrParse)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrNetwork, loadErr.Kind)

	assert.False(t, last.Loading, "loading flag must be cleared on failure")
	assert.Empty(t, p.Words())
	assert.Zero(t, cache.writes)

	_, ok := p.RandomWord()
	assert.False(t, ok)
}

func TestLoad_ParseFailure(t *testing.T) {
	source := &fakeSource{err: fmt.Errorf("%w: unexpected token", ErrParse)}
	p := newTestProvider(&fakeCache{}, source)

	_, err := p.Load(context.Background(), nil)
	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.ErrorIs(t, err, ErrParse)
}

func TestLoad_UnclassifiedSourceErrorIsNetwork(t *testing.T) {
	source := &fakeSource{err: errors.New("something odd")}
	p := newTestProvider(&fakeCache{}, source)

	_, err := p.Load(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestLoad_CacheWriteFailureDoesNotFailLoad(t *testing.T) {
	cache := &fakeCache{writeErr: errors.New("disk full")}
	p := newTestProvider(cache, &fakeSource{words: testWords})

	res, err := p.Load(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, testWords, res.Words)

	writeErr := waitCacheWrite(t, res.CacheWrite)
	assert.ErrorIs(t, writeErr, ErrCacheWrite)

	_, open := <-res.CacheWrite
	assert.False(t, open)
}

func TestRefresh_SkipsCache(t *testing.T) {
	cache := &fakeCache{words: domain.Collection{{Word: "旧"}}}
	source := &fakeSource{words: testWords}
	p := newTestProvider(cache, source)

	res, err := p.Refresh(context.Background(), nil)
	require.NoError(t, err)

	assert.Zero(t, cache.reads)
	assert.Equal(t, OriginRemote, res.Origin)
	require.NoError(t, waitCacheWrite(t, res.CacheWrite))
	assert.Equal(t, testWords, cache.stored())
}

func TestLoad_ConcurrentCallsShareOneFetch(t *testing.T) {
	source := &fakeSource{
		words:   testWords,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	p := newTestProvider(&fakeCache{}, source)

	var wg sync.WaitGroup
	results := make([]*LoadResult, 2)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := p.Load(context.Background(), nil)
			assert.NoError(t, err)
			results[i] = res
		}()
		if i == 0 {
			<-source.started
		}
	}

	time.Sleep(50 * time.Millisecond)
	close(source.release)
	wg.Wait()

	assert.EqualValues(t, 1, source.calls.Load())
	for _, res := range results {
		assert.Equal(t, testWords, res.Words)
		assert.Equal(t, OriginRemote, res.Origin)
	}
}

func TestLoad_ConcurrentCallersEachSeeWriteOutcome(t *testing.T) {
	source := &fakeSource{
		words:   testWords,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	p := newTestProvider(&fakeCache{writeErr: errors.New("disk full")}, source)

	var wg sync.WaitGroup
	results := make([]*LoadResult, 2)
	progress := make([][]domain.LoadProgress, 2)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := p.Load(context.Background(), func(lp domain.LoadProgress) {
				progress[i] = append(progress[i], lp)
			})
			assert.NoError(t, err)
			results[i] = res
		}()
		if i == 0 {
			<-source.started
		}
	}

	time.Sleep(50 * time.Millisecond)
	close(source.release)
	wg.Wait()

	require.EqualValues(t, 1, source.calls.Load())
	assert.NotSame(t, results[0], results[1])
	for i, res := range results {
		err := waitCacheWrite(t, res.CacheWrite)
		assert.ErrorIs(t, err, ErrCacheWrite, "caller %d", i)
		assert.ErrorContains(t, err, "disk full", "caller %d", i)

		_, open := <-res.CacheWrite
		assert.False(t, open, "caller %d", i)

		require.NotEmpty(t, progress[i], "caller %d", i)
		assert.Equal(t, domain.LoadProgress{Loading: false, Percent: 80}, progress[i][len(progress[i])-1], "caller %d", i)
	}
	assert.Equal(t, []domain.LoadProgress{{Loading: false, Percent: 80}}, progress[1], "joined caller only sees the end")
}

func TestLoad_JoinedCallerSeesFailureEnd(t *testing.T) {
	source := &fakeSource{
		err:     fmt.Errorf("%w: reset", ErrNetwork),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	p := newTestProvider(&fakeCache{}, source)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	var joined []domain.LoadProgress
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var onProgress ports.ProgressFunc
			if i == 1 {
				onProgress = func(lp domain.LoadProgress) { joined = append(joined, lp) }
			}
			_, errs[i] = p.Load(context.Background(), onProgress)
		}()
		if i == 0 {
			<-source.started
		}
	}

	time.Sleep(50 * time.Millisecond)
	close(source.release)
	wg.Wait()

	for _, err := range errs {
		assert.ErrorIs(t, err, ErrNetwork)
	}
	assert.Equal(t, []domain.LoadProgress{{Loading: false, Percent: 80}}, joined)
}

func TestLoad_ServesMemoryAfterFirstLoad(t *testing.T) {
	cache := &fakeCache{words: testWords}
	source := &fakeSource{words: testWords}
	p := newTestProvider(cache, source)

	_, err := p.Load(context.Background(), nil)
	require.NoError(t, err)

	res, err := p.Load(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, OriginMemory, res.Origin)
	assert.Equal(t, testWords, res.Words)
	assert.Equal(t, 1, cache.reads, "second load must not read the cache")

	_, open := <-res.CacheWrite
	assert.False(t, open)

	// Refresh still goes to the source
	res, err = p.Refresh(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, OriginRemote, res.Origin)
	assert.EqualValues(t, 1, source.calls.Load())
	require.NoError(t, waitCacheWrite(t, res.CacheWrite))
}

func TestWordOrigin_String(t *testing.T) {
	assert.Equal(t, "cache", OriginCache.String())
	assert.Equal(t, "remote", OriginRemote.String())
	assert.Equal(t, "memory", OriginMemory.String())
}

func TestRandomWord_FromLoadedWords(t *testing.T) {
	p := newTestProvider(&fakeCache{words: testWords}, &fakeSource{})

	_, ok := p.RandomWord()
	assert.False(t, ok, "no word before load")

	_, err := p.Load(context.Background(), nil)
	require.NoError(t, err)

	w, ok := p.RandomWord()
	require.True(t, ok)
	assert.Contains(t, testWords, w)
}

func TestLoadError_Message(t *testing.T) {
	err := newLoadError(fmt.Errorf("%w: bad json", ErrParse))
	assert.Equal(t, "load failed: parse error: bad json", err.Error())
}
