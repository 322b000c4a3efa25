package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"wordbrowse/internal/application"
	"wordbrowse/internal/domain"
	"wordbrowse/internal/ports"
)

// DefaultAssumedSize is the size of the published word list, used for
// progress when the server sends no Content-Length.
const DefaultAssumedSize int64 = 27354320

const (
	chunkSize   = 32 << 10
	maxPrealloc = 2 * DefaultAssumedSize
)

// Fetcher downloads the word list over HTTP.
type Fetcher struct {
	url         string
	assumedSize int64
	httpClient  *http.Client
	log         *slog.Logger
}

var _ ports.WordSource = (*Fetcher)(nil)

// NewFetcher creates a Fetcher for url. assumedSize is used for progress
// when the response has no Content-Length.
func NewFetcher(url string, assumedSize int64, timeout time.Duration, logger *slog.Logger) *Fetcher {
	if assumedSize <= 0 {
		assumedSize = DefaultAssumedSize
	}
	return &Fetcher{
		url:         url,
		assumedSize: assumedSize,
		httpClient:  &http.Client{Timeout: timeout},
		log:         logger.With("component", "remote"),
	}
}

// FetchWords downloads and parses the full collection.
func (f *Fetcher) FetchWords(ctx context.Context, onProgress ports.ProgressFunc) (domain.Collection, error) {
	f.log.InfoContext(ctx, "fetching words", slog.String("url", f.url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", application.ErrNetwork, err)
	}
	req.Header.Set("User-Agent", "wordbrowse")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", application.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %s", application.ErrNetwork, resp.Status)
	}

	total := f.assumedSize
	if resp.ContentLength > 0 {
		total = resp.ContentLength
	}

	body, err := ReadAllWithProgress(resp.Body, total, onProgress)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", application.ErrNetwork, err)
	}

	words, err := ParseWords(body)
	if err != nil {
		return nil, err
	}

	f.log.InfoContext(ctx, "words fetched",
		slog.Int("count", len(words)),
		slog.Int("bytes", len(body)),
	)
	return words, nil
}

// ReadAllWithProgress reads r to EOF, reporting progress after every chunk.
// Percent is round(read*100/total) clamped to [0,100]; if total is smaller
// than the real payload the signal stalls at 100, if larger it never gets there.
func ReadAllWithProgress(r io.Reader, total int64, onProgress ports.ProgressFunc) ([]byte, error) {
	var buf bytes.Buffer
	if total > 0 {
		// Content-Length comes from the server
		buf.Grow(int(min(total, maxPrealloc)))
	}

	chunk := make([]byte, chunkSize)
	var read int64
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			read += int64(n)
			if onProgress != nil {
				onProgress(domain.LoadProgress{Loading: true, Percent: percent(read, total)})
			}
		}
		if errors.Is(err, io.EOF) {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func percent(read, total int64) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Round(float64(read) * 100 / float64(total)))
	return min(max(p, 0), 100)
}

// ParseWords decodes a JSON array of word records.
// Unknown fields are ignored. Anything other than an array, a null element or
// a record without a word is an error.
func ParseWords(data []byte) (domain.Collection, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array of words", application.ErrParse)
	}

	var records []*domain.WordRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: decode json: %w", application.ErrParse, err)
	}

	words := make(domain.Collection, 0, len(records))
	for i, r := range records {
		if r == nil {
			return nil, fmt.Errorf("%w: record %d is null", application.ErrParse, i)
		}
		if strings.TrimSpace(r.Word) == "" {
			return nil, fmt.Errorf("%w: record %d has no word", application.ErrParse, i)
		}
		words = append(words, *r)
	}
	return words, nil
}
