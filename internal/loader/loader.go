// Package loader reads play history CSVs from local files or http(s) URLs
// into a playback.Store.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ademuri/listening-stats/internal/logging"
	"github.com/ademuri/listening-stats/internal/playback"
	"github.com/avast/retry-go"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// ErrNoSources is returned by Load when no source is configured.
var ErrNoSources = errors.New("no play history source configured")

// StatusError is an unsuccessful HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Retryable reports whether the server failed rather than the request.
func (e *StatusError) Retryable() bool {
	return e.StatusCode/100 == 5
}

type Loader struct {
	client   *http.Client
	loc      *time.Location
	attempts uint
	delay    time.Duration
	limiter  *rate.Limiter
	now      func() time.Time
	log      zerolog.Logger
}

type Option func(*Loader)

func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithLocation sets the zone for timestamps that carry none.
func WithLocation(loc *time.Location) Option {
	return func(l *Loader) { l.loc = loc }
}

// WithRetry sets how many times a 5xx response is attempted in total and the
// base delay between attempts.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(l *Loader) {
		l.attempts = attempts
		l.delay = delay
	}
}

// WithInterval sets the minimum time between two source fetches.
func WithInterval(d time.Duration) Option {
	return func(l *Loader) { l.limiter = rate.NewLimiter(rate.Every(d), 1) }
}

func WithLogger(log zerolog.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// WithClock replaces time.Now for the cache-busting query parameter.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) { l.now = now }
}

func New(opts ...Option) *Loader {
	l := &Loader{
		client:   &http.Client{Timeout: 30 * time.Second},
		loc:      time.Local,
		attempts: 3,
		delay:    time.Second,
		limiter:  rate.NewLimiter(rate.Every(1*time.Second), 1),
		now:      time.Now,
		log:      logging.With().Str("component", "loader").Logger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	// retry treats zero attempts as unlimited.
	if l.attempts == 0 {
		l.attempts = 1
	}
	return l
}

// Load reads every source in order and combines their events. It is all or
// nothing: if any source fails, the events read so far are discarded and an
// empty store is returned with the error.
func (l *Loader) Load(ctx context.Context, sources []string) (*playback.Store, error) {
	if len(sources) == 0 {
		return playback.NewStore(nil), ErrNoSources
	}

	var events []playback.PlayEvent
	for _, src := range sources {
		if err := l.limiter.Wait(ctx); err != nil {
			return playback.NewStore(nil), fmt.Errorf("waiting to load %s: %w", src, err)
		}
		loaded, err := l.loadSource(ctx, src)
		if err != nil {
			return playback.NewStore(nil), err
		}
		events = append(events, loaded...)
	}
	return playback.NewStore(events), nil
}

// LoadOrEmpty is Load for callers that carry on without data: a failure is
// logged as a warning and an empty store is returned.
func (l *Loader) LoadOrEmpty(ctx context.Context, sources []string) *playback.Store {
	store, err := l.Load(ctx, sources)
	if err != nil {
		l.log.Warn().Err(err).Msg("could not load play history, continuing without data")
	}
	return store
}

func (l *Loader) loadSource(ctx context.Context, src string) ([]playback.PlayEvent, error) {
	var data []byte
	var err error
	if isURL(src) {
		data, err = l.fetch(ctx, src)
	} else {
		data, err = readFile(src)
	}
	if err != nil {
		return nil, err
	}

	events, stats, err := playback.DecodeCSV(bytes.NewReader(data), l.loc)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", src, err)
	}
	l.log.Debug().
		Str("source", src).
		Int("rows", stats.Rows).
		Int("valid", stats.Valid).
		Int("skipped", stats.Skipped).
		Msg("loaded source")
	return events, nil
}

func isURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

func readFile(src string) ([]byte, error) {
	path, err := homedir.Expand(src)
	if err != nil {
		return nil, fmt.Errorf("expanding %s: %w", src, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src, err)
	}
	return data, nil
}

// fetch downloads src, retrying server errors. A t=<unix seconds> query
// parameter defeats intermediate caches.
func (l *Loader) fetch(ctx context.Context, src string) ([]byte, error) {
	u, err := url.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", src, err)
	}
	q := u.Query()
	q.Set("t", strconv.FormatInt(l.now().Unix(), 10))
	u.RawQuery = q.Encode()

	var body []byte
	err = retry.Do(
		func() error {
			var err error
			body, err = l.get(ctx, u.String())
			return err
		},
		retry.Context(ctx),
		retry.Attempts(l.attempts),
		retry.Delay(l.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			var serr *StatusError
			return errors.As(err, &serr) && serr.Retryable()
		}),
		retry.OnRetry(func(n uint, err error) {
			l.log.Warn().Err(err).Uint("attempt", n+1).Str("source", src).Msg("fetch failed, retrying")
		}),
	)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (l *Loader) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target, err)
	}
	return body, nil
}
