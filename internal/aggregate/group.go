// Package aggregate is the shared group-by engine. Every view counts events
// through GroupBy (or GroupByMulti) with a key extractor and options, so that
// metrics which should agree across views are computed the same way.
package aggregate

import (
	"sort"

	"github.com/ademuri/listening-stats/internal/playback"
)

// KeyFunc extracts a grouping key from an event.
type KeyFunc[K comparable] func(playback.PlayEvent) K

// Bucket is the aggregate of every event sharing one key.
type Bucket[K comparable] struct {
	Key        K
	Count      int
	DurationMs int64

	// Distinct holds the secondary keys seen in this bucket, when a
	// WithDistinct option is set.
	Distinct map[string]struct{}

	order int
}

// Unique returns the number of distinct secondary keys.
func (b Bucket[K]) Unique() int {
	return len(b.Distinct)
}

type options struct {
	distinct func(playback.PlayEvent) string
	duration func(playback.PlayEvent) int64
}

// Option configures GroupBy.
type Option func(*options)

// WithDistinct tracks the distinct values of sub per bucket.
func WithDistinct(sub func(playback.PlayEvent) string) Option {
	return func(o *options) { o.distinct = sub }
}

// WithDuration sums DurationMs per bucket.
func WithDuration() Option {
	return func(o *options) { o.duration = func(e playback.PlayEvent) int64 { return e.DurationMs } }
}

// WithFallbackDuration sums durations, substituting the fallback for plays
// without one.
func WithFallbackDuration() Option {
	return func(o *options) { o.duration = playback.PlayEvent.DurationOrFallback }
}

// Groups is the result of a grouping pass.
type Groups[K comparable] struct {
	buckets map[K]*Bucket[K]
	order   []K
	total   int
}

// GroupBy groups events by key. Buckets remember the order in which their key
// was first encountered; callers that pass events oldest first get "first
// played wins" as the tie-break in Ranked.
func GroupBy[K comparable](events []playback.PlayEvent, key KeyFunc[K], opts ...Option) *Groups[K] {
	return GroupByMulti(events, func(e playback.PlayEvent) []K { return []K{key(e)} }, opts...)
}

// GroupByMulti is GroupBy for extractors that map one event to zero or more
// keys, such as featured artists. Total counts events, not keys.
func GroupByMulti[K comparable](events []playback.PlayEvent, keys func(playback.PlayEvent) []K, opts ...Option) *Groups[K] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	g := &Groups[K]{buckets: make(map[K]*Bucket[K])}
	for _, e := range events {
		g.total++
		for _, k := range keys(e) {
			b, ok := g.buckets[k]
			if !ok {
				b = &Bucket[K]{Key: k, order: len(g.order)}
				if o.distinct != nil {
					b.Distinct = make(map[string]struct{})
				}
				g.buckets[k] = b
				g.order = append(g.order, k)
			}
			b.Count++
			if o.duration != nil {
				b.DurationMs += o.duration(e)
			}
			if o.distinct != nil {
				b.Distinct[o.distinct(e)] = struct{}{}
			}
		}
	}
	return g
}

// Len is the number of distinct keys.
func (g *Groups[K]) Len() int {
	return len(g.order)
}

// Total is the number of events grouped.
func (g *Groups[K]) Total() int {
	return g.total
}

// Get returns the bucket for k.
func (g *Groups[K]) Get(k K) (Bucket[K], bool) {
	b, ok := g.buckets[k]
	if !ok {
		return Bucket[K]{Key: k}, false
	}
	return *b, true
}

// Count returns the count for k, or 0.
func (g *Groups[K]) Count(k K) int {
	if b, ok := g.buckets[k]; ok {
		return b.Count
	}
	return 0
}

// Buckets returns every bucket in first-encounter order.
func (g *Groups[K]) Buckets() []Bucket[K] {
	out := make([]Bucket[K], 0, len(g.order))
	for _, k := range g.order {
		out = append(out, *g.buckets[k])
	}
	return out
}

// Ranked returns the buckets by count, highest first. Equal counts keep
// first-encounter order.
func (g *Groups[K]) Ranked() []Bucket[K] {
	return RankBy(g.Buckets(), func(b Bucket[K]) int64 { return int64(b.Count) })
}

// Top returns at most n buckets of Ranked. n <= 0 means all.
func (g *Groups[K]) Top(n int) []Bucket[K] {
	return Limit(g.Ranked(), n)
}

// RankBy stably sorts buckets by score, highest first.
func RankBy[K comparable](buckets []Bucket[K], score func(Bucket[K]) int64) []Bucket[K] {
	sort.SliceStable(buckets, func(i, j int) bool {
		si, sj := score(buckets[i]), score(buckets[j])
		if si != sj {
			return si > sj
		}
		return buckets[i].order < buckets[j].order
	})
	return buckets
}

// Limit truncates s to n entries. n <= 0 means no limit.
func Limit[T any](s []T, n int) []T {
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[:n]
}
