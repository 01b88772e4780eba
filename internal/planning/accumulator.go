package planning

import "sort"

// Bucket is one group of an aggregation.
type Bucket struct {
	Key        string `json:"key"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// Counter is an insertion-ordered map from key to count.
type Counter struct {
	keys   []string
	counts map[string]int
}

// NewCounter returns an empty counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add increments key by n, registering it on first sight.
func (c *Counter) Add(key string, n int) {
	if _, ok := c.counts[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.counts[key] += n
}

// Seed registers keys with a zero count so they appear even when never incremented.
func (c *Counter) Seed(keys ...string) {
	for _, key := range keys {
		c.Add(key, 0)
	}
}

// Count returns the count for key.
func (c *Counter) Count(key string) int {
	return c.counts[key]
}

// Len returns the number of distinct keys.
func (c *Counter) Len() int {
	return len(c.keys)
}

// Total returns the sum of all counts.
func (c *Counter) Total() int {
	total := 0
	for _, key := range c.keys {
		total += c.counts[key]
	}
	return total
}

// Keys returns the keys in insertion order.
func (c *Counter) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Buckets returns the counts in insertion order with each share of base.
func (c *Counter) Buckets(base int) []Bucket {
	out := make([]Bucket, 0, len(c.keys))
	for _, key := range c.keys {
		count := c.counts[key]
		out = append(out, Bucket{Key: key, Count: count, Percentage: Percent(count, base)})
	}
	return out
}

// SortedDesc returns the buckets by descending count. Ties keep insertion order.
func (c *Counter) SortedDesc(base int) []Bucket {
	out := c.Buckets(base)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Percent returns part/total as an integer percentage rounded half up.
// A zero or negative total yields 0.
func Percent(part, total int) int {
	if total <= 0 || part <= 0 {
		return 0
	}
	// integer half-up rounding of part*100/total
	p := (part*200 + total) / (2 * total)
	if p > 100 {
		return 100
	}
	return p
}
