// Package tree renders a filtered directory tree as indented text and aggregates statistics over it.
package tree

// UnlimitedDepth disables depth limiting.
const UnlimitedDepth = -1

// Excluder decides whether an entry, given by its slash-separated path relative to the root, is omitted.
type Excluder interface {
	Matches(relativePath string) bool
}

// Options controls a single render invocation.
type Options struct {
	// MaxDepth is the number of levels listed beneath the root. Negative values disable the limit.
	MaxDepth int
	// IncludeStats appends the statistics block computed over the full filtered tree.
	IncludeStats bool
}

// DefaultOptions returns options without a depth limit and without statistics.
func DefaultOptions() Options {
	return Options{MaxDepth: UnlimitedDepth}
}

// depthPermits reports whether entries at depth may be listed.
func (options Options) depthPermits(depth int) bool {
	return options.MaxDepth < 0 || depth < options.MaxDepth
}
