package node

// Options is the per-caller runtime configuration for a tree. The root node
// created by a factory carries one Options value and every descendant shares
// it; callers that need different behavior build their own tree.
type Options struct {
	// Sort keeps object children in ascending ordinal key order.
	Sort bool
	// BinarySearch enables binary child lookup; only honored with Sort.
	BinarySearch bool
	// RecursiveMode makes path segments findable at any descendant depth
	// instead of strictly one child per segment.
	RecursiveMode bool
	// Sep separates fields in the textual value codec and snapshot lines.
	Sep byte
	// NullLiteral stands in for an absent key or value in the codec.
	NullLiteral string
	// LazyParse defers parsing of nested objects and arrays until first
	// structural access.
	LazyParse bool
}

func DefaultOptions() *Options {
	return &Options{
		Sort:         true,
		BinarySearch: true,
		Sep:          ',',
		NullLiteral:  "__null__",
	}
}
