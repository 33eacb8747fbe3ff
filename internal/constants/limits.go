package constants

const (
	// MinContentLength is counted in runes after trimming surrounding whitespace.
	MinContentLength = 5

	DefaultPageSize = 15
	MaxPageSize     = 100
)
