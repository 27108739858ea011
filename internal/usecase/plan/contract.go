package plan

import "context"

// Extractor turns a raw query into free-text structured-intent output.
// The output is untrusted: it may be malformed, partial, or absent.
type Extractor interface {
	Extract(ctx context.Context, query string) (string, error)
}
