package complete

import "github.com/google/uuid"

// DefaultContextLimit bounds the preceding-text window sent with a
// completion request, keeping request cost flat regardless of file size.
const DefaultContextLimit = 400

// Request is one autocomplete attempt. It is constructed on the trigger
// keystroke and discarded once its candidates are consumed.
type Request struct {
	// ID ties an asynchronous result back to this request.
	ID uuid.UUID

	// Prefix is the partial identifier under the cursor. Completion only
	// triggers on a non-empty prefix.
	Prefix string

	// Context is the window of text preceding the cursor, already capped.
	Context string
}

// NewRequest builds a request, truncating preceding to the last limit
// bytes. A non-positive limit falls back to DefaultContextLimit.
func NewRequest(prefix, preceding string, limit int) Request {
	if limit <= 0 {
		limit = DefaultContextLimit
	}
	if len(preceding) > limit {
		preceding = preceding[len(preceding)-limit:]
	}
	return Request{
		ID:      uuid.New(),
		Prefix:  prefix,
		Context: preceding,
	}
}
