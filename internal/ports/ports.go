package ports

import (
	"context"
	"encoding/json"
	"net/url"
)

// KimaiClient is the upstream API port. A single generic request method
// covers every operation: the tools layer owns paths, query parameters
// and bodies, and the adapter owns transport, auth and error
// classification.
//
// The returned payload is the upstream response body verbatim, so
// JSON-format output can reproduce it byte for byte. Calls with an
// empty 2xx body (DELETE, 204) return the synthetic marker
// {"success":true}.
type KimaiClient interface {
	Request(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error)
}
