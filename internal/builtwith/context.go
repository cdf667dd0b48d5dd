package builtwith

import "context"

// apiKeyContextKey is the context key for the per-invocation API key.
type apiKeyContextKey struct{}

// WithAPIKey returns a new context carrying the given API key. The HTTP
// transport attaches the bearer key extracted from each request; the
// stdio transport never sets one and falls through to the configured
// fallback. Passing the key through the context, rather than any shared
// variable, is what keeps concurrent requests from observing each
// other's credential.
func WithAPIKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, apiKeyContextKey{}, key)
}

// APIKeyFromContext extracts the per-invocation API key, if present.
func APIKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(apiKeyContextKey{}).(string)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}
