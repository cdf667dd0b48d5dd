package mcp

import (
	"encoding/json"
	"net/http"
	"strings"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/builtwith/builtwith-mcp/internal/builtwith"
	"github.com/builtwith/builtwith-mcp/internal/common"
)

// Bearer credentials outside this length window are treated as absent,
// not as errors; the call then relies on the configured fallback key.
const (
	minKeyLen = 10
	maxKeyLen = 256
)

// Handler is the per-request HTTP transport adapter for the MCP
// endpoint. It checks the origin allowlist, extracts the bearer API key
// into a fresh request context, and delegates to mcp-go's
// StreamableHTTPServer.
type Handler struct {
	streamable     *mcpserver.StreamableHTTPServer
	logger         *common.Logger
	allowedOrigins map[string]bool
}

// NewHandler creates the HTTP handler for the given MCP server instance.
// An empty allowlist admits every origin.
func NewHandler(mcpSrv *mcpserver.MCPServer, allowedOrigins []string, logger *common.Logger) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed[origin] = true
		}
	}

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	return &Handler{
		streamable:     streamable,
		logger:         logger,
		allowedOrigins: allowed,
	}
}

// ServeHTTP serves one MCP request. The origin check happens before any
// registry processing; a request with no Origin header always passes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if origin := r.Header.Get("Origin"); !h.originAllowed(origin) {
		h.logger.Warn().Str("origin", origin).Msg("rejected request from disallowed origin")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "forbidden_origin",
			"message": "origin is not in the allowlist",
		})
		return
	}

	if key, ok := ExtractBearerKey(r.Header.Get("Authorization")); ok {
		r = r.WithContext(builtwith.WithAPIKey(r.Context(), key))
	}

	h.streamable.ServeHTTP(w, r)
}

// originAllowed reports whether a request with the given Origin header
// may proceed. Absent origins always pass regardless of the allowlist.
func (h *Handler) originAllowed(origin string) bool {
	if len(h.allowedOrigins) == 0 || origin == "" {
		return true
	}
	return h.allowedOrigins[origin]
}

// ExtractBearerKey extracts the API key from an Authorization header.
// Only well-formed "Bearer <key>" values with a key of 10 to 256
// characters count; anything else means no per-request key.
func ExtractBearerKey(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	key := header[len(prefix):]
	if len(key) < minKeyLen || len(key) > maxKeyLen {
		return "", false
	}
	return key, true
}
