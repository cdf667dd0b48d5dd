package server

import (
	"encoding/json"
	"net/http"

	"github.com/builtwith/builtwith-mcp/internal/config"
	"github.com/builtwith/builtwith-mcp/internal/mcp"
)

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// MCP endpoint (JSON-RPC over streamable HTTP)
	mux.Handle("/mcp", s.mcpHandler)

	// Discovery document and liveness check
	mux.HandleFunc("/", s.handleDiscovery)
	mux.HandleFunc("/health", s.handleHealth)

	return mux
}

// discoveryResponse is the machine-readable service description served
// at the root: identity, authentication hint, and both full catalogs.
type discoveryResponse struct {
	Name           string              `json:"name"`
	Version        string              `json:"version"`
	Description    string              `json:"description"`
	Authentication string              `json:"authentication"`
	Tools          []mcp.CatalogTool   `json:"tools"`
	Prompts        []mcp.CatalogPrompt `json:"prompts"`
}

// handleDiscovery serves GET / only; everything unmatched lands here and
// gets a JSON 404.
func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "not_found",
			"message": "the requested endpoint does not exist",
		})
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, discoveryResponse{
		Name:           s.cfg.Server.Name,
		Version:        config.GetVersion(),
		Description:    "MCP gateway for the BuiltWith technology-intelligence API",
		Authentication: "Bearer token (BuiltWith API key) in the Authorization header, or BUILTWITH_API_KEY on the server",
		Tools:          s.registry.ToolCatalog(),
		Prompts:        s.registry.PromptCatalog(),
	})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
