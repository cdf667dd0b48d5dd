package mcp

// CatalogParam is the machine-readable rendering of one tool parameter,
// served by the discovery endpoint. It is generated directly from the
// declared ParamSpec, never by introspecting the validator.
type CatalogParam struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

// CatalogTool is the machine-readable rendering of one tool definition.
type CatalogTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Path        string         `json:"path"`
	Params      []CatalogParam `json:"params"`
}

// CatalogPrompt is the machine-readable rendering of one prompt definition.
type CatalogPrompt struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Args        []CatalogParam `json:"args"`
}

// ToolCatalog renders the tool catalog in registration order.
func (r *Registry) ToolCatalog() []CatalogTool {
	catalog := make([]CatalogTool, 0, len(r.tools))
	for _, def := range r.tools {
		params := make([]CatalogParam, 0, len(def.Params))
		for _, p := range def.Params {
			params = append(params, CatalogParam{
				Name:        p.Name,
				Type:        string(p.Type),
				Description: p.Description,
				Required:    p.Required,
			})
		}
		catalog = append(catalog, CatalogTool{
			Name:        def.Name,
			Description: def.Description,
			Path:        def.Path,
			Params:      params,
		})
	}
	return catalog
}

// PromptCatalog renders the prompt catalog in registration order.
func (r *Registry) PromptCatalog() []CatalogPrompt {
	catalog := make([]CatalogPrompt, 0, len(r.prompts))
	for _, def := range r.prompts {
		args := make([]CatalogParam, 0, len(def.Args))
		for _, a := range def.Args {
			args = append(args, CatalogParam{
				Name:        a.Name,
				Type:        "string",
				Description: a.Description,
				Required:    a.Required,
			})
		}
		catalog = append(catalog, CatalogPrompt{
			Name:        def.Name,
			Description: def.Description,
			Args:        args,
		})
	}
	return catalog
}
