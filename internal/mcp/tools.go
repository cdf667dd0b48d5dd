package mcp

import (
	"strconv"

	"github.com/builtwith/builtwith-mcp/internal/builtwith"
)

// RegisterTools registers the full BuiltWith tool catalog. The paths and
// uppercase query parameter names are the upstream integration contract
// and must not drift.
func RegisterTools(r *Registry) {
	r.RegisterTool(domainLookupTool())
	r.RegisterTool(freeLookupTool())
	r.RegisterTool(domainLiveTool())
	r.RegisterTool(companyToURLTool())
	r.RegisterTool(listsTool())
	r.RegisterTool(relationshipsTool())
	r.RegisterTool(keywordsTool())
	r.RegisterTool(trendsTool())
	r.RegisterTool(trustTool())
	r.RegisterTool(adsTool())
	r.RegisterTool(socialTool())
	r.RegisterTool(redirectsTool())
	r.RegisterTool(recommendationsTool())
	r.RegisterTool(techSearchTool())
}

// domainParam is the shared declaration for tools keyed on a domain.
func domainParam() ParamSpec {
	return ParamSpec{
		Name:        "domain",
		Type:        ParamString,
		Description: "Domain to look up (e.g. 'example.com'). Bare domain, no scheme.",
		Required:    true,
	}
}

// mapLookup maps the domain argument onto the LOOKUP query parameter.
func mapLookup(args Args) map[string]string {
	return map[string]string{"LOOKUP": args.String("domain")}
}

func domainLookupTool() ToolDef {
	return ToolDef{
		Name:        "domain-lookup",
		Description: "Get the full technology profile for a domain: every detected technology with its name, description, category tag, and link. The primary lookup tool.",
		Path:        "v21/api.json",
		Params: []ParamSpec{
			domainParam(),
			{Name: "hideText", Type: ParamBoolean, Description: "Omit free-text descriptions from the upstream response (default: false)"},
			{Name: "noMetaData", Type: ParamBoolean, Description: "Omit company meta data from the upstream response (default: false)"},
		},
		MapParams: func(args Args) map[string]string {
			params := mapLookup(args)
			if args.Bool("hideText") {
				params["HIDETEXT"] = "yes"
			}
			if args.Bool("noMetaData") {
				params["NOMETA"] = "yes"
			}
			return params
		},
		Normalize: builtwith.NormalizeDomainLookup,
	}
}

func freeLookupTool() ToolDef {
	return ToolDef{
		Name:        "free-lookup",
		Description: "Get a trimmed technology summary for a domain via the free API tier. Groups only, no per-technology detail.",
		Path:        "free1/api.json",
		Params:      []ParamSpec{domainParam()},
		MapParams:   mapLookup,
	}
}

func domainLiveTool() ToolDef {
	return ToolDef{
		Name:        "domain-live",
		Description: "Run a live (real-time) technology scan of a domain instead of returning indexed data. Slower but current.",
		Path:        "dlv1/api.json",
		Params:      []ParamSpec{domainParam()},
		MapParams:   mapLookup,
	}
}

func companyToURLTool() ToolDef {
	return ToolDef{
		Name:        "company-to-url",
		Description: "Find website URLs for a company name. Useful when you only know the business name.",
		Path:        "ctu1/api.json",
		Params: []ParamSpec{
			{Name: "company", Type: ParamString, Description: "Company name to resolve (e.g. 'Acme Corporation')", Required: true},
			{Name: "amount", Type: ParamNumber, Description: "Maximum number of URL matches to return"},
		},
		MapParams: func(args Args) map[string]string {
			params := map[string]string{"COMPANY": args.String("company")}
			if n := args.Int("amount"); n > 0 {
				params["AMOUNT"] = strconv.Itoa(n)
			}
			return params
		},
	}
}

func listsTool() ToolDef {
	return ToolDef{
		Name:        "lists",
		Description: "List websites using a specific technology. Use tech-search first if you are unsure of the exact technology name.",
		Path:        "lists11/api.json",
		Params: []ParamSpec{
			{Name: "technology", Type: ParamString, Description: "Exact technology name (e.g. 'Shopify', 'React')", Required: true},
			{Name: "since", Type: ParamString, Description: "Only include sites first detected since this date (YYYY-MM-DD)"},
			{Name: "offset", Type: ParamString, Description: "Pagination offset token from a previous response"},
		},
		MapParams: func(args Args) map[string]string {
			return map[string]string{
				"TECH":   args.String("technology"),
				"SINCE":  args.String("since"),
				"OFFSET": args.String("offset"),
			}
		},
	}
}

func relationshipsTool() ToolDef {
	return ToolDef{
		Name:        "relationships",
		Description: "Find domains related to a domain through shared identifiers such as analytics IDs, ad network tags, and IP history.",
		Path:        "rv2/api.json",
		Params:      []ParamSpec{domainParam()},
		MapParams:   mapLookup,
	}
}

func keywordsTool() ToolDef {
	return ToolDef{
		Name:        "keywords",
		Description: "Get the keywords a domain's website content is associated with.",
		Path:        "kw2/api.json",
		Params:      []ParamSpec{domainParam()},
		MapParams:   mapLookup,
	}
}

func trendsTool() ToolDef {
	return ToolDef{
		Name:        "trends",
		Description: "Get adoption trend data for a technology: usage counts over time, coverage by site tier.",
		Path:        "trends/v6/api.json",
		Params: []ParamSpec{
			{Name: "technology", Type: ParamString, Description: "Exact technology name (e.g. 'Shopify', 'React')", Required: true},
			{Name: "date", Type: ParamString, Description: "Point-in-time snapshot date (YYYY-MM-DD)"},
		},
		MapParams: func(args Args) map[string]string {
			return map[string]string{
				"TECH": args.String("technology"),
				"DATE": args.String("date"),
			}
		},
	}
}

func trustTool() ToolDef {
	return ToolDef{
		Name:        "trust",
		Description: "Get trust and risk signals for a domain: age, technology spend indicators, and fraud-relevant markers.",
		Path:        "trustv1/api.json",
		Params:      []ParamSpec{domainParam()},
		MapParams:   mapLookup,
	}
}

func adsTool() ToolDef {
	return ToolDef{
		Name:        "ads",
		Description: "Get the advertising technologies and networks detected on a domain.",
		Path:        "ads1/api.json",
		Params:      []ParamSpec{domainParam()},
		MapParams:   mapLookup,
	}
}

func socialTool() ToolDef {
	return ToolDef{
		Name:        "social",
		Description: "Get the social media profiles and widgets linked to a domain.",
		Path:        "social1/api.json",
		Params:      []ParamSpec{domainParam()},
		MapParams:   mapLookup,
	}
}

func redirectsTool() ToolDef {
	return ToolDef{
		Name:        "redirects",
		Description: "Get inbound and outbound redirect history for a domain.",
		Path:        "redirect1/api.json",
		Params:      []ParamSpec{domainParam()},
		MapParams:   mapLookup,
	}
}

func recommendationsTool() ToolDef {
	return ToolDef{
		Name:        "recommendations",
		Description: "Get technologies a domain is likely to adopt next, based on its current stack.",
		Path:        "rec1/api.json",
		Params:      []ParamSpec{domainParam()},
		MapParams:   mapLookup,
	}
}

func techSearchTool() ToolDef {
	return ToolDef{
		Name:        "tech-search",
		Description: "Search the technology index by name or keyword. Use this to find the exact technology name required by lists and trends.",
		Path:        "techsearch1/api.json",
		Params: []ParamSpec{
			{Name: "query", Type: ParamString, Description: "Free-text technology search query", Required: true},
		},
		MapParams: func(args Args) map[string]string {
			return map[string]string{"QUERY": args.String("query")}
		},
	}
}
