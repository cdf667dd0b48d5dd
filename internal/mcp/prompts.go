package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// RegisterPrompts registers the prompt catalog. Prompts generate agent
// instructions that reference tools by name; they never call one.
func RegisterPrompts(r *Registry) {
	r.RegisterPrompt(analyzeStackPrompt())
	r.RegisterPrompt(compareStacksPrompt())
	r.RegisterPrompt(techAdoptionPrompt())
	r.RegisterPrompt(salesProspectingPrompt())
}

func analyzeStackPrompt() PromptDef {
	return PromptDef{
		Name:        "analyze-stack",
		Description: "Analyze the full technology stack of a website",
		Args: []PromptArgSpec{
			{Name: "domain", Description: "Domain to analyze (e.g. 'example.com')", Required: true},
		},
		Render: func(args map[string]string) []mcp.PromptMessage {
			domain := args["domain"]
			return []mcp.PromptMessage{userMessage(fmt.Sprintf(
				"Analyze the technology stack of %s.\n\n"+
					"1. Call the domain-lookup tool with domain=%q to get the detected technologies.\n"+
					"2. Group the results by their Tag (category) and summarise what the site is built on: hosting, CMS/framework, analytics, marketing, and payments.\n"+
					"3. Call the trust tool with the same domain and note any risk signals.\n"+
					"4. Finish with a short assessment of how modern the stack is and anything unusual.",
				domain, domain))}
		},
	}
}

func compareStacksPrompt() PromptDef {
	return PromptDef{
		Name:        "compare-stacks",
		Description: "Compare the technology stacks of two websites",
		Args: []PromptArgSpec{
			{Name: "domain", Description: "First domain to compare", Required: true},
			{Name: "competitor", Description: "Second domain to compare against", Required: true},
		},
		Render: func(args map[string]string) []mcp.PromptMessage {
			return []mcp.PromptMessage{userMessage(fmt.Sprintf(
				"Compare the technology stacks of %s and %s.\n\n"+
					"Call the domain-lookup tool once for each domain, then produce a comparison:\n"+
					"- technologies they share\n"+
					"- technologies unique to each\n"+
					"- where one stack looks stronger (performance, analytics depth, commerce tooling)\n"+
					"End with a one-paragraph verdict on which site is better equipped and why.",
				args["domain"], args["competitor"]))}
		},
	}
}

func techAdoptionPrompt() PromptDef {
	return PromptDef{
		Name:        "tech-adoption",
		Description: "Report on the adoption trajectory of a technology",
		Args: []PromptArgSpec{
			{Name: "technology", Description: "Technology name (e.g. 'Shopify')", Required: true},
		},
		Render: func(args map[string]string) []mcp.PromptMessage {
			tech := args["technology"]
			return []mcp.PromptMessage{userMessage(fmt.Sprintf(
				"Report on the adoption of %q.\n\n"+
					"1. If you are not certain of the exact technology name, call the tech-search tool with query=%q first and use the canonical name it returns.\n"+
					"2. Call the trends tool with that technology name to get usage over time.\n"+
					"3. Call the lists tool to sample current sites using it.\n"+
					"4. Summarise whether adoption is growing, flat, or declining, and what kinds of sites use it.",
				tech, tech))}
		},
	}
}

func salesProspectingPrompt() PromptDef {
	return PromptDef{
		Name:        "sales-prospecting",
		Description: "Build a prospect list of companies using a technology",
		Args: []PromptArgSpec{
			{Name: "technology", Description: "Technology the prospects must use", Required: true},
			{Name: "since", Description: "Only include sites that adopted it since this date (YYYY-MM-DD)"},
		},
		Render: func(args map[string]string) []mcp.PromptMessage {
			tech := args["technology"]
			instructions := fmt.Sprintf(
				"Build a sales prospect list of companies using %q.\n\n"+
					"1. Call the lists tool with technology=%q", tech, tech)
			if since := args["since"]; since != "" {
				instructions += fmt.Sprintf(" and since=%q", since)
			}
			instructions += " to get candidate domains.\n" +
				"2. For the most promising candidates, call the domain-lookup tool to confirm the technology is still live and note the rest of their stack.\n" +
				"3. Present the list as a table: domain, confirmed technologies, and a one-line reason they are a good prospect."
			return []mcp.PromptMessage{userMessage(instructions)}
		},
	}
}
