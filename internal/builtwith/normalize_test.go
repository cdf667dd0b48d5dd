package builtwith

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFlattenTechnologies_MultiplePaths(t *testing.T) {
	payload := []byte(`{
		"Results": [{
			"Result": {
				"Paths": [
					{
						"Domain": "example.com",
						"Technologies": [
							{"Name": "Nginx", "Description": "Web server", "Tag": "web-server", "Link": "https://nginx.org"},
							{"Name": "React", "Tag": "javascript"}
						]
					},
					{
						"Domain": "shop.example.com",
						"Technologies": [
							{"Name": "Shopify", "Description": "Commerce platform"}
						]
					}
				]
			}
		}]
	}`)

	techs := FlattenTechnologies(payload)
	if len(techs) != 3 {
		t.Fatalf("expected 3 technologies, got %d", len(techs))
	}

	// Original order preserved across path objects
	if techs[0].Name != "Nginx" || techs[1].Name != "React" || techs[2].Name != "Shopify" {
		t.Errorf("order not preserved: %v", techs)
	}

	// Missing fields default to empty string
	if techs[1].Description != "" || techs[1].Link != "" {
		t.Errorf("missing fields should default to empty string: %+v", techs[1])
	}
	if techs[2].Tag != "" || techs[2].Link != "" {
		t.Errorf("missing fields should default to empty string: %+v", techs[2])
	}
	if techs[0].Link != "https://nginx.org" {
		t.Errorf("expected link preserved, got %q", techs[0].Link)
	}
}

func TestNormalizeDomainLookup_EmptyCases(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"paths absent", `{"Results":[{"Result":{}}]}`},
		{"paths empty", `{"Results":[{"Result":{"Paths":[]}}]}`},
		{"paths not a list", `{"Results":[{"Result":{"Paths":"oops"}}]}`},
		{"no results", `{"Results":[]}`},
		{"empty object", `{}`},
		{"technologies missing", `{"Results":[{"Result":{"Paths":[{"Domain":"example.com"}]}}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := NormalizeDomainLookup(json.RawMessage(tc.payload))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var marker struct {
				Message      string       `json:"message"`
				Technologies []Technology `json:"technologies"`
			}
			if err := json.Unmarshal(out, &marker); err != nil {
				t.Fatalf("marker not valid JSON: %v", err)
			}
			if marker.Message != "no technologies found" {
				t.Errorf("expected explicit marker, got %s", out)
			}
			if marker.Technologies == nil || len(marker.Technologies) != 0 {
				t.Errorf("marker should carry an empty technologies list, got %s", out)
			}
		})
	}
}

func TestNormalizeDomainLookup_FlatList(t *testing.T) {
	payload := json.RawMessage(`{
		"Results": [{
			"Result": {
				"Paths": [{
					"Technologies": [
						{"Name": "Cloudflare", "Tag": "cdn"},
						{"Name": "WordPress", "Tag": "cms"}
					]
				}]
			}
		}]
	}`)

	out, err := NormalizeDomainLookup(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var techs []Technology
	if err := json.Unmarshal(out, &techs); err != nil {
		t.Fatalf("expected flat list, got %s: %v", out, err)
	}
	if len(techs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(techs))
	}
	if techs[0].Name != "Cloudflare" || techs[1].Name != "WordPress" {
		t.Errorf("unexpected records: %v", techs)
	}
	if strings.Contains(string(out), "no technologies found") {
		t.Error("non-empty result must not carry the empty marker")
	}
}
