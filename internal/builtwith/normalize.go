package builtwith

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Technology is one flattened technology record from a domain lookup.
// Field names mirror the upstream response for caller familiarity.
type Technology struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
	Tag         string `json:"Tag"`
	Link        string `json:"Link"`
}

// noTechnologiesMarker is returned when a lookup succeeds but detects
// nothing, so callers can tell "nothing detected" from a structural miss.
var noTechnologiesMarker = json.RawMessage(`{"message":"no technologies found","technologies":[]}`)

// FlattenTechnologies extracts every technology entry from a Domain API
// response, walking Results[0].Result.Paths[*].Technologies[*] in
// original order. Missing fields default to the empty string. A payload
// where Paths is absent, empty, or not a list yields an empty slice.
func FlattenTechnologies(payload []byte) []Technology {
	var techs []Technology
	paths := gjson.GetBytes(payload, "Results.0.Result.Paths")
	if !paths.IsArray() {
		return techs
	}
	paths.ForEach(func(_, path gjson.Result) bool {
		entries := path.Get("Technologies")
		if !entries.IsArray() {
			return true
		}
		entries.ForEach(func(_, entry gjson.Result) bool {
			techs = append(techs, Technology{
				Name:        entry.Get("Name").String(),
				Description: entry.Get("Description").String(),
				Tag:         entry.Get("Tag").String(),
				Link:        entry.Get("Link").String(),
			})
			return true
		})
		return true
	})
	return techs
}

// NormalizeDomainLookup is the post-processing step for the domain-lookup
// tool: a flat ordered technology list on success, an explicit
// "no technologies found" marker when the lookup detected nothing.
func NormalizeDomainLookup(payload json.RawMessage) (json.RawMessage, error) {
	techs := FlattenTechnologies(payload)
	if len(techs) == 0 {
		return noTechnologiesMarker, nil
	}
	out, err := json.Marshal(techs)
	if err != nil {
		return nil, err
	}
	return out, nil
}
