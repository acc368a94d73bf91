package kensa

import (
	json "github.com/goccy/go-json"
)

// issueJSON is the host-facing wire shape for a single Issue. Cause stays
// in-process and is not serialized.
type issueJSON struct {
	Path    string         `json:"path"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Rule    string         `json:"rule,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
}

// MarshalJSON renders the ordered {path, code, message} list hosts embed in
// API error payloads. Empty paths render as the root anchor "$".
func (iss Issues) MarshalJSON() ([]byte, error) {
	out := make([]issueJSON, 0, len(iss))
	for _, it := range iss {
		p := it.Path
		if p == "" {
			p = "$"
		}
		out = append(out, issueJSON{Path: p, Code: it.Code, Message: it.Message, Rule: it.Rule, Params: it.Params})
	}
	return json.Marshal(out)
}
