package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// Field identifies one of the four values returned by the /process endpoint.
type Field int

const (
	OriginalQuery Field = iota
	FrenchQuery
	FrenchResponse
	WolofResponse
)

// ResponseFields lists the response fields in their declared order.
var ResponseFields = []Field{OriginalQuery, FrenchQuery, FrenchResponse, WolofResponse}

// NoResponsePlaceholder is rendered in place of an empty field.
const NoResponsePlaceholder = "No response available"

// Key returns the JSON key of the field.
func (f Field) Key() string {
	switch f {
	case OriginalQuery:
		return "original_query"
	case FrenchQuery:
		return "french_query"
	case FrenchResponse:
		return "french_response"
	case WolofResponse:
		return "wolof_response"
	}
	return "unknown"
}

// Label returns the heading shown above the field.
func (f Field) Label() string {
	switch f {
	case OriginalQuery:
		return "Your question (Wolof)"
	case FrenchQuery:
		return "Translated question"
	case FrenchResponse:
		return "Model answer"
	case WolofResponse:
		return "Answer (Wolof)"
	}
	return "Unknown"
}

// QueryRequest is the body sent to POST /process.
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse is the body returned by POST /process on success.
type QueryResponse struct {
	OriginalQuery  string `json:"original_query"`
	FrenchQuery    string `json:"french_query"`
	FrenchResponse string `json:"french_response"`
	WolofResponse  string `json:"wolof_response"`
}

// ErrorResponse is the body returned by POST /process on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Get returns the value of f.
func (r QueryResponse) Get(f Field) string {
	switch f {
	case OriginalQuery:
		return r.OriginalQuery
	case FrenchQuery:
		return r.FrenchQuery
	case FrenchResponse:
		return r.FrenchResponse
	case WolofResponse:
		return r.WolofResponse
	}
	return ""
}

func (r *QueryResponse) set(f Field, v string) {
	switch f {
	case OriginalQuery:
		r.OriginalQuery = v
	case FrenchQuery:
		r.FrenchQuery = v
	case FrenchResponse:
		r.FrenchResponse = v
	case WolofResponse:
		r.WolofResponse = v
	}
}

// ParseQueryResponse extracts the four response fields from a decoded JSON
// object and returns the keys of the fields that are absent, in declared order.
//
// A field counts as absent when it is missing or holds a falsy value (null,
// "", false, 0). A backend that legitimately answers with an empty string is
// therefore reported as malformed; this matches the browser client.
func ParseQueryResponse(payload map[string]interface{}) (QueryResponse, []string) {
	var (
		resp    QueryResponse
		missing []string
	)
	for _, f := range ResponseFields {
		v, ok := payload[f.Key()]
		if !ok || !truthy(v) {
			missing = append(missing, f.Key())
			continue
		}
		resp.set(f, text(v))
	}
	return resp, missing
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	}
	return true
}

func text(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
