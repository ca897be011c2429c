package models

import "encoding/json"

// CRMResponse is the envelope the CRM API answers with. data and error are
// kept raw because their shape varies between endpoints and failures.
type CRMResponse struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     json.RawMessage `json:"error,omitempty"`
	ErrorInfo json.RawMessage `json:"error_info,omitempty"`
}

// CreatedId returns data.id when data is an object holding an integer id.
func (r *CRMResponse) CreatedId() (int64, bool) {
	if r == nil || len(r.Data) == 0 {
		return 0, false
	}
	var data map[string]json.RawMessage
	if err := json.Unmarshal(r.Data, &data); err != nil || data == nil {
		return 0, false
	}
	rawId, ok := data["id"]
	if !ok {
		return 0, false
	}
	var id int64
	if err := json.Unmarshal(rawId, &id); err != nil {
		return 0, false
	}
	return id, true
}

// ErrorMessage returns the error string reported in the body, or
// "Unknown error".
func (r *CRMResponse) ErrorMessage() string {
	if r == nil || len(r.Error) == 0 {
		return "Unknown error"
	}
	var msg string
	if err := json.Unmarshal(r.Error, &msg); err != nil || msg == "" {
		return "Unknown error"
	}
	return msg
}
