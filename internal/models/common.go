package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a plain acknowledgement body.
type StatusResponse struct {
	Message string `json:"message"`
}

// FlexID is a numeric identifier that also accepts its decimal string form in
// JSON, since browser clients frequently send IDs as strings.
type FlexID uint

func (id *FlexID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		*id = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", raw)
	}
	*id = FlexID(n)
	return nil
}

func (id FlexID) Uint() uint {
	return uint(id)
}
