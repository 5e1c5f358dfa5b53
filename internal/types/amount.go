package types

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Amount holds a price exactly as the client sent it, whether as a JSON
// number or a string, so the service can reject non-numeric input with a
// validation error instead of a decode failure.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(strings.TrimSpace(s))
		return nil
	}
	*a = Amount(data)
	return nil
}
