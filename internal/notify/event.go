package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
)

// DocumentChangedEvent is the socket.io event announcing a new current
// document.
const DocumentChangedEvent = "document_changed"

var errEmptyPayload = errors.New("event carries no payload")

// Payload is the body of a document_changed event.
type Payload struct {
	Path string `json:"path"`
	Name string `json:"name,omitempty"`
}

// decodePayload accepts the first event argument either as a decoded JSON
// object or as JSON text.
func decodePayload(args []any) (*Payload, error) {
	if len(args) == 0 || args[0] == nil {
		return nil, errEmptyPayload
	}

	var raw []byte
	switch v := args[0].(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to re-encode payload: %w", err)
		}
		raw = b
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("malformed payload: %w", err)
	}
	if p.Path == "" {
		return nil, errors.New("payload has no path")
	}
	if p.Name == "" {
		p.Name = filepath.Base(p.Path)
	}
	return &p, nil
}
