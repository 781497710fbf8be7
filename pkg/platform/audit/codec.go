package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// record is the wire form shared by the file and stream sinks.
type record struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Category  string            `json:"category"`
	Subject   map[string]string `json:"subject,omitempty"`
	Outcome   bool              `json:"outcome"`
	Detail    string            `json:"detail"`
	RequestID string            `json:"request_id,omitempty"`
}

// Encode serializes an entry as a single JSON object without a trailing newline.
func Encode(e Entry) ([]byte, error) {
	return json.Marshal(record{
		ID:        e.ID.String(),
		Timestamp: e.Timestamp,
		Category:  string(e.Category),
		Subject:   e.Subject,
		Outcome:   e.Outcome,
		Detail:    e.Detail,
		RequestID: e.RequestID,
	})
}

// Decode parses the output of Encode.
func Decode(data []byte) (Entry, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return Entry{}, fmt.Errorf("decode audit entry: %w", err)
	}
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return Entry{}, fmt.Errorf("decode audit entry id: %w", err)
	}
	return Entry{
		ID:        id,
		Timestamp: r.Timestamp,
		Category:  Category(r.Category),
		Subject:   r.Subject,
		Outcome:   r.Outcome,
		Detail:    r.Detail,
		RequestID: r.RequestID,
	}, nil
}
