package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Action classifies the mutation an outbox entry shadows.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Valid reports whether a is one of the three known actions. Entries read
// back from storage are validated before draining so a malformed row is
// surfaced instead of silently transmitted.
func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// OutboxEntry is one pending mutation awaiting transmission to the remote
// store. Payload holds a full JSON snapshot of the record at enqueue time,
// not a diff. Entries are drained oldest-first and FIFO per record.
type OutboxEntry struct {
	ID         int64           `json:"id"`
	TableName  string          `json:"tableName"`
	RecordID   string          `json:"recordId"`
	Action     Action          `json:"action"`
	Payload    json.RawMessage `json:"payload"`
	RetryCount int             `json:"retryCount"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// NewOutboxEntry builds an entry with a zero retry count and the given
// record snapshot serialized as the payload.
func NewOutboxEntry(tableName, recordID string, action Action, snapshot any, now time.Time) (*OutboxEntry, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("invalid outbox action %q", action)
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize outbox payload: %w", err)
	}
	return &OutboxEntry{
		TableName: tableName,
		RecordID:  recordID,
		Action:    action,
		Payload:   payload,
		CreatedAt: now,
	}, nil
}
