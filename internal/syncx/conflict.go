// Package syncx drains the local sync queue, transmits pending mutations to
// the remote store and resolves version conflicts. The offline core never
// blocks on any of this; the synchronizer runs strictly outside it.
package syncx

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tinashem/dukabook/internal/models"
)

// ConflictType classifies a version conflict by what each side did since
// their last common version.
type ConflictType string

const (
	// ConflictUpdateUpdate: both sides modified the record.
	ConflictUpdateUpdate ConflictType = "update_update"

	// ConflictUpdateDelete: local modified, remote deleted.
	ConflictUpdateDelete ConflictType = "update_delete"

	// ConflictDeleteUpdate: local deleted, remote modified.
	ConflictDeleteUpdate ConflictType = "delete_update"
)

// ConflictRecord is the audit trail of one resolved conflict. Both versions
// are retained verbatim so the losing side can be shown to the user.
type ConflictRecord struct {
	Table         string          `json:"table"`
	RecordID      string          `json:"recordId"`
	LocalVersion  json.RawMessage `json:"localVersion,omitempty"`
	RemoteVersion json.RawMessage `json:"remoteVersion,omitempty"`
	Type          ConflictType    `json:"conflictType"`
}

// RemoteRecord is the remote store's version of a record, returned when a
// push is rejected with a conflict.
type RemoteRecord struct {
	Deleted   bool            `json:"deleted"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// Classify derives the conflict type from the local action and whether the
// remote side deleted the record. Creates are treated like updates: a create
// that conflicts means the record already exists remotely.
func Classify(local models.Action, remoteDeleted bool) ConflictType {
	if local == models.ActionDelete {
		return ConflictDeleteUpdate
	}
	if remoteDeleted {
		return ConflictUpdateDelete
	}
	return ConflictUpdateUpdate
}

// Outcome is the resolver's decision for one conflict.
type Outcome int

const (
	// OutcomeKeepLocal: the local version survives; re-push it with force.
	OutcomeKeepLocal Outcome = iota

	// OutcomeApplyRemote: the remote version survives; write it locally.
	OutcomeApplyRemote

	// OutcomeDeleteLocal: the record is gone; remove the local copy.
	OutcomeDeleteLocal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeKeepLocal:
		return "keep_local"
	case OutcomeApplyRemote:
		return "apply_remote"
	case OutcomeDeleteLocal:
		return "delete_local"
	}
	return "unknown"
}

// Resolver decides conflicts deterministically: concurrent updates go to the
// later writer by updatedAt, and a delete on either side wins over an update.
// Re-creating an accidentally deleted record is judged less harmful than
// resurrecting one the user explicitly removed.
type Resolver struct{}

// Resolve returns the outcome and the audit record for a rejected push.
func (Resolver) Resolve(e *models.OutboxEntry, remote *RemoteRecord) (Outcome, *ConflictRecord, error) {
	ct := Classify(e.Action, remote.Deleted)

	rec := &ConflictRecord{
		Table:         e.TableName,
		RecordID:      e.RecordID,
		LocalVersion:  e.Payload,
		RemoteVersion: remote.Payload,
		Type:          ct,
	}

	switch ct {
	case ConflictUpdateUpdate:
		localUpdated, err := payloadUpdatedAt(e.Payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to read local version timestamp: %w", err)
		}
		// ties go to the remote so that two devices converge on one version
		if localUpdated.After(remote.UpdatedAt) {
			return OutcomeKeepLocal, rec, nil
		}
		return OutcomeApplyRemote, rec, nil

	case ConflictUpdateDelete:
		return OutcomeDeleteLocal, rec, nil

	case ConflictDeleteUpdate:
		// local delete wins; pushing it with force removes the remote copy
		return OutcomeKeepLocal, rec, nil
	}

	return 0, nil, fmt.Errorf("unknown conflict type %q", ct)
}

func payloadUpdatedAt(payload json.RawMessage) (time.Time, error) {
	var v struct {
		UpdatedAt time.Time `json:"updatedAt"`
	}
	if err := json.Unmarshal(payload, &v); err != nil {
		return time.Time{}, err
	}
	return v.UpdatedAt, nil
}
