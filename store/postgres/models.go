package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/rotawatch/rotation"
)

// snapshotModel is one row of rotation_snapshots.
type snapshotModel struct {
	grove.BaseModel `grove:"table:rotation_snapshots"`

	Slot       string          `grove:"slot,pk"`
	RotationID string          `grove:"rotation_id"`
	Payload    json.RawMessage `grove:"payload,type:jsonb"`
	UpdatedAt  time.Time       `grove:"updated_at"`
}

func toSnapshotModel(slot string, snap *rotation.Snapshot, now time.Time) (*snapshotModel, error) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return &snapshotModel{
		Slot:       slot,
		RotationID: snap.RotationID,
		Payload:    payload,
		UpdatedAt:  now,
	}, nil
}

func fromSnapshotModel(m *snapshotModel) (*rotation.Snapshot, error) {
	var snap rotation.Snapshot
	if err := json.Unmarshal(m.Payload, &snap); err != nil {
		return nil, fmt.Errorf("decode slot %s: %w", m.Slot, err)
	}
	return &snap, nil
}
