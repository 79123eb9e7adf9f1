package mongo

import (
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/rotawatch/rotation"
)

// snapshotModel is the BSON document for a snapshot slot.
type snapshotModel struct {
	grove.BaseModel `grove:"table:rotation_snapshots"`

	Slot       string              `grove:"id,pk"       bson:"_id"`
	RotationID string              `grove:"rotation_id" bson:"rotation_id"`
	Pools      map[string][]string `grove:"pools"       bson:"pools"`
	UpdatedAt  time.Time           `grove:"updated_at"  bson:"updated_at"`
}

func toSnapshotModel(slot string, s *rotation.Snapshot, now time.Time) *snapshotModel {
	pools := make(map[string][]string, len(s.Pools))
	for k, v := range s.Pools {
		if v == nil {
			v = []string{}
		}
		pools[k] = v
	}
	return &snapshotModel{
		Slot:       slot,
		RotationID: s.RotationID,
		Pools:      pools,
		UpdatedAt:  now,
	}
}

func fromSnapshotModel(m *snapshotModel) *rotation.Snapshot {
	s := rotation.NewSnapshot(m.RotationID)
	for k, v := range m.Pools {
		if v == nil {
			v = []string{}
		}
		s.Pools[k] = v
	}
	return s
}
