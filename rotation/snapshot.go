package rotation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrMalformedSnapshot is returned when a stored snapshot cannot be decoded.
var ErrMalformedSnapshot = errors.New("rotation: malformed snapshot")

const rotationIDKey = "rotationId"

// Snapshot is the last processed rotation: its identifier and, per pool,
// the display names in the order the API returned them.
//
// The JSON form is flat, with the rotation ID beside the pool keys:
//
//	{"rotationId": "abc", "BEDWARS_8TEAMS_FAST": ["Aquarium", "Lighthouse"]}
type Snapshot struct {
	RotationID string
	Pools      map[string][]string
}

// NewSnapshot returns an empty snapshot for a rotation.
func NewSnapshot(rotationID string) *Snapshot {
	return &Snapshot{RotationID: rotationID, Pools: make(map[string][]string)}
}

// Pool returns the stored names for a pool, or nil when the pool is absent.
func (s *Snapshot) Pool(key string) []string {
	if s == nil {
		return nil
	}
	return s.Pools[key]
}

// Clone returns a deep copy.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := NewSnapshot(s.RotationID)
	for k, v := range s.Pools {
		out.Pools[k] = append([]string(nil), v...)
	}
	return out
}

// MarshalJSON writes the flat form. Pool keys are sorted so the output is
// stable between runs.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	id, err := json.Marshal(s.RotationID)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`"` + rotationIDKey + `":`)
	buf.Write(id)

	keys := make([]string, 0, len(s.Pools))
	for k := range s.Pools {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		names := s.Pools[k]
		if names == nil {
			names = []string{}
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(names)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the flat form. Every key other than rotationId must
// hold an array of strings.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	idRaw, ok := raw[rotationIDKey]
	if !ok {
		return fmt.Errorf("%w: missing %s", ErrMalformedSnapshot, rotationIDKey)
	}
	var id string
	if err := json.Unmarshal(idRaw, &id); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedSnapshot, rotationIDKey, err)
	}
	delete(raw, rotationIDKey)

	pools := make(map[string][]string, len(raw))
	for k, v := range raw {
		var names []string
		if err := json.Unmarshal(v, &names); err != nil {
			return fmt.Errorf("%w: pool %s: %v", ErrMalformedSnapshot, k, err)
		}
		if names == nil {
			names = []string{}
		}
		pools[k] = names
	}

	s.RotationID = id
	s.Pools = pools
	return nil
}
