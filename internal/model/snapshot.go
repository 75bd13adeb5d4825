package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// snapshotVersion is written into every saved snapshot so files can be told
// apart from raw hierarchy dumps.
const snapshotVersion = 1

// ErrNotSnapshot is returned by DecodeSnapshot for data that is not a saved snapshot.
var ErrNotSnapshot = errors.New("not a uistate snapshot")

type snapshotFile struct {
	Version int       `json:"uistate_snapshot"`
	State   TreeState `json:"state"`
}

// SaveSnapshot writes ts to path for later diffing.
func SaveSnapshot(path string, ts TreeState) error {
	data, err := json.Marshal(snapshotFile{Version: snapshotVersion, State: ts})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSnapshot reads a snapshot written by SaveSnapshot.
func LoadSnapshot(path string) (TreeState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TreeState{}, fmt.Errorf("load snapshot: %w", err)
	}
	return DecodeSnapshot(data)
}

// DecodeSnapshot parses saved snapshot bytes. Raw dumps, including JSON
// ones, yield ErrNotSnapshot.
func DecodeSnapshot(data []byte) (TreeState, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return TreeState{}, ErrNotSnapshot
	}
	var f snapshotFile
	if err := json.Unmarshal(data, &f); err != nil || f.Version == 0 {
		return TreeState{}, ErrNotSnapshot
	}
	if f.Version > snapshotVersion {
		return TreeState{}, fmt.Errorf("snapshot version %d is newer than supported %d", f.Version, snapshotVersion)
	}
	return f.State, nil
}
