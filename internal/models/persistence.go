package models

// SnapshotVersion is the current on-disk envelope version.
const SnapshotVersion = 1

// Snapshot is the persisted {history, counters} pair. Early builds wrote a
// bare record array without the envelope; the file manager still migrates
// those on load.
type Snapshot struct {
	Version  int            `json:"version"`
	Records  []AlertRecord  `json:"records"`
	Counters map[string]int `json:"counters"`
}
