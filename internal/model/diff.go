package model

import (
	"crypto/sha256"
	"fmt"
)

// ChangeType represents the kind of UI change detected.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeChanged ChangeType = "changed"
)

// ElementChange is an element whose identity survived between two snapshots
// but whose mutable properties moved.
type ElementChange struct {
	ID          int                  `yaml:"id"                   json:"id"`
	PrevID      int                  `yaml:"prev_id"              json:"prev_id"`
	ControlType ControlType          `yaml:"control_type"         json:"control_type"`
	Name        string               `yaml:"name,omitempty"       json:"name,omitempty"`
	Changes     map[string][2]string `yaml:"changes"              json:"changes"`
}

// SnapshotDiff is the result of comparing two tree snapshots by content hash.
type SnapshotDiff struct {
	Added          []ElementRecord `yaml:"added,omitempty"   json:"added,omitempty"`
	Removed        []ElementRecord `yaml:"removed,omitempty" json:"removed,omitempty"`
	Changed        []ElementChange `yaml:"changed,omitempty" json:"changed,omitempty"`
	UnchangedCount int             `yaml:"unchanged_count"   json:"unchanged_count"`
}

// Empty reports whether nothing was added, removed, or changed.
func (d SnapshotDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// ElementHash computes an identity for an element that does not depend on
// its ID, so records can be matched across snapshots where IDs shift.
// Elements sharing the same hash are told apart by occurrence order.
func ElementHash(el ElementRecord) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s", el.ControlType, el.Name, el.App)
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

type hashKey struct {
	hash string
	nth  int
}

func keyed(records []ElementRecord) ([]hashKey, map[hashKey]ElementRecord) {
	counts := make(map[string]int, len(records))
	keys := make([]hashKey, len(records))
	byKey := make(map[hashKey]ElementRecord, len(records))
	for i, el := range records {
		h := ElementHash(el)
		k := hashKey{hash: h, nth: counts[h]}
		counts[h]++
		keys[i] = k
		byKey[k] = el
	}
	return keys, byKey
}

// DiffSnapshots compares two snapshots. Records are matched by content hash
// and occurrence order; matched records are compared on bounds and partition.
func DiffSnapshots(prev, curr TreeSnapshot) SnapshotDiff {
	prevRecords, currRecords := prev.All(), curr.All()
	prevKeys, prevByKey := keyed(prevRecords)
	currKeys, currByKey := keyed(currRecords)

	var diff SnapshotDiff

	for i, el := range currRecords {
		prevEl, existed := prevByKey[currKeys[i]]
		if !existed {
			diff.Added = append(diff.Added, el)
			continue
		}
		if changes := diffRecordProperties(prevEl, el); len(changes) > 0 {
			diff.Changed = append(diff.Changed, ElementChange{
				ID:          el.ID,
				PrevID:      prevEl.ID,
				ControlType: el.ControlType,
				Name:        el.Name,
				Changes:     changes,
			})
		} else {
			diff.UnchangedCount++
		}
	}

	for i, el := range prevRecords {
		if _, exists := currByKey[prevKeys[i]]; !exists {
			diff.Removed = append(diff.Removed, el)
		}
	}

	return diff
}

// diffRecordProperties compares the properties that are not part of the hash.
func diffRecordProperties(prev, curr ElementRecord) map[string][2]string {
	diffs := make(map[string][2]string)

	if prev.Bounds != curr.Bounds {
		diffs["bounds"] = [2]string{prev.Bounds.String(), curr.Bounds.String()}
	}
	if prev.Partition() != curr.Partition() {
		diffs["partition"] = [2]string{string(prev.Partition()), string(curr.Partition())}
	}
	if prev.ScrollAxes != curr.ScrollAxes {
		diffs["scroll_axes"] = [2]string{string(prev.ScrollAxes), string(curr.ScrollAxes)}
	}

	if len(diffs) == 0 {
		return nil
	}
	return diffs
}
