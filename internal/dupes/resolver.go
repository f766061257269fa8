package dupes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mlsantos/pitaka/internal/model"
)

// ResolutionFormatVersion is the persisted resolution-file format version.
const ResolutionFormatVersion = 1

// Resolver turns duplicate matches into durable keep/remove decisions.
// Resolutions are append-only; clearing requires an explicit Reset.
type Resolver struct {
	resolutions []model.Resolution
	byID        map[string]int // transaction ID -> index into resolutions
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{byID: make(map[string]int)}
}

// MarkDuplicate records a duplicate group, keeping keepID and slating every
// other listed ID for removal.
func (r *Resolver) MarkDuplicate(ids []string, keepID, reason string) error {
	if len(ids) == 0 {
		return fmt.Errorf("resolution requires at least one transaction ID")
	}
	found := false
	for _, id := range ids {
		if id == keepID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("keep ID %q is not in the resolved group", keepID)
	}

	r.append(model.Resolution{
		TransactionIDs: ids,
		Type:           model.ResolutionDuplicate,
		KeepID:         keepID,
		Reason:         reason,
		CreatedAt:      time.Now().UTC(),
	})
	return nil
}

// MarkUnique records a group as false positives, exempting it from future
// duplicate consideration.
func (r *Resolver) MarkUnique(ids []string, reason string) error {
	if len(ids) == 0 {
		return fmt.Errorf("resolution requires at least one transaction ID")
	}
	r.append(model.Resolution{
		TransactionIDs: ids,
		Type:           model.ResolutionUnique,
		Reason:         reason,
		CreatedAt:      time.Now().UTC(),
	})
	return nil
}

// AutoResolve accepts every match at or above minConfidence, keeping the
// first transaction of the pair when keepFirst is set, otherwise the
// second. IDs that are already resolved are skipped, so repeated runs over
// the same match list resolve nothing new. It returns the number of newly
// resolved groups.
func (r *Resolver) AutoResolve(matches []model.DuplicateMatch, keepFirst bool, minConfidence float64) int {
	resolved := 0
	for _, m := range matches {
		if m.Confidence < minConfidence {
			continue
		}
		if r.IsResolved(m.A.ID) || r.IsResolved(m.B.ID) {
			continue
		}
		keep := m.A.ID
		if !keepFirst {
			keep = m.B.ID
		}
		reason := fmt.Sprintf("auto-resolved (%s, confidence %.2f)", m.Type, m.Confidence)
		if err := r.MarkDuplicate([]string{m.A.ID, m.B.ID}, keep, reason); err != nil {
			continue
		}
		resolved++
	}
	return resolved
}

// IsResolved reports whether any resolution covers the given ID.
func (r *Resolver) IsResolved(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// DuplicateIDs returns every ID slated for removal across all duplicate
// resolutions. Kept IDs are never included.
func (r *Resolver) DuplicateIDs() map[string]bool {
	ids := make(map[string]bool)
	for i := range r.resolutions {
		for _, id := range r.resolutions[i].DuplicateIDs() {
			ids[id] = true
		}
	}
	return ids
}

// FilterMatches returns the input minus matches whose pair is covered by a
// unique resolution. A group confirmed unique stays out of duplicate
// consideration until an explicit reset, no matter how often the detector
// re-scores it.
func (r *Resolver) FilterMatches(matches []model.DuplicateMatch) []model.DuplicateMatch {
	if len(r.resolutions) == 0 {
		return matches
	}
	kept := make([]model.DuplicateMatch, 0, len(matches))
	for _, m := range matches {
		if r.coversUniquePair(m.A.ID, m.B.ID) || r.coversUniquePair(m.B.ID, m.A.ID) {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

// coversUniquePair reports whether the resolution governing id is unique and
// also lists other.
func (r *Resolver) coversUniquePair(id, other string) bool {
	idx, ok := r.byID[id]
	if !ok {
		return false
	}
	res := &r.resolutions[idx]
	if res.Type != model.ResolutionUnique {
		return false
	}
	for _, tid := range res.TransactionIDs {
		if tid == other {
			return true
		}
	}
	return false
}

// FilterTransactions returns the input minus resolved duplicates,
// preserving order.
func (r *Resolver) FilterTransactions(txns []model.Transaction) []model.Transaction {
	remove := r.DuplicateIDs()
	if len(remove) == 0 {
		return txns
	}
	kept := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if !remove[t.ID] {
			kept = append(kept, t)
		}
	}
	return kept
}

// Resolutions returns all recorded resolutions in creation order.
func (r *Resolver) Resolutions() []model.Resolution {
	return r.resolutions
}

// Reset clears every resolution.
func (r *Resolver) Reset() {
	r.resolutions = nil
	r.byID = make(map[string]int)
}

func (r *Resolver) append(res model.Resolution) {
	r.resolutions = append(r.resolutions, res)
	idx := len(r.resolutions) - 1
	for _, id := range res.TransactionIDs {
		r.byID[id] = idx
	}
}

// resolutionFile is the on-disk layout.
type resolutionFile struct {
	Version     int                `json:"version"`
	Resolutions []model.Resolution `json:"resolutions"`
}

// Save writes the full resolution set to path as versioned JSON.
func (r *Resolver) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create resolutions directory: %w", err)
	}

	data, err := json.MarshalIndent(resolutionFile{
		Version:     ResolutionFormatVersion,
		Resolutions: r.resolutions,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode resolutions: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write resolutions file: %w", err)
	}
	return nil
}

// Load merges resolutions from path into memory. Loaded resolutions are
// appended and take precedence for any transaction ID they cover. It
// returns how many resolutions were merged and how many records were
// malformed; malformed records are skipped but the count always surfaces.
func (r *Resolver) Load(path string) (loaded, malformed int, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read resolutions file: %w", err)
	}

	var file resolutionFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return 0, 0, fmt.Errorf("failed to parse resolutions file: %w", err)
	}
	if file.Version != ResolutionFormatVersion {
		return 0, 0, fmt.Errorf("unsupported resolutions file version %d", file.Version)
	}

	for _, res := range file.Resolutions {
		if !validResolution(res) {
			malformed++
			continue
		}
		r.append(res)
		loaded++
	}
	return loaded, malformed, nil
}

func validResolution(res model.Resolution) bool {
	if len(res.TransactionIDs) == 0 {
		return false
	}
	switch res.Type {
	case model.ResolutionDuplicate:
		for _, id := range res.TransactionIDs {
			if id == res.KeepID {
				return true
			}
		}
		return false
	case model.ResolutionUnique:
		return true
	default:
		return false
	}
}
