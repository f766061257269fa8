package model

import "time"

// MatchType classifies a duplicate pair.
type MatchType string

const (
	// MatchExact means date, amount and description all matched at their
	// strongest grade.
	MatchExact MatchType = "exact"
	// MatchNear means the pair matched but at least one dimension matched
	// at a weaker grade.
	MatchNear MatchType = "near"
	// MatchCrossSource means the pair matched across two distinct
	// statement sources.
	MatchCrossSource MatchType = "cross_source"
)

// DuplicateMatch is the result of pairwise duplicate scoring. It is computed
// on demand and consumed immediately; matches are never persisted directly.
type DuplicateMatch struct {
	A          Transaction
	B          Transaction
	Reasons    []string
	Type       MatchType
	Confidence float64
}

// ResolutionType distinguishes duplicate groups from confirmed-unique ones.
type ResolutionType string

const (
	// ResolutionDuplicate marks a group as duplicates of a single kept
	// transaction.
	ResolutionDuplicate ResolutionType = "duplicate"
	// ResolutionUnique marks a group as false positives, exempt from
	// future duplicate consideration.
	ResolutionUnique ResolutionType = "unique"
)

// Resolution is a durable decision about a duplicate group. Once created it
// is authoritative for all listed transaction IDs until explicitly cleared.
type Resolution struct {
	CreatedAt      time.Time      `json:"created_at"`
	KeepID         string         `json:"keep_id,omitempty"`
	Reason         string         `json:"reason,omitempty"`
	Type           ResolutionType `json:"resolution_type"`
	TransactionIDs []string       `json:"transaction_ids"`
}

// DuplicateIDs returns the IDs slated for removal: every listed ID except
// the kept one. Unique resolutions remove nothing.
func (r *Resolution) DuplicateIDs() []string {
	if r.Type != ResolutionDuplicate {
		return nil
	}
	var ids []string
	for _, id := range r.TransactionIDs {
		if id != r.KeepID {
			ids = append(ids, id)
		}
	}
	return ids
}
