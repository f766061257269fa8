// Package dupes finds, scores and resolves duplicate transactions arising
// from re-imports or overlapping statement periods.
package dupes

import (
	"strings"
	"time"

	"github.com/mlsantos/pitaka/internal/model"
	"github.com/shopspring/decimal"
)

// Config holds the tunable duplicate-detection heuristics. The defaults are
// calibrated against typical statement re-imports; keep them configurable
// when pointing at a different merchant taxonomy.
type Config struct {
	// TimeThreshold is the maximum timestamp delta still considered the
	// same event.
	TimeThreshold time.Duration
	// AmountTolerancePercent is the maximum percentage difference between
	// two amounts still considered similar.
	AmountTolerancePercent float64
}

// DefaultConfig returns the calibrated defaults: 24 hours and 1%.
func DefaultConfig() Config {
	return Config{
		TimeThreshold:          24 * time.Hour,
		AmountTolerancePercent: 1.0,
	}
}

// Dimension weights. A strongest-grade match contributes strongWeight; the
// graded weaker matches contribute less. The sum is clamped to 1.0.
const (
	strongWeight    = 0.35
	closeWeight     = 0.30
	nearWeight      = 0.25
	weakWeight      = 0.20
	prefixThreshold = 0.7
)

// Detector scores candidate duplicate pairs.
type Detector struct {
	cfg Config
}

// NewDetector creates a detector with the given config. Zero-value fields
// fall back to the defaults.
func NewDetector(cfg Config) *Detector {
	def := DefaultConfig()
	if cfg.TimeThreshold <= 0 {
		cfg.TimeThreshold = def.TimeThreshold
	}
	if cfg.AmountTolerancePercent <= 0 {
		cfg.AmountTolerancePercent = def.AmountTolerancePercent
	}
	return &Detector{cfg: cfg}
}

// FindDuplicates scores every pair in the set and returns all matches. The
// scan is quadratic, so callers should only hand over the comparison set
// once it is fully collected.
func (d *Detector) FindDuplicates(txns []model.Transaction) []model.DuplicateMatch {
	var matches []model.DuplicateMatch
	for i := 0; i < len(txns); i++ {
		for j := i + 1; j < len(txns); j++ {
			if match := d.IsDuplicate(txns[i], txns[j]); match != nil {
				matches = append(matches, *match)
			}
		}
	}
	return matches
}

// IsDuplicate evaluates one pair, short-circuiting to nil the moment any
// required dimension disagrees. The evaluation is symmetric: swapping the
// arguments yields the same confidence and match type.
func (d *Detector) IsDuplicate(a, b model.Transaction) *model.DuplicateMatch {
	var confidence float64
	var reasons []string
	allStrong := true

	weight, reason, ok := d.dateScore(a.Date, b.Date)
	if !ok {
		return nil
	}
	confidence += weight
	reasons = append(reasons, reason)
	allStrong = allStrong && weight == strongWeight

	weight, reason, ok = d.amountScore(a.Amount, b.Amount)
	if !ok {
		return nil
	}
	confidence += weight
	reasons = append(reasons, reason)
	allStrong = allStrong && weight == strongWeight

	weight, reason, ok = descriptionScore(a.Description, b.Description)
	if !ok {
		return nil
	}
	confidence += weight
	reasons = append(reasons, reason)
	allStrong = allStrong && weight == strongWeight

	matchType := model.MatchNear
	if allStrong {
		matchType = model.MatchExact
	}
	if crossSource(a, b) {
		matchType = model.MatchCrossSource
		reasons = append(reasons, "cross-source")
	}

	if confidence > 1 {
		confidence = 1
	}
	return &model.DuplicateMatch{
		A:          a,
		B:          b,
		Reasons:    reasons,
		Type:       matchType,
		Confidence: confidence,
	}
}

// dateScore grades the date dimension. Equal timestamps are the strongest
// signal; same-day pairs within the threshold are graded by proximity;
// cross-midnight pairs within the threshold still count when closer than
// 12 hours apart.
func (d *Detector) dateScore(a, b time.Time) (float64, string, bool) {
	if a.Equal(b) {
		return strongWeight, "same timestamp", true
	}

	delta := a.Sub(b)
	if delta < 0 {
		delta = -delta
	}
	if delta > d.cfg.TimeThreshold {
		return 0, "", false
	}

	sameDay := a.Year() == b.Year() && a.YearDay() == b.YearDay()
	switch {
	case sameDay && delta <= 5*time.Minute:
		return closeWeight, "same day, within 5 minutes", true
	case sameDay && delta <= time.Hour:
		return nearWeight, "same day, within an hour", true
	case sameDay:
		return weakWeight, "same day", true
	case delta < 12*time.Hour:
		return weakWeight, "near date", true
	default:
		return 0, "", false
	}
}

// amountScore grades the amount dimension. Two zero amounts are treated as
// equal; otherwise the percentage difference is measured against the larger
// magnitude.
func (d *Detector) amountScore(a, b decimal.Decimal) (float64, string, bool) {
	if a.Equal(b) {
		return strongWeight, "identical amount", true
	}

	absA, absB := a.Abs(), b.Abs()
	larger := absA
	if absB.GreaterThan(larger) {
		larger = absB
	}
	if larger.IsZero() {
		return strongWeight, "identical amount", true
	}

	diffPct := absA.Sub(absB).Abs().Div(larger).Mul(decimal.NewFromInt(100))
	if diffPct.LessThanOrEqual(decimal.NewFromFloat(d.cfg.AmountTolerancePercent)) {
		return nearWeight, "similar amount", true
	}
	return 0, "", false
}

// descriptionScore grades the description dimension: exact normalized
// match, containment, then a 70% shared-prefix test against the shorter
// string.
func descriptionScore(a, b string) (float64, string, bool) {
	na := strings.ToUpper(strings.TrimSpace(a))
	nb := strings.ToUpper(strings.TrimSpace(b))
	if na == "" || nb == "" {
		return 0, "", false
	}
	if na == nb {
		return strongWeight, "identical description", true
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return nearWeight, "description containment", true
	}

	shorter := len(na)
	if len(nb) < shorter {
		shorter = len(nb)
	}
	shared := 0
	for shared < shorter && na[shared] == nb[shared] {
		shared++
	}
	if float64(shared)/float64(shorter) >= prefixThreshold {
		return weakWeight, "similar description", true
	}
	return 0, "", false
}

// crossSource reports whether the pair spans two distinct statement sources.
func crossSource(a, b model.Transaction) bool {
	if a.Source == "" || b.Source == "" {
		return false
	}
	if a.Source == model.SourceUnknown || b.Source == model.SourceUnknown {
		return false
	}
	return a.Source != b.Source
}
