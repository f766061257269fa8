package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/mlsantos/pitaka/internal/model"
)

var (
	accountNumberRe = regexp.MustCompile(`(?i)account\s+(?:no\.?|number)\s*:?\s*([0-9Xx*\-]{4,})`)
	accountHolderRe = regexp.MustCompile(`(?i)account\s+(?:name|holder)\s*:?\s*([^\n]+)`)
	periodRe        = regexp.MustCompile(`(?i)statement\s+period\s*:?\s*([A-Za-z]+ \d{1,2},? \d{4})\s*(?:to|through|-)\s*([A-Za-z]+ \d{1,2},? \d{4})`)
	openingRe       = regexp.MustCompile(`(?i)(?:opening|beginning)\s+balance\s*:?\s*([^\n]+)`)
	closingRe       = regexp.MustCompile(`(?i)(?:closing|ending)\s+balance\s*:?\s*([^\n]+)`)
)

var periodLayouts = []string{"January 2, 2006", "January 2 2006", "Jan 2, 2006", "Jan 2 2006"}

func parsePeriodDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseStatementMeta scans page text for structural statement metadata:
// account identity, statement period and opening/closing balances. Missing
// metadata is not an error; it only lowers the quality score.
func parseStatementMeta(text string, result *model.ExtractionResult) {
	if result.AccountNumber == "" {
		if m := accountNumberRe.FindStringSubmatch(text); m != nil {
			result.AccountNumber = strings.TrimSpace(m[1])
		}
	}
	if result.AccountHolder == "" {
		if m := accountHolderRe.FindStringSubmatch(text); m != nil {
			result.AccountHolder = strings.TrimSpace(m[1])
		}
	}
	if result.PeriodStart.IsZero() {
		if m := periodRe.FindStringSubmatch(text); m != nil {
			if start, ok := parsePeriodDate(m[1]); ok {
				if end, ok := parsePeriodDate(m[2]); ok {
					result.PeriodStart = start
					result.PeriodEnd = end
				}
			}
		}
	}
	if !result.HasBalances {
		openMatch := openingRe.FindStringSubmatch(text)
		closeMatch := closingRe.FindStringSubmatch(text)
		if openMatch != nil && closeMatch != nil {
			opening, errOpen := ParseAmount(openMatch[1])
			closing, errClose := ParseAmount(closeMatch[1])
			if errOpen == nil && errClose == nil {
				result.OpeningBalance = opening
				result.ClosingBalance = closing
				result.HasBalances = true
			}
		}
	}
}
