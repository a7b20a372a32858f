package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/quarrydata/statcan-cli/internal/core/domain"
)

// refDateRule is a date-construction rule for raw REF_DATE strings. The
// rule is selected once by sampling the first data row and then applied
// to every row: datasets are assumed format-homogeneous, so a table
// mixing formats will mis-parse the rows that don't match the sampled
// pattern.
type refDateRule int

const (
	// ruleYear handles bare years ("2021" -> 2021-01-01).
	ruleYear refDateRule = iota

	// ruleYearMonth handles year-month values ("2021-01" -> 2021-01-01).
	ruleYearMonth

	// ruleFiscalYear handles slash-separated fiscal pairs ("2019/2020"
	// -> 2020-03-31). Tables under this rule also gain a REF_PERIOD
	// column holding "Fiscal Year".
	ruleFiscalYear

	// ruleDirect attempts calendar-date parsing without reformatting.
	ruleDirect
)

// fiscalYearPattern extracts the trailing 4-digit year after the slash.
var fiscalYearPattern = regexp.MustCompile(`.*/(\d{4})$`)

// directLayouts are the layouts ruleDirect tries, in order.
var directLayouts = []string{"2006-01-02", "2006/01/02"}

// classifyRefDate picks the construction rule from the raw string value
// of REF_DATE in the first data row, keyed on character length.
func classifyRefDate(sample string) refDateRule {
	switch len(sample) {
	case 4:
		return ruleYear
	case 7:
		return ruleYearMonth
	case 9:
		if fiscalYearPattern.MatchString(sample) {
			return ruleFiscalYear
		}
		return ruleDirect
	default:
		return ruleDirect
	}
}

func (r refDateRule) String() string {
	switch r {
	case ruleYear:
		return "year"
	case ruleYearMonth:
		return "year-month"
	case ruleFiscalYear:
		return "fiscal-year"
	default:
		return "direct"
	}
}

// parse applies the rule to one raw REF_DATE value.
func (r refDateRule) parse(value string) (time.Time, error) {
	switch r {
	case ruleYear:
		t, err := time.Parse("2006", value)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: REF_DATE %q is not a year", domain.ErrData, value)
		}
		return t, nil

	case ruleYearMonth:
		t, err := time.Parse("2006-01", value)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: REF_DATE %q is not a year-month", domain.ErrData, value)
		}
		return t, nil

	case ruleFiscalYear:
		m := fiscalYearPattern.FindStringSubmatch(value)
		if m == nil {
			return time.Time{}, fmt.Errorf("%w: REF_DATE %q is not a fiscal-year pair", domain.ErrData, value)
		}
		end, err := time.Parse("2006", m[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: REF_DATE %q has invalid fiscal year", domain.ErrData, value)
		}
		return time.Date(end.Year(), time.March, 31, 0, 0, 0, 0, time.UTC), nil

	default:
		value = strings.TrimSpace(value)
		for _, layout := range directLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: REF_DATE %q is not a calendar date", domain.ErrData, value)
	}
}
