package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrydata/statcan-cli/internal/core/domain"
)

func TestClassifyRefDate(t *testing.T) {
	assert.Equal(t, ruleYear, classifyRefDate("2021"))
	assert.Equal(t, ruleYearMonth, classifyRefDate("2021-01"))
	assert.Equal(t, ruleFiscalYear, classifyRefDate("2019/2020"))
	assert.Equal(t, ruleDirect, classifyRefDate("2021-01-15"))
	assert.Equal(t, ruleDirect, classifyRefDate(""))
}

func TestClassifyRefDate_NineCharsWithoutSlashPair(t *testing.T) {
	// Nine characters that don't end in /YYYY fall back to direct parsing.
	assert.Equal(t, ruleDirect, classifyRefDate("2019-2020"))
}

func TestRefDateRule_ParseYear(t *testing.T) {
	d, err := ruleYear.parse("2021")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ruleYear.parse("abcd")
	assert.ErrorIs(t, err, domain.ErrData)
}

func TestRefDateRule_ParseYearMonth(t *testing.T) {
	d, err := ruleYearMonth.parse("2021-07")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, time.July, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ruleYearMonth.parse("2021/07")
	assert.ErrorIs(t, err, domain.ErrData)
}

func TestRefDateRule_ParseFiscalYear(t *testing.T) {
	// A fiscal pair maps to March 31 of the trailing year.
	d, err := ruleFiscalYear.parse("2019/2020")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, time.March, 31, 0, 0, 0, 0, time.UTC), d)

	_, err = ruleFiscalYear.parse("2019-2020")
	assert.ErrorIs(t, err, domain.ErrData)
}

func TestRefDateRule_ParseDirect(t *testing.T) {
	d, err := ruleDirect.parse("2021-06-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, time.June, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = ruleDirect.parse("2021/06/15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, time.June, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ruleDirect.parse("not a date")
	assert.ErrorIs(t, err, domain.ErrData)
}
