package rental

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestQuote_WeekdaysOnly(t *testing.T) {
	s := NewStandardPricingStrategy()

	// Mon 2025-03-10 to Thu 2025-03-13: three weekdays.
	q, err := s.Quote(500000, date(2025, time.March, 10), date(2025, time.March, 13))
	require.NoError(t, err)

	assert.Equal(t, 3, q.Days)
	assert.Equal(t, 3, q.WeekdayCount)
	assert.Equal(t, 0, q.WeekendCount)
	assert.Equal(t, int64(1500000), q.WeekdayTotal)
	assert.Equal(t, int64(150000), q.TaxFee)
	assert.Equal(t, int64(1650000), q.Total)
}

func TestQuote_WeekendSurge(t *testing.T) {
	s := NewStandardPricingStrategy()

	// Fri 2025-03-14 to Mon 2025-03-17: Fri weekday, Sat+Sun weekend.
	q, err := s.Quote(500000, date(2025, time.March, 14), date(2025, time.March, 17))
	require.NoError(t, err)

	assert.Equal(t, 3, q.Days)
	assert.Equal(t, 1, q.WeekdayCount)
	assert.Equal(t, 2, q.WeekendCount)
	assert.Equal(t, int64(500000), q.WeekdayTotal)
	assert.Equal(t, int64(1200000), q.WeekendTotal) // 2 × 500000 × 1.2
	assert.Equal(t, int64(170000), q.TaxFee)        // 10% of 1700000
	assert.Equal(t, int64(1870000), q.Total)
}

func TestQuote_MinimumOneDay(t *testing.T) {
	s := NewStandardPricingStrategy()

	day := date(2025, time.March, 12)
	q, err := s.Quote(400000, day, day)
	require.NoError(t, err)

	assert.Equal(t, 1, q.Days)
	assert.Equal(t, int64(440000), q.Total) // one weekday + 10% tax
}

func TestQuote_RejectsInvalidInput(t *testing.T) {
	s := NewStandardPricingStrategy()

	_, err := s.Quote(0, date(2025, time.March, 10), date(2025, time.March, 11))
	assert.Error(t, err)

	_, err = s.Quote(400000, date(2025, time.March, 11), date(2025, time.March, 10))
	assert.Error(t, err)
}
