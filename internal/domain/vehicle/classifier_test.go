package vehicle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var classifyNow = time.Date(2025, time.March, 10, 9, 30, 0, 0, time.Local)

func TestClassify_SynonymsNormalizeToSameConfig(t *testing.T) {
	tests := []struct {
		name     string
		variants []string
	}{
		{"maintenance", []string{"maintenance", "Maintenance", " MAINTENANCE ", "bao_tri", " bao tri "}},
		{"in operation", []string{"in operation", "In_Operation", "dang hoat dong", "DANG_HOAT_DONG", "in use", "In_Use"}},
		{"booked", []string{"booked", "Booked", "da dat", "DA_DAT"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canonical := Classify(tt.variants[0], classifyNow)
			for _, v := range tt.variants[1:] {
				assert.Equal(t, canonical, Classify(v, classifyNow), "variant %q", v)
			}
		})
	}
}

func TestClassify_DefaultIsBookNow(t *testing.T) {
	for _, raw := range []string{"", "available", "Available", "something weird", "   "} {
		cfg := Classify(raw, classifyNow)
		assert.True(t, cfg.IsBookable, "status %q", raw)
		assert.Equal(t, ColorGreen, cfg.ColorToken)
		assert.Equal(t, ActionBookNow, cfg.BookingAction)
		assert.Equal(t, "Sẵn sàng", cfg.Label)
	}
}

func TestClassify_Maintenance(t *testing.T) {
	cfg := Classify("maintenance", classifyNow)
	assert.False(t, cfg.IsBookable)
	assert.Equal(t, ColorRed, cfg.ColorToken)
	assert.Equal(t, ActionNone, cfg.BookingAction)
	assert.Contains(t, cfg.Note, "chọn xe khác")
}

func TestClassify_InOperation_EmbedsReturnHour(t *testing.T) {
	cfg := Classify("in_use", classifyNow)
	assert.Equal(t, ColorBlue, cfg.ColorToken)
	assert.Equal(t, ActionBookLater, cfg.BookingAction)
	assert.True(t, cfg.IsBookable)
	// 09:30 + 4h -> 13:00
	assert.Contains(t, cfg.Note, "13:00 hôm nay")
}

func TestClassify_InOperation_NoMidnightRollover(t *testing.T) {
	// 22:00 + 4h lands on 02:00 the next day; the note still says "today".
	late := time.Date(2025, time.March, 10, 22, 0, 0, 0, time.Local)
	cfg := Classify("in operation", late)
	assert.Contains(t, cfg.Note, "2:00 hôm nay")
}

func TestClassify_Booked_EmbedsThreeDayRange(t *testing.T) {
	cfg := Classify("booked", classifyNow)
	assert.Equal(t, ColorYellow, cfg.ColorToken)
	assert.Equal(t, ActionBookAlternative, cfg.BookingAction)
	assert.Contains(t, cfg.Note, "10/3 - 13/3")
}

func TestClassify_Booked_RangeCrossesMonth(t *testing.T) {
	endOfMonth := time.Date(2025, time.March, 30, 12, 0, 0, 0, time.Local)
	cfg := Classify("da_dat", endOfMonth)
	assert.Contains(t, cfg.Note, "30/3 - 2/4")
}

func TestMatchesFilter(t *testing.T) {
	assert.True(t, MatchesFilter("maintenance", "all"))
	assert.True(t, MatchesFilter("available", "available"))
	assert.False(t, MatchesFilter("in_use", "available"))
	assert.True(t, MatchesFilter("booked", "booked"))
	assert.True(t, MatchesFilter("in_use", "booked"))
	assert.False(t, MatchesFilter("available", "booked"))
	assert.True(t, MatchesFilter("Available", "AVAILABLE"))
}
