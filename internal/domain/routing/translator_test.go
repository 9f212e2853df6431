package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate_OrderPreserving(t *testing.T) {
	tr := NewTranslator(0)
	steps := []RouteStep{
		{Instruction: "Head north on Nguyen Trai", DistanceMeters: 500},
		{Instruction: "Turn left", DistanceMeters: 150},
		{Instruction: "Turn right onto Le Loi", DistanceMeters: 300},
		{Instruction: "Arrive at your destination", DistanceMeters: 0},
	}

	_, out := tr.Translate(Summary{TotalDistanceMeters: 950, TotalTimeSeconds: 240}, steps)

	assert.Len(t, out, len(steps))
	assert.Equal(t, GlyphUp, out[0].Icon)
	assert.Equal(t, GlyphLeft, out[1].Icon)
	assert.Equal(t, GlyphRight, out[2].Icon)
	assert.Equal(t, GlyphArrive, out[3].Icon)
}

func TestTranslateInstruction_TurnLeft(t *testing.T) {
	assert.Equal(t, "Rẽ trái", TranslateInstruction("Turn left"))
	assert.Equal(t, GlyphLeft, SelectGlyph("Turn left"))
}

func TestTranslateInstruction_RoundaboutExitOrdinal(t *testing.T) {
	got := TranslateInstruction("Enter Nga Sau Cong Hoa and take the 2nd exit")
	assert.Equal(t, "Vào Nga Sau Cong Hoa và đi theo lối ra thứ 2", got)
}

func TestTranslateInstruction_ManeuverBeforeDirectional(t *testing.T) {
	// "Make a sharp right" must hit the maneuver rule, not decay into a
	// generic "right" substitution.
	assert.Equal(t, "Cua sang phải", TranslateInstruction("Make a sharp right"))
	assert.Equal(t, "Quay đầu xe", TranslateInstruction("Make a U-turn"))
}

func TestTranslateInstruction_PrepositionsAndCompass(t *testing.T) {
	got := TranslateInstruction("Head Northeast on Tran Hung Dao towards District 1")
	assert.Equal(t, "Đi về hướng Đông Bắc trên đường Tran Hung Dao về hướng District 1", got)
}

func TestTranslateInstruction_Arrival(t *testing.T) {
	got := TranslateInstruction("You have arrived at your destination")
	assert.Contains(t, got, "Bạn đã đến nơi")
	assert.Contains(t, got, "điểm đến")
}

func TestTranslateInstruction_CollapsesWhitespace(t *testing.T) {
	got := TranslateInstruction("  Continue   straight  ")
	assert.Equal(t, "Tiếp tục đi straight", got)
}

func TestSelectGlyph_ArriveOverridesDirection(t *testing.T) {
	// "right" appears in the text but arrival is checked last and wins.
	assert.Equal(t, GlyphArrive, SelectGlyph("Arrive at your destination, on the right"))
}

func TestSelectGlyph_LastMatchWins(t *testing.T) {
	// Both directions present: the right check runs after the left check.
	assert.Equal(t, GlyphRight, SelectGlyph("Turn left then turn right"))
	assert.Equal(t, GlyphRoundabout, SelectGlyph("At the roundabout, turn right"))
	assert.Equal(t, GlyphUTurn, SelectGlyph("Make a U-turn at the light"))
	assert.Equal(t, GlyphUp, SelectGlyph("Continue straight"))
}

func TestDistanceLabel(t *testing.T) {
	assert.Equal(t, "", DistanceLabel(0))
	assert.Equal(t, "", DistanceLabel(-3))
	assert.Equal(t, "150 mét", DistanceLabel(150))
	assert.Equal(t, "150 mét", DistanceLabel(149.6))
}

func TestSummarize_FeeFromRoundedKilometers(t *testing.T) {
	tr := NewTranslator(0)
	sum := tr.Summarize(Summary{TotalDistanceMeters: 5000, TotalTimeSeconds: 600})
	assert.Equal(t, 5.00, sum.DistanceKm)
	assert.Equal(t, 10, sum.DurationMinutes)
	assert.Equal(t, int64(150000), sum.DeliveryFee)
}

func TestSummarize_RoundsDistanceAndDuration(t *testing.T) {
	tr := NewTranslator(0)
	sum := tr.Summarize(Summary{TotalDistanceMeters: 12345, TotalTimeSeconds: 1234})
	assert.Equal(t, 12.35, sum.DistanceKm)
	assert.Equal(t, 21, sum.DurationMinutes)
	assert.Equal(t, int64(370500), sum.DeliveryFee)
}

func TestSummarize_CustomFeeRate(t *testing.T) {
	tr := NewTranslator(10000)
	sum := tr.Summarize(Summary{TotalDistanceMeters: 2500, TotalTimeSeconds: 300})
	assert.Equal(t, int64(25000), sum.DeliveryFee)
}
