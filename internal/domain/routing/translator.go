package routing

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// DefaultFeePerKm is the vehicle delivery fee rate in VND per kilometer.
const DefaultFeePerKm int64 = 30000

// rule is one case-insensitive pattern-to-replacement substitution.
type rule struct {
	pattern *regexp.Regexp
	repl    string
}

func newRule(pattern, repl string) rule {
	return rule{pattern: regexp.MustCompile("(?i)" + pattern), repl: repl}
}

// translationRules is applied to each instruction in this exact order. The
// order is load-bearing: specific multi-word maneuver patterns run before the
// generic single-word ones, and the bare preposition rules run after all
// maneuver rules so they cannot corrupt phrase boundaries. Reordering changes
// output because later rules rewrite text produced by earlier ones.
var translationRules = []rule{
	newRule(`Enter (.*?) and take the (\d+)(?:st|nd|rd|th) exit`, "Vào $1 và đi theo lối ra thứ $2"),
	newRule(`Enter (.*?) and take the exit`, "Vào $1 và đi theo lối ra"),
	newRule(`Exit the (?:traffic circle|roundabout)`, "Ra khỏi vòng xoay"),
	newRule(`Into the (?:traffic circle|roundabout)`, "Vào vòng xoay"),
	newRule(`Make a U-turn`, "Quay đầu xe"),
	newRule(`Make a (?:sharp|slight) right`, "Cua sang phải"),
	newRule(`Make a (?:sharp|slight) left`, "Cua sang trái"),
	newRule(`Make a right`, "Rẽ phải"),
	newRule(`Make a left`, "Rẽ trái"),
	newRule(`Turn left`, "Rẽ trái"),
	newRule(`Turn right`, "Rẽ phải"),
	newRule(`Keep left`, "Đi sang làn trái"),
	newRule(`Keep right`, "Đi sang làn phải"),
	newRule(`Go straight`, "Đi thẳng"),
	newRule(`Take the ramp`, "Đi vào đường dẫn"),
	newRule(`slightly left`, "chếch sang trái"),
	newRule(`slightly right`, "chếch sang phải"),
	newRule(`sharp left`, "ngoặt gấp sang trái"),
	newRule(`sharp right`, "ngoặt gấp sang phải"),
	newRule(`towards`, "về hướng"),
	newRule(`stay on`, "tiếp tục đi trên"),
	newRule(` and `, " và "),
	newRule(` onto `, " vào đường "),
	newRule(` on `, " trên đường "),
	newRule(` to `, " đến "),
	newRule(` at `, " tại "),
	newRule(` your `, " của bạn "),
	newRule(`\bNorth\b`, "Bắc"),
	newRule(`\bSouth\b`, "Nam"),
	newRule(`\bEast\b`, "Đông"),
	newRule(`\bWest\b`, "Tây"),
	newRule(`\bNortheast\b`, "Đông Bắc"),
	newRule(`\bNorthwest\b`, "Tây Bắc"),
	newRule(`\bSoutheast\b`, "Đông Nam"),
	newRule(`\bSouthwest\b`, "Tây Nam"),
	newRule(`Enter `, "Đi vào "),
	newRule(`Head `, "Đi về hướng "),
	newRule(`Continue`, "Tiếp tục đi"),
	newRule(`Arrive at`, "Đến"),
	newRule(`You have arrived`, "Bạn đã đến nơi"),
	newRule(`destination`, "điểm đến"),
	newRule(`\bright\b`, "bên phải"),
	newRule(`\bleft\b`, "bên trái"),
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Translator converts routing-engine output into a localized itinerary and
// the route's cost summary.
type Translator struct {
	feePerKm int64
}

// NewTranslator creates a Translator with the given fee rate; a non-positive
// rate falls back to DefaultFeePerKm.
func NewTranslator(feePerKm int64) *Translator {
	if feePerKm <= 0 {
		feePerKm = DefaultFeePerKm
	}
	return &Translator{feePerKm: feePerKm}
}

// Translate maps the route totals to a RouteSummary and each step to its
// localized display form. The output is order-preserving and has exactly one
// entry per input step.
func (t *Translator) Translate(summary Summary, steps []RouteStep) (RouteSummary, []TranslatedStep) {
	out := make([]TranslatedStep, len(steps))
	for i, step := range steps {
		out[i] = TranslatedStep{
			Icon:          SelectGlyph(step.Instruction),
			Text:          TranslateInstruction(step.Instruction),
			DistanceLabel: DistanceLabel(step.DistanceMeters),
		}
	}
	return t.Summarize(summary), out
}

// Summarize derives the user-facing totals. The fee is computed from the
// already-rounded kilometer figure so it matches what is displayed.
func (t *Translator) Summarize(summary Summary) RouteSummary {
	distanceKm := math.Round(summary.TotalDistanceMeters/1000*100) / 100
	return RouteSummary{
		DistanceKm:      distanceKm,
		DurationMinutes: int(math.Round(summary.TotalTimeSeconds / 60)),
		DeliveryFee:     int64(math.Round(distanceKm * float64(t.feePerKm))),
	}
}

// TranslateInstruction rewrites one English instruction into Vietnamese by
// applying the ordered rule table, then collapsing repeated whitespace.
func TranslateInstruction(text string) string {
	for _, r := range translationRules {
		text = r.pattern.ReplaceAllString(text, r.repl)
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// SelectGlyph picks the step icon from the original (untranslated) text.
// The checks are independent and run in a fixed order, so the last matching
// keyword wins; arrival is checked last and overrides any directional word.
func SelectGlyph(text string) Glyph {
	lower := strings.ToLower(text)
	icon := GlyphUp
	if strings.Contains(lower, "left") {
		icon = GlyphLeft
	}
	if strings.Contains(lower, "right") {
		icon = GlyphRight
	}
	if strings.Contains(lower, "u-turn") {
		icon = GlyphUTurn
	}
	if strings.Contains(lower, "roundabout") || strings.Contains(lower, "circle") {
		icon = GlyphRoundabout
	}
	if strings.Contains(lower, "arrive") || strings.Contains(lower, "destination") {
		icon = GlyphArrive
	}
	return icon
}

// DistanceLabel formats a step distance, or returns "" for zero-length steps.
func DistanceLabel(distanceMeters float64) string {
	if distanceMeters <= 0 {
		return ""
	}
	return fmt.Sprintf("%d mét", int(math.Round(distanceMeters)))
}
