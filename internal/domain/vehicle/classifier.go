package vehicle

import (
	"fmt"
	"time"
)

// BookingAction tags which reservation flow a booking link triggers.
type BookingAction string

const (
	ActionBookNow         BookingAction = "book_now"
	ActionBookLater       BookingAction = "book_later"
	ActionBookAlternative BookingAction = "book_alternative"
	ActionNone            BookingAction = "none"
)

// ColorToken is a symbolic color for map icons and popup accents.
type ColorToken string

const (
	ColorGreen      ColorToken = "green"
	ColorBlue       ColorToken = "blue"
	ColorRed        ColorToken = "red"
	ColorYellow     ColorToken = "yellow"
	ColorYellowDark ColorToken = "yellow-dark"
)

// StatusConfig is the display and booking configuration derived from a
// vehicle's status. It is a value object, built fresh per call and never
// mutated.
type StatusConfig struct {
	Label            string        `json:"label"`
	ColorToken       ColorToken    `json:"color"`
	IconKind         ColorToken    `json:"icon"`
	ButtonText       string        `json:"button_text"`
	ButtonColorToken ColorToken    `json:"button_color"`
	IsBookable       bool          `json:"is_bookable"`
	BookingAction    BookingAction `json:"booking_action"`
	Note             string        `json:"note"`
}

// Classify maps a raw status string to its display configuration.
//
// The input is normalized (trim, lowercase, underscores to spaces) and matched
// against known statuses and their Vietnamese synonyms in a fixed order:
// maintenance, in operation, booked. Anything else, including an empty or
// unrecognized status, falls through to the available configuration.
//
// The notes for "in operation" and "booked" embed times derived from now,
// which the caller injects. The return-time note uses the wall-clock hour
// four hours ahead with no rollover correction across midnight; the booked
// note spans three days in D/M format with no year.
func Classify(rawStatus string, now time.Time) StatusConfig {
	switch NormalizeStatus(rawStatus) {
	case "maintenance", "bao tri":
		return StatusConfig{
			Label:            "Bảo trì",
			ColorToken:       ColorRed,
			IconKind:         ColorRed,
			ButtonText:       "ĐANG BẢO TRÌ",
			ButtonColorToken: ColorRed,
			IsBookable:       false,
			BookingAction:    ActionNone,
			Note:             "⚠️ Xe đang bảo dưỡng. Vui lòng chọn xe khác.",
		}

	case "in operation", "dang hoat dong", "in use":
		returnAt := now.Add(4 * time.Hour)
		timeStr := fmt.Sprintf("%d:00 hôm nay", returnAt.Hour())
		return StatusConfig{
			Label:            "Đang hoạt động",
			ColorToken:       ColorBlue,
			IconKind:         ColorBlue,
			ButtonText:       "ĐẶT LỊCH",
			ButtonColorToken: ColorBlue,
			IsBookable:       true,
			BookingAction:    ActionBookLater,
			Note:             fmt.Sprintf("🔵 Khách trả xe lúc %s. Bạn có thể đặt sau giờ này.", timeStr),
		}

	case "booked", "da dat":
		end := now.AddDate(0, 0, 3)
		dateStr := fmt.Sprintf("%d/%d - %d/%d", now.Day(), int(now.Month()), end.Day(), int(end.Month()))
		return StatusConfig{
			Label:            "Đã có khách",
			ColorToken:       ColorYellow,
			IconKind:         ColorYellow,
			ButtonText:       "CHỌN NGÀY KHÁC",
			ButtonColorToken: ColorYellowDark,
			IsBookable:       true,
			BookingAction:    ActionBookAlternative,
			Note:             fmt.Sprintf("🟡 Kín lịch đến %s. Hãy chọn ngày khác.", dateStr),
		}
	}

	return StatusConfig{
		Label:            "Sẵn sàng",
		ColorToken:       ColorGreen,
		IconKind:         ColorGreen,
		ButtonText:       "THUÊ NGAY",
		ButtonColorToken: ColorGreen,
		IsBookable:       true,
		BookingAction:    ActionBookNow,
		Note:             "✅ Xe đang rảnh, có thể nhận ngay!",
	}
}
