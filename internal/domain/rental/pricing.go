package rental

import (
	"math"
	"time"

	"github.com/lqphu369/vehicle-rental-service/internal/apperr"
)

// Surcharge and tax rates applied by the standard pricing policy.
const (
	weekendSurgeRate = 0.2
	taxRate          = 0.1
)

// Quote breaks a rental price down for display on the payment page.
type Quote struct {
	Days         int   `json:"days"`
	WeekdayCount int   `json:"weekday_count"`
	WeekendCount int   `json:"weekend_count"`
	WeekdayTotal int64 `json:"weekday_total"`
	WeekendTotal int64 `json:"weekend_total"`
	TaxFee       int64 `json:"tax_fee"`
	Total        int64 `json:"total"`
}

// PricingStrategy defines the interface for calculating rental prices.
type PricingStrategy interface {
	// Quote returns the price breakdown for renting at the given daily rate
	// over [pickup, returnDate).
	Quote(pricePerDay int64, pickup, returnDate time.Time) (Quote, error)
}

// StandardPricingStrategy implements the default rental pricing policy:
// weekend days cost 20% more, and a 10% tax is added on top.
type StandardPricingStrategy struct{}

// NewStandardPricingStrategy creates a new StandardPricingStrategy.
func NewStandardPricingStrategy() *StandardPricingStrategy {
	return &StandardPricingStrategy{}
}

// Quote walks the rental period day by day so each weekend day is surcharged
// individually. A period shorter than one day is billed as one day.
func (s *StandardPricingStrategy) Quote(pricePerDay int64, pickup, returnDate time.Time) (Quote, error) {
	if pricePerDay <= 0 {
		return Quote{}, apperr.NewValidationError("price per day must be positive")
	}
	if returnDate.Before(pickup) {
		return Quote{}, apperr.NewValidationError("return date must not be before pickup date")
	}

	days := int(returnDate.Sub(pickup).Hours() / 24)
	if days < 1 {
		days = 1
	}

	var weekdayCount, weekendCount int
	current := pickup
	for i := 0; i < days; i++ {
		if isWeekend(current) {
			weekendCount++
		} else {
			weekdayCount++
		}
		current = current.AddDate(0, 0, 1)
	}

	dailyRate := float64(pricePerDay)
	weekdayTotal := float64(weekdayCount) * dailyRate
	weekendTotal := float64(weekendCount) * dailyRate * (1 + weekendSurgeRate)
	baseTotal := weekdayTotal + weekendTotal
	taxFee := baseTotal * taxRate

	return Quote{
		Days:         days,
		WeekdayCount: weekdayCount,
		WeekendCount: weekendCount,
		WeekdayTotal: int64(math.Round(weekdayTotal)),
		WeekendTotal: int64(math.Round(weekendTotal)),
		TaxFee:       int64(math.Round(taxFee)),
		Total:        int64(math.Round(baseTotal + taxFee)),
	}, nil
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}
