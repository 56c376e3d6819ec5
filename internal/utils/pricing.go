package utils

import (
	"fmt"
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd formatted string into a time.Time
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", dateStr)
	}
	return t, nil
}

// FormatDate renders a time.Time as yyyy-mm-dd
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Today returns the current date as yyyy-mm-dd
func Today() string {
	return time.Now().Format(dateLayout)
}

// RentalDays computes the rental duration with both the start and the end
// dates included, so a Monday-to-Wednesday rental is 3 days.
func RentalDays(startDate, endDate string) (int32, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 0, fmt.Errorf("invalid end date: %w", err)
	}
	if end.Before(start) {
		return 0, fmt.Errorf("end date must be on or after start date")
	}
	days := int32(end.Sub(start).Hours()/24) + 1
	return days, nil
}

// RentalCost calculates the total rental cost over an inclusive date range
func RentalCost(startDate, endDate string, dailyRate float64) (float64, error) {
	days, err := RentalDays(startDate, endDate)
	if err != nil {
		return 0, err
	}
	return float64(days) * dailyRate, nil
}

// Round2 rounds a dollar amount to 2 decimal places
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// ToCents converts a dollar amount to integer minor-currency units, as
// required by the payment processor API.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
