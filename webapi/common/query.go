package common

import (
	"fmt"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/gofiber/fiber/v2"
)

const dateOnly = "2006-01-02"

// ParseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates (UTC
// midnight). The bool reports whether the input was a plain date.
func ParseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), false, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %q is not a date", domain.ErrInvalidDateRange, s)
	}
	return t, true, nil
}

// DateRangeQuery reads the startDate and endDate query parameters. A plain
// endDate covers that whole day.
func DateRangeQuery(c *fiber.Ctx) (dto.DateRange, error) {
	var dr dto.DateRange
	if s := c.Query("startDate"); s != "" {
		t, _, err := ParseDate(s)
		if err != nil {
			return dr, err
		}
		dr.Start = &t
	}
	if s := c.Query("endDate"); s != "" {
		t, plain, err := ParseDate(s)
		if err != nil {
			return dr, err
		}
		if plain {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		dr.End = &t
	}
	if dr.Start != nil && dr.End != nil && dr.Start.After(*dr.End) {
		return dr, fmt.Errorf("%w: startDate is after endDate", domain.ErrInvalidDateRange)
	}
	return dr, nil
}
