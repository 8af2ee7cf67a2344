// Package points computes reward points for validated receipts.
//
// The total is the sum of seven independent rules. Rule arithmetic
// deliberately mirrors the historical behavior this service replaced:
// the quarter-multiple check is a floating-point modulo, and a
// description that trims to length zero still satisfies the
// multiple-of-three check.
package points

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/okian/tally/internal/domain/receipt"
)

// Fixed rule bonuses.
const (
	roundDollarBonus = 50 // total has no cents
	quarterBonus     = 25 // total is a multiple of 0.25
	itemPairBonus    = 5  // per two items
	oddDayBonus      = 6  // purchase day-of-month is odd
	afternoonBonus   = 10 // purchased strictly between 14:00 and 16:00
)

const (
	quarterStep = 0.25
	clockLayout = "15:04"
)

// Calculator computes a point total from a validated receipt.
type Calculator interface {
	// Calculate returns the receipt's point total, honoring ctx for
	// cancellation. It fails with *ParseError on malformed field text.
	Calculate(ctx context.Context, r *receipt.Receipt) (int64, error)
}

// Option applies a configuration option to the RuleCalculator.
type Option func(*RuleCalculator)

// WithAfternoonWindow overrides the bonus window. Both bounds are
// "HH:MM" clock values and stay exclusive. Invalid bounds are ignored.
func WithAfternoonWindow(open, close string) Option {
	return func(c *RuleCalculator) {
		o, err1 := time.Parse(clockLayout, open)
		cl, err2 := time.Parse(clockLayout, close)
		if err1 == nil && err2 == nil && o.Before(cl) {
			c.afternoonOpen = o
			c.afternoonClose = cl
		}
	}
}

// WithDescriptionRate overrides the price multiplier applied to items
// whose trimmed description length is a multiple of three.
func WithDescriptionRate(rate float64) Option {
	return func(c *RuleCalculator) {
		if rate > 0 {
			c.descriptionRate = rate
		}
	}
}

// RuleCalculator implements Calculator with the seven fixed rules.
type RuleCalculator struct {
	descriptionRate float64
	afternoonOpen   time.Time
	afternoonClose  time.Time
}

// NewRuleCalculator creates a calculator with the standard rule set.
func NewRuleCalculator(opts ...Option) *RuleCalculator {
	c := &RuleCalculator{
		descriptionRate: 0.2,
		afternoonOpen:   mustClock("14:00"),
		afternoonClose:  mustClock("16:00"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate sums all seven rule contributions. Each term is
// non-negative, so the total never is either. No partial total is
// returned on failure.
func (c *RuleCalculator) Calculate(ctx context.Context, r *receipt.Receipt) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	total, err := parseAmount("total", r.Total)
	if err != nil {
		return 0, err
	}

	var pts int64

	// 1. One point per alphanumeric character in the retailer name.
	pts += alphanumericCount(r.Retailer)

	// 2. Round dollar amount with no cents.
	if total == math.Floor(total) {
		pts += roundDollarBonus
	}

	// 3. Multiple of 0.25, checked as a floating modulo.
	if math.Mod(total, quarterStep) == 0 {
		pts += quarterBonus
	}

	// 4. Five points for every two items.
	pts += int64(len(r.Items)/2) * itemPairBonus

	// 5. Per-item ceiling of price times the description rate, for
	// items whose trimmed description length is a multiple of three.
	// The price is only parsed for qualifying items.
	for _, it := range r.Items {
		desc := strings.TrimSpace(it.ShortDescription)
		if len([]rune(desc))%3 != 0 {
			continue
		}
		price, err := parseAmount("items.price", it.Price)
		if err != nil {
			return 0, err
		}
		pts += int64(math.Ceil(price * c.descriptionRate))
	}

	// 6. Odd purchase day-of-month.
	odd, err := oddPurchaseDay(r.PurchaseDate)
	if err != nil {
		return 0, err
	}
	if odd {
		pts += oddDayBonus
	}

	// 7. Purchase time strictly inside the afternoon window.
	inWindow, err := c.inAfternoonWindow(r.PurchaseTime)
	if err != nil {
		return 0, err
	}
	if inWindow {
		pts += afternoonBonus
	}

	return pts, nil
}

// alphanumericCount counts ASCII letters and digits; everything else,
// spaces and punctuation included, is skipped.
func alphanumericCount(s string) int64 {
	var n int64
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			n++
		}
	}
	return n
}

// oddPurchaseDay reads the day from the third "-"-separated field of a
// "YYYY-MM-DD" date and reports whether it is odd.
func oddPurchaseDay(date string) (bool, error) {
	parts := strings.Split(date, "-")
	if len(parts) < 3 {
		return false, &ParseError{Field: "purchaseDate", Value: date}
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return false, &ParseError{Field: "purchaseDate", Value: date}
	}
	return day%2 != 0, nil
}

// inAfternoonWindow parses a 24-hour "HH:MM" value and reports whether
// it falls strictly after the open bound and strictly before the close
// bound. Exactly on either bound does not qualify.
func (c *RuleCalculator) inAfternoonWindow(clock string) (bool, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return false, &ParseError{Field: "purchaseTime", Value: clock}
	}
	return t.After(c.afternoonOpen) && t.Before(c.afternoonClose), nil
}

func parseAmount(field, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &ParseError{Field: field, Value: value}
	}
	return f, nil
}

func mustClock(v string) time.Time {
	t, err := time.Parse(clockLayout, v)
	if err != nil {
		panic(err)
	}
	return t
}
