package points_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/tally/internal/domain/points"
	"github.com/okian/tally/internal/domain/receipt"
	. "github.com/smartystreets/goconvey/convey"
)

// targetReceipt is the canonical five-item Target receipt worth 28 points:
// 6 for the retailer name, 10 for five items, 3 each for the two
// descriptions whose trimmed length is a multiple of three, 6 for the
// odd purchase day.
func targetReceipt() *receipt.Receipt {
	return &receipt.Receipt{
		Retailer:     "Target",
		PurchaseDate: "2022-01-01",
		PurchaseTime: "13:01",
		Total:        "35.35",
		Items: []receipt.Item{
			{ShortDescription: "Mountain Dew 12PK", Price: "6.49"},
			{ShortDescription: "Emils Cheese Pizza", Price: "12.25"},
			{ShortDescription: "Knorr Creamy Chicken", Price: "1.26"},
			{ShortDescription: "Doritos Nacho Cheese", Price: "3.35"},
			{ShortDescription: "   Klarbrunn 12-PK 12 FL OZ  ", Price: "12.00"},
		},
	}
}

func TestRuleCalculator_Calculate(t *testing.T) {
	Convey("Given a rule calculator", t, func() {
		calc := points.NewRuleCalculator()
		ctx := context.Background()

		Convey("When scoring the canonical Target receipt", func() {
			pts, err := calc.Calculate(ctx, targetReceipt())

			Convey("Then it should award 28 points", func() {
				So(err, ShouldBeNil)
				So(pts, ShouldEqual, 28)
			})

			Convey("And repeated calls should be deterministic", func() {
				again, err := calc.Calculate(ctx, targetReceipt())
				So(err, ShouldBeNil)
				So(again, ShouldEqual, pts)
			})
		})

		Convey("When scoring a round-dollar quarter-multiple receipt", func() {
			// M&M Corner Market: 14 retailer chars, 50 round dollar,
			// 25 quarter multiple, 10 for four items, 10 afternoon.
			r := &receipt.Receipt{
				Retailer:     "M&M Corner Market",
				PurchaseDate: "2022-03-20",
				PurchaseTime: "14:33",
				Total:        "9.00",
				Items: []receipt.Item{
					{ShortDescription: "Gatorade", Price: "2.25"},
					{ShortDescription: "Gatorade", Price: "2.25"},
					{ShortDescription: "Gatorade", Price: "2.25"},
					{ShortDescription: "Gatorade", Price: "2.25"},
				},
			}
			pts, err := calc.Calculate(ctx, r)

			Convey("Then it should award 109 points", func() {
				So(err, ShouldBeNil)
				So(pts, ShouldEqual, 109)
			})
		})

		Convey("When only the retailer name differs", func() {
			base := targetReceipt()
			base.PurchaseDate = "2022-01-02"
			base.Items = base.Items[:1]

			Convey("Then spaces and punctuation earn nothing", func() {
				base.Retailer = "T&r get   !!"
				pts, err := calc.Calculate(ctx, base)
				So(err, ShouldBeNil)
				So(pts, ShouldEqual, 5) // T, r, g, e, t
			})

			Convey("And digits count as alphanumeric", func() {
				base.Retailer = "7-Eleven"
				pts, err := calc.Calculate(ctx, base)
				So(err, ShouldBeNil)
				So(pts, ShouldEqual, 7)
			})
		})
	})
}

func TestRuleCalculator_TotalBonuses(t *testing.T) {
	Convey("Given a receipt that isolates the total rules", t, func() {
		calc := points.NewRuleCalculator()
		ctx := context.Background()
		r := &receipt.Receipt{
			Retailer:     "&&&", // no alphanumeric points
			PurchaseDate: "2022-01-02",
			PurchaseTime: "13:01",
			Items:        []receipt.Item{{ShortDescription: "ab", Price: "1.00"}},
		}

		// The quarter check is deliberately a floating modulo, matching
		// the behavior this service replaced, rather than a cents check.
		cases := []struct {
			total string
			want  int64
		}{
			{"35.35", 0},       // neither bonus
			{"9.00", 75},       // round dollar + quarter multiple
			{"9.25", 25},       // quarter multiple only
			{"0.75", 25},       // quarter multiple only
			{"100.50", 25},     // quarter multiple only
			{"10.10", 0},       // neither
			{"5", 75},          // integer text is still round
		}

		for _, tc := range cases {
			Convey("When the total is "+tc.total, func() {
				r.Total = tc.total
				pts, err := calc.Calculate(ctx, r)

				Convey("Then only the expected bonuses apply", func() {
					So(err, ShouldBeNil)
					So(pts, ShouldEqual, tc.want)
				})
			})
		}
	})
}

func TestRuleCalculator_ItemRules(t *testing.T) {
	Convey("Given receipts that isolate the item rules", t, func() {
		calc := points.NewRuleCalculator()
		ctx := context.Background()
		base := receipt.Receipt{
			Retailer:     "&",
			PurchaseDate: "2022-01-02",
			PurchaseTime: "13:01",
			Total:        "35.35",
		}

		Convey("When counting item pairs", func() {
			item := receipt.Item{ShortDescription: "ab", Price: "1.00"}

			Convey("Then one item earns nothing", func() {
				r := base
				r.Items = []receipt.Item{item}
				pts, err := calc.Calculate(ctx, &r)
				So(err, ShouldBeNil)
				So(pts, ShouldEqual, 0)
			})

			Convey("And two items earn five", func() {
				r := base
				r.Items = []receipt.Item{item, item}
				pts, err := calc.Calculate(ctx, &r)
				So(err, ShouldBeNil)
				So(pts, ShouldEqual, 5)
			})

			Convey("And five items earn ten", func() {
				r := base
				r.Items = []receipt.Item{item, item, item, item, item}
				pts, err := calc.Calculate(ctx, &r)
				So(err, ShouldBeNil)
				So(pts, ShouldEqual, 10)
			})
		})

		Convey("When checking trimmed description lengths", func() {
			cases := []struct {
				name string
				desc string
				want int64
			}{
				{"length three qualifies", "abc", 1},          // ceil(2.01*0.2) = 1
				{"length six qualifies", "abcdef", 1},         // ceil(2.01*0.2) = 1
				{"surrounding whitespace is trimmed", "  abc  ", 1},
				{"length one does not qualify", "a", 0},
				{"length sixteen does not qualify", "abcdefghabcdefgh", 0},
				// Whitespace-only trims to length zero, and zero is a
				// multiple of three: literal historical behavior.
				{"whitespace-only qualifies", "   ", 1},
			}

			for _, tc := range cases {
				Convey("Then "+tc.name, func() {
					r := base
					r.Items = []receipt.Item{{ShortDescription: tc.desc, Price: "2.01"}}
					pts, err := calc.Calculate(ctx, &r)
					So(err, ShouldBeNil)
					So(pts, ShouldEqual, tc.want)
				})
			}
		})

		Convey("When the description price multiplier rounds", func() {
			Convey("Then the ceiling applies per item before summation", func() {
				r := base
				r.Items = []receipt.Item{
					{ShortDescription: "abc", Price: "10.00"}, // ceil(2.0) = 2
					{ShortDescription: "abc", Price: "10.01"}, // ceil(2.002) = 3
				}
				pts, err := calc.Calculate(ctx, &r)
				So(err, ShouldBeNil)
				So(pts, ShouldEqual, 10) // 5 for the pair + 2 + 3
			})
		})
	})
}

func TestRuleCalculator_DateAndTime(t *testing.T) {
	Convey("Given receipts that isolate the date and time rules", t, func() {
		calc := points.NewRuleCalculator()
		ctx := context.Background()
		base := receipt.Receipt{
			Retailer: "&",
			Total:    "35.35",
			Items:    []receipt.Item{{ShortDescription: "ab", Price: "1.00"}},
		}

		Convey("When checking the purchase day", func() {
			Convey("Then an odd day earns six", func() {
				r := base
				r.PurchaseDate = "2022-01-01"
				r.PurchaseTime = "13:01"
				pts, err := calc.Calculate(ctx, &r)
				So(err, ShouldBeNil)
				So(pts, ShouldEqual, 6)
			})

			Convey("And an even day earns nothing", func() {
				r := base
				r.PurchaseDate = "2022-01-02"
				r.PurchaseTime = "13:01"
				pts, err := calc.Calculate(ctx, &r)
				So(err, ShouldBeNil)
				So(pts, ShouldEqual, 0)
			})
		})

		Convey("When checking the afternoon window", func() {
			cases := []struct {
				clock string
				want  int64
			}{
				{"13:59", 0},
				{"14:00", 0}, // exactly on the open bound does not qualify
				{"14:01", 10},
				{"15:00", 10},
				{"15:59", 10},
				{"16:00", 0}, // exactly on the close bound does not qualify
				{"16:01", 0},
			}

			for _, tc := range cases {
				Convey("Then "+tc.clock+" behaves as expected", func() {
					r := base
					r.PurchaseDate = "2022-01-02"
					r.PurchaseTime = tc.clock
					pts, err := calc.Calculate(ctx, &r)
					So(err, ShouldBeNil)
					So(pts, ShouldEqual, tc.want)
				})
			}
		})
	})
}

func TestRuleCalculator_ParseFailures(t *testing.T) {
	Convey("Given a rule calculator", t, func() {
		calc := points.NewRuleCalculator()
		ctx := context.Background()

		Convey("When the total is not a decimal number", func() {
			r := targetReceipt()
			r.Total = "six dollars"
			_, err := calc.Calculate(ctx, r)

			Convey("Then it should fail naming the total field", func() {
				var pe *points.ParseError
				So(errors.As(err, &pe), ShouldBeTrue)
				So(pe.Field, ShouldEqual, "total")
			})

			Convey("And the error should read as an invalid receipt", func() {
				So(errors.Is(err, receipt.ErrInvalid), ShouldBeTrue)
			})
		})

		Convey("When the purchase date has no day field", func() {
			r := targetReceipt()
			r.PurchaseDate = "January 1"
			_, err := calc.Calculate(ctx, r)

			var pe *points.ParseError
			So(errors.As(err, &pe), ShouldBeTrue)
			So(pe.Field, ShouldEqual, "purchaseDate")
		})

		Convey("When the purchase day is not an integer", func() {
			r := targetReceipt()
			r.PurchaseDate = "2022-01-xx"
			_, err := calc.Calculate(ctx, r)

			var pe *points.ParseError
			So(errors.As(err, &pe), ShouldBeTrue)
			So(pe.Field, ShouldEqual, "purchaseDate")
		})

		Convey("When the purchase time is not a 24-hour clock value", func() {
			r := targetReceipt()
			r.PurchaseTime = "2pm"
			_, err := calc.Calculate(ctx, r)

			var pe *points.ParseError
			So(errors.As(err, &pe), ShouldBeTrue)
			So(pe.Field, ShouldEqual, "purchaseTime")
		})

		Convey("When a qualifying item's price is malformed", func() {
			r := targetReceipt()
			r.Items[1].Price = "cheap" // Emils Cheese Pizza qualifies
			_, err := calc.Calculate(ctx, r)

			var pe *points.ParseError
			So(errors.As(err, &pe), ShouldBeTrue)
			So(pe.Field, ShouldEqual, "items.price")
		})

		Convey("When a non-qualifying item's price is malformed", func() {
			r := targetReceipt()
			r.Items[0].Price = "cheap" // Mountain Dew 12PK does not qualify

			Convey("Then the price is never parsed and scoring succeeds", func() {
				pts, err := calc.Calculate(ctx, r)
				So(err, ShouldBeNil)
				So(pts, ShouldEqual, 28)
			})
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := calc.Calculate(cancelled, targetReceipt())

			So(err, ShouldNotBeNil)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestRuleCalculator_Options(t *testing.T) {
	Convey("Given a calculator with a custom afternoon window", t, func() {
		calc := points.NewRuleCalculator(points.WithAfternoonWindow("09:00", "10:00"))
		ctx := context.Background()
		r := &receipt.Receipt{
			Retailer:     "&",
			PurchaseDate: "2022-01-02",
			PurchaseTime: "09:30",
			Total:        "35.35",
			Items:        []receipt.Item{{ShortDescription: "ab", Price: "1.00"}},
		}

		Convey("When the purchase falls inside the custom window", func() {
			pts, err := calc.Calculate(ctx, r)

			Convey("Then the afternoon bonus applies", func() {
				So(err, ShouldBeNil)
				So(pts, ShouldEqual, 10)
			})
		})

		Convey("When the window bounds are invalid they are ignored", func() {
			fallback := points.NewRuleCalculator(points.WithAfternoonWindow("25:00", "26:00"))
			r.PurchaseTime = "15:00"
			pts, err := fallback.Calculate(ctx, r)
			So(err, ShouldBeNil)
			So(pts, ShouldEqual, 10) // default 14:00-16:00 window still holds
		})
	})

	Convey("Given a calculator with a custom description rate", t, func() {
		calc := points.NewRuleCalculator(points.WithDescriptionRate(1.0))
		ctx := context.Background()
		r := &receipt.Receipt{
			Retailer:     "&",
			PurchaseDate: "2022-01-02",
			PurchaseTime: "13:01",
			Total:        "35.35",
			Items:        []receipt.Item{{ShortDescription: "abc", Price: "2.50"}},
		}

		Convey("When scoring a qualifying item", func() {
			pts, err := calc.Calculate(ctx, r)

			Convey("Then the full price rounds up into points", func() {
				So(err, ShouldBeNil)
				So(pts, ShouldEqual, 3) // ceil(2.50 * 1.0)
			})
		})
	})
}
