package testreceipts

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/okian/tally/internal/domain/receipt"
	"github.com/okian/tally/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerateReceipts(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatalf("logger init: %v", err)
	}

	Convey("Given a generation config", t, func() {
		config := &Config{NumReceipts: 50}
		stats := &Stats{}
		val := receipt.NewValidator()

		Convey("When generating receipts", func() {
			receipts, err := generateReceipts(context.Background(), config, stats)

			Convey("Then the requested count is produced", func() {
				So(err, ShouldBeNil)
				So(len(receipts), ShouldEqual, config.NumReceipts)
				So(stats.ReceiptsGenerated, ShouldEqual, config.NumReceipts)
			})

			Convey("And every receipt passes structural validation", func() {
				So(err, ShouldBeNil)
				for i := range receipts {
					So(val.Validate(&receipts[i].Receipt), ShouldBeNil)
				}
			})

			Convey("And every expected total is non-negative", func() {
				So(err, ShouldBeNil)
				for _, tr := range receipts {
					So(tr.Expected, ShouldBeGreaterThanOrEqualTo, 0)
				}
			})

			Convey("And generated fields stay in range", func() {
				So(err, ShouldBeNil)
				for _, tr := range receipts {
					So(len(tr.Receipt.Items), ShouldBeBetweenOrEqual, 1, maxItemsPerReceipt)

					parts := strings.Split(tr.Receipt.PurchaseDate, "-")
					So(len(parts), ShouldEqual, 3)
					day, convErr := strconv.Atoi(parts[2])
					So(convErr, ShouldBeNil)
					So(day, ShouldBeBetweenOrEqual, 1, maxDayOfMonth)
				}
			})
		})
	})
}

func TestCentsToAmount(t *testing.T) {
	Convey("Given cent values", t, func() {
		cases := []struct {
			cents int
			want  string
		}{
			{1, "0.01"},
			{100, "1.00"},
			{935, "9.35"},
			{5000, "50.00"},
		}

		Convey("When formatting them as amounts", func() {
			for _, tc := range cases {
				So(centsToAmount(tc.cents), ShouldEqual, tc.want)
			}
		})
	})
}
