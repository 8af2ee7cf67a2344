package testreceipts

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/okian/tally/internal/domain/points"
	"github.com/okian/tally/internal/domain/receipt"
	"github.com/okian/tally/pkg/logger"
)

// Generation ranges.
const (
	maxItemsPerReceipt = 6
	maxPriceCents      = 5000 // item prices up to $50.00
	maxDayOfMonth      = 28   // keep every generated date valid
	hoursPerDay        = 24
	minutesPerHour     = 60
)

var retailers = []string{
	"Target",
	"Walgreens",
	"M&M Corner Market",
	"Trader Joe's",
	"Costco Wholesale",
	"7-Eleven",
	"BestBuy #204",
}

var descriptions = []string{
	"Mountain Dew 12PK",
	"Emils Cheese Pizza",
	"Knorr Creamy Chicken",
	"Doritos Nacho Cheese",
	"Gatorade",
	"   Klarbrunn 12-PK 12 FL OZ  ",
	"Pepperidge Farm Bread",
	"Dawn Ultra Dish Soap",
}

// randInt returns a random int in [0, n) using crypto/rand.
func randInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateReceipts creates receipts with randomized fields and computes
// the point total each one should earn.
func generateReceipts(ctx context.Context, config *Config, stats *Stats) ([]TestReceipt, error) {
	logger.Get().Info(ctx, "generating receipts", logger.Int("numReceipts", config.NumReceipts))

	calc := points.NewRuleCalculator()
	out := make([]TestReceipt, config.NumReceipts)
	for i := range out {
		r := randomReceipt()
		expected, err := calc.Calculate(ctx, &r)
		if err != nil {
			return nil, fmt.Errorf("generated receipt %d does not score: %w", i, err)
		}
		out[i] = TestReceipt{Receipt: r, Expected: expected}
	}

	stats.ReceiptsGenerated = len(out)
	return out, nil
}

func randomReceipt() receipt.Receipt {
	items := make([]receipt.Item, 1+randInt(maxItemsPerReceipt))
	for i := range items {
		items[i] = receipt.Item{
			ShortDescription: descriptions[randInt(len(descriptions))],
			Price:            centsToAmount(1 + randInt(maxPriceCents)),
		}
	}

	return receipt.Receipt{
		Retailer:     retailers[randInt(len(retailers))],
		PurchaseDate: fmt.Sprintf("2022-%02d-%02d", 1+randInt(12), 1+randInt(maxDayOfMonth)),
		PurchaseTime: fmt.Sprintf("%02d:%02d", randInt(hoursPerDay), randInt(minutesPerHour)),
		Total:        centsToAmount(1 + randInt(maxPriceCents*maxItemsPerReceipt)),
		Items:        items,
	}
}

func centsToAmount(cents int) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
