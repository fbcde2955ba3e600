package booking

import (
	"math"
	"time"

	"vendora/models"
)

const (
	platformFeeRate = 0.05
	taxRate         = 0.13
)

// snapshotFromSubtotal derives the fee, tax and total from a subtotal in
// minor currency units. Order matters: fee from subtotal, tax from
// subtotal+fee, total last. Reordering changes results by cents.
func snapshotFromSubtotal(subtotal int64, currency string) models.PricingSnapshot {
	platformFee := int64(math.Round(float64(subtotal) * platformFeeRate))
	tax := int64(math.Round(float64(subtotal+platformFee) * taxRate))
	return models.PricingSnapshot{
		Subtotal:    subtotal,
		PlatformFee: platformFee,
		Tax:         tax,
		Total:       subtotal + platformFee + tax,
		Currency:    currency,
	}
}

// ComputeHourlyPrice prices an hourly listing over [start, end). The elapsed
// duration is rounded up to the next quarter hour, never down.
func ComputeHourlyPrice(pricePerHour float64, start, end time.Time, currency string) models.PricingSnapshot {
	hours := end.Sub(start).Hours()
	billedHours := math.Ceil(hours*4) / 4
	subtotal := int64(math.Round(pricePerHour * billedHours * 100))
	return snapshotFromSubtotal(subtotal, currency)
}

// ComputeFixedPrice prices a fixed listing's session package.
func ComputeFixedPrice(pricePerSession float64, currency string) models.PricingSnapshot {
	subtotal := int64(math.Round(pricePerSession * 100))
	return snapshotFromSubtotal(subtotal, currency)
}
