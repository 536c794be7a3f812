package engine

import (
	"fmt"
	"strconv"
)

// FormatProfit renders a coin amount as a short human figure: 17280 → "17.3K",
// -2500000 → "-2.5M". Values under a thousand print as-is.
func FormatProfit(profit int64) string {
	abs := profit
	sign := ""
	if profit < 0 {
		abs = -profit
		sign = "-"
	}
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%s%.1fB", sign, float64(abs)/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%s%.1fM", sign, float64(abs)/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%s%.1fK", sign, float64(abs)/1e3)
	default:
		return strconv.FormatInt(profit, 10)
	}
}
