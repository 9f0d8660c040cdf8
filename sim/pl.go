package sim

// markToMarket values a position of contracts paying 100 at price on the
// 0..100 scale.
func markToMarket(capital float64, position int, price float64) float64 {
	return capital + float64(position)*price/100
}
