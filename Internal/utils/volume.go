package utils

// CalculateAvgVolume averages the most recent `period` entries of a
// volume series. Shorter series average whatever is available.
func CalculateAvgVolume(volumes []int64, period int) float64 {
	if len(volumes) == 0 {
		return 0
	}
	if period > len(volumes) {
		period = len(volumes)
	}
	total := int64(0)
	for _, v := range volumes[len(volumes)-period:] {
		total += v
	}
	return float64(total) / float64(period)
}
