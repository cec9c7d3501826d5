package domain

// ProductivityScore combines deep work and efficiency over a window:
//
//	clamp(0, 100, round((deep*10 + avgEff*0.5) / max(1, totalLogs/10)))
//
// The formula is a fixed contract; scores are compared across versions.
func ProductivityScore(r RangeReport) int {
	divisor := float64(r.TotalLogs) / 10
	if divisor < 1 {
		divisor = 1
	}
	raw := (float64(r.TotalDeepWork)*10 + float64(r.AvgEfficiency)*0.5) / divisor
	return clamp(round(raw), 0, 100)
}
