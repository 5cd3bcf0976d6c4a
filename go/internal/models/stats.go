package models

// BaselinePoints is the balance every new identity starts with
const BaselinePoints = 1000

// UserStats holds the running record of one identity
type UserStats struct {
	Points  int `json:"points"`
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// BaselineStats returns the stats of a freshly registered identity
func BaselineStats() UserStats {
	return UserStats{Points: BaselinePoints}
}

// Accuracy returns the share of correct resolved predictions as a percentage
func (s UserStats) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total) * 100
}
