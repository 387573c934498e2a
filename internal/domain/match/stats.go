package match

import "math"

// Stats counts stored matches by overall status.
type Stats struct {
	Total    int64 `json:"total"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
	Pending  int64 `json:"pending"`
}

// AcceptanceRate is the share of matches both users accepted, as a percentage
// rounded to two decimals. No matches yields 0.
func (s Stats) AcceptanceRate() float64 {
	if s.Total <= 0 {
		return 0
	}
	return math.Round(float64(s.Accepted)/float64(s.Total)*10000) / 100
}
