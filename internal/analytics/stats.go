package analytics

import (
	"math"
	"sort"

	"github.com/pedalpulse/pedalpulse/internal/trip"
)

// MinStatsGroupSize gates the duration-statistics output: groups with
// fewer trips than this are omitted as an insufficient sample. The
// gate applies to this output only; small groups still count toward
// the plain trip-count aggregates.
const MinStatsGroupSize = 10

// DurationStats summarizes trip durations for one (user type, hour)
// group. Std is a pointer so an undefined standard deviation (a
// single-element group) serializes as JSON null rather than NaN.
type DurationStats struct {
	UserType trip.UserType `json:"member_casual"`
	Hour     int           `json:"hour"`
	Count    int           `json:"count"`
	Mean     float64       `json:"mean"`
	Std      *float64      `json:"std"`
	Min      float64       `json:"min"`
	Q1       float64       `json:"q1"`
	Median   float64       `json:"median"`
	Q3       float64       `json:"q3"`
	Max      float64       `json:"max"`
	IQR      float64       `json:"iqr"`
}

// DurationStatistics computes per (member_casual, hour) duration
// summaries. The caller hands it the wide-window clean set (1..1440
// minutes, unsampled); groups under MinStatsGroupSize are skipped.
// Output order is member then casual, hours ascending.
func DurationStatistics(trips []trip.CleanTrip) []DurationStats {
	var groups [2][24][]float64
	for _, t := range trips {
		u := 0
		if t.UserType == trip.UserTypeCasual {
			u = 1
		}
		groups[u][t.Hour] = append(groups[u][t.Hour], t.DurationMinutes)
	}

	userTypes := [2]trip.UserType{trip.UserTypeMember, trip.UserTypeCasual}

	var out []DurationStats
	for u, ut := range userTypes {
		for hour := 0; hour < 24; hour++ {
			values := groups[u][hour]
			if len(values) < MinStatsGroupSize {
				continue
			}
			out = append(out, summarize(ut, hour, values))
		}
	}
	return out
}

func summarize(ut trip.UserType, hour int, values []float64) DurationStats {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	n := len(sorted)
	mean := meanOf(sorted)
	q1 := Percentile(sorted, 0.25)
	q3 := Percentile(sorted, 0.75)

	stats := DurationStats{
		UserType: ut,
		Hour:     hour,
		Count:    n,
		Mean:     mean,
		Min:      sorted[0],
		Q1:       q1,
		Median:   Percentile(sorted, 0.5),
		Q3:       q3,
		Max:      sorted[n-1],
		IQR:      q3 - q1,
	}

	// Sample standard deviation is undefined for n=1.
	if n > 1 {
		var sq float64
		for _, v := range sorted {
			d := v - mean
			sq += d * d
		}
		std := math.Sqrt(sq / float64(n-1))
		stats.Std = &std
	}

	return stats
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Percentile computes the q-th percentile (q in [0,1]) of sorted
// values using linear interpolation between order statistics:
// h = (n-1)q, result = x[floor(h)] + frac(h) * (x[floor(h)+1] - x[floor(h)]).
// The same method backs the median and both quartiles so results are
// reproducible bit for bit on a given input.
func Percentile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}

	h := float64(n-1) * q
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
