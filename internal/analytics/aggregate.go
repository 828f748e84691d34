// Package analytics computes the aggregate views served to the
// dashboard: grouped trip counts, duration statistics, popularity
// rankings, and station geocode summaries. All functions are pure over
// the working set they are handed and all counts are exact integers.
package analytics

import "github.com/pedalpulse/pedalpulse/internal/trip"

// HourCount is one hour's total trips.
type HourCount struct {
	Hour  int `json:"hour"`
	Trips int `json:"trips"`
}

// HourlyTotals counts trips per hour of day. All 24 hours are present,
// zeros included, ordered 0..23.
func HourlyTotals(trips []trip.CleanTrip) []HourCount {
	var counts [24]int
	for _, t := range trips {
		counts[t.Hour]++
	}

	out := make([]HourCount, 24)
	for h, n := range counts {
		out[h] = HourCount{Hour: h, Trips: n}
	}
	return out
}

// DayHourUserCount is the trip count for one (day, hour, user type)
// combination.
type DayHourUserCount struct {
	DayOfWeek string        `json:"day_of_week"`
	Hour      int           `json:"hour"`
	UserType  trip.UserType `json:"member_casual"`
	Trips     int           `json:"trips"`
}

// DailyUsage counts trips per (day_of_week, hour, member_casual)
// triple. Only observed combinations are emitted; consumers treat
// missing ones as zero. Output order is day (Monday first), then hour,
// then member before casual.
func DailyUsage(trips []trip.CleanTrip) []DayHourUserCount {
	// [day][hour][userType] with 0=member 1=casual.
	var counts [7][24][2]int
	for _, t := range trips {
		day := trip.DayIndex(t.DayOfWeek)
		if day < 0 {
			continue
		}
		u := 0
		if t.UserType == trip.UserTypeCasual {
			u = 1
		}
		counts[day][t.Hour][u]++
	}

	userTypes := [2]trip.UserType{trip.UserTypeMember, trip.UserTypeCasual}

	var out []DayHourUserCount
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			for u, ut := range userTypes {
				if n := counts[day][hour][u]; n > 0 {
					out = append(out, DayHourUserCount{
						DayOfWeek: trip.DayOrder[day],
						Hour:      hour,
						UserType:  ut,
						Trips:     n,
					})
				}
			}
		}
	}
	return out
}

// Pivot is the heatmap source: a 7x24 matrix of trip counts with a
// fixed Monday-first row order.
type Pivot struct {
	Days   []string `json:"days"`
	Hours  []int    `json:"hours"`
	Counts [][]int  `json:"counts"`
}

// DayHourPivot builds the day-by-hour trip count matrix. Every cell is
// present, missing combinations are zero.
func DayHourPivot(trips []trip.CleanTrip) Pivot {
	counts := make([][]int, 7)
	for i := range counts {
		counts[i] = make([]int, 24)
	}
	for _, t := range trips {
		if day := trip.DayIndex(t.DayOfWeek); day >= 0 {
			counts[day][t.Hour]++
		}
	}

	hours := make([]int, 24)
	for h := range hours {
		hours[h] = h
	}

	return Pivot{
		Days:   trip.DayOrder[:],
		Hours:  hours,
		Counts: counts,
	}
}
