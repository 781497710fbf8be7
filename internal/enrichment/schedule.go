package enrichment

import "time"

// DeriveArrival returns departure plus durationMin minutes, or nil when the
// duration is unknown or not positive.
func DeriveArrival(departure time.Time, durationMin *int) *time.Time {
	if durationMin == nil || *durationMin <= 0 {
		return nil
	}
	arrival := departure.Add(time.Duration(*durationMin) * time.Minute)
	return &arrival
}
