package dispatch

import "time"

// PacificEpoch returns the Unix time of now shifted by the UTC offset that
// loc has at now. The sampler has no time zone support and shows this value
// as local wall time. The shift follows daylight saving, so a value sent
// just before a transition and one sent just after differ by an hour more
// or less than the real elapsed time.
func PacificEpoch(now time.Time, loc *time.Location) int64 {
	if loc == nil {
		loc = time.UTC
	}
	_, offset := now.In(loc).Zone()
	return now.Unix() + int64(offset)
}
