package domain

import "time"

// Clock supplies the current instant. Services read it once per call so
// every comparison within one classification or projection uses the same
// "now".
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
