package tracker

import "time"

// SetClock replaces the service's time source.
func SetClock(s *Service, now func() time.Time) { s.now = now }
