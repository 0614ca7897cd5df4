package store

import "time"

// SetClock replaces the store's time source.
func SetClock(s *Store, now func() time.Time) { s.now = now }
