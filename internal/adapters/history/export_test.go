package history

import "time"

// SetClock replaces the time source used for record timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}
