package runplan

import "time"

// SetClock replaces the clock used to name run directories.
func (p *Planner) SetClock(now func() time.Time) {
	p.now = now
}
