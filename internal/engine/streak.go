package engine

// Streak counts consecutive calendar days with at least one completion.
// Invariant: Days >= 1 whenever LastDay is set; the pristine state is
// {LastDay: "", Days: 0}.
type Streak struct {
	LastDay Day `json:"lastDay"`
	Days    int `json:"days"`
}

// Record updates the streak for a completion that happened on today.
// A second completion on the same day is a no-op; a completion exactly one
// day after the recorded day extends the streak; anything else resets it to
// 1. The gap is taken as an absolute value, so a recorded day one day in the
// future (host clock moved backward) also extends the streak. That matches
// the behavior users have relied on so far; see the tracker docs before
// changing it.
func (s *Streak) Record(today Day) {
	if s.LastDay.IsZero() {
		s.LastDay = today
		s.Days = 1
		return
	}
	gap := DiffDays(today, s.LastDay)
	if gap < 0 {
		gap = -gap
	}
	switch gap {
	case 0:
		// Already counted a completion today.
	case 1:
		s.Days++
		s.LastDay = today
	default:
		s.Days = 1
		s.LastDay = today
	}
}
