package host

import "time"

// FrameStats summarizes frame production.
type FrameStats struct {
	Frames          uint64
	Errors          uint64
	OverBudget      uint64
	AverageDuration time.Duration
	MaxDuration     time.Duration
	LastDuration    time.Duration
}

func (s *FrameStats) update(d time.Duration, budget time.Duration) {
	const window = 64

	s.LastDuration = d
	s.MaxDuration = max(s.MaxDuration, d)

	if s.Frames < window/2 {
		// Plain running mean until the window is half full.
		s.AverageDuration = (time.Duration(s.Frames)*s.AverageDuration + d) / time.Duration(s.Frames+1)
	} else {
		s.AverageDuration = ((window-1)*s.AverageDuration + d) / window
	}
	s.Frames++

	if budget > 0 && d > budget {
		s.OverBudget++
	}
}

// FPS returns the frame rate implied by the average frame duration.
func (s FrameStats) FPS() float64 {
	if s.AverageDuration <= 0 {
		return 0
	}
	return 1.0 / s.AverageDuration.Seconds()
}
