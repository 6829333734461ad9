package dx12

import (
	"time"

	"github.com/loov/hrtime"
)

// FrameStats counts frames and logs the average frame time once per
// Interval.
type FrameStats struct {
	Interval time.Duration

	now         func() time.Duration
	start       time.Duration
	windowStart time.Duration
	total       uint64
	window      uint64
}

func NewFrameStats(interval time.Duration) *FrameStats {
	return newFrameStats(interval, hrtime.Now)
}

func newFrameStats(interval time.Duration, now func() time.Duration) *FrameStats {
	t := now()
	return &FrameStats{
		Interval:    interval,
		now:         now,
		start:       t,
		windowStart: t,
	}
}

// Tick records one finished frame. It reports whether a statistics line was
// logged.
func (s *FrameStats) Tick() bool {
	s.total++
	s.window++

	t := s.now()
	elapsed := t - s.windowStart
	if s.Interval <= 0 || elapsed < s.Interval {
		return false
	}
	avg := elapsed / time.Duration(s.window)
	Logger().Info("frame stats",
		"frames", s.total,
		"avgFrame", avg,
		"fps", float64(s.window)/elapsed.Seconds(),
	)
	s.windowStart = t
	s.window = 0
	return true
}

func (s *FrameStats) Frames() uint64 {
	return s.total
}

// Average is the mean frame time since the stats were created.
func (s *FrameStats) Average() time.Duration {
	if s.total == 0 {
		return 0
	}
	return (s.now() - s.start) / time.Duration(s.total)
}
