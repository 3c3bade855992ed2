package scheduler

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// TickerScheduler runs each schedule on its own goroutine driven by a clock ticker.
type TickerScheduler struct {
	clock clock.WithTicker

	mu   sync.Mutex
	next Handle
	jobs map[Handle]*job
}

type job struct {
	stop chan struct{}
	done chan struct{}
}

var _ Scheduler = (*TickerScheduler)(nil)

// NewTickerScheduler returns a scheduler backed by clk. Use clock.RealClock{} in production
// and a k8s.io/utils/clock/testing.FakeClock in tests.
func NewTickerScheduler(clk clock.WithTicker) *TickerScheduler {
	return &TickerScheduler{
		clock: clk,
		jobs:  make(map[Handle]*job),
	}
}

// Every starts calling fn every interval. The interval must be positive.
// fn must not call Cancel for its own handle.
func (s *TickerScheduler) Every(interval time.Duration, fn func()) Handle {
	ticker := s.clock.NewTicker(interval)
	j := &job{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	s.mu.Lock()
	s.next++
	h := s.next
	s.jobs[h] = j
	s.mu.Unlock()

	go j.run(ticker, fn)

	return h
}

func (j *job) run(ticker clock.Ticker, fn func()) {
	defer close(j.done)
	defer ticker.Stop()

	for {
		select {
		case <-j.stop:
			return
		case <-ticker.C():
			// A tick and a cancel can be ready together; cancel wins.
			select {
			case <-j.stop:
				return
			default:
			}
			fn()
		}
	}
}

// Cancel stops the schedule and waits for its goroutine to exit.
func (s *TickerScheduler) Cancel(h Handle) {
	s.mu.Lock()
	j, ok := s.jobs[h]
	delete(s.jobs, h)
	s.mu.Unlock()

	if !ok {
		return
	}

	close(j.stop)
	<-j.done
}

// Active returns the number of schedules that have not been cancelled.
func (s *TickerScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.jobs)
}

// Close cancels every remaining schedule.
func (s *TickerScheduler) Close() {
	s.mu.Lock()
	handles := make([]Handle, 0, len(s.jobs))
	for h := range s.jobs {
		handles = append(handles, h)
	}
	s.mu.Unlock()

	for _, h := range handles {
		s.Cancel(h)
	}
}
