package session

import (
	"time"

	"github.com/tessen42/stetho/internal/research"
)

// armSchedulers launches the two ambient goroutines. Both live on the
// session's root context and stop when it is cancelled.
func (s *Session) armSchedulers() {
	s.wg.Add(2)
	go s.runHeartbeat()
	go s.runStatusPoll()
}

// runHeartbeat pings the service immediately and then on every tick, to
// keep an idle backend's host from suspending it. A miss is logged and
// otherwise ignored: one attempt per tick, no retry, no user-visible
// error, because the next tick is the retry.
func (s *Session) runHeartbeat() {
	defer s.wg.Done()

	misses := 0
	ping := func() {
		if err := s.fetcher.Ping(s.ctx); err != nil {
			if research.IsCancelled(err) {
				return
			}
			misses++
			s.logger.Warn("heartbeat miss", "consecutive", misses, "error", err)
			return
		}
		if misses > 0 {
			s.logger.Info("heartbeat recovered", "missed", misses)
		}
		misses = 0
	}

	ping()
	ticker := time.NewTicker(s.heartbeatEvery)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			ping()
		}
	}
}

// runStatusPoll refreshes SchedulerStatus on every tick. It is ambient
// refresh, not a user action: it never raises the busy flag, never writes
// the visible error, and a failed tick leaves the previous status in
// place for the next one. There is no immediate poll because the
// initialization fan-out has just fetched the same data.
func (s *Session) runStatusPoll() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.pollEvery)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			status, err := s.fetcher.FetchSchedulerStatus(s.ctx)
			if err != nil {
				if !research.IsCancelled(err) {
					s.logger.Debug("status poll failed", "error", err)
				}
				continue
			}
			s.store.SetScheduler(status)
			s.notify()
		}
	}
}
