package detect

import (
	"runtime"
	"sync"

	"github.com/banshee-data/conflict.report/internal/airspace"
	"github.com/banshee-data/conflict.report/internal/monitoring"
)

// pairJob is one unit of fan-out work: both enabled per-pair passes over
// a single unordered vehicle pair.
type pairJob struct {
	a, b airspace.Trajectory
}

// Run executes one complete analysis over the given trajectories and
// returns the aggregated, ordered event list.
//
// Validation happens before any detection: invalid params or any invalid
// trajectory fail the whole run with no partial result. Pairs with no
// time overlap contribute zero events. Pair computations are independent
// and fan out over a bounded worker pool; the merge is sorted afterwards
// so output order never depends on worker scheduling.
func Run(trajectories []airspace.Trajectory, p Params) ([]Event, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	for _, tr := range trajectories {
		if err := tr.Validate(); err != nil {
			return nil, err
		}
	}
	if len(trajectories) < 2 {
		return nil, nil
	}

	jobs := make([]pairJob, 0, len(trajectories)*(len(trajectories)-1)/2)
	for i := 0; i < len(trajectories); i++ {
		for j := i + 1; j < len(trajectories); j++ {
			jobs = append(jobs, pairJob{a: trajectories[i], b: trajectories[j]})
		}
	}

	workers := p.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	monitoring.Logf("detect: analysing %d trajectories (%d pairs, %d workers)",
		len(trajectories), len(jobs), workers)

	var (
		mu     sync.Mutex
		merged []Event
		wg     sync.WaitGroup
	)
	jobCh := make(chan pairJob)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				events := detectPair(job.a, job.b, p)
				if len(events) == 0 {
					continue
				}
				mu.Lock()
				merged = append(merged, events...)
				mu.Unlock()
			}
		}()
	}
	for _, job := range jobs {
		jobCh <- job
	}
	close(jobCh)
	wg.Wait()

	return Aggregate(merged, p), nil
}

// detectPair runs every enabled detector over one vehicle pair.
func detectPair(a, b airspace.Trajectory, p Params) []Event {
	var events []Event
	if p.EnableSpatial {
		events = append(events, DetectSpatial(a, b, p)...)
	}
	if p.EnableTemporal {
		events = append(events, DetectTemporal(a, b, p)...)
	}
	if p.EnableAltitude {
		events = append(events, DetectAltitude(a, b, p)...)
	}
	return events
}
