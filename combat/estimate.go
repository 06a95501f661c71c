package combat

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/exp/rand"
)

type estimator struct {
	seed       uint64
	goroutines int
}

type Option func(*estimator)

// WithSeed sets the base seed for the trial generators. The default seed is 1,
// so estimates are reproducible unless a caller injects entropy.
func WithSeed(seed uint64) Option {
	return func(e *estimator) {
		e.seed = seed
	}
}

// WithGoroutines fans the trials out over n workers, each with its own
// generator. Workers share nothing but the win counters, combined by addition.
func WithGoroutines(n int) Option {
	return func(e *estimator) {
		e.goroutines = n
	}
}

// EstimateWinProbability runs ResolveBattle independently from the same
// initial counts and returns the fraction of trials where the defender was
// wiped out, as a percentage rounded to two decimals. No state carries across
// trials besides the win counter.
func EstimateWinProbability(attackers, defenders, trials int, options ...Option) (float64, error) {
	if attackers <= 0 || defenders <= 0 {
		return 0, fmt.Errorf("combat: troop counts must be positive, got %d vs %d", attackers, defenders)
	}
	if trials <= 0 {
		return 0, fmt.Errorf("combat: trials must be positive, got %d", trials)
	}

	e := &estimator{seed: 1, goroutines: 1}
	for _, option := range options {
		option(e)
	}
	if e.goroutines < 1 {
		e.goroutines = 1
	}
	if e.goroutines > trials {
		e.goroutines = trials
	}

	counts := make(chan int, e.goroutines)
	var wg sync.WaitGroup
	perWorker := trials / e.goroutines
	extra := trials % e.goroutines

	for w := 0; w < e.goroutines; w++ {
		n := perWorker
		if w < extra {
			n++
		}
		wg.Add(1)
		go func(worker, n int) {
			defer wg.Done()
			roller := NewDiceRoller(rand.New(rand.NewSource(e.seed + uint64(worker))))
			wins := 0
			for i := 0; i < n; i++ {
				result, err := ResolveBattle(roller, attackers, defenders)
				if err != nil {
					continue // unreachable: inputs were validated above
				}
				if result.Defenders == 0 {
					wins++
				}
			}
			counts <- wins
		}(w, n)
	}
	wg.Wait()
	close(counts)

	wins := 0
	for w := range counts {
		wins += w
	}

	percent := float64(wins) / float64(trials) * 100
	return math.Round(percent*100) / 100, nil
}
