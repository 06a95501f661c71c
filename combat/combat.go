// Package combat simulates dice-duel battles and estimates win probabilities
// via Monte Carlo. It is a pure function of two troop counts plus an injected
// randomness source; it knows nothing about maps or players.
package combat

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
)

// MaxAttackDice and MaxDefendDice bound how many dice each side may roll per
// round.
const (
	MaxAttackDice = 3
	MaxDefendDice = 2
)

// Roller produces n six-sided dice sorted highest first. Tests may script it.
type Roller interface {
	Roll(n int) []int
}

// DiceRoller is the standard Roller backed by a seedable source.
type DiceRoller struct {
	rng *rand.Rand
}

// NewDiceRoller wraps an explicitly injected generator.
func NewDiceRoller(rng *rand.Rand) *DiceRoller {
	return &DiceRoller{rng: rng}
}

func (r *DiceRoller) Roll(n int) []int {
	rolls := make([]int, n)
	for i := range rolls {
		rolls[i] = r.rng.Intn(6) + 1
	}
	sort.Sort(sort.Reverse(sort.IntSlice(rolls)))
	return rolls
}

// Result is the post-battle troop count on both sides. Unless an input was
// already invalid, exactly one side is zero.
type Result struct {
	Attackers int
	Defenders int
}

// ResolveBattle fights a committed attacker stack against a defending
// garrison until one side is wiped out. Each round the attacker rolls
// min(3, attackers) dice and the defender min(2, defenders); the sorted dice
// pair off top-down and ties go to the defender. The reserve-one-troop rule is
// the caller's concern: callers commit at most garrison-1, and the resolver
// rolls over the full committed stack.
func ResolveBattle(roller Roller, attackers, defenders int) (Result, error) {
	if attackers <= 0 || defenders <= 0 {
		return Result{}, fmt.Errorf("combat: troop counts must be positive, got %d vs %d", attackers, defenders)
	}
	for attackers > 0 && defenders > 0 {
		attackerRolls := roller.Roll(min(MaxAttackDice, attackers))
		defenderRolls := roller.Roll(min(MaxDefendDice, defenders))
		attackerLosses, defenderLosses := compareRolls(attackerRolls, defenderRolls)
		attackers -= attackerLosses
		defenders -= defenderLosses
	}
	return Result{Attackers: attackers, Defenders: defenders}, nil
}

// compareRolls pairs the highest dice from each side. The attacker must
// strictly exceed to win a pair.
func compareRolls(attackerRolls, defenderRolls []int) (attackerLosses, defenderLosses int) {
	pairs := min(len(attackerRolls), len(defenderRolls))
	for i := 0; i < pairs; i++ {
		if attackerRolls[i] > defenderRolls[i] {
			defenderLosses++
		} else {
			attackerLosses++
		}
	}
	return
}
