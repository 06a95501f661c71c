package combat

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// scriptedRoller replays a fixed sequence of rolls, truncated to the number
// of dice actually requested.
type scriptedRoller struct {
	rolls [][]int
}

func (s *scriptedRoller) Roll(n int) []int {
	r := s.rolls[0]
	s.rolls = s.rolls[1:]
	if len(r) > n {
		r = r[:n]
	}
	return r
}

func TestCompareRolls(t *testing.T) {
	t.Run("higher attacker die removes a defender troop", func(t *testing.T) {
		attackerLosses, defenderLosses := compareRolls([]int{6, 5, 4}, []int{1})
		require.Equal(t, 0, attackerLosses)
		require.Equal(t, 1, defenderLosses, "only one pair forms against a single defender die")
	})

	t.Run("ties go to the defender", func(t *testing.T) {
		attackerLosses, defenderLosses := compareRolls([]int{6, 5}, []int{6, 4})
		require.Equal(t, 1, attackerLosses, "6 vs 6 must favor the defender")
		require.Equal(t, 1, defenderLosses)
	})

	t.Run("pairs up to the shorter dice set", func(t *testing.T) {
		attackerLosses, defenderLosses := compareRolls([]int{3}, []int{6, 5})
		require.Equal(t, 1, attackerLosses)
		require.Equal(t, 0, defenderLosses)
	})
}

func TestResolveBattle(t *testing.T) {
	t.Run("rejects non-positive troop counts", func(t *testing.T) {
		_, err := ResolveBattle(&scriptedRoller{}, 0, 5)
		require.Error(t, err)

		_, err = ResolveBattle(&scriptedRoller{}, 5, -1)
		require.Error(t, err)
	})

	t.Run("forced sequence 6,5,4 vs 1 costs the defender exactly one troop", func(t *testing.T) {
		roller := &scriptedRoller{rolls: [][]int{{6, 5, 4}, {1}}}
		result, err := ResolveBattle(roller, 3, 1)
		require.NoError(t, err)
		require.Equal(t, 3, result.Attackers, "attacker loses nothing in that round")
		require.Equal(t, 0, result.Defenders)
	})

	t.Run("equal single dice resolve in the defender's favor", func(t *testing.T) {
		roller := &scriptedRoller{rolls: [][]int{{4}, {4}}}
		result, err := ResolveBattle(roller, 1, 1)
		require.NoError(t, err)
		require.Equal(t, 0, result.Attackers)
		require.Equal(t, 1, result.Defenders)
	})

	t.Run("always terminates with exactly one side at zero", func(t *testing.T) {
		roller := NewDiceRoller(rand.New(rand.NewSource(42)))
		for attackers := 1; attackers <= 12; attackers++ {
			for defenders := 1; defenders <= 12; defenders++ {
				result, err := ResolveBattle(roller, attackers, defenders)
				require.NoError(t, err)
				require.True(t, (result.Attackers == 0) != (result.Defenders == 0),
					"exactly one side must be wiped out, got %+v for %d vs %d", result, attackers, defenders)
				require.LessOrEqual(t, result.Attackers, attackers)
				require.LessOrEqual(t, result.Defenders, defenders)
			}
		}
	})
}

func TestEstimateWinProbability(t *testing.T) {
	t.Run("rejects bad inputs", func(t *testing.T) {
		_, err := EstimateWinProbability(0, 1, 100)
		require.Error(t, err)

		_, err = EstimateWinProbability(1, 1, 0)
		require.Error(t, err)
	})

	t.Run("same seed yields the same estimate", func(t *testing.T) {
		p1, err := EstimateWinProbability(5, 5, 500, WithSeed(7))
		require.NoError(t, err)
		p2, err := EstimateWinProbability(5, 5, 500, WithSeed(7))
		require.NoError(t, err)
		require.Equal(t, p1, p2)
	})

	t.Run("overwhelming attacker wins nearly always", func(t *testing.T) {
		p, err := EstimateWinProbability(100, 1, 200, WithSeed(1))
		require.NoError(t, err)
		require.Greater(t, p, 90.0)
		require.LessOrEqual(t, p, 100.0)
	})

	t.Run("overwhelmed attacker loses nearly always", func(t *testing.T) {
		p, err := EstimateWinProbability(1, 100, 200, WithSeed(1))
		require.NoError(t, err)
		require.Less(t, p, 10.0)
		require.GreaterOrEqual(t, p, 0.0)
	})

	t.Run("parallel trials stay within bounds", func(t *testing.T) {
		p, err := EstimateWinProbability(8, 6, 1000, WithSeed(3), WithGoroutines(8))
		require.NoError(t, err)
		require.GreaterOrEqual(t, p, 0.0)
		require.LessOrEqual(t, p, 100.0)
	})

	t.Run("more goroutines than trials is tolerated", func(t *testing.T) {
		_, err := EstimateWinProbability(3, 3, 4, WithSeed(3), WithGoroutines(64))
		require.NoError(t, err)
	})
}
