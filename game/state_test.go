package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// testMap builds a line-shaped map A-B-C-... on a single zero-bonus continent.
func testMap(territories int) *Map {
	m := NewMap()
	cid := m.AddContinent("Pangaea", 0)
	for i := 0; i < territories; i++ {
		id := m.AddTerritory(string(rune('A'+i)), cid)
		m.Continents[cid].TerritoryIDs = append(m.Continents[cid].TerritoryIDs, id)
		if i > 0 {
			m.AddBorder(id-1, id)
		}
	}
	return m
}

func TestNewGameState(t *testing.T) {
	t.Run("rejects unsupported player counts", func(t *testing.T) {
		m := testMap(6)
		var confErr *ConfigurationError

		_, err := NewGameState(m, []string{"P1"}, rand.New(rand.NewSource(1)))
		require.ErrorAs(t, err, &confErr)

		_, err = NewGameState(m, []string{"P1", "P2", "P3", "P4", "P5", "P6", "P7"}, rand.New(rand.NewSource(1)))
		require.ErrorAs(t, err, &confErr)
	})

	t.Run("all territories start unowned", func(t *testing.T) {
		m := testMap(4)
		gs, err := NewGameState(m, []string{"P1", "P2"}, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		for _, owner := range gs.Ownership {
			require.Equal(t, -1, owner)
		}
	})
}

func TestSetup(t *testing.T) {
	t.Run("6 territories split 3/3 between 2 players", func(t *testing.T) {
		gs, err := NewGameState(testMap(6), []string{"P1", "P2"}, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		gs.Setup()

		require.Equal(t, 3, gs.OwnedCount(1))
		require.Equal(t, 3, gs.OwnedCount(2))
	})

	t.Run("7 territories split 4/3 with the remainder to the first seat", func(t *testing.T) {
		gs, err := NewGameState(testMap(7), []string{"P1", "P2"}, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		gs.Setup()

		require.Equal(t, 4, gs.OwnedCount(1))
		require.Equal(t, 3, gs.OwnedCount(2))
	})

	t.Run("starting armies match the player-count table", func(t *testing.T) {
		gs, err := NewGameState(testMap(8), []string{"P1", "P2"}, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		gs.Setup()

		require.Equal(t, 40, gs.PlayerByID(1).Troops)
		require.Equal(t, 40, gs.PlayerByID(2).Troops)
		for tid, owner := range gs.Ownership {
			require.NotEqual(t, -1, owner)
			require.GreaterOrEqual(t, gs.Troops[tid], 1, "every owned territory keeps a garrison")
		}
	})

	t.Run("three players get 35 each", func(t *testing.T) {
		gs, err := NewGameState(testMap(9), []string{"P1", "P2", "P3"}, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		gs.Setup()

		for _, id := range gs.Roster {
			require.Equal(t, 35, gs.PlayerByID(id).Troops)
		}
	})
}

func TestComputeAllowance(t *testing.T) {
	m := NewMap()
	small := m.AddContinent("Small", 2)
	big := m.AddContinent("Big", 5)
	for i := 0; i < 3; i++ {
		id := m.AddTerritory(string(rune('A'+i)), small)
		m.Continents[small].TerritoryIDs = append(m.Continents[small].TerritoryIDs, id)
	}
	for i := 0; i < 12; i++ {
		id := m.AddTerritory(string(rune('a'+i)), big)
		m.Continents[big].TerritoryIDs = append(m.Continents[big].TerritoryIDs, id)
	}
	for i := 1; i < 15; i++ {
		m.AddBorder(i-1, i)
	}

	gs, err := NewGameState(m, []string{"P1", "P2"}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	t.Run("floor of 3 applies to small holdings", func(t *testing.T) {
		for i := range gs.Ownership {
			gs.Ownership[i] = 2
		}
		gs.Ownership[3] = 1 // one territory inside Big
		require.Equal(t, 3, gs.ComputeAllowance(1))
	})

	t.Run("fully owned continents add their bonus", func(t *testing.T) {
		for i := range gs.Ownership {
			gs.Ownership[i] = 2
		}
		gs.Ownership[0], gs.Ownership[1], gs.Ownership[2] = 1, 1, 1
		require.Equal(t, 3+2, gs.ComputeAllowance(1), "floor(3/3)=1 floored to 3, plus Small's bonus")
	})

	t.Run("twelve territories grant four troops", func(t *testing.T) {
		for i := range gs.Ownership {
			gs.Ownership[i] = 1
		}
		gs.Ownership[0], gs.Ownership[1], gs.Ownership[2] = 2, 2, 2
		require.Equal(t, 4+5, gs.ComputeAllowance(1), "12/3 troops plus Big's bonus")
	})
}

func TestContinentOwner(t *testing.T) {
	m := testMap(3)
	gs, err := NewGameState(m, []string{"P1", "P2"}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	gs.Ownership = []int{1, 1, 1}
	require.Equal(t, 1, gs.ContinentOwner(m.Continents[0]))

	gs.Ownership = []int{1, 2, 1}
	require.Equal(t, -1, gs.ContinentOwner(m.Continents[0]), "split continents have no owner")
}

func TestEliminate(t *testing.T) {
	t.Run("transfers the hand and shrinks the roster once", func(t *testing.T) {
		gs, err := NewGameState(testMap(6), []string{"P1", "P2", "P3"}, rand.New(rand.NewSource(1)))
		require.NoError(t, err)

		gs.PlayerByID(2).Hand = []Card{card(Infantry, 0), card(Wild, -1)}
		gs.PlayerByID(3).Hand = []Card{card(Cavalry, 1)}

		gs.Eliminate(2, 3)
		require.Equal(t, []int{1, 3}, gs.Roster)
		require.Empty(t, gs.PlayerByID(2).Hand)
		require.Len(t, gs.PlayerByID(3).Hand, 3)

		gs.Eliminate(2, 3)
		require.Equal(t, []int{1, 3}, gs.Roster, "a second elimination is a no-op")
		require.Len(t, gs.PlayerByID(3).Hand, 3)
	})

	t.Run("active index shifts down when an earlier seat is removed", func(t *testing.T) {
		gs, err := NewGameState(testMap(6), []string{"P1", "P2", "P3"}, rand.New(rand.NewSource(1)))
		require.NoError(t, err)

		gs.Active = 2 // P3 acting
		gs.Eliminate(1, 3)
		require.Equal(t, 1, gs.Active)
		require.Equal(t, 3, gs.Roster[gs.Active], "the acting player keeps their slot")
	})

	t.Run("one survivor wins", func(t *testing.T) {
		gs, err := NewGameState(testMap(6), []string{"P1", "P2"}, rand.New(rand.NewSource(1)))
		require.NoError(t, err)

		require.Equal(t, 0, gs.Winner())
		gs.Eliminate(1, 2)
		require.Equal(t, 2, gs.Winner())
	})
}

func TestAreConnected(t *testing.T) {
	// A-B-C-D line; P1 owns A, B, D - so A reaches B but not D.
	gs, err := NewGameState(testMap(4), []string{"P1", "P2"}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	gs.Ownership = []int{1, 1, 2, 1}

	require.True(t, gs.AreConnected(0, 1, 1))
	require.False(t, gs.AreConnected(0, 3, 1), "the enemy-held C breaks the chain")
	require.True(t, gs.AreConnected(2, 2, 2))
}

func TestUpdateTroopCount(t *testing.T) {
	gs, err := NewGameState(testMap(3), []string{"P1", "P2"}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	gs.Ownership = []int{1, 2, 1}
	gs.Troops = []int{4, 9, 6}

	require.Equal(t, 10, gs.UpdateTroopCount(1))
	require.Equal(t, 10, gs.PlayerByID(1).Troops)
	require.Equal(t, 9, gs.UpdateTroopCount(2))
}

func TestMoveTroops(t *testing.T) {
	gs, err := NewGameState(testMap(3), []string{"P1", "P2"}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	gs.Ownership = []int{1, 1, 2}
	gs.Troops = []int{5, 1, 2}

	gs.MoveTroops(0, 1, 3)
	require.Equal(t, 2, gs.Troops[0])
	require.Equal(t, 4, gs.Troops[1])
}
