package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

const (
	MinPlayers = 2
	MaxPlayers = 6
)

// Starting armies per player, indexed by player count.
var startingArmies = map[int]int{2: 40, 3: 35, 4: 30, 5: 25, 6: 20}

// GameState represents the dynamic state of the game at any point: everything
// except the map, which is static. Ownership is the single source of truth for
// who holds what; per-player territory lists are always derived from it.
type GameState struct {
	Map       *Map
	Troops    []int // garrison per territory, indexed by territory ID
	Ownership []int // owner per territory, indexed by territory ID (-1 unowned)
	Players   []*Player
	Roster    []int // surviving player IDs in turn order; shrinks on elimination
	Round     int
	Active    int // index into Roster of the acting player
	Deck      *Deck
	Log       *EventLog

	rng *rand.Rand
}

// NewGameState seats the given players on the map with an explicitly injected
// randomness source. Player counts outside the starting-army table are a
// ConfigurationError.
func NewGameState(m *Map, playerNames []string, rng *rand.Rand) (*GameState, error) {
	n := len(playerNames)
	if n < MinPlayers || n > MaxPlayers {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("unsupported player count %d, want %d-%d", n, MinPlayers, MaxPlayers),
		}
	}
	gs := &GameState{
		Map:       m,
		Troops:    make([]int, len(m.Territories)),
		Ownership: make([]int, len(m.Territories)),
		Deck:      NewDeck(m, rng),
		Log:       &EventLog{},
		rng:       rng,
	}
	for i := range gs.Ownership {
		gs.Ownership[i] = -1
	}
	for i, name := range playerNames {
		id := i + 1
		gs.Players = append(gs.Players, &Player{ID: id, Name: name})
		gs.Roster = append(gs.Roster, id)
	}
	return gs, nil
}

// Setup deals territories and starting armies. Territories are shuffled and
// split evenly; the remainder goes one-each to the earliest-seated players.
// Each dealt territory starts at 1 troop, then the rest of the starting armies
// land on random owned territories.
func (gs *GameState) Setup() {
	gs.Log.Append("Game started.")

	ids := make([]int, len(gs.Map.Territories))
	for i := range ids {
		ids[i] = i
	}
	gs.rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})

	n := len(gs.Roster)
	perPlayer := len(ids) / n
	remainder := len(ids) % n

	idx := 0
	for seat, playerID := range gs.Roster {
		count := perPlayer
		if seat < remainder {
			count++
		}
		for i := 0; i < count; i++ {
			tid := ids[idx]
			gs.Ownership[tid] = playerID
			gs.Troops[tid] = 1
			gs.Log.Appendf("%s received %s.", gs.PlayerByID(playerID).Name, gs.Map.Territories[tid].Name)
			idx++
		}
	}

	target := startingArmies[n]
	for _, playerID := range gs.Roster {
		owned := gs.TerritoriesOwnedBy(playerID)
		current := gs.UpdateTroopCount(playerID)
		for i := current; i < target; i++ {
			gs.Troops[owned[gs.rng.Intn(len(owned))]]++
		}
		gs.UpdateTroopCount(playerID)
		gs.Log.Append(gs.PlayerByID(playerID).String())
	}
}

// PlayerByID returns the account for a player ID, including eliminated ones.
func (gs *GameState) PlayerByID(id int) *Player {
	for _, p := range gs.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ActivePlayer returns the account of the player whose turn it is.
func (gs *GameState) ActivePlayer() *Player {
	return gs.PlayerByID(gs.Roster[gs.Active])
}

// InRoster reports whether a player is still alive.
func (gs *GameState) InRoster(id int) bool {
	return gs.RosterIndex(id) >= 0
}

// RosterIndex returns a player's position in the surviving roster, or -1.
func (gs *GameState) RosterIndex(id int) int {
	for i, rid := range gs.Roster {
		if rid == id {
			return i
		}
	}
	return -1
}

// TerritoriesOwnedBy derives the owned-territory list by scanning Ownership.
func (gs *GameState) TerritoriesOwnedBy(playerID int) []int {
	var territories []int
	for tid, owner := range gs.Ownership {
		if owner == playerID {
			territories = append(territories, tid)
		}
	}
	return territories
}

// OwnedCount counts the territories a player holds.
func (gs *GameState) OwnedCount(playerID int) int {
	count := 0
	for _, owner := range gs.Ownership {
		if owner == playerID {
			count++
		}
	}
	return count
}

// ContinentOwner returns the player owning every territory of the continent,
// or -1 if it is split. Recomputed on demand, never maintained incrementally.
func (gs *GameState) ContinentOwner(c *Continent) int {
	if len(c.TerritoryIDs) == 0 {
		return -1
	}
	owner := gs.Ownership[c.TerritoryIDs[0]]
	for _, tid := range c.TerritoryIDs[1:] {
		if gs.Ownership[tid] != owner {
			return -1
		}
	}
	return owner
}

// ComputeAllowance derives a player's draft allowance: floor(owned/3) with a
// floor of 3, plus the bonus of every fully owned continent.
func (gs *GameState) ComputeAllowance(playerID int) int {
	troops := max(3, gs.OwnedCount(playerID)/3)
	for _, c := range gs.Map.Continents {
		if gs.ContinentOwner(c) == playerID {
			troops += c.Bonus
		}
	}
	return troops
}

// UpdateTroopCount recomputes and caches a player's total garrison by summing
// owned territories. Never tracked incrementally, to avoid drift.
func (gs *GameState) UpdateTroopCount(playerID int) int {
	count := 0
	for tid, owner := range gs.Ownership {
		if owner == playerID {
			count += gs.Troops[tid]
		}
	}
	gs.PlayerByID(playerID).Troops = count
	return count
}

// MoveTroops transfers troops between two territories. This is the raw
// primitive: no validation happens here, callers must pre-validate.
func (gs *GameState) MoveTroops(fromID, toID, numTroops int) {
	gs.Troops[fromID] -= numTroops
	gs.Troops[toID] += numTroops
}

// Transfer reassigns a territory's owner. The garrison is left untouched; a
// capture leaves it at 0 until the mandatory post-capture move restores it.
func (gs *GameState) Transfer(territoryID, playerID int) {
	gs.Ownership[territoryID] = playerID
}

// HasEnemyNeighbor reports whether the territory borders any territory not
// held by the player.
func (gs *GameState) HasEnemyNeighbor(territoryID, playerID int) bool {
	for _, adjID := range gs.Map.Territories[territoryID].AdjacentIDs {
		if gs.Ownership[adjID] != playerID {
			return true
		}
	}
	return false
}

// AreConnected reports whether two territories are linked by a path of
// territories all owned by the player. Just BFS.
func (gs *GameState) AreConnected(fromID, toID, playerID int) bool {
	if fromID == toID {
		return true
	}
	visited := make(map[int]bool)
	queue := []int{fromID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, adjID := range gs.Map.Territories[current].AdjacentIDs {
			if gs.Ownership[adjID] != playerID {
				continue
			}
			if adjID == toID {
				return true
			}
			if !visited[adjID] {
				queue = append(queue, adjID)
			}
		}
	}
	return false
}

// Eliminate removes the loser from the roster exactly once and transfers
// their entire hand to the player who caused the elimination. The active
// index shifts down when the removed seat precedes it.
func (gs *GameState) Eliminate(loserID, winnerID int) {
	idx := gs.RosterIndex(loserID)
	if idx < 0 {
		return
	}
	gs.Roster = append(gs.Roster[:idx], gs.Roster[idx+1:]...)
	if idx < gs.Active {
		gs.Active--
	} else if gs.Active >= len(gs.Roster) {
		gs.Active = 0
	}

	loser := gs.PlayerByID(loserID)
	winner := gs.PlayerByID(winnerID)
	winner.Hand = append(winner.Hand, loser.Hand...)
	loser.Hand = nil
	gs.Log.Appendf("%s has been eliminated by %s!", loser.Name, winner.Name)
}

// Winner returns the sole surviving player's ID, or 0 while the game is on.
func (gs *GameState) Winner() int {
	if len(gs.Roster) == 1 {
		return gs.Roster[0]
	}
	return 0
}

// ApplyTradeIn removes the set from the player's hand, discards it, credits
// the table bonus to the player's allowance, and puts 2 extra troops on the
// first card (in selection order) whose bound territory the player still
// owns. An invalid set is an internal-consistency fault: upstream callers
// validate before choosing.
func (gs *GameState) ApplyTradeIn(playerID int, set []Card) (int, error) {
	value := SetValue(set)
	if value == 0 {
		return 0, &CardSetError{Reason: fmt.Sprintf("set %v is not tradeable", set)}
	}
	p := gs.PlayerByID(playerID)
	hand, ok := removeCards(p.Hand, set)
	if !ok {
		return 0, &CardSetError{Reason: fmt.Sprintf("player %d does not hold the chosen set", playerID)}
	}
	p.Hand = hand
	gs.Deck.Discard(set...)

	for _, c := range set {
		if c.TerritoryID >= 0 && gs.Ownership[c.TerritoryID] == playerID {
			gs.Troops[c.TerritoryID] += 2
			gs.Log.Appendf("%s placed 2 bonus troops in %s.", p.Name, gs.Map.Territories[c.TerritoryID].Name)
			break
		}
	}

	p.Allowance += value
	return value, nil
}
