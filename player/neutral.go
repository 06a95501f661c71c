package player

import (
	"golang.org/x/exp/rand"

	"risk/game"
)

// Neutral drafts onto a random owned territory and otherwise sits still: it
// never attacks, never regroups, and only trades when forced.
type Neutral struct {
	rng *rand.Rand
}

func NewNeutral(rng *rand.Rand) *Neutral {
	return &Neutral{rng: rng}
}

func (n *Neutral) Draft(gs *game.GameState, playerID int) DraftMove {
	owned := gs.TerritoriesOwnedBy(playerID)
	return DraftMove{
		Territory: owned[n.rng.Intn(len(owned))],
		Troops:    gs.PlayerByID(playerID).Allowance,
	}
}

func (n *Neutral) Attack(gs *game.GameState, playerID int) *AttackMove {
	return nil
}

func (n *Neutral) Fortify(gs *game.GameState, playerID int) *FortifyMove {
	return nil
}

// PostCaptureMove is unreachable for a bot that never attacks, but honors the
// contract by moving the minimum.
func (n *Neutral) PostCaptureMove(gs *game.GameState, playerID, from, to, minTroops, maxTroops int) int {
	return minTroops
}

func (n *Neutral) Trade(gs *game.GameState, playerID int) []game.Card {
	hand := gs.PlayerByID(playerID).Hand
	if len(hand) < game.ForcedTradeHandSize {
		return nil
	}
	return game.FindBestTradeableSet(hand)
}
