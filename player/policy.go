// Package player defines the decision-policy seam the turn engine drives
// through, plus the scripted bots that implement it. Policies only read the
// game state and propose moves; the engine owns all mutation.
package player

import "risk/game"

// DraftMove places reinforcements on an owned territory.
type DraftMove struct {
	Territory int
	Troops    int
}

// AttackMove proposes one assault from an owned territory into an adjacent
// enemy territory, committing between 1 and garrison-1 troops.
type AttackMove struct {
	From   int
	To     int
	Troops int
}

// FortifyMove shifts troops between two owned, connected territories.
type FortifyMove struct {
	From   int
	To     int
	Troops int
}

// Policy decides the acting player's moves for every phase of a turn.
type Policy interface {
	// Draft returns where to place reinforcements and how many, up to the
	// player's remaining allowance. Invoked repeatedly until the allowance is
	// spent.
	Draft(gs *game.GameState, playerID int) DraftMove

	// Attack proposes the next assault, or nil to end the attack phase. It is
	// called again after every fully resolved battle, so each call sees a
	// consistent post-battle world.
	Attack(gs *game.GameState, playerID int) *AttackMove

	// Fortify proposes the single voluntary regroup move, or nil to skip.
	Fortify(gs *game.GameState, playerID int) *FortifyMove

	// PostCaptureMove picks how many troops follow a capture from from into
	// to, within [minTroops, maxTroops]. The engine only asks when there is a
	// choice to make.
	PostCaptureMove(gs *game.GameState, playerID, from, to, minTroops, maxTroops int) int

	// Trade returns a valid 3-card set from the player's hand, or nil to
	// hold. Holding is not honored once the hand reaches the forced-trade
	// threshold; the engine then trades the best set on the player's behalf.
	Trade(gs *game.GameState, playerID int) []game.Card
}
