package player

import "risk/game"

// Greedy is the reference bot: no lookahead, always presses the largest local
// advantage. It drafts onto its strongest frontier territory, attacks from its
// strongest eligible source into that source's weakest beatable neighbor, and
// regroups its biggest idle garrison toward the front.
type Greedy struct{}

func NewGreedy() *Greedy {
	return &Greedy{}
}

// Draft targets the owned territory with the largest garrison that can still
// attack, falling back to the largest garrison overall.
func (g *Greedy) Draft(gs *game.GameState, playerID int) DraftMove {
	best, bestFrontier := -1, -1
	for _, tid := range gs.TerritoriesOwnedBy(playerID) {
		if best == -1 || gs.Troops[tid] > gs.Troops[best] {
			best = tid
		}
		if gs.HasEnemyNeighbor(tid, playerID) &&
			(bestFrontier == -1 || gs.Troops[tid] > gs.Troops[bestFrontier]) {
			bestFrontier = tid
		}
	}
	target := bestFrontier
	if target == -1 {
		target = best
	}
	return DraftMove{
		Territory: target,
		Troops:    gs.PlayerByID(playerID).Allowance,
	}
}

// Attack picks the strongest eligible source (garrison > 2 with an enemy
// neighbor) and its weakest enemy neighbor with garrison below source-1,
// committing everything but one troop. It stops when no such pair exists; the
// engine re-invokes it after each resolved battle.
func (g *Greedy) Attack(gs *game.GameState, playerID int) *AttackMove {
	from := -1
	for _, tid := range gs.TerritoriesOwnedBy(playerID) {
		if gs.Troops[tid] <= 2 || !gs.HasEnemyNeighbor(tid, playerID) {
			continue
		}
		if from == -1 || gs.Troops[tid] > gs.Troops[from] {
			from = tid
		}
	}
	if from == -1 {
		return nil
	}

	to := -1
	for _, adjID := range gs.Map.Territories[from].AdjacentIDs {
		if gs.Ownership[adjID] == playerID {
			continue
		}
		if gs.Troops[adjID] >= gs.Troops[from]-1 {
			continue
		}
		if to == -1 || gs.Troops[adjID] < gs.Troops[to] {
			to = adjID
		}
	}
	if to == -1 {
		return nil
	}
	return &AttackMove{From: from, To: to, Troops: gs.Troops[from] - 1}
}

// Fortify moves the full surplus from the strongest territory with no
// attackable neighbor into the strongest territory that can still attack.
// Sources in a pocket with no owned path to the front are skipped, as are
// sources with nothing to spare.
func (g *Greedy) Fortify(gs *game.GameState, playerID int) *FortifyMove {
	front := -1
	for _, tid := range gs.TerritoriesOwnedBy(playerID) {
		if gs.HasEnemyNeighbor(tid, playerID) &&
			(front == -1 || gs.Troops[tid] > gs.Troops[front]) {
			front = tid
		}
	}
	if front == -1 {
		return nil
	}

	idle := -1
	for _, tid := range gs.TerritoriesOwnedBy(playerID) {
		if gs.HasEnemyNeighbor(tid, playerID) || gs.Troops[tid] <= 1 {
			continue
		}
		if !gs.AreConnected(tid, front, playerID) {
			continue
		}
		if idle == -1 || gs.Troops[tid] > gs.Troops[idle] {
			idle = tid
		}
	}
	if idle == -1 {
		return nil
	}
	return &FortifyMove{From: idle, To: front, Troops: gs.Troops[idle] - 1}
}

// PostCaptureMove pushes the maximum into the captured territory.
func (g *Greedy) PostCaptureMove(gs *game.GameState, playerID, from, to, minTroops, maxTroops int) int {
	return maxTroops
}

// Trade always offers the highest-value valid set when one exists.
func (g *Greedy) Trade(gs *game.GameState, playerID int) []game.Card {
	return game.FindBestTradeableSet(gs.PlayerByID(playerID).Hand)
}
