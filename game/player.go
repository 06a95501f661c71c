package game

import "fmt"

// Player is one seat at the table. The owned-territory set is derived from
// GameState.Ownership on demand; Troops is a cached total recomputed at the
// end of each turn rather than tracked incrementally.
type Player struct {
	ID        int
	Name      string
	Hand      []Card
	Troops    int // cached total garrison, see GameState.UpdateTroopCount
	Allowance int // reinforcements left to place during the current draft phase
}

func (p *Player) String() string {
	return fmt.Sprintf("%s has %d troops and %d cards", p.Name, p.Troops, len(p.Hand))
}
