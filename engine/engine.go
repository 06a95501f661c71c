// Package engine drives the Draft -> Attack -> Fortify -> End state machine
// for each surviving player in roster order. It is the single writer of the
// game state: policies only read and propose, and every proposal is validated
// before anything mutates.
package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"risk/combat"
	"risk/game"
	"risk/player"
)

// MaxRounds caps runaway games, e.g. between bots that never attack.
const MaxRounds = 500

// MandatoryMoveMin is the minimum troop count of the post-capture move when
// the attacking territory has that many to spare.
const MandatoryMoveMin = 3

// Engine owns the round/phase state machine. Combat, the card economy and the
// world model are only ever mutated from here, one player's turn at a time.
type Engine struct {
	state    *game.GameState
	policies map[int]player.Policy
	roller   combat.Roller
	logger   zerolog.Logger

	cardEarned bool // at most one card per turn regardless of captures
}

// New wires a set-up game state to one policy per seated player.
func New(state *game.GameState, policies map[int]player.Policy, roller combat.Roller, logger zerolog.Logger) (*Engine, error) {
	for _, id := range state.Roster {
		if _, ok := policies[id]; !ok {
			return nil, &game.ConfigurationError{Reason: fmt.Sprintf("no policy for player %d", id)}
		}
	}
	if len(policies) != len(state.Roster) {
		return nil, &game.ConfigurationError{Reason: "policy count does not match player count"}
	}
	return &Engine{
		state:    state,
		policies: policies,
		roller:   roller,
		logger:   logger.With().Str("game", uuid.NewString()).Logger(),
	}, nil
}

// State exposes the live game state for inspection between turns.
func (e *Engine) State() *game.GameState { return e.state }

// Run plays rounds until one player owns every territory and returns the
// winner's ID, or 0 if the round cap was hit first.
func (e *Engine) Run() (int, error) {
	gs := e.state
	for gs.Winner() == 0 && gs.Round < MaxRounds {
		if err := e.playRound(); err != nil {
			return 0, err
		}
	}
	winner := gs.Winner()
	if winner != 0 {
		name := gs.PlayerByID(winner).Name
		gs.Log.Appendf("%s wins the game!", name)
		e.logger.Info().Str("winner", name).Int("rounds", gs.Round).Msg("game over")
	} else {
		e.logger.Warn().Int("rounds", gs.Round).Msg("round cap reached without a winner")
	}
	return winner, nil
}

// playRound walks a snapshot of the round-start roster. The live roster stays
// the source of truth: players eliminated mid-round are skipped when their
// slot comes up.
func (e *Engine) playRound() error {
	gs := e.state
	gs.Round++
	order := append([]int(nil), gs.Roster...)
	for _, id := range order {
		if gs.Winner() != 0 {
			return nil
		}
		if !gs.InRoster(id) {
			continue
		}
		gs.Active = gs.RosterIndex(id)
		if err := e.playTurn(id); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) playTurn(id int) error {
	gs := e.state
	p := gs.PlayerByID(id)
	gs.Log.Appendf("--- Round %d: %s's turn ---", gs.Round, p.Name)
	e.cardEarned = false

	// Draft phase. Continent owners are implicitly recomputed here via the
	// allowance derivation.
	p.Allowance = gs.ComputeAllowance(id)
	gs.Log.Appendf("[DRAFT] %s received %d troops (%d territories).", p.Name, p.Allowance, gs.OwnedCount(id))
	if err := e.runTrades(id); err != nil {
		return err
	}
	e.runDraft(id)

	// Attack phase.
	if err := e.runAttacks(id); err != nil {
		return err
	}
	if gs.Winner() != 0 {
		return nil
	}

	// Fortify phase.
	e.runFortify(id)

	// End of turn.
	gs.UpdateTroopCount(id)
	if e.cardEarned {
		if card, ok := gs.Deck.Draw(); ok {
			p.Hand = append(p.Hand, card)
			gs.Log.Appendf("%s drew a card.", p.Name)
		}
	}
	gs.Log.Appendf("%s ends the turn with %d troops.", p.Name, p.Troops)
	return nil
}

// runTrades lets the policy trade card sets. Below the forced threshold the
// policy may hold; at or above it the trade happens regardless, falling back
// to the best set when the policy's pick is missing or invalid.
func (e *Engine) runTrades(id int) error {
	gs := e.state
	p := gs.PlayerByID(id)
	for len(p.Hand) >= 3 {
		forced := len(p.Hand) >= game.ForcedTradeHandSize
		set := e.policies[id].Trade(gs, id)
		if set == nil {
			if !forced {
				return nil
			}
			set = game.FindBestTradeableSet(p.Hand)
		} else if !game.IsValidSet(set) || !game.HandContains(p.Hand, set) {
			e.rejectMove(id, "trade", &game.InvalidMoveError{
				Player: id,
				Reason: "proposed card set is not a valid subset of the hand",
			})
			if !forced {
				return nil
			}
			set = game.FindBestTradeableSet(p.Hand)
		}
		if set == nil {
			// Unreachable: five cards always contain a valid set.
			return &game.CardSetError{Reason: fmt.Sprintf("no tradeable set in an oversized hand of %d", len(p.Hand))}
		}
		bonus, err := gs.ApplyTradeIn(id, set)
		if err != nil {
			return err
		}
		gs.Log.Appendf("%s traded a card set for %d troops.", p.Name, bonus)
		e.logger.Debug().Int("player", id).Int("bonus", bonus).Msg("card set traded")
	}
	return nil
}

// runDraft places reinforcements until the allowance is spent. An invalid
// proposal ends the phase without mutating anything.
func (e *Engine) runDraft(id int) {
	gs := e.state
	p := gs.PlayerByID(id)
	for p.Allowance > 0 {
		move := e.policies[id].Draft(gs, id)
		if err := e.validateDraft(id, move); err != nil {
			e.rejectMove(id, "draft", err)
			return
		}
		gs.Troops[move.Territory] += move.Troops
		p.Allowance -= move.Troops
		gs.Log.Appendf("%s placed %d troops in %s.", p.Name, move.Troops, gs.Map.Territories[move.Territory].Name)
	}
}

func (e *Engine) validateDraft(id int, move player.DraftMove) error {
	gs := e.state
	if move.Territory < 0 || move.Territory >= len(gs.Ownership) {
		return &game.InvalidMoveError{Player: id, Reason: fmt.Sprintf("draft territory %d does not exist", move.Territory)}
	}
	if gs.Ownership[move.Territory] != id {
		return &game.InvalidMoveError{Player: id, Reason: fmt.Sprintf("draft into %s which the player does not own", gs.Map.Territories[move.Territory].Name)}
	}
	if allowance := gs.PlayerByID(id).Allowance; move.Troops < 1 || move.Troops > allowance {
		return &game.InvalidMoveError{Player: id, Reason: fmt.Sprintf("draft amount %d outside [1, %d]", move.Troops, allowance)}
	}
	return nil
}

// runAttacks invokes the policy repeatedly. Each proposed battle fully
// resolves (garrisons, capture, elimination, victory) before the next call,
// so the policy always observes a consistent post-battle world.
func (e *Engine) runAttacks(id int) error {
	gs := e.state
	for gs.Winner() == 0 {
		move := e.policies[id].Attack(gs, id)
		if move == nil {
			return nil
		}
		if err := e.validateAttack(id, move); err != nil {
			e.rejectMove(id, "attack", err)
			return nil
		}
		if err := e.resolveAttack(id, move); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) validateAttack(id int, move *player.AttackMove) error {
	gs := e.state
	if move.From < 0 || move.From >= len(gs.Ownership) || move.To < 0 || move.To >= len(gs.Ownership) {
		return &game.InvalidMoveError{Player: id, Reason: "attack references a territory that does not exist"}
	}
	if gs.Ownership[move.From] != id {
		return &game.InvalidMoveError{Player: id, Reason: fmt.Sprintf("attack from %s which the player does not own", gs.Map.Territories[move.From].Name)}
	}
	if gs.Ownership[move.To] == id {
		return &game.InvalidMoveError{Player: id, Reason: fmt.Sprintf("attack against own territory %s", gs.Map.Territories[move.To].Name)}
	}
	if !gs.Map.AreAdjacent(move.From, move.To) {
		return &game.InvalidMoveError{Player: id, Reason: fmt.Sprintf("%s and %s are not adjacent", gs.Map.Territories[move.From].Name, gs.Map.Territories[move.To].Name)}
	}
	if gs.Troops[move.From] < 2 {
		return &game.InvalidMoveError{Player: id, Reason: fmt.Sprintf("attack from %s with garrison below 2", gs.Map.Territories[move.From].Name)}
	}
	if move.Troops < 1 || move.Troops > gs.Troops[move.From]-1 {
		return &game.InvalidMoveError{Player: id, Reason: fmt.Sprintf("attack commits %d troops outside [1, %d]", move.Troops, gs.Troops[move.From]-1)}
	}
	return nil
}

func (e *Engine) resolveAttack(id int, move *player.AttackMove) error {
	gs := e.state
	defenderID := gs.Ownership[move.To]
	fromName := gs.Map.Territories[move.From].Name
	toName := gs.Map.Territories[move.To].Name

	result, err := combat.ResolveBattle(e.roller, move.Troops, gs.Troops[move.To])
	if err != nil {
		return err // unreachable after validation
	}

	// Survivors return to the source; the committed losses come out of it.
	gs.Troops[move.From] -= move.Troops - result.Attackers
	gs.Troops[move.To] = result.Defenders
	gs.Log.Appendf("%s attacked %s from %s: %d attackers and %d defenders remain.",
		gs.PlayerByID(id).Name, toName, fromName, result.Attackers, result.Defenders)

	if result.Defenders > 0 {
		return nil
	}

	gs.Transfer(move.To, id)
	e.cardEarned = true
	gs.Log.Appendf("%s captured %s.", gs.PlayerByID(id).Name, toName)
	e.logger.Debug().Int("player", id).Str("territory", toName).Msg("capture")

	// The mandatory move happens before any elimination or victory handling:
	// a game-winning capture must not leave the final territory at garrison 0.
	e.applyPostCaptureMove(id, move.From, move.To)

	if gs.OwnedCount(defenderID) == 0 {
		gs.Eliminate(defenderID, id)
		e.logger.Info().Int("eliminated", defenderID).Int("by", id).Msg("player eliminated")
		if gs.Winner() != 0 {
			return nil
		}
		// The inherited hand may overflow the forced-trade threshold; trade
		// down and let the attacker place the freed allowance right away.
		if err := e.runTrades(id); err != nil {
			return err
		}
		e.runDraft(id)
	}
	return nil
}

// applyPostCaptureMove moves the mandatory garrison into a just-captured
// territory. At least MandatoryMoveMin troops must follow when the source can
// spare them; anything less moves automatically without consulting the policy.
func (e *Engine) applyPostCaptureMove(id, from, to int) {
	gs := e.state
	available := gs.Troops[from] - 1
	amount := available
	if available > MandatoryMoveMin {
		amount = e.policies[id].PostCaptureMove(gs, id, from, to, MandatoryMoveMin, available)
		if amount < MandatoryMoveMin {
			amount = MandatoryMoveMin
		}
		if amount > available {
			amount = available
		}
	}
	gs.MoveTroops(from, to, amount)
	gs.Log.Appendf("%s moved %d troops into %s.", gs.PlayerByID(id).Name, amount, gs.Map.Territories[to].Name)
}

// runFortify asks the policy once for a voluntary regroup; any answer ends
// the phase.
func (e *Engine) runFortify(id int) {
	gs := e.state
	move := e.policies[id].Fortify(gs, id)
	if move == nil {
		return
	}
	if err := e.validateFortify(id, move); err != nil {
		e.rejectMove(id, "fortify", err)
		return
	}
	gs.MoveTroops(move.From, move.To, move.Troops)
	gs.Log.Appendf("%s fortified %s with %d troops from %s.", gs.PlayerByID(id).Name,
		gs.Map.Territories[move.To].Name, move.Troops, gs.Map.Territories[move.From].Name)
}

func (e *Engine) validateFortify(id int, move *player.FortifyMove) error {
	gs := e.state
	if move.From < 0 || move.From >= len(gs.Ownership) || move.To < 0 || move.To >= len(gs.Ownership) {
		return &game.InvalidMoveError{Player: id, Reason: "fortify references a territory that does not exist"}
	}
	if gs.Ownership[move.From] != id || gs.Ownership[move.To] != id {
		return &game.InvalidMoveError{Player: id, Reason: "fortify between territories the player does not own"}
	}
	if move.From == move.To {
		return &game.InvalidMoveError{Player: id, Reason: "fortify source and destination are the same"}
	}
	if !gs.AreConnected(move.From, move.To, id) {
		return &game.InvalidMoveError{Player: id, Reason: fmt.Sprintf("%s and %s are not connected through owned territory", gs.Map.Territories[move.From].Name, gs.Map.Territories[move.To].Name)}
	}
	if move.Troops < 1 || move.Troops > gs.Troops[move.From]-1 {
		return &game.InvalidMoveError{Player: id, Reason: fmt.Sprintf("fortify moves %d troops outside [1, %d]", move.Troops, gs.Troops[move.From]-1)}
	}
	return nil
}

// rejectMove records a phase-local invalid move. State is untouched; the
// calling phase ends. Internal faults never come through here, so bot
// misbehavior stays distinguishable from engine bugs.
func (e *Engine) rejectMove(id int, phase string, err error) {
	e.state.Log.Appendf("%s proposed an invalid %s move: %v", e.state.PlayerByID(id).Name, phase, err)
	e.logger.Warn().Int("player", id).Str("phase", phase).Err(err).Msg("move rejected")
}
