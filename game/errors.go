package game

import "fmt"

// InvalidMoveError reports a policy move that violates ownership, adjacency or
// troop-count constraints. It is the only error kind expected during normal bot
// play: the engine rejects the move without mutating state and ends the phase.
// Everything else in the taxonomy is fatal for its operation.
type InvalidMoveError struct {
	Player int
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move by player %d: %s", e.Player, e.Reason)
}

// CardSetError reports an invalid 3-card set reaching trade-in. Callers are
// expected to pre-validate sets, so this is an internal-consistency fault.
type CardSetError struct {
	Reason string
}

func (e *CardSetError) Error() string {
	return "card set: " + e.Reason
}

// ConfigurationError reports an unsupported game setup, such as a player count
// outside the starting-army table. Fatal before any turn begins.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Reason
}

// LoadError reports an unresolved name reference in a map description. Fatal
// before the world can be constructed.
type LoadError struct {
	Ref    string
	Reason string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("map load: %s: %s", e.Ref, e.Reason)
}
