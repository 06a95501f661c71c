package game

// Trade-in values for valid 3-card sets.
const (
	bonusInfantry  = 4
	bonusCavalry   = 6
	bonusArtillery = 8
	bonusOneOfEach = 10
)

// ForcedTradeHandSize is the hand size at which trading becomes mandatory.
// Five cards always contain a valid set by pigeonhole.
const ForcedTradeHandSize = 5

// SetValue returns the bonus troops a 3-card set is worth, or 0 if the set is
// not valid. When wilds make several readings possible the highest one counts:
// three of a kind is valued by its concrete kind, a set with two or more wilds
// is valued as one-of-each.
func SetValue(set []Card) int {
	if len(set) != 3 {
		return 0
	}
	var counts [4]int
	for _, c := range set {
		counts[c.Kind]++
	}
	wilds := counts[Wild]
	if wilds >= 2 {
		return bonusOneOfEach
	}
	if counts[Infantry] > 0 && counts[Cavalry] > 0 && counts[Artillery] > 0 {
		return bonusOneOfEach
	}
	switch {
	case counts[Infantry]+wilds == 3:
		return bonusInfantry
	case counts[Cavalry]+wilds == 3:
		return bonusCavalry
	case counts[Artillery]+wilds == 3:
		return bonusArtillery
	}
	if wilds == 1 {
		distinct := 0
		for k := Infantry; k <= Artillery; k++ {
			if counts[k] > 0 {
				distinct++
			}
		}
		if distinct == 2 {
			return bonusOneOfEach
		}
	}
	return 0
}

// IsValidSet reports whether three cards form a tradeable set.
func IsValidSet(set []Card) bool {
	return SetValue(set) > 0
}

// FindBestTradeableSet enumerates every 3-card subset of the hand in index
// order (i<j<k) and returns the highest-valued valid one, or nil if the hand
// holds no set. Ties keep the first subset found in enumeration order.
func FindBestTradeableSet(hand []Card) []Card {
	var best []Card
	bestValue := 0
	for i := 0; i < len(hand); i++ {
		for j := i + 1; j < len(hand); j++ {
			for k := j + 1; k < len(hand); k++ {
				set := []Card{hand[i], hand[j], hand[k]}
				if v := SetValue(set); v > bestValue {
					best = set
					bestValue = v
				}
			}
		}
	}
	return best
}

// HasTradeableSet reports whether the hand contains at least one valid set.
// Hands of five or more always do.
func HasTradeableSet(hand []Card) bool {
	if len(hand) >= ForcedTradeHandSize {
		return true
	}
	return FindBestTradeableSet(hand) != nil
}

// HandContains checks that every card of the set is present in the hand,
// respecting multiplicity.
func HandContains(hand, set []Card) bool {
	used := make([]bool, len(hand))
	for _, c := range set {
		found := false
		for i, h := range hand {
			if !used[i] && h == c {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// removeCards returns the hand with one copy of each set card removed.
func removeCards(hand, set []Card) ([]Card, bool) {
	out := append([]Card(nil), hand...)
	for _, c := range set {
		found := false
		for i, h := range out {
			if h == c {
				out = append(out[:i], out[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return hand, false
		}
	}
	return out, true
}
