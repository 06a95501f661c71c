package game

import "golang.org/x/exp/rand"

type CardKind int

const (
	Infantry CardKind = iota
	Cavalry
	Artillery
	Wild
)

func (k CardKind) String() string {
	switch k {
	case Infantry:
		return "Infantry"
	case Cavalry:
		return "Cavalry"
	case Artillery:
		return "Artillery"
	case Wild:
		return "Wild"
	}
	return "Unknown"
}

// Card is traded in valid sets of 3 for bonus troops. Every non-wild card is
// bound to a territory; wilds carry TerritoryID -1.
type Card struct {
	Kind        CardKind
	TerritoryID int
}

// Deck holds the draw pile and the discard pile. The initial deck has exactly
// one card per territory and no wilds; two wilds are injected on every
// reshuffle.
type Deck struct {
	cards   []Card
	discard []Card
	rng     *rand.Rand
}

// NewDeck builds and shuffles the starting deck, drawing each territory's card
// kind uniformly at random.
func NewDeck(m *Map, rng *rand.Rand) *Deck {
	kinds := []CardKind{Infantry, Cavalry, Artillery}
	d := &Deck{rng: rng}
	for _, t := range m.Territories {
		d.cards = append(d.cards, Card{Kind: kinds[rng.Intn(len(kinds))], TerritoryID: t.ID})
	}
	d.shuffle()
	return d
}

func (d *Deck) shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw takes the top card, reshuffling the discard pile plus exactly two wild
// cards back into the deck when the draw pile is empty. Returns false when
// both piles are empty.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		if len(d.discard) == 0 {
			return Card{}, false
		}
		d.cards = append(d.cards, d.discard...)
		d.discard = nil
		d.cards = append(d.cards,
			Card{Kind: Wild, TerritoryID: -1},
			Card{Kind: Wild, TerritoryID: -1})
		d.shuffle()
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// Discard moves traded-in cards to the discard pile.
func (d *Deck) Discard(cards ...Card) {
	d.discard = append(d.discard, cards...)
}

// Remaining reports the size of the draw pile.
func (d *Deck) Remaining() int { return len(d.cards) }

// Discarded reports the size of the discard pile.
func (d *Deck) Discarded() int { return len(d.discard) }
