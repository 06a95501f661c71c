package game

// Territory is a node in the conquest graph. Ownership and garrison counts are
// dynamic and live in GameState, indexed by territory ID.
type Territory struct {
	ID          int
	Name        string
	ContinentID int
	AdjacentIDs []int // IDs of territories reachable for attack or fortification
}

// Continent is a fixed set of territories granting a bonus when fully owned.
type Continent struct {
	ID           int
	Name         string
	Bonus        int
	TerritoryIDs []int
}

// Map represents the static game map. It is built once by the loader and never
// mutated afterwards.
type Map struct {
	Territories []*Territory
	Continents  []*Continent
	idByName    map[string]int
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{
		idByName: make(map[string]int),
	}
}

// AddTerritory appends a territory and returns its assigned ID.
func (m *Map) AddTerritory(name string, continentID int) int {
	id := len(m.Territories)
	m.Territories = append(m.Territories, &Territory{
		ID:          id,
		Name:        name,
		ContinentID: continentID,
	})
	m.idByName[name] = id
	return id
}

// AddContinent appends a continent and returns its assigned ID.
func (m *Map) AddContinent(name string, bonus int) int {
	id := len(m.Continents)
	m.Continents = append(m.Continents, &Continent{
		ID:    id,
		Name:  name,
		Bonus: bonus,
	})
	return id
}

// AddBorder adds a bidirectional border between two territories.
func (m *Map) AddBorder(id1, id2 int) {
	if !contains(m.Territories[id1].AdjacentIDs, id2) {
		m.Territories[id1].AdjacentIDs = append(m.Territories[id1].AdjacentIDs, id2)
	}
	if !contains(m.Territories[id2].AdjacentIDs, id1) {
		m.Territories[id2].AdjacentIDs = append(m.Territories[id2].AdjacentIDs, id1)
	}
}

// TerritoryID resolves a territory name to its ID.
func (m *Map) TerritoryID(name string) (int, bool) {
	id, ok := m.idByName[name]
	return id, ok
}

// AreAdjacent checks if two territories share a border.
func (m *Map) AreAdjacent(id1, id2 int) bool {
	return contains(m.Territories[id1].AdjacentIDs, id2)
}

// contains checks if a slice contains a specific item. (avoid duplicate borders etc..)
func contains(slice []int, item int) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}
