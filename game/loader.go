package game

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
)

//go:embed maps/*.json
var mapFS embed.FS

// mapDocument is the on-disk map description: a territory table and a
// continent table, all references by name.
type mapDocument struct {
	Territories map[string]struct {
		Continent string   `json:"continent"`
		Neighbors []string `json:"neighbors"`
	} `json:"territories"`
	Continents map[string]struct {
		Bonus       int      `json:"bonus"`
		Territories []string `json:"territories"`
	} `json:"continents"`
}

// LoadMap parses a JSON map description and resolves every neighbor and
// membership name into live territory references. Any dangling name is a
// LoadError; the engine never sees a half-built graph.
func LoadMap(data []byte) (*Map, error) {
	var doc mapDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Ref: "document", Reason: err.Error()}
	}
	if len(doc.Territories) == 0 {
		return nil, &LoadError{Ref: "territories", Reason: "map has no territories"}
	}

	m := NewMap()

	// Iterate names in sorted order so territory and continent IDs are stable
	// across loads of the same document.
	continentNames := sortedKeys(doc.Continents)
	continentIDs := make(map[string]int, len(continentNames))
	for _, name := range continentNames {
		continentIDs[name] = m.AddContinent(name, doc.Continents[name].Bonus)
	}

	for _, name := range sortedKeys(doc.Territories) {
		entry := doc.Territories[name]
		cid, ok := continentIDs[entry.Continent]
		if !ok {
			return nil, &LoadError{Ref: entry.Continent, Reason: fmt.Sprintf("unknown continent for territory %q", name)}
		}
		m.AddTerritory(name, cid)
	}

	for name, entry := range doc.Territories {
		id, _ := m.TerritoryID(name)
		for _, neighbor := range entry.Neighbors {
			nid, ok := m.TerritoryID(neighbor)
			if !ok {
				return nil, &LoadError{Ref: neighbor, Reason: fmt.Sprintf("unknown neighbor of %q", name)}
			}
			m.AddBorder(id, nid)
		}
	}

	for name, entry := range doc.Continents {
		c := m.Continents[continentIDs[name]]
		for _, member := range entry.Territories {
			tid, ok := m.TerritoryID(member)
			if !ok {
				return nil, &LoadError{Ref: member, Reason: fmt.Sprintf("unknown member of continent %q", name)}
			}
			c.TerritoryIDs = append(c.TerritoryIDs, tid)
		}
	}

	return m, nil
}

// LoadBuiltinMap loads one of the maps shipped with the engine, e.g. "classic".
func LoadBuiltinMap(name string) (*Map, error) {
	data, err := mapFS.ReadFile("maps/" + name + ".json")
	if err != nil {
		return nil, &LoadError{Ref: name, Reason: "unknown builtin map"}
	}
	return LoadMap(data)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
