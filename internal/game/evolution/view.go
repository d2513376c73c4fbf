package evolution

// Omniscient is the viewer that sees every zone.
const Omniscient = "*"

// SpeciesView is a species as rendered for any viewer.
type SpeciesView struct {
	Population int      `json:"population"`
	BodySize   int      `json:"body_size"`
	Food       int      `json:"food"`
	Traits     []string `json:"traits"`
}

// PlayerView is a player as seen by a viewer.
type PlayerView struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Hand            []string      `json:"hand,omitempty"`
	HandCount       int           `json:"hand_count"`
	Selected        string        `json:"selected,omitempty"`
	SelectedSpecies int           `json:"selected_species"`
	Species         []SpeciesView `json:"species"`
	Food            int           `json:"food"`
}

// StateView is the state as seen by a viewer.
type StateView struct {
	Players      []PlayerView `json:"players"`
	Deck         []string     `json:"deck,omitempty"`
	DeckCount    int          `json:"deck_count"`
	DiscardCount int          `json:"discard_count"`
	FoodCards    []string     `json:"food_cards,omitempty"`
	FoodPlayed   int          `json:"food_played"`
	WateringHole int          `json:"watering_hole"`
	EndTurn      bool         `json:"end_turn"`
	Exhausted    bool         `json:"exhausted"`
}

// View renders s for viewer. Hands and the selected card are private to
// their owner; the deck order and the face-down food cards only to
// Omniscient.
func View(s *State, viewer string) StateView {
	v := StateView{
		DeckCount:    len(s.Deck),
		DiscardCount: len(s.Discard),
		FoodPlayed:   len(s.FoodCards),
		WateringHole: s.WateringHole,
		EndTurn:      s.EndTurn,
		Exhausted:    s.Exhausted,
	}
	if viewer == Omniscient {
		v.Deck = cardIDs(s.Deck)
		v.FoodCards = cardIDs(s.FoodCards)
	}
	for _, p := range s.Players {
		pv := PlayerView{
			ID:              p.ID,
			Name:            p.Name,
			HandCount:       len(p.Hand),
			SelectedSpecies: p.SelectedSpecies,
			Food:            p.Food,
		}
		if viewer == p.ID || viewer == Omniscient {
			pv.Hand = cardIDs(p.Hand)
			if p.Selected != nil {
				pv.Selected = p.Selected.ID
			}
		}
		for _, sp := range p.Species {
			pv.Species = append(pv.Species, SpeciesView{
				Population: sp.Population,
				BodySize:   sp.BodySize,
				Food:       sp.Food,
				Traits:     traitNames(sp.Traits),
			})
		}
		v.Players = append(v.Players, pv)
	}
	return v
}

func cardIDs(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func traitNames(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Trait
	}
	return out
}
