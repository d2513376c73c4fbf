package dominion

// Omniscient is the viewer that sees every zone. Used for checksums and
// replays, never for players.
const Omniscient = "*"

// PlayerView is a player's zones as seen by a viewer. Hidden zones carry
// only their size.
type PlayerView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Hand         []string `json:"hand,omitempty"`
	Deck         []string `json:"deck,omitempty"`
	Discard      []string `json:"discard,omitempty"`
	InPlay       []string `json:"in_play"`
	HandCount    int      `json:"hand_count"`
	DeckCount    int      `json:"deck_count"`
	DiscardCount int      `json:"discard_count"`
	Actions      int      `json:"actions"`
	Buys         int      `json:"buys"`
	Treasure     int      `json:"treasure"`
	Victory      int      `json:"victory"`
}

// PileView is a supply pile.
type PileView struct {
	Card  string `json:"card"`
	Cost  int    `json:"cost"`
	Count int    `json:"count"`
}

// StateView is the state as seen by a viewer.
type StateView struct {
	Players      []PlayerView `json:"players"`
	PlayArea     []string     `json:"play_area"`
	Trash        []string     `json:"trash"`
	Supply       []PileView   `json:"supply"`
	Phases       []string     `json:"phases"`
	EndTurn      bool         `json:"end_turn"`
	CustomAction string       `json:"custom_action,omitempty"`
	GainLimit    int          `json:"gain_limit,omitempty"`
}

// View renders s for viewer. A player sees their own hand and discard;
// decks are visible only to Omniscient.
func View(s *State, viewer string) StateView {
	v := StateView{
		PlayArea:  cardIDs(s.PlayArea),
		Trash:     cardIDs(s.Trash),
		EndTurn:   s.EndTurn,
		GainLimit: s.GainLimit,
	}
	for _, p := range s.Phases() {
		v.Phases = append(v.Phases, p.String())
	}
	if s.Armed != nil {
		v.CustomAction = s.Armed.Label
	}
	for _, pile := range s.Supply {
		v.Supply = append(v.Supply, PileView{Card: pile.Card.ID, Cost: pile.Card.Cost, Count: pile.Count})
	}
	for _, p := range s.Players {
		pv := PlayerView{
			ID:           p.ID,
			Name:         p.Name,
			InPlay:       cardIDs(p.InPlay),
			HandCount:    len(p.Hand),
			DeckCount:    len(p.Deck),
			DiscardCount: len(p.Discard),
			Actions:      p.Actions,
			Buys:         p.Buys,
			Treasure:     p.Treasure,
			Victory:      p.Victory,
		}
		if viewer == p.ID || viewer == Omniscient {
			pv.Hand = cardIDs(p.Hand)
			pv.Discard = cardIDs(p.Discard)
		}
		if viewer == Omniscient {
			pv.Deck = cardIDs(p.Deck)
		}
		v.Players = append(v.Players, pv)
	}
	return v
}

func cardIDs(cards []*Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}
