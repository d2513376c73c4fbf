package evolution

import "fmt"

// traitFood lists each trait with the food values of its copies.
var traitFood = []struct {
	trait string
	food  []int
}{
	{"carnivore", []int{0, 1, 1, 2}},
	{"ambush", []int{1, 2, 3, 4}},
	{"burrowing", []int{2, 3, 4, 5}},
	{"climbing", []int{1, 2, 3, 4}},
	{"cooperation", []int{2, 3, 4, 5}},
	{"fat-tissue", []int{3, 4, 5, 6}},
	{"foraging", []int{1, 3, 5, 7}},
	{"hard-shell", []int{2, 3, 4, 5}},
	{"horns", []int{1, 2, 3, 4}},
	{"long-neck", []int{4, 5, 6, 7}},
	{"pack-hunting", []int{1, 2, 2, 3}},
	{"warning-call", []int{2, 3, 4, 5}},
}

// DefaultDeck returns the trait deck, unshuffled.
func DefaultDeck() []Card {
	var deck []Card
	for _, t := range traitFood {
		for i, food := range t.food {
			deck = append(deck, Card{
				ID:    fmt.Sprintf("%s-%d", t.trait, i+1),
				Trait: t.trait,
				Food:  food,
			})
		}
	}
	return deck
}

// drawCards moves up to n cards from the top of the shared deck into p's
// hand and returns how many were drawn.
func drawCards(s *State, p *Player, n int) int {
	drawn := 0
	for drawn < n && len(s.Deck) > 0 {
		top := len(s.Deck) - 1
		p.Hand = append(p.Hand, s.Deck[top])
		s.Deck = s.Deck[:top]
		drawn++
	}
	return drawn
}

func takeFromHand(p *Player, index int) Card {
	card := p.Hand[index]
	p.Hand = append(p.Hand[:index:index], p.Hand[index+1:]...)
	return card
}
