package deck

// Hand represents a collection of cards
type Hand []*Card

func (h Hand) Len() int {
	return len(h)
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(card *Card) {
	*h = append(*h, card)
}

// HasCard returns true if the hand contains the card with the given ID
func (h Hand) HasCard(id int) bool {
	return h.Find(id) != nil
}

// Find returns the card with the given ID or nil if the hand does not hold it
func (h Hand) Find(id int) *Card {
	for _, c := range h {
		if c.ID == id {
			return c
		}
	}

	return nil
}

// Remove removes the card with the given ID and returns it
// nil is returned if the hand does not hold the card
func (h *Hand) Remove(id int) *Card {
	for i, c := range *h {
		if c.ID == id {
			newHand := make(Hand, 0, len(*h))
			newHand = append(newHand, (*h)[:i]...)
			newHand = append(newHand, (*h)[i+1:]...)
			*h = newHand
			return c
		}
	}

	return nil
}

// FirstOfRank returns the first card of the rank in hand order, or nil
func (h Hand) FirstOfRank(rank Rank) *Card {
	for _, c := range h {
		if c.Rank == rank {
			return c
		}
	}

	return nil
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
