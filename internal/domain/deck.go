package domain

import (
	"errors"
	"fmt"
	"math/rand"
)

// DeckSize is the number of cards in a fresh deck.
const DeckSize = 52

// HandSize is the number of cards dealt to each seat.
const HandSize = 13

var ErrInsufficientCards = errors.New("insufficient cards in deck")

// Deck is the ordered card universe one hand of play is dealt from. It is
// built once per hand, shuffled, then fully consumed by dealing.
type Deck struct {
	cards []Card
}

// NewDeck builds the 52-card deck in deterministic order: ranks Ace down to
// Two in each suit, minus the 2 of Hearts and 2 of Clubs, plus both jokers
// carrying Spades.
func NewDeck() *Deck {
	cards := make([]Card, 0, DeckSize)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Ace; rank <= Two; rank++ {
			if rank == Two && (suit == Hearts || suit == Clubs) {
				// Dropped to make room for the jokers.
				continue
			}
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	cards = append(cards,
		Card{Rank: BigJoker, Suit: Spades},
		Card{Rank: ExtraJoker, Suit: Spades},
	)
	return &Deck{cards: cards}
}

// Shuffle permutes the deck uniformly using the provided source.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns the first n cards. It fails rather than truncate
// when fewer than n cards remain.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrInsufficientCards, n, len(d.cards))
	}
	dealt := append([]Card(nil), d.cards[:n]...)
	d.cards = d.cards[n:]
	return dealt, nil
}

// Remaining reports how many cards have not been dealt yet.
func (d *Deck) Remaining() int { return len(d.cards) }

// Cards returns a copy of the undealt cards in order.
func (d *Deck) Cards() []Card { return append([]Card(nil), d.cards...) }
