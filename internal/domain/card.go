package domain

import (
	"errors"
	"fmt"
)

// Rank identifies one of the fifteen card ranks. Ordinals run from the
// strongest rank down, so a lower ordinal always outranks a higher one.
type Rank int

const (
	BigJoker Rank = iota
	ExtraJoker
	Ace
	King
	Queen
	Jack
	Ten
	Nine
	Eight
	Seven
	Six
	Five
	Four
	Three
	Two
)

var rankNames = [...]string{
	"BigJoker", "ExtraJoker", "A", "K", "Q", "J",
	"10", "9", "8", "7", "6", "5", "4", "3", "2",
}

// Valid reports whether r is one of the fifteen playable ranks.
func (r Rank) Valid() bool { return r >= BigJoker && r <= Two }

func (r Rank) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return rankNames[r]
}

// Suit identifies a card suit. NoSuit is the sentinel used when a trick has
// no leading suit yet, i.e. the acting seat is leading.
type Suit int

const (
	NoSuit Suit = iota - 1
	Spades
	Hearts
	Diamonds
	Clubs
)

var suitNames = [...]string{"Spades", "Hearts", "Diamonds", "Clubs"}

// Valid reports whether s is one of the four playable suits.
func (s Suit) Valid() bool { return s >= Spades && s <= Clubs }

func (s Suit) String() string {
	if !s.Valid() {
		if s == NoSuit {
			return "NoSuit"
		}
		return fmt.Sprintf("Suit(%d)", int(s))
	}
	return suitNames[s]
}

var (
	ErrInvalidRank = errors.New("invalid rank")
	ErrInvalidSuit = errors.New("invalid suit")
)

// Card is an immutable rank/suit pair. Two cards with the same rank and
// suit are interchangeable; comparison with == is structural equality.
// Jokers carry Spades as their suit but are never treated as ordinary
// spades when tricks are resolved.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard builds a card, rejecting any rank or suit outside the enumerations.
func NewCard(rank Rank, suit Suit) (Card, error) {
	if !rank.Valid() {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidRank, int(rank))
	}
	if !suit.Valid() {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidSuit, int(suit))
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// CompareRank compares the two cards' ranks three-way: the result is
// negative when c outranks other, zero when the ranks are equal and
// positive when other outranks c.
func (c Card) CompareRank(other Card) int {
	return int(c.Rank) - int(other.Rank)
}

// Outranks reports whether c's rank is strictly stronger than other's.
func (c Card) Outranks(other Card) bool { return c.Rank < other.Rank }

// IsJoker reports whether the card is one of the two jokers.
func (c Card) IsJoker() bool { return c.Rank == BigJoker || c.Rank == ExtraJoker }

func (c Card) String() string { return c.Rank.String() + " of " + c.Suit.String() }
