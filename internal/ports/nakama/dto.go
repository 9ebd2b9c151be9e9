package nakama

import (
	"fmt"

	"spades/internal/domain"
)

// CardDTO is the wire form of a card: rank names as displayed ("A", "10",
// "BigJoker") and single-letter suits.
type CardDTO struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"` // "S","H","D","C"
}

var suitLetters = map[domain.Suit]string{
	domain.Spades:   "S",
	domain.Hearts:   "H",
	domain.Diamonds: "D",
	domain.Clubs:    "C",
}

var (
	suitsByLetter = map[string]domain.Suit{}
	ranksByName   = map[string]domain.Rank{}
)

func init() {
	for s, letter := range suitLetters {
		suitsByLetter[letter] = s
	}
	for r := domain.BigJoker; r <= domain.Two; r++ {
		ranksByName[r.String()] = r
	}
}

func cardToDTO(c domain.Card) CardDTO {
	return CardDTO{Rank: c.Rank.String(), Suit: suitLetters[c.Suit]}
}

func cardFromDTO(d CardDTO) (domain.Card, error) {
	rank, ok := ranksByName[d.Rank]
	if !ok {
		return domain.Card{}, fmt.Errorf("%w: %q", domain.ErrInvalidRank, d.Rank)
	}
	suit, ok := suitsByLetter[d.Suit]
	if !ok {
		return domain.Card{}, fmt.Errorf("%w: %q", domain.ErrInvalidSuit, d.Suit)
	}
	return domain.NewCard(rank, suit)
}

func cardsToDTO(cards []domain.Card) []CardDTO {
	out := make([]CardDTO, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardToDTO(c))
	}
	return out
}

// PlayDTO pairs a seat with the card it played.
type PlayDTO struct {
	Seat int     `json:"seat"`
	Card CardDTO `json:"card"`
}

// PlayCardRequest is the OpPlayCard client payload.
type PlayCardRequest struct {
	Card CardDTO `json:"card"`
}

type PlayerJoinedPayload struct {
	UserID string `json:"user_id"`
	Seat   int    `json:"seat"`
	Owner  bool   `json:"owner"`
}

type PlayerLeftPayload struct {
	UserID string `json:"user_id"`
	Seat   int    `json:"seat"`
}

type HandStartedPayload struct {
	Leader int `json:"leader"`
}

type HandDealtPayload struct {
	Seat  int       `json:"seat"`
	Cards []CardDTO `json:"cards"`
}

type CardPlayedPayload struct {
	Seat     int     `json:"seat"`
	Card     CardDTO `json:"card"`
	NextSeat int     `json:"next_seat"`
}

type TrumpBrokenPayload struct {
	Seat int     `json:"seat"`
	Card CardDTO `json:"card"`
}

type TrickResolvedPayload struct {
	WinningSeat int       `json:"winning_seat"`
	WinningCard CardDTO   `json:"winning_card"`
	Plays       []PlayDTO `json:"plays"`
}

type BooksUpdatedPayload struct {
	NorthSouth int `json:"north_south"`
	EastWest   int `json:"east_west"`
}

type HandEndedPayload struct {
	NorthSouth int `json:"north_south"`
	EastWest   int `json:"east_west"`
}

type RejectedPayload struct {
	Reason string `json:"reason"`
}

// Label is the match label advertised for quick-match queries.
type Label struct {
	Open  bool   `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}
