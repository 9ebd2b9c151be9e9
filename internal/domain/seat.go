package domain

import "fmt"

// NumSeats is the number of playing positions.
const NumSeats = 4

// Seat identifies one of the four playing positions, numbered in rotation
// order: South acts first in a fresh hand, then West, North, East.
type Seat int

const (
	SeatSouth Seat = iota
	SeatWest
	SeatNorth
	SeatEast
)

var seatNames = [...]string{"South", "West", "North", "East"}

// Valid reports whether s is one of the four seats.
func (s Seat) Valid() bool { return s >= SeatSouth && s < NumSeats }

func (s Seat) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Seat(%d)", int(s))
	}
	return seatNames[s]
}

// Next returns the seat that acts after s in the fixed rotation.
func (s Seat) Next() Seat { return (s + 1) % NumSeats }

// Partner returns the seat partnered with s: partners sit across from each
// other, two positions apart in the rotation.
func (s Seat) Partner() Seat { return (s + 2) % NumSeats }

// Team returns the partnership s belongs to.
func (s Seat) Team() Team { return Team(s % 2) }

// NumTeams is the number of partnerships.
const NumTeams = 2

// Team identifies one of the two fixed partnerships of opposite seats.
type Team int

const (
	TeamNorthSouth Team = iota
	TeamEastWest
)

func (t Team) String() string {
	switch t {
	case TeamNorthSouth:
		return "North/South"
	case TeamEastWest:
		return "East/West"
	default:
		return fmt.Sprintf("Team(%d)", int(t))
	}
}
