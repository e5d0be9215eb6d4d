package domain

// Seat is one of the four fixed table positions, in cyclic turn order.
type Seat int

// NumSeats is the fixed table size.
const NumSeats = 4

// Next returns the seat acting after s in turn order.
func (s Seat) Next() Seat {
	return (s + 1) % NumSeats
}

// Partner returns the seat across the table from s.
func (s Seat) Partner() Seat {
	return (s + 2) % NumSeats
}

// Team returns the partnership s belongs to. Team membership is seat parity
// and fixed for the whole match.
func (s Seat) Team() Team {
	return Team(s % 2)
}

// Valid reports whether s is a real table position.
func (s Seat) Valid() bool {
	return s >= 0 && s < NumSeats
}

// Team identifies one of the two partnerships.
type Team int

const (
	TeamUs   Team = 0
	TeamThem Team = 1
)

// Opponent returns the other partnership.
func (t Team) Opponent() Team {
	return 1 - t
}

// String names the team the way scoreboards do.
func (t Team) String() string {
	if t == TeamUs {
		return "us"
	}
	return "them"
}

// turnDistance returns how many steps after `from` the seat `s` acts,
// 0..3. Used for bidding priority and meld tie-breaks: a smaller distance
// from the seat at the dealer's right means higher priority.
func turnDistance(from, s Seat) int {
	return int((s - from + NumSeats) % NumSeats)
}
