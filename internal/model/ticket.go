package model

// TicketSet is one generated number suggestion.
type TicketSet struct {
	Numbers []int // sorted ascending, exactly MainCount distinct values
	Bonus   int
}
