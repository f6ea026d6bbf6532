package model

// Participant is a trip member who can pay for or share in expenses.
type Participant struct {
	ID   string
	Name string
}
