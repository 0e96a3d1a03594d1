package models

// Ticket is a user-saved number selection. For simulation purposes it is
// treated as a standing order: the stake is spent on every draw it is
// evaluated against, not once. Tickets are never mutated after creation.
type Ticket struct {
	Primary   []int   `bson:"primaryNumbers" json:"primaryNumbers"`
	Secondary []int   `bson:"secondaryNumbers" json:"secondaryNumbers"`
	Stake     float64 `bson:"stake" json:"stake"`
	// Date records when the ticket was saved (YYYY-MM-DD). Informational
	// only: it does not restrict which draws the ticket is checked against.
	Date string `bson:"date" json:"date"`
}
