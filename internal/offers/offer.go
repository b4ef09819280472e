package offers

// Status is the lifecycle state of an offer.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Offer is a request from another party to reveal one hidden field of a
// capsule, optionally with compensation attached. Accepting an offer does not
// reveal anything by itself; the owner still runs the reveal flow.
type Offer struct {
	ID        string  `json:"id"`
	CapsuleID string  `json:"capsule_id"`
	Field     string  `json:"field"`
	Label     string  `json:"label"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	From      string  `json:"from"`
	CreatedAt int64   `json:"created_at"`
	Status    Status  `json:"status"`
}
