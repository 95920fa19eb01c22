package cobot

type Membership struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Address     Address `json:"address"`
	Plan        Plan    `json:"plan"`
	ConfirmedAt Time    `json:"confirmed_at"`
	CanceledTo  Time    `json:"canceled_to"`
}

type Address struct {
	Company     string `json:"company"`
	Name        string `json:"name"`
	FullAddress string `json:"full_address"`
}

type Plan struct {
	Name               string `json:"name"`
	TotalPricePerCycle Amount `json:"total_price_per_cycle"`
}

// Amount is a monetary value. The provider serializes the numeric part as
// a string, for example {"amount": "290.0", "currency": "EUR"}.
type Amount struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type CustomField struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type Invoice struct {
	ID          string `json:"id"`
	CreatedAt   Time   `json:"created_at"`
	DueDate     Time   `json:"due_date"`
	Paid        bool   `json:"paid"`
	PaidStatus  string `json:"paid_status"`
	TotalAmount Amount `json:"total_amount"`
}

type Booking struct {
	ID       string   `json:"id"`
	From     Time     `json:"from"`
	To       Time     `json:"to"`
	Resource Resource `json:"resource"`
}

type Resource struct {
	Name string `json:"name"`
}

// FieldUpdate sets a single custom field by its provider-side ID.
type FieldUpdate struct {
	ID    int    `json:"id"`
	Value string `json:"value"`
}
