package store

import "time"

type Transaction struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	// Signed amount: negative = debit/outflow, positive = credit/inflow
	Amount float64 `json:"amount"`
	Type   string  `json:"type"`
}

type Customer struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	AccountNumber string        `json:"accountNumber"`
	AccountType   string        `json:"accountType"`
	Balance       float64       `json:"balance"`
	Transactions  []Transaction `json:"transactions"`
}

// TransactionByID resolves a transaction against the customer's own list.
// Selected transactions are always stored as ids and re-resolved here, never
// as copies of the record.
func (c *Customer) TransactionByID(id string) (Transaction, bool) {
	for _, tx := range c.Transactions {
		if tx.ID == id {
			return tx, true
		}
	}

	return Transaction{}, false
}

type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

type Message struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId,omitempty"`
	Text       string    `json:"text"`
	Sender     Sender    `json:"sender"`
	Timestamp  time.Time `json:"timestamp"`
}

type DisputeStatus string

const (
	DisputePending    DisputeStatus = "pending"
	DisputeInProgress DisputeStatus = "in-progress"
	DisputeResolved   DisputeStatus = "resolved"
	DisputeRejected   DisputeStatus = "rejected"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PriorityForAmount maps a disputed amount to a case priority.
func PriorityForAmount(amount float64) Priority {
	switch {
	case amount > 500:
		return PriorityHigh
	case amount > 200:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

type DisputeCase struct {
	ID           string        `json:"id"`
	CustomerName string        `json:"customerName"`
	Status       DisputeStatus `json:"status"`
	Type         string        `json:"type"`
	Amount       float64       `json:"amount"`
	Date         string        `json:"date"`
	Priority     Priority      `json:"priority"`
}
