package responder

import "claimsdesk/app/service/store"

type Reason string

const (
	ReasonUnauthorized       Reason = "unauthorized"
	ReasonIncorrectAmount    Reason = "incorrect_amount"
	ReasonServiceNotReceived Reason = "service_not_received"
	ReasonOther              Reason = "other"
)

// DisputeType renders the reason as the case type stored on a DisputeCase.
func (r Reason) DisputeType() string {
	switch r {
	case ReasonUnauthorized:
		return "Unauthorized Transaction"
	case ReasonIncorrectAmount:
		return "Incorrect Amount Charged"
	case ReasonServiceNotReceived:
		return "Service Not Received"
	default:
		return "Other Dispute"
	}
}

// Details accumulates answers collected during multi-turn slot filling.
type Details struct {
	ServiceExpected   string `json:"serviceExpected,omitempty"`
	ContactedMerchant *bool  `json:"contactedMerchant,omitempty"`
	MerchantResponse  string `json:"merchantResponse,omitempty"`
	HasDocumentation  *bool  `json:"hasDocumentation,omitempty"`
	DraftMessage      string `json:"draftMessage,omitempty"`
}

// Slots is the per-conversation dialogue state the rules read and patch.
// The selected transaction is held as an id into the customer's own list.
type Slots struct {
	SelectedTxID string  `json:"selectedTxId,omitempty"`
	Reason       Reason  `json:"reason,omitempty"`
	Details      Details `json:"details"`
}

// Selected resolves the selected transaction against the customer.
func (s Slots) Selected(customer *store.Customer) (store.Transaction, bool) {
	if s.SelectedTxID == "" || customer == nil {
		return store.Transaction{}, false
	}

	return customer.TransactionByID(s.SelectedTxID)
}

// Reply is the outcome of one rule evaluation. Slots, when non-nil, fully
// replaces the conversation slots. Dispute, when non-nil, is a new case the
// caller should hand to the dispute-creation callback.
type Reply struct {
	Text    string
	Slots   *Slots
	Dispute *store.DisputeCase
}

type input struct {
	raw      string
	trimmed  string
	lower    string
	customer *store.Customer
	slots    Slots
}

type rule struct {
	name    string
	match   func(*input) bool
	respond func(*input) Reply
}
