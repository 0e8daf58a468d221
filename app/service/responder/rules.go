package responder

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"claimsdesk/app/service/store"

	"github.com/elliotchance/pie/v2"
	"github.com/google/uuid"
)

var (
	usDatePattern = regexp.MustCompile(`\b(\d{2}/\d{2}/\d{4})\b`)
	numberPattern = regexp.MustCompile(`\b(\d+)\b`)
)

// rules is the fixed priority order. Evaluation is first match wins: every
// entry below shadows everything after it.
var rules = []rule{
	{
		name: "select_transaction",
		match: func(in *input) bool {
			if in.slots.SelectedTxID != "" {
				return false
			}

			if _, ok := matchTransactionLabel(in.customer, in.trimmed); ok {
				return true
			}

			_, ok := matchTransactionIndex(in.customer, in.trimmed)
			return ok
		},
		respond: func(in *input) Reply {
			if tx, ok := matchTransactionLabel(in.customer, in.trimmed); ok {
				return selectTransaction(tx)
			}

			tx, _ := matchTransactionIndex(in.customer, in.trimmed)
			return selectTransaction(tx)
		},
	},
	{
		name: "customer_profile",
		match: func(in *input) bool {
			return containsAny(in.lower, "profile", "details", "information")
		},
		respond: func(in *input) Reply {
			c := in.customer

			text := fmt.Sprintf(
				"Here's what I have on file for %s:\n\n"+
					"Email: %s\nPhone: %s\nAddress: %s\n"+
					"Account: %s (%s)\nBalance: $%s\n\n"+
					"Recent transactions:\n%s\n\n"+
					"You can ask me to review a transaction, check your balance, or dispute a charge.",
				c.Name, c.Email, c.Phone, c.Address,
				c.AccountNumber, c.AccountType, money(c.Balance),
				formatTransactions(c.Transactions),
			)

			return Reply{Text: text}
		},
	},
	{
		name: "recent_transactions",
		match: func(in *input) bool {
			return containsAny(in.lower, "transaction", "purchase")
		},
		respond: func(in *input) Reply {
			text := fmt.Sprintf("Here are the recent transactions for %s:\n\n%s",
				in.customer.Name, formatTransactions(in.customer.Transactions))

			candidates := disputeCandidates(in.customer)
			if len(candidates) > 0 {
				text += fmt.Sprintf(
					"\n\nThese debit charges over $100.00 may be worth a closer look:\n%s",
					formatTransactions(candidates))
			}

			return Reply{Text: text}
		},
	},
	{
		name: "balance",
		match: func(in *input) bool {
			return containsAny(in.lower, "balance", "account")
		},
		respond: func(in *input) Reply {
			c := in.customer

			return Reply{Text: fmt.Sprintf(
				"The current balance on the %s account %s is $%s.",
				c.AccountType, c.AccountNumber, money(c.Balance))}
		},
	},
	{
		name: "dispute_intro",
		match: func(in *input) bool {
			// "create dispute" is claimed by the create_dispute rule below
			return in.slots.SelectedTxID == "" &&
				containsAny(in.lower, "dispute", "charge") &&
				!strings.Contains(in.lower, "create")
		},
		respond: func(in *input) Reply {
			candidates := disputeCandidates(in.customer)
			listed := candidates
			if len(listed) == 0 {
				listed = in.customer.Transactions
			}

			return Reply{Text: fmt.Sprintf(
				"I can help with that. Here are the transactions on this account:\n\n%s\n\n"+
					"Reply with \"date - description\" (for example \"%s\") to select the one you want to dispute.",
				formatTransactions(listed), txLabel(in.customer.Transactions[0]))}
		},
	},
	{
		name: "contact_merchant",
		match: func(in *input) bool {
			return containsAny(in.lower, "contact", "merchant")
		},
		respond: func(in *input) Reply {
			tx, ok := in.slots.Selected(in.customer)
			if !ok {
				c := in.customer
				return Reply{Text: fmt.Sprintf(
					"Our records show the contact details on file:\nPhone: %s\nEmail: %s",
					c.Phone, c.Email)}
			}

			return Reply{Text: fmt.Sprintf(
				"I can draft an outreach message to %s about the $%s charge on %s. "+
					"Would you like me to draft it?",
				tx.Description, money(math.Abs(tx.Amount)), tx.Date)}
		},
	},
	{
		name: "draft_letter",
		match: func(in *input) bool {
			return containsAll(in.lower, "yes", "draft") || strings.Contains(in.lower, "proceed")
		},
		respond: func(in *input) Reply {
			tx, ok := in.slots.Selected(in.customer)
			if !ok {
				return Reply{Text: "I need a selected transaction before I can draft anything. " +
					"Reply with \"date - description\" to pick one."}
			}

			draft := disputeLetter(in.customer, tx, in.slots.Reason)

			next := in.slots
			next.Details.DraftMessage = draft

			return Reply{
				Text: fmt.Sprintf(
					"Here's the draft:\n\n%s\n\nWhat would you like to do?\n"+
						"1. Modify the letter\n2. Send it to the merchant\n3. Save it for later",
					draft),
				Slots: &next,
			}
		},
	},
	{
		name: "modify_draft",
		match: func(in *input) bool {
			return containsAny(in.lower, "modify", "change")
		},
		respond: func(_ *input) Reply {
			return Reply{Text: "Sure - which part should I change? The amount, the dates, " +
				"or the description of the issue?"}
		},
	},
	{
		name: "send_draft",
		match: func(in *input) bool {
			return strings.Contains(in.lower, "send") || in.trimmed == "2"
		},
		respond: func(in *input) Reply {
			tx, ok := in.slots.Selected(in.customer)
			if !ok {
				return Reply{Text: "I can't send anything yet - no transaction has been selected for this dispute."}
			}

			return Reply{Text: fmt.Sprintf(
				"Done. I've sent the outreach message to %s. "+
					"You'll be notified here as soon as they respond.",
				tx.Description)}
		},
	},
	{
		name: "save_draft",
		match: func(in *input) bool {
			return strings.Contains(in.lower, "save") || in.trimmed == "3"
		},
		respond: func(_ *input) Reply {
			return Reply{Text: "Saved. You can come back to this dispute at any time and pick up where you left off."}
		},
	},
	{
		name: "numeric_selection",
		match: func(in *input) bool {
			if in.slots.SelectedTxID != "" || strings.Contains(in.raw, "$") {
				return false
			}

			// dates carry their own digits; the date_fallback rule owns them
			if usDatePattern.MatchString(in.raw) {
				return false
			}

			_, ok := extractTransactionIndex(in.customer, in.lower)
			return ok
		},
		respond: func(in *input) Reply {
			tx, _ := extractTransactionIndex(in.customer, in.lower)
			return selectTransaction(tx)
		},
	},
	{
		name: "create_dispute",
		match: func(in *input) bool {
			return containsAll(in.lower, "create", "dispute")
		},
		respond: func(in *input) Reply {
			tx, ok := in.slots.Selected(in.customer)
			if !ok || in.slots.Reason == "" {
				return Reply{Text: "Before I can create a dispute I need a selected transaction and a reason. " +
					"Reply with \"date - description\" to select a transaction, then tell me what went wrong."}
			}

			amount := math.Abs(tx.Amount)
			dispute := store.DisputeCase{
				ID:           newDisputeID(),
				CustomerName: in.customer.Name,
				Status:       store.DisputePending,
				Type:         in.slots.Reason.DisputeType(),
				Amount:       amount,
				Date:         time.Now().Format("2006-01-02"),
				Priority:     store.PriorityForAmount(amount),
			}

			return Reply{
				Text: fmt.Sprintf(
					"Your dispute has been created:\n\n"+
						"Case ID: %s\nType: %s\nAmount: $%s\nPriority: %s\n\n"+
						"The case is now pending review. You'll receive updates as it progresses.",
					dispute.ID, dispute.Type, money(dispute.Amount), dispute.Priority),
				Dispute: &dispute,
			}
		},
	},
	{
		name:    "dispute_details",
		match:   matchDisputeDetails,
		respond: respondDisputeDetails,
	},
	{
		name: "review_transactions",
		match: func(in *input) bool {
			return strings.Contains(in.lower, "review") || in.trimmed == "1"
		},
		respond: func(in *input) Reply {
			return Reply{Text: fmt.Sprintf("Here are all transactions on the account:\n\n%s",
				formatNumberedTransactions(in.customer.Transactions))}
		},
	},
	{
		name: "transaction_history",
		match: func(in *input) bool {
			return strings.Contains(in.lower, "history") || in.trimmed == "3"
		},
		respond: func(in *input) Reply {
			return Reply{Text: fmt.Sprintf(
				"Here's the full transaction history for %s, oldest first:\n\n%s",
				in.customer.Name, formatTransactions(pie.Reverse(in.customer.Transactions)))}
		},
	},
	{
		name: "date_fallback",
		match: func(in *input) bool {
			if in.slots.SelectedTxID != "" {
				return false
			}

			_, ok := matchDateAndDescription(in.customer, in.raw)
			return ok
		},
		respond: func(in *input) Reply {
			tx, _ := matchDateAndDescription(in.customer, in.raw)
			return selectTransaction(tx)
		},
	},
}

// Generate is the response generator: a pure mapping from one utterance plus
// the current slots to a reply and at most one slot mutation.
func Generate(utterance string, customer *store.Customer, slots Slots) Reply {
	in := &input{
		raw:      utterance,
		trimmed:  strings.TrimSpace(utterance),
		lower:    strings.ToLower(strings.TrimSpace(utterance)),
		customer: customer,
		slots:    slots,
	}

	if customer == nil || len(customer.Transactions) == 0 {
		return genericReply(in.lower)
	}

	for _, r := range rules {
		if r.match(in) {
			return r.respond(in)
		}
	}

	return genericReply(in.lower)
}

func genericReply(lower string) Reply {
	switch {
	case containsAny(lower, "hello", "hi"):
		return Reply{Text: "Hello! I'm your claims assistant. I can look up transactions, " +
			"answer account questions and help you dispute a charge."}
	case containsAny(lower, "dispute", "charge"):
		return Reply{Text: "I can help you dispute a charge. Please select a customer first " +
			"so I can pull up the account."}
	case containsAny(lower, "time", "long"):
		return Reply{Text: "Most disputes are resolved within 7-10 business days. " +
			"Complex cases can take up to 30 days."}
	case strings.Contains(lower, "thank"):
		return Reply{Text: "You're welcome! Is there anything else I can help you with?"}
	default:
		return Reply{Text: "I'm not sure I follow. You can ask about recent transactions, " +
			"the account balance, or say \"dispute a charge\" to get started."}
	}
}

func selectTransaction(tx store.Transaction) Reply {
	// A fresh selection drops any stale reason and details
	next := Slots{SelectedTxID: tx.ID}

	return Reply{
		Text: fmt.Sprintf(
			"I found this transaction:\n\n%s: $%s\n\n"+
				"What's the reason for disputing this charge? For example:\n"+
				"- I didn't make this transaction\n"+
				"- I was charged the wrong amount\n"+
				"- I never received the product or service",
			txLabel(tx), money(math.Abs(tx.Amount))),
		Slots: &next,
	}
}

// matchTransactionLabel matches an exact "date - description" utterance,
// accepting the stored ISO date or its MM/DD/YYYY rendering.
func matchTransactionLabel(customer *store.Customer, text string) (store.Transaction, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))

	for _, tx := range customer.Transactions {
		stored := strings.ToLower(txLabel(tx))
		rendered := strings.ToLower(fmt.Sprintf("%s - %s", usDate(tx.Date), tx.Description))

		if normalized == stored || normalized == rendered {
			return tx, true
		}
	}

	return store.Transaction{}, false
}

// matchTransactionIndex accepts a bare 1-based index.
func matchTransactionIndex(customer *store.Customer, text string) (store.Transaction, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 || n > len(customer.Transactions) {
		return store.Transaction{}, false
	}

	return customer.Transactions[n-1], true
}

// extractTransactionIndex pulls the first numeric literal out of free text and
// treats it as a 1-based index when it fits the list.
func extractTransactionIndex(customer *store.Customer, text string) (store.Transaction, bool) {
	m := numberPattern.FindStringSubmatch(text)
	if m == nil {
		return store.Transaction{}, false
	}

	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > len(customer.Transactions) {
		return store.Transaction{}, false
	}

	return customer.Transactions[n-1], true
}

// matchDateAndDescription is the last-resort selection: an MM/DD/YYYY date
// anywhere in the utterance plus a dash-delimited description.
func matchDateAndDescription(customer *store.Customer, text string) (store.Transaction, bool) {
	m := usDatePattern.FindStringSubmatch(text)
	if m == nil {
		return store.Transaction{}, false
	}

	date := isoDate(m[1])

	_, after, found := strings.Cut(text, "-")
	if !found {
		return store.Transaction{}, false
	}
	description := strings.ToLower(strings.TrimSpace(after))

	for _, tx := range customer.Transactions {
		if tx.Date == date && strings.Contains(description, strings.ToLower(tx.Description)) {
			return tx, true
		}
	}

	return store.Transaction{}, false
}

func disputeLetter(customer *store.Customer, tx store.Transaction, reason Reason) string {
	reasonLine := "I believe this charge is incorrect."
	switch reason {
	case ReasonUnauthorized:
		reasonLine = "I did not authorize this transaction."
	case ReasonIncorrectAmount:
		reasonLine = "The amount charged does not match what I agreed to pay."
	case ReasonServiceNotReceived:
		reasonLine = "I never received the product or service I paid for."
	}

	return fmt.Sprintf(
		"To: %s Customer Service\n\n"+
			"I am writing to dispute a charge of $%s made on %s to my account.\n"+
			"%s\n\n"+
			"Please investigate this charge and respond at your earliest convenience.\n\n"+
			"Sincerely,\n%s\n%s\n%s",
		tx.Description, money(math.Abs(tx.Amount)), tx.Date,
		reasonLine,
		customer.Name, customer.Phone, customer.Email,
	)
}

func newDisputeID() string {
	return "DISP-" + strings.ToUpper(uuid.NewString()[:8])
}
