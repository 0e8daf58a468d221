package responder

import (
	"fmt"
	"math"
	"strings"
	"time"

	"claimsdesk/app/service/store"

	"github.com/elliotchance/pie/v2"
)

func money(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

func signedMoney(amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-$%.2f", -amount)
	}

	return fmt.Sprintf("+$%.2f", amount)
}

// usDate renders a stored ISO date as MM/DD/YYYY, the way the original UI
// displayed it. Unparseable dates pass through unchanged.
func usDate(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}

	return t.Format("01/02/2006")
}

// isoDate converts an MM/DD/YYYY date back to the stored form.
func isoDate(us string) string {
	t, err := time.Parse("01/02/2006", us)
	if err != nil {
		return us
	}

	return t.Format("2006-01-02")
}

func txLabel(tx store.Transaction) string {
	return fmt.Sprintf("%s - %s", tx.Date, tx.Description)
}

func txLine(tx store.Transaction) string {
	return fmt.Sprintf("%s - %s: %s", tx.Date, tx.Description, signedMoney(tx.Amount))
}

func formatTransactions(txs []store.Transaction) string {
	var builder strings.Builder

	for _, tx := range txs {
		builder.WriteString("- ")
		builder.WriteString(txLine(tx))
		builder.WriteString("\n")
	}

	return strings.TrimRight(builder.String(), "\n")
}

func formatNumberedTransactions(txs []store.Transaction) string {
	var builder strings.Builder

	for i, tx := range txs {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, txLine(tx)))
	}

	return strings.TrimRight(builder.String(), "\n")
}

// disputeCandidates are debit transactions worth flagging for a dispute.
func disputeCandidates(customer *store.Customer) []store.Transaction {
	return pie.Filter(customer.Transactions, func(tx store.Transaction) bool {
		return tx.Type == "debit" && math.Abs(tx.Amount) > 100
	})
}

func containsAny(text string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}

	return false
}

func containsAll(text string, words ...string) bool {
	for _, word := range words {
		if !strings.Contains(text, word) {
			return false
		}
	}

	return true
}

func isAffirmative(text string) bool {
	return containsAny(text, "yes", "yeah", "yep", "i did", "i have", "correct", "sure")
}

func isNegative(text string) bool {
	return containsAny(text, "no", "not yet", "haven't", "have not", "never")
}
