package responder

import (
	"fmt"
	"math"
	"regexp"
)

// Sub-rules that apply only while a transaction is selected: reason
// classification, the sequential slot filling for service_not_received, and
// targeted acknowledgements. Same first-match-wins discipline as the outer
// table.

var dollarAmountPattern = regexp.MustCompile(`\$\s*\d+(\.\d{1,2})?`)

var detailRules = []rule{
	{
		// A "date - description" string mid-flow still re-selects; the fresh
		// selection clears the stale reason and details.
		name: "late_selection",
		match: func(in *input) bool {
			_, ok := matchTransactionLabel(in.customer, in.trimmed)
			return ok
		},
		respond: func(in *input) Reply {
			tx, _ := matchTransactionLabel(in.customer, in.trimmed)
			return selectTransaction(tx)
		},
	},
	{
		name: "reason_unauthorized",
		match: func(in *input) bool {
			return in.slots.Reason == "" &&
				containsAny(in.lower, "unauthorized", "didn't make", "did not make", "fraud", "don't recognize")
		},
		respond: func(in *input) Reply {
			next := in.slots
			next.Reason = ReasonUnauthorized

			return Reply{
				Text: "I've recorded this as an unauthorized transaction. Two quick checks:\n" +
					"- Is the card still in your possession?\n" +
					"- Have you shared your card number or PIN with anyone recently?\n\n" +
					"When you're ready, say \"create dispute\" to file the case.",
				Slots: &next,
			}
		},
	},
	{
		name: "reason_incorrect_amount",
		match: func(in *input) bool {
			return in.slots.Reason == "" &&
				containsAny(in.lower, "incorrect", "wrong amount", "overcharge", "double")
		},
		respond: func(in *input) Reply {
			next := in.slots
			next.Reason = ReasonIncorrectAmount

			return Reply{
				Text:  "I've recorded this as an incorrect amount. What amount were you expecting to be charged?",
				Slots: &next,
			}
		},
	},
	{
		name: "reason_service_not_received",
		match: func(in *input) bool {
			return in.slots.Reason == "" &&
				containsAny(in.lower, "service", "not received", "never received", "never arrived", "didn't receive")
		},
		respond: func(in *input) Reply {
			next := in.slots
			next.Reason = ReasonServiceNotReceived

			return Reply{
				Text:  "I'm sorry to hear that. What product or service were you expecting to receive?",
				Slots: &next,
			}
		},
	},
	{
		name: "capture_service_expected",
		match: func(in *input) bool {
			return awaitingServiceExpected(in) && in.trimmed != ""
		},
		respond: func(in *input) Reply {
			next := in.slots
			next.Details.ServiceExpected = in.trimmed

			return Reply{
				Text:  "Thanks, I've noted that. Have you contacted the merchant about this?",
				Slots: &next,
			}
		},
	},
	{
		name: "capture_contacted_merchant",
		match: awaitingContactedMerchant,
		respond: func(in *input) Reply {
			next := in.slots

			switch {
			case isAffirmative(in.lower):
				contacted := true
				next.Details.ContactedMerchant = &contacted

				return Reply{
					Text:  "What did the merchant say when you contacted them?",
					Slots: &next,
				}
			case isNegative(in.lower):
				contacted := false
				next.Details.ContactedMerchant = &contacted

				return Reply{
					Text: "That's okay. Do you have any documentation for this purchase - " +
						"receipts, emails or an order confirmation?",
					Slots: &next,
				}
			default:
				return Reply{Text: "Just to confirm - have you contacted the merchant about this? " +
					"A simple yes or no works."}
			}
		},
	},
	{
		name: "capture_merchant_response",
		match: func(in *input) bool {
			return awaitingMerchantResponse(in) && in.trimmed != ""
		},
		respond: func(in *input) Reply {
			next := in.slots
			next.Details.MerchantResponse = in.trimmed

			return Reply{
				Text: "Understood. Do you have any documentation for this purchase - " +
					"receipts, emails or an order confirmation?",
				Slots: &next,
			}
		},
	},
	{
		name: "capture_has_documentation",
		match: awaitingDocumentation,
		respond: func(in *input) Reply {
			next := in.slots

			switch {
			case isAffirmative(in.lower):
				has := true
				next.Details.HasDocumentation = &has
			case isNegative(in.lower):
				has := false
				next.Details.HasDocumentation = &has
			default:
				return Reply{Text: "Do you have any documentation for this purchase? " +
					"A simple yes or no works."}
			}

			return Reply{
				Text:  detailsSummary(in, next),
				Slots: &next,
			}
		},
	},
	{
		name: "amount_acknowledgement",
		match: func(in *input) bool {
			return dollarAmountPattern.MatchString(in.raw)
		},
		respond: func(in *input) Reply {
			amount := dollarAmountPattern.FindString(in.raw)

			return Reply{Text: fmt.Sprintf(
				"Noted - I've added %s to the case notes. Say \"create dispute\" when you're ready to file.",
				amount)}
		},
	},
	{
		name: "documentation_acknowledgement",
		match: func(in *input) bool {
			return containsAny(in.lower, "receipt", "documentation", "document", "invoice", "confirmation")
		},
		respond: func(_ *input) Reply {
			return Reply{Text: "Good - documentation like that will strengthen the case. " +
				"Keep it handy, and say \"create dispute\" when you're ready to file."}
		},
	},
}

func matchDisputeDetails(in *input) bool {
	if in.slots.SelectedTxID == "" {
		return false
	}

	for _, r := range detailRules {
		if r.match(in) {
			return true
		}
	}

	return false
}

func respondDisputeDetails(in *input) Reply {
	for _, r := range detailRules {
		if r.match(in) {
			return r.respond(in)
		}
	}

	// unreachable: matchDisputeDetails gates this handler
	return genericReply(in.lower)
}

func awaitingServiceExpected(in *input) bool {
	return in.slots.Reason == ReasonServiceNotReceived &&
		in.slots.Details.ServiceExpected == ""
}

func awaitingContactedMerchant(in *input) bool {
	return in.slots.Reason == ReasonServiceNotReceived &&
		in.slots.Details.ServiceExpected != "" &&
		in.slots.Details.ContactedMerchant == nil
}

func awaitingMerchantResponse(in *input) bool {
	d := in.slots.Details

	return in.slots.Reason == ReasonServiceNotReceived &&
		d.ContactedMerchant != nil && *d.ContactedMerchant &&
		d.MerchantResponse == ""
}

func awaitingDocumentation(in *input) bool {
	d := in.slots.Details

	if in.slots.Reason != ReasonServiceNotReceived || d.ContactedMerchant == nil {
		return false
	}

	if *d.ContactedMerchant && d.MerchantResponse == "" {
		return false
	}

	return d.HasDocumentation == nil
}

func detailsSummary(in *input, slots Slots) string {
	tx, _ := slots.Selected(in.customer)
	d := slots.Details

	contacted := "no"
	if d.ContactedMerchant != nil && *d.ContactedMerchant {
		contacted = "yes"
	}

	documented := "no"
	if d.HasDocumentation != nil && *d.HasDocumentation {
		documented = "yes"
	}

	text := fmt.Sprintf(
		"Here's what I have for this dispute:\n\n"+
			"Transaction: %s: $%s\n"+
			"Reason: %s\n"+
			"Expected: %s\n"+
			"Contacted merchant: %s\n",
		txLabel(tx), money(math.Abs(tx.Amount)),
		slots.Reason.DisputeType(),
		d.ServiceExpected,
		contacted,
	)

	if d.MerchantResponse != "" {
		text += fmt.Sprintf("Merchant response: %s\n", d.MerchantResponse)
	}

	text += fmt.Sprintf("Documentation: %s\n\nSay \"create dispute\" to file it.", documented)

	return text
}
