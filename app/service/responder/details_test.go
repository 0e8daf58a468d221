package responder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyReply(t *testing.T, slots *Slots, reply Reply) {
	t.Helper()

	require.NotNil(t, reply.Slots)
	*slots = *reply.Slots
}

func TestServiceNotReceivedSlotFilling(t *testing.T) {
	customer := testCustomer()
	slots := Slots{SelectedTxID: "T002"}

	reply := Generate("I never received my order", customer, slots)
	applyReply(t, &slots, reply)
	assert.Equal(t, ReasonServiceNotReceived, slots.Reason)
	assert.Contains(t, reply.Text, "expecting to receive")

	reply = Generate("A set of kitchen knives", customer, slots)
	applyReply(t, &slots, reply)
	assert.Equal(t, "A set of kitchen knives", slots.Details.ServiceExpected)
	assert.Contains(t, reply.Text, "contacted the merchant")

	reply = Generate("yes, twice", customer, slots)
	applyReply(t, &slots, reply)
	require.NotNil(t, slots.Details.ContactedMerchant)
	assert.True(t, *slots.Details.ContactedMerchant)
	assert.Contains(t, reply.Text, "merchant say")

	reply = Generate("They told me the order was lost", customer, slots)
	applyReply(t, &slots, reply)
	assert.Equal(t, "They told me the order was lost", slots.Details.MerchantResponse)
	assert.Contains(t, reply.Text, "documentation")

	reply = Generate("yes", customer, slots)
	applyReply(t, &slots, reply)
	require.NotNil(t, slots.Details.HasDocumentation)
	assert.True(t, *slots.Details.HasDocumentation)
	assert.Contains(t, reply.Text, `"create dispute"`)
	assert.Contains(t, reply.Text, "A set of kitchen knives")
}

func TestServiceNotReceivedWithoutMerchantContact(t *testing.T) {
	customer := testCustomer()
	slots := Slots{
		SelectedTxID: "T002",
		Reason:       ReasonServiceNotReceived,
		Details:      Details{ServiceExpected: "a jacket"},
	}

	reply := Generate("no, not yet", customer, slots)
	applyReply(t, &slots, reply)
	require.NotNil(t, slots.Details.ContactedMerchant)
	assert.False(t, *slots.Details.ContactedMerchant)
	// merchant response is skipped, straight to documentation
	assert.Contains(t, reply.Text, "documentation")

	reply = Generate("no", customer, slots)
	applyReply(t, &slots, reply)
	require.NotNil(t, slots.Details.HasDocumentation)
	assert.False(t, *slots.Details.HasDocumentation)
	assert.Contains(t, reply.Text, "Contacted merchant: no")
	assert.Contains(t, reply.Text, "Documentation: no")
}

func TestAmbiguousYesNoReasks(t *testing.T) {
	customer := testCustomer()
	slots := Slots{
		SelectedTxID: "T002",
		Reason:       ReasonServiceNotReceived,
		Details:      Details{ServiceExpected: "a jacket"},
	}

	reply := Generate("hmm", customer, slots)

	assert.Nil(t, reply.Slots)
	assert.Contains(t, reply.Text, "yes or no")
}

func TestIncorrectAmountReason(t *testing.T) {
	customer := testCustomer()

	reply := Generate("the amount is wrong, I was overcharged", customer, Slots{SelectedTxID: "T001"})

	require.NotNil(t, reply.Slots)
	assert.Equal(t, ReasonIncorrectAmount, reply.Slots.Reason)
	assert.Contains(t, reply.Text, "expecting to be charged")
}

func TestDollarAmountAcknowledged(t *testing.T) {
	customer := testCustomer()
	slots := Slots{SelectedTxID: "T001", Reason: ReasonIncorrectAmount}

	reply := Generate("it should have been $45.00", customer, slots)

	assert.Nil(t, reply.Slots)
	assert.Contains(t, reply.Text, "$45.00")
	assert.Contains(t, reply.Text, `"create dispute"`)
}

func TestDocumentationKeywordAcknowledged(t *testing.T) {
	customer := testCustomer()
	slots := Slots{SelectedTxID: "T001", Reason: ReasonUnauthorized}

	reply := Generate("I still have the receipt", customer, slots)

	assert.Nil(t, reply.Slots)
	assert.Contains(t, reply.Text, "strengthen the case")
}

func TestDisputeTypeRendering(t *testing.T) {
	assert.Equal(t, "Unauthorized Transaction", ReasonUnauthorized.DisputeType())
	assert.Equal(t, "Incorrect Amount Charged", ReasonIncorrectAmount.DisputeType())
	assert.Equal(t, "Service Not Received", ReasonServiceNotReceived.DisputeType())
	assert.Equal(t, "Other Dispute", ReasonOther.DisputeType())
}
