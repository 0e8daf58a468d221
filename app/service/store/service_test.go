package store

import (
	"testing"
	"time"

	"claimsdesk/app/config"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(t *testing.T) *Service {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)

	db, err := badger.Open(opts)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return NewWithDB(&config.Config{}, db)
}

func TestDisputeRoundTrip(t *testing.T) {
	svc := testService(t)

	written := DisputeCase{
		ID:           "DISP-TEST1",
		CustomerName: "John Smith",
		Status:       DisputePending,
		Type:         "Unauthorized Transaction",
		Amount:       89.99,
		Date:         "2024-03-16",
		Priority:     PriorityLow,
	}

	require.NoError(t, svc.SaveDispute(written))

	read, err := svc.GetDisputeByID("DISP-TEST1")
	require.NoError(t, err)
	assert.Equal(t, written, read)
}

func TestGetDisputeNotFound(t *testing.T) {
	svc := testService(t)

	_, err := svc.GetDisputeByID("DISP-MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteDispute(t *testing.T) {
	svc := testService(t)

	require.NoError(t, svc.SaveDispute(DisputeCase{ID: "DISP-X"}))
	require.NoError(t, svc.DeleteDispute("DISP-X"))

	_, err := svc.GetDisputeByID("DISP-X")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerRoundTrip(t *testing.T) {
	svc := testService(t)

	written := Customer{
		ID:          "CUST100",
		Name:        "Jane Doe",
		Email:       "jane@example.com",
		AccountType: "Checking",
		Balance:     100.25,
		Transactions: []Transaction{
			{ID: "T100", Date: "2024-04-01", Description: "Coffee", Amount: -4.50, Type: "debit"},
		},
	}

	require.NoError(t, svc.SaveCustomer(written))

	read, err := svc.GetCustomerByID("CUST100")
	require.NoError(t, err)
	assert.Equal(t, written, read)
}

func TestBulkInsertCustomers(t *testing.T) {
	svc := testService(t)

	require.NoError(t, svc.BulkInsertCustomers(sampleCustomers()))

	customers, err := svc.GetAllCustomers()
	require.NoError(t, err)
	assert.Len(t, customers, 3)
}

func TestHasAnyDataAndSeeding(t *testing.T) {
	svc := testService(t)

	hasData, err := svc.HasAnyData()
	require.NoError(t, err)
	assert.False(t, hasData)

	require.NoError(t, svc.SeedSampleData())

	hasData, err = svc.HasAnyData()
	require.NoError(t, err)
	assert.True(t, hasData)

	disputes, err := svc.GetAllDisputes()
	require.NoError(t, err)
	assert.Len(t, disputes, 3)

	// seeding is one-time: a second call must not duplicate anything
	require.NoError(t, svc.SeedSampleData())

	customers, err := svc.GetAllCustomers()
	require.NoError(t, err)
	assert.Len(t, customers, 3)
}

func TestMessagesOnlyCountNotData(t *testing.T) {
	svc := testService(t)

	require.NoError(t, svc.SaveMessage(Message{
		ID:        "M1",
		Text:      "hello",
		Sender:    SenderUser,
		Timestamp: time.Now(),
	}))

	// messages alone do not suppress sample seeding
	hasData, err := svc.HasAnyData()
	require.NoError(t, err)
	assert.False(t, hasData)
}

func TestGetMessagesByCustomerID(t *testing.T) {
	svc := testService(t)

	now := time.Now().Truncate(time.Second)

	require.NoError(t, svc.SaveMessage(Message{ID: "M1", CustomerID: "CUST001", Text: "a", Sender: SenderUser, Timestamp: now}))
	require.NoError(t, svc.SaveMessage(Message{ID: "M2", CustomerID: "CUST002", Text: "b", Sender: SenderUser, Timestamp: now}))
	require.NoError(t, svc.SaveMessage(Message{ID: "M3", CustomerID: "CUST001", Text: "c", Sender: SenderAgent, Timestamp: now}))

	messages, err := svc.GetMessagesByCustomerID("CUST001")
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}

func TestTransactionByID(t *testing.T) {
	customer := sampleCustomers()[0]

	tx, ok := customer.TransactionByID("T002")
	require.True(t, ok)
	assert.Equal(t, "Amazon.com", tx.Description)

	_, ok = customer.TransactionByID("T999")
	assert.False(t, ok)
}

func TestPriorityForAmount(t *testing.T) {
	assert.Equal(t, PriorityLow, PriorityForAmount(89.99))
	assert.Equal(t, PriorityMedium, PriorityForAmount(250))
	assert.Equal(t, PriorityHigh, PriorityForAmount(501))
}
