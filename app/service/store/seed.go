package store

func sampleCustomers() []Customer {
	return []Customer{
		{
			ID:            "CUST001",
			Name:          "John Smith",
			Email:         "john.smith@example.com",
			Phone:         "(555) 123-4567",
			Address:       "123 Main St, Anytown, CA 90210",
			AccountNumber: "**** **** **** 1234",
			AccountType:   "Checking",
			Balance:       2543.75,
			Transactions: []Transaction{
				{ID: "T001", Date: "2024-03-15", Description: "Walmart Supercenter", Amount: -89.99, Type: "debit"},
				{ID: "T002", Date: "2024-03-14", Description: "Amazon.com", Amount: -125.50, Type: "debit"},
			},
		},
		{
			ID:            "CUST002",
			Name:          "Emily Davis",
			Email:         "emily.davis@example.com",
			Phone:         "(555) 456-7890",
			Address:       "321 Elm St, Nowhere, FL 33101",
			AccountNumber: "**** **** **** 3456",
			AccountType:   "Savings",
			Balance:       5430.25,
			Transactions: []Transaction{
				{ID: "T011", Date: "2024-03-15", Description: "Home Depot", Amount: -75.50, Type: "debit"},
				{ID: "T012", Date: "2024-03-14", Description: "Tax Refund", Amount: 2900.00, Type: "credit"},
			},
		},
		{
			ID:            "CUST003",
			Name:          "Rishi",
			Email:         "rishi@example.com",
			Phone:         "(555) 789-0123",
			Address:       "456 Oak Ave, Somewhere, NY 10001",
			AccountNumber: "**** **** **** 7890",
			AccountType:   "Checking",
			Balance:       1876.50,
			Transactions: []Transaction{
				{ID: "T021", Date: "2024-03-15", Description: "Lowe's Home Improvement", Amount: -95.75, Type: "debit"},
				{ID: "T022", Date: "2024-03-14", Description: "Freelance Payment", Amount: 1500.00, Type: "credit"},
			},
		},
	}
}

func sampleDisputes() []DisputeCase {
	return []DisputeCase{
		{
			ID:           "DISP-001",
			CustomerName: "John Smith",
			Status:       DisputeInProgress,
			Type:         "Unauthorized Transaction",
			Amount:       125.50,
			Date:         "2023-06-15",
			Priority:     PriorityHigh,
		},
		{
			ID:           "DISP-002",
			CustomerName: "Sarah Johnson",
			Status:       DisputePending,
			Type:         "Double Charge",
			Amount:       75.00,
			Date:         "2023-06-14",
			Priority:     PriorityMedium,
		},
		{
			ID:           "DISP-003",
			CustomerName: "John Smith",
			Status:       DisputePending,
			Type:         "Service Not Received",
			Amount:       125.50,
			Date:         "2024-03-14",
			Priority:     PriorityMedium,
		},
	}
}
