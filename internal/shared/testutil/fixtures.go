package testutil

import "salespipe/pkg/contracts/domain"

// SampleRawCustomers returns a small raw customer set covering the
// common cleaning cases: a duplicate ID, a missing email and country
// aliases.
func SampleRawCustomers() []domain.RawCustomer {
	return []domain.RawCustomer{
		{CustomerID: "C1", Name: "Alice", Email: "alice@example.com", Country: "usa", SignupDate: "15-01-2023"},
		{CustomerID: "C1", Name: "Alice Dup", Email: "dup@example.com", Country: "usa", SignupDate: "15-01-2023"},
		{CustomerID: "C2", Name: "Bob", Email: "", Country: "IRELAND", SignupDate: "20-02-2023"},
		{CustomerID: "C3", Name: "Carol", Email: "carol@example.com", Country: "uk", SignupDate: "01-03-2023"},
	}
}

// SampleRawOrders returns raw orders with a malformed amount and an
// order for a customer absent from SampleRawCustomers.
func SampleRawOrders() []domain.RawOrder {
	return []domain.RawOrder{
		{OrderID: "O1", CustomerID: "C1", Amount: "120.50", Status: "completed", OrderDate: "01-03-2023"},
		{OrderID: "O2", CustomerID: "C2", Amount: "abc", Status: "PENDING", OrderDate: "05-03-2023"},
		{OrderID: "O3", CustomerID: "C9", Amount: "75", Status: "cancelled", OrderDate: "10-03-2023"},
	}
}

// SampleRawPayments returns raw payments including a full-row
// duplicate and an order with two partial payments.
func SampleRawPayments() []domain.RawPayment {
	return []domain.RawPayment{
		{OrderID: "O1", PaidAmount: "120.50", PaymentDate: "03-03-2023"},
		{OrderID: "O1", PaidAmount: "120.50", PaymentDate: "03-03-2023"},
		{OrderID: "O3", PaidAmount: "50", PaymentDate: "12-03-2023"},
	}
}
