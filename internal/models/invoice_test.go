package models

import "testing"

func TestFormatInvoiceNumber(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{1, "INV-0001"},
		{7, "INV-0007"},
		{123, "INV-0123"},
		{9999, "INV-9999"},
		{12345, "INV-12345"},
	}
	for _, c := range cases {
		if got := FormatInvoiceNumber(c.n); got != c.want {
			t.Fatalf("FormatInvoiceNumber(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestInvoiceStatusValid(t *testing.T) {
	for _, s := range []InvoiceStatus{InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid} {
		if !s.Valid() {
			t.Fatalf("%q should be valid", s)
		}
	}
	for _, s := range []InvoiceStatus{"", "archived", "Paid", "DRAFT"} {
		if s.Valid() {
			t.Fatalf("%q should be invalid", s)
		}
	}
}

func TestJobInvoiceHelpers(t *testing.T) {
	var job Job
	if job.Invoiced() || job.IsPaid() {
		t.Fatalf("zero job should be uninvoiced and unpaid")
	}
	n := int64(3)
	job.InvoiceNumber = &n
	job.InvoiceStatus = InvoiceStatusPaid
	if !job.Invoiced() || !job.IsPaid() {
		t.Fatalf("helpers should reflect the assigned fields")
	}
}
