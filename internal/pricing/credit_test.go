package pricing

import (
	"errors"
	"testing"
	"time"
)

func TestCreditDueDateMonthly(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	due := CreditDueDate(CreditMonthly, now)
	if due == nil {
		t.Fatal("expected a due date for monthly terms")
	}
	if want := now.AddDate(0, 1, 0); !due.Equal(want) {
		t.Fatalf("due = %v, want %v", due, want)
	}
}

func TestCreditDueDatePerBill(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	due := CreditDueDate(CreditPerBill, now)
	if due == nil {
		t.Fatal("expected a due date for per-bill terms")
	}
	if want := now.AddDate(0, 0, 7); !due.Equal(want) {
		t.Fatalf("due = %v, want %v", due, want)
	}
}

func TestCreditDueDateNoTerm(t *testing.T) {
	now := time.Now()
	if due := CreditDueDate("", now); due != nil {
		t.Fatalf("expected nil due date for empty term, got %v", due)
	}
	if due := CreditDueDate(CreditTerm("weekly"), now); due != nil {
		t.Fatalf("expected nil due date for unknown term, got %v", due)
	}
}

func TestValidateCreditHeadroom(t *testing.T) {
	profile := AccountProfile{
		BusinessAccount: true,
		CreditLimit:     10000,
		CreditBalance:   4000,
	}

	if err := ValidateCredit(profile, 6000); err != nil {
		t.Fatalf("exactly exhausting the headroom should pass, got %v", err)
	}
	if err := ValidateCredit(profile, 6001); !errors.Is(err, ErrInsufficientCredit) {
		t.Fatalf("expected ErrInsufficientCredit, got %v", err)
	}
}

func TestValidateCreditRequiresBusinessAccount(t *testing.T) {
	profile := AccountProfile{BusinessAccount: false, CreditLimit: 100000}
	if err := ValidateCredit(profile, 10); !errors.Is(err, ErrCreditNotAllowed) {
		t.Fatalf("expected ErrCreditNotAllowed, got %v", err)
	}
}
