package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
)

const testOwner = "WV-OWNER"

func newLedgerFixture() (*LedgerService, *stubLedgerRepo) {
	repo := newStubLedgerRepo()
	svc := NewLedgerService(repo, allowAll{}, newStubStatementCache(), zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	return svc, repo
}

func inv(name string) domain.Investment {
	return domain.Investment{
		Name:             name,
		Category:         domain.CategoryStocks,
		AmountInvested:   1000,
		CurrentValue:     1100,
		DateOfInvestment: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestAddAppendsAtPreInsertionLength(t *testing.T) {
	svc, _ := newLedgerFixture()
	ctx := context.Background()

	for i, name := range []string{"A", "B", "C"} {
		if err := svc.Add(ctx, testOwner, testOwner, inv(name)); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
		got, _ := svc.List(ctx, testOwner, testOwner)
		if len(got) != i+1 {
			t.Fatalf("expected length %d, got %d", i+1, len(got))
		}
		if got[i].Name != name {
			t.Fatalf("expected %s at index %d, got %s", name, i, got[i].Name)
		}
	}
}

func TestAddRejectsInvalid(t *testing.T) {
	svc, repo := newLedgerFixture()
	ctx := context.Background()

	bad := inv("X")
	bad.DateOfInvestment = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := svc.Add(ctx, testOwner, testOwner, bad); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if repo.replaces != 0 {
		t.Fatalf("rejected add must not write")
	}
}

// Deleting index 1 from [A, B, C] leaves [A, C] at indices [0, 1], and a
// subsequent update of index 1 modifies C, not B.
func TestDeleteShiftsSubsequentIndices(t *testing.T) {
	svc, _ := newLedgerFixture()
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		if err := svc.Add(ctx, testOwner, testOwner, inv(name)); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	if err := svc.Delete(ctx, testOwner, testOwner, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, _ := svc.List(ctx, testOwner, testOwner)
	if len(got) != 2 || got[0].Name != "A" || got[1].Name != "C" {
		t.Fatalf("expected [A, C], got %+v", got)
	}

	updated := inv("C'")
	if err := svc.Update(ctx, testOwner, testOwner, 1, updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = svc.List(ctx, testOwner, testOwner)
	if got[1].Name != "C'" {
		t.Fatalf("update(1) must modify the record formerly at index 2, got %+v", got)
	}
	if got[0].Name != "A" {
		t.Fatalf("records before the deleted index must be unchanged")
	}
}

func TestUpdateAndDeleteOutOfRange(t *testing.T) {
	svc, _ := newLedgerFixture()
	ctx := context.Background()

	if err := svc.Add(ctx, testOwner, testOwner, inv("A")); err != nil {
		t.Fatalf("add: %v", err)
	}

	for _, index := range []int{-1, 1, 100} {
		if err := svc.Update(ctx, testOwner, testOwner, index, inv("B")); !errors.Is(err, domain.ErrIndexOutOfRange) {
			t.Errorf("update(%d): expected ErrIndexOutOfRange, got %v", index, err)
		}
		if err := svc.Delete(ctx, testOwner, testOwner, index); !errors.Is(err, domain.ErrIndexOutOfRange) {
			t.Errorf("delete(%d): expected ErrIndexOutOfRange, got %v", index, err)
		}
	}
}

func TestWriteRequiresOwner(t *testing.T) {
	svc, _ := newLedgerFixture()
	ctx := context.Background()

	if err := svc.Add(ctx, "WV-OTHER", testOwner, inv("A")); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSummarizeMatchesLedger(t *testing.T) {
	svc, _ := newLedgerFixture()
	ctx := context.Background()

	empty, err := svc.Summarize(ctx, testOwner, testOwner)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if empty.TotalInvested != 0 || empty.TotalCurrentValue != 0 {
		t.Fatalf("empty ledger must summarize to zero, got %+v", empty)
	}

	a := inv("A")
	a.AmountInvested, a.CurrentValue = 100, 150
	b := inv("B")
	b.AmountInvested, b.CurrentValue = 200, 180
	for _, i := range []domain.Investment{a, b} {
		if err := svc.Add(ctx, testOwner, testOwner, i); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	summary, err := svc.Summarize(ctx, testOwner, testOwner)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.TotalInvested != 300 || summary.TotalCurrentValue != 330 {
		t.Fatalf("expected {300 330}, got %+v", summary)
	}

	if err := svc.Delete(ctx, testOwner, testOwner, 0); err != nil {
		t.Fatalf("delete: %v", err)
	}
	summary, _ = svc.Summarize(ctx, testOwner, testOwner)
	if summary.TotalInvested != 200 || summary.TotalCurrentValue != 180 {
		t.Fatalf("summary must track the ledger after deletion, got %+v", summary)
	}
}

func TestMergeAddsAndUpdates(t *testing.T) {
	svc, _ := newLedgerFixture()
	ctx := context.Background()

	existing := inv("HDFC Flexi Cap")
	existing.AmountInvested, existing.CurrentValue = 50000, 60000
	if err := svc.Add(ctx, testOwner, testOwner, existing); err != nil {
		t.Fatalf("add: %v", err)
	}

	refreshed := existing
	refreshed.AmountInvested = 99999 // must not be written back
	refreshed.CurrentValue = 65000
	fresh := inv("New Fund")

	result, err := svc.Merge(ctx, testOwner, testOwner, []domain.Investment{refreshed, fresh})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if result.Added != 1 || result.Updated != 1 {
		t.Fatalf("expected {added:1 updated:1}, got %+v", result)
	}

	got, _ := svc.List(ctx, testOwner, testOwner)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].CurrentValue != 65000 {
		t.Fatalf("current value not refreshed: %+v", got[0])
	}
	if got[0].AmountInvested != 50000 {
		t.Fatalf("amount invested must not be altered retroactively: %+v", got[0])
	}
	if !got[0].DateOfInvestment.Equal(existing.DateOfInvestment) {
		t.Fatalf("date of investment must be unchanged")
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	svc, _ := newLedgerFixture()
	ctx := context.Background()

	candidates := []domain.Investment{inv("A"), inv("B")}

	first, err := svc.Merge(ctx, testOwner, testOwner, candidates)
	if err != nil {
		t.Fatalf("first merge: %v", err)
	}
	if first.Added != 2 || first.Updated != 0 {
		t.Fatalf("expected {added:2}, got %+v", first)
	}

	second, err := svc.Merge(ctx, testOwner, testOwner, candidates)
	if err != nil {
		t.Fatalf("second merge: %v", err)
	}
	if second.Added != 0 || second.Updated != 0 {
		t.Fatalf("unchanged statement must report {0 0}, got %+v", second)
	}
}

func TestMergeRejectsBatchBeforeAnyWrite(t *testing.T) {
	svc, repo := newLedgerFixture()
	ctx := context.Background()

	bad := inv("bad")
	bad.AmountInvested = -5
	if _, err := svc.Merge(ctx, testOwner, testOwner, []domain.Investment{inv("ok"), bad}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if repo.replaces != 0 {
		t.Fatalf("a rejected batch must not partially commit")
	}
}

// Concurrent adds against the same owner must serialize: no lost updates.
func TestConcurrentAddsSameOwner(t *testing.T) {
	svc, _ := newLedgerFixture()
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			if err := svc.Add(ctx, testOwner, testOwner, inv(fmt.Sprintf("inv-%d", i))); err != nil {
				t.Errorf("add: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, _ := svc.List(ctx, testOwner, testOwner)
	if len(got) != n {
		t.Fatalf("expected %d records after concurrent adds, got %d", n, len(got))
	}
}
