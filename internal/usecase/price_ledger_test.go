package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/infrastructure/memstore"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestLedger() *PriceLedger {
	ledger := NewPriceLedger(memstore.NewPriceStore(), nil)
	ledger.now = func() time.Time { return testNow }
	return ledger
}

func milkAt(store string, price float64, date time.Time) UpsertInput {
	return UpsertInput{
		ItemName:     "Milk 2L",
		StoreName:    store,
		StoreID:      store,
		UnitPrice:    price,
		PurchaseDate: date,
		ReporterID:   "user-1",
	}
}

func TestUpsertCreatesRecord(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	res, err := ledger.Upsert(ctx, milkAt("tesco", 1.80, testNow))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Created {
		t.Error("expected Created = true on first observation")
	}

	rec := res.Record
	if rec.NormalizedItemName != "milk 2l" {
		t.Errorf("NormalizedItemName = %q, want %q", rec.NormalizedItemName, "milk 2l")
	}
	if rec.UnitPrice != 1.80 || rec.MinPrice != 1.80 || rec.MaxPrice != 1.80 || rec.AveragePrice != 1.80 {
		t.Errorf("price fields = %v/%v/%v/%v, want all 1.80", rec.UnitPrice, rec.MinPrice, rec.MaxPrice, rec.AveragePrice)
	}
	if rec.ReportCount != 1 {
		t.Errorf("ReportCount = %d, want 1", rec.ReportCount)
	}
	if !almostEqual(rec.Confidence, 0.6) {
		t.Errorf("Confidence = %v, want 0.6 for one fresh report", rec.Confidence)
	}
	if !rec.LastSeenDate.Equal(testNow) {
		t.Errorf("LastSeenDate = %v, want %v", rec.LastSeenDate, testNow)
	}
}

func TestUpsertUpdatesRecord(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	if _, err := ledger.Upsert(ctx, milkAt("tesco", 1.80, testNow.AddDate(0, 0, -2))); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	res, err := ledger.Upsert(ctx, milkAt("tesco", 1.50, testNow))
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if res.Created || res.Stale {
		t.Errorf("Created/Stale = %v/%v, want false/false", res.Created, res.Stale)
	}

	rec := res.Record
	if rec.UnitPrice != 1.50 {
		t.Errorf("UnitPrice = %v, want 1.50", rec.UnitPrice)
	}
	if rec.MinPrice != 1.50 || rec.MaxPrice != 1.80 {
		t.Errorf("Min/Max = %v/%v, want 1.50/1.80", rec.MinPrice, rec.MaxPrice)
	}
	if rec.ReportCount != 2 {
		t.Errorf("ReportCount = %d, want 2", rec.ReportCount)
	}
	want := (1.80*0.9 + 1.50*1.0) / 1.9
	if !almostEqual(rec.AveragePrice, want) {
		t.Errorf("AveragePrice = %v, want %v", rec.AveragePrice, want)
	}
}

func TestUpsertLedgerUniqueness(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := ledger.Upsert(ctx, milkAt("tesco", 1.80, testNow)); err != nil {
			t.Fatalf("upsert %d: %v", i, err)
		}
	}

	records, err := ledger.ListByItem(ctx, "Milk 2L")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want exactly 1 per (item, store)", len(records))
	}
	if records[0].ReportCount != 5 {
		t.Errorf("ReportCount = %d, want 5", records[0].ReportCount)
	}
}

func TestUpsertStaleObservation(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	if _, err := ledger.Upsert(ctx, milkAt("tesco", 1.80, testNow)); err != nil {
		t.Fatalf("fresh upsert: %v", err)
	}

	res, err := ledger.Upsert(ctx, milkAt("tesco", 9.99, testNow.AddDate(0, 0, -10)))
	if err != nil {
		t.Fatalf("stale upsert: %v", err)
	}
	if !res.Stale {
		t.Fatal("expected Stale = true for an observation older than lastSeenDate")
	}

	rec := res.Record
	if rec.UnitPrice != 1.80 {
		t.Errorf("UnitPrice = %v, stale observation must not overwrite it", rec.UnitPrice)
	}
	if rec.AveragePrice != 1.80 {
		t.Errorf("AveragePrice = %v, stale observation must not move it", rec.AveragePrice)
	}
	if !rec.LastSeenDate.Equal(testNow) {
		t.Errorf("LastSeenDate = %v, must never regress", rec.LastSeenDate)
	}
	if rec.ReportCount != 1 {
		t.Errorf("ReportCount = %d, want 1", rec.ReportCount)
	}
}

func TestUpsertRejectsInvalidObservations(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	tests := []struct {
		name string
		in   UpsertInput
	}{
		{"zero price", milkAt("tesco", 0, testNow)},
		{"negative price", milkAt("tesco", -1.50, testNow)},
		{"missing item name", UpsertInput{StoreName: "tesco", UnitPrice: 1, PurchaseDate: testNow}},
		{"missing store name", UpsertInput{ItemName: "Milk", UnitPrice: 1, PurchaseDate: testNow}},
		{"zero purchase date", UpsertInput{ItemName: "Milk", StoreName: "tesco", UnitPrice: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.Upsert(ctx, tt.in)
			if !errors.Is(err, domain.ErrInvalidObservation) {
				t.Errorf("error = %v, want ErrInvalidObservation", err)
			}
		})
	}

	// nothing was written
	records, err := ledger.ListByItem(ctx, "Milk 2L")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0 after rejected observations", len(records))
	}
}

func TestGetPriceEstimate(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	t.Run("no data returns nil", func(t *testing.T) {
		est, err := ledger.GetPriceEstimate(ctx, "Unicorn Tears")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if est != nil {
			t.Errorf("estimate = %+v, want nil", est)
		}
	})

	t.Run("cheapest across stores", func(t *testing.T) {
		if _, err := ledger.Upsert(ctx, milkAt("tesco", 1.80, testNow)); err != nil {
			t.Fatal(err)
		}
		if _, err := ledger.Upsert(ctx, milkAt("aldi", 1.50, testNow)); err != nil {
			t.Fatal(err)
		}

		est, err := ledger.GetPriceEstimate(ctx, "Milk 2L")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if est == nil {
			t.Fatal("expected an estimate")
		}
		if est.Cheapest.Price != 1.50 || est.Cheapest.Store != "aldi" {
			t.Errorf("cheapest = %v at %q, want 1.50 at aldi", est.Cheapest.Price, est.Cheapest.Store)
		}
		if est.StoreCount != 2 {
			t.Errorf("StoreCount = %d, want 2", est.StoreCount)
		}
		if !almostEqual(est.Average, 1.65) {
			t.Errorf("Average = %v, want 1.65", est.Average)
		}
	})
}

func TestGetPriceEstimatePrefersObservedOverAIEstimate(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	ai := milkAt(domain.AIEstimateStore, 2.20, testNow)
	ai.StoreID = ""
	if _, err := ledger.Upsert(ctx, ai); err != nil {
		t.Fatal(err)
	}

	t.Run("ai estimate alone is served", func(t *testing.T) {
		est, err := ledger.GetPriceEstimate(ctx, "Milk 2L")
		if err != nil {
			t.Fatal(err)
		}
		if est == nil || est.Cheapest.Price != 2.20 {
			t.Fatalf("estimate = %+v, want ai-estimate price 2.20", est)
		}
	})

	t.Run("real record supersedes the estimate", func(t *testing.T) {
		if _, err := ledger.Upsert(ctx, milkAt("tesco", 1.80, testNow)); err != nil {
			t.Fatal(err)
		}

		est, err := ledger.GetPriceEstimate(ctx, "Milk 2L")
		if err != nil {
			t.Fatal(err)
		}
		if est.Cheapest.Store != "tesco" || est.Cheapest.Price != 1.80 {
			t.Errorf("cheapest = %v at %q, want 1.80 at tesco", est.Cheapest.Price, est.Cheapest.Store)
		}
		if est.StoreCount != 1 {
			t.Errorf("StoreCount = %d, want 1 (estimate excluded)", est.StoreCount)
		}
	})
}

func TestBatchGetEstimates(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	if _, err := ledger.Upsert(ctx, milkAt("tesco", 1.80, testNow)); err != nil {
		t.Fatal(err)
	}

	estimates, err := ledger.BatchGetEstimates(ctx, []string{"Milk 2L", "Unknown Item"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if estimates["Milk 2L"] == nil {
		t.Error("expected an estimate for Milk 2L")
	}
	if estimates["Unknown Item"] != nil {
		t.Error("expected nil for an item with no history")
	}
}

func TestCompareAcrossStores(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	if _, err := ledger.Upsert(ctx, milkAt("tesco", 1.80, testNow)); err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.Upsert(ctx, milkAt("aldi", 1.50, testNow)); err != nil {
		t.Fatal(err)
	}
	if _, err := ledger.Upsert(ctx, milkAt("waitrose", 2.10, testNow)); err != nil {
		t.Fatal(err)
	}

	cmp, err := ledger.CompareAcrossStores(ctx, "Milk 2L", 0, "", []string{"tesco", "aldi", "lidl"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmp.StoresWithData != 2 {
		t.Errorf("StoresWithData = %d, want 2 (lidl has none, waitrose not requested)", cmp.StoresWithData)
	}
	if cmp.CheapestStore != "aldi" || cmp.CheapestPrice != 1.50 {
		t.Errorf("cheapest = %v at %q, want 1.50 at aldi", cmp.CheapestPrice, cmp.CheapestStore)
	}
	if !almostEqual(cmp.AveragePrice, 1.65) {
		t.Errorf("AveragePrice = %v, want 1.65", cmp.AveragePrice)
	}
	if _, ok := cmp.ByStore["lidl"]; ok {
		t.Error("stores without data must be absent from ByStore")
	}
}

func TestUpsertConcurrentSameKey(t *testing.T) {
	ledger := newTestLedger()
	ctx := context.Background()

	const writers = 50
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			if _, err := ledger.Upsert(ctx, milkAt("tesco", 1.80, testNow)); err != nil {
				t.Errorf("concurrent upsert: %v", err)
			}
		}()
	}
	wg.Wait()

	records, err := ledger.ListByItem(ctx, "Milk 2L")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].ReportCount != writers {
		t.Errorf("ReportCount = %d, want %d (no lost updates)", records[0].ReportCount, writers)
	}
}
