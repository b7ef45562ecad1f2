package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pricelens/backend/internal/domain"
	"go.uber.org/zap"
)

// PriceLedger owns the per-(item, store) price records: upserts from
// observations, plus the read paths built on top of them.
type PriceLedger struct {
	prices domain.PriceRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewPriceLedger creates a ledger over the given repository.
// Pass nil logger to disable logging.
func NewPriceLedger(prices domain.PriceRepository, logger *zap.Logger) *PriceLedger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PriceLedger{
		prices: prices,
		logger: logger,
		now:    time.Now,
	}
}

// NormalizeItemName produces the ledger's join key form of a product name:
// lowercased, trimmed, internal whitespace collapsed.
func NormalizeItemName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// StoreKeyFor picks the ledger's store dimension: the canonical ID when the
// resolver matched, otherwise the normalized raw store name.
func StoreKeyFor(storeID, storeName string) string {
	if storeID != "" {
		return storeID
	}
	return NormalizeItemName(storeName)
}

// UpsertInput is one price observation addressed to the ledger.
type UpsertInput struct {
	ItemName     string
	StoreName    string
	StoreID      string
	UnitPrice    float64
	PurchaseDate time.Time
	ReporterID   string
	Size         float64
	Unit         string
	VariantName  string
}

// UpsertResult reports what the ledger did with an observation.
type UpsertResult struct {
	Record  *domain.PriceRecord
	Created bool
	// Stale marks an observation older than the record's lastSeenDate:
	// value fields were left untouched, but the observation still counts
	// toward variant discovery and inference.
	Stale bool
}

// Upsert applies one observation to the record for (item, store), creating
// it on first sight. The whole read-modify-write is atomic per key; the
// repository serializes concurrent writers on the same key.
func (l *PriceLedger) Upsert(ctx context.Context, in UpsertInput) (*UpsertResult, error) {
	if err := validateObservation(in); err != nil {
		return nil, err
	}

	itemKey := NormalizeItemName(in.ItemName)
	storeKey := StoreKeyFor(in.StoreID, in.StoreName)
	now := l.now()
	result := &UpsertResult{}

	rec, err := l.prices.Apply(ctx, itemKey, storeKey, func(existing *domain.PriceRecord) (*domain.PriceRecord, error) {
		if existing == nil {
			result.Created = true
			return l.newRecord(in, itemKey, storeKey, now), nil
		}

		if in.PurchaseDate.Before(existing.LastSeenDate) {
			// Stale for value fields; discovery logic still sees it.
			result.Stale = true
			return existing, nil
		}

		next := *existing
		next.UnitPrice = in.UnitPrice
		if in.UnitPrice < next.MinPrice {
			next.MinPrice = in.UnitPrice
		}
		if in.UnitPrice > next.MaxPrice {
			next.MaxPrice = in.UnitPrice
		}
		next.ReportCount++
		days := daysSince(in.PurchaseDate, now)
		next.Confidence = confidenceScore(next.ReportCount, days)
		next.AveragePrice = weightedAverage(existing.AveragePrice, in.UnitPrice, next.ReportCount, days)
		next.LastSeenDate = in.PurchaseDate
		next.DisplayItemName = strings.TrimSpace(in.ItemName)
		next.LastReportedBy = in.ReporterID
		next.UpdatedAt = now
		if in.Size > 0 && in.Unit != "" {
			next.Size = in.Size
			next.Unit = in.Unit
			next.VariantName = in.VariantName
		}
		return &next, nil
	})
	if err != nil {
		return nil, err
	}

	result.Record = rec
	l.logger.Debug("ledger upsert",
		zap.String("item", itemKey),
		zap.String("store", storeKey),
		zap.Float64("price", in.UnitPrice),
		zap.Bool("created", result.Created),
		zap.Bool("stale", result.Stale),
	)
	return result, nil
}

func (l *PriceLedger) newRecord(in UpsertInput, itemKey, storeKey string, now time.Time) *domain.PriceRecord {
	rec := &domain.PriceRecord{
		NormalizedItemName: itemKey,
		DisplayItemName:    strings.TrimSpace(in.ItemName),
		StoreKey:           storeKey,
		StoreName:          strings.TrimSpace(in.StoreName),
		StoreID:            in.StoreID,
		UnitPrice:          in.UnitPrice,
		MinPrice:           in.UnitPrice,
		MaxPrice:           in.UnitPrice,
		AveragePrice:       in.UnitPrice,
		Confidence:         confidenceScore(1, daysSince(in.PurchaseDate, now)),
		ReportCount:        1,
		LastSeenDate:       in.PurchaseDate,
		LastReportedBy:     in.ReporterID,
		UpdatedAt:          now,
	}
	if in.Size > 0 && in.Unit != "" {
		rec.Size = in.Size
		rec.Unit = in.Unit
		rec.VariantName = in.VariantName
	}
	return rec
}

func validateObservation(in UpsertInput) error {
	switch {
	case strings.TrimSpace(in.ItemName) == "":
		return fmt.Errorf("%w: missing item name", domain.ErrInvalidObservation)
	case strings.TrimSpace(in.StoreName) == "":
		return fmt.Errorf("%w: missing store name", domain.ErrInvalidObservation)
	case in.UnitPrice <= 0:
		return fmt.Errorf("%w: unit price must be positive, got %.2f", domain.ErrInvalidObservation, in.UnitPrice)
	case in.PurchaseDate.IsZero():
		return fmt.Errorf("%w: missing purchase date", domain.ErrInvalidObservation)
	}
	return nil
}

// AttachVariant sets the inferred size/unit/variant on an existing record.
// Used by the variant inference engine; value fields are never touched.
func (l *PriceLedger) AttachVariant(ctx context.Context, itemKey, storeKey string, size float64, unit, variantName string) (*domain.PriceRecord, error) {
	return l.prices.Apply(ctx, itemKey, storeKey, func(existing *domain.PriceRecord) (*domain.PriceRecord, error) {
		if existing == nil {
			return nil, domain.ErrRecordNotFound
		}
		next := *existing
		next.Size = size
		next.Unit = unit
		next.VariantName = variantName
		next.UpdatedAt = l.now()
		return &next, nil
	})
}

// aiEstimateKey is the pseudo-store's ledger key.
var aiEstimateKey = NormalizeItemName(domain.AIEstimateStore)

// preferObserved drops AI-estimate records whenever at least one
// retailer-observed record exists for the item.
func preferObserved(records []*domain.PriceRecord) []*domain.PriceRecord {
	observed := make([]*domain.PriceRecord, 0, len(records))
	for _, rec := range records {
		if rec.StoreKey != aiEstimateKey {
			observed = append(observed, rec)
		}
	}
	if len(observed) == 0 {
		return records
	}
	return observed
}

// GetPriceEstimate summarises what is known about an item's price: cheapest
// store, average across stores, store count. A nil result means no data —
// a normal outcome, not an error.
func (l *PriceLedger) GetPriceEstimate(ctx context.Context, itemName string) (*domain.PriceEstimate, error) {
	records, err := l.prices.ListByItem(ctx, NormalizeItemName(itemName))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	records = preferObserved(records)

	cheapest := records[0]
	var sum float64
	for _, rec := range records {
		sum += rec.UnitPrice
		if rec.UnitPrice < cheapest.UnitPrice {
			cheapest = rec
		}
	}

	return &domain.PriceEstimate{
		Cheapest: domain.CheapestPrice{
			Price:      cheapest.UnitPrice,
			Store:      cheapest.StoreKey,
			LastSeen:   cheapest.LastSeenDate,
			Confidence: cheapest.Confidence,
		},
		Average:    sum / float64(len(records)),
		StoreCount: len(records),
	}, nil
}

// BatchGetEstimates resolves estimates for several items in one call.
// Items without data map to nil.
func (l *PriceLedger) BatchGetEstimates(ctx context.Context, itemNames []string) (map[string]*domain.PriceEstimate, error) {
	out := make(map[string]*domain.PriceEstimate, len(itemNames))
	for _, name := range itemNames {
		est, err := l.GetPriceEstimate(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("estimate %q: %w", name, err)
		}
		out[name] = est
	}
	return out, nil
}

// CompareAcrossStores reports an item's price at each requested store.
// size/unit, when given, restrict matches to records annotated with that
// package variant. Stores without data are simply absent from ByStore.
func (l *PriceLedger) CompareAcrossStores(ctx context.Context, itemName string, size float64, unit string, storeIDs []string) (*domain.StoreComparison, error) {
	records, err := l.prices.ListByItem(ctx, NormalizeItemName(itemName))
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]*domain.PriceRecord, len(records))
	for _, rec := range records {
		if size > 0 && rec.Size != size {
			continue
		}
		if unit != "" && !strings.EqualFold(rec.Unit, unit) {
			continue
		}
		byKey[rec.StoreKey] = rec
	}

	cmp := &domain.StoreComparison{
		ByStore: make(map[string]domain.StorePrice, len(storeIDs)),
	}
	var sum float64
	for _, storeID := range storeIDs {
		rec, ok := byKey[StoreKeyFor(storeID, storeID)]
		if !ok {
			continue
		}
		cmp.ByStore[storeID] = domain.StorePrice{
			Price:      rec.UnitPrice,
			Confidence: rec.Confidence,
			LastSeen:   rec.LastSeenDate,
		}
		sum += rec.UnitPrice
		if cmp.CheapestStore == "" || rec.UnitPrice < cmp.CheapestPrice {
			cmp.CheapestStore = storeID
			cmp.CheapestPrice = rec.UnitPrice
		}
	}
	cmp.StoresWithData = len(cmp.ByStore)
	if cmp.StoresWithData > 0 {
		cmp.AveragePrice = sum / float64(cmp.StoresWithData)
	}
	return cmp, nil
}

// ListByItem exposes the raw per-store records for an item.
func (l *PriceLedger) ListByItem(ctx context.Context, itemName string) ([]*domain.PriceRecord, error) {
	return l.prices.ListByItem(ctx, NormalizeItemName(itemName))
}
