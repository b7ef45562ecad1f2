package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pricelens/backend/internal/domain"
	"go.uber.org/zap"
)

const (
	dealLookbackDays      = 90
	recommendLookbackDays = 30

	defaultMinSavingsPercent = 5.0
	defaultMaxDeals          = 20
	maxRunnerUps             = 3
)

// DealService finds overpayment instances and ranks store-switch
// recommendations. Both paths are pure read/aggregate over the ledger and
// the user's purchase history: no writes, deterministic per snapshot.
type DealService struct {
	prices            domain.PriceRepository
	history           domain.HistoryRepository
	resolver          *StoreResolver
	minSavingsPercent float64
	maxResults        int
	logger            *zap.Logger
	now               func() time.Time
}

// NewDealService creates the analytics service. Non-positive thresholds fall
// back to defaults (5% minimum saving, 20 deals). Pass nil logger to
// disable logging.
func NewDealService(prices domain.PriceRepository, history domain.HistoryRepository, resolver *StoreResolver, minSavingsPercent float64, maxResults int, logger *zap.Logger) *DealService {
	if minSavingsPercent <= 0 {
		minSavingsPercent = defaultMinSavingsPercent
	}
	if maxResults <= 0 {
		maxResults = defaultMaxDeals
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DealService{
		prices:            prices,
		history:           history,
		resolver:          resolver,
		minSavingsPercent: minSavingsPercent,
		maxResults:        maxResults,
		logger:            logger,
		now:               time.Now,
	}
}

// FindDeals scans the user's last-90-days purchases and reports items that
// are cheaper at a different store than where the user last bought them.
// Sorted by absolute savings descending, capped at the configured maximum.
func (s *DealService) FindDeals(ctx context.Context, userID string) ([]*domain.Deal, error) {
	since := s.now().AddDate(0, 0, -dealLookbackDays)
	entries, err := s.history.ListByUserSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("purchase history for %q: %w", userID, err)
	}

	latest := latestPerItem(entries)

	var deals []*domain.Deal
	for _, entry := range latest {
		cheapest, err := s.cheapestElsewhere(ctx, entry)
		if err != nil {
			return nil, err
		}
		if cheapest == nil || cheapest.UnitPrice >= entry.UnitPrice {
			continue
		}

		savings := entry.UnitPrice - cheapest.UnitPrice
		percent := savings / entry.UnitPrice * 100
		if percent < s.minSavingsPercent {
			continue
		}

		deals = append(deals, &domain.Deal{
			ItemName:       entry.ItemName,
			PaidPrice:      entry.UnitPrice,
			PaidStore:      s.displayStore(entry.StoreID, entry.StoreName),
			CheapestPrice:  cheapest.UnitPrice,
			CheapestStore:  s.displayStore(cheapest.StoreID, cheapest.StoreName),
			Savings:        savings,
			SavingsPercent: percent,
			LastPurchased:  entry.PurchaseDate,
		})
	}

	sort.SliceStable(deals, func(i, j int) bool {
		if deals[i].Savings != deals[j].Savings {
			return deals[i].Savings > deals[j].Savings
		}
		return deals[i].ItemName < deals[j].ItemName
	})
	if len(deals) > s.maxResults {
		deals = deals[:s.maxResults]
	}
	return deals, nil
}

// latestPerItem keeps the most recent purchase of each distinct item,
// ordered by item name for deterministic iteration.
func latestPerItem(entries []*domain.PurchaseHistoryEntry) []*domain.PurchaseHistoryEntry {
	latest := make(map[string]*domain.PurchaseHistoryEntry)
	for _, e := range entries {
		cur, ok := latest[e.NormalizedItemName]
		if !ok || e.PurchaseDate.After(cur.PurchaseDate) {
			latest[e.NormalizedItemName] = e
		}
	}
	out := make([]*domain.PurchaseHistoryEntry, 0, len(latest))
	for _, e := range latest {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].NormalizedItemName < out[j].NormalizedItemName
	})
	return out
}

// cheapestElsewhere finds the lowest-priced ledger record for the entry's
// item at a store other than where the user bought it. AI-estimate records
// never count as "elsewhere".
func (s *DealService) cheapestElsewhere(ctx context.Context, entry *domain.PurchaseHistoryEntry) (*domain.PriceRecord, error) {
	records, err := s.prices.ListByItem(ctx, entry.NormalizedItemName)
	if err != nil {
		return nil, fmt.Errorf("ledger records for %q: %w", entry.NormalizedItemName, err)
	}

	ownKey := StoreKeyFor(entry.StoreID, entry.StoreName)
	var cheapest *domain.PriceRecord
	for _, rec := range records {
		if rec.StoreKey == ownKey || rec.StoreKey == aiEstimateKey {
			continue
		}
		if cheapest == nil || rec.UnitPrice < cheapest.UnitPrice {
			cheapest = rec
		}
	}
	return cheapest, nil
}

// RecommendStore aggregates the user's last-30-days basket against the
// cheapest current prices and recommends the store with the largest
// projected monthly saving, with up to three runner-ups. Nil when there is
// no history or no store yields a positive saving.
func (s *DealService) RecommendStore(ctx context.Context, userID string) (*domain.Recommendation, error) {
	since := s.now().AddDate(0, 0, -recommendLookbackDays)
	entries, err := s.history.ListByUserSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("purchase history for %q: %w", userID, err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	type itemUsage struct {
		totalPrice float64
		count      int
		quantity   float64
	}
	usage := make(map[string]*itemUsage)
	for _, e := range entries {
		u, ok := usage[e.NormalizedItemName]
		if !ok {
			u = &itemUsage{}
			usage[e.NormalizedItemName] = u
		}
		u.totalPrice += e.UnitPrice
		u.count++
		qty := e.Quantity
		if qty <= 0 {
			qty = 1
		}
		u.quantity += qty
	}

	type storeTally struct {
		saving float64
		items  int
	}
	tally := make(map[string]*storeTally)
	for itemKey, u := range usage {
		records, err := s.prices.ListByItem(ctx, itemKey)
		if err != nil {
			return nil, fmt.Errorf("ledger records for %q: %w", itemKey, err)
		}

		var cheapest *domain.PriceRecord
		for _, rec := range records {
			if rec.StoreKey == aiEstimateKey {
				continue
			}
			if cheapest == nil || rec.UnitPrice < cheapest.UnitPrice {
				cheapest = rec
			}
		}
		if cheapest == nil {
			continue
		}

		avgPaid := u.totalPrice / float64(u.count)
		saving := (avgPaid - cheapest.UnitPrice) * u.quantity
		if saving <= 0 {
			continue
		}

		t, ok := tally[cheapest.StoreKey]
		if !ok {
			t = &storeTally{}
			tally[cheapest.StoreKey] = t
		}
		t.saving += saving
		t.items++
	}
	if len(tally) == 0 {
		return nil, nil
	}

	savings := make([]domain.StoreSaving, 0, len(tally))
	for storeKey, t := range tally {
		savings = append(savings, domain.StoreSaving{
			StoreID:         storeKey,
			StoreName:       s.displayStore(storeKey, storeKey),
			MonthlySaving:   t.saving,
			ItemsConsidered: t.items,
		})
	}
	sort.SliceStable(savings, func(i, j int) bool {
		if savings[i].MonthlySaving != savings[j].MonthlySaving {
			return savings[i].MonthlySaving > savings[j].MonthlySaving
		}
		return savings[i].StoreID < savings[j].StoreID
	})

	rec := &domain.Recommendation{TopPick: savings[0]}
	if len(savings) > 1 {
		end := len(savings)
		if end > 1+maxRunnerUps {
			end = 1 + maxRunnerUps
		}
		rec.RunnerUps = savings[1:end]
	}

	s.logger.Debug("store recommendation computed",
		zap.String("user", userID),
		zap.String("top_pick", rec.TopPick.StoreID),
		zap.Float64("monthly_saving", rec.TopPick.MonthlySaving),
	)
	return rec, nil
}

// displayStore maps a canonical ID onto its display name when the catalog
// knows it, falling back to the raw name.
func (s *DealService) displayStore(storeID, storeName string) string {
	if s.resolver != nil && storeID != "" {
		if info, ok := s.resolver.StoreInfo(storeID); ok {
			return info.DisplayName
		}
	}
	if storeName != "" {
		return storeName
	}
	return storeID
}
