package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pricelens/backend/internal/domain"
	"go.uber.org/zap"
)

// LineStatus reports what the pipeline did with one receipt line.
type LineStatus string

const (
	LineApplied LineStatus = "applied"
	LineStale   LineStatus = "stale"
	LineSkipped LineStatus = "skipped"
)

// LineResult is the per-observation outcome of a receipt confirmation.
type LineResult struct {
	Item    string     `json:"item"`
	Status  LineStatus `json:"status"`
	StoreID string     `json:"storeId,omitempty"`
	Reason  string     `json:"reason,omitempty"`
}

// IngestService runs the observation pipeline for confirmed receipts:
// resolve store, upsert ledger, variant step, purchase history append.
type IngestService struct {
	resolver *StoreResolver
	ledger   *PriceLedger
	variants *VariantEngine
	history  domain.HistoryRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewIngestService wires the pipeline. Pass nil logger to disable logging.
func NewIngestService(resolver *StoreResolver, ledger *PriceLedger, variants *VariantEngine, history domain.HistoryRepository, logger *zap.Logger) *IngestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IngestService{
		resolver: resolver,
		ledger:   ledger,
		variants: variants,
		history:  history,
		logger:   logger,
		now:      time.Now,
	}
}

// ConfirmReceipt applies one receipt's observations in list order. A failing
// line is reported and skipped; sibling lines still proceed — partial
// application is the documented outcome, there is no batch rollback.
// Observations are applied sequentially, so a repeated item within one
// receipt sees the previous line's committed state.
func (s *IngestService) ConfirmReceipt(ctx context.Context, observations []domain.Observation) []LineResult {
	results := make([]LineResult, 0, len(observations))
	for _, obs := range observations {
		results = append(results, s.ingestOne(ctx, obs))
	}
	return results
}

func (s *IngestService) ingestOne(ctx context.Context, obs domain.Observation) LineResult {
	storeID, _ := s.resolver.Resolve(obs.StoreName)

	in := UpsertInput{
		ItemName:     obs.Name,
		StoreName:    obs.StoreName,
		StoreID:      storeID,
		UnitPrice:    obs.UnitPrice,
		PurchaseDate: obs.PurchaseDate,
		ReporterID:   obs.ReporterID,
		Size:         obs.Size,
		Unit:         obs.Unit,
	}

	upserted, err := s.ledger.Upsert(ctx, in)
	if err != nil {
		s.logger.Warn("receipt line rejected",
			zap.String("item", obs.Name),
			zap.Error(err),
		)
		return LineResult{Item: obs.Name, Status: LineSkipped, Reason: err.Error()}
	}

	// Variant discovery/inference runs even for stale observations; only
	// the ledger's value fields are shielded by staleness.
	if err := s.variants.Process(ctx, in, domain.VariantSourceReceipt); err != nil {
		s.logger.Warn("variant step failed",
			zap.String("item", obs.Name),
			zap.Error(err),
		)
	}

	quantity := obs.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	entry := &domain.PurchaseHistoryEntry{
		ID:                 uuid.NewString(),
		UserID:             obs.ReporterID,
		NormalizedItemName: NormalizeItemName(obs.Name),
		ItemName:           obs.Name,
		UnitPrice:          obs.UnitPrice,
		Quantity:           quantity,
		StoreName:          obs.StoreName,
		StoreID:            storeID,
		PurchaseDate:       obs.PurchaseDate,
	}
	if err := s.history.Append(ctx, entry); err != nil {
		s.logger.Warn("history append failed",
			zap.String("item", obs.Name),
			zap.Error(err),
		)
	}

	status := LineApplied
	if upserted.Stale {
		status = LineStale
	}
	return LineResult{Item: obs.Name, Status: status, StoreID: storeID}
}

// RecordAIEstimate stores an AI-guessed price under the synthetic
// "AI Estimate" store. Real receipt-derived records for the same item
// supersede it on every read path.
func (s *IngestService) RecordAIEstimate(ctx context.Context, est domain.AIEstimate) (*domain.PriceRecord, error) {
	name := est.ItemName
	if name == "" {
		name = est.NormalizedName
	}

	in := UpsertInput{
		ItemName:     name,
		StoreName:    domain.AIEstimateStore,
		UnitPrice:    est.UnitPrice,
		PurchaseDate: s.now(),
		ReporterID:   est.UserID,
		Size:         est.Size,
		Unit:         est.Unit,
		VariantName:  est.VariantName,
	}

	upserted, err := s.ledger.Upsert(ctx, in)
	if err != nil {
		return nil, err
	}

	if est.Size > 0 && est.Unit != "" {
		if err := s.variants.Discover(ctx, name, est.UnitPrice, est.Size, est.Unit, est.VariantName, domain.VariantSourceAIEstimate); err != nil {
			s.logger.Warn("ai estimate variant discovery failed",
				zap.String("item", name),
				zap.Error(err),
			)
		}
	}
	return upserted.Record, nil
}
