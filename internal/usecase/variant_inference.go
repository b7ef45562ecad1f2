package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/pricelens/backend/internal/domain"
	"go.uber.org/zap"
)

// trailingQuantityPattern matches a size token at the end of a normalized
// item name ("milk 2l", "rice 1.5 kg", "eggs 12 pack").
var trailingQuantityPattern = regexp.MustCompile(`(?i)\s*\d+(?:\.\d+)?\s*(ml|l|g|kg|pt|pint|pints|pack|oz|lb)\b\s*$`)

// defaultPriceTolerance is the relative band for bracket inference: a
// variant is a candidate when the observed price is within 20% of its
// estimated price.
const defaultPriceTolerance = 0.20

// BaseItemOf strips the trailing quantity token from a product name,
// yielding the variant catalog's grouping key. A name without a size token
// is its own base item.
func BaseItemOf(name string) string {
	normalized := NormalizeItemName(name)
	base := strings.TrimSpace(trailingQuantityPattern.ReplaceAllString(normalized, ""))
	if base == "" {
		return normalized
	}
	return base
}

// attachOutcome tags what bracket inference decided. Only "attached" mutates
// the ledger; ambiguity and absence are deliberate no-ops, because wrongly
// labeling a price as one package size is worse than no label.
type attachOutcome int

const (
	outcomeAttached attachOutcome = iota
	outcomePreferred
	outcomeAmbiguous
	outcomeNoCandidates
)

func (o attachOutcome) String() string {
	switch o {
	case outcomeAttached:
		return "attached"
	case outcomePreferred:
		return "preferred"
	case outcomeAmbiguous:
		return "ambiguous"
	case outcomeNoCandidates:
		return "no_candidates"
	default:
		return "unknown"
	}
}

// VariantEngine maintains the package-variant catalog and annotates ledger
// records with a likely size/unit when the observation lacks one.
type VariantEngine struct {
	variants  domain.VariantRepository
	prefs     domain.PreferenceRepository
	ledger    *PriceLedger
	tolerance float64
	logger    *zap.Logger
	now       func() time.Time
}

// NewVariantEngine creates the engine. tolerance <= 0 falls back to the 20%
// default. Pass nil logger to disable logging.
func NewVariantEngine(variants domain.VariantRepository, prefs domain.PreferenceRepository, ledger *PriceLedger, tolerance float64, logger *zap.Logger) *VariantEngine {
	if tolerance <= 0 {
		tolerance = defaultPriceTolerance
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VariantEngine{
		variants:  variants,
		prefs:     prefs,
		ledger:    ledger,
		tolerance: tolerance,
		logger:    logger,
		now:       time.Now,
	}
}

// Process runs the variant step for one observation: discovery when size and
// unit are present, bracket inference when both are absent. Observations
// with only one of the two are left alone. Runs for stale observations too —
// staleness only shields the ledger's value fields.
func (e *VariantEngine) Process(ctx context.Context, in UpsertInput, source domain.VariantSource) error {
	hasSize := in.Size > 0 && in.Unit != ""
	hasNeither := in.Size == 0 && in.Unit == ""

	switch {
	case hasSize:
		return e.Discover(ctx, in.ItemName, in.UnitPrice, in.Size, in.Unit, in.VariantName, source)
	case hasNeither:
		_, _, err := e.Infer(ctx, in)
		return err
	default:
		return nil
	}
}

// Discover records a new variant when an observation carries an explicit
// size and unit the catalog has not seen for that base item yet.
func (e *VariantEngine) Discover(ctx context.Context, itemName string, unitPrice, size float64, unit, variantName string, source domain.VariantSource) error {
	baseItem := BaseItemOf(itemName)
	if baseItem == "" {
		return nil
	}
	if variantName == "" {
		variantName = strings.TrimSpace(itemName)
	}

	existing, err := e.variants.ListByBaseItem(ctx, baseItem)
	if err != nil {
		return fmt.Errorf("list variants for %q: %w", baseItem, err)
	}
	for _, v := range existing {
		if strings.EqualFold(v.VariantName, variantName) {
			return nil
		}
	}

	v := &domain.VariantRecord{
		BaseItem:       baseItem,
		VariantName:    variantName,
		Size:           size,
		Unit:           unit,
		EstimatedPrice: unitPrice,
		Source:         source,
		CreatedAt:      e.now(),
	}
	if err := e.variants.Insert(ctx, v); err != nil {
		if errors.Is(err, domain.ErrDuplicateVariant) {
			// Lost a race with a concurrent discovery of the same variant.
			return nil
		}
		return fmt.Errorf("insert variant %q: %w", variantName, err)
	}

	e.logger.Debug("variant discovered",
		zap.String("base_item", baseItem),
		zap.String("variant", variantName),
		zap.String("source", string(source)),
	)
	return nil
}

// Infer guesses which known variant a size-less observation corresponds to.
// A recorded user preference always wins; otherwise price-bracket matching
// attaches a variant only when exactly one candidate sits inside the
// tolerance band. Zero or multiple candidates leave the record untouched.
func (e *VariantEngine) Infer(ctx context.Context, in UpsertInput) (attachOutcome, *domain.VariantRecord, error) {
	baseItem := BaseItemOf(in.ItemName)
	if baseItem == "" {
		return outcomeNoCandidates, nil, nil
	}

	variants, err := e.variants.ListByBaseItem(ctx, baseItem)
	if err != nil {
		return outcomeNoCandidates, nil, fmt.Errorf("list variants for %q: %w", baseItem, err)
	}

	if preferred, err := e.preferredVariant(ctx, in, variants); err != nil {
		return outcomeNoCandidates, nil, err
	} else if preferred != nil {
		if err := e.attach(ctx, in, preferred); err != nil {
			return outcomeNoCandidates, nil, err
		}
		return outcomePreferred, preferred, nil
	}

	var candidate *domain.VariantRecord
	matches := 0
	for _, v := range variants {
		if v.EstimatedPrice <= 0 {
			continue
		}
		relativeDiff := math.Abs(in.UnitPrice-v.EstimatedPrice) / v.EstimatedPrice
		if relativeDiff <= e.tolerance {
			candidate = v
			matches++
		}
	}

	switch matches {
	case 0:
		return outcomeNoCandidates, nil, nil
	case 1:
		if err := e.attach(ctx, in, candidate); err != nil {
			return outcomeNoCandidates, nil, err
		}
		return outcomeAttached, candidate, nil
	default:
		e.logger.Debug("ambiguous variant match, leaving record unlabeled",
			zap.String("item", in.ItemName),
			zap.Float64("price", in.UnitPrice),
			zap.Int("candidates", matches),
		)
		return outcomeAmbiguous, nil, nil
	}
}

// preferredVariant looks up the reporter's explicit prior choice for this
// item and maps it onto a known variant, or nil when none applies.
func (e *VariantEngine) preferredVariant(ctx context.Context, in UpsertInput, variants []*domain.VariantRecord) (*domain.VariantRecord, error) {
	if e.prefs == nil || in.ReporterID == "" {
		return nil, nil
	}
	name, err := e.prefs.PreferredVariant(ctx, in.ReporterID, NormalizeItemName(in.ItemName))
	if err != nil {
		return nil, fmt.Errorf("preferred variant lookup: %w", err)
	}
	if name == "" {
		return nil, nil
	}
	for _, v := range variants {
		if strings.EqualFold(v.VariantName, name) {
			return v, nil
		}
	}
	return nil, nil
}

func (e *VariantEngine) attach(ctx context.Context, in UpsertInput, v *domain.VariantRecord) error {
	itemKey := NormalizeItemName(in.ItemName)
	storeKey := StoreKeyFor(in.StoreID, in.StoreName)
	if _, err := e.ledger.AttachVariant(ctx, itemKey, storeKey, v.Size, v.Unit, v.VariantName); err != nil {
		return fmt.Errorf("attach variant %q: %w", v.VariantName, err)
	}
	return nil
}
