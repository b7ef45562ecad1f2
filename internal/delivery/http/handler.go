package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pricelens/backend/internal/domain"
	"github.com/pricelens/backend/internal/usecase"
	"go.uber.org/zap"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	resolver *usecase.StoreResolver
	ledger   *usecase.PriceLedger
	deals    *usecase.DealService
	ingest   *usecase.IngestService
	prefs    domain.PreferenceRepository
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(resolver *usecase.StoreResolver, ledger *usecase.PriceLedger, deals *usecase.DealService, ingest *usecase.IngestService, prefs domain.PreferenceRepository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		resolver: resolver,
		ledger:   ledger,
		deals:    deals,
		ingest:   ingest,
		prefs:    prefs,
		logger:   logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pricelens-backend",
		"version": "1.0.0",
	})
}

type receiptItem struct {
	Name         string    `json:"name"`
	UnitPrice    float64   `json:"unitPrice"`
	Quantity     float64   `json:"quantity"`
	Size         float64   `json:"size"`
	Unit         string    `json:"unit"`
	Category     string    `json:"category"`
	PurchaseDate time.Time `json:"purchaseDate"`
	StoreName    string    `json:"storeName"`
	ReporterID   string    `json:"reporterId"`
}

type confirmReceiptRequest struct {
	// Per-item validation is deliberately left to the ingest pipeline: a
	// bad line is skipped and reported, sibling lines still apply.
	Items []receiptItem `json:"items" binding:"required,min=1"`
}

// ConfirmReceipt ingests one confirmed receipt's observations
func (h *Handler) ConfirmReceipt(c *gin.Context) {
	var req confirmReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items is required and must not be empty"})
		return
	}

	observations := make([]domain.Observation, 0, len(req.Items))
	for _, item := range req.Items {
		observations = append(observations, domain.Observation{
			Name:         item.Name,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			Size:         item.Size,
			Unit:         item.Unit,
			Category:     item.Category,
			PurchaseDate: item.PurchaseDate,
			StoreName:    item.StoreName,
			ReporterID:   item.ReporterID,
		})
	}

	results := h.ingest.ConfirmReceipt(c.Request.Context(), observations)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

type aiEstimateRequest struct {
	NormalizedName string  `json:"normalizedName"`
	ItemName       string  `json:"itemName" binding:"required"`
	UnitPrice      float64 `json:"unitPrice" binding:"required,gt=0"`
	UserID         string  `json:"userId" binding:"required"`
	Size           float64 `json:"size"`
	Unit           string  `json:"unit"`
	VariantName    string  `json:"variantName"`
}

// RecordAIEstimate stores an AI-guessed price under the synthetic store
func (h *Handler) RecordAIEstimate(c *gin.Context) {
	var req aiEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.ingest.RecordAIEstimate(c.Request.Context(), domain.AIEstimate{
		NormalizedName: req.NormalizedName,
		ItemName:       req.ItemName,
		UnitPrice:      req.UnitPrice,
		UserID:         req.UserID,
		Size:           req.Size,
		Unit:           req.Unit,
		VariantName:    req.VariantName,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": record})
}

// ListStores returns all stores sorted by market share, descending
func (h *Handler) ListStores(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stores": h.resolver.AllStores()})
}

// GetStore returns one store identity by canonical ID
func (h *Handler) GetStore(c *gin.Context) {
	info, ok := h.resolver.StoreInfo(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrStoreNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"store": info})
}

// ResolveStore canonicalizes a raw store name. No match is a normal
// outcome, reported as a null storeId rather than an error status.
func (h *Handler) ResolveStore(c *gin.Context) {
	raw := c.Query("name")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name query parameter is required"})
		return
	}

	id, ok := h.resolver.Resolve(raw)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"storeId": nil, "resolved": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"storeId": id, "resolved": true})
}

// GetPriceEstimate returns the price summary for one item
func (h *Handler) GetPriceEstimate(c *gin.Context) {
	item := c.Query("item")
	if item == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item query parameter is required"})
		return
	}

	estimate, err := h.ledger.GetPriceEstimate(c.Request.Context(), item)
	if err != nil {
		h.logger.Error("price estimate failed", zap.String("item", item), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute estimate"})
		return
	}
	if estimate == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no price data for item"})
		return
	}
	c.JSON(http.StatusOK, estimate)
}

type batchEstimatesRequest struct {
	Items []string `json:"items" binding:"required,min=1"`
}

// BatchGetEstimates resolves estimates for several items in one call
func (h *Handler) BatchGetEstimates(c *gin.Context) {
	var req batchEstimatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items is required and must not be empty"})
		return
	}

	estimates, err := h.ledger.BatchGetEstimates(c.Request.Context(), req.Items)
	if err != nil {
		h.logger.Error("batch estimates failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute estimates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"estimates": estimates})
}

type compareRequest struct {
	ItemName string   `json:"itemName" binding:"required"`
	Size     float64  `json:"size"`
	Unit     string   `json:"unit"`
	StoreIDs []string `json:"storeIds" binding:"required,min=1"`
}

// CompareStores reports an item's price across a set of stores
func (h *Handler) CompareStores(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comparison, err := h.ledger.CompareAcrossStores(c.Request.Context(), req.ItemName, req.Size, req.Unit, req.StoreIDs)
	if err != nil {
		h.logger.Error("store comparison failed", zap.String("item", req.ItemName), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compare stores"})
		return
	}
	c.JSON(http.StatusOK, comparison)
}

// GetDeals returns overpayment instances for a user, best savings first
func (h *Handler) GetDeals(c *gin.Context) {
	userID := c.Param("userID")

	deals, err := h.deals.FindDeals(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("deal discovery failed", zap.String("user", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to find deals"})
		return
	}
	if deals == nil {
		deals = []*domain.Deal{}
	}
	c.JSON(http.StatusOK, gin.H{"deals": deals})
}

// GetRecommendation returns the user's store-switch recommendation, or a
// null recommendation when history is insufficient
func (h *Handler) GetRecommendation(c *gin.Context) {
	userID := c.Param("userID")

	rec, err := h.deals.RecommendStore(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("recommendation failed", zap.String("user", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute recommendation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendation": rec})
}

type variantPreferenceRequest struct {
	ItemName    string `json:"itemName" binding:"required"`
	VariantName string `json:"variantName" binding:"required"`
}

// SetVariantPreference records a user's explicit variant choice for an item
func (h *Handler) SetVariantPreference(c *gin.Context) {
	var req variantPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.Param("userID")
	if err := h.prefs.SetPreferredVariant(c.Request.Context(), userID, req.ItemName, req.VariantName); err != nil {
		h.logger.Error("preference write failed", zap.String("user", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store preference"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
