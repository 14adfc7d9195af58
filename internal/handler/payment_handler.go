package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmwangi/parishledger/internal/middleware"
	"github.com/jmwangi/parishledger/internal/models"
	"github.com/jmwangi/parishledger/internal/storage"
)

// PaymentHandler serves the finance-entry endpoint. Postings created here
// are immutable: there is no update or delete route.
type PaymentHandler struct {
	store storage.Store
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(store storage.Store) *PaymentHandler {
	return &PaymentHandler{store: store}
}

type createPaymentRequest struct {
	MemberID        string          `json:"memberId"`
	Amount          decimal.Decimal `json:"amount"`
	PostingDate     string          `json:"postingDate"`
	Category        string          `json:"category"`
	AttributionYear *int            `json:"attributionYear,omitempty"`
}

// Create handles POST /api/v1/payments (staff only).
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.MemberID == "" {
		respondError(w, http.StatusBadRequest, "memberId is required")
		return
	}
	if !req.Amount.IsPositive() {
		respondError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	postingDate, err := time.Parse("2006-01-02", req.PostingDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, "postingDate must be YYYY-MM-DD")
		return
	}
	category := req.Category
	if category == "" {
		category = models.CategoryDue
	}
	if req.AttributionYear != nil && (*req.AttributionYear < 1000 || *req.AttributionYear > 9999) {
		respondError(w, http.StatusBadRequest, "attributionYear must be a 4-digit year")
		return
	}

	// The target member must exist; postings against unknown members
	// would silently vanish from every household view.
	if _, err := h.store.GetMember(r.Context(), req.MemberID); err != nil {
		respondServiceError(w, err)
		return
	}

	posting := &models.PaymentPosting{
		MemberID:        req.MemberID,
		Amount:          req.Amount,
		PostingDate:     postingDate,
		Category:        category,
		AttributionYear: req.AttributionYear,
	}
	if err := h.store.CreatePayment(r.Context(), posting); err != nil {
		slog.Error("Payment entry failed", "error", err, "member_id", req.MemberID)
		respondError(w, http.StatusInternalServerError, "failed to record payment")
		return
	}

	slog.Info("Payment recorded",
		"posting_id", posting.ID,
		"member_id", posting.MemberID,
		"amount", posting.Amount,
		"category", posting.Category,
		"entered_by", middleware.GetMemberID(r.Context()),
	)
	respondJSON(w, http.StatusCreated, toTransactionResponse(*posting))
}
