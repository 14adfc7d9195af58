package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/jmwangi/parishledger/internal/middleware"
	"github.com/jmwangi/parishledger/internal/models"
	"github.com/jmwangi/parishledger/internal/service"
)

// DuesHandler serves the household dues endpoints.
type DuesHandler struct {
	dues *service.DuesService
}

// NewDuesHandler creates a DuesHandler backed by the given service.
func NewDuesHandler(dues *service.DuesService) *DuesHandler {
	return &DuesHandler{dues: dues}
}

type allocationResponse struct {
	TotalAmountDue  decimal.Decimal `json:"totalAmountDue"`
	DuesCollected   decimal.Decimal `json:"duesCollected"`
	OutstandingDues decimal.Decimal `json:"outstandingDues"`
}

type transactionResponse struct {
	ID              string          `json:"id"`
	MemberID        string          `json:"memberId"`
	Amount          decimal.Decimal `json:"amount"`
	PostingDate     string          `json:"postingDate"`
	Category        string          `json:"category"`
	AttributionYear *int            `json:"attributionYear,omitempty"`
}

type duesResponse struct {
	Payment      allocationResponse    `json:"payment"`
	Transactions []transactionResponse `json:"transactions"`
}

// MyDues handles GET /api/v1/payments/me/dues?year=YYYY for the
// authenticated member's own household.
func (h *DuesHandler) MyDues(w http.ResponseWriter, r *http.Request) {
	h.serveDues(w, r, middleware.GetMemberID(r.Context()))
}

// MemberDues handles GET /api/v1/payments/{memberID}/dues?year=YYYY, the
// staff variant that may target any member's household.
func (h *DuesHandler) MemberDues(w http.ResponseWriter, r *http.Request) {
	h.serveDues(w, r, chi.URLParam(r, "memberID"))
}

func (h *DuesHandler) serveDues(w http.ResponseWriter, r *http.Request, memberID string) {
	year, err := parseYear(r)
	if err != nil {
		// Rejected before any storage read.
		respondServiceError(w, err)
		return
	}

	statement, err := h.dues.HouseholdDues(r.Context(), memberID, year)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toDuesResponse(statement))
}

// parseYear reads the year query parameter. Absent defaults to the
// current calendar year; anything non-numeric is ErrInvalidYear. The
// 4-digit range check lives in the service.
func parseYear(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return time.Now().Year(), nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, service.ErrInvalidYear
	}
	return year, nil
}

func toDuesResponse(statement *service.DuesStatement) duesResponse {
	resp := duesResponse{
		Payment: allocationResponse{
			TotalAmountDue:  statement.Payment.TotalAmountDue,
			DuesCollected:   statement.Payment.DuesCollected,
			OutstandingDues: statement.Payment.OutstandingDues,
		},
		// Empty list, not null, when the year has no postings.
		Transactions: make([]transactionResponse, 0, len(statement.Transactions)),
	}
	for _, tx := range statement.Transactions {
		resp.Transactions = append(resp.Transactions, toTransactionResponse(tx))
	}
	return resp
}

func toTransactionResponse(tx models.PaymentPosting) transactionResponse {
	return transactionResponse{
		ID:              tx.ID,
		MemberID:        tx.MemberID,
		Amount:          tx.Amount,
		PostingDate:     tx.PostingDate.Format("2006-01-02"),
		Category:        tx.Category,
		AttributionYear: tx.AttributionYear,
	}
}
