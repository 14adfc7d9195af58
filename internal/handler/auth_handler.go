package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/jmwangi/parishledger/internal/auth"
	"github.com/jmwangi/parishledger/internal/models"
	"github.com/jmwangi/parishledger/internal/storage"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store) *AuthHandler {
	return &AuthHandler{authenticator: authenticator, jwtManager: jwtManager, store: store}
}

type registerRequest struct {
	Email         string           `json:"email"`
	Name          string           `json:"name"`
	Password      string           `json:"password"`
	FamilyGroupID string           `json:"familyGroupId,omitempty"`
	AnnualPledge  *decimal.Decimal `json:"annualPledge,omitempty"`
}

type memberResponse struct {
	ID            string           `json:"id"`
	Email         string           `json:"email"`
	Name          string           `json:"name"`
	Role          string           `json:"role"`
	FamilyGroupID string           `json:"familyGroupId,omitempty"`
	AnnualPledge  *decimal.Decimal `json:"annualPledge,omitempty"`
}

func toMemberResponse(m *models.Member) memberResponse {
	return memberResponse{
		ID:            m.ID,
		Email:         m.Email,
		Name:          m.Name,
		Role:          m.Role,
		FamilyGroupID: m.FamilyGroupID,
		AnnualPledge:  m.AnnualPledge,
	}
}

// Register handles POST /api/v1/auth/register. New accounts always get
// the member role; staff accounts are seeded at startup.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Name == "" {
		respondError(w, http.StatusBadRequest, "email and name are required")
		return
	}

	// A dependent must reference an existing head of household.
	if req.FamilyGroupID != "" {
		head, err := h.store.GetMember(r.Context(), req.FamilyGroupID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				respondError(w, http.StatusBadRequest, "familyGroupId does not reference a known member")
				return
			}
			respondServiceError(w, err)
			return
		}
		if !head.IsHead() {
			respondError(w, http.StatusBadRequest, "familyGroupId must reference a head of household")
			return
		}
	}

	member := &models.Member{
		Email:         req.Email,
		Name:          req.Name,
		Role:          models.RoleMember,
		FamilyGroupID: req.FamilyGroupID,
		AnnualPledge:  req.AnnualPledge,
	}

	created, err := h.authenticator.Register(r.Context(), member, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrEmailExists):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("Registration failed", "error", err)
			respondError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	slog.Info("Member registered", "member_id", created.ID, "head", created.IsHead())
	respondJSON(w, http.StatusCreated, toMemberResponse(created))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token  string         `json:"token"`
	Member memberResponse `json:"member"`
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	member, err := h.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}

	token, err := h.jwtManager.Generate(member)
	if err != nil {
		slog.Error("Token generation failed", "error", err, "member_id", member.ID)
		respondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{Token: token, Member: toMemberResponse(member)})
}
