package handler

import (
	"net/http"

	"github.com/jmwangi/parishledger/internal/middleware"
	"github.com/jmwangi/parishledger/internal/storage"
)

// MemberHandler serves member profile endpoints.
type MemberHandler struct {
	store storage.Store
}

// NewMemberHandler creates a MemberHandler.
func NewMemberHandler(store storage.Store) *MemberHandler {
	return &MemberHandler{store: store}
}

// Me handles GET /api/v1/members/me for the authenticated member.
func (h *MemberHandler) Me(w http.ResponseWriter, r *http.Request) {
	member, err := h.store.GetMember(r.Context(), middleware.GetMemberID(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toMemberResponse(member))
}
