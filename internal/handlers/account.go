package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/adlaunch/adlaunch-api/internal/authz"
	"github.com/adlaunch/adlaunch-api/internal/facebook"
	"github.com/adlaunch/adlaunch-api/internal/models"
	"github.com/adlaunch/adlaunch-api/internal/repository"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type AccountHandler struct {
	repo   repository.AccountRepository
	fb     *facebook.Client
	logger zerolog.Logger
}

func NewAccountHandler(repo repository.AccountRepository, fb *facebook.Client, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		repo:   repo,
		fb:     fb,
		logger: logger.With().Str("handler", "account").Logger(),
	}
}

func (h *AccountHandler) AuthURL(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"auth_url": h.fb.AuthURL("fb_auth_state")})
}

// ExchangeToken trades an OAuth code for a token, resolves the account the
// token can manage, and stores the credential row.
func (h *AccountHandler) ExchangeToken(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		http.Error(w, "Authorization code is required", http.StatusBadRequest)
		return
	}

	token, err := h.fb.ExchangeCode(r.Context(), req.Code)
	if err != nil {
		h.logger.Error().Err(err).Msg("token exchange failed")
		http.Error(w, "Token exchange failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	accountInfo, err := h.fb.AdAccount(r.Context(), token.AccessToken)
	if err != nil {
		http.Error(w, "Failed to resolve ad account: "+err.Error(), http.StatusBadRequest)
		return
	}

	account := &models.AdAccount{
		UserID:         uid,
		RemoteID:       accountInfo.ID,
		Name:           accountInfo.Name,
		AccessToken:    token.AccessToken,
		TokenExpiresAt: token.ExpiresAt,
		IsActive:       true,
	}
	if token.Scope != "" {
		account.Permissions = strings.Split(token.Scope, ",")
	}
	created, err := h.repo.Create(account)
	if err != nil {
		http.Error(w, "Failed to store ad account: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"account": created})
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	accounts, err := h.repo.List(uid)
	if err != nil {
		http.Error(w, "Failed to list ad accounts: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(accounts)
}

func (h *AccountHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]
	account, err := h.repo.Get(uid, id)
	if err != nil {
		http.Error(w, "Failed to get ad account: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if account == nil {
		http.Error(w, "Account not found", http.StatusNotFound)
		return
	}

	token, err := h.fb.RefreshToken(r.Context(), account.AccessToken)
	if err != nil {
		log.Printf("Token refresh failed for account %s: %v", id, err)
		http.Error(w, "Token refresh failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	updated, err := h.repo.UpdateToken(uid, id, token.AccessToken, token.ExpiresAt)
	if err != nil {
		http.Error(w, "Failed to update token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]
	if err := h.repo.Delete(uid, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Account not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete ad account: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
