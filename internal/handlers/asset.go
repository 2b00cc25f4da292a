package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/adlaunch/adlaunch-api/internal/authz"
	"github.com/adlaunch/adlaunch-api/internal/models"
	"github.com/adlaunch/adlaunch-api/internal/repository"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type AssetHandler struct {
	repo   repository.AssetRepository
	logger zerolog.Logger
}

func NewAssetHandler(repo repository.AssetRepository, logger zerolog.Logger) *AssetHandler {
	return &AssetHandler{
		repo:   repo,
		logger: logger.With().Str("handler", "asset").Logger(),
	}
}

func (h *AssetHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	var parentID *string
	if v := r.URL.Query().Get("parent_id"); v != "" {
		parentID = &v
	}
	folders, err := h.repo.ListFolders(uid, parentID)
	if err != nil {
		http.Error(w, "Failed to list folders: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(folders)
}

func (h *AssetHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	var req struct {
		Name     string  `json:"name"`
		ParentID *string `json:"parent_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		http.Error(w, "Folder name is required", http.StatusBadRequest)
		return
	}
	folder, err := h.repo.CreateFolder(&models.AssetFolder{
		UserID:   uid,
		Name:     strings.TrimSpace(req.Name),
		ParentID: req.ParentID,
	})
	if err != nil {
		http.Error(w, "Failed to create folder: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(folder)
}

func (h *AssetHandler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		http.Error(w, "Folder name is required", http.StatusBadRequest)
		return
	}
	folder, err := h.repo.RenameFolder(uid, mux.Vars(r)["id"], strings.TrimSpace(req.Name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Folder not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to rename folder: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(folder)
}

func (h *AssetHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	if err := h.repo.DeleteFolder(uid, mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Folder not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete folder: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	var folderID *string
	if v := r.URL.Query().Get("folder_id"); v != "" {
		folderID = &v
	}
	assets, err := h.repo.List(uid, folderID)
	if err != nil {
		http.Error(w, "Failed to list assets: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assets)
}

type assetPayload struct {
	FolderID    *string         `json:"folder_id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	FileName    *string         `json:"file_name"`
	MimeType    *string         `json:"mime_type"`
	TextContent *string         `json:"text_content"`
	Metadata    json.RawMessage `json:"metadata"`
}

func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	var payload assetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(payload.Name) == "" || strings.TrimSpace(payload.Type) == "" {
		http.Error(w, "Asset name and type are required", http.StatusBadRequest)
		return
	}
	asset, err := h.repo.Create(&models.Asset{
		UserID:      uid,
		FolderID:    payload.FolderID,
		Name:        strings.TrimSpace(payload.Name),
		Type:        payload.Type,
		FileName:    payload.FileName,
		MimeType:    payload.MimeType,
		TextContent: payload.TextContent,
		Metadata:    payload.Metadata,
	})
	if err != nil {
		http.Error(w, "Failed to create asset: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(asset)
}

func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	id := mux.Vars(r)["id"]
	existing, err := h.repo.Get(uid, id)
	if err != nil {
		http.Error(w, "Failed to get asset: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if existing == nil {
		http.Error(w, "Asset not found", http.StatusNotFound)
		return
	}

	var payload assetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(payload.Name) != "" {
		existing.Name = strings.TrimSpace(payload.Name)
	}
	existing.FolderID = payload.FolderID
	if payload.TextContent != nil {
		existing.TextContent = payload.TextContent
	}
	if len(payload.Metadata) > 0 {
		existing.Metadata = payload.Metadata
	}

	updated, err := h.repo.Update(existing)
	if err != nil {
		http.Error(w, "Failed to update asset: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := authz.UserIDFromRequest(r)
	if !ok {
		http.Error(w, "Missing user context", http.StatusUnauthorized)
		return
	}
	if err := h.repo.Delete(uid, mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Asset not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete asset: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
