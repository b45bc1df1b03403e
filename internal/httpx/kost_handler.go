package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-kost-market.git/internal/kost"
)

type KostHandler struct {
	Repo *kost.Repo
}

type createKostResp struct {
	KostID string `json:"kost_id"`
}

func (h *KostHandler) createKost(w http.ResponseWriter, r *http.Request) {
	var in kost.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// owner selalu dari sesi, tidak pernah dari body
	id, err := h.Repo.Create(ctx, OwnerID(r.Context()), in)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, createKostResp{KostID: id})
}

func (h *KostHandler) listMyKosts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	ks, err := h.Repo.ListByOwner(ctx, OwnerID(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ks)
}

func (h *KostHandler) getKost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	k, err := h.Repo.Get(ctx, id)
	if errors.Is(err, kost.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	} else if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, k)
}

func (h *KostHandler) addReview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var rv kost.Review
	if err := json.NewDecoder(r.Body).Decode(&rv); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if rv.Reviewer == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing reviewer"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Repo.AddReview(ctx, id, rv); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
