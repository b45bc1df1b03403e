package httpx

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/ariefcatur/go-kost-market.git/internal/stats"
)

type ReportBuilder interface {
	Report(ctx context.Context, ownerID string) (*stats.Report, error)
}

type StatsHandler struct {
	Stats ReportBuilder
}

// ErrorResp: bentuk body untuk kegagalan internal. Stack trace tidak pernah
// ikut keluar; detail lengkap hanya di log.
type ErrorResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (h *StatsHandler) getStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	ownerID := OwnerID(r.Context())
	rep, err := h.Stats.Report(ctx, ownerID)
	if err != nil {
		// laporan parsial tidak berguna untuk dashboard; gagal satu pass = gagal semua
		log.Printf("stats report owner=%s: %v", ownerID, err)
		writeJSON(w, http.StatusInternalServerError, ErrorResp{
			Message: "failed to build owner report",
			Error:   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, rep)
}
