package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/username/finboard/backend/src/config"
	"github.com/username/finboard/backend/src/logger"
	"github.com/username/finboard/backend/src/models"
	"github.com/username/finboard/backend/src/services"
	"github.com/username/finboard/backend/src/utils"
)

// UploadHandler ingests raw balance sheets and transactions and exposes the
// matching bulk deletes.
type UploadHandler struct {
	dashboardService services.DashboardService
}

func NewUploadHandler(dashboardService services.DashboardService) *UploadHandler {
	return &UploadHandler{dashboardService: dashboardService}
}

func (h *UploadHandler) HandleUploadStatements(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.Cfg.MaxUploadSizeBytes)

	var raws []models.RawStatement
	if err := json.NewDecoder(r.Body).Decode(&raws); err != nil {
		utils.SendJSONError(w, fmt.Sprintf("invalid statement payload: %v", err), http.StatusBadRequest)
		return
	}
	logger.L.Info("Handling statement upload", "count", len(raws))

	result, err := h.dashboardService.IngestStatements(raws)
	if err != nil {
		if errors.Is(err, services.ErrUnrecognizedStatement) {
			utils.SendJSONError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		utils.SendJSONError(w, fmt.Sprintf("error ingesting statements: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

func (h *UploadHandler) HandleUploadTransactions(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, config.Cfg.MaxUploadSizeBytes)

	var txs []models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&txs); err != nil {
		utils.SendJSONError(w, fmt.Sprintf("invalid transaction payload: %v", err), http.StatusBadRequest)
		return
	}
	logger.L.Info("Handling transaction upload", "count", len(txs))

	result, err := h.dashboardService.IngestTransactions(txs)
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("error ingesting transactions: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

func (h *UploadHandler) HandleDeleteAllStatements(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboardService.DeleteAllStatements(); err != nil {
		utils.SendJSONError(w, fmt.Sprintf("error deleting statements: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "all statements deleted"})
}

func (h *UploadHandler) HandleDeleteAllTransactions(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboardService.DeleteAllTransactions(); err != nil {
		utils.SendJSONError(w, fmt.Sprintf("error deleting transactions: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "all transactions deleted"})
}
