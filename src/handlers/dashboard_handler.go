package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/username/finboard/backend/src/config"
	"github.com/username/finboard/backend/src/logger"
	"github.com/username/finboard/backend/src/services"
	"github.com/username/finboard/backend/src/utils"
)

// DashboardHandler serves the chart bundles, markdown reports and date
// lookups the frontend renders.
type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) HandleGetCharts(w http.ResponseWriter, r *http.Request) {
	interval := r.URL.Query().Get("interval")
	if interval == "" {
		interval = config.Cfg.DefaultChartInterval
	}
	logger.L.Debug("Handling GetCharts", "interval", interval)

	bundle, err := h.dashboardService.GetChartBundle(interval)
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("error building chart bundle: %v", err), http.StatusInternalServerError)
		return
	}

	etag, err := utils.GenerateETag(bundle)
	if err == nil {
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bundle)
}

func (h *DashboardHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	interval := r.URL.Query().Get("interval")
	if interval == "" {
		interval = config.Cfg.DefaultReportInterval
	}
	targetDate := r.URL.Query().Get("date")
	if targetDate == "" {
		targetDate = time.Now().Format(utils.DefaultDateFormat)
	}
	logger.L.Debug("Handling GetReport", "date", targetDate, "interval", interval)

	report, err := h.dashboardService.GetReport(targetDate, interval)
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("error building report: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"date":           targetDate,
		"interval":       interval,
		"markdownReport": report,
	})
}

func (h *DashboardHandler) HandleGetAvailableDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.dashboardService.GetAvailableDates()
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("error retrieving available dates: %v", err), http.StatusInternalServerError)
		return
	}
	if dates == nil {
		dates = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dates)
}

func (h *DashboardHandler) HandleGetNearestStatement(w http.ResponseWriter, r *http.Request) {
	targetDate := r.URL.Query().Get("date")
	if targetDate == "" {
		targetDate = time.Now().Format(utils.DefaultDateFormat)
	}
	logger.L.Debug("Handling GetNearestStatement", "date", targetDate)

	stmt, err := h.dashboardService.GetNearestStatement(targetDate)
	if err != nil {
		utils.SendJSONError(w, fmt.Sprintf("error finding nearest statement: %v", err), http.StatusInternalServerError)
		return
	}
	if stmt == nil {
		utils.SendJSONError(w, "no statements available", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stmt)
}
