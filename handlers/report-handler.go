package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"digi-agency/microservices/graphics-service/middleware"
	"digi-agency/microservices/graphics-service/models"
	"digi-agency/microservices/graphics-service/repositories"
	"digi-agency/microservices/graphics-service/services"
	"digi-agency/microservices/graphics-service/utils"
)

type ReportHandler struct {
	feed          *repositories.SnapshotFeed
	viewService   *services.ViewService
	reportService *services.ReportService
}

func NewReportHandler(feed *repositories.SnapshotFeed, viewService *services.ViewService, reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{feed: feed, viewService: viewService, reportService: reportService}
}

// GetReport agregira trenutni izvedeni pogled u statistiku. Izveštaj ima
// sopstveno filter stanje (mesec, pretraga) nezavisno od task liste.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromRequest(r)
	if !ok {
		http.Error(w, "Missing session context", http.StatusUnauthorized)
		return
	}

	filters := parseFilters(r)
	snapshot := h.feed.Snapshot()

	tasks := h.viewService.DeriveView(snapshot.Tasks, snapshot.Clients, session, filters)
	report := h.reportService.Aggregate(tasks)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// ExportReportCSV vraća izveštaj i sirove redove kao CSV fajl. Ime fajla
// kodira klijenta i izabrani mesec.
func (h *ReportHandler) ExportReportCSV(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromRequest(r)
	if !ok {
		http.Error(w, "Missing session context", http.StatusUnauthorized)
		return
	}

	filters := parseFilters(r)
	snapshot := h.feed.Snapshot()

	tasks := h.viewService.DeriveView(snapshot.Tasks, snapshot.Clients, session, filters)

	// "download selected": opciona lista id-eva sužava izvoz na čekirane taskove
	if ids := r.URL.Query().Get("ids"); ids != "" {
		selected := make(map[string]bool)
		for _, id := range strings.Split(ids, ",") {
			selected[strings.TrimSpace(id)] = true
		}
		filtered := make([]models.Task, 0, len(tasks))
		for _, t := range tasks {
			if selected[t.ID.Hex()] {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	report := h.reportService.Aggregate(tasks)

	filename := utils.ExportFilename(r.URL.Query().Get("client"), filters.Month)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write([]byte(utils.RenderReportCSV(report, tasks)))
}
