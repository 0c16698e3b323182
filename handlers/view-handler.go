package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"digi-agency/microservices/graphics-service/middleware"
	"digi-agency/microservices/graphics-service/models"
	"digi-agency/microservices/graphics-service/repositories"
	"digi-agency/microservices/graphics-service/services"
)

// parseFilters čita filter stanje iz query parametara. Filteri žive samo u
// zahtevu - ništa se ne pamti između poziva.
func parseFilters(r *http.Request) models.FilterState {
	q := r.URL.Query()
	return models.FilterState{
		Month:          q.Get("month"),
		ViewMode:       models.ViewMode(q.Get("viewMode")),
		StatusBox:      models.StatusBoxFilter(q.Get("statusBox")),
		AssignmentRole: models.AssignmentRoleFilter(q.Get("assignmentRole")),
		Search:         q.Get("search"),
		TargetEmployee: q.Get("employee"),
	}
}

type ViewHandler struct {
	feed        *repositories.SnapshotFeed
	viewService *services.ViewService
}

func NewViewHandler(feed *repositories.SnapshotFeed, viewService *services.ViewService) *ViewHandler {
	return &ViewHandler{feed: feed, viewService: viewService}
}

// taskView je task obogaćen overdue zastavicama za prikaz.
type taskView struct {
	models.Task
	Overdue           bool `json:"overdue"`
	ActionableOverdue bool `json:"actionableOverdue"`
}

type clientGroupView struct {
	ClientName string     `json:"clientName"`
	Tasks      []taskView `json:"tasks"`
}

type derivedViewResponse struct {
	Total  int               `json:"total"`
	Groups []clientGroupView `json:"groups"`
}

// GetDerivedView vraća filtriranu i grupisanu listu taskova za prijavljenog
// korisnika.
func (h *ViewHandler) GetDerivedView(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromRequest(r)
	if !ok {
		http.Error(w, "Missing session context", http.StatusUnauthorized)
		return
	}

	filters := parseFilters(r)
	snapshot := h.feed.Snapshot()

	tasks := h.viewService.DeriveView(snapshot.Tasks, snapshot.Clients, session, filters)
	groups := services.GroupByClient(tasks)

	now := time.Now()
	response := derivedViewResponse{Total: len(tasks), Groups: make([]clientGroupView, 0, len(groups))}
	for _, g := range groups {
		view := clientGroupView{ClientName: g.ClientName, Tasks: make([]taskView, 0, len(g.Tasks))}
		for _, t := range g.Tasks {
			view.Tasks = append(view.Tasks, taskView{
				Task:              t,
				Overdue:           services.IsOverdue(t, now),
				ActionableOverdue: services.IsActionableOverdue(t, now),
			})
		}
		response.Groups = append(response.Groups, view)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetAssignableEmployees vraća aktivne zaposlene iz graphics odeljenja plus
// samog prijavljenog korisnika, za assignment picker.
func (h *ViewHandler) GetAssignableEmployees(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromRequest(r)
	if !ok {
		http.Error(w, "Missing session context", http.StatusUnauthorized)
		return
	}

	employees := h.feed.Employees()
	assignable := make([]models.Employee, 0, len(employees))
	seenSelf := false
	for _, e := range employees {
		if !e.IsActive() {
			continue
		}
		if e.Department != models.DepartmentGraphics && e.Email != session.Email {
			continue
		}
		if e.Email == session.Email {
			seenSelf = true
		}
		assignable = append(assignable, e)
	}

	// "self" opcija i kada prijavljeni korisnik nije u employees kolekciji
	if !seenSelf {
		assignable = append(assignable, models.Employee{
			EmployeeName: session.Name,
			Email:        session.Email,
			Department:   models.DepartmentGraphics,
			Status:       "active",
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assignable)
}
