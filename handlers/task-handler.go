package handlers

import (
	"encoding/json"
	"net/http"

	"digi-agency/microservices/graphics-service/logging"
	"digi-agency/microservices/graphics-service/middleware"
	"digi-agency/microservices/graphics-service/models"
	"digi-agency/microservices/graphics-service/repositories"
	"digi-agency/microservices/graphics-service/services"

	"github.com/gorilla/mux"
)

type TaskHandler struct {
	service *services.TaskService
	feed    *repositories.SnapshotFeed
}

func NewTaskHandler(service *services.TaskService, feed *repositories.SnapshotFeed) *TaskHandler {
	return &TaskHandler{service: service, feed: feed}
}

// writeServiceError mapira ValidationError na 400, sve ostalo na 500 sa
// generičkom porukom - detalji ostaju u logu.
func writeServiceError(w http.ResponseWriter, err error) {
	if services.IsValidationError(err) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, "The requested change could not be saved. Please try again.", http.StatusInternalServerError)
}

// ChangeTaskStatus menja status taska.
func (h *TaskHandler) ChangeTaskStatus(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromRequest(r)
	if !ok {
		http.Error(w, "Missing session context", http.StatusUnauthorized)
		return
	}

	var request struct {
		TaskID string            `json:"taskId"`
		Status models.TaskStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), session, request.TaskID, request.Status); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"message": "Task status updated successfully"}`))
}

// AssignToMember dodeljuje task zaposlenom. Zaposleni se bira po id-u i
// razrešava kroz kanoničnu employees tabelu; "self" dodeljuje task
// prijavljenom korisniku.
func (h *TaskHandler) AssignToMember(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromRequest(r)
	if !ok {
		http.Error(w, "Missing session context", http.StatusUnauthorized)
		return
	}

	taskID := mux.Vars(r)["taskID"]

	var request struct {
		EmployeeID string `json:"employeeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	employeeName := ""
	employeeID := request.EmployeeID
	if request.EmployeeID == "self" {
		employeeName = session.Name
		employeeID = ""
	} else {
		for _, e := range h.feed.Employees() {
			if e.ID.Hex() == request.EmployeeID {
				if !e.IsActive() {
					http.Error(w, "Employee is not active", http.StatusBadRequest)
					return
				}
				employeeName = e.EmployeeName
				break
			}
		}
		if employeeName == "" {
			http.Error(w, "Employee not found", http.StatusBadRequest)
			return
		}
	}

	if err := h.service.AssignToMember(r.Context(), taskID, employeeName, employeeID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"message": "Task assigned successfully"}`))
}

// SendForApproval predaje task social-media odeljenju.
func (h *TaskHandler) SendForApproval(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.SessionFromRequest(r); !ok {
		http.Error(w, "Missing session context", http.StatusUnauthorized)
		return
	}

	taskID := mux.Vars(r)["taskID"]

	var request struct {
		Employee string `json:"employee"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := h.service.SendForApproval(r.Context(), taskID, request.Employee); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"message": "Task sent for approval"}`))
}

// CreateExtraTask ručno kreira novi task.
func (h *TaskHandler) CreateExtraTask(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromRequest(r)
	if !ok {
		http.Error(w, "Missing session context", http.StatusUnauthorized)
		return
	}

	var request services.ExtraTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	taskID, err := h.service.CreateExtraTask(r.Context(), session, request)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: EXTRA_TASK_HANDLER_OK, Description: Extra task %s created via API by %s.", taskID, session.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"id": taskID})
}
