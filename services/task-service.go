package services

import (
	"context"
	"fmt"
	"time"

	"digi-agency/microservices/graphics-service/logging"
	"digi-agency/microservices/graphics-service/models"
	"digi-agency/microservices/graphics-service/repositories"

	"go.mongodb.org/mongo-driver/bson"
)

// allowedTransitions - graf dozvoljenih prelaza statusa. Tok nije strogo
// linearan: revision-required se vraća u in-progress, a šef može da preuzme
// task direktno u "assigned".
var allowedTransitions = map[models.TaskStatus][]models.TaskStatus{
	models.StatusPending:               {models.StatusAssignedToDepartment, models.StatusAssigned},
	models.StatusAssignedToDepartment:  {models.StatusAssigned},
	models.StatusAssigned:              {models.StatusInProgress},
	models.StatusInProgress:            {models.StatusCompleted},
	models.StatusCompleted:             {models.StatusPendingClientApproval},
	models.StatusPendingClientApproval: {models.StatusApproved, models.StatusPosted, models.StatusRevisionRequired},
	models.StatusApproved:              {models.StatusPosted},
	models.StatusRevisionRequired:      {models.StatusInProgress},
}

// ValidTransition proverava da li je prelaz iz from u to dozvoljen.
func ValidTransition(from, to models.TaskStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TaskService sprovodi promene statusa i dodele nad eksternim store-om. Svi
// upisi su best-effort: kad upis padne, lokalno stanje se ne menja - sledeći
// snapshot iz feed-a je merodavan.
type TaskService struct {
	store    repositories.TaskStore
	notifier CompletionNotifier
	now      func() time.Time
}

func NewTaskService(store repositories.TaskStore, notifier CompletionNotifier) *TaskService {
	return &TaskService{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// UpdateStatus menja status taska i upisuje prateće timestamp-ove.
func (s *TaskService) UpdateStatus(ctx context.Context, session models.SessionContext, taskID string, newStatus models.TaskStatus) error {
	if taskID == "" {
		return NewValidationError("task ID is required")
	}
	if !models.IsValidStatus(newStatus) {
		return NewValidationError(fmt.Sprintf("unknown status: %s", newStatus))
	}

	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to load task: %v", err)
	}

	if !ValidTransition(task.Status, newStatus) {
		return NewValidationError(fmt.Sprintf("cannot change status from %s to %s", task.Status, newStatus))
	}

	now := s.now()
	fields := bson.M{
		"status":      newStatus,
		"lastUpdated": now,
	}
	switch newStatus {
	case models.StatusInProgress:
		fields["startedAt"] = now
	case models.StatusCompleted:
		fields["completedAt"] = now
	}

	if err := s.store.UpdateTaskFields(ctx, taskID, fields); err != nil {
		logging.Logger.Errorf("Event ID: TASK_STATUS_UPDATE_FAILED, Description: Failed to update status for task %s: %v", taskID, err)
		return fmt.Errorf("failed to update task status: %v", err)
	}

	logging.Logger.Infof("Event ID: TASK_STATUS_UPDATED, Description: Task %s moved from %s to %s by %s.", taskID, task.Status, newStatus, session.Name)

	// Proslava je dekuplovana: emituje se događaj, prezentacioni sloj odlučuje
	// šta će sa njim.
	if newStatus == models.StatusCompleted && s.notifier != nil {
		s.notifier.TaskCompleted(*task, session)
	}

	return nil
}

// AssignToMember dodeljuje task članu tima. Upis ima merge semantiku: department
// i originalDepartment se popunjavaju samo ako ih zapis nema, a revisionCount i
// lastRevisionAt se prenose iz postojećeg zapisa da ih parcijalni upis ne izgubi.
func (s *TaskService) AssignToMember(ctx context.Context, taskID, employeeName, employeeID string) error {
	if taskID == "" {
		return NewValidationError("task ID is required for assignment")
	}
	if employeeName == "" {
		return NewValidationError("employee name is required for assignment")
	}

	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to load task: %v", err)
	}

	now := s.now()
	fields := bson.M{
		"assignedTo":         employeeName,
		"assignedToId":       employeeID,
		"status":             models.StatusAssigned,
		"assignedToMemberAt": now,
		"lastUpdated":        now,
		"revisionCount":      task.RevisionCount,
	}
	if task.Department == "" {
		fields["department"] = models.DepartmentGraphics
	}
	if task.OriginalDepartment == "" {
		fields["originalDepartment"] = models.DepartmentGraphics
	}
	if task.LastRevisionAt != nil {
		fields["lastRevisionAt"] = *task.LastRevisionAt
	}

	if err := s.store.UpdateTaskFields(ctx, taskID, fields); err != nil {
		logging.Logger.Errorf("Event ID: TASK_ASSIGN_FAILED, Description: Failed to assign task %s to %s: %v", taskID, employeeName, err)
		return fmt.Errorf("failed to assign task: %v", err)
	}

	logging.Logger.Infof("Event ID: TASK_ASSIGNED, Description: Task %s assigned to %s.", taskID, employeeName)
	return nil
}

// SendForApproval predaje task social-media odeljenju na klijentsko odobrenje.
// Vlasništvo nad department poljem prelazi na social-media, originalDepartment
// čuva poreklo.
func (s *TaskService) SendForApproval(ctx context.Context, taskID, chosenEmployee string) error {
	if taskID == "" {
		return NewValidationError("task ID is required")
	}
	if chosenEmployee == "" {
		return NewValidationError("a social media employee must be chosen")
	}

	now := s.now()
	fields := bson.M{
		"status":                models.StatusPendingClientApproval,
		"submittedAt":           now,
		"submittedBy":           models.RoleGraphicsHead,
		"department":            models.DepartmentSocialMedia,
		"socialMediaAssignedTo": chosenEmployee,
		"originalDepartment":    models.DepartmentGraphics,
		"lastUpdated":           now,
		"revisionMessage":       nil,
	}

	if err := s.store.UpdateTaskFields(ctx, taskID, fields); err != nil {
		logging.Logger.Errorf("Event ID: TASK_SUBMIT_FAILED, Description: Failed to send task %s for approval: %v", taskID, err)
		return fmt.Errorf("failed to send task for approval: %v", err)
	}

	logging.Logger.Infof("Event ID: TASK_SUBMITTED, Description: Task %s sent for client approval, handed off to %s.", taskID, chosenEmployee)
	return nil
}

// ExtraTaskRequest su polja koja korisnik unosi pri ručnom kreiranju taska.
type ExtraTaskRequest struct {
	ClientName string `json:"clientName"`
	ClientID   string `json:"clientId"`
	Ideas      string `json:"ideas"` // postaje taskName
	Department string `json:"department"`
	TaskType   string `json:"taskType"`
	PostDate   string `json:"postDate"`
}

// CreateExtraTask kreira novi task sa statusom pending. Rok se izjednačava sa
// datumom objave.
func (s *TaskService) CreateExtraTask(ctx context.Context, session models.SessionContext, req ExtraTaskRequest) (string, error) {
	if req.ClientName == "" || req.Ideas == "" || req.Department == "" || req.TaskType == "" || req.PostDate == "" {
		return "", NewValidationError("clientName, ideas, department, taskType and postDate are all required")
	}

	assignedBy := session.Name
	if assignedBy == "" {
		assignedBy = models.RoleGraphicsHead
	}

	now := s.now()
	task := &models.Task{
		ClientName:  req.ClientName,
		ClientID:    req.ClientID,
		TaskName:    req.Ideas,
		Department:  req.Department,
		TaskType:    req.TaskType,
		PostDate:    req.PostDate,
		Deadline:    req.PostDate,
		Status:      models.StatusPending,
		AssignedTo:  "",
		AssignedBy:  assignedBy,
		CreatedAt:   now,
		LastUpdated: now,
	}

	taskID, err := s.store.InsertTask(ctx, task)
	if err != nil {
		logging.Logger.Errorf("Event ID: EXTRA_TASK_CREATE_FAILED, Description: Failed to create extra task for client %s: %v", req.ClientName, err)
		return "", fmt.Errorf("failed to create extra task: %v", err)
	}

	logging.Logger.Infof("Event ID: EXTRA_TASK_CREATED, Description: Extra task %s created for client %s by %s.", taskID, req.ClientName, assignedBy)
	return taskID, nil
}
