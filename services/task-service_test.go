package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"digi-agency/microservices/graphics-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeTaskStore snima upise umesto da ih šalje u bazu.
type fakeTaskStore struct {
	tasks      map[string]*models.Task
	updates    []bson.M
	inserted   []*models.Task
	failUpdate bool
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[string]*models.Task)}
}

func (s *fakeTaskStore) add(task models.Task) string {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	id := task.ID.Hex()
	s.tasks[id] = &task
	return id
}

func (s *fakeTaskStore) GetTask(_ context.Context, taskID string) (*models.Task, error) {
	task, ok := s.tasks[taskID]
	if !ok {
		return nil, fmt.Errorf("task not found")
	}
	copied := *task
	return &copied, nil
}

func (s *fakeTaskStore) UpdateTaskFields(_ context.Context, taskID string, fields bson.M) error {
	if s.failUpdate {
		return fmt.Errorf("write rejected")
	}
	s.updates = append(s.updates, fields)
	return nil
}

func (s *fakeTaskStore) InsertTask(_ context.Context, task *models.Task) (string, error) {
	task.ID = primitive.NewObjectID()
	s.inserted = append(s.inserted, task)
	return task.ID.Hex(), nil
}

type fakeNotifier struct {
	completed []models.Task
}

func (n *fakeNotifier) TaskCompleted(task models.Task, _ models.SessionContext) {
	n.completed = append(n.completed, task)
}

var fixedNow = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func newTestTaskService(store *fakeTaskStore, notifier CompletionNotifier) *TaskService {
	service := NewTaskService(store, notifier)
	service.now = func() time.Time { return fixedNow }
	return service
}

func TestAssignToMemberSideEffects(t *testing.T) {
	store := newFakeTaskStore()
	taskID := store.add(models.Task{
		Status:        models.StatusAssignedToDepartment,
		RevisionCount: 3,
	})

	service := newTestTaskService(store, nil)
	if err := service.AssignToMember(context.Background(), taskID, "Alice", "emp-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.updates) != 1 {
		t.Fatalf("expected exactly one write, got %d", len(store.updates))
	}
	fields := store.updates[0]

	if fields["assignedTo"] != "Alice" {
		t.Errorf("assignedTo = %v, want Alice", fields["assignedTo"])
	}
	if fields["status"] != models.StatusAssigned {
		t.Errorf("status = %v, want assigned", fields["status"])
	}
	if fields["department"] != models.DepartmentGraphics {
		t.Errorf("missing department backfill, got %v", fields["department"])
	}
	if fields["originalDepartment"] != models.DepartmentGraphics {
		t.Errorf("missing originalDepartment backfill, got %v", fields["originalDepartment"])
	}
	if fields["revisionCount"] != 3 {
		t.Errorf("revisionCount = %v, want 3 (carried forward)", fields["revisionCount"])
	}
	if fields["assignedToMemberAt"] != fixedNow || fields["lastUpdated"] != fixedNow {
		t.Error("assignment must stamp assignedToMemberAt and lastUpdated")
	}
}

func TestAssignToMemberKeepsExistingDepartment(t *testing.T) {
	store := newFakeTaskStore()
	taskID := store.add(models.Task{
		Status:             models.StatusAssignedToDepartment,
		Department:         models.DepartmentSocialMedia,
		OriginalDepartment: models.DepartmentGraphics,
	})

	service := newTestTaskService(store, nil)
	if err := service.AssignToMember(context.Background(), taskID, "Alice", "emp-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fields := store.updates[0]
	if _, present := fields["department"]; present {
		t.Error("existing department must not be overwritten")
	}
	if _, present := fields["originalDepartment"]; present {
		t.Error("existing originalDepartment must not be overwritten")
	}
}

func TestAssignToMemberValidation(t *testing.T) {
	store := newFakeTaskStore()
	taskID := store.add(models.Task{Status: models.StatusPending})
	service := newTestTaskService(store, nil)

	if err := service.AssignToMember(context.Background(), taskID, "", ""); !IsValidationError(err) {
		t.Fatalf("expected validation error for empty employee, got %v", err)
	}
	if err := service.AssignToMember(context.Background(), "", "Alice", ""); !IsValidationError(err) {
		t.Fatalf("expected validation error for empty task ID, got %v", err)
	}
	if len(store.updates) != 0 {
		t.Error("validation failures must not issue writes")
	}
}

func TestUpdateStatusStampsTimestamps(t *testing.T) {
	store := newFakeTaskStore()
	notifier := &fakeNotifier{}
	service := newTestTaskService(store, notifier)

	startedID := store.add(models.Task{Status: models.StatusAssigned})
	if err := service.UpdateStatus(context.Background(), testSession, startedID, models.StatusInProgress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.updates[0]["startedAt"] != fixedNow {
		t.Error("in-progress must stamp startedAt")
	}

	completedID := store.add(models.Task{Status: models.StatusInProgress})
	if err := service.UpdateStatus(context.Background(), testSession, completedID, models.StatusCompleted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.updates[1]["completedAt"] != fixedNow {
		t.Error("completed must stamp completedAt")
	}
	if len(notifier.completed) != 1 {
		t.Errorf("completed status must emit exactly one task-completed event, got %d", len(notifier.completed))
	}
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	store := newFakeTaskStore()
	taskID := store.add(models.Task{Status: models.StatusPending})
	service := newTestTaskService(store, nil)

	err := service.UpdateStatus(context.Background(), testSession, taskID, models.StatusCompleted)
	if !IsValidationError(err) {
		t.Fatalf("expected validation error for pending->completed, got %v", err)
	}
	if len(store.updates) != 0 {
		t.Error("invalid transitions must not issue writes")
	}
}

func TestUpdateStatusWriteFailure(t *testing.T) {
	store := newFakeTaskStore()
	taskID := store.add(models.Task{Status: models.StatusAssigned})
	store.failUpdate = true
	service := newTestTaskService(store, nil)

	err := service.UpdateStatus(context.Background(), testSession, taskID, models.StatusInProgress)
	if err == nil {
		t.Fatal("expected error when the store rejects the write")
	}
	if IsValidationError(err) {
		t.Error("a rejected write is not a validation error")
	}
}

func TestRevisionLoopBackToInProgress(t *testing.T) {
	if !ValidTransition(models.StatusRevisionRequired, models.StatusInProgress) {
		t.Error("revision-required must be able to loop back to in-progress")
	}
	if !ValidTransition(models.StatusAssignedToDepartment, models.StatusAssigned) {
		t.Error("head claim from assigned-to-department to assigned must be allowed")
	}
	if ValidTransition(models.StatusPosted, models.StatusPending) {
		t.Error("posted is terminal")
	}
}

func TestSendForApprovalHandoff(t *testing.T) {
	store := newFakeTaskStore()
	taskID := store.add(models.Task{Status: models.StatusCompleted, Department: models.DepartmentGraphics})
	service := newTestTaskService(store, nil)

	if err := service.SendForApproval(context.Background(), taskID, "Jovana"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fields := store.updates[0]
	if fields["status"] != models.StatusPendingClientApproval {
		t.Errorf("status = %v, want pending-client-approval", fields["status"])
	}
	if fields["department"] != models.DepartmentSocialMedia {
		t.Error("handoff must move department ownership to social-media")
	}
	if fields["originalDepartment"] != models.DepartmentGraphics {
		t.Error("originalDepartment must preserve provenance")
	}
	if fields["submittedBy"] != models.RoleGraphicsHead {
		t.Errorf("submittedBy = %v, want Graphics Head", fields["submittedBy"])
	}
	if fields["socialMediaAssignedTo"] != "Jovana" {
		t.Errorf("socialMediaAssignedTo = %v, want Jovana", fields["socialMediaAssignedTo"])
	}
	if message, present := fields["revisionMessage"]; !present || message != nil {
		t.Error("revisionMessage must be explicitly cleared")
	}

	if err := service.SendForApproval(context.Background(), taskID, ""); !IsValidationError(err) {
		t.Errorf("expected validation error for empty employee, got %v", err)
	}
}

func TestCreateExtraTaskValidation(t *testing.T) {
	store := newFakeTaskStore()
	service := newTestTaskService(store, nil)

	_, err := service.CreateExtraTask(context.Background(), testSession, ExtraTaskRequest{
		ClientName: "",
		Ideas:      "x",
		Department: models.DepartmentGraphics,
		TaskType:   "reel",
		PostDate:   "2024-01-01",
	})
	if !IsValidationError(err) {
		t.Fatalf("expected validation error for empty clientName, got %v", err)
	}
	if len(store.inserted) != 0 {
		t.Error("validation failures must not insert records")
	}
}

func TestCreateExtraTaskDefaults(t *testing.T) {
	store := newFakeTaskStore()
	service := newTestTaskService(store, nil)

	_, err := service.CreateExtraTask(context.Background(), models.SessionContext{}, ExtraTaskRequest{
		ClientName: "Acme",
		Ideas:      "spring campaign",
		Department: models.DepartmentGraphics,
		TaskType:   "poster",
		PostDate:   "2024-04-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	task := store.inserted[0]
	if task.Status != models.StatusPending {
		t.Errorf("status = %s, want pending", task.Status)
	}
	if task.Deadline != "2024-04-01" {
		t.Errorf("deadline must default to postDate, got %s", task.Deadline)
	}
	if task.AssignedBy != models.RoleGraphicsHead {
		t.Errorf("assignedBy fallback = %s, want Graphics Head", task.AssignedBy)
	}
	if task.TaskName != "spring campaign" {
		t.Errorf("ideas must become taskName, got %s", task.TaskName)
	}
	if task.AssignedTo != "" {
		t.Errorf("new extra task must start unassigned, got %s", task.AssignedTo)
	}
}
