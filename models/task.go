package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusPending               TaskStatus = "pending"
	StatusAssignedToDepartment  TaskStatus = "assigned-to-department"
	StatusAssigned              TaskStatus = "assigned"
	StatusInProgress            TaskStatus = "in-progress"
	StatusCompleted             TaskStatus = "completed"
	StatusPendingClientApproval TaskStatus = "pending-client-approval"
	StatusApproved              TaskStatus = "approved"
	StatusPosted                TaskStatus = "posted"
	StatusRevisionRequired      TaskStatus = "revision-required"
)

// OfficialStatuses su statusi koji se smatraju "zvanično dodeljenim" zadacima -
// samo oni prolaze eligibility filter.
var OfficialStatuses = map[TaskStatus]bool{
	StatusAssignedToDepartment:  true,
	StatusAssigned:              true,
	StatusInProgress:            true,
	StatusCompleted:             true,
	StatusPendingClientApproval: true,
	StatusApproved:              true,
	StatusPosted:                true,
	StatusRevisionRequired:      true,
	StatusPending:               true,
}

// IsValidStatus proverava da li je status u dozvoljenom skupu.
func IsValidStatus(s TaskStatus) bool {
	return OfficialStatuses[s]
}

type Task struct {
	ID                      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ClientID                string             `json:"clientId" bson:"clientId"`
	ClientName              string             `json:"clientName" bson:"clientName"`
	TaskName                string             `json:"taskName" bson:"taskName"`
	ProjectName             string             `json:"projectName" bson:"projectName"`
	Department              string             `json:"department" bson:"department"`
	OriginalDepartment      string             `json:"originalDepartment" bson:"originalDepartment"`
	AssignedToDept          string             `json:"assignedToDept" bson:"assignedToDept"`
	TaskType                string             `json:"taskType" bson:"taskType"`
	Status                  TaskStatus         `json:"status" bson:"status"`
	AssignedTo              string             `json:"assignedTo" bson:"assignedTo"`
	AssignedToID            string             `json:"assignedToId" bson:"assignedToId"`
	AssignedBy              string             `json:"assignedBy" bson:"assignedBy"`
	AssignedFromSocialMedia bool               `json:"assignedFromSocialMedia" bson:"assignedFromSocialMedia"`
	SocialMediaAssignedTo   string             `json:"socialMediaAssignedTo,omitempty" bson:"socialMediaAssignedTo,omitempty"`
	SubmittedBy             string             `json:"submittedBy,omitempty" bson:"submittedBy,omitempty"`
	Deadline                string             `json:"deadline" bson:"deadline"`
	PostDate                string             `json:"postDate" bson:"postDate"`
	CreatedAt               time.Time          `json:"createdAt" bson:"createdAt"`
	LastUpdated             time.Time          `json:"lastUpdated" bson:"lastUpdated"`
	StartedAt               *time.Time         `json:"startedAt,omitempty" bson:"startedAt,omitempty"`
	CompletedAt             *time.Time         `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	SubmittedAt             *time.Time         `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"`
	AssignedToMemberAt      *time.Time         `json:"assignedToMemberAt,omitempty" bson:"assignedToMemberAt,omitempty"`
	RevisionCount           int                `json:"revisionCount" bson:"revisionCount"`
	LastRevisionAt          *time.Time         `json:"lastRevisionAt,omitempty" bson:"lastRevisionAt,omitempty"`
	RevisionMessage         *string            `json:"revisionMessage,omitempty" bson:"revisionMessage,omitempty"`
	SpecialNotes            string             `json:"specialNotes,omitempty" bson:"specialNotes,omitempty"`
	ReferenceLink           string             `json:"referenceLink,omitempty" bson:"referenceLink,omitempty"`
	Description             string             `json:"description,omitempty" bson:"description,omitempty"`
}

// DateKey vraća datum po kome se task filtrira po mesecu: deadline ima prednost,
// inače postDate.
func (t Task) DateKey() string {
	if t.Deadline != "" {
		return t.Deadline
	}
	return t.PostDate
}
