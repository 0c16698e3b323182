package models

// ViewMode - tačno jedan mod prikaza je aktivan u svakom trenutku.
type ViewMode string

const (
	ViewModeDefault       ViewMode = ""
	ViewModeMyTasks       ViewMode = "myTasks"
	ViewModeEmployeeTasks ViewMode = "employeeTasks"
	ViewModeAllTasks      ViewMode = "allTasks"
	ViewModeExtraTasks    ViewMode = "extraTasks"
)

// StatusBoxFilter je sekundarni filter koji se bira klikom na statistiku.
type StatusBoxFilter string

const (
	StatusBoxAll             StatusBoxFilter = "all"
	StatusBoxTotal           StatusBoxFilter = "total"
	StatusBoxInProgress      StatusBoxFilter = "in-progress"
	StatusBoxPendingApproval StatusBoxFilter = "pending-approval"
	StatusBoxCompleted       StatusBoxFilter = "completed"
	StatusBoxApproved        StatusBoxFilter = "approved"
)

// AssignmentRoleFilter je nezavisan od ViewMode-a.
type AssignmentRoleFilter string

const (
	AssignmentRoleAll      AssignmentRoleFilter = "all"
	AssignmentRoleHead     AssignmentRoleFilter = "head"
	AssignmentRoleEmployee AssignmentRoleFilter = "employee"
)

// FilterState je efemerno UI stanje - nikad se ne upisuje u bazu.
type FilterState struct {
	Month          string               `json:"month"` // format YYYY-MM
	ViewMode       ViewMode             `json:"viewMode"`
	StatusBox      StatusBoxFilter      `json:"statusBox"`
	AssignmentRole AssignmentRoleFilter `json:"assignmentRole"`
	Search         string               `json:"search"`
	TargetEmployee string               `json:"targetEmployee"`
}

const (
	DepartmentGraphics    = "graphics"
	DepartmentSocialMedia = "social-media"

	RoleGraphicsHead    = "Graphics Head"
	RoleVideoHead       = "Video Head"
	RoleSocialMediaHead = "Social Media Head"
	RoleSuperAdmin      = "Super Admin"

	NotAssigned   = "Not Assigned"
	UnknownClient = "Unknown Client"
)

// AuthorizedSenders - fiksan skup pošiljalaca čiji zadaci prolaze eligibility filter.
var AuthorizedSenders = map[string]bool{
	"Production Incharge": true,
	"Strategy Department": true,
	RoleGraphicsHead:      true,
	RoleSuperAdmin:        true,
}
