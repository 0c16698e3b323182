package services

import (
	"strings"
	"time"

	"digi-agency/microservices/graphics-service/models"
)

// ClientIndex je kanonična tabela aktivnih klijenata. Taskovi referenciraju
// klijenta po id-u ili po imenu (nasleđe iz podataka), pa indeks drži oba skupa.
type ClientIndex struct {
	ids   map[string]bool
	names map[string]bool
}

func BuildClientIndex(clients []models.Client) ClientIndex {
	idx := ClientIndex{
		ids:   make(map[string]bool, len(clients)),
		names: make(map[string]bool, len(clients)),
	}
	for _, c := range clients {
		if !c.IsActive() {
			continue
		}
		idx.ids[c.ID.Hex()] = true
		if c.Name != "" {
			idx.names[c.Name] = true
		}
	}
	return idx
}

// HasActiveRef - da li task referencira nekog aktivnog klijenta. Task bez ikakve
// klijent reference zaobilazi proveru.
func (idx ClientIndex) HasActiveRef(clientID, clientName string) bool {
	if clientID == "" && clientName == "" {
		return true
	}
	return idx.ids[clientID] || idx.names[clientName]
}

// ViewService izvodi listu taskova koja se zaista prikazuje: čist, deterministički
// pipeline nad snapshot-om i filter stanjem, bez sopstvenog stanja.
type ViewService struct{}

func NewViewService() *ViewService {
	return &ViewService{}
}

// DeriveView primenjuje faze filtriranja redom - svaka faza sužava prethodnu.
func (s *ViewService) DeriveView(tasks []models.Task, clients []models.Client, session models.SessionContext, filters models.FilterState) []models.Task {
	idx := BuildClientIndex(clients)

	result := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !isEligible(t, idx) {
			continue
		}
		if !matchesMonth(t, filters.Month) {
			continue
		}
		if !matchesViewMode(t, filters.ViewMode, session) {
			continue
		}
		// Department uslov se preskače samo u extraTasks modu.
		if filters.ViewMode != models.ViewModeExtraTasks && !isGraphicsTask(t) {
			continue
		}
		if !matchesTargetEmployee(t, filters.TargetEmployee, session) {
			continue
		}
		if !MatchesStatusBox(t.Status, filters.StatusBox) {
			continue
		}
		if !matchesAssignmentRole(t, filters.AssignmentRole, session) {
			continue
		}
		if !matchesSearch(t, filters.Search) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// isEligible je faza 1: task uopšte pripada graphics dashboard-u.
func isEligible(t models.Task, idx ClientIndex) bool {
	if !idx.HasActiveRef(t.ClientID, t.ClientName) {
		return false
	}
	if !isAuthorizedSender(t) {
		return false
	}
	if t.Department != models.DepartmentGraphics && t.AssignedToDept != models.DepartmentGraphics {
		return false
	}
	return models.OfficialStatuses[t.Status]
}

func isAuthorizedSender(t models.Task) bool {
	if models.AuthorizedSenders[t.AssignedBy] {
		return true
	}
	if t.AssignedFromSocialMedia {
		return true
	}
	return strings.Contains(t.AssignedBy, "Social Media")
}

func matchesMonth(t models.Task, month string) bool {
	if month == "" {
		return true
	}
	return strings.HasPrefix(t.DateKey(), month)
}

func matchesViewMode(t models.Task, mode models.ViewMode, session models.SessionContext) bool {
	switch mode {
	case models.ViewModeMyTasks:
		if t.AssignedTo == "" || t.AssignedTo == models.NotAssigned {
			return false
		}
		return t.AssignedTo == session.Name || t.AssignedTo == models.RoleGraphicsHead
	case models.ViewModeEmployeeTasks:
		if t.AssignedTo == "" || t.AssignedTo == models.NotAssigned {
			return false
		}
		return t.AssignedTo != session.Name && t.AssignedTo != models.RoleGraphicsHead
	case models.ViewModeAllTasks:
		return true
	case models.ViewModeExtraTasks:
		if t.AssignedBy == models.RoleGraphicsHead || t.AssignedBy == session.Name ||
			t.AssignedBy == models.RoleVideoHead || t.AssignedBy == models.RoleSocialMediaHead {
			return true
		}
		return t.AssignedFromSocialMedia || strings.Contains(t.AssignedBy, "Social Media")
	default:
		return isGraphicsTask(t)
	}
}

func isGraphicsTask(t models.Task) bool {
	return t.Department == models.DepartmentGraphics || t.OriginalDepartment == models.DepartmentGraphics
}

// matchesTargetEmployee je admin filter po konkretnom zaposlenom - važi samo
// kada je sesija u povišenom kontekstu.
func matchesTargetEmployee(t models.Task, target string, session models.SessionContext) bool {
	if target == "" {
		return true
	}
	if session.Role != models.RoleGraphicsHead && session.Role != models.RoleSuperAdmin {
		return true
	}
	return t.AssignedTo == target
}

// MatchesStatusBox mapira kliknutu statistiku na skup statusa.
func MatchesStatusBox(status models.TaskStatus, box models.StatusBoxFilter) bool {
	switch box {
	case "", models.StatusBoxAll, models.StatusBoxTotal:
		return true
	case models.StatusBoxInProgress:
		return status == models.StatusAssigned || status == models.StatusInProgress
	case models.StatusBoxPendingApproval:
		return status == models.StatusPendingClientApproval
	case models.StatusBoxCompleted:
		return status == models.StatusCompleted
	case models.StatusBoxApproved:
		return status == models.StatusApproved || status == models.StatusPosted
	default:
		return true
	}
}

func matchesAssignmentRole(t models.Task, role models.AssignmentRoleFilter, session models.SessionContext) bool {
	switch role {
	case models.AssignmentRoleHead:
		return t.AssignedTo == models.RoleGraphicsHead || t.AssignedTo == session.Name
	case models.AssignmentRoleEmployee:
		return t.AssignedTo != "" && t.AssignedTo != models.NotAssigned &&
			t.AssignedTo != models.RoleGraphicsHead && t.AssignedTo != session.Name
	default:
		return true
	}
}

func matchesSearch(t models.Task, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, field := range []string{t.ClientName, t.ClientID, t.TaskName, t.ProjectName} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// ClientGroup je jedan klijent sa njegovim taskovima, redosled taskova je
// redosled pristizanja.
type ClientGroup struct {
	ClientName string        `json:"clientName"`
	Tasks      []models.Task `json:"tasks"`
}

// GroupByClient grupiše taskove po imenu klijenta; taskovi bez imena idu u
// "Unknown Client" grupu. Redosled grupa prati prvo pojavljivanje klijenta.
func GroupByClient(tasks []models.Task) []ClientGroup {
	order := make([]string, 0)
	byClient := make(map[string][]models.Task)

	for _, t := range tasks {
		name := t.ClientName
		if name == "" {
			name = models.UnknownClient
		}
		if _, seen := byClient[name]; !seen {
			order = append(order, name)
		}
		byClient[name] = append(byClient[name], t)
	}

	groups := make([]ClientGroup, 0, len(order))
	for _, name := range order {
		groups = append(groups, ClientGroup{ClientName: name, Tasks: byClient[name]})
	}
	return groups
}

// IsOverdue - sirovi predikat, namerno nezavisan od statusa: i završen task je
// "overdue" ako mu je rok prošao (koristi se u istorijskim izveštajima).
func IsOverdue(t models.Task, now time.Time) bool {
	if t.Deadline == "" {
		return false
	}
	return now.Format("2006-01-02") > t.Deadline
}

// IsActionableOverdue - varijanta za prikaz: završeni i objavljeni taskovi se
// ne označavaju.
func IsActionableOverdue(t models.Task, now time.Time) bool {
	if t.Status == models.StatusCompleted || t.Status == models.StatusPosted {
		return false
	}
	return IsOverdue(t, now)
}
