package services

import (
	"testing"
	"time"

	"digi-agency/microservices/graphics-service/models"
)

func newTestReportService(now time.Time) *ReportService {
	service := NewReportService()
	service.now = func() time.Time { return now }
	return service
}

func TestCompletionRateEmptyList(t *testing.T) {
	report := newTestReportService(fixedNow).Aggregate(nil)
	if report.CompletionRate != 0 {
		t.Errorf("completion rate of empty list = %d, want 0", report.CompletionRate)
	}
	if report.Total != 0 {
		t.Errorf("total of empty list = %d, want 0", report.Total)
	}
}

func TestCompletionRateRounding(t *testing.T) {
	cases := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 1, 100},
		{1, 8, 13}, // 12.5 se zaokružuje naviše
	}
	for _, c := range cases {
		if got := CompletionRate(c.completed, c.total); got != c.want {
			t.Errorf("CompletionRate(%d, %d) = %d, want %d", c.completed, c.total, got, c.want)
		}
	}
}

func TestStatusBuckets(t *testing.T) {
	tasks := []models.Task{
		{Status: models.StatusCompleted},
		{Status: models.StatusPosted},
		{Status: models.StatusApproved},
		{Status: models.StatusInProgress},
		{Status: models.StatusAssigned},
		{Status: models.StatusPendingClientApproval},
		{Status: models.StatusPending},
	}

	report := newTestReportService(fixedNow).Aggregate(tasks)

	if report.Total != 7 {
		t.Errorf("total = %d, want 7", report.Total)
	}
	if report.Completed != 3 {
		t.Errorf("completed bucket = %d, want 3 (completed+posted+approved)", report.Completed)
	}
	if report.InProgress != 2 {
		t.Errorf("inProgress bucket = %d, want 2 (in-progress+assigned)", report.InProgress)
	}
	if report.PendingApproval != 1 {
		t.Errorf("pendingApproval bucket = %d, want 1", report.PendingApproval)
	}
}

func TestClientAndEmployeeRollups(t *testing.T) {
	tasks := []models.Task{
		{ClientName: "Acme", ClientID: "c-1", AssignedTo: "Alice", Status: models.StatusCompleted},
		{ClientName: "Acme", ClientID: "c-ignored", AssignedTo: "Alice", Status: models.StatusInProgress},
		{ClientName: "Beta", AssignedTo: "", Status: models.StatusPending},
		{ClientName: "", AssignedTo: models.NotAssigned, Status: models.StatusAssigned},
	}

	report := newTestReportService(fixedNow).Aggregate(tasks)

	if len(report.Clients) != 3 {
		t.Fatalf("expected 3 client rollups, got %d", len(report.Clients))
	}
	acme := report.Clients[0]
	if acme.ClientName != "Acme" || acme.ClientID != "c-1" {
		t.Errorf("clientId must come from the first task seen, got %+v", acme)
	}
	if acme.Total != 2 || acme.Completed != 1 || acme.InProgress != 1 {
		t.Errorf("Acme counts wrong: %+v", acme)
	}
	if report.Clients[2].ClientName != models.UnknownClient {
		t.Errorf("missing client name must roll up under %q", models.UnknownClient)
	}

	if len(report.Employees) != 2 {
		t.Fatalf("expected 2 employee rollups, got %d", len(report.Employees))
	}
	if report.Employees[0].EmployeeName != "Alice" || report.Employees[0].Total != 2 {
		t.Errorf("Alice rollup wrong: %+v", report.Employees[0])
	}
	if report.Employees[1].EmployeeName != "Unassigned" || report.Employees[1].Total != 2 {
		t.Errorf("empty and Not Assigned must share the Unassigned bucket: %+v", report.Employees[1])
	}
}

func TestSevenDayTrend(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	service := newTestReportService(now)

	completedToday := now
	completedLastWeek := now.AddDate(0, 0, -8)
	tasks := []models.Task{
		{PostDate: "2024-03-10", CompletedAt: &completedToday},
		{PostDate: "2024-03-04"},          // prvi dan prozora
		{PostDate: "2024-03-03"},          // dan pre prozora
		{CompletedAt: &completedLastWeek}, // van prozora
		{PostDate: "2024-03-10"},
	}

	trend := service.Aggregate(tasks).Trend

	if len(trend) != 7 {
		t.Fatalf("expected 7 trend points, got %d", len(trend))
	}
	if trend[0].Date != "2024-03-04" || trend[6].Date != "2024-03-10" {
		t.Fatalf("trend window misaligned: %s .. %s", trend[0].Date, trend[6].Date)
	}
	if trend[6].Dispatched != 2 {
		t.Errorf("dispatched today = %d, want 2", trend[6].Dispatched)
	}
	if trend[6].Completed != 1 {
		t.Errorf("completed today = %d, want 1", trend[6].Completed)
	}
	if trend[0].Dispatched != 1 {
		t.Errorf("dispatched on window start = %d, want 1", trend[0].Dispatched)
	}
	total := 0
	for _, p := range trend {
		total += p.Dispatched
	}
	if total != 3 {
		t.Errorf("tasks outside the window must not be counted, got %d dispatched", total)
	}
}
