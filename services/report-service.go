package services

import (
	"math"
	"time"

	"digi-agency/microservices/graphics-service/models"
)

// ReportService svodi listu taskova na statistiku za dashboard kartice i izvoz.
type ReportService struct {
	now func() time.Time
}

func NewReportService() *ReportService {
	return &ReportService{now: time.Now}
}

func countStatus(counts *models.StatusCounts, status models.TaskStatus) {
	counts.Total++
	switch status {
	case models.StatusCompleted, models.StatusPosted, models.StatusApproved:
		counts.Completed++
	case models.StatusInProgress, models.StatusAssigned:
		counts.InProgress++
	case models.StatusPendingClientApproval:
		counts.PendingApproval++
	}
}

// Aggregate računa ukupne brojače, stopu završenosti, rollup po klijentu i
// zaposlenom i sedmodnevni trend.
func (s *ReportService) Aggregate(tasks []models.Task) models.Report {
	var report models.Report

	clientOrder := make([]string, 0)
	clientRollups := make(map[string]*models.ClientRollup)
	employeeOrder := make([]string, 0)
	employeeRollups := make(map[string]*models.EmployeeRollup)

	for _, t := range tasks {
		countStatus(&report.StatusCounts, t.Status)

		clientName := t.ClientName
		if clientName == "" {
			clientName = models.UnknownClient
		}
		cr, ok := clientRollups[clientName]
		if !ok {
			// clientId se nosi iz prvog viđenog taska tog klijenta
			cr = &models.ClientRollup{ClientID: t.ClientID, ClientName: clientName}
			clientRollups[clientName] = cr
			clientOrder = append(clientOrder, clientName)
		}
		countStatus(&cr.StatusCounts, t.Status)

		employeeName := t.AssignedTo
		if employeeName == "" || employeeName == models.NotAssigned {
			employeeName = "Unassigned"
		}
		er, ok := employeeRollups[employeeName]
		if !ok {
			er = &models.EmployeeRollup{EmployeeName: employeeName}
			employeeRollups[employeeName] = er
			employeeOrder = append(employeeOrder, employeeName)
		}
		countStatus(&er.StatusCounts, t.Status)
	}

	report.CompletionRate = CompletionRate(report.Completed, report.Total)

	report.Clients = make([]models.ClientRollup, 0, len(clientOrder))
	for _, name := range clientOrder {
		report.Clients = append(report.Clients, *clientRollups[name])
	}
	report.Employees = make([]models.EmployeeRollup, 0, len(employeeOrder))
	for _, name := range employeeOrder {
		report.Employees = append(report.Employees, *employeeRollups[name])
	}

	report.Trend = s.trend(tasks)
	return report
}

// CompletionRate - procenat završenih, zaokružen na ceo broj; 0 za praznu listu.
func CompletionRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// trend gradi seriju za poslednjih 7 kalendarskih dana (zaključno sa danas):
// taskovi se broje po postDate (slanje) i po completedAt (završetak).
func (s *ReportService) trend(tasks []models.Task) []models.TrendPoint {
	today := s.now()

	points := make([]models.TrendPoint, 7)
	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		day := today.AddDate(0, 0, i-6).Format("2006-01-02")
		points[i] = models.TrendPoint{Date: day}
		index[day] = i
	}

	for _, t := range tasks {
		if i, ok := index[t.PostDate]; ok {
			points[i].Dispatched++
		}
		if t.CompletedAt != nil {
			if i, ok := index[t.CompletedAt.Format("2006-01-02")]; ok {
				points[i].Completed++
			}
		}
	}

	return points
}
