package utils

import (
	"fmt"
	"strings"
	"time"

	"digi-agency/microservices/graphics-service/models"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderReportCSV serijalizuje agregate i sirove redove taskova u CSV tekst.
// Raspored je fiksan: zbirna statistika, rollup po klijentu, rollup po
// zaposlenom, sedmodnevni trend, pa redovi taskova.
func RenderReportCSV(report models.Report, tasks []models.Task) string {
	var b strings.Builder

	summary := table.NewWriter()
	summary.AppendHeader(table.Row{"Total", "Completed", "In Progress", "Pending Approval", "Completion Rate (%)"})
	summary.AppendRow(table.Row{report.Total, report.Completed, report.InProgress, report.PendingApproval, report.CompletionRate})
	b.WriteString(summary.RenderCSV())
	b.WriteString("\n\n")

	clients := table.NewWriter()
	clients.AppendHeader(table.Row{"Client", "Client ID", "Total", "Completed", "In Progress", "Pending Approval"})
	for _, c := range report.Clients {
		clients.AppendRow(table.Row{c.ClientName, c.ClientID, c.Total, c.Completed, c.InProgress, c.PendingApproval})
	}
	b.WriteString(clients.RenderCSV())
	b.WriteString("\n\n")

	employees := table.NewWriter()
	employees.AppendHeader(table.Row{"Employee", "Total", "Completed", "In Progress", "Pending Approval"})
	for _, e := range report.Employees {
		employees.AppendRow(table.Row{e.EmployeeName, e.Total, e.Completed, e.InProgress, e.PendingApproval})
	}
	b.WriteString(employees.RenderCSV())
	b.WriteString("\n\n")

	trend := table.NewWriter()
	trend.AppendHeader(table.Row{"Date", "Dispatched", "Completed"})
	for _, p := range report.Trend {
		trend.AppendRow(table.Row{p.Date, p.Dispatched, p.Completed})
	}
	b.WriteString(trend.RenderCSV())
	b.WriteString("\n\n")

	rows := table.NewWriter()
	rows.AppendHeader(table.Row{"Client", "Task", "Project", "Type", "Status", "Assigned To", "Deadline", "Post Date", "Revisions"})
	for _, t := range tasks {
		clientName := t.ClientName
		if clientName == "" {
			clientName = models.UnknownClient
		}
		assignedTo := t.AssignedTo
		if assignedTo == "" {
			assignedTo = models.NotAssigned
		}
		rows.AppendRow(table.Row{
			clientName, t.TaskName, t.ProjectName, t.TaskType,
			string(t.Status), assignedTo, t.Deadline, t.PostDate, t.RevisionCount,
		})
	}
	b.WriteString(rows.RenderCSV())
	b.WriteString("\n")

	return b.String()
}

// ExportFilename kodira klijenta i izabrani mesec u ime fajla.
func ExportFilename(clientName, month string) string {
	if clientName == "" {
		clientName = "all-clients"
	}
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	sanitized := strings.ToLower(strings.ReplaceAll(clientName, " ", "-"))
	return fmt.Sprintf("graphics-report_%s_%s.csv", sanitized, month)
}
