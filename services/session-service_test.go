package services

import (
	"testing"

	"digi-agency/microservices/graphics-service/models"
)

type fakeEmployeeSource struct {
	employees []models.Employee
}

func (f *fakeEmployeeSource) Employees() []models.Employee {
	return f.employees
}

func TestCheckSession(t *testing.T) {
	source := &fakeEmployeeSource{employees: []models.Employee{
		{EmployeeName: "Milica", Email: "milica@digi-agency.local", Status: "active"},
		{EmployeeName: "Petar", Email: "petar@digi-agency.local", Status: "inactive"},
		{EmployeeName: "Jovana", Email: "jovana@digi-agency.local", Status: "active", Deleted: true},
	}}
	service := NewSessionService(source)

	cases := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"active employee", "milica@digi-agency.local", false},
		{"inactive employee", "petar@digi-agency.local", true},
		{"deleted employee", "jovana@digi-agency.local", true},
		{"missing record", "ghost@digi-agency.local", true},
		{"system account without record", models.SystemAccountEmail, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := service.CheckSession(models.SessionContext{Email: c.email})
			if (err != nil) != c.wantErr {
				t.Errorf("CheckSession(%s) error = %v, wantErr %v", c.email, err, c.wantErr)
			}
		})
	}
}
