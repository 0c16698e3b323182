package services

import (
	"fmt"

	"digi-agency/microservices/graphics-service/models"
)

// EmployeeSource daje trenutni snapshot kolekcije employees.
type EmployeeSource interface {
	Employees() []models.Employee
}

// SessionService poredi prijavljenog korisnika sa njegovim zapisom u employees
// kolekciji. Ako je zapis obrisan, deaktiviran ili ne postoji, sesija pada u
// celini - nema delimičnog pristupa.
type SessionService struct {
	employees EmployeeSource
}

func NewSessionService(employees EmployeeSource) *SessionService {
	return &SessionService{employees: employees}
}

func (s *SessionService) CheckSession(session models.SessionContext) error {
	// Sistemski nalog ne mora da ima zapis u employees kolekciji.
	if session.Email == models.SystemAccountEmail {
		return nil
	}

	for _, e := range s.employees.Employees() {
		if e.Email != session.Email {
			continue
		}
		if e.Deleted {
			return fmt.Errorf("employee record has been deleted")
		}
		if e.Status == "inactive" || e.Status == "disabled" {
			return fmt.Errorf("employee account is %s", e.Status)
		}
		return nil
	}

	return fmt.Errorf("no employee record found for %s", session.Email)
}
