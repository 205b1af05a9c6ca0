package employee

import (
	"strings"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/sheet"
)

const DefaultRange = "employees!A:H"

// systemPrefix marks service accounts kept in the employees sheet.
const systemPrefix = "SYS"

type Employee struct {
	EmployeeID string `json:"employee_id"`
	Nickname   string `json:"nickname"`
	Firstname  string `json:"firstname"`
	Lastname   string `json:"lastname"`
	Role       string `json:"role"`
	UserRole   string `json:"userRole"`
	Active     string `json:"active"`
	UserID     string `json:"userId"`
}

// IsActive reports whether the employee is a current, non-system employee.
func (e Employee) IsActive() bool {
	return e.Active == "TRUE" && !strings.HasPrefix(e.EmployeeID, systemPrefix)
}

// DisplayName prefers the nickname, falling back to the full name.
func (e Employee) DisplayName() string {
	if e.Nickname != "" {
		return e.Nickname
	}
	return strings.TrimSpace(e.Firstname + " " + e.Lastname)
}

func Parse(records []sheet.Record) []Employee {
	employees := make([]Employee, 0, len(records))
	for _, r := range records {
		employees = append(employees, Employee{
			EmployeeID: r.Get("employee_id"),
			Nickname:   r.Get("nickname"),
			Firstname:  r.Get("firstname"),
			Lastname:   r.Get("lastname"),
			Role:       r.Get("role"),
			UserRole:   r.Get("userRole"),
			Active:     r.Get("active"),
			UserID:     r.Get("userId"),
		})
	}
	return employees
}

// FindByUserID returns the first employee linked to the LINE user id.
func FindByUserID(employees []Employee, userID string) (Employee, error) {
	if userID == "" {
		return Employee{}, ErrEmployeeNotFound
	}
	for _, e := range employees {
		if e.UserID == userID {
			return e, nil
		}
	}
	return Employee{}, ErrEmployeeNotFound
}

// ActiveNames maps employee_id to display name for active employees.
func ActiveNames(employees []Employee) map[string]string {
	names := make(map[string]string)
	for _, e := range employees {
		if e.IsActive() {
			names[e.EmployeeID] = e.DisplayName()
		}
	}
	return names
}
