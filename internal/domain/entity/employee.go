package entity

import "time"

// Employee representa un empleado (nómina, préstamos).
type Employee struct {
	ID        string
	CompanyID string
	Number    string // EMP-0001
	FirstName string
	LastName  string
	Position  string
	Email     string
	HireDate  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
