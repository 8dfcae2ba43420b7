package dto

import "time"

// CreateEmployeeRequest alta de empleado.
type CreateEmployeeRequest struct {
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Position  string    `json:"position"`
	Email     string    `json:"email"`
	HireDate  time.Time `json:"hire_date"`
}

// EmployeeResponse empleado persistido.
type EmployeeResponse struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Position  string    `json:"position"`
	Email     string    `json:"email,omitempty"`
	HireDate  time.Time `json:"hire_date"`
}
