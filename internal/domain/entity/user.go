package entity

import "time"

// Role capacidades tipadas de la aplicación; los guards del circuito de
// aprobación comparan contra estas constantes, nunca contra strings ad hoc.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleDG             Role = "dg"              // dirección general
	RoleServiceManager Role = "service_manager" // responsable de servicio
	RoleAccountant     Role = "comptable"
	RoleAgent          Role = "agent"
)

// Valid indica si el rol es uno de los soportados.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDG, RoleServiceManager, RoleAccountant, RoleAgent:
		return true
	}
	return false
}

// User usuario autenticable de la aplicación.
type User struct {
	ID           string
	CompanyID    string
	ServiceID    string // servicio (departamento) al que pertenece
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor identidad autenticada que dispara una acción, extraída del JWT.
type Actor struct {
	UserID    string
	CompanyID string
	ServiceID string
	Role      Role
}

// CanApproveService indica si el actor puede aprobar presupuestos del servicio dado.
func (a Actor) CanApproveService(serviceID string) bool {
	return a.Role == RoleServiceManager && a.ServiceID == serviceID
}

// CanApproveDG indica si el actor tiene capacidad de aprobación de dirección general.
func (a Actor) CanApproveDG() bool {
	return a.Role == RoleDG
}
