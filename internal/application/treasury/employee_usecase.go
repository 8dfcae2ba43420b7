package treasury

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/numbering"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// EmployeeUseCase alta y consulta de empleados.
type EmployeeUseCase struct {
	txRunner  TxRunner
	employees repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(txRunner TxRunner, employees repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{txRunner: txRunner, employees: employees}
}

// Create da de alta un empleado con número EMP-XXXX.
func (uc *EmployeeUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if in.FirstName == "" || in.LastName == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	hireDate := in.HireDate
	if hireDate.IsZero() {
		hireDate = now
	}
	employee := &entity.Employee{
		ID:        uuid.New().String(),
		CompanyID: actor.CompanyID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Position:  in.Position,
		Email:     in.Email,
		HireDate:  hireDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.txRunner.RunTreasury(ctx, func(
		seqRepo repository.SequenceRepository,
		employeeRepo repository.EmployeeRepository,
		_ repository.LoanRepository,
		_ repository.ExpenseRepository,
		_ repository.LedgerRepository,
	) error {
		number, err := numbering.Next(ctx, seqRepo, actor.CompanyID, numbering.FamilyEmployee, now)
		if err != nil {
			return err
		}
		employee.Number = number
		return employeeRepo.Create(ctx, employee)
	})
	if err != nil {
		return nil, err
	}
	return employeeToResponse(employee), nil
}

// GetByID obtiene un empleado.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.EmployeeResponse, error) {
	employee, err := uc.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	if employee.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return employeeToResponse(employee), nil
}

// List lista empleados de la empresa.
func (uc *EmployeeUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]*dto.EmployeeResponse, error) {
	page.DefaultPage()
	list, err := uc.employees.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, employeeToResponse(e))
	}
	return out, nil
}

func employeeToResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:        e.ID,
		Number:    e.Number,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Position:  e.Position,
		Email:     e.Email,
		HireDate:  e.HireDate,
	}
}
