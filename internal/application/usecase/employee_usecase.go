package usecase

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

// EmployeeUseCase casos de uso CRUD para empleados.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// Create crea un empleado (activo por defecto).
func (uc *EmployeeUseCase) Create(in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if in.Salary.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := time.Now()
	employee := &entity.Employee{
		Name:      in.Name,
		Position:  in.Position,
		Salary:    in.Salary,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// GetByID obtiene un empleado. Devuelve nil si no existe.
func (uc *EmployeeUseCase) GetByID(id int64) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, nil
	}
	return toEmployeeResponse(employee), nil
}

// Update actualiza los datos de un empleado.
func (uc *EmployeeUseCase) Update(id int64, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	if in.Salary.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	employee.Name = in.Name
	employee.Position = in.Position
	employee.Salary = in.Salary
	if in.Active != nil {
		employee.Active = *in.Active
	}
	employee.UpdatedAt = time.Now()
	if err := uc.repo.Update(employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// List lista empleados con paginación.
func (uc *EmployeeUseCase) List(page dto.PageRequest) ([]dto.EmployeeResponse, error) {
	page.DefaultPage()
	employees, err := uc.repo.List(page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, *toEmployeeResponse(e))
	}
	return out, nil
}

// Delete elimina un empleado.
func (uc *EmployeeUseCase) Delete(id int64) error {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if employee == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:        e.ID,
		Name:      e.Name,
		Position:  e.Position,
		Salary:    e.Salary,
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
