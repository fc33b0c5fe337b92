package repository

import "github.com/tu-usuario/gestion-pyme/internal/domain/entity"

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(id int64) (*entity.Employee, error)
	Update(employee *entity.Employee) error
	List(limit, offset int) ([]*entity.Employee, error)
	Delete(id int64) error
}
