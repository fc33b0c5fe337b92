package repository

import "github.com/tu-usuario/gestion-pyme/internal/domain/entity"

// ClientRepository define el puerto de persistencia para Client (DIP).
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id int64) (*entity.Client, error)
	Update(client *entity.Client) error
	List(limit, offset int) ([]*entity.Client, error)
	Delete(id int64) error
}
