package repository

import (
	"context"
	"time"

	"github.com/Daina40/KadenaPrdn/internal/style/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// GetOrCreateByName finds a customer by its (already normalized) name or
// creates it. The unique index on name backstops concurrent creates.
func (r *CustomerRepository) GetOrCreateByName(ctx context.Context, name string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Attrs(entity.Customer{
			ID:        uuid.New().String()[:32],
			CreatedAt: time.Now(),
		}).
		FirstOrCreate(&customer, entity.Customer{Name: name}).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByID loads one customer.
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &customer, nil
}

// ListAll returns every customer ordered by name.
func (r *CustomerRepository) ListAll(ctx context.Context) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := r.db.WithContext(ctx).Order("name ASC").Find(&customers).Error
	return customers, err
}
