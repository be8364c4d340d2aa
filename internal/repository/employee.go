package repository

import (
	"context"

	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/Payphone-Digital/auth-service/internal/model"
	ctxutil "github.com/Payphone-Digital/auth-service/pkg/context"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"gorm.io/gorm"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CreateEmployee")

	if err := r.db.WithContext(ctx).Create(employee).Error; err != nil {
		err = translateWriteError(err)
		logger.WarnWithContext(ctx, "Failed to create employee").
			String("email", employee.Email).
			Err(err).
			Log()
		return err
	}

	logger.InfoWithContext(ctx, "Employee created").
		Uint("employee_id", employee.ID).
		Uint("created_by", employee.CreatedBy).
		Log()
	return nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id uint) (*model.Employee, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetEmployeeByID")

	var employee model.Employee
	if err := r.db.WithContext(ctx).First(&employee, id).Error; err != nil {
		return nil, translateReadError(err, apperrors.ErrEmployeeNotFound)
	}
	return &employee, nil
}
