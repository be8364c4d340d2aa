package service

import (
	"context"
	"strconv"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/Payphone-Digital/auth-service/internal/dto"
	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/Payphone-Digital/auth-service/internal/model"
	ctxutil "github.com/Payphone-Digital/auth-service/pkg/context"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/Payphone-Digital/auth-service/pkg/validation"
)

type EmployeeStore interface {
	Create(ctx context.Context, employee *model.Employee) error
	GetByID(ctx context.Context, id uint) (*model.Employee, error)
}

type EmployeeService struct {
	employees EmployeeStore
	registry  *validation.Registry
}

func NewEmployeeService(employees EmployeeStore, registry *validation.Registry) *EmployeeService {
	return &EmployeeService{employees: employees, registry: registry}
}

// Create records an employee owned by the authenticated subject creatorID.
func (s *EmployeeService) Create(ctx context.Context, creatorID string, attrs map[string]any) (*dto.Resource, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CreateEmployee")

	creator, err := strconv.ParseUint(creatorID, 10, 64)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	values, err := s.registry.Employee().Validate(attrs)
	if err != nil {
		return nil, err
	}

	age, ok := values.Int("age")
	if !ok {
		return nil, apperrors.NewValidationError(apperrors.FieldError{Field: "age", Message: "Age must be a whole number"})
	}

	employee := &model.Employee{
		Name:      values.String("name"),
		Email:     values.String("email"),
		Age:       age,
		CreatedBy: uint(creator),
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, err
	}

	logger.InfoWithContext(ctx, "Employee created").
		Uint("employee_id", employee.ID).
		String("created_by", creatorID).
		Log()

	return employeeResource(employee), nil
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*dto.Resource, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetEmployee")

	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 {
		return nil, apperrors.ErrEmployeeNotFound
	}

	employee, err := s.employees.GetByID(ctx, uint(n))
	if err != nil {
		return nil, err
	}
	return employeeResource(employee), nil
}

func employeeResource(e *model.Employee) *dto.Resource {
	return &dto.Resource{
		Type: constants.ResourceTypeEmployees,
		ID:   e.PublicID(),
		Attributes: dto.EmployeeAttributes{
			Name:      e.Name,
			Email:     e.Email,
			Age:       e.Age,
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
		},
		Relationships: map[string]dto.Relationship{
			"createdBy": {Data: dto.ResourceIdentifier{
				Type: constants.ResourceTypeUsers,
				ID:   strconv.FormatUint(uint64(e.CreatedBy), 10),
			}},
		},
	}
}
