package employee

import (
	"context"

	"github.com/silangan-hr/payroll-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapToEmployeeResponse(emp), nil
}

func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	employees, totalCount, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	data := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		data = append(data, mapToEmployeeResponse(emp))
	}

	return employee.ListEmployeeResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func mapToEmployeeResponse(emp employee.Employee) employee.EmployeeResponse {
	benefits := make([]employee.BenefitResponse, 0, len(emp.Compensation.Benefits))
	for _, b := range emp.Compensation.Benefits {
		benefits = append(benefits, employee.BenefitResponse{
			BenefitTypeID: b.BenefitTypeID,
			Amount:        b.Amount,
		})
	}

	return employee.EmployeeResponse{
		ID:               emp.ID,
		EmployeeCode:     emp.EmployeeCode,
		FullName:         emp.FullName,
		EmploymentStatus: string(emp.EmploymentStatus),
		HireDate:         emp.HireDate.Format("2006-01-02"),
		BasicSalary:      emp.Compensation.BasicSalary,
		HourlyRate:       emp.Compensation.HourlyRate,
		Benefits:         benefits,
	}
}
