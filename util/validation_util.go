// util/validation_util.go

package util

import (
	"fmt"

	"github.com/sakethdamerla/li-hrms-sub003/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

func (v *ValidationUtil) ValidateRequest(request model.Request) error {
	if !request.Type.Valid() {
		return fmt.Errorf("unknown request type: %s", request.Type)
	}
	if request.EmployeeID == "" && request.EmployeeNo == "" {
		return fmt.Errorf("request must identify an employee")
	}
	if request.FromDate.IsZero() || request.ToDate.IsZero() {
		return fmt.Errorf("request must have a from date and a to date")
	}
	if request.FromDate.After(request.ToDate) {
		return fmt.Errorf("from date cannot be after to date")
	}
	if request.Purpose == "" {
		return fmt.Errorf("request purpose cannot be empty")
	}

	if request.IsHalfDay {
		if !request.Interval().SingleDay() {
			return fmt.Errorf("half day request must cover exactly one day")
		}
		if request.HalfDayType != model.FirstHalf && request.HalfDayType != model.SecondHalf {
			return fmt.Errorf("half day type must be %s or %s", model.FirstHalf, model.SecondHalf)
		}
	}

	switch request.Type {
	case model.RequestTypeLeave, model.RequestTypeOD:
		if request.NumberOfDays <= 0 {
			return fmt.Errorf("number of days must be positive")
		}
	case model.RequestTypePermission:
		return v.validatePermissionFields(request)
	}

	return nil
}

func (v *ValidationUtil) validatePermissionFields(request model.Request) error {
	if !request.Interval().SingleDay() {
		return fmt.Errorf("permission request must cover exactly one day")
	}
	if request.StartTime == nil || request.EndTime == nil {
		return fmt.Errorf("permission request must have a start time and an end time")
	}
	if !request.StartTime.Before(*request.EndTime) {
		return fmt.Errorf("permission start time must be before end time")
	}
	return nil
}

func (v *ValidationUtil) ValidateWorkflowDefinition(def model.WorkflowDefinition) error {
	if !def.RequestType.Valid() {
		return fmt.Errorf("unknown request type: %s", def.RequestType)
	}
	if len(def.Steps) == 0 {
		return fmt.Errorf("workflow definition must have at least one step")
	}
	for _, step := range def.Steps {
		if step.Role == "" {
			return fmt.Errorf("workflow step %d must have a role", step.Order)
		}
	}
	return nil
}
