package employee

import (
	"context"
	"errors"
	"testing"

	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/employee"
	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/supervisor"
	"github.com/Hamza-Malik05/plant-management-backend/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSupervisors struct {
	rows map[string]supervisor.Supervisor
}

func (s *stubSupervisors) GetByID(_ context.Context, id string) (supervisor.Supervisor, error) {
	sv, ok := s.rows[id]
	if !ok {
		return supervisor.Supervisor{}, supervisor.ErrSupervisorNotFound
	}
	return sv, nil
}

func (s *stubSupervisors) GetByUsername(_ context.Context, username string) (supervisor.Supervisor, error) {
	for _, sv := range s.rows {
		if sv.Username == username {
			return sv, nil
		}
	}
	return supervisor.Supervisor{}, supervisor.ErrSupervisorNotFound
}

func (s *stubSupervisors) List(_ context.Context) ([]supervisor.Supervisor, error) {
	out := []supervisor.Supervisor{}
	for _, sv := range s.rows {
		out = append(out, sv)
	}
	return out, nil
}

func (s *stubSupervisors) Create(_ context.Context, sv supervisor.Supervisor) (supervisor.Supervisor, error) {
	sv.ID = uuid.NewString()
	s.rows[sv.ID] = sv
	return sv, nil
}

type stubEmployees struct {
	rows []employee.Employee
}

func (s *stubEmployees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range s.rows {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (s *stubEmployees) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return s.GetByID(ctx, id)
}

func (s *stubEmployees) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	out := []employee.Employee{}
	for _, e := range s.rows {
		if filter.SupervisorID != nil && (e.SupervisorID == nil || *e.SupervisorID != *filter.SupervisorID) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *stubEmployees) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	for _, existing := range s.rows {
		if existing.EmployeeCode == e.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}
	e.ID = uuid.NewString()
	s.rows = append(s.rows, e)
	return e, nil
}

func (s *stubEmployees) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	for i, existing := range s.rows {
		if existing.ID == e.ID {
			s.rows[i] = e
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

const supervisorID = "0190c6f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"

func newTestService() (employee.EmployeeService, *stubEmployees) {
	employees := &stubEmployees{}
	supervisors := &stubSupervisors{rows: map[string]supervisor.Supervisor{
		supervisorID: {ID: supervisorID, Username: "lead", FullName: "Shift Lead"},
	}}
	return NewEmployeeService(employees, supervisors, 12), employees
}

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults leaves", func(t *testing.T) {
		svc, _ := newTestService()
		sid := supervisorID

		resp, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
			SupervisorID: &sid,
			EmployeeCode: " 2024-0001 ",
			FullName:     "Hassan Ali",
		})
		require.NoError(t, err)
		assert.Equal(t, 12, resp.Leaves)
		assert.Equal(t, 0, resp.Absences)
		assert.Equal(t, "2024-0001", resp.EmployeeCode)
		assert.Equal(t, &sid, resp.SupervisorID)
	})

	t.Run("explicit leaves", func(t *testing.T) {
		svc, _ := newTestService()
		leaves := 3

		resp, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
			EmployeeCode: "2024-0002",
			FullName:     "Sana Javed",
			Leaves:       &leaves,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, resp.Leaves)
		assert.Nil(t, resp.SupervisorID)
	})

	t.Run("duplicate code", func(t *testing.T) {
		svc, _ := newTestService()
		req := employee.CreateEmployeeRequest{EmployeeCode: "2024-0003", FullName: "Omar Farooq"}

		_, err := svc.CreateEmployee(ctx, req)
		require.NoError(t, err)
		_, err = svc.CreateEmployee(ctx, req)
		assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
	})

	t.Run("unknown supervisor", func(t *testing.T) {
		svc, _ := newTestService()
		other := "0190c6f2-0000-7b4a-8a2b-6b8b8b8b8b8b"

		_, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
			SupervisorID: &other,
			EmployeeCode: "2024-0004",
			FullName:     "Imran Qureshi",
		})
		assert.ErrorIs(t, err, supervisor.ErrSupervisorNotFound)
	})

	t.Run("bad code format", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{EmployeeCode: "20240005", FullName: "X"})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Contains(t, verrs.ToMap(), "employee_code")
	})
}

func TestUpdateEmployee(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{EmployeeCode: "2024-0010", FullName: "Zainab Hussain"})
	require.NoError(t, err)

	absences, leaves := 4, -2
	updated, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{
		ID:           created.ID,
		EmployeeCode: "2024-0011",
		FullName:     "Zainab H.",
		Absences:     &absences,
		Leaves:       &leaves,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-0011", updated.EmployeeCode)
	assert.Equal(t, 4, updated.Absences)
	assert.Equal(t, -2, updated.Leaves)

	// Counters are kept when omitted.
	updated, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{
		ID:           created.ID,
		EmployeeCode: "2024-0011",
		FullName:     "Zainab Hussain",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Absences)
	assert.Equal(t, -2, updated.Leaves)

	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: "missing", EmployeeCode: "2024-0012", FullName: "Nobody"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestListEmployees(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	sid := supervisorID

	_, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{SupervisorID: &sid, EmployeeCode: "2024-0020", FullName: "A"})
	require.NoError(t, err)
	_, err = svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{EmployeeCode: "2024-0021", FullName: "B"})
	require.NoError(t, err)

	all, err := svc.ListEmployees(ctx, employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListEmployees(ctx, employee.EmployeeFilter{SupervisorID: &sid})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "2024-0020", mine[0].EmployeeCode)

	got, err := svc.GetEmployee(ctx, mine[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.FullName)
}
