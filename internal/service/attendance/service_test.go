package attendance

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/attendance"
	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/employee"
	"github.com/Hamza-Malik05/plant-management-backend/internal/pkg/sse"
	"github.com/Hamza-Malik05/plant-management-backend/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memEmployees struct {
	mu   sync.Mutex
	rows map[string]employee.Employee
	// order keeps List deterministic.
	order []string
}

func newMemEmployees(list ...employee.Employee) *memEmployees {
	m := &memEmployees{rows: map[string]employee.Employee{}}
	for _, e := range list {
		m.rows[e.ID] = e
		m.order = append(m.order, e.ID)
	}
	return m
}

func (m *memEmployees) GetByID(_ context.Context, id string) (employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *memEmployees) GetByIDForUpdate(ctx context.Context, id string) (employee.Employee, error) {
	return m.GetByID(ctx, id)
}

func (m *memEmployees) List(_ context.Context, _ employee.EmployeeFilter) ([]employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]employee.Employee, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.rows[id])
	}
	return out, nil
}

func (m *memEmployees) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = uuid.NewString()
	m.rows[e.ID] = e
	m.order = append(m.order, e.ID)
	return e, nil
}

func (m *memEmployees) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[e.ID]; !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	m.rows[e.ID] = e
	return e, nil
}

type memAttendance struct {
	mu        sync.Mutex
	rows      map[string]attendance.Attendance
	employees *memEmployees
	updateErr error
}

func newMemAttendance(employees *memEmployees) *memAttendance {
	return &memAttendance{rows: map[string]attendance.Attendance{}, employees: employees}
}

func (m *memAttendance) withName(a attendance.Attendance) attendance.Attendance {
	if e, ok := m.employees.rows[a.EmployeeID]; ok {
		name := e.FullName
		a.EmployeeName = &name
	}
	return a
}

func (m *memAttendance) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return m.withName(a), nil
}

func (m *memAttendance) GetByIDForUpdate(ctx context.Context, id string) (attendance.Attendance, error) {
	return m.GetByID(ctx, id)
}

func (m *memAttendance) find(employeeID string, date time.Time) *attendance.Attendance {
	for _, a := range m.rows {
		if a.EmployeeID == employeeID && a.Date.Equal(attendance.DateOf(date)) {
			a := a
			return &a
		}
	}
	return nil
}

func (m *memAttendance) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(employeeID, date), nil
}

func (m *memAttendance) sorted(keep func(attendance.Attendance) bool) []attendance.Attendance {
	out := []attendance.Attendance{}
	for _, a := range m.rows {
		if keep(a) {
			out = append(out, m.withName(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memAttendance) ListByEmployee(_ context.Context, employeeID string) ([]attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(a attendance.Attendance) bool { return a.EmployeeID == employeeID }), nil
}

func (m *memAttendance) ListByDate(_ context.Context, date time.Time) ([]attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	day := attendance.DateOf(date)
	return m.sorted(func(a attendance.Attendance) bool { return a.Date.Equal(day) }), nil
}

func (m *memAttendance) insert(a attendance.Attendance) (attendance.Attendance, bool) {
	a.Date = attendance.DateOf(a.Date)
	if m.find(a.EmployeeID, a.Date) != nil {
		return attendance.Attendance{}, false
	}
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	m.rows[a.ID] = a
	return a, true
}

func (m *memAttendance) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	created, ok := m.insert(a)
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceExists
	}
	return created, nil
}

func (m *memAttendance) CreateMany(_ context.Context, records []attendance.Attendance) ([]attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []attendance.Attendance{}
	for _, r := range records {
		if created, ok := m.insert(r); ok {
			out = append(out, created)
		}
	}
	return out, nil
}

func (m *memAttendance) Update(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return attendance.Attendance{}, m.updateErr
	}
	existing, ok := m.rows[a.ID]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	existing.ClockIn = a.ClockIn
	existing.ClockOut = a.ClockOut
	existing.Status = a.Status
	existing.AbsenceCharged = a.AbsenceCharged
	existing.UpdatedAt = time.Now()
	m.rows[a.ID] = existing
	return existing, nil
}

// snapshotTx rolls both stores back when fn fails.
type snapshotTx struct {
	employees  *memEmployees
	attendance *memAttendance
}

func (s *snapshotTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	empRows := map[string]employee.Employee{}
	for k, v := range s.employees.rows {
		empRows[k] = v
	}
	attRows := map[string]attendance.Attendance{}
	for k, v := range s.attendance.rows {
		attRows[k] = v
	}

	if err := fn(ctx); err != nil {
		s.employees.rows = empRows
		s.attendance.rows = attRows
		return err
	}
	return nil
}

type recordingPublisher struct {
	events []sse.Event
}

func (p *recordingPublisher) Publish(_ string, event sse.Event) {
	p.events = append(p.events, event)
}

type fixture struct {
	svc       attendance.AttendanceService
	employees *memEmployees
	records   *memAttendance
	published *recordingPublisher
}

func newFixture(list ...employee.Employee) fixture {
	employees := newMemEmployees(list...)
	records := newMemAttendance(employees)
	pub := &recordingPublisher{}
	svc := NewAttendanceService(&snapshotTx{employees: employees, attendance: records}, records, employees, pub)
	return fixture{svc: svc, employees: employees, records: records, published: pub}
}

func strPtr(s string) *string { return &s }

var (
	alice = employee.Employee{ID: "emp-alice", EmployeeCode: "1000-0001", FullName: "Alice", Leaves: 2}
	bob   = employee.Employee{ID: "emp-bob", EmployeeCode: "1000-0002", FullName: "Bob", Leaves: 0}
)

func TestMarkAttendance(t *testing.T) {
	ctx := context.Background()

	t.Run("clock in marks present", func(t *testing.T) {
		f := newFixture(alice)

		resp, err := f.svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{
			EmployeeID: alice.ID,
			Date:       "2024-06-03",
			ClockIn:    strPtr("08:00"),
			ClockOut:   strPtr("16:00"),
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Status)
		assert.Equal(t, "present", *resp.Status)
		assert.Equal(t, "08:00:00", *resp.ClockIn)
		assert.Equal(t, "16:00:00", *resp.ClockOut)
		assert.Equal(t, "Alice", *resp.EmployeeName)
		require.Len(t, f.published.events, 1)
		assert.Equal(t, EventMarked, f.published.events[0].Event)
	})

	t.Run("no clock in marks absent without touching counters", func(t *testing.T) {
		f := newFixture(alice)

		resp, err := f.svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{
			EmployeeID: alice.ID,
			Date:       "2024-06-03",
		})
		require.NoError(t, err)
		assert.Equal(t, "absent", *resp.Status)

		emp, err := f.employees.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.Absences, emp.Absences)
		assert.Equal(t, alice.Leaves, emp.Leaves)
	})

	t.Run("second mark updates the same record", func(t *testing.T) {
		f := newFixture(alice)

		first, err := f.svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: alice.ID, Date: "2024-06-03"})
		require.NoError(t, err)
		second, err := f.svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{
			EmployeeID: alice.ID,
			Date:       "2024-06-03",
			ClockIn:    strPtr("09:15"),
		})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "present", *second.Status)
		assert.Len(t, f.records.rows, 1)
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newFixture(alice)

		_, err := f.svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: "nobody", Date: "2024-06-03"})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
		assert.Empty(t, f.records.rows)
	})

	t.Run("invalid input", func(t *testing.T) {
		f := newFixture(alice)

		_, err := f.svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: alice.ID, Date: "June 3"})
		var verrs validator.ValidationErrors
		assert.True(t, errors.As(err, &verrs))
	})
}

func TestInitializeAttendanceForDate(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)

	t.Run("creates one unset record per employee", func(t *testing.T) {
		f := newFixture(alice, bob)

		got, err := f.svc.InitializeAttendanceForDate(ctx, day)
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, r := range got {
			assert.Nil(t, r.Status)
			assert.Nil(t, r.ClockIn)
			assert.Nil(t, r.ClockOut)
			assert.Equal(t, "2024-06-04", r.Date)
		}
		require.Len(t, f.published.events, 1)
		assert.Equal(t, EventInitialized, f.published.events[0].Event)
	})

	t.Run("is idempotent", func(t *testing.T) {
		f := newFixture(alice, bob)

		first, err := f.svc.InitializeAttendanceForDate(ctx, day)
		require.NoError(t, err)
		second, err := f.svc.InitializeAttendanceForDate(ctx, day.Add(15*time.Hour))
		require.NoError(t, err)

		assert.ElementsMatch(t, first, second)
		assert.Len(t, f.records.rows, 2)
		assert.Len(t, f.published.events, 1, "nothing new to announce")
	})

	t.Run("returns existing records without adding new employees", func(t *testing.T) {
		f := newFixture(alice)

		_, err := f.svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{
			EmployeeID: alice.ID,
			Date:       "2024-06-04",
			ClockIn:    strPtr("07:55"),
		})
		require.NoError(t, err)
		_, err = f.employees.Create(ctx, employee.Employee{FullName: "Late Hire", EmployeeCode: "1000-0009"})
		require.NoError(t, err)

		got, err := f.svc.InitializeAttendanceForDate(ctx, day)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "present", *got[0].Status)
	})

	t.Run("no employees", func(t *testing.T) {
		f := newFixture()

		got, err := f.svc.InitializeAttendanceForDate(ctx, day)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestMarkAbsent(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	t.Run("charges one absence and one leave", func(t *testing.T) {
		f := newFixture(alice)
		records, err := f.svc.InitializeAttendanceForDate(ctx, day)
		require.NoError(t, err)

		resp, err := f.svc.MarkAbsent(ctx, records[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "absent", *resp.Status)

		emp, err := f.employees.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.Absences+1, emp.Absences)
		assert.Equal(t, alice.Leaves-1, emp.Leaves)
		assert.Equal(t, EventAbsent, f.published.events[len(f.published.events)-1].Event)
	})

	t.Run("leaves may go negative", func(t *testing.T) {
		f := newFixture(bob)
		records, err := f.svc.InitializeAttendanceForDate(ctx, day)
		require.NoError(t, err)

		_, err = f.svc.MarkAbsent(ctx, records[0].ID)
		require.NoError(t, err)

		emp, err := f.employees.GetByID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, -1, emp.Leaves)
	})

	t.Run("already absent is rejected and counters stay put", func(t *testing.T) {
		f := newFixture(alice)
		records, err := f.svc.InitializeAttendanceForDate(ctx, day)
		require.NoError(t, err)

		_, err = f.svc.MarkAbsent(ctx, records[0].ID)
		require.NoError(t, err)
		_, err = f.svc.MarkAbsent(ctx, records[0].ID)
		assert.ErrorIs(t, err, attendance.ErrAlreadyAbsent)

		emp, err := f.employees.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.Absences+1, emp.Absences)
	})

	t.Run("absent from a missing clock-in is charged once", func(t *testing.T) {
		f := newFixture(alice)
		marked, err := f.svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: alice.ID, Date: "2024-06-05"})
		require.NoError(t, err)
		assert.Equal(t, "absent", *marked.Status)
		assert.False(t, marked.AbsenceCharged)

		resp, err := f.svc.MarkAbsent(ctx, marked.ID)
		require.NoError(t, err)
		assert.True(t, resp.AbsenceCharged)

		_, err = f.svc.MarkAbsent(ctx, marked.ID)
		assert.ErrorIs(t, err, attendance.ErrAlreadyAbsent)

		emp, err := f.employees.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.Absences+1, emp.Absences)
		assert.Equal(t, alice.Leaves-1, emp.Leaves)
	})

	t.Run("re-marking a charged record does not charge again", func(t *testing.T) {
		f := newFixture(alice)
		records, err := f.svc.InitializeAttendanceForDate(ctx, day)
		require.NoError(t, err)
		_, err = f.svc.MarkAbsent(ctx, records[0].ID)
		require.NoError(t, err)

		remarked, err := f.svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{EmployeeID: alice.ID, Date: "2024-06-05"})
		require.NoError(t, err)
		assert.True(t, remarked.AbsenceCharged)

		_, err = f.svc.MarkAbsent(ctx, records[0].ID)
		assert.ErrorIs(t, err, attendance.ErrAlreadyAbsent)

		emp, err := f.employees.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.Absences+1, emp.Absences)
	})

	t.Run("present record can be overturned", func(t *testing.T) {
		f := newFixture(alice)
		marked, err := f.svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{
			EmployeeID: alice.ID,
			Date:       "2024-06-05",
			ClockIn:    strPtr("08:00"),
		})
		require.NoError(t, err)

		resp, err := f.svc.MarkAbsent(ctx, marked.ID)
		require.NoError(t, err)
		assert.Equal(t, "absent", *resp.Status)
		assert.Equal(t, "08:00:00", *resp.ClockIn)
	})

	t.Run("unknown record", func(t *testing.T) {
		f := newFixture(alice)

		_, err := f.svc.MarkAbsent(ctx, "missing")
		assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
	})

	t.Run("failed status write rolls back counters", func(t *testing.T) {
		f := newFixture(alice)
		records, err := f.svc.InitializeAttendanceForDate(ctx, day)
		require.NoError(t, err)
		f.records.updateErr = errors.New("disk full")

		_, err = f.svc.MarkAbsent(ctx, records[0].ID)
		require.Error(t, err)

		emp, err := f.employees.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.Absences, emp.Absences)
		assert.Equal(t, alice.Leaves, emp.Leaves)
	})
}

// lateAttendance hides rows from the first lookup, as if another request
// inserted the record between the lookup and the insert.
type lateAttendance struct {
	*memAttendance
	lookups int
}

func (l *lateAttendance) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	l.lookups++
	if l.lookups == 1 {
		return nil, nil
	}
	return l.memAttendance.GetByEmployeeAndDate(ctx, employeeID, date)
}

func TestMarkAttendance_ConcurrentInsert(t *testing.T) {
	ctx := context.Background()
	employees := newMemEmployees(alice)
	records := newMemAttendance(employees)
	existing, err := records.Create(ctx, attendance.Attendance{
		EmployeeID: alice.ID,
		Date:       time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	repo := &lateAttendance{memAttendance: records}
	svc := NewAttendanceService(&snapshotTx{employees: employees, attendance: records}, repo, employees, &recordingPublisher{})

	resp, err := svc.MarkAttendance(ctx, attendance.MarkAttendanceRequest{
		EmployeeID: alice.ID,
		Date:       "2024-06-03",
		ClockIn:    strPtr("07:45"),
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, resp.ID)
	assert.Equal(t, "present", *resp.Status)
	assert.Equal(t, 2, repo.lookups)

	all, err := records.ListByEmployee(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].ClockIn)
	assert.Equal(t, "07:45:00", all[0].ClockIn.String())
}

func TestSaveAttendance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(alice)
	records, err := f.svc.InitializeAttendanceForDate(ctx, time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	id := records[0].ID

	resp, err := f.svc.SaveAttendance(ctx, attendance.UpdateAttendanceRequest{
		ID:       id,
		ClockIn:  strPtr("10:00"),
		ClockOut: strPtr("18:30"),
		Status:   strPtr("present"),
	})
	require.NoError(t, err)
	assert.Equal(t, "present", *resp.Status)
	assert.Equal(t, "10:00:00", *resp.ClockIn)
	assert.Equal(t, "Alice", *resp.EmployeeName)
	assert.Equal(t, EventUpdated, f.published.events[len(f.published.events)-1].Event)

	resp, err = f.svc.SaveAttendance(ctx, attendance.UpdateAttendanceRequest{ID: id, Status: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, resp.Status)
	assert.Nil(t, resp.ClockIn)

	_, err = f.svc.SaveAttendance(ctx, attendance.UpdateAttendanceRequest{ID: id, Status: strPtr("late")})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))

	_, err = f.svc.SaveAttendance(ctx, attendance.UpdateAttendanceRequest{ID: "missing"})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestQueries(t *testing.T) {
	ctx := context.Background()
	f := newFixture(alice, bob)
	d1 := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)

	_, err := f.svc.InitializeAttendanceForDate(ctx, d1)
	require.NoError(t, err)
	_, err = f.svc.InitializeAttendanceForDate(ctx, d2)
	require.NoError(t, err)

	byDate, err := f.svc.GetAttendanceByDate(ctx, d2)
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	history, err := f.svc.GetAttendanceHistory(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
	for _, r := range history {
		assert.Equal(t, alice.ID, r.EmployeeID)
	}

	_, err = f.svc.GetAttendanceHistory(ctx, "nobody")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	one, err := f.svc.GetAttendance(ctx, history[0].ID)
	require.NoError(t, err)
	assert.Equal(t, history[0].ID, one.ID)

	empty, err := f.svc.GetAttendanceByDate(ctx, d2.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
