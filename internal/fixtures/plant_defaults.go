package fixtures

import (
	"fmt"

	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/employee"
)

var demoNames = []string{
	"Ayesha Khan",
	"Bilal Ahmed",
	"Fatima Raza",
	"Hassan Ali",
	"Imran Qureshi",
	"Maryam Siddiqui",
	"Omar Farooq",
	"Sana Javed",
	"Usman Tariq",
	"Zainab Hussain",
}

// EmployeeCode formats the n-th demo employee code (1-based) in the
// plant's ####-#### format. Line 1000 is reserved for seeded data.
func EmployeeCode(n int) string {
	return fmt.Sprintf("1000-%04d", n)
}

// DemoEmployees returns n employee requests assigned to supervisorID.
// Names cycle through a fixed list; codes are stable so reseeding is
// idempotent.
func DemoEmployees(n int, supervisorID string) []employee.CreateEmployeeRequest {
	reqs := make([]employee.CreateEmployeeRequest, 0, n)
	for i := 1; i <= n; i++ {
		name := demoNames[(i-1)%len(demoNames)]
		if round := (i - 1) / len(demoNames); round > 0 {
			name = fmt.Sprintf("%s %d", name, round+1)
		}
		sid := supervisorID
		reqs = append(reqs, employee.CreateEmployeeRequest{
			SupervisorID: &sid,
			EmployeeCode: EmployeeCode(i),
			FullName:     name,
		})
	}
	return reqs
}
