package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmployee_RecordAbsence(t *testing.T) {
	e := Employee{Absences: 2, Leaves: 1}

	e.RecordAbsence()
	assert.Equal(t, 3, e.Absences)
	assert.Equal(t, 0, e.Leaves)

	e.RecordAbsence()
	assert.Equal(t, 4, e.Absences)
	assert.Equal(t, -1, e.Leaves, "leaves may go negative")
}
