package supervisor

import "time"

type Supervisor struct {
	ID           string
	Username     string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
