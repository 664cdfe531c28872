// Package repository opens the storage backend selected by configuration.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Hamza-Malik05/plant-management-backend/internal/config"
	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/attendance"
	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/employee"
	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/supervisor"
	"github.com/Hamza-Malik05/plant-management-backend/internal/pkg/database"
	"github.com/Hamza-Malik05/plant-management-backend/internal/repository/mysql"
	"github.com/Hamza-Malik05/plant-management-backend/internal/repository/postgresql"
)

type Repositories struct {
	Supervisor supervisor.SupervisorRepository
	Employee   employee.EmployeeRepository
	Attendance attendance.AttendanceRepository
	Transactor database.Transactor

	close func()
}

// Close releases the underlying connection pool.
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// Open connects to the configured database, applies migrations when
// enabled and returns the repositories bound to it.
func Open(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	dsn := cfg.DatabaseURL()
	opts := database.PoolOptions{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
		TraceSQL: cfg.App.LogLevel == "debug",
	}

	switch cfg.Database.Driver {
	case "postgres":
		if cfg.Database.AutoMigrate {
			if err := database.Migrate(ctx, dsn); err != nil {
				return nil, err
			}
		}
		db, err := database.NewPostgreSQLDB(dsn, opts)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Supervisor: postgresql.NewSupervisorRepository(db),
			Employee:   postgresql.NewEmployeeRepository(db),
			Attendance: postgresql.NewAttendanceRepository(db),
			Transactor: postgresql.NewTransactor(db),
			close:      db.Close,
		}, nil

	case "mysql":
		db, err := database.NewMySQLDB(dsn, opts)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := mysql.AutoMigrate(db.WithContext(ctx)); err != nil {
				return nil, fmt.Errorf("auto-migrate mysql: %w", err)
			}
			slog.Info("MySQL schema migrated")
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Supervisor: mysql.NewSupervisorRepository(db),
			Employee:   mysql.NewEmployeeRepository(db),
			Attendance: mysql.NewAttendanceRepository(db),
			Transactor: mysql.NewTransactor(db),
			close:      func() { _ = sqlDB.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
