package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Hamza-Malik05/plant-management-backend/internal/config"
	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/employee"
	"github.com/Hamza-Malik05/plant-management-backend/internal/domain/supervisor"
	"github.com/Hamza-Malik05/plant-management-backend/internal/fixtures"
	"github.com/Hamza-Malik05/plant-management-backend/internal/pkg/logger"
	"github.com/Hamza-Malik05/plant-management-backend/internal/repository"
	employeeService "github.com/Hamza-Malik05/plant-management-backend/internal/service/employee"
	supervisorService "github.com/Hamza-Malik05/plant-management-backend/internal/service/supervisor"
)

func main() {
	username := flag.String("username", "admin", "supervisor username")
	password := flag.String("password", "", "supervisor password (min 8 characters)")
	fullName := flag.String("name", "Plant Administrator", "supervisor full name")
	employees := flag.Int("employees", 0, "number of demo employees to create")
	flag.Parse()

	if err := run(*username, *password, *fullName, *employees); err != nil {
		slog.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(username, password, fullName string, employees int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(logger.New(os.Stdout, "plant-seeder", "v1.0.0", cfg.App.Env, cfg.SlogLevel()))

	ctx := context.Background()
	repos, err := repository.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repos.Close()

	supervisorSvc := supervisorService.NewSupervisorService(repos.Supervisor)
	employeeSvc := employeeService.NewEmployeeService(repos.Employee, repos.Supervisor, cfg.Attendance.DefaultLeaves)

	var supervisorID string
	created, err := supervisorSvc.CreateSupervisor(ctx, supervisor.CreateSupervisorRequest{
		Username: username,
		FullName: fullName,
		Password: password,
	})
	switch {
	case err == nil:
		supervisorID = created.ID
		slog.Info("Supervisor created", "username", created.Username, "id", created.ID)
	case errors.Is(err, supervisor.ErrUsernameExists):
		existing, err := repos.Supervisor.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		supervisorID = existing.ID
		slog.Info("Supervisor already exists", "username", username, "id", existing.ID)
	default:
		return fmt.Errorf("create supervisor: %w", err)
	}

	seeded := 0
	for _, req := range fixtures.DemoEmployees(employees, supervisorID) {
		_, err := employeeSvc.CreateEmployee(ctx, req)
		if errors.Is(err, employee.ErrEmployeeCodeExists) {
			continue
		}
		if err != nil {
			return fmt.Errorf("create employee %s: %w", req.EmployeeCode, err)
		}
		seeded++
	}
	slog.Info("Seeding completed", "employees_created", seeded)
	return nil
}
