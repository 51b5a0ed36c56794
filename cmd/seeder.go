package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/frahmantamala/timesheet-tracker/internal"
	"github.com/frahmantamala/timesheet-tracker/internal/auth"
	projectDatamodel "github.com/frahmantamala/timesheet-tracker/internal/core/datamodel/project"
	timesheetDatamodel "github.com/frahmantamala/timesheet-tracker/internal/core/datamodel/timesheet"
	userDatamodel "github.com/frahmantamala/timesheet-tracker/internal/core/datamodel/user"
	"github.com/frahmantamala/timesheet-tracker/internal/project"
	projectPostgres "github.com/frahmantamala/timesheet-tracker/internal/project/postgres"
	"github.com/frahmantamala/timesheet-tracker/internal/user"
	userPostgres "github.com/frahmantamala/timesheet-tracker/internal/user/postgres"
	"github.com/frahmantamala/timesheet-tracker/pkg/logger"
)

const seedPassword = "password"

var seedUsers = []auth.RegisterDTO{
	{Email: "admin@mail.com", Username: "admin", FullName: "Admin", Password: seedPassword, Role: "admin"},
	{Email: "manager@mail.com", Username: "manager", FullName: "Manager", Password: seedPassword, Role: "manager"},
	{Email: "employee@mail.com", Username: "employee", FullName: "Employee", Password: seedPassword, Role: "employee"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with an admin, a manager, an employee and a sample project.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		logger.Init(cfg.Observability.Logging.Format, cfg.Observability.Logging.Level)
		lg := logger.L()

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gdb, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			// children first, there are no cascading foreign keys
			for _, model := range []interface{}{
				&timesheetDatamodel.Timesheet{},
				&projectDatamodel.ProjectAssignment{},
				&projectDatamodel.Project{},
				&userDatamodel.User{},
			} {
				if err := gdb.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
					log.Fatalf("failed to clear %T: %v", model, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		userRepo := userPostgres.NewUserRepository(db)
		tokenGen := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.AccessTokenDuration)
		authService := auth.NewService(userRepo, tokenGen, cfg.Security.BCryptCost, lg)

		seeded := make(map[string]*user.User, len(seedUsers))
		for _, dto := range seedUsers {
			u, err := authService.Register(ctx, dto)
			if errors.Is(err, internal.ErrUserExists) {
				u, err = userRepo.GetByUsername(ctx, dto.Username)
				if err != nil {
					log.Fatalf("failed to look up existing user %s: %v", dto.Username, err)
				}
				fmt.Printf("%s user already exists\n", dto.Username)
			} else if err != nil {
				log.Fatalf("failed to seed user %s: %v", dto.Username, err)
			} else {
				fmt.Printf("Seeded %s user: %s / %s\n", u.Role, dto.Username, seedPassword)
			}
			seeded[dto.Username] = u
		}

		projectService := project.NewService(projectPostgres.NewProjectRepository(gdb), lg)
		existing, err := projectService.List(ctx, seeded["manager"].Actor())
		if err != nil {
			log.Fatalf("failed to list projects: %v", err)
		}
		if len(existing) > 0 {
			fmt.Println("Projects already present; skipping sample project")
			return
		}

		p, err := projectService.Create(ctx, seeded["manager"].Actor(), project.ProjectDTO{
			Name:              "Sample Project",
			Description:       "Seeded project for local development",
			StartDate:         time.Now().UTC().Truncate(24 * time.Hour),
			AssignedEmployees: []string{seeded["employee"].ID},
		})
		if err != nil {
			log.Fatalf("failed to seed project: %v", err)
		}
		fmt.Println("Seeded project:", p.Name)
	},
}
