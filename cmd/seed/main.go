package main

import (
	"context"
	"log"
	"time"

	"campus-connect/internal/config"
	"campus-connect/internal/database"
	"campus-connect/internal/models"
	"campus-connect/internal/repositories/postgres"
	"campus-connect/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const seedPassword = "test123"

type seedUser struct {
	name    string
	email   string
	role    models.Role
	bio     string
	tags    []string
	company string
	title   string
}

var seedUsers = []seedUser{
	{name: "Admin", email: "admin@campus.edu", role: models.RoleAdmin},
	{name: "Jamie Junior", email: "jamie@campus.edu", role: models.RoleJunior, bio: "First year, curious about backend work."},
	{name: "Riley Junior", email: "riley@campus.edu", role: models.RoleJunior, bio: "Looking for internship advice."},
	{name: "Sam Senior", email: "sam@campus.edu", role: models.RoleSenior, bio: "Final year, TA for data structures.", tags: []string{"algorithms", "go"}},
	{name: "Taylor Senior", email: "taylor@campus.edu", role: models.RoleSenior, bio: "Robotics club lead.", tags: []string{"robotics", "c++"}},
	{name: "Alex Alumni", email: "alex@campus.edu", role: models.RoleAlumni, bio: "Graduated 2019.", tags: []string{"distributed systems"}, company: "Acme", title: "Staff Engineer"},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	appLogger := logger.New(cfg.App.LogLevel, cfg.App.Env)
	defer appLogger.Sync()

	appLogger.Info("Starting database seeding...")

	db, err := database.NewConnection(cfg.Database, false, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		appLogger.Fatal("Migration failed", err)
	}

	if err := seed(context.Background(), db, appLogger); err != nil {
		appLogger.Fatal("Seeding failed", err)
	}
	appLogger.Info("Database seeding completed successfully!", "password", seedPassword)
}

// seed creates the demo accounts that do not exist yet and one accepted
// mentorship between the first junior and the first senior.
func seed(ctx context.Context, db *gorm.DB, log *logger.Logger) error {
	users := postgres.NewUserRepository(db)
	requests := postgres.NewRequestRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	created := make(map[string]*models.User, len(seedUsers))
	for _, su := range seedUsers {
		existing, err := users.FindByEmail(ctx, su.email)
		if err == nil {
			log.Info("User already exists", "email", su.email)
			created[su.email] = existing
			continue
		}
		if !postgres.IsNotFound(err) {
			return err
		}

		u := &models.User{
			Name:           su.name,
			Email:          su.email,
			PasswordHash:   string(hash),
			Role:           su.role,
			Bio:            su.bio,
			Tags:           su.tags,
			CurrentCompany: su.company,
			JobTitle:       su.title,
			ProfileType:    models.ProfileStudent,
			Visibility:     models.DefaultVisibility(),
		}
		if su.role == models.RoleAlumni {
			u.ProfileType = models.ProfileAlumni
		}
		if err := users.Create(ctx, u); err != nil {
			return err
		}
		log.Info("Created user", "email", u.Email, "role", u.Role, "id", u.ID)
		created[su.email] = u
	}

	junior, senior := created["jamie@campus.edu"], created["sam@campus.edu"]
	accepted, err := requests.HasAccepted(ctx, junior.ID, senior.ID)
	if err != nil {
		return err
	}
	if accepted {
		return nil
	}

	req := &models.Request{
		FromUserID: junior.ID,
		ToUserID:   senior.ID,
		Message:    "Hi! Could you help me plan my second year courses?",
		Status:     models.RequestPending,
	}
	if err := requests.Create(ctx, req); err != nil {
		return err
	}
	chat, err := requests.Accept(ctx, req, time.Now().UTC())
	if err != nil {
		return err
	}
	log.Info("Created accepted mentorship", "request_id", req.ID, "chat_id", chat.ID)
	return nil
}
