package seed

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/trendlens/backend/internal/logger"
	"github.com/trendlens/backend/internal/models"
)

// DevPassword is the password every seeded account gets. Development only.
const DevPassword = "password123"

// Seeder populates the database with demo accounts.
type Seeder struct {
	db    *gorm.DB
	faker *gofakeit.Faker
}

// NewSeeder creates a seeder. seed 0 derives a seed from the clock.
func NewSeeder(db *gorm.DB, seed uint64) *Seeder {
	return &Seeder{db: db, faker: gofakeit.New(seed)}
}

// SeedDev creates count demo users plus a fixed demo@trendlens.dev login.
// Existing accounts with colliding emails are skipped, so reruns are safe.
func (s *Seeder) SeedDev(count int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DevPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	users := make([]models.User, 0, count+1)
	users = append(users, models.User{
		Email:        "demo@trendlens.dev",
		Username:     "demo",
		PasswordHash: string(hash),
		IsActive:     true,
	})
	for i := 0; i < count; i++ {
		username := strings.ToLower(s.faker.Username())
		users = append(users, models.User{
			Email:        fmt.Sprintf("%s@%s", username, s.faker.DomainName()),
			Username:     username,
			PasswordHash: string(hash),
			IsActive:     i%10 != 9, // every tenth account deactivated, for auth testing
		})
	}

	created := 0
	for i := range users {
		result := s.db.Where("email = ?", users[i].Email).FirstOrCreate(&users[i])
		if result.Error != nil {
			return fmt.Errorf("failed to create user %s: %w", users[i].Email, result.Error)
		}
		if result.RowsAffected > 0 {
			created++
		}
	}

	logger.Log.Info("seeded users",
		zap.Int("requested", count+1),
		zap.Int("created", created),
	)
	return nil
}

// Clean removes every user account. Development databases only.
func (s *Seeder) Clean() error {
	if err := s.db.Unscoped().Where("1 = 1").Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("failed to clean users: %w", err)
	}
	logger.Log.Info("removed seed data")
	return nil
}
