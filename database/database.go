package database

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	config "tourmarket/configs"
	"tourmarket/models"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:            false,
		SkipDefaultTransaction: true,
		// Surfaces gorm.ErrDuplicatedKey on unique violations; the bid store
		// relies on it.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Guide{},
		&models.GuideProfileChangeRequest{},
		&models.Program{},
		&models.ProgramDay{},
		&models.ProgramPoint{},
		&models.PricingTier{},
		&models.Auction{},
		&models.Bid{},
		&models.Booking{},
		&models.Review{},
		&models.TokenPackage{},
		&models.TokenTransaction{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedSuperAdmin() {
	adminEmail := config.Config("SUPER_ADMIN_EMAIL")
	adminPassword := config.Config("SUPER_ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Println("⚠️ SUPER_ADMIN_EMAIL / SUPER_ADMIN_PASSWORD not set, skipping super admin seed")
		return
	}

	var count int64
	if err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for super admin user: %v", err)
	}
	if count > 0 {
		log.Println("Super admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash super admin password: %v", err)
	}

	password := string(hashedPassword)
	adminUser := models.User{
		FirstName: "Super",
		Email:     &adminEmail,
		Password:  &password,
		Role:      models.RoleSuperAdmin,
	}
	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed super admin user: %v", err)
	}

	log.Println("✅ Super admin user seeded successfully")
}
