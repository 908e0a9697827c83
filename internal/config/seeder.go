package config

import (
	"log"

	"hima-kasku/internal/adapters/persistence/models"
	"hima-kasku/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	if s.cfg.IsDev() {
		if err := s.seedSampleDues(); err != nil {
			log.Printf("⚠️ Due seeder skipped: %v", err)
		}
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the bootstrap admin account. Skipped when an admin
// already exists or when no seed password is configured.
func (s *Seeder) seedAdminUser() error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", "ADMIN").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if s.cfg.Seed.AdminPassword == "" {
		log.Println("⚠️ Skipping admin seed: SEED_ADMIN_PASSWORD not set")
		log.Println("   Create the admin account manually or set the seed password")
		return nil
	}

	hashedPassword, err := password.Hash(s.cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     s.cfg.Seed.AdminName,
		Role:     "ADMIN",
		Password: hashedPassword,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin account created: %s", admin.Name)
	return nil
}

// seedSampleDues seeds sample catalog entries for development
func (s *Seeder) seedSampleDues() error {
	var count int64
	if err := s.db.Model(&models.Due{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	dues := []models.Due{
		{Title: "PDH 2025", RequiredAmount: 150000, Description: "Pengadaan PDH angkatan 2025"},
		{Title: "Kas Semester Ganjil", RequiredAmount: 50000, Description: "Iuran kas semester ganjil"},
	}
	if err := s.db.Create(&dues).Error; err != nil {
		return err
	}

	log.Printf("✅ Sample dues created: %d entries", len(dues))
	return nil
}
