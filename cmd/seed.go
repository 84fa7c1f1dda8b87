package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with a bootstrap admin account",
	Long:  `Create the initial admin account so the review workflow can be used. Intended for development and first deployment.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		adminPhone := getSeedEnv("ADMIN_PHONE", "+251900000000")
		adminName := getSeedEnv("ADMIN_NAME", "Portal Admin")
		adminPassword := os.Getenv("ADMIN_PASSWORD")
		if adminPassword == "" {
			log.Fatal("ADMIN_PASSWORD must be set to seed the admin account")
		}

		var exists int
		row := db.Raw("SELECT 1 FROM accounts WHERE phone = ?", adminPhone).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("admin account already exists:", adminPhone)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}

		err = db.Exec(
			"INSERT INTO accounts (full_name, phone, password_hash, role, created_at, updated_at) VALUES (?, ?, ?, 'admin', now(), now())",
			adminName, adminPhone, string(hash),
		).Error
		if err != nil {
			log.Fatalf("failed to insert admin account: %v", err)
		}

		fmt.Println("Seeded admin account:", adminPhone)
	},
}

func getSeedEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
