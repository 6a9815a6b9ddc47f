package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			for _, table := range []string{"maintenance_logs", "schedules", "machines", "users"} {
				if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		users := []struct {
			Username string
			Email    string
			Name     string
			Role     string
		}{
			{"admin", "admin@cropmaint.io", "Site Admin", "ADMIN"},
			{"dwi.manager", "dwi@cropmaint.io", "Dwi Lestari", "MANAGER"},
			{"agus.tech", "agus@cropmaint.io", "Agus Pranoto", "TECHNICIAN"},
		}

		for _, u := range users {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM users WHERE username = $1", u.Username).Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", u.Username)
				continue
			}
			_, err := db.Exec(
				"INSERT INTO users (username, email, name, role, password_hash, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, now(), now())",
				u.Username, u.Email, u.Name, u.Role, string(hash))
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Username, err)
			}
			fmt.Println("Seeded user:", u.Username)
		}

		machines := []struct {
			Name        string
			Code        string
			Status      string
			Criticality string
		}{
			{"Combine Harvester 1", "CH-001", "ACTIVE", "HIGH"},
			{"Irrigation Pump A", "IP-A01", "ACTIVE", "CRITICAL"},
			{"Grain Dryer", "GD-002", "UNDER_MAINTENANCE", "MEDIUM"},
		}

		for _, m := range machines {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM machines WHERE machine_code = $1", m.Code).Scan(&exists); err == nil {
				fmt.Printf("machine %s already exists, skipping\n", m.Code)
				continue
			}
			_, err := db.Exec(
				"INSERT INTO machines (name, machine_code, status, criticality_level, created_at, updated_at) VALUES ($1, $2, $3, $4, now(), now())",
				m.Name, m.Code, m.Status, m.Criticality)
			if err != nil {
				log.Fatalf("failed to insert machine %s: %v", m.Code, err)
			}
			fmt.Println("Seeded machine:", m.Code)
		}
	},
}
