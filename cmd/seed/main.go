package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"reminderkeeper/config"
	"reminderkeeper/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	password := "password123"
	name := "Demo User"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name=EXCLUDED.name
		RETURNING id
	`, email, hash, name).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", userID, email, password)

	var expenseID string
	err = db.QueryRow(`
		INSERT INTO expenses (title, maximum_amount, current_spent, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, "Groceries", 500.0, 120.0, userID).Scan(&expenseID)
	if err != nil {
		log.Fatalf("failed to seed expense: %v", err)
	}
	fmt.Printf("seeded expense: id=%s title=Groceries limit=500\n", expenseID)

	var reminderID string
	err = db.QueryRow(`
		INSERT INTO reminders (title, description, start_time, reminder_time, email, sent)
		VALUES ($1, $2, now(), $3, $4, false)
		RETURNING id
	`, "Team standup", "Daily sync with the team", time.Now().Add(time.Hour), email).Scan(&reminderID)
	if err != nil {
		log.Fatalf("failed to seed reminder: %v", err)
	}
	fmt.Printf("seeded reminder: id=%s title=\"Team standup\" due in 1h\n", reminderID)
}
