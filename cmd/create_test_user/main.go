package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"chat_app/internal/domain"
	"chat_app/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	username := flag.String("username", "testuser", "username to create")
	gold := flag.Int64("gold", 1000, "starting gold credits")
	admin := flag.Bool("admin", false, "create with admin role")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	role := domain.UserRoleUser
	if *admin {
		role = domain.UserRoleAdmin
	}

	repo := repository.NewUserRepository(db)
	u := &domain.User{
		Username:    *username,
		DisplayName: *username,
		Role:        role,
		GoldCredits: *gold,
	}
	if err := repo.Create(context.Background(), u); err != nil {
		log.Fatalf("create user: %v", err)
	}

	fmt.Printf("created user id=%d username=%s gold=%d role=%s\n", u.ID, u.Username, u.GoldCredits, u.Role)
}
