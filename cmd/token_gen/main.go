// Command token_gen issues an access token for an existing user, optionally granting admin rights first.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"airport-booking/skyport/internal/auth"
	"airport-booking/skyport/internal/config"
	"airport-booking/skyport/internal/db"
	"airport-booking/skyport/internal/db/repositories"

	"gorm.io/gorm"
)

func main() {
	email := flag.String("email", "", "email of the user to issue a token for")
	promote := flag.Bool("admin", false, "grant admin rights before issuing the token")
	ttl := flag.Duration("ttl", 0, "token lifetime, defaults to JWT_TTL")
	flag.Parse()

	if *email == "" {
		log.Fatal("-email is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *ttl > 0 {
		cfg.JWTTTL = *ttl
	}

	var gdb *gorm.DB
	if cfg.UsesPostgres() {
		gdb, err = db.InitPostgresORM(cfg.PostgresDSN)
	} else {
		gdb, err = db.InitSQLiteORM(cfg.SQLitePath)
	}
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := repositories.NewUserRepository(gdb)
	user, err := users.FindByEmail(ctx, *email)
	if err != nil {
		log.Fatalf("find user %s: %v", *email, err)
	}

	if *promote && !user.IsStaff {
		if err := users.SetStaff(ctx, user.ID, true); err != nil {
			log.Fatalf("promote user: %v", err)
		}
		user.IsStaff = true
	}

	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.JWTTTL, nil)
	issued, err := tokens.Issue(user.ID, user.Email, user.Role())
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Printf("Role: %s\nExpires: %s\nToken: %s\n", user.Role(), issued.ExpiresAt.Format(time.RFC3339), issued.Token)
}
