// Command passwd checks or resets a user's password.
//
//	passwd check <email> <password>
//	passwd reset <email> [password]
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"campus-connect/internal/config"
	"campus-connect/internal/database"
	"campus-connect/internal/repositories/postgres"
	"campus-connect/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

const defaultResetPassword = "test123"

const (
	exitOK       = 0
	exitFailure  = 1
	exitNoUser   = 2
	exitMismatch = 3
	exitUsage    = 64
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	appLogger := logger.New("warn", cfg.App.Env)
	defer appLogger.Sync()

	db, err := database.NewConnection(cfg.Database, false, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}

	code := run(context.Background(), os.Args[1:], postgres.NewUserRepository(db), os.Stdout)
	_ = database.Close(db)
	os.Exit(code)
}

func run(ctx context.Context, args []string, users *postgres.UserRepository, out io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(out, "usage: passwd check <email> <password> | passwd reset <email> [password]")
		return exitUsage
	}

	switch args[0] {
	case "check":
		if len(args) != 3 {
			fmt.Fprintln(out, "usage: passwd check <email> <password>")
			return exitUsage
		}
		return check(ctx, users, args[1], args[2], out)
	case "reset":
		password := defaultResetPassword
		if len(args) > 2 {
			password = args[2]
		}
		return reset(ctx, users, args[1], password, out)
	default:
		fmt.Fprintf(out, "unknown command %q\n", args[0])
		return exitUsage
	}
}

func check(ctx context.Context, users *postgres.UserRepository, email, password string, out io.Writer) int {
	user, err := users.FindByEmail(ctx, email)
	if err != nil {
		if postgres.IsNotFound(err) {
			fmt.Fprintf(out, "no user with email %s\n", email)
			return exitNoUser
		}
		fmt.Fprintf(out, "lookup failed: %v\n", err)
		return exitFailure
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		fmt.Fprintln(out, "password does not match")
		return exitMismatch
	}
	fmt.Fprintln(out, "password matches")
	return exitOK
}

func reset(ctx context.Context, users *postgres.UserRepository, email, password string, out io.Writer) int {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(out, "hash failed: %v\n", err)
		return exitFailure
	}
	if err := users.UpdatePassword(ctx, email, string(hash)); err != nil {
		if postgres.IsNotFound(err) {
			fmt.Fprintf(out, "no user with email %s\n", email)
			return exitNoUser
		}
		fmt.Fprintf(out, "update failed: %v\n", err)
		return exitFailure
	}
	fmt.Fprintf(out, "password for %s reset\n", email)
	return exitOK
}
