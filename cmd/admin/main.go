package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"finman/internal/domain/transaction"
	"finman/internal/domain/user"
	"finman/internal/infrastructure/database"
	"finman/internal/shared/auth"
	"finman/internal/shared/config"
	"finman/internal/shared/logging"
)

const usage = `finman admin CLI - management commands for the finman API

Usage:
  admin <command> [options]

Commands:
  migrate        Apply the database schema and exit
  create-user    Register a user without going through the HTTP API
  classify       Print the category predicted for a transaction description

Examples:
  admin migrate
  admin create-user --username=alice --email=alice@example.com --password=s3cretpass
  admin classify "uber ride to the airport"
`

var errUsage = errors.New("invalid usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errUsage) {
			slog.Error("admin command failed", "error", err)
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		fmt.Fprint(out, usage)
		return errUsage
	}

	switch args[0] {
	case "migrate":
		return runMigrate(out)
	case "create-user":
		return runCreateUser(args[1:], out)
	case "classify":
		return runClassify(args[1:], out)
	case "help", "-h", "--help":
		fmt.Fprint(out, usage)
		return nil
	default:
		fmt.Fprintf(out, "Unknown command: %s\n\n", args[0])
		fmt.Fprint(out, usage)
		return errUsage
	}
}

// openDatabase loads configuration and connects; New applies migrations.
func openDatabase() (*config.Config, *database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	db, err := database.New(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func runMigrate(out io.Writer) error {
	_, db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(out, "Schema is up to date (%s)\n", db.Driver())
	return nil
}

func runCreateUser(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	fs.SetOutput(out)

	username := fs.String("username", "", "Display name")
	email := fs.String("email", "", "Login email (unique)")
	password := fs.String("password", "", "Password, 8 to 72 bytes")
	timeout := fs.Duration("timeout", 30*time.Second, "Timeout for the operation")

	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *email == "" || *password == "" {
		fmt.Fprintln(out, "Error: --email and --password are required")
		fs.Usage()
		return errUsage
	}
	if *username == "" {
		*username = strings.SplitN(*email, "@", 2)[0]
	}

	cfg, db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	svc := user.NewService(database.NewUserRepository(db), auth.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL))
	u, err := svc.Register(ctx, user.RegisterParams{
		Username: *username,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Created user %s <%s> id=%s\n", u.Username, u.Email, u.ID)
	return nil
}

func runClassify(args []string, out io.Writer) error {
	description := strings.TrimSpace(strings.Join(args, " "))
	if description == "" {
		fmt.Fprintln(out, "Usage: admin classify <description>")
		return errUsage
	}

	fmt.Fprintln(out, transaction.DefaultClassifier().Categorize(description))
	return nil
}
