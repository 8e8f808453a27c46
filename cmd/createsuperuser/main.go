// Command createsuperuser provisions an administrative account: it prompts
// for an email and a hidden password, then creates a user with the staff and
// superuser flags set.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/userhub/account-service/internal/core/domain"
	"github.com/userhub/account-service/internal/core/service"
	"github.com/userhub/account-service/internal/infrastructure/config"
	"github.com/userhub/account-service/internal/infrastructure/crypto"
	mongodb "github.com/userhub/account-service/internal/infrastructure/db/mongo"
	"github.com/userhub/account-service/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "createsuperuser:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: "warn"})

	ctx := context.Background()
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	email, password, err := prompt()
	if err != nil {
		return err
	}

	users := service.NewUserService(
		mongodb.NewUserRepository(db),
		mongodb.NewTokenStore(db),
		crypto.NewBcryptHasher(0),
		log,
	)

	user, err := users.CreateSuperuser(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return fmt.Errorf("a user with email %q already exists", email)
		}
		return err
	}

	fmt.Printf("superuser %s created\n", user.Email)
	return nil
}

func prompt() (email, password string, err error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Email: ")
	email, err = reader.ReadString('\n')
	if err != nil {
		return "", "", err
	}
	email = strings.TrimSpace(email)

	fmt.Print("Password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", "", err
	}

	fmt.Print("Password (again): ")
	confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", "", err
	}

	if string(pw) != string(confirm) {
		return "", "", errors.New("passwords do not match")
	}
	return email, string(pw), nil
}
