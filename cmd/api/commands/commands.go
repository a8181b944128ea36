package commands

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/journalkeep/core/internal/adapters/repository"
	"github.com/journalkeep/core/internal/domain/entities"
	"github.com/journalkeep/core/internal/infrastructure/config"
	"github.com/journalkeep/core/internal/infrastructure/logger"
	"github.com/journalkeep/core/internal/infrastructure/server"
	"github.com/journalkeep/core/internal/infrastructure/store"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the JournalKeep API server",
		Long:  "Start the JournalKeep API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewStoreCommand creates the store management command with subcommands
func NewStoreCommand() *cobra.Command {
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Document store commands",
		Long:  "Inspect and back up the on-disk JSON document",
	}

	storeCmd.AddCommand(&cobra.Command{
		Use:   "inspect",
		Short: "Print collection sizes for the current document",
		Run: func(cmd *cobra.Command, args []string) {
			inspectStore()
		},
	})

	storeCmd.AddCommand(&cobra.Command{
		Use:   "backup",
		Short: "Copy the current document to a timestamped sibling file",
		Run: func(cmd *cobra.Command, args []string) {
			backupStore()
		},
	})

	return storeCmd
}

// NewUserCommand creates the user management command
func NewUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
		Long:  "Create and manage users in the system",
	}

	createUserCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			role, _ := cmd.Flags().GetString("role")

			if email == "" || password == "" {
				log.Fatal("Email and password are required")
			}

			createUser(name, email, password, role)
		},
	}

	createUserCmd.Flags().String("name", "", "User display name")
	createUserCmd.Flags().String("email", "", "User email (required)")
	createUserCmd.Flags().String("password", "", "User password (required)")
	createUserCmd.Flags().String("role", "client", "User role (admin, psychologist, client)")

	userCmd.AddCommand(createUserCmd)
	return userCmd
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	st, err := store.New(cfg.Store, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize document store", "error", err)
	}

	srv, err := server.New(cfg, st, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	appLogger.Infow("Starting JournalKeep API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"store", st.Path(),
	)

	if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		appLogger.Fatalw("Server failed to start", "error", err)
	}
}

func openStore() (*store.Store, *logger.Logger) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	st, err := store.New(cfg.Store, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize document store: %v", err)
	}

	return st, appLogger
}

func inspectStore() {
	st, _ := openStore()
	doc := st.Load()

	fmt.Printf("Document: %s\n", st.Path())
	fmt.Printf("  users:       %d\n", len(doc.Users))
	fmt.Printf("  entries:     %d\n", len(doc.Entries))
	fmt.Printf("  goals:       %d\n", len(doc.Goals))
	fmt.Printf("  invitations: %d\n", len(doc.Invitations))
	fmt.Printf("  resetTokens: %d\n", len(doc.ResetTokens))
	fmt.Printf("  settings:    %d\n", len(doc.Settings))
}

func backupStore() {
	st, _ := openStore()

	src, err := os.Open(st.Path())
	if err != nil {
		log.Fatalf("Failed to open store file: %v", err)
	}
	defer src.Close()

	backup := fmt.Sprintf("%s.backup-%s", st.Path(), time.Now().UTC().Format("20060102T150405Z"))
	dst, err := os.Create(backup)
	if err != nil {
		log.Fatalf("Failed to create backup file: %v", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		log.Fatalf("Failed to write backup file: %v", err)
	}

	fmt.Printf("Backup written to %s\n", backup)
}

func createUser(name, email, password, role string) {
	st, _ := openStore()
	userRepo := repository.NewUserRepository(st)

	userRole := entities.UserRole(role)
	if !userRole.IsValid() {
		log.Fatalf("Invalid role %q", role)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user, err := userRepo.Create(context.Background(), &entities.User{
		Name:       name,
		Email:      email,
		Password:   string(hashedPassword),
		Role:       userRole,
		AccessList: []string{},
		Extra:      entities.Record{},
	})
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User created successfully:\n")
	fmt.Printf("  ID: %s\n", user.ID)
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Printf("  Role: %s\n", user.Role)
	if name != "" {
		fmt.Printf("  Name: %s\n", name)
	}
}
