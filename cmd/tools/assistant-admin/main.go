// cmd/tools/assistant-admin/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"payroll-assistant/internal/common/auth"
	"payroll-assistant/internal/common/config"
	"payroll-assistant/internal/common/database"
	chatclient "payroll-assistant/internal/common/http"
	"payroll-assistant/internal/storage/postgres"
)

func main() {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	tokenCmd := flag.NewFlagSet("token", flag.ExitOnError)
	chatCmd := flag.NewFlagSet("chat", flag.ExitOnError)

	// seed flags
	seedConfig := seedCmd.String("config", "", "Path to config file (defaults to configs/config.yaml)")
	email := seedCmd.String("email", postgres.DefaultSeedAgent.Email, "Agent email")
	password := seedCmd.String("password", postgres.DefaultSeedAgent.Password, "Agent password")
	name := seedCmd.String("name", postgres.DefaultSeedAgent.Name, "Agent display name")

	// token flags
	tokenConfig := tokenCmd.String("config", "", "Path to config file (defaults to configs/config.yaml)")
	agentID := tokenCmd.Int64("agent-id", 0, "Agent ID to embed in the token")
	tokenEmail := tokenCmd.String("email", "", "Agent email to embed in the token")

	// chat flags
	serverURL := chatCmd.String("url", "http://localhost:8080", "Assistant server base URL")
	bearer := chatCmd.String("token", os.Getenv("ASSISTANT_TOKEN"), "Bearer token (defaults to $ASSISTANT_TOKEN)")
	history := chatCmd.Bool("history", false, "Print chat history instead of sending a message")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		seedCmd.Parse(os.Args[2:])
		cfg := mustLoad(*seedConfig)
		id, err := seed(cfg, postgres.SeedAgent{Email: *email, Password: *password, Name: *name})
		if err != nil {
			fmt.Printf("Error seeding database: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Seeded database; agent %s has id %d\n", *email, id)

	case "token":
		tokenCmd.Parse(os.Args[2:])
		if *agentID <= 0 {
			fmt.Println("Error: agent-id must be a positive integer.")
			tokenCmd.Usage()
			os.Exit(1)
		}
		cfg := mustLoad(*tokenConfig)
		mgr, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, time.Duration(cfg.Auth.TokenLifetime)*time.Minute)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		token, expiresAt, err := mgr.IssueToken(*agentID, *tokenEmail)
		if err != nil {
			fmt.Printf("Error issuing token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token)
		fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.Format(time.RFC3339))

	case "chat":
		chatCmd.Parse(os.Args[2:])
		if *bearer == "" {
			fmt.Println("Error: token is required for chat.")
			chatCmd.Usage()
			os.Exit(1)
		}
		if err := chat(*serverURL, *bearer, *history, chatCmd.Args()); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

	default:
		help()
		os.Exit(1)
	}
}

func mustLoad(path string) *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func seed(cfg *config.Config, agent postgres.SeedAgent) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return 0, err
	}
	defer pg.Close()

	if err := pg.Ping(ctx); err != nil {
		return 0, err
	}
	if err := postgres.Migrate(ctx, pg.GetDB()); err != nil {
		return 0, err
	}
	return postgres.Seed(ctx, pg.GetDB(), agent)
}

func chat(url, token string, history bool, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := chatclient.NewClient(url, token, 30*time.Second)
	if history {
		turns, err := client.History(ctx)
		if err != nil {
			return err
		}
		for _, t := range turns {
			fmt.Printf("[%s] > %s\n%s\n\n", t.Timestamp.Format(time.RFC3339), t.Message, t.Response)
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("a message is required")
	}
	reply, err := client.SendMessage(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}

func help() {
	fmt.Println("Usage: assistant-admin <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  seed   Create the schema and load the sample agent, payroll and orders")
	fmt.Println("  token  Print a bearer token for an agent")
	fmt.Println("  chat   Send a message to a running server, or print history with -history")
	fmt.Println("\nExamples:")
	fmt.Println("  assistant-admin seed -email test@brandmetrics.com -password agent123")
	fmt.Println("  assistant-admin token -agent-id 1 -email test@brandmetrics.com")
	fmt.Println("  assistant-admin chat -token $TOKEN show payroll this month")
}
