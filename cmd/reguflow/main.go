package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hxrsha10/reguflow/internal/config"
	"github.com/hxrsha10/reguflow/internal/engine"
	"github.com/hxrsha10/reguflow/internal/generation"
	"github.com/hxrsha10/reguflow/internal/identity"
	"github.com/hxrsha10/reguflow/internal/prompt"
	"github.com/hxrsha10/reguflow/internal/roadmap"
	"github.com/hxrsha10/reguflow/internal/storage"
	"github.com/hxrsha10/reguflow/internal/tier"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "reguflow",
		Short: "AI-powered Regulatory Compliance Roadmaps (India)",
	}
	configPath  string
	tierFlag    string
	attachFlags []string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the configuration file")

	generateCmd.Flags().StringVarP(&tierFlag, "tier", "t", "", "Subscription tier (free, pro, premium); overrides config")
	generateCmd.Flags().StringArrayVarP(&attachFlags, "attach", "a", nil, "File to attach as scenario evidence (repeatable)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(taskCmd)
}

// initStore loads the configuration and opens the record store.
func initStore() (*config.Config, *storage.SQLiteStore, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	store, err := storage.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return cfg, store, nil
}

// resolveTier determines the acting tier: the --tier flag wins, otherwise
// the tier attribute on the configured user.
func resolveTier(cfg *config.Config) (tier.Tier, error) {
	if tierFlag != "" {
		return tier.Parse(tierFlag)
	}
	user := identity.User{
		ID:       cfg.User.ID,
		Metadata: map[string]string{"tier": cfg.User.Tier},
	}
	return identity.TierFromUser(user)
}

func loadAttachments(paths []string) ([]prompt.Attachment, error) {
	var attachments []prompt.Attachment
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read attachment %s: %w", p, err)
		}
		attachments = append(attachments, prompt.Attachment{
			MIMEType: http.DetectContentType(data),
			Data:     data,
		})
	}
	return attachments, nil
}

var generateCmd = &cobra.Command{
	Use:   "generate [scenario]",
	Short: "Generate a compliance roadmap for a business scenario",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		scenario := strings.TrimSpace(strings.Join(args, " "))

		cfg, store, err := initStore()
		if err != nil {
			log.Fatalf("Setup failed: %v", err)
		}
		defer store.Close()

		acting, err := resolveTier(cfg)
		if err != nil {
			log.Fatalf("Invalid tier: %v", err)
		}

		// Credential precondition: checked here, before the request is built.
		creds := identity.APIKeyCredentialProvider{APIKey: cfg.AI.APIKey}
		if err := creds.EnsureReady(acting); err != nil {
			log.Fatalf("Credentials not ready: %v\nSet REGUFLOW_API_KEY or ai.api_key in %s and retry.", err, configPath)
		}

		attachments, err := loadAttachments(attachFlags)
		if err != nil {
			log.Fatalf("Attachment error: %v", err)
		}

		recent, err := store.RecentScenarios(ctx, cfg.User.ID, prompt.HistoryLimit)
		if err != nil {
			log.Fatalf("Failed to load history context: %v", err)
		}

		client, err := generation.NewGeminiClient(ctx, cfg.AI.APIKey)
		if err != nil {
			log.Fatalf("Failed to create generation client: %v", err)
		}

		fmt.Printf("🚀 Generating roadmap (tier: %s)...\n", acting)
		eng := engine.New(client)
		result, err := eng.GenerateRoadmap(ctx, engine.Request{
			Scenario:      scenario,
			Tier:          acting,
			Attachments:   attachments,
			RecentHistory: recent,
		})
		if err != nil {
			switch {
			case errors.Is(err, engine.ErrInvalidRequest):
				log.Fatalf("Nothing to analyze: describe your scenario or attach a document.")
			case errors.Is(err, roadmap.ErrMalformedResponse):
				log.Fatalf("The AI returned an invalid format: %v\nThis usually happens with very complex scenarios. Please try simplifying your input.", err)
			case errors.Is(err, engine.ErrGenerationService):
				log.Fatalf("Generation service error: %v\nPlease try again.", err)
			default:
				log.Fatalf("Generation failed: %v", err)
			}
		}

		rec := &roadmap.Record{
			ID:        uuid.NewString(),
			UserID:    cfg.User.ID,
			Scenario:  scenario,
			Roadmap:   *result,
			CreatedAt: time.Now(),
		}
		if err := store.SaveRecord(ctx, rec); err != nil {
			log.Fatalf("Failed to save roadmap: %v", err)
		}

		fmt.Printf("✅ Roadmap saved (id: %s)\n\n", rec.ID)
		printRoadmap(rec)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved roadmaps, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, store, err := initStore()
		if err != nil {
			log.Fatalf("Setup failed: %v", err)
		}
		defer store.Close()

		records, err := store.ListRecords(ctx, cfg.User.ID)
		if err != nil {
			log.Fatalf("Failed to list roadmaps: %v", err)
		}
		if len(records) == 0 {
			fmt.Println("No roadmaps yet. Run 'reguflow generate' to create one.")
			return
		}

		for _, rec := range records {
			done := len(rec.CompletedTasks)
			total := len(rec.Roadmap.ActionableTaskChecklist)
			fmt.Printf("%s  %s  [%d/%d tasks]  %s\n",
				rec.ID, rec.CreatedAt.Local().Format("2006-01-02 15:04"), done, total, truncate(rec.Scenario, 60))
		}
	},
}

var showCmd = &cobra.Command{
	Use:   "show <roadmap-id>",
	Short: "Print a saved roadmap with completion markers",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		_, store, err := initStore()
		if err != nil {
			log.Fatalf("Setup failed: %v", err)
		}
		defer store.Close()

		rec, err := store.GetRecord(ctx, args[0])
		if err != nil {
			log.Fatalf("Failed to load roadmap %s: %v", args[0], err)
		}
		printRoadmap(rec)
	},
}

var taskCmd = &cobra.Command{
	Use:   "task <roadmap-id> <task-id>",
	Short: "Toggle completion of a checklist task (e.g. task-0)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		recordID, taskID := args[0], args[1]

		_, store, err := initStore()
		if err != nil {
			log.Fatalf("Setup failed: %v", err)
		}
		defer store.Close()

		rec, err := store.GetRecord(ctx, recordID)
		if err != nil {
			log.Fatalf("Failed to load roadmap %s: %v", recordID, err)
		}

		valid := false
		for _, id := range roadmap.TaskIDs(&rec.Roadmap) {
			if id == taskID {
				valid = true
				break
			}
		}
		if !valid {
			log.Fatalf("Unknown task id %q: this roadmap has %d tasks.", taskID, len(rec.Roadmap.ActionableTaskChecklist))
		}

		updated := roadmap.ToggleTask(rec.CompletedTasks, taskID)
		if err := store.UpdateCompletedTasks(ctx, recordID, updated); err != nil {
			log.Fatalf("Failed to update tasks: %v", err)
		}

		fmt.Printf("✅ %s toggled (%d/%d complete)\n", taskID, len(updated), len(rec.Roadmap.ActionableTaskChecklist))
	},
}

func printRoadmap(rec *roadmap.Record) {
	r := rec.Roadmap
	completed := make(map[string]bool, len(rec.CompletedTasks))
	for _, id := range rec.CompletedTasks {
		completed[id] = true
	}

	fmt.Printf("📋 Scenario: %s\n", rec.Scenario)

	fmt.Println("\n## Applicable Regulations")
	for _, reg := range r.ApplicableRegulations {
		fmt.Printf("- %s: %s\n", reg.Name, reg.Description)
	}

	fmt.Println("\n## Compliance Obligations")
	for _, o := range r.ComplianceObligations {
		fmt.Printf("- %s\n", o)
	}

	fmt.Println("\n## Actionable Task Checklist")
	for i, item := range r.ActionableTaskChecklist {
		id := roadmap.TaskID(i)
		marker := " "
		if completed[id] {
			marker = "x"
		}
		fmt.Printf("[%s] %s: %s - %s\n", marker, id, item.Task, item.Description)
	}

	fmt.Println("\n## Required Documents")
	for _, d := range r.RequiredDocuments {
		fmt.Printf("- %s\n", d)
	}

	fmt.Println("\n## Deadlines & Frequency")
	for _, d := range r.DeadlinesFrequency {
		fmt.Printf("- %s\n", d)
	}

	fmt.Println("\n## Risk Flags")
	for _, f := range r.RiskFlags {
		fmt.Printf("⚠️  %s\n", f)
	}

	fmt.Println("\n## Monitoring Suggestions")
	for _, m := range r.MonitoringSuggestions {
		fmt.Printf("- %s\n", m)
	}

	if r.IsGrounded {
		fmt.Println("\n## Sources (Google Search grounding)")
		for _, s := range r.GroundingSources {
			fmt.Printf("- %s (%s)\n", s.Title, s.URI)
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
