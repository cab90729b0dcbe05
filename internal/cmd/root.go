// Package cmd implements the CLI command structure for zenplan.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/zenplan-go/internal/assistant"
	"github.com/nibzard/zenplan-go/internal/config"
	"github.com/nibzard/zenplan-go/internal/logging"
	"github.com/nibzard/zenplan-go/internal/schedule"
	"github.com/nibzard/zenplan-go/internal/storage"
	"github.com/nibzard/zenplan-go/internal/ui"
	"github.com/nibzard/zenplan-go/internal/view"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the zenplan CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("zenplan", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		fmt.Printf("zenplan %s\n", Version)
		return nil
	}

	logger := logging.New(logging.Options{
		Level:           cfg.LogLevel,
		Format:          cfg.LogFormat,
		ReportTimestamp: cfg.LogTimestamps,
		Prefix:          "zenplan",
	})

	// Determine the subcommand; default to the dashboard.
	subcommand := "tui"
	remaining := fs.Args()
	if len(remaining) > 0 && !strings.HasPrefix(remaining[0], "-") {
		subcommand = remaining[0]
		remaining = remaining[1:]
	}

	store := schedule.NewStore(
		storage.NewFile(cfg.DataDir),
		schedule.WithLogger(logger),
	)

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, logger, store)
	case "add":
		return addCommand(store, remaining)
	case "ls":
		return lsCommand(store, remaining)
	case "rm":
		return rmCommand(store, remaining)
	case "note":
		return noteCommand(store, remaining)
	case "item":
		return itemCommand(store, remaining)
	case "toggle":
		return toggleCommand(store, remaining)
	case "stats":
		return statsCommand(store)
	case "coach":
		return coachCommand(ctx, cfg, logger, store)
	case "validate":
		return validateCommand(cfg, store)
	case "config":
		return configCommand(cfg, remaining)
	case "version":
		fmt.Printf("zenplan %s\n", Version)
		return nil
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, `zenplan - a terminal day planner

Usage:
  zenplan [flags] <command> [args]

Commands:
  tui                      Interactive dashboard (default)
  add <title...>           Add a schedule
  ls [query]               List schedules (filtered and sorted)
  rm <id>                  Delete a schedule
  note <id> <text...>      Replace a schedule's notes
  item add <id> <text...>  Add a checklist item
  item rm <id> <item-id>   Remove a checklist item
  toggle <id> <item-id>    Toggle a checklist item
  stats                    Today's aggregates
  coach                    Print the AI daily reminder
  validate                 Validate the persisted snapshot
  config                   Show effective configuration
  version                  Show version

Flags:
`)
	fs.PrintDefaults()
}

// newAssistant builds the assistant client, or nil when disabled.
func newAssistant(cfg *config.Config, logger *log.Logger) assistant.Client {
	if cfg.AssistantDisabled {
		return nil
	}
	return assistant.NewGemini(cfg.APIKey(),
		assistant.WithModel(cfg.AssistantModel),
		assistant.WithLogger(logger),
	)
}

func tuiCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, store *schedule.Store) error {
	return ui.Run(ctx, ui.Options{
		Store:     store,
		Assistant: newAssistant(cfg, logger),
	})
}

func addCommand(store *schedule.Store, args []string) error {
	fs := flag.NewFlagSet("zenplan add", flag.ContinueOnError)
	desc := fs.String("desc", "", "Description")
	notes := fs.String("notes", "", "Notes")
	date := fs.String("date", schedule.Today(time.Now()), "Target date (YYYY-MM-DD)")
	priority := fs.String("priority", "medium", "Priority (low|medium|high)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	title := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("usage: zenplan add [flags] <title...>")
	}
	p, ok := schedule.ParsePriority(*priority)
	if !ok {
		return fmt.Errorf("invalid priority %q, must be low, medium, or high", *priority)
	}
	if _, err := schedule.ParseDate(*date); err != nil {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", *date)
	}

	s := store.Create(title, *desc, *notes, p, *date)
	fmt.Printf("Added %s  %s\n", s.ID, s.Title)
	return nil
}

func lsCommand(store *schedule.Store, args []string) error {
	query := strings.Join(args, " ")
	schedules := view.FilteredAndSorted(store.Snapshot(), query)
	if len(schedules) == 0 {
		fmt.Println("No schedules.")
		return nil
	}

	now := time.Now()
	for _, s := range schedules {
		marker := " "
		if view.IsToday(s, now) {
			marker = "*"
		}
		fmt.Printf("%s %s  %-6s  %3d%%  %s  %s\n",
			marker, s.Date, s.Priority, view.Progress(s), s.ID, s.Title)
		for _, item := range s.Checklist {
			box := "[ ]"
			if item.IsCompleted {
				box = "[x]"
			}
			fmt.Printf("      %s %s  %s\n", box, item.ID, item.Text)
		}
	}
	return nil
}

func rmCommand(store *schedule.Store, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: zenplan rm <id>")
	}
	store.Delete(args[0])
	return nil
}

func noteCommand(store *schedule.Store, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: zenplan note <id> <text...>")
	}
	store.UpdateNotes(args[0], strings.Join(args[1:], " "))
	return nil
}

func itemCommand(store *schedule.Store, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: zenplan item add|rm ...")
	}
	switch args[0] {
	case "add":
		if len(args) < 3 {
			return fmt.Errorf("usage: zenplan item add <id> <text...>")
		}
		store.AddItem(args[1], strings.Join(args[2:], " "))
		return nil
	case "rm":
		if len(args) != 3 {
			return fmt.Errorf("usage: zenplan item rm <id> <item-id>")
		}
		store.RemoveItem(args[1], args[2])
		return nil
	default:
		return fmt.Errorf("unknown item subcommand: %s", args[0])
	}
}

func toggleCommand(store *schedule.Store, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: zenplan toggle <id> <item-id>")
	}
	store.ToggleItem(args[0], args[1])
	return nil
}

func statsCommand(store *schedule.Store) error {
	stats := view.TodayStats(store.Snapshot(), time.Now())
	fmt.Printf("Schedules today: %d\n", stats.TodayTotal)
	fmt.Printf("Tasks done:      %d/%d\n", stats.CompletedItems, stats.TotalItems)
	fmt.Printf("Progress:        %d%%\n", stats.Percent)
	return nil
}

func coachCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, store *schedule.Store) error {
	client := newAssistant(cfg, logger)
	if client == nil {
		fmt.Println(assistant.FallbackNoKey.Message)
		return nil
	}
	reminder := client.DailyReminder(ctx, store.Snapshot())
	fmt.Println(reminder.Message)
	for _, s := range reminder.Suggestions {
		fmt.Printf("  - %s\n", s)
	}
	return nil
}

func validateCommand(cfg *config.Config, store *schedule.Store) error {
	result := schedule.Validate(store.Snapshot(), schedule.ValidationOptions{
		SchemaPath: cfg.SchemaFile,
	})
	for _, w := range result.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	if !result.Valid {
		for _, err := range result.Errors {
			fmt.Printf("error: %s\n", err)
		}
		return fmt.Errorf("snapshot is invalid (%d errors)", len(result.Errors))
	}
	if result.UsedSchema {
		fmt.Println("Snapshot is valid (JSON Schema).")
	} else {
		fmt.Println("Snapshot is valid (minimal checks).")
	}
	return nil
}

func configCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("zenplan config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Print(config.ExampleConfig())
		return nil
	}

	values := map[string]any{
		"data_dir":           cfg.DataDir,
		"schema_file":        cfg.SchemaFile,
		"assistant_model":    cfg.AssistantModel,
		"assistant_disabled": cfg.AssistantDisabled,
		"log_level":          cfg.LogLevel,
		"log_format":         cfg.LogFormat,
		"log_timestamps":     cfg.LogTimestamps,
	}
	for _, field := range config.Fields() {
		fmt.Printf("%-20s %-14v (%s)\n", field, values[field], cfg.Sources[field])
	}
	if cfg.APIKey() == "" {
		fmt.Printf("\n%s is not set; the assistant serves its fallback reminder.\n", config.APIKeyEnv)
	}
	return nil
}
