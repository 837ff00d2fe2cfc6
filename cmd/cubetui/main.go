// Package main provides the CLI entrypoint for cubetui.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/cubetui/internal/cases"
	"github.com/verte-zerg/cubetui/internal/config"
	"github.com/verte-zerg/cubetui/internal/model"
	"github.com/verte-zerg/cubetui/internal/scramble"
	"github.com/verte-zerg/cubetui/internal/statsui"
	"github.com/verte-zerg/cubetui/internal/store"
	"github.com/verte-zerg/cubetui/internal/tui"
)

const (
	defaultPuzzle        = "3x3"
	defaultHoldMs        = 250
	defaultCooldownMs    = 500
	defaultInspectionSec = 15
)

var (
	practicePuzzle        string
	practiceCase          string
	practiceHoldMs        int
	practiceCooldownMs    int
	practiceInspection    bool
	practiceInspectionSec int

	statsPuzzle string
	statsCase   string
	statsSince  string
	statsLast   int

	casesGroup string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cubetui",
		Short:         "TUI speedcubing timer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practicePuzzle, "puzzle", defaultPuzzle, "puzzle type (2x2, 3x3, 4x4)")
	rootCmd.Flags().StringVar(&practiceCase, "case", "", "algorithm case to drill (see 'cubetui cases')")
	rootCmd.Flags().IntVar(&practiceHoldMs, "hold-ms", defaultHoldMs, "hold duration before the timer arms (ms)")
	rootCmd.Flags().IntVar(&practiceCooldownMs, "cooldown-ms", defaultCooldownMs, "ignored-press window after a stop (ms)")
	rootCmd.Flags().BoolVar(&practiceInspection, "inspection", false, "enable WCA inspection countdown")
	rootCmd.Flags().IntVar(&practiceInspectionSec, "inspection-sec", defaultInspectionSec, "inspection length (8, 15 or 30)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCasesCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "puzzle", &practicePuzzle, fileCfg.Practice.Puzzle)
	applyIntConfig(cmd, "hold-ms", &practiceHoldMs, fileCfg.Timer.HoldMs)
	applyIntConfig(cmd, "cooldown-ms", &practiceCooldownMs, fileCfg.Timer.CooldownMs)
	applyBoolConfig(cmd, "inspection", &practiceInspection, fileCfg.Timer.Inspection)
	applyIntConfig(cmd, "inspection-sec", &practiceInspectionSec, fileCfg.Timer.InspectionSec)

	if err := validatePractice(); err != nil {
		return err
	}

	var practice *cases.Case
	if practiceCase != "" {
		c, err := cases.ByID(practiceCase)
		if err != nil {
			return fmt.Errorf("%w (see 'cubetui cases')", err)
		}
		practice = &c
	}

	cfg := timerConfig(practice != nil)

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	m, err := tui.NewModel(st, cfg, practicePuzzle, practice)
	if err != nil {
		return fmt.Errorf("failed to set up timer: %w", err)
	}
	defer m.Close()

	program := tea.NewProgram(m, tea.WithAltScreen())
	m.AttachProgram(program)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// timerConfig builds the timer configuration from the resolved flags. Case
// drilling drops the cooldown and inspection regardless of the flags.
func timerConfig(caseMode bool) model.TimerConfig {
	if caseMode {
		cfg := model.CasePracticeConfig()
		cfg.HoldDuration = time.Duration(practiceHoldMs) * time.Millisecond
		return cfg
	}
	return model.TimerConfig{
		HoldDuration:   time.Duration(practiceHoldMs) * time.Millisecond,
		Cooldown:       time.Duration(practiceCooldownMs) * time.Millisecond,
		UseInspection:  practiceInspection,
		InspectionTime: time.Duration(practiceInspectionSec) * time.Second,
	}
}

func validatePractice() error {
	known := scramble.Puzzles()
	found := false
	for _, p := range known {
		if p == practicePuzzle {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("unknown puzzle %q (available: %s)", practicePuzzle, strings.Join(known, ", "))
	}
	if practiceHoldMs <= 0 {
		return fmt.Errorf("--hold-ms must be > 0")
	}
	if practiceCooldownMs < 0 {
		return fmt.Errorf("--cooldown-ms must be >= 0")
	}
	if practiceInspection {
		switch practiceInspectionSec {
		case 8, 15, 30:
		default:
			return fmt.Errorf("--inspection-sec must be 8, 15 or 30")
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newCasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cases",
		Short: "List algorithm cases",
		Args:  cobra.NoArgs,
		RunE:  runCasesCmd,
	}
	cmd.Flags().StringVar(&casesGroup, "group", "", "filter by case group (PLL, OCLL)")
	return cmd
}

func runCasesCmd(cmd *cobra.Command, _ []string) error {
	group := strings.TrimSpace(casesGroup)
	printed := 0
	for _, c := range cases.All() {
		if group != "" && !strings.EqualFold(c.Group, group) {
			continue
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-6s %-20s %s\n", c.ID, c.Group, c.Name, c.Algorithm); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		printed++
	}
	if printed == 0 {
		return fmt.Errorf("no cases in group %q (available: %s)", group, strings.Join(cases.Groups(), ", "))
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Browse solve statistics",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsPuzzle, "puzzle", defaultPuzzle, "puzzle filter (empty for all)")
	cmd.Flags().StringVar(&statsCase, "case", "", "case filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N solves")
	return cmd
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Puzzle: statsPuzzle,
		CaseID: statsCase,
		Since:  sinceTime,
		Last:   statsLast,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	m := statsui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# cubetui configuration
# Uncomment a value to enable it. CLI flags override config values.

[timer]
# hold-ms = %d           # Hold duration before the timer arms (ms)
# cooldown-ms = %d       # Ignored-press window after a stop (ms)
# inspection = false      # Enable WCA inspection countdown
# inspection-sec = %d     # Inspection length (8, 15 or 30)

[practice]
# puzzle = %q           # Puzzle type (%s)
`,
		defaultHoldMs,
		defaultCooldownMs,
		defaultInspectionSec,
		defaultPuzzle,
		strings.Join(scramble.Puzzles(), ", "),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
