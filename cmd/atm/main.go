package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ivanoskov/atm_bot/internal/atm"
	"github.com/ivanoskov/atm_bot/internal/config"
	"github.com/ivanoskov/atm_bot/internal/logging"
	"github.com/ivanoskov/atm_bot/internal/repository"
	"github.com/ivanoskov/atm_bot/internal/service"
	"github.com/ivanoskov/atm_bot/internal/tui"
)

// terminalChatID - номер "чата" терминала в журнале
const terminalChatID int64 = 0

var (
	configPath string
	pin        string
	balance    int64
	debug      bool
	logFile    string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "atm",
		Short:        "ATM simulator in the terminal",
		SilenceUsage: true,
		RunE:         runATM,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML file with ATM settings (overrides ATM_CONFIG)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	root.Flags().StringVar(&pin, "pin", "", "card PIN (4 digits)")
	root.Flags().Int64Var(&balance, "balance", 0, "initial balance")

	root.AddCommand(statementCmd())
	return root
}

// loadConfig читает конфигурацию и применяет явно заданные флаги
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if configPath != "" {
		if err := os.Setenv("ATM_CONFIG", configPath); err != nil {
			return nil, err
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	if f := cmd.Flags().Lookup("pin"); f != nil && f.Changed {
		cfg.ATM.PIN = pin
	}
	if f := cmd.Flags().Lookup("balance"); f != nil && f.Changed {
		cfg.ATM.InitialBalance = balance
	}
	if debug {
		cfg.Debug = true
	}
	if err := cfg.ATM.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// newLogger не пишет в терминал: он занят интерфейсом
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if logFile == "" {
		return zap.NewNop(), nil
	}
	return logging.New(cfg.Debug, logFile)
}

func newTeller(cfg *config.Config, logger *zap.Logger) (*service.Teller, error) {
	repo, err := repository.Open(cfg.SupabaseURL, cfg.SupabaseKey, logger)
	if err != nil {
		return nil, err
	}
	return service.NewTeller(repo, cfg.ATM, logger), nil
}

func runATM(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	teller, err := newTeller(cfg, logger)
	if err != nil {
		return err
	}
	defer teller.Close()

	notifier := tui.NewNotifier()
	session, err := teller.Session(terminalChatID, notifier.Hook)
	if err != nil {
		return err
	}

	logger.Info("terminal session started",
		zap.Int64("initial_balance", cfg.ATM.InitialBalance),
		zap.Stringer("screen", atm.ScreenWelcome))

	if _, err := tea.NewProgram(tui.New(session, notifier), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("terminal ui failed: %w", err)
	}
	return nil
}
