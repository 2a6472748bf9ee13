package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ivanoskov/atm_bot/internal/atm"
)

type Config struct {
	SupabaseURL   string
	SupabaseKey   string
	TelegramToken string
	Debug         bool
	ATM           atm.Config
}

// UseSupabase сообщает, настроен ли внешний журнал
func (c *Config) UseSupabase() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

// LoadConfig читает .env (если он есть), файл ATM_CONFIG и переменные окружения.
// Переменные окружения имеют приоритет над файлом.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		SupabaseURL:   os.Getenv("SUPABASE_URL"),
		SupabaseKey:   os.Getenv("SUPABASE_KEY"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		ATM:           atm.DefaultConfig(),
	}

	if path := os.Getenv("ATM_CONFIG"); path != "" {
		if err := loadATMFile(path, &cfg.ATM); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.ATM.Validate(); err != nil {
		return nil, fmt.Errorf("invalid atm config: %w", err)
	}
	return cfg, nil
}

func loadATMFile(path string, out *atm.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read atm config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse atm config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DEBUG: %w", err)
		}
		c.Debug = debug
	}
	if v := os.Getenv("ATM_PIN"); v != "" {
		c.ATM.PIN = v
	}
	if v := os.Getenv("ATM_INITIAL_BALANCE"); v != "" {
		balance, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ATM_INITIAL_BALANCE: %w", err)
		}
		c.ATM.InitialBalance = balance
	}
	if v := os.Getenv("ATM_STATEMENT_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ATM_STATEMENT_SIZE: %w", err)
		}
		c.ATM.StatementSize = size
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"ATM_BLOCK_RESET_DELAY", &c.ATM.BlockResetDelay},
		{"ATM_RETURN_DELAY", &c.ATM.ReturnDelay},
		{"ATM_TRANSFER_RETURN_DELAY", &c.ATM.TransferReturnDelay},
	}
	for _, d := range durations {
		v := os.Getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = parsed
	}
	return nil
}
