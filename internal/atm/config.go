package atm

import (
	"fmt"
	"time"
)

const (
	DefaultInitialBalance      int64 = 1000
	DefaultPIN                       = "1234"
	DefaultMaxPinAttempts            = 3
	DefaultBlockResetDelay           = 2000 * time.Millisecond
	DefaultReturnDelay               = 1200 * time.Millisecond
	DefaultTransferReturnDelay       = 1400 * time.Millisecond
	DefaultStatementSize             = 5
	MinAccountNumberLen              = 6
)

// Config содержит параметры сессии банкомата
type Config struct {
	InitialBalance      int64         `yaml:"initial_balance"`
	PIN                 string        `yaml:"pin"`
	MaxPinAttempts      int           `yaml:"max_pin_attempts"`
	BlockResetDelay     time.Duration `yaml:"block_reset_delay"`
	ReturnDelay         time.Duration `yaml:"return_delay"`
	TransferReturnDelay time.Duration `yaml:"transfer_return_delay"`
	StatementSize       int           `yaml:"statement_size"`
}

// DefaultConfig возвращает параметры оригинального банкомата
func DefaultConfig() Config {
	return Config{
		InitialBalance:      DefaultInitialBalance,
		PIN:                 DefaultPIN,
		MaxPinAttempts:      DefaultMaxPinAttempts,
		BlockResetDelay:     DefaultBlockResetDelay,
		ReturnDelay:         DefaultReturnDelay,
		TransferReturnDelay: DefaultTransferReturnDelay,
		StatementSize:       DefaultStatementSize,
	}
}

// Validate проверяет корректность параметров
func (c Config) Validate() error {
	if !isPIN(c.PIN) {
		return fmt.Errorf("pin must be exactly 4 digits")
	}
	if c.InitialBalance < 0 {
		return fmt.Errorf("initial balance must not be negative: %d", c.InitialBalance)
	}
	if c.MaxPinAttempts < 1 {
		return fmt.Errorf("max pin attempts must be positive: %d", c.MaxPinAttempts)
	}
	if c.BlockResetDelay <= 0 {
		return fmt.Errorf("block reset delay must be positive: %s", c.BlockResetDelay)
	}
	if c.ReturnDelay < 0 || c.TransferReturnDelay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	if c.StatementSize < 1 {
		return fmt.Errorf("statement size must be positive: %d", c.StatementSize)
	}
	return nil
}

func isPIN(s string) bool {
	if len(s) != ModePin.MaxLen() {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
