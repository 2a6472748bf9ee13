package main

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ivanoskov/atm_bot/internal/bot"
	"github.com/ivanoskov/atm_bot/internal/config"
	"github.com/ivanoskov/atm_bot/internal/logging"
	"github.com/ivanoskov/atm_bot/internal/repository"
	"github.com/ivanoskov/atm_bot/internal/service"
)

// Request структура входящего запроса от API Gateway
type Request struct {
	Body string `json:"body"`
}

// Response структура ответа для API Gateway
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Сессии банкоматов живут, пока экземпляр функции остаётся тёплым
var (
	mu       sync.Mutex
	instance *bot.Bot
	logger   *zap.Logger
)

func Handler(ctx context.Context, request Request) (*Response, error) {
	b, err := getBot()
	if err != nil {
		return errorResponse(err)
	}

	// Обработка webhook-обновления
	if err := b.HandleWebhook([]byte(request.Body)); err != nil {
		logger.Error("failed to handle webhook", zap.Error(err))
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

// getBot собирает бота при первом вызове; при ошибке следующий вызов попробует снова
func getBot() (*bot.Bot, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	l, err := logging.New(cfg.Debug)
	if err != nil {
		return nil, err
	}

	repo, err := repository.Open(cfg.SupabaseURL, cfg.SupabaseKey, l)
	if err != nil {
		return nil, err
	}

	teller := service.NewTeller(repo, cfg.ATM, l)

	b, err := bot.NewBot(cfg.TelegramToken, teller, l)
	if err != nil {
		teller.Close()
		return nil, err
	}

	instance, logger = b, l
	return instance, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Точка входа для локального тестирования
}
