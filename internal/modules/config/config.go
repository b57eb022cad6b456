package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"signal_bot/internal/models"
	"signal_bot/pkg/logger"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"

	defaultRESTURL = "https://www.okx.com"
	defaultWSURL   = "wss://ws.okx.com:8443/ws/v5/public"
)

// Config — вся конфигурация процесса. Читается один раз на старте,
// дальше только по ссылке и только на чтение.
type Config struct {
	Service struct {
		Host       string `yaml:"host"`
		PublicPort int    `yaml:"public_port"` // вебхук
		AdminPort  int    `yaml:"admin_port"`  // health
	} `yaml:"service"`

	Webhook struct {
		Secret string `yaml:"secret"`
	} `yaml:"webhook"`

	OKX struct {
		APIKey     string `yaml:"api_key"`
		APISecret  string `yaml:"api_secret"`
		Passphrase string `yaml:"passphrase"`
		RESTURL    string `yaml:"rest_url"`
		WSURL      string `yaml:"ws_url"`
	} `yaml:"okx"`

	Trading struct {
		Symbol       string  `yaml:"symbol"`        // instId, например "BTC-USDT-SWAP"
		PositionSide string  `yaml:"position_side"` // long / short
		SizingMode   string  `yaml:"sizing_mode"`   // fixed_notional / balance_fraction
		Notional     float64 `yaml:"notional"`      // для fixed_notional, в USDT
		TradePercent float64 `yaml:"trade_percent"` // доля баланса, 0.001 = 0.1%
		Leverage     float64 `yaml:"leverage"`
		MinQty       float64 `yaml:"min_qty"`
	} `yaml:"trading"`

	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	config := Config{}
	config.Service.PublicPort = 8080
	config.Service.AdminPort = 8081
	config.Trading.PositionSide = "long"
	config.Trading.SizingMode = string(models.SizeBalanceFraction)
	config.Trading.TradePercent = 0.001
	config.Trading.Leverage = 100
	config.Trading.MinQty = 0.001

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		// файла может не быть вовсе: деплой чисто на env-переменных
		logger.Info("config file configs/%s not found, using env only", configFileName)
	} else {
		defer func() {
			_ = file.Close()
		}()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return nil, fmt.Errorf("decode config file: %w", err)
		}
	}

	// env поверх файла
	overrideString(&config.Webhook.Secret, "WEBHOOK_SECRET")
	overrideString(&config.OKX.APIKey, "OKX_API_KEY")
	overrideString(&config.OKX.APISecret, "OKX_API_SECRET")
	overrideString(&config.OKX.Passphrase, "OKX_PASSPHRASE")
	overrideString(&config.Trading.Symbol, "SYMBOL")
	overrideString(&config.Trading.PositionSide, "POSITION_SIDE")
	overrideString(&config.Trading.SizingMode, "SIZING_MODE")
	overrideString(&config.Telegram.Token, "TELEGRAM_TOKEN")
	overrideFloat(&config.Trading.Notional, "FIXED_NOTIONAL")
	overrideFloat(&config.Trading.TradePercent, "TRADE_PERCENT")
	overrideFloat(&config.Trading.Leverage, "LEVERAGE")
	overrideFloat(&config.Trading.MinQty, "MIN_ORDER_QTY")
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Telegram.ChatID = id
		}
	}

	if config.OKX.RESTURL == "" {
		config.OKX.RESTURL = defaultRESTURL
	}
	if config.OKX.WSURL == "" {
		config.OKX.WSURL = defaultWSURL
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate — отсутствие секрета, ключей или символа это фатальная ошибка старта,
// а не молча сломанная подпись в рантайме.
func (c *Config) Validate() error {
	if c.Webhook.Secret == "" {
		return fmt.Errorf("webhook secret is required (WEBHOOK_SECRET)")
	}
	if c.OKX.APIKey == "" || c.OKX.APISecret == "" || c.OKX.Passphrase == "" {
		return fmt.Errorf("okx credentials are required (OKX_API_KEY / OKX_API_SECRET / OKX_PASSPHRASE)")
	}
	if c.Trading.Symbol == "" {
		return fmt.Errorf("trading symbol is required (SYMBOL)")
	}

	switch strings.ToLower(c.Trading.PositionSide) {
	case "long", "short":
		c.Trading.PositionSide = strings.ToLower(c.Trading.PositionSide)
	default:
		return fmt.Errorf("position_side must be long or short, got %q", c.Trading.PositionSide)
	}

	switch models.SizingMode(c.Trading.SizingMode) {
	case models.SizeFixedNotional:
		if c.Trading.Notional <= 0 {
			return fmt.Errorf("fixed_notional sizing requires notional > 0")
		}
	case models.SizeBalanceFraction:
		if c.Trading.TradePercent <= 0 || c.Trading.TradePercent > 1 {
			return fmt.Errorf("trade_percent must be in (0;1], got %v", c.Trading.TradePercent)
		}
		if c.Trading.Leverage <= 0 {
			return fmt.Errorf("leverage must be > 0, got %v", c.Trading.Leverage)
		}
		if c.Trading.MinQty <= 0 {
			return fmt.Errorf("min_qty must be > 0, got %v", c.Trading.MinQty)
		}
	default:
		return fmt.Errorf("unknown sizing_mode %q", c.Trading.SizingMode)
	}

	return nil
}

// SizingPolicy — иммутабельная политика расчёта размера для раннера.
func (c *Config) SizingPolicy() models.SizingPolicy {
	return models.SizingPolicy{
		Mode:     models.SizingMode(c.Trading.SizingMode),
		Notional: c.Trading.Notional,
		Fraction: c.Trading.TradePercent,
		Leverage: c.Trading.Leverage,
		MinQty:   c.Trading.MinQty,
	}
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func overrideFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
