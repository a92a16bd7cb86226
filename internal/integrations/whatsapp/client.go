package whatsapp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Method идентификатор способа отправки (для whatsapp_method в записи)
const Method = "callmebot"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config настройки клиента
type Config struct {
	Enabled bool
	BaseURL string
	APIKey  string
}

// Client клиент отправки WhatsApp-сообщений через CallMeBot API.
// Доставка best-effort: ядро не зависит от её успеха.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента WhatsApp
func NewClient(cfg Config, timeout time.Duration, log Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет сообщение на указанный номер телефона
func (c *Client) Send(ctx context.Context, phone, message string) error {
	if !c.cfg.Enabled || c.cfg.APIKey == "" {
		return ErrDisabled
	}

	query := url.Values{}
	query.Set("phone", phone)
	query.Set("text", message)
	query.Set("apikey", c.cfg.APIKey)

	endpoint := fmt.Sprintf("%s/whatsapp.php?%s", c.cfg.BaseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status code %d: %s", ErrSendFailed, resp.StatusCode, string(body))
	}

	c.log.Info("Send: whatsapp message sent to %s", phone)
	return nil
}
