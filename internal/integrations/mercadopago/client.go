package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config настройки клиента
type Config struct {
	BaseURL     string
	AccessToken string
	SuccessURL  string
	FailureURL  string
	PendingURL  string
}

// Client клиент для работы с платёжным провайдером MercadoPago
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента MercadoPago
func NewClient(cfg Config, timeout time.Duration, log Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreatePreference создает платёжную преференцию на сумму депозита.
// ID записи передается в metadata и возвращается провайдером в webhook.
func (c *Client) CreatePreference(ctx context.Context, items []PreferenceItem, metadata PreferenceMetadata) (*Preference, error) {
	reqBody := preferenceRequest{
		Items: items,
		BackURLs: backURLs{
			Success: c.cfg.SuccessURL,
			Failure: c.cfg.FailureURL,
			Pending: c.cfg.PendingURL,
		},
		AutoReturn: "approved",
		Metadata:   metadata,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal preference: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/checkout/preferences", c.cfg.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var preference Preference
	if err := json.NewDecoder(resp.Body).Decode(&preference); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("CreatePreference: created preference id=%s for appointment=%s",
		preference.ID, metadata.AppointmentID)

	return &preference, nil
}

// GetPayment получает детали платежа по его ID
// Используется webhook-обработчиком для проверки статуса платежа у провайдера
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	url := fmt.Sprintf("%s/v1/payments/%s", c.cfg.BaseURL, paymentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrPaymentNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var payment Payment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &payment, nil
}
