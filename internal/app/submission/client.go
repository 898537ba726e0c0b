// Package submission — клиент внешнего сервиса приема заявок. Отправка
// синхронная: ответ сервиса определяет исход операции submit, при ошибке
// сессия мастера остается нетронутой и отправку можно повторить.
package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"backend/internal/app/config"
	"backend/internal/app/ds"
)

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func New(cfg config.SubmissionConfig) *Client {
	return &Client{
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// QuotePayload — тело заявки для внешнего сервиса
type QuotePayload struct {
	SessionID   string          `json:"session_id"`
	ServiceType ds.ServiceType  `json:"service_type"`
	Customer    ds.CustomerInfo `json:"customer"`
	Signature   string          `json:"signature"`
	SignedAt    time.Time       `json:"signed_at"`
	Quote       QuoteBody       `json:"quote"`
}

type QuoteBody struct {
	PackageOrPlanID string          `json:"package_or_plan_id,omitempty"`
	Lines           []QuoteLine     `json:"lines"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	VATTotal        decimal.Decimal `json:"vat_total"`
	GrossTotal      decimal.Decimal `json:"gross_total"`
	DepositAmount   decimal.Decimal `json:"deposit_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	DepositPercent  int             `json:"deposit_percent"`
}

type QuoteLine struct {
	FeatureID string          `json:"feature_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// BuildPayload собирает тело заявки из сессии и рассчитанной сметы
func BuildPayload(s *ds.WizardSession, q *ds.Quote) QuotePayload {
	lines := make([]QuoteLine, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, QuoteLine{
			FeatureID: l.FeatureID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}

	return QuotePayload{
		SessionID:   s.ID,
		ServiceType: s.ServiceType,
		Customer:    s.Customer,
		Signature:   s.Agreement.Signature,
		SignedAt:    time.Now(),
		Quote: QuoteBody{
			PackageOrPlanID: q.PackageOrPlanID,
			Lines:           lines,
			Subtotal:        q.Subtotal,
			VATTotal:        q.VATTotal,
			GrossTotal:      q.GrossTotal,
			DepositAmount:   q.DepositAmount,
			RemainingAmount: q.RemainingAmount,
			DepositPercent:  q.DepositPercent,
		},
	}
}

// SubmitQuote отправляет заявку и блокируется до ответа сервиса.
// Не-2xx ответ возвращается как ошибка с текстом тела ответа.
func (c *Client) SubmitQuote(ctx context.Context, payload QuotePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("submission service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("submission service responded %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
