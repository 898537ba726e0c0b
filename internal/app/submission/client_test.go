package submission

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/app/config"
	"backend/internal/app/ds"
)

func testPayload() QuotePayload {
	session := &ds.WizardSession{
		ID:          "sess-1",
		ServiceType: ds.ServiceWebsite,
		Customer:    ds.CustomerInfo{Name: "Jan de Vries", Email: "jan@voorbeeld.nl"},
		Agreement:   ds.Agreement{Signature: "Jan de Vries"},
	}
	quote := &ds.Quote{
		ServiceType:     ds.ServiceWebsite,
		PackageOrPlanID: "business",
		Lines: []ds.QuoteLine{
			{FeatureID: "cms", Name: "CMS-integratie", Quantity: 1,
				UnitPrice: decimal.NewFromInt(450), LineTotal: decimal.NewFromInt(450)},
		},
		Subtotal:        decimal.NewFromInt(450),
		VATTotal:        decimal.RequireFromString("94.50"),
		GrossTotal:      decimal.RequireFromString("544.50"),
		DepositAmount:   decimal.NewFromInt(225),
		RemainingAmount: decimal.NewFromInt(225),
		DepositPercent:  50,
	}
	return BuildPayload(session, quote)
}

func TestSubmitQuote_Success(t *testing.T) {
	var received QuotePayload
	var apiKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("X-Api-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := New(config.SubmissionConfig{URL: srv.URL, APIKey: "geheim", Timeout: 5 * time.Second})
	err := client.SubmitQuote(context.Background(), testPayload())

	require.NoError(t, err)
	assert.Equal(t, "geheim", apiKey)
	assert.Equal(t, "sess-1", received.SessionID)
	assert.Equal(t, "Jan de Vries", received.Signature)
	assert.True(t, decimal.NewFromInt(450).Equal(received.Quote.Subtotal))
	assert.Len(t, received.Quote.Lines, 1)
}

func TestSubmitQuote_Non2xxReturnsBodyVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("intake gesloten wegens onderhoud"))
	}))
	defer srv.Close()

	client := New(config.SubmissionConfig{URL: srv.URL, Timeout: 5 * time.Second})
	err := client.SubmitQuote(context.Background(), testPayload())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "intake gesloten wegens onderhoud")
}

func TestSubmitQuote_Unreachable(t *testing.T) {
	client := New(config.SubmissionConfig{URL: "http://127.0.0.1:1", Timeout: time.Second})
	err := client.SubmitQuote(context.Background(), testPayload())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}
