package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/app/catalogdata"
	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/redis"
	"backend/internal/app/submission"
)

// memStore — хранилище сессий в памяти для тестов
type memStore struct {
	mu       sync.Mutex
	sessions map[string]*ds.WizardSession
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]*ds.WizardSession)}
}

func (m *memStore) SaveSession(_ context.Context, s *ds.WizardSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *s
	m.sessions[s.ID] = &copied
	return nil
}

func (m *memStore) GetSession(_ context.Context, id string) (*ds.WizardSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, redis.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *memStore) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// mockSubmitter запоминает отправленные заявки
type mockSubmitter struct {
	err      error
	payloads []submission.QuotePayload
}

func (m *mockSubmitter) SubmitQuote(_ context.Context, p submission.QuotePayload) error {
	if m.err != nil {
		return m.err
	}
	m.payloads = append(m.payloads, p)
	return nil
}

// mockEstimateStore — хранилище смет в памяти
type mockEstimateStore struct {
	uploaded map[string][]byte
}

func (m *mockEstimateStore) UploadEstimate(data []byte, sessionID string) (string, error) {
	if m.uploaded == nil {
		m.uploaded = make(map[string][]byte)
	}
	name := "estimate_" + sessionID + ".json"
	m.uploaded[name] = data
	return name, nil
}

func (m *mockEstimateStore) GetFileURL(objectName string) (string, error) {
	return "http://minio.local/" + objectName, nil
}

func newTestRouter(store SessionStore, estimates EstimateStore, submitter QuoteSubmitter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAPIHandler(catalogdata.NewCatalog(), store, estimates, submitter)
	r := gin.New()
	h.RegisterAPIRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) dto.SessionResponse {
	t.Helper()
	var resp dto.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCatalogEndpoints(t *testing.T) {
	r := newTestRouter(newMemStore(), nil, &mockSubmitter{})

	w := doJSON(t, r, http.MethodGet, "/api/features", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.FeatureListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, len(catalogdata.Features()), list.Total)

	w = doJSON(t, r, http.MethodGet, "/api/features/cms", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/features/no-such-feature", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/packages/business", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/plans", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var plans dto.PlanListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plans))
	require.Equal(t, 3, plans.Total)
	// годовая цена со скидкой: 99 × 12 × 0.9
	assert.InDelta(t, 1069.20, plans.Plans[1].YearlyPrice, 0.001)
}

func TestCancellationFeeEndpoint(t *testing.T) {
	r := newTestRouter(newMemStore(), nil, &mockSubmitter{})

	w := doJSON(t, r, http.MethodGet, "/api/cancellation-fee?total=5000&phase=in_progress", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.CancellationFeeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 2000, resp.Fee, 0.001)

	w = doJSON(t, r, http.MethodGet, "/api/cancellation-fee?total=5000&phase=halfway", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/cancellation-fee?total=abc&phase=in_progress", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWizardSessionNotFound(t *testing.T) {
	r := newTestRouter(newMemStore(), nil, &mockSubmitter{})

	w := doJSON(t, r, http.MethodGet, "/api/wizard/unknown-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWizardWebsiteFlow(t *testing.T) {
	store := newMemStore()
	submitter := &mockSubmitter{}
	r := newTestRouter(store, nil, submitter)

	// создание сессии
	w := doJSON(t, r, http.MethodPost, "/api/wizard", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	session := decodeSession(t, w)
	require.NotEmpty(t, session.ID)
	assert.Equal(t, "service_type", session.CurrentStep)
	base := "/api/wizard/" + session.ID

	// вперед нельзя, пока тип услуги не выбран
	w = doJSON(t, r, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var verr dto.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verr))
	assert.Contains(t, verr.Fields, "service_type")

	// выбор типа услуги и переход к пакетам
	w = doJSON(t, r, http.MethodPut, base+"/service-type", dto.SelectServiceTypeRequest{ServiceType: "website"})
	require.Equal(t, http.StatusOK, w.Code)
	session = decodeSession(t, w)
	assert.Equal(t, []string{"service_type", "package", "features", "customer_info", "agreement"}, session.Steps)

	w = doJSON(t, r, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "package", decodeSession(t, w).CurrentStep)

	// выбор пакета инициализирует выбор опций
	w = doJSON(t, r, http.MethodPut, base+"/package", dto.SelectPackageRequest{PackageID: "business"})
	require.Equal(t, http.StatusOK, w.Code)
	session = decodeSession(t, w)
	require.Len(t, session.Features, 3)

	required := make(map[string]bool)
	for _, f := range session.Features {
		if f.Required {
			required[f.FeatureID] = true
		}
	}
	assert.True(t, required["responsive-design"])
	assert.True(t, required["ssl"])
	assert.False(t, required["cms"])

	w = doJSON(t, r, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// обязательную опцию нельзя снять (no-op)
	w = doJSON(t, r, http.MethodPost, base+"/features/ssl/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	session = decodeSession(t, w)
	assert.Len(t, session.Features, 3)

	// добавление количественной опции и зажим количества
	w = doJSON(t, r, http.MethodPost, base+"/features/extra-page/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, base+"/features/extra-page/quantity", dto.SetQuantityRequest{Delta: 100})
	require.Equal(t, http.StatusOK, w.Code)
	session = decodeSession(t, w)
	for _, f := range session.Features {
		if f.FeatureID == "extra-page" {
			assert.Equal(t, 20, f.Quantity)
		}
	}

	// смета: cms 450 + extra-page 20 × 150 = 3450
	w = doJSON(t, r, http.MethodGet, base+"/quote", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var quote dto.QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	assert.InDelta(t, 3450, quote.Subtotal, 0.001)
	assert.InDelta(t, 724.50, quote.VATTotal, 0.001)
	assert.InDelta(t, 4174.50, quote.GrossTotal, 0.001)
	assert.Equal(t, 50, quote.DepositPercent)
	assert.InDelta(t, 1725, quote.DepositAmount, 0.001)

	// контактные данные и соглашение
	w = doJSON(t, r, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, base+"/customer", dto.CustomerInfoRequest{
		Name: "Jan de Vries", Email: "jan@voorbeeld.nl", Phone: "+31 6 12345678",
		Address: "Keizersgracht 1", PostalCode: "1015 CC", City: "Amsterdam",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "agreement", decodeSession(t, w).CurrentStep)

	// отправка без соглашения отклоняется
	w = doJSON(t, r, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, r, http.MethodPut, base+"/agreement", dto.AgreementRequest{
		TermsAccepted: true, PrivacyAccepted: true,
		CancellationAccepted: true, Signature: "Jan de Vries",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// успешная отправка уничтожает сессию
	w = doJSON(t, r, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, submitter.payloads, 1)
	assert.Equal(t, session.ID, submitter.payloads[0].SessionID)
	assert.Equal(t, "Jan de Vries", submitter.payloads[0].Customer.Name)

	w = doJSON(t, r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitFailureKeepsSession(t *testing.T) {
	store := newMemStore()
	submitter := &mockSubmitter{err: fmt.Errorf("submission service responded 503: onderhoud")}
	r := newTestRouter(store, nil, submitter)

	w := doJSON(t, r, http.MethodPost, "/api/wizard", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	session := decodeSession(t, w)
	base := "/api/wizard/" + session.ID

	// доводим maintenance-сессию до последнего шага
	doJSON(t, r, http.MethodPut, base+"/service-type", dto.SelectServiceTypeRequest{ServiceType: "maintenance"})
	doJSON(t, r, http.MethodPost, base+"/next", nil)
	doJSON(t, r, http.MethodPut, base+"/plan", dto.SelectPlanRequest{PlanID: "basis", BillingInterval: "monthly"})
	doJSON(t, r, http.MethodPost, base+"/next", nil)
	doJSON(t, r, http.MethodPut, base+"/customer", dto.CustomerInfoRequest{
		Name: "Jan", Email: "jan@voorbeeld.nl", Phone: "06", Address: "Straat 1",
		PostalCode: "1111 AA", City: "Utrecht",
	})
	doJSON(t, r, http.MethodPost, base+"/next", nil)
	// для maintenance галочка об отмене не требуется
	w = doJSON(t, r, http.MethodPut, base+"/agreement", dto.AgreementRequest{
		TermsAccepted: true, PrivacyAccepted: true, Signature: "Jan",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusBadGateway, w.Code)
	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	// текст ошибки внешнего сервиса передается дословно
	assert.Contains(t, errResp.Message, "onderhoud")

	// сессия осталась на шаге соглашения, отправку можно повторить
	w = doJSON(t, r, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "agreement", decodeSession(t, w).CurrentStep)
}

func TestSelectPackageResetsSelection(t *testing.T) {
	store := newMemStore()
	r := newTestRouter(store, nil, &mockSubmitter{})

	w := doJSON(t, r, http.MethodPost, "/api/wizard", nil)
	session := decodeSession(t, w)
	base := "/api/wizard/" + session.ID

	doJSON(t, r, http.MethodPut, base+"/service-type", dto.SelectServiceTypeRequest{ServiceType: "website"})
	doJSON(t, r, http.MethodPut, base+"/package", dto.SelectPackageRequest{PackageID: "business"})
	doJSON(t, r, http.MethodPost, base+"/features/extra-page/toggle", nil)

	// смена пакета отбрасывает накопленный выбор и инициализирует заново
	w = doJSON(t, r, http.MethodPut, base+"/package", dto.SelectPackageRequest{PackageID: "webshop"})
	require.Equal(t, http.StatusOK, w.Code)
	session = decodeSession(t, w)

	ids := make([]string, 0, len(session.Features))
	for _, f := range session.Features {
		ids = append(ids, f.FeatureID)
	}
	assert.ElementsMatch(t, []string{"responsive-design", "ssl", "webshop-module", "payment-integration", "cms"}, ids)
	assert.NotContains(t, ids, "extra-page")
}

func TestSelectPackageWrongServiceType(t *testing.T) {
	r := newTestRouter(newMemStore(), nil, &mockSubmitter{})

	w := doJSON(t, r, http.MethodPost, "/api/wizard", nil)
	session := decodeSession(t, w)
	base := "/api/wizard/" + session.ID

	doJSON(t, r, http.MethodPut, base+"/service-type", dto.SelectServiceTypeRequest{ServiceType: "seo"})

	w = doJSON(t, r, http.MethodPut, base+"/package", dto.SelectPackageRequest{PackageID: "business"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, base+"/plan", dto.SelectPlanRequest{PlanID: "basis"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateEstimate(t *testing.T) {
	store := newMemStore()
	estimates := &mockEstimateStore{}
	r := newTestRouter(store, estimates, &mockSubmitter{})

	w := doJSON(t, r, http.MethodPost, "/api/wizard", nil)
	session := decodeSession(t, w)
	base := "/api/wizard/" + session.ID

	doJSON(t, r, http.MethodPut, base+"/service-type", dto.SelectServiceTypeRequest{ServiceType: "website"})

	// без выбранных опций смета не формируется
	w = doJSON(t, r, http.MethodPost, base+"/estimate", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	doJSON(t, r, http.MethodPut, base+"/package", dto.SelectPackageRequest{PackageID: "business"})

	w = doJSON(t, r, http.MethodPost, base+"/estimate", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.EstimateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.URL, resp.ObjectName)

	// документ не содержит юридических данных
	data := estimates.uploaded[resp.ObjectName]
	require.NotNil(t, data)
	assert.NotContains(t, string(data), "terms_accepted")
	assert.NotContains(t, string(data), "signature")
}

func TestEstimateWithoutStorage(t *testing.T) {
	r := newTestRouter(newMemStore(), nil, &mockSubmitter{})

	w := doJSON(t, r, http.MethodPost, "/api/wizard", nil)
	session := decodeSession(t, w)

	w = doJSON(t, r, http.MethodPost, "/api/wizard/"+session.ID+"/estimate", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
