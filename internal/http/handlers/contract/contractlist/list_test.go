package contractlist

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/client-contract-manager/internal/models"
)

// MockService реализует интерфейс contractlist.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) FindActiveContractsForClient(ctx context.Context, clientID int64, filter models.DummyContractFilter) ([]*models.Contract, error) {
	args := m.Called(ctx, clientID, filter)
	if res := args.Get(0); res != nil {
		return res.([]*models.Contract), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	endDate := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	contracts := []*models.Contract{
		{
			ID:         10,
			ClientID:   1,
			StartDate:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    &endDate,
			CostAmount: 250,
			UpdateDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	tests := []struct {
		name           string
		url            string
		clientID       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешный список без фильтра",
			url:      "/contracts/1",
			clientID: "1",
			setupMock: func(m *MockService) {
				m.On("FindActiveContractsForClient", mock.Anything, int64(1),
					models.DummyContractFilter{}).Return(contracts, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"end_date":"2025-12-31"`,
		},
		{
			name:     "фильтр по дате изменения попадает в сервис",
			url:      "/contracts/1?updated_after=2025-01-15&updated_before=2025-03-01",
			clientID: "1",
			setupMock: func(m *MockService) {
				m.On("FindActiveContractsForClient", mock.Anything, int64(1),
					models.DummyContractFilter{
						UpdatedAfter:  "2025-01-15",
						UpdatedBefore: "2025-03-01",
					}).Return(contracts, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"contracts"`,
		},
		{
			name:           "некорректная граница фильтра",
			url:            "/contracts/1?updated_after=15.01.2025",
			clientID:       "1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field UpdatedAfter can contain only date in format 2006-01-02`,
		},
		{
			name:           "некорректный id в URL",
			url:            "/contracts/abc",
			clientID:       "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `failed to decode client id from url`,
		},
		{
			name:     "клиент не найден",
			url:      "/contracts/99",
			clientID: "99",
			setupMock: func(m *MockService) {
				m.On("FindActiveContractsForClient", mock.Anything, int64(99),
					models.DummyContractFilter{}).Return(nil, models.ErrClientNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `client not found`,
		},
		{
			name:     "ошибка сервиса",
			url:      "/contracts/1",
			clientID: "1",
			setupMock: func(m *MockService) {
				m.On("FindActiveContractsForClient", mock.Anything, int64(1),
					models.DummyContractFilter{}).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not list contracts`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("clientId", tt.clientID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
