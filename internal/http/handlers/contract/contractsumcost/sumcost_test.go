package contractsumcost

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/client-contract-manager/internal/models"
)

// MockService реализует интерфейс contractsumcost.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SumActiveContractsCost(ctx context.Context, clientID int64) (float64, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(float64), args.Error(1)
}

func TestSumCostHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		clientID       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешный подсчёт суммы",
			clientID: "1",
			setupMock: func(m *MockService) {
				m.On("SumActiveContractsCost", mock.Anything, int64(1)).Return(750.0, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"sum_cost":750`,
		},
		{
			name:     "без активных договоров сумма ноль",
			clientID: "2",
			setupMock: func(m *MockService) {
				m.On("SumActiveContractsCost", mock.Anything, int64(2)).Return(0.0, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"sum_cost":0`,
		},
		{
			name:           "некорректный id в URL",
			clientID:       "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `failed to decode client id from url`,
		},
		{
			name:     "клиент не найден",
			clientID: "99",
			setupMock: func(m *MockService) {
				m.On("SumActiveContractsCost", mock.Anything, int64(99)).
					Return(0.0, models.ErrClientNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `client not found`,
		},
		{
			name:     "ошибка сервиса",
			clientID: "1",
			setupMock: func(m *MockService) {
				m.On("SumActiveContractsCost", mock.Anything, int64(1)).
					Return(0.0, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not sum contracts cost`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/contracts/"+tt.clientID+"/sumcost", nil)
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
