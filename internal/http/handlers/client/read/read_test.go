package read

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

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) FindActiveClient(ctx context.Context, id int64) (*models.Client, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Client), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	birthdate := time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное чтение клиента",
			url:  "/clients/123",
			setupMock: func(m *MockService) {
				entity := &models.Client{
					ID:        123,
					Type:      models.ClientTypePerson,
					Name:      "Dupont",
					Phone:     "+41211234567",
					Email:     "dupont@example.com",
					Active:    true,
					Birthdate: &birthdate,
				}
				m.On("FindActiveClient", mock.Anything, int64(123)).Return(entity, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"birthdate":"1990-03-15"`,
		},
		{
			name:           "некорректный id в URL",
			url:            "/clients/abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode id from url"}`,
		},
		{
			name: "неактивный или несуществующий клиент",
			url:  "/clients/55",
			setupMock: func(m *MockService) {
				m.On("FindActiveClient", mock.Anything, int64(55)).Return(nil, nil)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"client not found"}`,
		},
		{
			name: "ошибка сервиса чтения",
			url:  "/clients/777",
			setupMock: func(m *MockService) {
				m.On("FindActiveClient", mock.Anything, int64(777)).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not read client"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			// Устанавливаем URL params с помощью роутера chi
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", strings.TrimPrefix(tt.url, "/clients/"))
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
