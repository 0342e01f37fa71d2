package create

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/client-contract-manager/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CreateClient(ctx context.Context, req models.DummyClient) (*models.Client, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.Client), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	birthdate := time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC)
	identifier := "CHE-123.456.789"

	tests := []struct {
		name             string
		body             string
		setupMock        func(*MockService)
		expectedStatus   int
		expectedBody     string
		expectedLocation string
	}{
		{
			name: "успешное создание лица",
			body: `{"type":"person","name":"Dupont","phone":"+41211234567",
				"email":"dupont@example.com","birthdate":"1990-03-15"}`,
			setupMock: func(m *MockService) {
				entity := &models.Client{
					ID:        42,
					Type:      models.ClientTypePerson,
					Name:      "Dupont",
					Phone:     "+41211234567",
					Email:     "dupont@example.com",
					Active:    true,
					Birthdate: &birthdate,
				}
				m.On("CreateClient", mock.Anything, mock.Anything).Return(entity, nil)
			},
			expectedStatus:   http.StatusCreated,
			expectedBody:     `"birthdate":"1990-03-15"`,
			expectedLocation: "/api/v1/clients/42",
		},
		{
			name: "успешное создание компании",
			body: `{"type":"company","name":"Acme SA","phone":"+41211234567",
				"email":"contact@acme.example","company_identifier":"CHE-123.456.789"}`,
			setupMock: func(m *MockService) {
				entity := &models.Client{
					ID:                7,
					Type:              models.ClientTypeCompany,
					Name:              "Acme SA",
					Phone:             "+41211234567",
					Email:             "contact@acme.example",
					Active:            true,
					CompanyIdentifier: &identifier,
				}
				m.On("CreateClient", mock.Anything, mock.Anything).Return(entity, nil)
			},
			expectedStatus:   http.StatusCreated,
			expectedBody:     `"company_identifier":"CHE-123.456.789"`,
			expectedLocation: "/api/v1/clients/7",
		},
		{
			name:           "некорректный JSON",
			body:           `{"type":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `invalid request body`,
		},
		{
			name: "неизвестный вариант клиента",
			body: `{"type":"robot","name":"R2","phone":"+41211234567",
				"email":"r2@example.com"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Type must be one of: person company`,
		},
		{
			name: "компания без идентификатора",
			body: `{"type":"company","name":"Acme SA","phone":"+41211234567",
				"email":"contact@acme.example"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field CompanyIdentifier is a required field`,
		},
		{
			name: "лицо без даты рождения",
			body: `{"type":"person","name":"Dupont","phone":"+41211234567",
				"email":"dupont@example.com"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Birthdate is a required field`,
		},
		{
			name: "занятый идентификатор компании",
			body: `{"type":"company","name":"Acme SA","phone":"+41211234567",
				"email":"contact@acme.example","company_identifier":"CHE-123.456.789"}`,
			setupMock: func(m *MockService) {
				m.On("CreateClient", mock.Anything, mock.Anything).
					Return(nil, models.ErrCompanyIdentifierTaken)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `company identifier already taken`,
		},
		{
			name: "дата рождения в будущем",
			body: `{"type":"person","name":"Dupont","phone":"+41211234567",
				"email":"dupont@example.com","birthdate":"2030-01-01"}`,
			setupMock: func(m *MockService) {
				m.On("CreateClient", mock.Anything, mock.Anything).
					Return(nil, models.ErrBirthdateInFuture)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `birthdate must not be in the future`,
		},
		{
			name: "ошибка сервиса создания",
			body: `{"type":"person","name":"Dupont","phone":"+41211234567",
				"email":"dupont@example.com","birthdate":"1990-03-15"}`,
			setupMock: func(m *MockService) {
				m.On("CreateClient", mock.Anything, mock.Anything).
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not create client`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			if tt.expectedLocation != "" {
				assert.Equal(t, tt.expectedLocation, w.Header().Get("Location"))
			}

			mockService.AssertExpectations(t)
		})
	}
}
