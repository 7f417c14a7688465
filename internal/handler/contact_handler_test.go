package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "atelier/internal/errors"
	"atelier/internal/model"
)

// MockContactService is a mock implementation of service.ContactService.
type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) Submit(ctx context.Context, contact *model.Contact) (*model.Contact, error) {
	args := m.Called(ctx, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}

func (m *MockContactService) List(ctx context.Context) ([]model.Contact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Contact), args.Error(1)
}

func (m *MockContactService) Get(ctx context.Context, id uuid.UUID) (*model.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}

func (m *MockContactService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Contact, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}

func (m *MockContactService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type testValidator struct {
	v *validator.Validate
}

func (t *testValidator) Validate(i interface{}) error {
	return t.v.Struct(i)
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestContactHandler_Submit(t *testing.T) {
	t.Run("well-formed submission persists and reports success", func(t *testing.T) {
		svc := new(MockContactService)
		svc.On("Submit", mock.Anything, mock.AnythingOfType("*model.Contact")).
			Return(&model.Contact{
				ID:        uuid.New(),
				FirstName: "Ada",
				Status:    model.ContactStatusNew,
			}, nil)

		h := NewContactHandler(svc)
		c, rec := newTestContext(t, http.MethodPost, "/api/contact",
			`{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","message":"hello"}`)

		require.NoError(t, h.Submit(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var env Envelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		assert.True(t, env.Success)
		svc.AssertExpectations(t)
	})

	t.Run("invalid email is rejected before the service runs", func(t *testing.T) {
		svc := new(MockContactService)
		h := NewContactHandler(svc)
		c, _ := newTestContext(t, http.MethodPost, "/api/contact",
			`{"firstName":"Ada","lastName":"Lovelace","email":"not-an-email","message":"hello"}`)

		err := h.Submit(c)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperrors.Map(err).Status)
		svc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})

	t.Run("missing message is rejected", func(t *testing.T) {
		svc := new(MockContactService)
		h := NewContactHandler(svc)
		c, _ := newTestContext(t, http.MethodPost, "/api/contact",
			`{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com"}`)

		err := h.Submit(c)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperrors.Map(err).Status)
		svc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})
}

func TestContactHandler_List(t *testing.T) {
	svc := new(MockContactService)
	svc.On("List", mock.Anything).Return([]model.Contact{{}, {}, {}}, nil)

	h := NewContactHandler(svc)
	c, rec := newTestContext(t, http.MethodGet, "/api/contact", "")

	require.NoError(t, h.List(c))

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	require.NotNil(t, env.Count)
	assert.Equal(t, 3, *env.Count)
}

func TestContactHandler_Get_BadID(t *testing.T) {
	svc := new(MockContactService)
	h := NewContactHandler(svc)

	c, _ := newTestContext(t, http.MethodGet, "/api/contact/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.Get(c)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.Map(err).Status)
}
