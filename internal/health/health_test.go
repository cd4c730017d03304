package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"booklibrary/internal/store"
)

type mockProber struct {
	mock.Mock
}

func (m *mockProber) Connected() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *mockProber) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestReporter_Report(t *testing.T) {
	t.Run("no database at startup", func(t *testing.T) {
		prober := new(mockProber)
		prober.On("Connected").Return(false)

		report := NewReporter(prober, time.Second).Report(context.Background())

		assert.Equal(t, StatusNoDatabase, report.Status)
		prober.AssertNotCalled(t, "Ping", mock.Anything)
	})

	t.Run("store answers", func(t *testing.T) {
		prober := new(mockProber)
		prober.On("Connected").Return(true)
		prober.On("Ping", mock.Anything).Return(nil)

		report := NewReporter(prober, time.Second).Report(context.Background())

		assert.Equal(t, StatusUp, report.Status)
		prober.AssertExpectations(t)
	})

	t.Run("store stopped answering", func(t *testing.T) {
		prober := new(mockProber)
		prober.On("Connected").Return(true)
		prober.On("Ping", mock.Anything).Return(errors.New("connection reset"))

		report := NewReporter(prober, time.Second).Report(context.Background())

		assert.Equal(t, StatusDegraded, report.Status)
	})

	t.Run("probe is bounded by the timeout", func(t *testing.T) {
		prober := new(mockProber)
		prober.On("Connected").Return(true)
		prober.On("Ping", mock.Anything).Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
		}).Return(nil)

		NewReporter(prober, 50*time.Millisecond).Report(context.Background())
		prober.AssertExpectations(t)
	})
}

func TestReporter_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		handle         *store.Handle
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "up",
			handle:         store.Connected(store.NewMemoryStore()),
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"UP"}`,
		},
		{
			name:           "no database",
			handle:         store.Disconnected(errors.New("refused")),
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"UP / No Database"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewReporter(tt.handle, 0).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}

	t.Run("degraded", func(t *testing.T) {
		prober := new(mockProber)
		prober.On("Connected").Return(true)
		prober.On("Ping", mock.Anything).Return(errors.New("timeout"))

		w := httptest.NewRecorder()
		NewReporter(prober, 0).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"DEGRADED"}`, w.Body.String())
	})
}

func TestReporter_Ready(t *testing.T) {
	w := httptest.NewRecorder()
	NewReporter(store.Disconnected(nil), 0).Ready(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	NewReporter(store.Connected(store.NewMemoryStore()), 0).Ready(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", w.Body.String())
}
