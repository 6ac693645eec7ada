package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomuthu-engineer/moibook/internal/config"
	"github.com/tomuthu-engineer/moibook/internal/model"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return New(config.BackendConfig{
		BaseURL:           srv.URL + "/api/",
		ReturnsCreatePath: "/returns",
		ReturnsTotalPath:  "/returns/total-payment",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestVerifyOTP(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"mobile": "9999999999", "otp": "123456"}, body)
		assert.Empty(t, r.Header.Get("Authorization"))

		writeJSON(w, http.StatusOK, map[string]string{"accessToken": "acc", "refreshToken": "ref"})
	})
	c := newTestClient(t, mux)

	tokens, err := c.VerifyOTP(context.Background(), "9999999999", "123456")

	require.NoError(t, err)
	assert.Equal(t, model.TokensDTO{AccessToken: "acc", RefreshToken: "ref"}, tokens)
}

func TestVerifyOTP_NoToken(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{})
	}))

	_, err := c.VerifyOTP(context.Background(), "9999999999", "123456")

	assert.ErrorIs(t, err, ErrNoTokens)
}

func TestWithSession_SendsBearer(t *testing.T) {
	var got atomic.Value
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []any{})
	}))

	authed := c.WithSession(&model.AuthSession{AccessToken: "tok"})
	_, err := authed.Events(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", got.Load())

	_, err = c.Events(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", got.Load(), "base client must stay anonymous")
}

func TestStatusError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
		unauth  bool
	}{
		{"message field", http.StatusBadRequest, `{"message":"invalid otp"}`, "invalid otp", false},
		{"error field", http.StatusInternalServerError, `{"error":"boom"}`, "boom", false},
		{"plain text", http.StatusBadGateway, "upstream down\n", "upstream down", false},
		{"unauthorized", http.StatusUnauthorized, ``, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))

			err := c.RequestOTP(context.Background(), "9999999999")

			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.message, se.Message)
			assert.Equal(t, "/api/auth/request-otp", se.Path)
			assert.Equal(t, tt.unauth, IsUnauthorized(err))
		})
	}
}

func TestCreateEvent_SendsPayloadUnwrapped(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/event/create", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Wedding", body["eventName"])
		assert.NotContains(t, body, "payload")
		w.WriteHeader(http.StatusCreated)
	})
	c := newTestClient(t, mux)

	err := c.CreateEvent(context.Background(), model.EventCreateRequest{EventName: "Wedding"})

	assert.NoError(t, err)
}

func TestEvents_BothShapes(t *testing.T) {
	for name, body := range map[string]string{
		"array":   `[{"_id":"e1","eventName":"A"}]`,
		"wrapped": `{"events":[{"_id":"e1","eventName":"A"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/event/all", r.URL.Path)
				_, _ = io.WriteString(w, body)
			}))

			events, err := c.Events(context.Background())

			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, "e1", events[0].Id)
		})
	}
}

func TestReceived_ConfigurablePaths(t *testing.T) {
	var created atomic.Bool
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/returns/create", func(w http.ResponseWriter, r *http.Request) {
		created.Store(true)
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("GET /api/returns/total-amount", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]float64{"totalAmount": 42})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := New(config.BackendConfig{
		BaseURL:           srv.URL + "/api",
		ReturnsCreatePath: "/returns/create",
		ReturnsTotalPath:  "/returns/total-amount",
	})

	require.NoError(t, c.CreateReceived(context.Background(), model.ReceivedMoiSubmission{EventId: "e1"}))
	assert.True(t, created.Load())

	total, err := c.ReceivedTotal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42.0, total)
}

func TestTotals(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/invest/total-amount", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]float64{"totalAmount": 1500})
	})
	mux.HandleFunc("GET /api/returns/total-payment", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]float64{"totalPayment": 2500})
	})
	c := newTestClient(t, mux)

	totals, err := c.Totals(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.Totals{Paid: 1500, Received: 2500}, totals)
}

func TestTotals_OneFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/invest/total-amount", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]float64{"totalAmount": 1500})
	})
	mux.HandleFunc("GET /api/returns/total-payment", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c := newTestClient(t, mux)

	totals, err := c.Totals(context.Background())

	assert.Error(t, err)
	assert.Equal(t, model.Totals{}, totals)
}

func TestReceivedEntries(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/returns/event/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "e 1", r.PathValue("id"))
		_, _ = io.WriteString(w, `[{"_id":"r1","eventId":"e 1","formFields":{"fullName":"A","address":{"area":"X"}}}]`)
	})
	c := newTestClient(t, mux)

	entries, err := c.ReceivedEntries(context.Background(), "e 1")

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "A", entries[0].FormFields.Value("fullName"))
}

func TestPaidReport(t *testing.T) {
	tests := []struct {
		name        string
		disposition string
		contentType string
		wantName    string
		wantType    string
	}{
		{"fallback", "", "application/octet-stream", PaidReportName, xlsxContentType},
		{"backend name", `attachment; filename="invest.xlsx"`, "application/vnd.ms-excel", "invest.xlsx", "application/vnd.ms-excel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/invest/export-excel", r.URL.Path)
				if tt.disposition != "" {
					w.Header().Set("Content-Disposition", tt.disposition)
				}
				w.Header().Set("Content-Type", tt.contentType)
				_, _ = w.Write([]byte("PK\x03\x04"))
			}))

			report, err := c.PaidReport(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, report.Filename)
			assert.Equal(t, tt.wantType, report.ContentType)
			assert.Equal(t, []byte("PK\x03\x04"), report.Data)
		})
	}
}
