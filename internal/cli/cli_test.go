package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomuthu-engineer/moibook/internal/api"
	"github.com/tomuthu-engineer/moibook/internal/config"
)

var testNow = time.Date(2024, 1, 1, 18, 5, 0, 0, time.UTC)

type backend struct {
	mux   *http.ServeMux
	mu    sync.Mutex
	paths []string
	body  map[string]string
}

func newTestEnv(t *testing.T, token, stdin string) (*Env, *backend, *bytes.Buffer) {
	t.Helper()
	b := &backend{mux: http.NewServeMux(), body: map[string]string{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.paths = append(b.paths, r.Method+" "+r.URL.Path)
		b.body[r.URL.Path] = string(body)
		b.mu.Unlock()
		b.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	out := &bytes.Buffer{}
	env := &Env{
		Client: api.New(config.BackendConfig{
			BaseURL:           srv.URL + "/api",
			ReturnsCreatePath: "/returns",
			ReturnsTotalPath:  "/returns/total-payment",
		}),
		Token: token,
		In:    strings.NewReader(stdin),
		Out:   out,
		Now:   func() time.Time { return testNow },
	}
	return env, b, out
}

func (b *backend) handle(pattern, body string) {
	b.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	})
}

func (b *backend) requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.paths...)
}

func (b *backend) sent(path string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.body[path]
}

func run(t *testing.T, env *Env, args ...string) error {
	t.Helper()
	ok, cmd := ParseFlags(env, args)
	require.True(t, ok, "parse %v", args)
	return cmd.Run(context.Background())
}

func TestParseFlags(t *testing.T) {
	env, _, out := newTestEnv(t, "", "")

	ok, _ := ParseFlags(env, nil)
	assert.False(t, ok)
	assert.Contains(t, out.String(), "You must pass a subcommand")

	out.Reset()
	ok, _ = ParseFlags(env, []string{"nope"})
	assert.False(t, ok)
	assert.Contains(t, out.String(), "Invalid subcommand nope")

	out.Reset()
	ok, _ = ParseFlags(env, []string{"help"})
	assert.False(t, ok)
	for _, name := range []string{"login", "event", "paid", "received", "totals", "export"} {
		assert.Contains(t, out.String(), name)
	}

	ok, cmd := ParseFlags(env, []string{"paid", "-list"})
	assert.True(t, ok)
	assert.Equal(t, "paid", cmd.Name())
}

func TestLogin(t *testing.T) {
	env, b, out := newTestEnv(t, "", "9999999999\n123456\n")
	b.handle("POST /api/auth/request-otp", `{}`)
	b.handle("POST /api/auth/verify-otp", `{"accessToken":"acc-token","refreshToken":"ref"}`)

	require.NoError(t, run(t, env, "login"))

	assert.Contains(t, out.String(), "$ export MOIBOOK_CLI_TOKEN=acc-token")
	assert.JSONEq(t, `{"mobile":"9999999999","otp":"123456"}`, b.sent("/api/auth/verify-otp"))
}

func TestLogin_InvalidOtpSkipsVerify(t *testing.T) {
	env, b, out := newTestEnv(t, "", "12\n")
	b.handle("POST /api/auth/request-otp", `{}`)

	err := run(t, env, "login", "-mobile", "9999999999")

	assert.Error(t, err)
	assert.Contains(t, out.String(), "-otp: Otp must be exactly 6 characters")
	assert.Equal(t, []string{"POST /api/auth/request-otp"}, b.requests())
}

func TestCommandsRequireToken(t *testing.T) {
	env, b, _ := newTestEnv(t, "", "")

	assert.ErrorIs(t, run(t, env, "totals"), ErrNotSignedIn)
	assert.ErrorIs(t, run(t, env, "event", "-list"), ErrNotSignedIn)
	assert.Empty(t, b.requests())
}

func TestExpiredTokenIsRejected(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(testNow.Add(-time.Minute)),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	env, _, _ := newTestEnv(t, token, "")

	assert.ErrorIs(t, run(t, env, "totals"), ErrNotSignedIn)
}

func TestTotals(t *testing.T) {
	env, b, out := newTestEnv(t, "tok", "")
	b.handle("GET /api/invest/total-amount", `{"totalAmount":1500}`)
	b.handle("GET /api/returns/total-payment", `{"totalPayment":2500}`)

	require.NoError(t, run(t, env, "totals"))

	assert.Contains(t, out.String(), "Total paid:     1500.00")
	assert.Contains(t, out.String(), "Total received: 2500.00")
}

func TestEventCreate(t *testing.T) {
	env, b, out := newTestEnv(t, "tok", "")
	b.handle("POST /api/event/create", `{}`)

	require.NoError(t, run(t, env, "event", "-create", "-name", "Wedding", "-type", "Wedding",
		"-area", "X", "-district", "Y", "-state", "Z", "-fields", "phoneNumber, surname"))

	assert.Contains(t, out.String(), `Event "Wedding" created!`)
	var body struct {
		EventDate  string          `json:"eventDate"`
		FormFields map[string]bool `json:"formFields"`
	}
	require.NoError(t, json.Unmarshal([]byte(b.sent("/api/event/create")), &body))
	assert.Equal(t, "2024-01-01", body.EventDate)
	assert.True(t, body.FormFields["phoneNumber"])
	assert.True(t, body.FormFields["surname"])
	assert.True(t, body.FormFields["address"])
	assert.False(t, body.FormFields["occupation"])
}

func TestEventCreate_UnknownField(t *testing.T) {
	env, b, out := newTestEnv(t, "tok", "")

	err := run(t, env, "event", "-create", "-name", "Wedding", "-type", "Wedding",
		"-area", "X", "-district", "Y", "-state", "Z", "-fields", "fathersName")

	assert.Error(t, err)
	assert.Contains(t, out.String(), `unknown form field "fathersName"`)
	assert.Empty(t, b.requests())
}

func TestEventShow(t *testing.T) {
	env, b, out := newTestEnv(t, "tok", "")
	b.handle("GET /api/event/ev42", `{"_id":"ev42","eventName":"Wedding","formFields":{"fullName":true,"address":true,"phoneNumber":true}}`)

	require.NoError(t, run(t, env, "event", "-show", "ev42"))

	assert.Contains(t, out.String(), "phoneNumber\tPhone Number")
	assert.Contains(t, out.String(), "district\tDistrict (required)")
}

func TestPaidCreate_NonNumericAmountSkipsBackend(t *testing.T) {
	env, b, out := newTestEnv(t, "tok", "")

	err := run(t, env, "paid", "-create", "-name", "Raman", "-amount", "abc", "-type", "Wedding",
		"-area", "X", "-district", "Y", "-state", "Z")

	assert.Error(t, err)
	assert.Contains(t, out.String(), "-amount: Amount must be a number")
	assert.Empty(t, b.requests())
}

func TestPaidCreate(t *testing.T) {
	env, b, _ := newTestEnv(t, "tok", "")
	b.handle("POST /api/invest/create", `{}`)

	require.NoError(t, run(t, env, "paid", "-create", "-name", "Raman", "-amount", "501", "-type", "Wedding",
		"-area", "X", "-district", "Y", "-state", "Z"))

	assert.JSONEq(t, `{
		"beneficiaryName": "Raman",
		"amount": 501,
		"date": "2024-01-01",
		"eventType": "Wedding",
		"area": "X",
		"district": "Y",
		"state": "Z",
		"time": "6:05:00 PM"
	}`, b.sent("/api/invest/create"))
}

func TestPaidList(t *testing.T) {
	env, b, out := newTestEnv(t, "tok", "")
	b.handle("GET /api/invest/all", `[
		{"beneficiaryName":"Raman","amount":501,"eventType":"Wedding","area":"Adyar"},
		{"beneficiaryName":"Selvi","amount":1001,"eventType":"Housewarming","area":"Tambaram"}
	]`)

	require.NoError(t, run(t, env, "paid", "-list", "-q", "adyar"))

	assert.Contains(t, out.String(), "Raman")
	assert.NotContains(t, out.String(), "Selvi")
	assert.Contains(t, out.String(), "501.00")
}

func TestReceivedCreate(t *testing.T) {
	env, b, out := newTestEnv(t, "tok", "")
	b.handle("GET /api/event/ev42", `{"_id":"ev42","eventName":"Wedding","formFields":{"fullName":true,"address":true,"paymentAmount":true,"phoneNumber":true}}`)
	b.handle("POST /api/returns", `{}`)

	require.NoError(t, run(t, env, "received", "-event", "ev42", "-create",
		"-set", "fullName=A", "-set", "area=X", "-set", "district=Y", "-set", "state=Z",
		"-set", "paymentAmount=100", "-set", "phoneNumber=9999999999"))

	assert.Contains(t, out.String(), "Received moi from A recorded!")
	assert.JSONEq(t, `{
		"eventId": "ev42",
		"formFields": {
			"fullName": "A",
			"paymentAmount": "100",
			"phoneNumber": "9999999999",
			"date": "2024-01-01",
			"address": {"area": "X", "district": "Y", "state": "Z"}
		}
	}`, b.sent("/api/returns"))
}

func TestReceivedCreate_FieldNotOnForm(t *testing.T) {
	env, b, _ := newTestEnv(t, "tok", "")
	b.handle("GET /api/event/ev42", `{"_id":"ev42","eventName":"Wedding","formFields":{"fullName":true}}`)

	err := run(t, env, "received", "-event", "ev42", "-create", "-set", "occupation=Farmer")

	assert.ErrorContains(t, err, `field "occupation" is not on the entry form`)
	assert.Equal(t, []string{"GET /api/event/ev42"}, b.requests())
}

func TestExport(t *testing.T) {
	env, b, out := newTestEnv(t, "tok", "")
	b.mux.HandleFunc("GET /api/returns/event/ev42/export-excel", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("PK"))
	})
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, run(t, env, "export", "-event", "ev42", "-o", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "PK", string(data))
	assert.Contains(t, out.String(), "Report saved to "+path)
}

func TestKeyValues(t *testing.T) {
	kv := keyValues{}
	require.NoError(t, kv.Set("b=2"))
	require.NoError(t, kv.Set(" a =1=1"))
	assert.Error(t, kv.Set("novalue"))
	assert.Error(t, kv.Set("=x"))
	assert.Equal(t, "a=1=1,b=2", kv.String())
}
