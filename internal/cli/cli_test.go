package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/hostelportal/internal/app/models"
	"github.com/yigit/hostelportal/internal/app/models/dto"
	"github.com/yigit/hostelportal/internal/config"
	"github.com/yigit/hostelportal/internal/mockserver"
	"github.com/yigit/hostelportal/internal/pkg/apperrors"
	"github.com/yigit/hostelportal/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
	auth.BcryptCost = bcrypt.MinCost
}

type harness struct {
	t          *testing.T
	dir        string
	configPath string
}

type result struct {
	stdout string
	stderr string
	code   int
}

func writeConfig(t *testing.T, dir, baseURL string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`api:
  base_url: %q
  timeout: 5s
session:
  path: %q
logging:
  level: disabled
`, baseURL, filepath.Join(dir, "session.json"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, nil)
}

// newHarnessWith lets a test intercept requests before they reach the backend
func newHarnessWith(t *testing.T, wrap func(next http.Handler) http.Handler) *harness {
	t.Helper()

	cfg := &config.Config{}
	cfg.MockServer.JWTSecret = "cli-test-secret"
	cfg.MockServer.TokenExpiration = time.Hour
	cfg.MockServer.Issuer = "test"

	var handler http.Handler = mockserver.New(cfg, zerolog.Nop()).Handler()
	if wrap != nil {
		handler = wrap(handler)
	}
	backend := httptest.NewServer(handler)
	t.Cleanup(backend.Close)

	dir := t.TempDir()
	return &harness{t: t, dir: dir, configPath: writeConfig(t, dir, backend.URL+"/api")}
}

func (h *harness) run(stdin string, args ...string) result {
	h.t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), append([]string{"--config", h.configPath}, args...), strings.NewReader(stdin), &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func (h *harness) register(studentID, gender string) {
	h.t.Helper()
	res := h.run("secret1\nsecret1\n", "register",
		"--name", "Ada Obi",
		"--student-id", studentID,
		"--faculty", "Science",
		"--department", "Computer Science",
		"--level", "200",
		"--campus", "Main",
		"--gender", gender,
	)
	require.Equal(h.t, 0, res.code, res.stderr)
	require.Contains(h.t, res.stdout, "Registration successful. Welcome, Ada Obi!")
}

func (h *harness) verifyPayment() {
	h.t.Helper()
	receipt := filepath.Join(h.dir, "receipt.png")
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	require.NoError(h.t, os.WriteFile(receipt, png, 0o600))

	res := h.run("", "verify-payment", "--ref", "TX-2024-0001", "--date", "2024-01-02", "--receipt", receipt)
	require.Equal(h.t, 0, res.code, res.stderr)
	require.Contains(h.t, res.stdout, "Payment verified successfully!")
	require.Contains(h.t, res.stdout, "₦47,000")
}

func TestRegisterLoginLogout(t *testing.T) {
	h := newHarness(t)
	h.register("U20CS1001", "male")

	res := h.run("", "whoami")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "U20CS1001")
	assert.Contains(t, res.stdout, "Male")

	res = h.run("", "logout")
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "Logged out.")

	res = h.run("", "whoami")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "portal login")

	res = h.run("wrong-password\n", "login", "--student-id", "U20CS1001")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Invalid student ID or password")

	res = h.run("secret1\n", "login", "--student-id", "u20cs1001")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Welcome back, Ada Obi!")
}

func TestRegisterStopsAtFailingStep(t *testing.T) {
	h := newHarness(t)

	res := h.run("secret1\nsecret2\n", "register", "--name", "Ada Obi", "--student-id", "U20CS1001")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Step 1 of 3: Account")
	assert.NotContains(t, res.stderr, "Step 2 of 3")
	assert.Contains(t, res.stderr, "Please fix the following:")
	assert.Contains(t, res.stderr, "Passwords do not match")

	// Nothing was created, so the ID is still free
	h.register("U20CS1001", "male")
}

func TestSelectRequiresPayment(t *testing.T) {
	h := newHarness(t)
	h.register("U20CS1002", "male")

	res := h.run("", "select", "--first", "1", "--yes")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "You need to pay your accommodation fee")
	assert.Contains(t, res.stdout, "portal pay")
	assert.NotContains(t, res.stdout, "Review your choices")

	res = h.run("", "pay")
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "₦45,000")
	assert.Contains(t, res.stdout, "₦2,000")
	assert.Contains(t, res.stdout, "₦47,000")
}

func TestSelectionLifecycle(t *testing.T) {
	h := newHarness(t)
	h.register("U20CS1003", "male")
	h.verifyPayment()

	res := h.run("", "eligibility")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "You can now select your hostel choices.")

	// Male students on Main campus see Ahmadu Bello, Ribadu and Kaduna
	res = h.run("", "select", "--first", "Ribadu Hall", "--second", "1", "--yes")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "1st choice:  Ribadu Hall")
	assert.Contains(t, res.stdout, "2nd choice:  Ahmadu Bello Hall")
	assert.Contains(t, res.stdout, "3rd choice:  (none)")
	assert.Contains(t, res.stdout, "Once submitted, your choices cannot be changed.")
	assert.Contains(t, res.stdout, "Hostel choices submitted successfully")

	res = h.run("", "select", "--first", "1", "--yes")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "You have already submitted your hostel choices.")

	res = h.run("", "room")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Ribadu Hall")
	assert.Contains(t, res.stdout, "Block A")

	res = h.run("", "status")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Choices submitted:  Yes")
	assert.Contains(t, res.stdout, "Room allocated:     Yes")

	res = h.run("", "dashboard")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Welcome, Ada Obi (U20CS1003)")
	assert.Contains(t, res.stdout, "Progress: 4 of 4 steps completed")
	assert.Contains(t, res.stdout, "[x] Room allocated")
	assert.NotContains(t, res.stdout, "Amount due")
}

func TestSelectInteractive(t *testing.T) {
	h := newHarness(t)
	h.register("U20CS1004", "male")
	h.verifyPayment()

	// Declining keeps the choices unsent
	res := h.run("2\n\n\nn\n", "select")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "1st choice:  Ribadu Hall")
	assert.Contains(t, res.stdout, "Nothing was submitted.")

	res = h.run("", "eligibility")
	assert.Contains(t, res.stdout, "You can now select your hostel choices.")

	res = h.run("2\n\n\ny\n", "select")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Hostel choices submitted successfully")
}

// failSubmissions answers the first n choice submissions with status and a
// JSON error body. Later submissions reach the backend.
func failSubmissions(calls *atomic.Int32, n int32, status int, code dto.ErrorCode) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/submit-choices") {
				if calls.Add(1) <= n {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(status)
					fmt.Fprintf(w, `{"success":false,"error":{"code":%q,"message":%q}}`, code, http.StatusText(status))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func TestSelectStopsWhenSessionExpires(t *testing.T) {
	var submits atomic.Int32
	h := newHarnessWith(t, failSubmissions(&submits, 100, http.StatusUnauthorized, dto.ErrorCodeExpiredToken))
	h.register("U20CS1009", "male")
	h.verifyPayment()

	res := h.run("y\ny\ny\nn\n", "select", "--first", "1")
	assert.Equal(t, 1, res.code)
	assert.Equal(t, int32(1), submits.Load())
	assert.Contains(t, res.stdout, "Submission failed. Your selections are unchanged.")
	assert.NotContains(t, res.stderr, "Try again?")
	assert.Contains(t, res.stderr, "Run `portal login` to continue.")

	res = h.run("", "whoami")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "portal login")
}

func TestSelectRetriesWhenServiceUnavailable(t *testing.T) {
	var submits atomic.Int32
	h := newHarnessWith(t, failSubmissions(&submits, 1, http.StatusServiceUnavailable, dto.ErrorCodeInternalServer))
	h.register("U20CS1010", "male")
	h.verifyPayment()

	res := h.run("y\ny\n", "select", "--first", "1")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, int32(2), submits.Load())
	assert.Equal(t, 1, strings.Count(res.stderr, "Try again?"))
	assert.Contains(t, res.stdout, "Hostel choices submitted successfully")
}

func TestSelectDoesNotRetryWithYes(t *testing.T) {
	var submits atomic.Int32
	h := newHarnessWith(t, failSubmissions(&submits, 1, http.StatusServiceUnavailable, dto.ErrorCodeInternalServer))
	h.register("U20CS1011", "male")
	h.verifyPayment()

	res := h.run("", "select", "--first", "1", "--yes")
	assert.Equal(t, 1, res.code)
	assert.Equal(t, int32(1), submits.Load())
	assert.Contains(t, res.stderr, "Could not reach the accommodation service")

	res = h.run("", "eligibility")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "You can now select your hostel choices.")
}

func TestRetryable(t *testing.T) {
	assert.True(t, retryable(apperrors.ErrServiceUnavailable))
	assert.True(t, retryable(fmt.Errorf("%w: connection refused", apperrors.ErrServiceUnavailable)))
	for _, err := range []error{
		apperrors.ErrUnauthenticated,
		apperrors.ErrChoicesAlreadySubmitted,
		apperrors.ErrPaymentRequired,
		apperrors.ErrNotEligible,
		apperrors.ErrHostelNotOffered,
		apperrors.ErrPermissionDenied,
	} {
		assert.False(t, retryable(err), err.Error())
	}
}

func TestSelectRejectsDuplicateHostel(t *testing.T) {
	h := newHarness(t)
	h.register("U20CS1005", "male")
	h.verifyPayment()

	res := h.run("", "select", "--first", "1", "--second", "Ahmadu Bello Hall", "--yes")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "already your first choice")

	res = h.run("", "select", "--first", "Queen Amina Hall", "--yes")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "is offered to you")
}

func TestHostelCommands(t *testing.T) {
	h := newHarness(t)
	h.register("U20CS1006", "female")

	res := h.run("", "hostels")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Queen Amina Hall")
	assert.Contains(t, res.stdout, "Zaria Hall")
	assert.NotContains(t, res.stdout, "Ribadu Hall")

	res = h.run("", "hostels", "stats", "1")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Queen Amina Hall")
	assert.Contains(t, res.stdout, "48")

	res = h.run("", "hostels", "rooms", "zaria hall", "--available")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Block A")
	assert.Contains(t, res.stdout, "Block B")

	res = h.run("", "hostels", "rooms", "Kongo Hall")
	assert.Equal(t, 1, res.code)
}

func TestVerifyPaymentValidation(t *testing.T) {
	h := newHarness(t)
	h.register("U20CS1007", "male")

	notes := filepath.Join(h.dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("paid at the bank"), 0o600))

	res := h.run("", "verify-payment", "--ref", "x", "--receipt", notes)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Please fix the following:")
	assert.Contains(t, res.stderr, "transactionRef is not a valid transaction reference")
	assert.Contains(t, res.stderr, "Receipt must be a JPG, PNG or PDF file")

	res = h.run("", "eligibility")
	assert.Contains(t, res.stdout, "You need to pay")
}

func TestBackendUnreachable(t *testing.T) {
	dir := t.TempDir()
	h := &harness{t: t, dir: dir, configPath: writeConfig(t, dir, "http://127.0.0.1:1/api")}

	res := h.run("secret1\n", "login", "--student-id", "U20CS1001")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Could not reach the accommodation service")
}

func TestRenderError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "validation",
			err:  apperrors.NewValidationError().Add("name", "name is required").Add("gender", "gender is required"),
			want: "Please fix the following:\n  - name is required\n  - gender is required\n",
		},
		{
			name: "unauthenticated",
			err:  fmt.Errorf("load: %w", apperrors.ErrUnauthenticated),
			want: "Run `portal login` to continue.",
		},
		{
			name: "unavailable",
			err:  apperrors.ErrServiceUnavailable,
			want: "Please try again.",
		},
		{
			name: "other",
			err:  errors.New("boom"),
			want: "Error: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			renderError(&buf, tt.err)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestNaira(t *testing.T) {
	assert.Equal(t, "₦0", naira(0))
	assert.Equal(t, "₦500", naira(500))
	assert.Equal(t, "₦47,000", naira(47000))
	assert.Equal(t, "₦1,234,567", naira(1234567))
	assert.Equal(t, "-₦2,000", naira(-2000))
}

func TestResolveHostel(t *testing.T) {
	hostels := []models.Hostel{
		{ID: "1", Name: "Ahmadu Bello Hall"},
		{ID: "3", Name: "Ribadu Hall"},
	}

	h, err := resolveHostel(hostels, "3")
	require.NoError(t, err)
	assert.Equal(t, "Ribadu Hall", h.Name, "IDs win over positions")

	h, err = resolveHostel(hostels, "2")
	require.NoError(t, err)
	assert.Equal(t, "3", h.ID)

	h, err = resolveHostel(hostels, " ribadu hall ")
	require.NoError(t, err)
	assert.Equal(t, "3", h.ID)

	_, err = resolveHostel(hostels, "Kongo Hall")
	assert.ErrorIs(t, err, apperrors.ErrHostelNotOffered)
}
