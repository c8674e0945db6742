package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Promedio-api/pkg/jwt"
)

// setup aísla config y archivo de token en un directorio temporal.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	tokenFile := filepath.Join(dir, "cfg", "token.yaml")
	t.Setenv("TOKEN_FILE", tokenFile)
	t.Setenv("LOG_LEVEL", "error")
	return tokenFile
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func authServer(t *testing.T, token string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"` + token + `","username":"admin"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// ──────────────────────────────────────────────────────────────────────────────
// Cálculos
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_Forward(t *testing.T) {
	setup(t)
	code, out, _ := runCLI(t, "forward", "--old-price", "10000", "--old-qty", "10", "--new-price", "8000", "--new-qty", "10")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "9,000원")
	assert.Contains(t, out, "20주")
	assert.Contains(t, out, "180,000원")
}

func TestRun_Reverse(t *testing.T) {
	setup(t)
	code, out, _ := runCLI(t, "reverse", "--current-avg", "10000", "--current-qty", "10", "--target-avg", "9000", "--buy-price", "8000")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "10주")
	assert.Contains(t, out, "80,000원")
}

func TestRun_EntradaInvalida(t *testing.T) {
	setup(t)
	code, _, errOut := runCLI(t, "evaluate", "--avg-price", "abc", "--qty", "1", "--current-price", "1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "avg_price")
}

func TestRun_ComandoDesconocido(t *testing.T) {
	setup(t)
	code, _, errOut := runCLI(t, "sideways")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "comando desconocido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_LoginRecordarmeWhoamiLogout(t *testing.T) {
	tokenFile := setup(t)
	tok, err := jwt.Generate("s", "admin", "admin", "test", 60)
	require.NoError(t, err)
	srv := authServer(t, tok)

	code, out, _ := runCLI(t, "login", "--server", srv.URL, "--user", "admin", "--password", "admin123", "--remember")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "token guardado")
	_, err = os.Stat(tokenFile)
	require.NoError(t, err, "el token durable queda en disco")

	code, out, _ = runCLI(t, "whoami")
	require.Equal(t, 0, code)
	assert.Equal(t, "admin\n", out)

	code, _, _ = runCLI(t, "logout")
	require.Equal(t, 0, code)
	_, err = os.Stat(tokenFile)
	assert.True(t, os.IsNotExist(err))

	code, _, _ = runCLI(t, "whoami")
	assert.Equal(t, 1, code)
}

func TestRun_LoginSinRecordarmeNoEscribeDisco(t *testing.T) {
	tokenFile := setup(t)
	srv := authServer(t, "tok-sesion")

	code, out, _ := runCLI(t, "login", "--server", srv.URL, "--user", "admin", "--password", "x")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "tok-sesion")
	_, err := os.Stat(tokenFile)
	assert.True(t, os.IsNotExist(err))
}

func TestRun_LoginServidorCaido(t *testing.T) {
	setup(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	code, _, errOut := runCLI(t, "login", "--server", url, "--user", "a", "--password", "b")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "no fue posible conectar con el servidor")
}
