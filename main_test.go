package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lukehollenback/clientapi/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(name string) string {
		return vars[name]
	}
}

func TestParseConfigFlags(t *testing.T) {
	cfg, args, err := parseConfig(
		[]string{"-address", "http://host", "-key", "k", "-secret", "s", "-timeout", "5s", "trades", "BTC_USD"},
		env(nil),
		&bytes.Buffer{},
	)
	require.NoError(t, err)

	assert.Equal(t, "http://host", cfg.address)
	assert.Equal(t, "k", cfg.keyID)
	assert.Equal(t, "s", cfg.secret)
	assert.Equal(t, 5*time.Second, cfg.timeout)
	assert.Equal(t, []string{"trades", "BTC_USD"}, args)
}

func TestParseConfigEnvironmentFallback(t *testing.T) {
	cfg, _, err := parseConfig(
		[]string{"-key", "flag-key", "balance"},
		env(map[string]string{
			constants.EnvAddress: "http://env",
			constants.EnvKeyID:   "env-key",
			constants.EnvSecret:  "env-secret",
		}),
		&bytes.Buffer{},
	)
	require.NoError(t, err)

	assert.Equal(t, "http://env", cfg.address)
	assert.Equal(t, "flag-key", cfg.keyID)
	assert.Equal(t, "env-secret", cfg.secret)
}

func TestParseConfigErrors(t *testing.T) {
	_, _, err := parseConfig([]string{"symbols"}, env(nil), &bytes.Buffer{})
	assert.Error(t, err)

	_, _, err = parseConfig([]string{"-address", "http://host"}, env(nil), &bytes.Buffer{})
	assert.Error(t, err)

	_, _, err = parseConfig([]string{"-address", "http://host", "-timeout", "0s", "symbols"}, env(nil), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestUsageTextHidesSecret(t *testing.T) {
	var stderr bytes.Buffer

	code := realMain([]string{"-h"}, env(map[string]string{constants.EnvSecret: "hunter2"}), &bytes.Buffer{}, &stderr)

	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr.String(), "buy|sell SYMBOL PRICE VOLUME")
	assert.NotContains(t, stderr.String(), "hunter2")
}

func TestRealMainSymbols(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/symbols", r.URL.Path)

		_, _ = w.Write([]byte(`[{"Name":"BTC_USD","Currency":"USD","PriceStep":"0.01"}]`))
	}))
	defer server.Close()

	var stdout, stderr bytes.Buffer

	code := realMain([]string{"-address", server.URL, "-no-color", "symbols"}, env(nil), &stdout, &stderr)

	assert.Equal(t, exitOK, code, stderr.String())
	assert.Equal(t, "BTC_USD USD step 0.01\n", stdout.String())
}

func TestRealMainCandlesToCSV(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "count=1000&symbol=BTC_USD&timeframe=3600", r.URL.RawQuery)

		_, _ = w.Write([]byte(`[{"Symbol":"BTC_USD","Time":3600,"Open":"1","High":"2","Low":"1","Close":"2","Volume":"5"}]`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "candles.csv")

	var stdout, stderr bytes.Buffer

	code := realMain([]string{"-address", server.URL, "-csv", path, "candles", "BTC_USD", "1h"}, env(nil), &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Empty(t, stdout.String())
	assert.Equal(t, "Symbol,Time,Open,High,Low,Close,Volume\nBTC_USD,3600,1,2,1,2,5\n", string(contents))
}

func TestRealMainCSVFlagIgnoredByOtherCommands(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "unused.csv")

	var stdout, stderr bytes.Buffer

	code := realMain([]string{"-address", server.URL, "-csv", path, "symbols"}, env(nil), &stdout, &stderr)

	assert.Equal(t, exitOK, code, stderr.String())
	assert.NoFileExists(t, path)
}

func TestRealMainPrivateCommandWithoutCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))
	defer server.Close()

	var stdout, stderr bytes.Buffer

	code := realMain([]string{"-address", server.URL, "-no-color", "balance"}, env(nil), &stdout, &stderr)

	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr.String(), "requires credentials")
}

func TestRealMainUsageError(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := realMain([]string{"-address", "http://127.0.0.1:1", "frobnicate"}, env(nil), &stdout, &stderr)

	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr.String(), `unknown command "frobnicate"`)
}
