package commands

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"Vitrin/internal/config"
)

// withTempConfig создаёт конфиг клиента, у которого хранилище лежит в temp,
// а API указывает на ts (если задан).
func withTempConfig(t *testing.T, ts *httptest.Server) *config.Config {
	t.Helper()
	cfg := &config.Config{Storage: "fs", StoragePath: t.TempDir(), Locale: "fa-IR"}
	if ts != nil {
		cfg.APIBaseURL = ts.URL + "/api/"
	} else {
		cfg.APIBaseURL = "http://127.0.0.1:1/api/"
	}
	return cfg
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}
