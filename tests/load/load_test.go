//go:build load

package load

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	defaultBaseURL = "http://localhost:8080"
	targetRPS      = 50
	duration       = 30 * time.Second
	maxLatencyP99  = 300 * time.Millisecond
	minSuccessRate = 0.999 // 99.9%
)

func scenario(t *testing.T, name string) Scenario {
	t.Helper()
	if testing.Short() {
		t.Skip("Пропуск нагрузочного теста в коротком режиме")
	}

	baseURL := os.Getenv("LOAD_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	// Проверка доступности сервера
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		t.Skipf("Сервер не запущен по адресу %s: %v", baseURL, err)
	}
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	return Scenario{
		Name:     name,
		BaseURL:  baseURL,
		Rate:     targetRPS,
		Duration: duration,
		Secret:   os.Getenv("GITHUB_WEBHOOK_SECRET"),
	}
}

func validate(t *testing.T, s Scenario, report string, success float64, p99 time.Duration) {
	t.Helper()
	t.Logf("%s: %s", s.Name, report)
	assert.GreaterOrEqual(t, success, minSuccessRate, "success rate")
	assert.Less(t, p99, maxLatencyP99, "p99 latency")
}

func TestLoad_Health(t *testing.T) {
	s := scenario(t, "health")
	metrics := Run(s, HealthTargeter(s.BaseURL))
	validate(t, s, Report(metrics), metrics.Success, metrics.Latencies.P99)
}

func TestLoad_WebhookPing(t *testing.T) {
	s := scenario(t, "webhook-ping")
	metrics := Run(s, PingTargeter(s.BaseURL, s.Secret))
	validate(t, s, Report(metrics), metrics.Success, metrics.Latencies.P99)
}

// Очередь должна принимать комментарии быстрее, чем их разбирают воркеры
func TestLoad_WebhookComments(t *testing.T) {
	s := scenario(t, "webhook-comments")
	metrics := Run(s, CommentTargeter(s.BaseURL, s.Secret, "load-repo"))
	validate(t, s, Report(metrics), metrics.Success, metrics.Latencies.P99)
	assert.NotContains(t, metrics.StatusCodes, "401", "подпись отклонена, проверьте GITHUB_WEBHOOK_SECRET")
}
