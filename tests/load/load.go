package load

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	vegeta "github.com/tsenart/vegeta/v12/lib"
)

// Scenario описывает одну нагрузочную атаку
type Scenario struct {
	Name     string
	BaseURL  string
	Rate     int
	Duration time.Duration
	Secret   string
}

// HealthTargeter бьет в /health
func HealthTargeter(baseURL string) vegeta.Targeter {
	return vegeta.NewStaticTargeter(vegeta.Target{
		Method: http.MethodGet,
		URL:    baseURL + "/health",
	})
}

// CommentTargeter шлет подписанные issue_comment с уникальным id доставки.
// Номера PR не отслеживаются ботом, поэтому воркеры только проверяют PR и пропускают событие
func CommentTargeter(baseURL, secret, repo string) vegeta.Targeter {
	var seq atomic.Int64
	return func(tgt *vegeta.Target) error {
		if tgt == nil {
			return vegeta.ErrNilTarget
		}

		n := seq.Add(1)
		body, err := json.Marshal(map[string]any{
			"action":  "created",
			"issue":   map[string]int64{"number": 100000 + n},
			"comment": map[string]any{"body": "lgtm", "user": map[string]string{"login": "load-bot"}},
			"repository": map[string]any{
				"name":  repo,
				"owner": map[string]string{"login": "load"},
			},
		})
		if err != nil {
			return err
		}

		*tgt = vegeta.Target{
			Method: http.MethodPost,
			URL:    baseURL + "/webhooks/github",
			Body:   body,
			Header: webhookHeader("issue_comment", secret, body),
		}
		return nil
	}
}

// PingTargeter шлет ping, он не попадает в очередь
func PingTargeter(baseURL, secret string) vegeta.Targeter {
	return func(tgt *vegeta.Target) error {
		if tgt == nil {
			return vegeta.ErrNilTarget
		}
		body := []byte(`{"zen":"Practicality beats purity."}`)
		*tgt = vegeta.Target{
			Method: http.MethodPost,
			URL:    baseURL + "/webhooks/github",
			Body:   body,
			Header: webhookHeader("ping", secret, body),
		}
		return nil
	}
}

func webhookHeader(event, secret string, body []byte) http.Header {
	header := http.Header{
		"Content-Type":      []string{"application/json"},
		"X-Github-Event":    []string{event},
		"X-Github-Delivery": []string{uuid.NewString()},
	}
	if secret != "" {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(body)
		header.Set("X-Hub-Signature-256", "sha256="+hex.EncodeToString(mac.Sum(nil)))
	}
	return header
}

// Run проводит атаку и возвращает закрытые метрики
func Run(s Scenario, targeter vegeta.Targeter) vegeta.Metrics {
	rate := vegeta.Rate{Freq: s.Rate, Per: time.Second}
	attacker := vegeta.NewAttacker(vegeta.Timeout(10 * time.Second))

	var metrics vegeta.Metrics
	for res := range attacker.Attack(targeter, rate, s.Duration, s.Name) {
		metrics.Add(res)
	}
	metrics.Close()
	return metrics
}

// Report печатает метрики в том же виде, что и CLI vegeta report
func Report(metrics vegeta.Metrics) string {
	return fmt.Sprintf(
		"requests=%d success=%.2f%% rate=%.2f/s p50=%v p95=%v p99=%v max=%v codes=%v errors=%v",
		metrics.Requests,
		metrics.Success*100,
		metrics.Rate,
		metrics.Latencies.P50,
		metrics.Latencies.P95,
		metrics.Latencies.P99,
		metrics.Latencies.Max,
		metrics.StatusCodes,
		metrics.Errors,
	)
}
