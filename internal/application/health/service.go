package health

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"wedding-backend/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// DBPinger is satisfied by *sql.DB. A nil pinger reports the database as disconnected.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// Probe is an optional extra dependency check (e.g. the WhatsApp session).
type Probe func(ctx context.Context) error

type Report struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64  `json:"uptimeSeconds"`
	HeapMB        int    `json:"heapMb"`
	Goroutines    int    `json:"goroutines"`
	Platform      string `json:"platform"`
	GoVersion     string `json:"goVersion"`
}

type TrafficInfo struct {
	TotalRequests   int                    `json:"totalRequests"`
	SuccessCount    int                    `json:"successCount"`
	FailedCount     int                    `json:"failedCount"`
	SuccessRate     string                 `json:"successRate"`
	AvgResponseTime string                 `json:"avgResponseTime"`
	LastRequest     map[string]interface{} `json:"lastRequest"`
}

type DepStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"pingMs"`
}

// Collector gathers the report served at /health/json.
type Collector struct {
	Rdb         *redis.Client
	DB          DBPinger
	FrontendURL string
	Probes      map[string]Probe
	Client      *http.Client
}

func (c *Collector) Collect(ctx context.Context) Report {
	r := Report{Dependencies: make(map[string]DepStatus)}

	r.Dependencies["database"] = timed(ctx, c.DB != nil, func(ctx context.Context) error { return c.DB.PingContext(ctx) })
	r.Dependencies["redis"] = timed(ctx, c.Rdb != nil, func(ctx context.Context) error { return c.Rdb.Ping(ctx).Err() })

	startMs := time.Now().UnixMilli()
	r.Traffic = TrafficInfo{SuccessRate: "100", AvgResponseTime: "0"}
	if r.Dependencies["redis"].Status == "connected" {
		startMs = c.traffic(ctx, &r.Traffic, startMs)
	}

	if c.FrontendURL != "" {
		dep := timed(ctx, true, c.get)
		if dep.Status == "connected" {
			dep.Status = "reachable"
		} else {
			dep.Status = "unreachable"
		}
		r.Dependencies["frontend"] = dep
	}
	for name, probe := range c.Probes {
		r.Dependencies[name] = timed(ctx, true, probe)
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	uptime := (time.Now().UnixMilli() - startMs) / 1000
	if uptime < 0 {
		uptime = 0
	}
	r.Runtime = RuntimeInfo{
		UptimeSeconds: uptime,
		HeapMB:        int(m.HeapInuse / 1024 / 1024),
		Goroutines:    runtime.NumGoroutine(),
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
	}

	r.Status = "issue"
	if r.Dependencies["database"].Status == "connected" && r.Dependencies["redis"].Status == "connected" {
		r.Status = "ok"
	}
	return r
}

// traffic reads the counters HealthMarker keeps and returns the recorded start time.
func (c *Collector) traffic(ctx context.Context, t *TrafficInfo, startMs int64) int64 {
	vals, err := c.Rdb.MGet(ctx, middleware.KeyReqTotal, middleware.KeyReqErrors, middleware.KeyResTime,
		middleware.KeyResCount, middleware.KeyStartTime, middleware.KeyLastReq).Result()
	if err != nil {
		return startMs
	}
	s := func(i int) string {
		v, _ := vals[i].(string)
		return v
	}

	if st := s(4); st != "" {
		if v, err := strconv.ParseInt(st, 10, 64); err == nil {
			startMs = v
		}
	} else {
		c.Rdb.Set(ctx, middleware.KeyStartTime, startMs, 0)
	}

	t.TotalRequests, _ = strconv.Atoi(s(0))
	t.FailedCount, _ = strconv.Atoi(s(1))
	t.SuccessCount = t.TotalRequests - t.FailedCount
	if t.TotalRequests > 0 {
		t.SuccessRate = strconv.FormatFloat(float64(t.SuccessCount)/float64(t.TotalRequests)*100, 'f', 1, 64)
	}
	sum, _ := strconv.ParseFloat(s(2), 64)
	if n, _ := strconv.Atoi(s(3)); n > 0 {
		t.AvgResponseTime = strconv.FormatFloat(sum/float64(n), 'f', 2, 64)
	}
	if last := s(5); last != "" {
		_ = json.Unmarshal([]byte(last), &t.LastRequest)
	}
	return startMs
}

func (c *Collector) get(ctx context.Context) error {
	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: 3 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.FrontendURL, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func timed(ctx context.Context, present bool, ping func(context.Context) error) DepStatus {
	if !present {
		return DepStatus{Status: "disconnected"}
	}
	start := time.Now()
	if err := ping(ctx); err != nil {
		return DepStatus{Status: "error"}
	}
	ms := time.Since(start).Milliseconds()
	return DepStatus{Status: "connected", PingMs: &ms}
}
