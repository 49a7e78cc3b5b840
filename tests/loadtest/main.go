package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const (
	baseURL      = "http://127.0.0.1:8080"
	wsURL        = "ws://127.0.0.1:8080/ws"
	numWorkers   = 20
	numWatchers  = 30
	testDuration = 10 * time.Second
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func main() {
	fmt.Println("=== Stagehand Load Test ===")
	fmt.Printf("Senders: %d | Watchers: %d | Duration: %s\n\n", numWorkers, numWatchers, testDuration)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	chatID, err := fetchChatID()
	if err != nil {
		fmt.Printf("FAILED: %s\n", err)
		return
	}
	fmt.Printf("Target chat: %s\n", chatID)

	// Passive watchers absorb every broadcast for the whole run, so each
	// mutation below fans out to a realistic audience.
	stopWatchers := make(chan struct{})
	var watcherWg sync.WaitGroup
	var broadcastsSeen atomic.Int64
	for i := 0; i < numWatchers; i++ {
		watcherWg.Add(1)
		go watcher(&watcherWg, stopWatchers, &broadcastsSeen)
	}
	time.Sleep(500 * time.Millisecond)

	// Phase 1: HTTP read load against the polling endpoint
	fmt.Println("\n--- Phase 1: HTTP reads (GET /api/state, GET /health) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.8 {
			return doGet("/api/state", "GET /api/state")
		}
		return doGet("/health", "GET /health")
	})

	// Phase 2: socket mutations, round-trip measured send -> own broadcast
	fmt.Println("\n--- Phase 2: Socket mutations (control:send_message) ---")
	runSocketPhase(testDuration, chatID)

	// Phase 3: mixed load, sockets mutating while HTTP polls
	fmt.Println("\n--- Phase 3: Mixed load (sockets + HTTP polling) ---")
	done := make(chan struct{})
	go func() {
		runSocketPhase(testDuration, chatID)
		close(done)
	}()
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doGet("/api/state", "GET /api/state")
	})
	<-done

	close(stopWatchers)
	watcherWg.Wait()
	fmt.Printf("\nBroadcast frames absorbed by watchers: %d\n", broadcastsSeen.Load())
}

func fetchChatID() (string, error) {
	resp, err := httpClient.Get(baseURL + "/api/state")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var doc struct {
		Chats []struct {
			ID string `json:"id"`
		} `json:"chats"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", err
	}
	if len(doc.Chats) == 0 {
		return "", fmt.Errorf("document has no chats")
	}
	return doc.Chats[0].ID, nil
}

// watcher holds a connection open and drains every frame, like an actor
// display would.
func watcher(wg *sync.WaitGroup, stop <-chan struct{}, seen *atomic.Int64) {
	defer wg.Done()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	go func() {
		<-stop
		conn.SetReadDeadline(time.Now())
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		seen.Add(1)
	}
}

// runSocketPhase opens one connection per sender and measures the time from
// writing a control:send_message frame to receiving the data:update broadcast
// that contains it.
func runSocketPhase(duration time.Duration, chatID string) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()

			conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
			if err != nil {
				results <- result{"WS dial", 0, 0, true}
				return
			}
			defer conn.Close()

			// swallow the init frame
			conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			if _, _, err := conn.ReadMessage(); err != nil {
				results <- result{"WS init", 0, 0, true}
				return
			}

			seq := 0
			for {
				select {
				case <-stop:
					return
				default:
				}

				seq++
				nonce := fmt.Sprintf("load-%d-%d", id, seq)
				payload, _ := json.Marshal(map[string]string{
					"chatId": chatID,
					"text":   nonce,
					"sender": "me",
				})
				out, _ := json.Marshal(frame{Event: "control:send_message", Data: payload})

				start := time.Now()
				if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
					results <- result{"WS send_message", 0, time.Since(start), true}
					return
				}

				conn.SetReadDeadline(time.Now().Add(5 * time.Second))
				for {
					_, msg, err := conn.ReadMessage()
					if err != nil {
						results <- result{"WS send_message", 0, time.Since(start), true}
						return
					}
					if bytes.Contains(msg, []byte(nonce)) {
						results <- result{"WS send_message", 200, time.Since(start), false}
						break
					}
				}
			}
		}(i)
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 88))
	fmt.Printf("  Total: %d ops | Errors: %d (%.1f%%) | Rate: %.0f/s\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func doGet(path, label string) result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + path)
	lat := time.Since(start)
	if err != nil {
		return result{label, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{label, resp.StatusCode, lat, resp.StatusCode != 200}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
