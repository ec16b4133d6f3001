package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/melodify-live/melodify-client/internal/adapter"
	"github.com/melodify-live/melodify-client/internal/domain"
	"github.com/melodify-live/melodify-client/internal/ledger"
)

const (
	defaultRPCURL      = "https://fullnode.testnet.sui.io:443"
	defaultRequests    = 100
	defaultConcurrency = 8
	defaultTimeout     = 10 * time.Second
)

type Config struct {
	RPCURL      string
	ObjectID    string
	Owner       string
	PackageID   string
	Requests    int           // Total number of RPC calls to issue
	Concurrency int           // Number of concurrent workers
	Timeout     time.Duration // Per-request timeout
	OutputFile  string        // Output markdown file path (optional)
}

type CallResult struct {
	Latency time.Duration
	Err     error
}

type BenchmarkStats struct {
	Method    string
	Target    string
	StartTime time.Time
	Duration  time.Duration
	Results   []CallResult
	Succeeded int
	Failed    int
	NotFound  int
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.RPCURL, "rpc-url", defaultRPCURL, "Fullnode JSON-RPC endpoint")
	flag.StringVar(&cfg.ObjectID, "object-id", "", "Object id to fetch (benchmarks sui_getObject)")
	flag.StringVar(&cfg.Owner, "owner", "", "Owner address to scan (benchmarks suix_getOwnedObjects)")
	flag.StringVar(&cfg.PackageID, "package-id", "", "Package id for the owner scan type filter (optional)")
	flag.IntVar(&cfg.Requests, "requests", defaultRequests, "Total number of requests to issue")
	flag.IntVar(&cfg.Concurrency, "concurrency", defaultConcurrency, "Number of concurrent workers")
	flag.DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "Per-request timeout")
	flag.StringVar(&cfg.OutputFile, "output", "", "Write results to a markdown file (optional)")

	flag.Parse()
	return cfg
}

func main() {
	cfg := parseFlags()

	if cfg.ObjectID == "" && cfg.Owner == "" {
		fmt.Println("Error: one of -object-id or -owner is required")
		flag.Usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	httpClient := adapter.NewHTTPClient(cfg.Timeout, adapter.NewIO())
	ledgerClient := ledger.NewClient(cfg.RPCURL, httpClient, adapter.NewJSON())

	stats := &BenchmarkStats{StartTime: time.Now()}
	var call func(context.Context) error
	if cfg.ObjectID != "" {
		stats.Method = "sui_getObject"
		stats.Target = cfg.ObjectID
		call = func(ctx context.Context) error {
			_, err := ledgerClient.GetObject(ctx, cfg.ObjectID)
			return err
		}
	} else {
		stats.Method = "suix_getOwnedObjects"
		stats.Target = cfg.Owner
		typeFilter := ""
		if cfg.PackageID != "" {
			typeFilter = ledger.TrackType(cfg.PackageID)
		}
		call = func(ctx context.Context) error {
			_, err := ledgerClient.GetOwnedObjects(ctx, cfg.Owner, typeFilter)
			return err
		}
	}

	fmt.Printf("Benchmarking %s against %s\n", stats.Method, cfg.RPCURL)
	fmt.Printf("Requests: %d, concurrency: %d, timeout: %s\n\n", cfg.Requests, cfg.Concurrency, cfg.Timeout)

	stats.Results = runBenchmark(ctx, cfg, call)
	stats.Duration = time.Since(stats.StartTime)

	for _, r := range stats.Results {
		switch {
		case r.Err == nil:
			stats.Succeeded++
		case errors.Is(r.Err, domain.ErrNotFound):
			stats.NotFound++
		default:
			stats.Failed++
		}
	}

	printStats(stats)

	if cfg.OutputFile != "" {
		if err := writeMarkdown(cfg.OutputFile, stats); err != nil {
			fmt.Printf("Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nResults written to %s\n", cfg.OutputFile)
	}
}

// runBenchmark issues cfg.Requests calls through cfg.Concurrency workers and
// collects per-call latency. An interrupt stops the run early; whatever was
// measured so far is still reported.
func runBenchmark(ctx context.Context, cfg *Config, call func(context.Context) error) []CallResult {
	jobs := make(chan int)
	results := make([]CallResult, 0, cfg.Requests)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for w := 0; w < cfg.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				reqCtx, cancelReq := context.WithTimeout(ctx, cfg.Timeout)
				start := time.Now()
				err := call(reqCtx)
				latency := time.Since(start)
				cancelReq()

				mu.Lock()
				results = append(results, CallResult{Latency: latency, Err: err})
				mu.Unlock()
			}
		}()
	}

	for i := 0; i < cfg.Requests; i++ {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return results
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return results
}

func printStats(stats *BenchmarkStats) {
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("BENCHMARK RESULTS - %s (%s)\n", stats.Method, stats.Target)
	fmt.Println(strings.Repeat("=", 80))

	total := len(stats.Results)
	fmt.Printf("Completed:  %d requests in %s (%s)\n", total, stats.Duration.Round(time.Millisecond), formatRate(total, stats.Duration))
	fmt.Printf("Succeeded:  %d (%s)\n", stats.Succeeded, percentageString(stats.Succeeded, total))
	fmt.Printf("Not found:  %d (%s)\n", stats.NotFound, percentageString(stats.NotFound, total))
	fmt.Printf("Failed:     %d (%s)\n", stats.Failed, percentageString(stats.Failed, total))

	if total == 0 {
		return
	}

	latencies := sortedLatencies(stats.Results)
	fmt.Println("\nLatency:")
	fmt.Printf("  min: %s\n", latencies[0].Round(time.Millisecond))
	fmt.Printf("  p50: %s\n", percentile(latencies, 50).Round(time.Millisecond))
	fmt.Printf("  p95: %s\n", percentile(latencies, 95).Round(time.Millisecond))
	fmt.Printf("  p99: %s\n", percentile(latencies, 99).Round(time.Millisecond))
	fmt.Printf("  max: %s\n", latencies[len(latencies)-1].Round(time.Millisecond))
}

func writeMarkdown(path string, stats *BenchmarkStats) error {
	var sb strings.Builder
	total := len(stats.Results)

	sb.WriteString(fmt.Sprintf("# Benchmark: %s\n\n", stats.Method))
	sb.WriteString(fmt.Sprintf("- Target: `%s`\n", stats.Target))
	sb.WriteString(fmt.Sprintf("- Started: %s\n", stats.StartTime.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("- Duration: %s\n", stats.Duration.Round(time.Millisecond)))
	sb.WriteString(fmt.Sprintf("- Throughput: %s\n\n", formatRate(total, stats.Duration)))

	sb.WriteString("| Outcome | Count | Share |\n|---|---|---|\n")
	sb.WriteString(fmt.Sprintf("| Succeeded | %d | %s |\n", stats.Succeeded, percentageString(stats.Succeeded, total)))
	sb.WriteString(fmt.Sprintf("| Not found | %d | %s |\n", stats.NotFound, percentageString(stats.NotFound, total)))
	sb.WriteString(fmt.Sprintf("| Failed | %d | %s |\n", stats.Failed, percentageString(stats.Failed, total)))

	if total > 0 {
		latencies := sortedLatencies(stats.Results)
		sb.WriteString("\n| Percentile | Latency |\n|---|---|\n")
		sb.WriteString(fmt.Sprintf("| min | %s |\n", latencies[0].Round(time.Millisecond)))
		sb.WriteString(fmt.Sprintf("| p50 | %s |\n", percentile(latencies, 50).Round(time.Millisecond)))
		sb.WriteString(fmt.Sprintf("| p95 | %s |\n", percentile(latencies, 95).Round(time.Millisecond)))
		sb.WriteString(fmt.Sprintf("| p99 | %s |\n", percentile(latencies, 99).Round(time.Millisecond)))
		sb.WriteString(fmt.Sprintf("| max | %s |\n", latencies[len(latencies)-1].Round(time.Millisecond)))
	}

	return os.WriteFile(path, []byte(sb.String()), 0644)
}

func sortedLatencies(results []CallResult) []time.Duration {
	latencies := make([]time.Duration, 0, len(results))
	for _, r := range results {
		latencies = append(latencies, r.Latency)
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	return latencies
}
