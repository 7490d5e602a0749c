package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"ingressos_checkout/internal/config"
	"ingressos_checkout/internal/poller"

	_ "github.com/joho/godotenv/autoload"
)

// pixwatch follows a preference from the terminal until it is paid or fails.
func main() {
	var (
		apiURL   = flag.String("api", "http://localhost:8080", "checkout API base URL")
		id       = flag.String("id", "", "preference id")
		env      = flag.String("env", os.Getenv("MERCADOPAGO_ENVIRONMENT"), "expected gateway environment (test|production)")
		interval = flag.Duration("interval", 3*time.Second, "polling interval; 0 disables polling")
		attempts = flag.Int("attempts", poller.DefaultMaxAttempts, "attempts per fetch on transient failures")
		timeout  = flag.Duration("timeout", 10*time.Second, "HTTP timeout per request")
	)
	flag.Parse()

	if *id == "" {
		log.Fatal("[pixwatch] -id is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	var (
		mu   sync.Mutex
		last poller.Snapshot
	)
	p := poller.New(poller.NewHTTPFetcher(*apiURL, *timeout), *id, poller.Options{
		Environment: config.ParseEnvironment(*env),
		Interval:    *interval,
		MaxAttempts: *attempts,
		OnChange: func(s poller.Snapshot) {
			mu.Lock()
			defer mu.Unlock()
			if s.State == last.State && s.Status == last.Status && s.PixCode == last.PixCode {
				return
			}
			last = s
			printSnapshot(s)
			if s.Terminal() {
				select {
				case <-done:
				default:
					close(done)
				}
			}
		},
	})

	p.Mount(ctx)
	defer p.Unmount()
	go p.Run(ctx)

	select {
	case <-ctx.Done():
		log.Printf("[pixwatch] interrupted preference_id=%s", *id)
	case <-done:
	}
}

func printSnapshot(s poller.Snapshot) {
	switch s.State {
	case poller.StateError:
		log.Printf("[pixwatch] state=%s err=%v", s.State, s.Err)
	case poller.StateReady:
		log.Printf("[pixwatch] state=%s status=%s stale=%t", s.State, s.Status, s.Stale)
		if s.PixCode != "" {
			log.Printf("[pixwatch] beneficiary=%q", s.Beneficiary)
			log.Printf("[pixwatch] pix copia e cola: %s", s.PixCode)
		}
		if s.CheckoutURL != "" && s.PixCode == "" {
			log.Printf("[pixwatch] checkout_url=%s", s.CheckoutURL)
		}
	default:
		log.Printf("[pixwatch] state=%s", s.State)
	}
}
