package poller

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"ingressos_checkout/internal/domain/entities"
	"ingressos_checkout/internal/pix"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

const (
	DefaultRefreshTimeout = 5 * time.Second
	DefaultMaxAttempts    = 3
	DefaultInitialBackoff = 500 * time.Millisecond
	DefaultMaxBackoff     = 5 * time.Second
)

var ErrEnvironmentMismatch = errors.New("preference belongs to another gateway environment")

// Options configure a Poller. Interval zero means refreshes are manual only.
type Options struct {
	Environment    entities.Environment
	Interval       time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	RefreshTimeout time.Duration
	OnChange       func(Snapshot)
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.InitialBackoff <= 0 {
		o.InitialBackoff = DefaultInitialBackoff
	}
	if o.MaxBackoff < o.InitialBackoff {
		o.MaxBackoff = DefaultMaxBackoff
		if o.MaxBackoff < o.InitialBackoff {
			o.MaxBackoff = o.InitialBackoff
		}
	}
	if o.RefreshTimeout <= 0 {
		o.RefreshTimeout = DefaultRefreshTimeout
	}
	return o
}

// Snapshot is what a UI renders. QRImage is the base64 PNG sent by the
// gateway; PixCode stays copyable when the image fails to render.
type Snapshot struct {
	State          State
	Refreshing     bool
	Stale          bool
	ShowImageError bool
	PreferenceID   string
	Status         entities.PreferenceStatus
	CheckoutURL    string
	PixCode        string
	QRImage        string
	TicketURL      string
	Beneficiary    string
	Err            error
}

func (s Snapshot) Terminal() bool { return s.Status.IsTerminal() }

// Poller follows one preference until it reaches a terminal status.
//
// Every fetch is tagged with the generation it was started in. Results from
// an older generation, or arriving after Unmount, are dropped.
type Poller struct {
	fetcher StatusFetcher
	opts    Options

	mu       sync.Mutex
	snap     Snapshot
	previous Snapshot
	gen      uint64
	mounted  bool
	timer    *time.Timer

	sleep func(ctx context.Context, d time.Duration) error
}

func New(fetcher StatusFetcher, preferenceID string, opts Options) *Poller {
	return &Poller{
		fetcher: fetcher,
		opts:    opts.withDefaults(),
		snap:    Snapshot{State: StateIdle, PreferenceID: strings.TrimSpace(preferenceID)},
		sleep:   sleepContext,
	}
}

func (p *Poller) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

// Mount starts the first fetch. Without a preference id the poller stays idle.
func (p *Poller) Mount(ctx context.Context) {
	p.mu.Lock()
	if p.snap.PreferenceID == "" || p.mounted {
		p.mu.Unlock()
		return
	}
	p.mounted = true
	p.snap.State = StateLoading
	p.gen++
	gen := p.gen
	snap := p.snap
	p.mu.Unlock()

	log.Printf("[checkout][poller] mount preference_id=%s", snap.PreferenceID)
	p.notify(snap)
	go p.fetch(ctx, gen)
}

// Refresh clears the QR state and fetches again. When no answer arrives
// within RefreshTimeout the poller goes back to ready with the previous data
// marked Stale. It returns false outside the ready and error states.
func (p *Poller) Refresh(ctx context.Context) bool {
	p.mu.Lock()
	if !p.mounted || (p.snap.State != StateReady && p.snap.State != StateError) {
		p.mu.Unlock()
		return false
	}
	p.previous = p.snap
	p.snap.State = StateLoading
	p.snap.Refreshing = true
	p.snap.Stale = false
	p.snap.ShowImageError = false
	p.snap.PixCode, p.snap.QRImage, p.snap.TicketURL, p.snap.Beneficiary = "", "", "", ""
	p.snap.Err = nil
	p.gen++
	gen := p.gen
	p.stopTimerLocked()
	p.timer = time.AfterFunc(p.opts.RefreshTimeout, func() { p.refreshTimedOut(gen) })
	snap := p.snap
	p.mu.Unlock()

	log.Printf("[checkout][poller] refresh preference_id=%s", snap.PreferenceID)
	p.notify(snap)
	go p.fetch(ctx, gen)
	return true
}

// ImageLoadFailed records that the QR image could not be rendered.
func (p *Poller) ImageLoadFailed() {
	p.mu.Lock()
	if p.snap.State != StateReady || p.snap.ShowImageError {
		p.mu.Unlock()
		return
	}
	p.snap.ShowImageError = true
	snap := p.snap
	p.mu.Unlock()
	p.notify(snap)
}

// Unmount stops applying results. In-flight requests are left to finish.
func (p *Poller) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mounted = false
	p.gen++
	p.stopTimerLocked()
}

// Run polls every Interval until the status is terminal, the poller is
// unmounted or ctx is done. With no Interval it returns immediately.
func (p *Poller) Run(ctx context.Context) {
	if p.opts.Interval <= 0 {
		return
	}
	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		p.mu.Lock()
		if !p.mounted || p.snap.Terminal() {
			p.mu.Unlock()
			return
		}
		if p.snap.State == StateLoading {
			p.mu.Unlock()
			continue
		}
		gen := p.gen
		p.mu.Unlock()

		p.fetch(ctx, gen)
	}
}

func (p *Poller) fetch(ctx context.Context, gen uint64) {
	view, err := p.fetchWithRetry(ctx, gen)
	p.apply(gen, view, err)
}

func (p *Poller) fetchWithRetry(ctx context.Context, gen uint64) (StatusView, error) {
	id := p.Snapshot().PreferenceID
	backoff := p.opts.InitialBackoff
	for attempt := 1; ; attempt++ {
		view, err := p.fetcher.FetchStatus(ctx, id)
		if err == nil {
			return view, p.checkEnvironment(view)
		}
		if !IsTransient(err) || attempt >= p.opts.MaxAttempts || !p.current(gen) {
			return StatusView{}, err
		}
		log.Printf("[checkout][poller] transient fetch failure preference_id=%s attempt=%d backoff=%s err=%v", id, attempt, backoff, err)
		if serr := p.sleep(ctx, backoff); serr != nil {
			return StatusView{}, err
		}
		backoff *= 2
		if backoff > p.opts.MaxBackoff {
			backoff = p.opts.MaxBackoff
		}
	}
}

func (p *Poller) checkEnvironment(view StatusView) error {
	if p.opts.Environment == "" || view.Environment == "" {
		return nil
	}
	if entities.Environment(view.Environment) != p.opts.Environment {
		return ErrEnvironmentMismatch
	}
	return nil
}

func (p *Poller) current(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mounted && p.gen == gen
}

func (p *Poller) apply(gen uint64, view StatusView, err error) {
	p.mu.Lock()
	if !p.mounted || p.gen != gen {
		p.mu.Unlock()
		log.Printf("[checkout][poller] dropping result of a stale fetch")
		return
	}
	p.stopTimerLocked()
	p.snap.Refreshing = false
	p.snap.Stale = false

	if err != nil {
		p.snap.State = StateError
		p.snap.Err = err
	} else {
		p.snap.State = StateReady
		p.snap.Err = nil
		p.snap.Status = entities.PreferenceStatus(view.Status)
		p.snap.CheckoutURL = view.CheckoutURL
		p.snap.PixCode, p.snap.QRImage, p.snap.TicketURL, p.snap.Beneficiary = "", "", "", ""
		if view.Pix != nil && view.Pix.QRCode != "" {
			p.snap.PixCode = view.Pix.QRCode
			p.snap.QRImage = view.Pix.QRCodeBase64
			p.snap.TicketURL = view.Pix.TicketURL
			// The name is read from the code itself, not from the server field.
			p.snap.Beneficiary = pix.BeneficiaryName(view.Pix.QRCode)
		}
	}
	snap := p.snap
	p.mu.Unlock()

	if err != nil {
		log.Printf("[checkout][poller] fetch failed preference_id=%s err=%v", snap.PreferenceID, err)
	}
	p.notify(snap)
}

func (p *Poller) refreshTimedOut(gen uint64) {
	p.mu.Lock()
	if !p.mounted || p.gen != gen || p.snap.State != StateLoading {
		p.mu.Unlock()
		return
	}
	prev := p.previous
	p.snap.State = StateReady
	p.snap.Refreshing = false
	p.snap.Stale = true
	p.snap.Status = prev.Status
	p.snap.CheckoutURL = prev.CheckoutURL
	p.snap.PixCode, p.snap.QRImage, p.snap.TicketURL, p.snap.Beneficiary = prev.PixCode, prev.QRImage, prev.TicketURL, prev.Beneficiary
	p.timer = nil
	snap := p.snap
	p.mu.Unlock()

	log.Printf("[checkout][poller] refresh timed out preference_id=%s", snap.PreferenceID)
	p.notify(snap)
}

func (p *Poller) stopTimerLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Poller) notify(s Snapshot) {
	if p.opts.OnChange != nil {
		p.opts.OnChange(s)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
