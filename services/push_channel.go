package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"myapp/models"

	"github.com/google/uuid"
)

var (
	ErrChannelClosed        = errors.New("push channel closed")
	ErrChannelNotConnecting = errors.New("push channel already opened")
)

// Sampler produces the payload of one tick.
type Sampler func(ctx context.Context) (interface{}, error)

// ChannelSpec describes one kind of push channel.
type ChannelSpec struct {
	Group      string
	Interval   time.Duration
	UpdateType string
	// Subject names the sampled data in error messages ("Error getting <Subject>: ...").
	Subject string
	Sample  Sampler
}

func MetricsChannelSpec(provider MetricsProvider, interval time.Duration) ChannelSpec {
	return ChannelSpec{
		Group:      models.GroupMetrics,
		Interval:   interval,
		UpdateType: models.MessageMetricsUpdate,
		Subject:    "metrics",
		Sample: func(ctx context.Context) (interface{}, error) {
			return provider.Sample(ctx)
		},
	}
}

func StatusChannelSpec(probe *StatusProbe, interval time.Duration) ChannelSpec {
	return ChannelSpec{
		Group:      models.GroupStatus,
		Interval:   interval,
		UpdateType: models.MessageStatusUpdate,
		Subject:    "status",
		Sample: func(ctx context.Context) (interface{}, error) {
			return probe.Status(ctx), nil
		},
	}
}

// Sender writes one encoded message to the connection owning a channel.
type Sender interface {
	Send(message []byte) error
}

// ConnectionGauge counts open channels; prometheus.Gauge satisfies it.
type ConnectionGauge interface {
	Inc()
	Dec()
}

// PushChannel is the per-connection periodic publisher. It moves
// Connecting -> Open -> Closed exactly once and owns one timer loop.
type PushChannel struct {
	id     string
	spec   ChannelSpec
	sender Sender
	groups GroupRegistry
	gauge  ConnectionGauge

	mu      sync.Mutex
	state   models.ChannelState
	cancel  context.CancelFunc
	started bool

	done      chan struct{}
	closeOnce sync.Once
}

func NewPushChannel(spec ChannelSpec, sender Sender, groups GroupRegistry, gauge ConnectionGauge) *PushChannel {
	return &PushChannel{
		id:     uuid.New().String(),
		spec:   spec,
		sender: sender,
		groups: groups,
		gauge:  gauge,
		state:  models.ChannelConnecting,
		done:   make(chan struct{}),
	}
}

func (p *PushChannel) ID() string {
	return p.id
}

func (p *PushChannel) Group() string {
	return p.spec.Group
}

func (p *PushChannel) State() models.ChannelState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Done is closed once the timer loop has exited, whether through Close,
// cancellation of the parent context or a failed send.
func (p *PushChannel) Done() <-chan struct{} {
	return p.done
}

// Open registers the channel in its group and starts the timer loop. The first
// sample is taken immediately. ctx bounds the lifetime of the loop.
func (p *PushChannel) Open(ctx context.Context) error {
	if p.State() != models.ChannelConnecting {
		return ErrChannelNotConnecting
	}

	if err := p.groups.Add(ctx, p.spec.Group, p); err != nil {
		return fmt.Errorf("joining group %s: %w", p.spec.Group, err)
	}

	loopCtx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	if p.state != models.ChannelConnecting {
		// Closed while joining.
		p.mu.Unlock()
		cancel()
		p.discard()
		return ErrChannelClosed
	}
	p.state = models.ChannelOpen
	p.cancel = cancel
	p.started = true
	p.mu.Unlock()

	if p.gauge != nil {
		p.gauge.Inc()
	}
	log.Printf("Push channel %s opened in group %s", p.id, p.spec.Group)

	go p.run(loopCtx)
	return nil
}

// Close deregisters the channel, then cancels the timer loop and waits for it.
// A tick already sampling finishes, but nothing is sent after Close begins.
// Safe to call more than once and from any goroutine except the loop itself.
func (p *PushChannel) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		wasOpen := p.state == models.ChannelOpen
		started := p.started
		cancel := p.cancel
		p.state = models.ChannelClosed
		p.mu.Unlock()

		if wasOpen {
			p.discard()
		}
		if cancel != nil {
			cancel()
		}
		if started {
			<-p.done
		} else {
			close(p.done)
		}

		if wasOpen {
			if p.gauge != nil {
				p.gauge.Dec()
			}
			log.Printf("Push channel %s closed in group %s", p.id, p.spec.Group)
		}
	})
}

func (p *PushChannel) discard() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.groups.Discard(ctx, p.spec.Group, p); err != nil {
		log.Printf("Failed to remove channel %s from group %s: %v", p.id, p.spec.Group, err)
	}
}

// Deliver lets the group registry push a group-wide message to this channel.
func (p *PushChannel) Deliver(message []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != models.ChannelOpen {
		return ErrChannelClosed
	}
	return p.sender.Send(message)
}

func (p *PushChannel) run(ctx context.Context) {
	defer close(p.done)

	for {
		if err := p.tick(ctx); err != nil {
			if ctx.Err() == nil {
				log.Printf("Push channel %s stopping after failed send: %v", p.id, err)
			}
			return
		}

		if ctx.Err() != nil {
			return
		}
		timer := time.NewTimer(p.spec.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// tick samples once and sends either the update or an error message. Sampling
// failures are reported to the client and do not stop the loop; send failures do.
func (p *PushChannel) tick(ctx context.Context) error {
	data, err := p.spec.Sample(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	message := models.PushMessage{Type: p.spec.UpdateType, Data: data}
	if err != nil {
		message = models.PushMessage{
			Type:    models.MessageError,
			Message: fmt.Sprintf("Error getting %s: %v", p.spec.Subject, err),
		}
	}

	return p.emit(ctx, message)
}

func (p *PushChannel) emit(ctx context.Context, message models.PushMessage) error {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		// An unencodable sample is a sampling failure, not a transport one.
		messageBytes, _ = json.Marshal(models.PushMessage{
			Type:    models.MessageError,
			Message: fmt.Sprintf("Error getting %s: %v", p.spec.Subject, err),
		})
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != models.ChannelOpen || ctx.Err() != nil {
		return ErrChannelClosed
	}
	return p.sender.Send(messageBytes)
}
