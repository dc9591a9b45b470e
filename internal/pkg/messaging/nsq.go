package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	nsq "github.com/nsqio/go-nsq"
)

var (
	// ErrNSQTopicRequired is returned when the topic is empty.
	ErrNSQTopicRequired = errors.New("messaging: nsq topic is required")
	// ErrNSQChannelRequired is returned when no channel is configured for a consumer.
	ErrNSQChannelRequired = errors.New("messaging: nsq channel is required")
	// ErrNSQHandlerRequired is returned when Consume receives a nil handler.
	ErrNSQHandlerRequired = errors.New("messaging: nsq handler is required")
	// ErrNSQProducerRequired is returned when publishing without a producer address.
	ErrNSQProducerRequired = errors.New("messaging: nsq producer address is required")
	// ErrNSQConsumerAddrsRequired is returned when no nsqd or lookupd addresses exist.
	ErrNSQConsumerAddrsRequired = errors.New("messaging: nsq consumer addresses are required")
)

// NSQConfig configures the NSQ driver.
type NSQConfig struct {
	// ProducerAddr is the nsqd address used for publishing.
	ProducerAddr string
	// ConsumerNSQDAddrs lists nsqd addresses for direct consumer connections.
	ConsumerNSQDAddrs []string
	// ConsumerLookupdAddrs lists lookupd addresses; preferred over direct connections.
	ConsumerLookupdAddrs []string
	// ProducerConfig overrides the default producer settings.
	ProducerConfig *nsq.Config
	// ConsumerConfig overrides the default consumer settings.
	ConsumerConfig *nsq.Config
}

// NSQ implements Messaging on top of go-nsq.
type NSQ struct {
	producer *nsq.Producer

	nsqdAddrs    []string
	lookupdAddrs []string
	consumerCfg  *nsq.Config

	mu        sync.Mutex
	consumers []*nsq.Consumer
	closed    bool
}

// NewNSQ builds the NSQ driver. The producer is optional; a consume-only
// instance needs only consumer addresses.
func NewNSQ(cfg NSQConfig) (*NSQ, error) {
	var producer *nsq.Producer
	if cfg.ProducerAddr != "" {
		pcfg := cfg.ProducerConfig
		if pcfg == nil {
			pcfg = nsq.NewConfig()
		}

		p, err := nsq.NewProducer(cfg.ProducerAddr, pcfg)
		if err != nil {
			return nil, fmt.Errorf("messaging: nsq producer: %w", err)
		}
		p.SetLoggerLevel(nsq.LogLevelError)
		producer = p
	}

	ccfg := cfg.ConsumerConfig
	if ccfg == nil {
		ccfg = nsq.NewConfig()
	}

	return &NSQ{
		producer:     producer,
		nsqdAddrs:    append([]string{}, cfg.ConsumerNSQDAddrs...),
		lookupdAddrs: append([]string{}, cfg.ConsumerLookupdAddrs...),
		consumerCfg:  ccfg,
	}, nil
}

// Close stops all consumers and then the producer.
func (n *NSQ) Close() error {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return nil
	}
	n.closed = true
	consumers := append([]*nsq.Consumer{}, n.consumers...)
	n.mu.Unlock()

	for _, c := range consumers {
		c.Stop()
		<-c.StopChan
	}

	if n.producer != nil {
		n.producer.Stop()
	}
	return nil
}

// Publish sends a message to an NSQ topic. A positive Delay uses deferred
// publishing.
func (n *NSQ) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrNSQTopicRequired
	}
	if n.producer == nil {
		return PublishResult{}, ErrNSQProducerRequired
	}

	var err error
	if msg.Delay > 0 {
		err = n.producer.DeferredPublish(destination, msg.Delay, msg.Body)
	} else {
		err = n.producer.Publish(destination, msg.Body)
	}
	if err != nil {
		return PublishResult{}, fmt.Errorf("messaging: nsq publish: %w", err)
	}

	return PublishResult{Topic: destination, Timestamp: time.Now()}, nil
}

// Consume reads messages from topic on the configured channel until ctx is
// canceled or the consumer stops.
func (n *NSQ) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrNSQTopicRequired
	}
	if handler == nil {
		return ErrNSQHandlerRequired
	}
	if len(n.nsqdAddrs) == 0 && len(n.lookupdAddrs) == 0 {
		return ErrNSQConsumerAddrsRequired
	}

	co := newConsumeOptions(opts...)
	consumer, concurrency, autoAck, err := n.buildConsumer(source, co)
	if err != nil {
		return err
	}

	consumer.AddConcurrentHandlers(n.wrapHandler(ctx, source, handler, autoAck), concurrency)

	if err := n.track(consumer); err != nil {
		stopConsumer(consumer)
		return err
	}

	if err := n.connect(consumer); err != nil {
		stopConsumer(consumer)
		return err
	}

	select {
	case <-ctx.Done():
		stopConsumer(consumer)
		return ctx.Err()
	case <-consumer.StopChan:
		return nil
	}
}

func (n *NSQ) buildConsumer(topic string, opts consumeOptions) (*nsq.Consumer, int, bool, error) {
	if opts.channel == "" {
		return nil, 0, false, ErrNSQChannelRequired
	}

	concurrency := concurrencyOrDefault(opts.concurrency, 1)

	autoAck := opts.autoAck
	if v, ok := opts.params["auto_ack"]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			autoAck = b
		}
	}

	ccfg := *n.consumerCfg
	if opts.maxInFlight > 0 {
		ccfg.MaxInFlight = opts.maxInFlight
	} else if ccfg.MaxInFlight < concurrency {
		ccfg.MaxInFlight = concurrency
	}

	consumer, err := nsq.NewConsumer(topic, opts.channel, &ccfg)
	if err != nil {
		return nil, 0, false, fmt.Errorf("messaging: nsq consumer: %w", err)
	}
	consumer.SetLoggerLevel(nsq.LogLevelError)

	return consumer, concurrency, autoAck, nil
}

func (n *NSQ) track(consumer *nsq.Consumer) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return io.ErrClosedPipe
	}
	n.consumers = append(n.consumers, consumer)
	return nil
}

func (n *NSQ) connect(consumer *nsq.Consumer) error {
	if len(n.lookupdAddrs) > 0 {
		if err := consumer.ConnectToNSQLookupds(n.lookupdAddrs); err != nil {
			return fmt.Errorf("messaging: nsq connect lookupd: %w", err)
		}
		return nil
	}

	if err := consumer.ConnectToNSQDs(n.nsqdAddrs); err != nil {
		return fmt.Errorf("messaging: nsq connect nsqd: %w", err)
	}
	return nil
}

func (n *NSQ) wrapHandler(ctx context.Context, topic string, handler Handler, autoAck bool) nsq.HandlerFunc {
	return func(m *nsq.Message) error {
		m.DisableAutoResponse()

		wrapped := newNSQMessage(topic, m)
		herr := runHandler(ctx, "nsq", func() error {
			return handler(ctx, wrapped)
		})

		if wrapped.hasResponded() || !autoAck {
			return herr
		}

		if herr == nil {
			return wrapped.Ack(ctx)
		}
		return wrapped.Nack(ctx)
	}
}

func stopConsumer(consumer *nsq.Consumer) {
	consumer.Stop()
	<-consumer.StopChan
}
