package messaging

type consumeOptions struct {
	// concurrency is the number of parallel handler workers.
	concurrency int

	// autoAck lets the wrapper ack or nack based on the handler result.
	autoAck bool

	// group is the Kafka consumer group.
	group string

	// channel is the NSQ channel.
	channel string

	// queueGroup is the NATS queue group.
	queueGroup string

	// maxInFlight caps unacknowledged messages in flight.
	maxInFlight int

	// params carries broker-specific string settings.
	params map[string]string
}

// ConsumeOption tunes consumer behavior.
type ConsumeOption func(*consumeOptions)

func newConsumeOptions(opts ...ConsumeOption) consumeOptions {
	var co consumeOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&co)
		}
	}
	return co
}

// WithConcurrency sets how many workers handle messages in parallel.
func WithConcurrency(n int) ConsumeOption {
	return func(o *consumeOptions) { o.concurrency = n }
}

// WithAutoAck makes the wrapper ack on nil handler results and nack on errors.
func WithAutoAck(autoAck bool) ConsumeOption {
	return func(o *consumeOptions) { o.autoAck = autoAck }
}

// WithGroup sets the Kafka consumer group.
func WithGroup(group string) ConsumeOption {
	return func(o *consumeOptions) { o.group = group }
}

// WithChannel sets the NSQ channel.
func WithChannel(channel string) ConsumeOption {
	return func(o *consumeOptions) { o.channel = channel }
}

// WithQueueGroup sets the NATS queue group.
func WithQueueGroup(queueGroup string) ConsumeOption {
	return func(o *consumeOptions) { o.queueGroup = queueGroup }
}

// WithMaxInFlight caps unacknowledged messages in flight.
func WithMaxInFlight(n int) ConsumeOption {
	return func(o *consumeOptions) { o.maxInFlight = n }
}

// WithParam sets one broker-specific parameter.
func WithParam(key, value string) ConsumeOption {
	return func(o *consumeOptions) {
		if key == "" {
			return
		}
		if o.params == nil {
			o.params = make(map[string]string, 1)
		}
		o.params[key] = value
	}
}
