package messaging

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DriverNSQ selects the NSQ backend.
	DriverNSQ = "nsq"
	// DriverNATS selects the NATS backend.
	DriverNATS = "nats"
	// DriverKafka selects the Kafka backend.
	DriverKafka = "kafka"
)

// ErrUnknownDriver indicates an unrecognized driver name.
var ErrUnknownDriver = errors.New("messaging: unknown driver")

// FactoryOptions carries the configuration for every supported backend; only
// the selected driver's section is used.
type FactoryOptions struct {
	// NSQ configures the NSQ driver.
	NSQ NSQConfig
	// NATS configures the NATS driver.
	NATS NATSConfig
	// Kafka configures the Kafka driver.
	Kafka KafkaConfig
}

// NewFromDriver builds the Messaging implementation named by driver.
func NewFromDriver(driver string, opts FactoryOptions) (Messaging, error) {
	switch strings.TrimSpace(driver) {
	case DriverNSQ:
		return NewNSQ(opts.NSQ)
	case DriverNATS:
		return NewNATS(opts.NATS)
	case DriverKafka:
		return NewKafka(opts.Kafka)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
