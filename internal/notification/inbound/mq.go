package inbound

import (
	"context"
	"log/slog"

	"github.com/samber/lo"

	"github.com/firmanbudi/otpgate/internal/pkg/config"
	"github.com/firmanbudi/otpgate/internal/pkg/goroutine"
	"github.com/firmanbudi/otpgate/internal/pkg/instrument"
	"github.com/firmanbudi/otpgate/internal/pkg/messaging"
	"github.com/firmanbudi/otpgate/internal/pkg/uid"
	"github.com/firmanbudi/otpgate/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enabledConsumerNames := cfg.GetArray("modules.notification.consumer_names")

	var consumers = []struct {
		name    string
		topic   string
		handler messaging.Handler
	}{
		{
			name:    event.ChannelNotificationEmail,
			topic:   event.TopicLoginChallengeIssued,
			handler: mqHandler.LoginChallengeNotification,
		},
	}

	for _, consumer := range consumers {
		if len(enabledConsumerNames) > 0 && lo.Contains(enabledConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx,
					consumer.topic,
					consumer.handler,
					messaging.WithChannel(consumer.name),
					messaging.WithQueueGroup(consumer.name),
					messaging.WithGroup(consumer.name),
					messaging.WithAutoAck(true),
					messaging.WithConcurrency(10),
					messaging.WithMaxInFlight(10),
				)
			})
		}
	}
}
