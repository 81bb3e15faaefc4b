// Package notification publishes domain events to RabbitMQ.
package notification

import (
	"context"
	"log"

	"github.com/xiebiao/bookshelf/internal/domain/event"
	"github.com/xiebiao/bookshelf/pkg/mq"
)

// Routing keys on the topic exchange.
const (
	RoutingKeyReviewCreated = "review.created"
	RoutingKeyBookFavorited = "book.favorited"
)

// AMQPNotifier implements event.Notifier over a RabbitMQ publisher.
// Publishing happens in a goroutine so the request path never waits on the
// broker; failures are logged and dropped.
type AMQPNotifier struct {
	publisher *mq.Publisher
}

// NewAMQPNotifier creates the notifier.
func NewAMQPNotifier(publisher *mq.Publisher) *AMQPNotifier {
	return &AMQPNotifier{publisher: publisher}
}

var _ event.Notifier = (*AMQPNotifier)(nil)

func (n *AMQPNotifier) NotifyReviewed(_ context.Context, ev event.ReviewedEvent) {
	go func() {
		if err := n.publisher.Publish(RoutingKeyReviewCreated, ev); err != nil {
			log.Printf("notification: publish %s failed: %v", RoutingKeyReviewCreated, err)
		}
	}()
}

func (n *AMQPNotifier) NotifyFavorited(_ context.Context, ev event.FavoritedEvent) {
	go func() {
		if err := n.publisher.Publish(RoutingKeyBookFavorited, ev); err != nil {
			log.Printf("notification: publish %s failed: %v", RoutingKeyBookFavorited, err)
		}
	}()
}
