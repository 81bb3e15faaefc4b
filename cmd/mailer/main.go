// The mailer worker consumes notification events and delivers email.
// Delivery is simulated with log output; swapping in an SMTP client only
// touches the handler.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/xiebiao/bookshelf/internal/domain/event"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/notification"
	"github.com/xiebiao/bookshelf/pkg/mq"
)

const queueName = "bookshelf.mailer"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if !cfg.MQ.Enabled {
		log.Fatal("mq is disabled in config; the mailer has nothing to consume")
	}

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, queueName, []string{
		notification.RoutingKeyReviewCreated,
		notification.RoutingKeyBookFavorited,
	})
	if err != nil {
		log.Fatalf("failed to init consumer: %v", err)
	}
	defer consumer.Close()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("shutting down")
		consumer.Close()
	}()

	log.Printf("mailer consuming from %s", queueName)
	if err := consumer.Consume(handleEvent); err != nil {
		log.Fatalf("consume failed: %v", err)
	}
}

func handleEvent(routingKey string, body []byte) error {
	switch routingKey {
	case notification.RoutingKeyReviewCreated:
		var ev event.ReviewedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("bad review event payload: %w", err)
		}
		log.Printf("mail to owner %d: book %d received a %d-star review (avg now %.2f)",
			ev.OwnerID, ev.BookID, ev.Rating, ev.AvgAfter)
		return nil

	case notification.RoutingKeyBookFavorited:
		var ev event.FavoritedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("bad favorite event payload: %w", err)
		}
		action := "favorited"
		if !ev.Favorited {
			action = "unfavorited"
		}
		log.Printf("mail to owner %d: book %d %s by user %d",
			ev.OwnerID, ev.BookID, action, ev.UserID)
		return nil

	default:
		log.Printf("ignoring unknown routing key %s", routingKey)
		return nil
	}
}
