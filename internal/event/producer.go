package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shopnest/marketplace/internal/domain"
	pkgkafka "github.com/shopnest/marketplace/pkg/kafka"
	"github.com/shopnest/marketplace/pkg/logger"
)

// Kafka topic constants for product domain events.
const (
	TopicProductCreated = "marketplace.product.created"
	TopicProductUpdated = "marketplace.product.updated"
	TopicProductDeleted = "marketplace.product.deleted"
	TopicReviewCreated  = "marketplace.review.created"
)

// Aggregate type constants.
const (
	AggregateTypeProduct = "product"
	AggregateTypeReview  = "review"
)

// Source identifier for events originating from the marketplace service.
const SourceMarketplace = "marketplace"

// ProductCreatedData is the payload for a product.created event.
type ProductCreatedData struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Price      int64  `json:"price"`
	Image      string `json:"image"`
	ShopID     int64  `json:"shopId"`
	CategoryID int64  `json:"categoryId"`
}

// ProductUpdatedData is the payload for a product.updated event.
type ProductUpdatedData struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Price      int64  `json:"price"`
	Image      string `json:"image"`
	ShopID     int64  `json:"shopId"`
	CategoryID int64  `json:"categoryId"`
}

// ProductDeletedData is the payload for a product.deleted event.
type ProductDeletedData struct {
	ID     int64 `json:"id"`
	ShopID int64 `json:"shopId"`
}

// ReviewCreatedData is the payload for a review.created event.
type ReviewCreatedData struct {
	ID         int64 `json:"id"`
	CustomerID int64 `json:"customerId"`
	ProductID  int64 `json:"productId"`
	Rating     int   `json:"rating"`
}

// Producer publishes marketplace domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	data := ProductCreatedData{
		ID:         product.ID,
		Title:      product.Title,
		Price:      product.Price,
		Image:      product.Image,
		ShopID:     product.ShopID,
		CategoryID: product.CategoryID,
	}

	return p.publish(ctx, TopicProductCreated, product.ID, AggregateTypeProduct, data)
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, product *domain.Product) error {
	data := ProductUpdatedData{
		ID:         product.ID,
		Title:      product.Title,
		Price:      product.Price,
		Image:      product.Image,
		ShopID:     product.ShopID,
		CategoryID: product.CategoryID,
	}

	return p.publish(ctx, TopicProductUpdated, product.ID, AggregateTypeProduct, data)
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, id, shopID int64) error {
	data := ProductDeletedData{ID: id, ShopID: shopID}

	return p.publish(ctx, TopicProductDeleted, id, AggregateTypeProduct, data)
}

// PublishReviewCreated publishes a review.created event.
func (p *Producer) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	data := ReviewCreatedData{
		ID:         review.ID,
		CustomerID: review.CustomerID,
		ProductID:  review.ProductID,
		Rating:     review.Rating,
	}

	return p.publish(ctx, TopicReviewCreated, review.ID, AggregateTypeReview, data)
}

func (p *Producer) publish(ctx context.Context, topic string, aggregateID int64, aggregateType string, data any) error {
	evt, err := pkgkafka.NewEvent(topic, strconv.FormatInt(aggregateID, 10), aggregateType, SourceMarketplace, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		evt.WithCorrelationID(cid)
	}

	if err := p.kafka.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published domain event",
		slog.String("topic", topic),
		slog.Int64("aggregate_id", aggregateID),
	)

	return nil
}
