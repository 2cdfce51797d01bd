package service

import (
	"context"
	"encoding/json"
	"strconv"

	"ai-tutor-be/internal/dto"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/embedding"
	"ai-tutor-be/pkg/utils"
	"ai-tutor-be/pkg/vectorindex"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

const (
	// ChunkSize: 1500 chars (approx 375 tokens), Overlap: 200 chars.
	ingestChunkSize    = 1500
	ingestChunkOverlap = 200
)

// IIngestService consumes corpus sections from the ingest topic, chunks and
// embeds them, and upserts the chunks into the vector index.
type IIngestService interface {
	Consume(ctx context.Context) error
	IngestSection(ctx context.Context, payload dto.PublishIngestSectionMessage) error
}

type ingestService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	embeddingProvider embedding.Provider
	index             vectorindex.Index
	logger            logger.ILogger
}

func NewIngestService(
	pubSub *gochannel.GoChannel,
	topicName string,
	embeddingProvider embedding.Provider,
	index vectorindex.Index,
	log logger.ILogger,
) IIngestService {
	return &ingestService{
		pubSub:            pubSub,
		topicName:         topicName,
		embeddingProvider: embeddingProvider,
		index:             index,
		logger:            log,
	}
}

func (is *ingestService) Consume(ctx context.Context) error {
	messages, err := is.pubSub.Subscribe(ctx, is.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			is.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (is *ingestService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIngestSectionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		is.logger.Error("ingest", "failed to unmarshal ingest message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if err := is.IngestSection(ctx, payload); err != nil {
		is.logger.Error("ingest", "failed to ingest section", map[string]interface{}{
			"section": payload.Section,
			"error":   err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}

func (is *ingestService) IngestSection(ctx context.Context, payload dto.PublishIngestSectionMessage) error {
	chunks := utils.SplitText(payload.Content, ingestChunkSize, ingestChunkOverlap)

	is.logger.Info("ingest", "indexing corpus section", map[string]interface{}{
		"section": payload.Section,
		"chunks":  len(chunks),
	})

	for i, chunk := range chunks {
		vector, err := is.embeddingProvider.Embed(ctx, chunk)
		if err != nil {
			return err
		}

		metadata := map[string]string{
			"chunk_index": strconv.Itoa(i),
		}
		if payload.Week != "" {
			metadata["week"] = payload.Week
		}
		if payload.Topic != "" {
			metadata["topic"] = payload.Topic
		}

		err = is.index.Upsert(ctx, uuid.New(), vector, vectorindex.Payload{
			Content:  chunk,
			Section:  payload.Section,
			Metadata: metadata,
		})
		if err != nil {
			return err
		}
	}

	return nil
}
