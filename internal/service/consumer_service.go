package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-courselab-be/internal/dto"
	"ai-courselab-be/internal/repository/specification"
	"ai-courselab-be/internal/repository/unitofwork"
	"ai-courselab-be/pkg/scribo"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the page generation queue. One message is one
// module; the generated lesson text lands in the module row so the next
// draft seed carries it.
type consumerService struct {
	pubSub        *gochannel.GoChannel
	topicName     string
	uowFactory    unitofwork.RepositoryFactory
	generator     scribo.OutlineGenerator
	scriboTimeout time.Duration
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	generator scribo.OutlineGenerator,
	scriboTimeout time.Duration,
) IConsumerService {
	return &consumerService{
		pubSub:        pubSub,
		topicName:     topicName,
		uowFactory:    uowFactory,
		generator:     generator,
		scriboTimeout: scriboTimeout,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishGeneratePageMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal page generation message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Generating page content for ModuleId: %s", payload.ModuleId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	module, err := uow.ModuleRepository().FindOne(ctx, specification.ByID{ID: payload.ModuleId})
	if err != nil {
		log.Printf("[ERROR] Failed to get module %s: %v", payload.ModuleId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if module == nil {
		log.Printf("[WARN] Module not found, skipping: %s", payload.ModuleId)
		msg.Ack() // Module deleted since enqueue? Ack.
		return
	}
	if module.Content != "" {
		log.Printf("[INFO] Module %s already has content, skipping", module.Id)
		msg.Ack()
		return
	}

	course, err := uow.CourseRepository().FindOne(ctx, specification.ByID{ID: payload.CourseId})
	if err != nil {
		log.Printf("[ERROR] Failed to get course %s: %v", payload.CourseId, err)
		msg.Nack()
		return
	}
	courseTitle := ""
	if course != nil {
		courseTitle = course.Title
	}

	genCtx, cancel := context.WithTimeout(ctx, cs.scriboTimeout)
	defer cancel()
	content, err := cs.generator.GeneratePage(genCtx, scribo.PageRequest{
		CourseTitle: courseTitle,
		ModuleName:  module.Name,
		Duration:    module.Duration,
		Subtopics:   module.Subtopics,
	})
	if err != nil {
		log.Printf("[ERROR] Failed to generate page for module %s: %v", module.Id, err)
		msg.Nack()
		return
	}

	module.Content = content
	if err := uow.ModuleRepository().Update(ctx, module); err != nil {
		log.Printf("[ERROR] Failed to store page content for module %s: %v", module.Id, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Page content stored for ModuleId: %s (%d bytes)", module.Id, len(content))
	msg.Ack()
}
