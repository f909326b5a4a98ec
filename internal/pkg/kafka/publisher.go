package kafka

import (
	"Postdeck/internal/api/config"
	"context"
	"fmt"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

const (
	KindTweet     = "tweet"
	KindInstagram = "instagram"
)

// StatusEvent 状态变更事件
type StatusEvent struct {
	Kind string    `json:"kind"`
	ID   uint64    `json:"id"`
	From string    `json:"from"`
	To   string    `json:"to"`
	At   time.Time `json:"at"`
}

// StatusPublisher 发布状态变更事件，发布失败不影响业务结果
type StatusPublisher interface {
	Publish(ctx context.Context, event StatusEvent)
	Close() error
}

// NewStatusPublisher 未配置 brokers 时返回不发送任何消息的实现
func NewStatusPublisher(cfg config.KafkaConfig) (StatusPublisher, error) {
	if len(cfg.Brokers) == 0 {
		log.Info("未配置 Kafka，状态事件不会被发布")
		return NopPublisher{}, nil
	}
	producer, err := sarama.NewAsyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, err
	}
	return NewSaramaPublisher(producer, cfg.StatusTopic), nil
}

// SaramaPublisher 异步发送，请求路径上只做入队，结果由后台协程记录
type SaramaPublisher struct {
	producer sarama.AsyncProducer
	topic    string
	wg       sync.WaitGroup
}

func NewSaramaPublisher(producer sarama.AsyncProducer, topic string) *SaramaPublisher {
	s := &SaramaPublisher{
		producer: producer,
		topic:    topic,
	}
	s.wg.Add(1)
	go s.drain()
	return s
}

func (s *SaramaPublisher) Publish(ctx context.Context, event StatusEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.ErrorContext(ctx, "状态事件序列化失败", "err", err)
		return
	}
	key := fmt.Sprintf("%s:%d", event.Kind, event.ID)
	msg := &sarama.ProducerMessage{
		Topic:    s.topic,
		Key:      sarama.StringEncoder(key),
		Value:    sarama.ByteEncoder(payload),
		Metadata: key,
	}
	// broker 不可用时缓冲会被占满，此时直接丢弃，不拖慢请求
	select {
	case s.producer.Input() <- msg:
	case <-ctx.Done():
		log.WarnContext(ctx, "请求已结束，状态事件未发布", "key", key)
	default:
		log.WarnContext(ctx, "发送缓冲已满，状态事件被丢弃", "key", key)
	}
}

func (s *SaramaPublisher) drain() {
	defer s.wg.Done()
	successes, errs := s.producer.Successes(), s.producer.Errors()
	for successes != nil || errs != nil {
		select {
		case msg, ok := <-successes:
			if !ok {
				successes = nil
				continue
			}
			log.Debug("状态事件已发布", "key", msg.Metadata, "partition", msg.Partition, "offset", msg.Offset)
		case perr, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			var key any
			if perr.Msg != nil {
				key = perr.Msg.Metadata
			}
			log.Error("状态事件发布失败", "key", key, "err", perr.Err)
		}
	}
}

// Close 等待缓冲中的消息发送完毕
func (s *SaramaPublisher) Close() error {
	s.producer.AsyncClose()
	s.wg.Wait()
	return nil
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, StatusEvent) {}

func (NopPublisher) Close() error { return nil }
