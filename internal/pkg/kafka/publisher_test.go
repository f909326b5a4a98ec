package kafka

import (
	"Postdeck/internal/api/config"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockProducer(t *testing.T) *mocks.AsyncProducer {
	cfg := mocks.NewTestConfig()
	cfg.Producer.Return.Successes = true
	return mocks.NewAsyncProducer(t, cfg)
}

func TestSaramaPublisherSendsEvent(t *testing.T) {
	producer := newMockProducer(t)
	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	producer.ExpectInputWithCheckerFunctionAndSucceed(func(val []byte) error {
		var ev StatusEvent
		if err := json.Unmarshal(val, &ev); err != nil {
			return err
		}
		if ev.Kind != KindTweet || ev.ID != 7 || ev.From != "approved" || ev.To != "scheduled" || !ev.At.Equal(at) {
			return errors.New("unexpected event")
		}
		return nil
	})

	p := NewSaramaPublisher(producer, "postdeck.status")
	p.Publish(context.Background(), StatusEvent{Kind: KindTweet, ID: 7, From: "approved", To: "scheduled", At: at})
	require.NoError(t, p.Close())
}

func TestSaramaPublisherSwallowsFailure(t *testing.T) {
	producer := newMockProducer(t)
	producer.ExpectInputAndFail(sarama.ErrOutOfBrokers)

	p := NewSaramaPublisher(producer, "postdeck.status")
	assert.NotPanics(t, func() {
		p.Publish(context.Background(), StatusEvent{Kind: KindInstagram, ID: 1})
	})
	require.NoError(t, p.Close())
}

// stalledProducer 模拟 broker 不可用：输入无人消费
type stalledProducer struct {
	sarama.AsyncProducer
	input     chan *sarama.ProducerMessage
	successes chan *sarama.ProducerMessage
	errs      chan *sarama.ProducerError
}

func newStalledProducer() *stalledProducer {
	return &stalledProducer{
		input:     make(chan *sarama.ProducerMessage),
		successes: make(chan *sarama.ProducerMessage),
		errs:      make(chan *sarama.ProducerError),
	}
}

func (p *stalledProducer) Input() chan<- *sarama.ProducerMessage     { return p.input }
func (p *stalledProducer) Successes() <-chan *sarama.ProducerMessage { return p.successes }
func (p *stalledProducer) Errors() <-chan *sarama.ProducerError      { return p.errs }
func (p *stalledProducer) AsyncClose() {
	close(p.successes)
	close(p.errs)
}

func TestSaramaPublisherDoesNotBlockWhenBrokerStalls(t *testing.T) {
	p := NewSaramaPublisher(newStalledProducer(), "postdeck.status")

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			p.Publish(context.Background(), StatusEvent{Kind: KindTweet, ID: uint64(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a stalled producer")
	}
	require.NoError(t, p.Close())
}

func TestNewStatusPublisherWithoutBrokers(t *testing.T) {
	p, err := NewStatusPublisher(config.KafkaConfig{})
	require.NoError(t, err)
	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.Close())
}

func TestNewSaramaConfig(t *testing.T) {
	c := newSaramaConfig(config.KafkaConfig{Sasl: config.SaslConfig{Enable: true, Username: "u", Password: "p"}})
	assert.True(t, c.Producer.Return.Successes)
	assert.True(t, c.Producer.Idempotent)
	assert.Equal(t, 3*time.Second, c.Net.DialTimeout)
	assert.Equal(t, sarama.WaitForAll, c.Producer.RequiredAcks)
	assert.True(t, c.Net.SASL.Enable)
	assert.Equal(t, "u", c.Net.SASL.User)
	require.NoError(t, c.Validate())
}
