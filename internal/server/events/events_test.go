package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/ballotkeeper/internal/server/models"
)

type fakeWriter struct {
	msgs     []kafka.Message
	writeErr error
	closeErr error
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return f.closeErr
}

func TestNew(t *testing.T) {
	e := New(models.EventVoterCreated, "7", "admin", "Jane")
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, models.EventVoterCreated, e.Type)
	assert.Equal(t, "7", e.EntityID)
	assert.Equal(t, "admin", e.Actor)
	assert.False(t, e.OccurredAt.IsZero())
	assert.NotEqual(t, e.ID, New(models.EventVoterCreated, "7", "admin", "").ID)
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}

	e := New(models.EventCandidateDeleted, "12", "admin", "")
	require.NoError(t, p.Publish(context.Background(), e))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("12"), w.msgs[0].Key)
	assert.Equal(t, []kafka.Header{{Key: "type", Value: []byte(models.EventCandidateDeleted)}}, w.msgs[0].Headers)

	var got models.Event
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, e.Type, got.Type)
}

func TestKafkaPublisher_Errors(t *testing.T) {
	w := &fakeWriter{writeErr: errors.New("broker down"), closeErr: errors.New("close failed")}
	p := &KafkaPublisher{writer: w}

	err := p.Publish(context.Background(), New(models.EventTokenDeleted, "1", "admin", ""))
	assert.ErrorContains(t, err, "broker down")

	err = p.Close()
	assert.ErrorContains(t, err, "close failed")
	assert.True(t, w.closed)
}

func TestNewKafkaPublisher(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, "election-events")
	kw, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "election-events", kw.Topic)
	assert.Equal(t, kafka.RequireAll, kw.RequiredAcks)
	assert.NoError(t, p.Close())
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), models.Event{}))
	assert.NoError(t, p.Close())
}
