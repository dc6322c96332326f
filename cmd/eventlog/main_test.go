package main

import (
	"encoding/json"
	"testing"

	"campus-connect/internal/events"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	value, err := json.Marshal(events.New(events.RequestCreated, 1, 7, map[string]interface{}{"toUserId": 2}))
	require.NoError(t, err)

	event, err := decodeEvent(kafka.Message{Value: value})
	require.NoError(t, err)
	assert.Equal(t, events.RequestCreated, event.Type)
	assert.EqualValues(t, 1, event.ActorID)
	assert.EqualValues(t, 7, event.SubjectID)
	assert.EqualValues(t, 2, event.Payload["toUserId"])

	_, err = decodeEvent(kafka.Message{Value: []byte("not json")})
	assert.Error(t, err)

	_, err = decodeEvent(kafka.Message{Value: []byte(`{"actorId":1}`)})
	assert.Error(t, err)
}
