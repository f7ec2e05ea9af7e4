package kafka_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"beexpress/internal/transport/kafka"
)

func TestToDomain(t *testing.T) {
	t.Parallel()

	raw := `{
		"type": " user.created ",
		"data": {
			"id": " user_1 ",
			"role": "driver",
			"phone_number": " +79990001122 ",
			"created_at": "2026-08-30T12:00:00Z"
		}
	}`
	var dto kafka.EventDTO
	require.NoError(t, json.Unmarshal([]byte(raw), &dto))

	ev := kafka.ToDomain(dto)
	require.Equal(t, "user.created", ev.Type)
	require.Equal(t, "user_1", ev.UserID)
	require.Equal(t, "driver", ev.Role)
	require.Equal(t, "+79990001122", ev.PhoneNumber)
	require.Equal(t, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), ev.CreatedAt)
}

func TestPermanentError(t *testing.T) {
	t.Parallel()

	base := errors.New("bad role")
	err := kafka.Permanent(base)

	var perm kafka.PermanentError
	require.ErrorAs(t, err, &perm)
	require.ErrorIs(t, err, base)
	require.Equal(t, "bad role", err.Error())
}

func TestNewConsumer_DisabledWithoutBrokers(t *testing.T) {
	t.Parallel()

	c, err := kafka.NewConsumer(nil, "group", "topic", nil)
	require.NoError(t, err)
	require.Nil(t, c)

	c, err = kafka.NewConsumer([]string{"localhost:9092"}, "", "topic", nil)
	require.NoError(t, err)
	require.Nil(t, c)

	c, err = kafka.NewConsumer([]string{"localhost:9092"}, "group", "  ", nil)
	require.NoError(t, err)
	require.Nil(t, c)
}
