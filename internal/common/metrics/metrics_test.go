package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestChatMessagesCounter(t *testing.T) {
	c := ChatMessages.WithLabelValues("payroll", "answered")
	before := testutil.ToFloat64(c)
	c.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestCollectorsRegistered(t *testing.T) {
	ChatMessageDuration.WithLabelValues("unknown").Observe(0.01)
	assert.Equal(t, 1, testutil.CollectAndCount(ChatMessageDuration, "chat_message_duration_seconds"))
}
