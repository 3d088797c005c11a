package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), "matches.generated", map[string]int{"count": 3}))
}

func TestNewAMQPPublisher_InvalidURL(t *testing.T) {
	_, err := NewAMQPPublisher("not-a-broker-url", "scholarmatch.events")
	assert.Error(t, err)
}
