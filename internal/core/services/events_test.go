package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroadcaster_OrderAndUnsubscribe(t *testing.T) {
	var b broadcaster[int]
	var got []string

	first := b.subscribe(func(n int) { got = append(got, "first") })
	b.subscribe(func(n int) { got = append(got, "second") })

	b.publish(1)
	first()
	first()
	b.publish(2)

	assert.Equal(t, []string{"first", "second", "second"}, got)
}

func TestBroadcaster_HandlerMaySubscribe(t *testing.T) {
	var b broadcaster[int]
	calls := 0

	b.subscribe(func(int) {
		calls++
		b.subscribe(func(int) { calls++ })
	})

	b.publish(1)
	assert.Equal(t, 1, calls)
}
