package services

import (
	"testing"

	"quickbite/models"

	"github.com/stretchr/testify/assert"
)

func TestOrderHubDeliversToSubscribersOfOneOrder(t *testing.T) {
	hub := NewOrderHub()
	first, unsubFirst := hub.Subscribe("order_1")
	other, unsubOther := hub.Subscribe("order_2")
	defer unsubOther()

	hub.Broadcast(models.OrderEvent{OrderID: "order_1", Status: models.StatusConfirmed})

	assert.Equal(t, models.StatusConfirmed, (<-first).Status)
	assert.Empty(t, other)

	unsubFirst()
	unsubFirst()
	_, open := <-first
	assert.False(t, open)
	assert.Zero(t, hub.Subscribers("order_1"))
	assert.Equal(t, 1, hub.Subscribers("order_2"))
}

func TestOrderHubDropsEventsForFullSubscribers(t *testing.T) {
	hub := NewOrderHub()
	ch, unsub := hub.Subscribe("order_1")
	defer unsub()

	for i := 0; i < hubBuffer+3; i++ {
		hub.Broadcast(models.OrderEvent{OrderID: "order_1", Status: models.StatusPreparing})
	}
	assert.Len(t, ch, hubBuffer)
}
