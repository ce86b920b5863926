package controllers

import (
	"net/http"
	"time"

	"quickbite/middleware"
	"quickbite/models"
	"quickbite/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	trackWriteWait  = 5 * time.Second
	trackPingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type TrackingController struct {
	orders *services.OrderService
}

func NewTrackingController(orders *services.OrderService) *TrackingController {
	return &TrackingController{orders: orders}
}

// TrackOrder godoc
// @Summary Track order status
// @Description Upgrades to a websocket that streams {orderId, status, updatedAt} until the order is delivered or cancelled
// @Tags Orders
// @Param id path string true "Order ID"
// @Success 101
// @Failure 404 {object} models.ErrorResponse
// @Router /orders/{id}/track [get]
func (ctrl *TrackingController) TrackOrder(c *gin.Context) {
	id := c.Param("id")
	owner := middleware.Owner(c)

	// subscribe before reading the order so no transition slips between
	events, unsubscribe := ctrl.orders.Hub().Subscribe(id)
	defer unsubscribe()

	order, err := ctrl.orders.GetOrderByID(c.Request.Context(), owner, id)
	if err != nil {
		respondError(c, "Order not found", err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("order_id", id).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()
	log.Debug().Str("order_id", id).Int("watchers", ctrl.orders.Hub().Subscribers(id)).Msg("order tracking started")

	current := models.OrderEvent{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Status:     order.Status,
		UpdatedAt:  order.UpdatedAt,
	}
	if !writeEvent(conn, current) || current.Status.Terminal() {
		closeTracking(conn)
		return
	}

	// the client never sends anything useful; reading detects it leaving
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(trackPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-gone:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(trackWriteWait)); err != nil {
				return
			}
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !writeEvent(conn, ev) {
				return
			}
			if ev.Status.Terminal() {
				closeTracking(conn)
				return
			}
		}
	}
}

func writeEvent(conn *websocket.Conn, ev models.OrderEvent) bool {
	conn.SetWriteDeadline(time.Now().Add(trackWriteWait))
	payload := gin.H{"orderId": ev.OrderID, "status": ev.Status, "updatedAt": ev.UpdatedAt}
	if err := conn.WriteJSON(payload); err != nil {
		log.Debug().Err(err).Str("order_id", ev.OrderID).Msg("tracking client went away")
		return false
	}
	return true
}

func closeTracking(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "order finished")
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(trackWriteWait))
}
