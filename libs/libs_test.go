package libs

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quickbite/models"
	"quickbite/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["photo"][0]
}

func TestLocalUploader(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	uploader := NewLocalUploader(dir, 1024)

	url, err := uploader.Upload(ctx, fileHeader(t, "my burger.jpg", []byte("jpeg-bytes")), "reviews")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/reviews/"))
	assert.True(t, strings.HasSuffix(url, "_my_burger.jpg"))

	stored := filepath.Join(dir, "reviews", filepath.Base(url))
	raw, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(raw))

	require.NoError(t, uploader.Delete(ctx, url))
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))

	_, err = uploader.Upload(ctx, fileHeader(t, "notes.txt", []byte("x")), "reviews")
	assert.ErrorIs(t, err, utils.ErrInvalidImageType)

	_, err = uploader.Upload(ctx, fileHeader(t, "big.png", bytes.Repeat([]byte("x"), 2048)), "reviews")
	assert.ErrorIs(t, err, utils.ErrFileTooLarge)
}

func TestRedisPublisher(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	sub := client.Subscribe(ctx, OrderEventsChannel)
	t.Cleanup(func() { sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	publisher := NewRedisPublisher(client, "")
	require.NoError(t, publisher.Publish(ctx, models.OrderEvent{OrderID: "order_1", Status: models.StatusConfirmed}))

	select {
	case msg := <-sub.Channel():
		var event models.OrderEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
		assert.Equal(t, "order_1", event.OrderID)
		assert.Equal(t, models.StatusConfirmed, event.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("no order event received")
	}
}

func TestOrderConfirmationBodyEscapesInput(t *testing.T) {
	order := models.Order{
		ID:             "order_1",
		RestaurantName: "Burger <Palace>",
		Items: []models.OrderItem{{
			Name: "<script>", Quantity: 2, TotalPrice: decimal.RequireFromString("23"),
		}},
		Discount:  decimal.RequireFromString("4.6"),
		PromoCode: "FIRST20",
		Total:     decimal.RequireFromString("22.89"),
	}

	body := orderConfirmationBody(order)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "$23.00")
	assert.Contains(t, body, "-$4.60")
}
