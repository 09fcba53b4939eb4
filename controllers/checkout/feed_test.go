package checkoutControllers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedBroadcastsCreatedSessions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	feed := NewFeed()
	r := gin.New()
	r.GET("/admin/ws/checkouts", feed.Handler)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/admin/ws/checkouts"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return feed.Len() == 1 }, time.Second, 10*time.Millisecond)

	feed.Broadcast(models.CheckoutSession{SessionID: "cs_1", UserID: "u1", AmountTotal: 1999, Currency: "usd"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event struct {
		Type string                 `json:"type"`
		Data models.CheckoutSession `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "checkout.created", event.Type)
	assert.Equal(t, "cs_1", event.Data.SessionID)
	assert.Equal(t, int64(1999), event.Data.AmountTotal)

	conn.Close()
	assert.Eventually(t, func() bool { return feed.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestFeedBroadcastDoesNotWaitForSlowClients(t *testing.T) {
	feed := NewFeed()
	stuck := &feedClient{send: make(chan feedEvent, sendBuffer)}
	feed.clients[stuck] = struct{}{}

	start := time.Now()
	for i := 0; i < sendBuffer+1; i++ {
		feed.Broadcast(models.CheckoutSession{SessionID: "cs_slow"})
	}
	assert.Less(t, time.Since(start), writeWait)
	assert.Zero(t, feed.Len())

	queued := 0
	for range stuck.send {
		queued++
	}
	assert.Equal(t, sendBuffer, queued)
}
