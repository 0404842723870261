package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/internal/models"
)

func TestNewRoomEventRejectsUnknownType(t *testing.T) {
	_, err := newRoomEvent(uuid.New().String(), "SOMETHING_ELSE", uuid.New().String(), nil)
	require.Error(t, err)

	ev, err := newRoomEvent(uuid.New().String(), "BID", uuid.New().String(), json.RawMessage(`{"amount":5}`))
	require.NoError(t, err)
	require.Equal(t, models.EventBid, ev.Type)
}

func dialDraft(t *testing.T, srv *httptest.Server, draftID uuid.UUID) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/draft?draft_id=" + draftID.String()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestBroadcastReachesRoomClients(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig())
	handler := NewWebSocketHandler(cm)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cm.Start(ctx)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	draftID := uuid.New()
	otherDraft := uuid.New()

	conn := dialDraft(t, srv, draftID)
	defer conn.Close()
	bystander := dialDraft(t, srv, otherDraft)
	defer bystander.Close()

	require.Eventually(t, func() bool {
		return cm.Stats()["total_connections"].(int) == 2
	}, 2*time.Second, 10*time.Millisecond)

	ev, err := newRoomEvent(uuid.New().String(), "BID", draftID.String(), json.RawMessage(`{"amount":12}`))
	require.NoError(t, err)
	cm.BroadcastToDraft(draftID, ev)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got RoomEvent
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, models.EventBid, got.Type)
	require.Equal(t, draftID.String(), got.DraftID)

	// The other draft's client must not see the event.
	bystander.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = bystander.ReadMessage()
	require.Error(t, err)
}

func TestDraftConnectionRequiresDraftID(t *testing.T) {
	cm := NewConnectionManager(DefaultConnectionConfig())
	handler := NewWebSocketHandler(cm)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ws/draft")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/ws/draft?draft_id=not-a-uuid")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
