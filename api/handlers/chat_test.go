package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/whosonpole/whos-on-pole-api/api"
	"github.com/whosonpole/whos-on-pole-api/api/handlers"
	"github.com/whosonpole/whos-on-pole-api/databases/mocks"
	"github.com/whosonpole/whos-on-pole-api/models"
)

func TestChat_HubPersistsAndBroadcastsMessages(t *testing.T) {
	mdb := &mocks.ChatMessageDatabase{}
	mdb.On("InsertOne", mock.Anything, mock.MatchedBy(func(msg models.ChatMessage) bool {
		return msg.UserID == "user-1" && msg.Body == "box box box"
	})).Return(&models.ChatMessage{}, nil)

	hub := handlers.NewHub(mdb)
	go hub.Run()

	udb := &mocks.UserDatabase{}
	chat := handlers.Chat{Hub: hub, UDB: udb}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(api.WithUserID(r.Context(), "user-1"))
		chat.ServeWsHandler(w, r)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	err = conn.WriteJSON(map[string]string{"body": "box box box"})
	assert.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	assert.NoError(t, err)

	var got models.ChatMessage
	assert.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "box box box", got.Body)
	assert.False(t, got.ID.IsZero())

	mdb.AssertExpectations(t)
}

func TestChat_HubDropsEmptyMessages(t *testing.T) {
	mdb := &mocks.ChatMessageDatabase{}

	hub := handlers.NewHub(mdb)
	go hub.Run()

	chat := handlers.Chat{Hub: hub, UDB: &mocks.UserDatabase{}}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(api.WithUserID(r.Context(), "user-1"))
		chat.ServeWsHandler(w, r)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	assert.NoError(t, conn.WriteJSON(map[string]string{"body": ""}))

	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err) // nothing was broadcast

	mdb.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}
