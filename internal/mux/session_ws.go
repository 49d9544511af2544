package mux

import (
	"encoding/json"
	"net/http"
	"time"

	"cardtable-server/pkg/playable"
	"cardtable-server/pkg/room"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// websocket timing
const (
	writeWait  = 10 * time.Second
	pongWait   = time.Minute
	pingPeriod = pongWait * 9 / 10

	closeFrameWait = time.Second
)

// upgrader accepts any origin
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// getSessionUUIDWS streams the session to a websocket client until either side hangs up
func (m *Mux) getSessionUUIDWS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealer := r.Context().Value(ctxDealerKey).(*room.Dealer)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})

		client := room.NewClient(conn, dealer, remoteAddr(r))
		m.pitBoss.ClientConnected(client)

		readDone := make(chan bool)
		go writePump(client, readDone)

		readPump(client)
		close(readDone)
		m.pitBoss.ClientDisconnected(client)
		_ = conn.Close()
	}
}

// write sends a single frame with the write deadline applied
func write(client *room.Client, messageType int, data []byte) error {
	_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return client.Conn.WriteMessage(messageType, data)
}

// writePump owns every write to the connection
func writePump(client *room.Client, readDone <-chan bool) {
	log := logrus.WithField("client", client.String())

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.Conn.Close()
	}()

	for {
		select {
		case msg := <-client.SendChan():
			data, err := json.Marshal(msg)
			if err != nil {
				log.WithError(err).Error("could not encode message")
				continue
			}

			log.WithField("message", string(data)).Trace("sending message to client")
			if err := write(client, websocket.TextMessage, data); err != nil {
				log.WithError(err).Error("could not write message")
				return
			}
		case <-ticker.C:
			if err := write(client, websocket.PingMessage, nil); err != nil {
				return
			}
		case reason := <-client.Close:
			_ = write(client, websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))

			// give the client a moment to answer with its own close frame
			select {
			case <-readDone:
			case <-time.After(closeFrameWait):
			}

			return
		case <-readDone:
			return
		}
	}
}

// readPump hands every payload to the dealer until the connection fails
func readPump(client *room.Client) {
	for {
		var msg playable.PayloadIn
		if err := client.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).WithField("client", client.String()).Error("could not read message")
			}

			client.CloseError = err
			return
		}

		client.ReceivedMessage(&msg)
	}
}
