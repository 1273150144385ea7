package connectionhub

import (
	"context"
	"time"

	wsmodels "mock-interview-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

const sendBufferSize = 16

type clientSession struct {
	conn *websocket.Conn

	// исходящие сообщения, буферизованы
	sendCh chan wsmodels.ServerMessage
	ctx    context.Context
	stop   func()
}

func newSession(conn *websocket.Conn) clientSession {
	ctx, cancelFn := context.WithCancel(context.Background())
	sess := clientSession{
		stop:   cancelFn,
		ctx:    ctx,
		conn:   conn,
		sendCh: make(chan wsmodels.ServerMessage, sendBufferSize),
	}
	go sess.startSend()
	return sess
}

func (s clientSession) closed() bool {
	return s.ctx.Err() != nil
}

// enqueue не блокирует: false если сессия закрыта или буфер заполнен
func (s clientSession) enqueue(msg wsmodels.ServerMessage) bool {
	if s.closed() {
		return false
	}
	select {
	case s.sendCh <- msg:
		return true
	default:
		return false
	}
}

func (s clientSession) startSend() {
	for {
		select {
		case <-s.ctx.Done():
			s.close()
			return
		case msg := <-s.sendCh:
			if err := s.send(msg); err != nil {
				log.WithError(err).Error("ошибка отправки сообщения")
			}
		}
	}
}

func (s clientSession) send(msg wsmodels.ServerMessage) error {
	if s.conn == nil || s.conn.Conn == nil {
		return nil
	}
	if err := s.conn.WriteJSON(msg); err != nil {
		return err
	}
	log.
		WithField("user_id", msg.ToUserID).
		WithField("session_id", msg.SessionID).
		Infof("отправлено событие: %s", msg.Code)
	return nil
}

func (s clientSession) close() {
	if s.conn == nil || s.conn.Conn == nil {
		return
	}
	err := s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	if err != nil {
		log.WithError(err).Debug("ошибка закрытия websocket соединения")
	}
}
