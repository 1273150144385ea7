package connectionhub

import (
	"sync"

	wsmodels "mock-interview-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	AddClient(userID string, conn *websocket.Conn)
	DeleteClient(userID string)
	SendMessage(msg wsmodels.ServerMessage)
	SendClose(userID string)
	IsConnected(userID string) bool
}

var Instance Provider

// максимальное число событий, ожидающих подключения пользователя
const pendingLimit = 50

func Init() {
	Instance = NewHub()
}

func NewHub() Provider {
	return &impl{
		clients: map[string]clientSession{},
		pending: map[string][]wsmodels.ServerMessage{},
	}
}

type impl struct {
	mu      sync.Mutex
	clients map[string]clientSession            //map[userID]
	pending map[string][]wsmodels.ServerMessage //map[userID]
}

func (i *impl) DeleteClient(userID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess, ok := i.clients[userID]
	if !ok {
		return
	}
	delete(i.clients, userID)
	sess.stop()
}

func (i *impl) AddClient(userID string, conn *websocket.Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	oldSess, ok := i.clients[userID]
	if ok {
		oldSess.stop()
	}
	sess := newSession(conn)
	i.clients[userID] = sess
	i.sendDelayedMessages(userID, sess)
}

// SendMessage отправляет событие пользователю, если он не подключен - событие откладывается до подключения.
// Событие для подключенного клиента с заполненным буфером отбрасывается.
func (i *impl) SendMessage(msg wsmodels.ServerMessage) {
	i.mu.Lock()
	defer i.mu.Unlock()
	userID := msg.ToUserID
	sess, ok := i.clients[userID]
	if ok {
		if sess.enqueue(msg) {
			return
		}
		if !sess.closed() {
			log.
				WithField("user_id", userID).
				WithField("session_id", msg.SessionID).
				Warnf("буфер отправки заполнен, событие %s отброшено", msg.Code)
			return
		}
	}
	list := append(i.pending[userID], msg)
	if len(list) > pendingLimit {
		list = list[len(list)-pendingLimit:]
	}
	i.pending[userID] = list
}

func (i *impl) SendClose(userID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess, ok := i.clients[userID]
	if ok {
		sess.stop()
	}
}

func (i *impl) IsConnected(userID string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess, ok := i.clients[userID]
	if !ok || sess.conn == nil || sess.conn.Conn == nil {
		return false
	}
	return true
}

func (i *impl) sendDelayedMessages(userID string, sess clientSession) {
	list := i.pending[userID]
	delete(i.pending, userID)
	for idx, msg := range list {
		if !sess.enqueue(msg) {
			i.pending[userID] = list[idx:]
			log.WithField("user_id", userID).Warnf("отложено событий: %d", len(list)-idx)
			return
		}
	}
}
