package internal

import (
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// Hub WebSocket 連接中心
//
// 職責：
//   - 升級 HTTP 連線為 WebSocket
//   - 分配連線 ID（行程生命週期內單調遞增，永不重用）
//   - 每條連線啟動一個會談 goroutine
//   - 追蹤存活會談（統計與優雅關閉用）
//
// 會談之間沒有任何直接互動，唯一的共享資源是 Registry。
// 單一連線的傳輸層錯誤只終止該連線的會談，不影響其他連線。
type Hub struct {
	registry *Registry
	logger   *slog.Logger
	upgrader websocket.Upgrader

	sessions map[uint64]*Session
	mu       sync.RWMutex
	closed   bool

	nextID atomic.Uint64
	wg     sync.WaitGroup
}

// NewHub 創建 WebSocket Hub
func NewHub(registry *Registry, logger *slog.Logger) *Hub {
	return &Hub{
		registry: registry,
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// 在生產環境應該檢查來源
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sessions: make(map[uint64]*Session),
	}
}

// ServeWS 處理 WebSocket 連接
func (hub *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := hub.upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.logger.Error("升級 WebSocket 失敗", "error", err)
		return
	}

	id := hub.nextID.Add(1)
	sess := newSession(id, conn, hub.registry, hub.logger)

	if !hub.register(sess) {
		// Hub 已停止，不再接受新會談
		conn.Close()
		return
	}

	hub.logger.Info("WebSocket 連接建立",
		"user_id", id,
		"remote", r.RemoteAddr)

	hub.wg.Add(1)
	go func() {
		defer hub.wg.Done()
		defer conn.Close()
		defer hub.unregister(sess)
		sess.run()
	}()
}

// register 註冊會談；Hub 已停止時回傳 false
func (hub *Hub) register(sess *Session) bool {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	if hub.closed {
		return false
	}
	hub.sessions[sess.id] = sess
	return true
}

// unregister 取消註冊會談
func (hub *Hub) unregister(sess *Session) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	delete(hub.sessions, sess.id)
}

// ConnectionCount 獲取存活連線數
func (hub *Hub) ConnectionCount() int {
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	return len(hub.sessions)
}

// Stop 停止 Hub：關閉所有連線並等待會談結束
func (hub *Hub) Stop() {
	hub.mu.Lock()
	hub.closed = true
	for _, sess := range hub.sessions {
		sess.conn.Close()
	}
	hub.mu.Unlock()

	hub.wg.Wait()
	hub.logger.Info("WebSocket Hub 已停止")
}
