package internal

import (
	"errors"
	"log/slog"

	"github.com/gorilla/websocket"

	apperrors "github.com/koopa0/system-design/14-lobby-coordinator/pkg/errors"
)

// 系統設計問題：
//   如何驅動單一連線從接受到關閉的完整生命週期？
//
// 狀態機：
//
//	連線中 → 握手中 → 大廳閒置 → 房間內 → 已關閉
//	                    ↑__________|（僅差在是否持有房間代號）
//
// 狀態轉換規則：
//   - 握手中 → 已關閉：握手幀不合格（非文字幀、欄位數錯誤、讀取失敗）
//   - 握手中 → 大廳閒置：握手通過，回覆大廳列表幀
//   - 大廳閒置 → 房間內：創建或加入成功
//   - 房間內 → 房間內：再次創建/加入是協定違規，回覆 nack 但不斷線
//   - 任何狀態 → 已關閉：串流結束或收到空的二進位幀（正常離線）
//
// 離線清理：
//   - 持有房間代號時呼叫 Registry.Leave（房主 → 解散；成員 → 移除）
//   - 代號可能已因併發的房主離線而過期，Leave 對此安全降級

// Session 連線會談
//
// 每條連線一個 goroutine，會談狀態（目前房間代號、中繼資料）
// 為該 goroutine 私有，與其他連線只透過 Registry 互動。
type Session struct {
	id       uint64
	conn     *websocket.Conn
	registry *Registry
	logger   *slog.Logger

	meta   *Metadata
	roomID uint64 // 0 = 大廳（未加入任何房間）
}

// newSession 創建連線會談
func newSession(id uint64, conn *websocket.Conn, registry *Registry, logger *slog.Logger) *Session {
	return &Session{
		id:       id,
		conn:     conn,
		registry: registry,
		logger:   logger,
	}
}

// run 驅動會談完整生命週期：握手 → 命令迴圈 → 離線清理
//
// 回傳即表示會談結束，呼叫端負責關閉底層連線。
func (s *Session) run() {
	if err := s.handshake(); err != nil {
		// 握手失敗是致命的：不回覆任何幀，直接關閉
		s.logger.Warn("握手失敗，關閉連線",
			"user_id", s.id,
			"error", err)
		return
	}

	s.commandLoop()

	if s.roomID != 0 {
		s.registry.Leave(s.id, s.roomID)
	}

	s.logger.Info("連線關閉", "user_id", s.id)
}

// handshake 消費第一幀並驗證中繼資料，通過後回覆大廳列表幀
func (s *Session) handshake() error {
	messageType, payload, err := s.conn.ReadMessage()
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "read handshake frame")
	}

	meta, err := ParseMetadata(messageType, payload)
	if err != nil {
		return err
	}
	s.meta = meta

	s.logger.Debug("收到客戶端中繼資料",
		append([]any{slog.Uint64("user_id", s.id)}, meta.LogAttrs()...)...)

	// 大廳列表幀：目前所有房間名稱，換行串接（無房間時為空字串）
	if err := s.conn.WriteMessage(websocket.TextMessage, []byte(s.registry.LobbyListing())); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "write lobby listing")
	}

	return nil
}

// commandLoop 命令迴圈：阻塞等待下一幀是唯一的暫停點
func (s *Session) commandLoop() {
	for {
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.logger.Error("WebSocket 讀取錯誤",
					"user_id", s.id,
					"error", err)
			}
			return
		}

		// 握手後的文字幀不在協定內，忽略
		if messageType != websocket.BinaryMessage {
			continue
		}

		// 空的二進位幀：客戶端的離線信號，與串流結束等價
		if len(data) == 0 {
			s.logger.Debug("收到空封包，視為離線", "user_id", s.id)
			return
		}

		if err := s.handleCommand(data); err != nil {
			s.logger.Info("命令被拒絕",
				"user_id", s.id,
				"room_id", s.roomID,
				"error", err)
			s.sendNack()
		}
	}
}

// handleCommand 解碼並分派一個命令幀
//
// 回傳錯誤即協定違規（已在房間內、空房名、查無房間……），
// 呼叫端回覆 nack、連線保持開啟、狀態不變。
func (s *Session) handleCommand(data []byte) error {
	packet := DecodePacket(data)

	switch packet.ID {
	case PacketCreateRoom:
		if s.roomID != 0 {
			return apperrors.ErrAlreadyInRoom
		}
		handle, err := s.registry.Create(s.id, packet.Name)
		if err != nil {
			return err
		}
		s.roomID = handle

	case PacketJoinRoom:
		if s.roomID != 0 {
			return apperrors.ErrAlreadyInRoom
		}
		if packet.Name == "" {
			return apperrors.ErrEmptyRoomName
		}
		handle, err := s.registry.Join(s.id, packet.Name)
		if err != nil {
			return err
		}
		s.roomID = handle

	default:
		// 未知操作碼：靜默忽略（不回覆、不報錯）
		s.logger.Debug("未知操作碼",
			"user_id", s.id,
			"packet_id", uint8(packet.ID))
	}

	return nil
}

// sendNack 回覆拒絕幀（射後不理）
func (s *Session) sendNack() {
	if err := s.conn.WriteMessage(websocket.TextMessage, []byte(nackMessage)); err != nil {
		if !errors.Is(err, websocket.ErrCloseSent) {
			s.logger.Debug("發送拒絕幀失敗",
				"user_id", s.id,
				"error", err)
		}
	}
}
