package internal

import (
	"log/slog"
	"slices"
	"strings"
	"sync"

	apperrors "github.com/koopa0/system-design/14-lobby-coordinator/pkg/errors"
)

// 系統設計問題：
//   如何讓大量連線併發地創建、查找、加入與離開房間，而不破壞一致性？
//
// 核心挑戰：
//   1. 併發控制：多條連線同時操作同一份房間集合
//   2. 代號穩定性：房間被移除後，其他連線手上的代號不能指到別的房間
//   3. 離線清理：房主離線要解散房間，成員離線只縮減序列
//   4. 過期代號：離線清理可能撞上已被解散的房間，必須安全降級
//
// 設計方案：
//   ✅ 單一 RWMutex - 粗粒度互斥（房間數小、單次操作輕，夠用且簡單）
//   ✅ 單調房間 ID - 代號與儲存位置解耦，永不重用
//   ✅ ID map + 插入順序 slice - O(1) 代號查找，大廳列表保持創建順序
//   ✅ 查無此房即 no-op - 過期代號不會變成 panic

// Registry 房間註冊表
//
// 所有連線共享的唯一資源。四個操作（ListNames、Create、Join、Leave）
// 全部在同一把鎖下執行，任何兩個操作的讀寫都不會交錯：
//   - Join 永遠看不到建到一半的房間
//   - 兩個併發 Create 的 append 完全序列化
//
// 粗粒度鎖是刻意的簡化取捨：房間數量與單次操作成本都很小，
// 換成每房間一把鎖只會增加死鎖面積，不會有可感知的吞吐收益。
type Registry struct {
	rooms  map[uint64]*Room // roomID -> Room
	order  []uint64         // 創建順序（大廳列表用）
	nextID uint64           // 單調遞增，永不重用

	uniqueNames bool // 嚴格模式：拒絕重複房名
	maxRooms    int  // 房間數上限（0 = 不限制）

	mu     sync.RWMutex
	logger *slog.Logger
}

// NewRegistry 創建房間註冊表
//
// uniqueNames 預設關閉：房名允許重複（名稱是裝飾性的，代號才是權威），
// 需要唯一性保證時由配置開啟。
func NewRegistry(uniqueNames bool, maxRooms int, logger *slog.Logger) *Registry {
	return &Registry{
		rooms:       make(map[uint64]*Room),
		order:       make([]uint64, 0),
		uniqueNames: uniqueNames,
		maxRooms:    maxRooms,
		logger:      logger,
	}
}

// ListNames 獲取目前所有房間名稱（依創建順序）
func (reg *Registry) ListNames() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	names := make([]string, 0, len(reg.order))
	for _, id := range reg.order {
		names = append(names, reg.rooms[id].Name)
	}
	return names
}

// LobbyListing 大廳列表幀內容：換行串接的房間名稱，尾端空白修剪
func (reg *Registry) LobbyListing() string {
	return strings.TrimRight(strings.Join(reg.ListNames(), "\n"), " \t\r\n")
}

// Create 創建房間，創建者成為房主
//
// 回傳房間代號（穩定的單調 ID）。不檢查房名是否與現有房間重複，
// 除非嚴格模式開啟 —— 兩個併發 Create 同名時會產生兩個房間，
// 這是已知且被接受的行為（代號才是權威識別）。
func (reg *Registry) Create(userID uint64, name string) (uint64, error) {
	if name == "" {
		return 0, apperrors.ErrEmptyRoomName
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.maxRooms > 0 && len(reg.rooms) >= reg.maxRooms {
		return 0, apperrors.ErrRoomQuotaExceeded
	}

	if reg.uniqueNames {
		for _, id := range reg.order {
			if reg.rooms[id].Name == name {
				return 0, apperrors.ErrRoomAlreadyExists
			}
		}
	}

	reg.nextID++
	room := NewRoom(reg.nextID, name, userID)
	reg.rooms[room.ID] = room
	reg.order = append(reg.order, room.ID)

	reg.logger.Info("房間已創建",
		"room_id", room.ID,
		"name", name,
		"owner_id", userID)

	return room.ID, nil
}

// Join 加入房間：依創建順序線性掃描，取第一個同名房間
func (reg *Registry) Join(userID uint64, name string) (uint64, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, id := range reg.order {
		room := reg.rooms[id]
		if room.Name == name {
			room.AddMember(userID)
			reg.logger.Info("成員加入房間",
				"room_id", room.ID,
				"name", name,
				"user_id", userID)
			return room.ID, nil
		}
	}

	return 0, apperrors.ErrRoomNotFound
}

// Leave 離開房間（離線清理路徑）
//
// 房主離開：整個房間解散，其餘成員的代號就此過期（不另行通知）。
// 成員離開：依值移除，保持其餘成員順序。
// 代號查無此房：安全的 no-op —— 房間可能已被併發的房主離線解散。
func (reg *Registry) Leave(userID uint64, roomID uint64) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, exists := reg.rooms[roomID]
	if !exists {
		// 過期代號：房間已被解散，不視為錯誤
		reg.logger.Debug("離開時房間已不存在",
			"room_id", roomID,
			"user_id", userID)
		return
	}

	if room.IsOwner(userID) {
		reg.removeRoom(roomID)
		reg.logger.Info("房主離線，房間解散",
			"room_id", roomID,
			"name", room.Name,
			"owner_id", userID,
			"orphaned", room.MemberCount()-1)
		return
	}

	if room.RemoveMember(userID) {
		reg.logger.Info("成員離開房間",
			"room_id", roomID,
			"name", room.Name,
			"user_id", userID)
	}
}

// removeRoom 移除房間（內部使用，需持有寫鎖）
func (reg *Registry) removeRoom(roomID uint64) {
	delete(reg.rooms, roomID)
	for i, id := range reg.order {
		if id == roomID {
			reg.order = append(reg.order[:i], reg.order[i+1:]...)
			break
		}
	}
}

// RoomView 房間快照（對外唯讀）
type RoomView struct {
	ID      uint64   `json:"room_id"`
	Name    string   `json:"room_name"`
	OwnerID uint64   `json:"owner_id"`
	Members []uint64 `json:"members"`
}

// Snapshot 獲取所有房間的唯讀快照（依創建順序）
func (reg *Registry) Snapshot() []RoomView {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	views := make([]RoomView, 0, len(reg.order))
	for _, id := range reg.order {
		room := reg.rooms[id]
		views = append(views, RoomView{
			ID:      room.ID,
			Name:    room.Name,
			OwnerID: room.OwnerID,
			Members: slices.Clone(room.Members),
		})
	}
	return views
}

// Count 獲取房間數量
func (reg *Registry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

// Stats 獲取統計資訊
func (reg *Registry) Stats() map[string]any {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	totalMembers := 0
	byRoom := make(map[string]int, len(reg.order))
	for _, id := range reg.order {
		room := reg.rooms[id]
		totalMembers += room.MemberCount()
		byRoom[room.Name] = room.MemberCount()
	}

	return map[string]any{
		"total_rooms":     len(reg.rooms),
		"total_members":   totalMembers,
		"members_by_room": byRoom,
	}
}
