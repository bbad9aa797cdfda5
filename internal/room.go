package internal

import (
	"slices"
	"time"
)

// Room 房間
//
// 系統設計考量：
//
//  1. 穩定代號（ID）：
//     問題：以儲存位置當代號，任何一次移除都會讓既有代號位移失效
//     方案：單調遞增的房間 ID，與儲存位置解耦
//     優勢：離線清理時拿著過期代號也只是查無此房（安全的 no-op）
//
//  2. 明確的房主欄位（OwnerID）：
//     問題：「成員序列第 0 位即房主」是隱含慣例，成員移除邏輯一改就悄悄壞掉
//     方案：創建時記錄 OwnerID，房主判定不依賴位置
//     （成員序列仍保持房主在最前，順序對外可見）
//
//  3. 併發控制：
//     Room 本身不帶鎖，所有讀寫都在 Registry 的鎖保護下進行，
//     避免雙層鎖帶來的死鎖風險。
type Room struct {
	ID        uint64    `json:"room_id"`
	Name      string    `json:"room_name"`
	OwnerID   uint64    `json:"owner_id"`
	Members   []uint64  `json:"members"` // 依加入順序排列，房主在首位
	CreatedAt time.Time `json:"created_at"`
}

// NewRoom 創建新房間，創建者即房主、首位成員
func NewRoom(id uint64, name string, ownerID uint64) *Room {
	return &Room{
		ID:        id,
		Name:      name,
		OwnerID:   ownerID,
		Members:   []uint64{ownerID},
		CreatedAt: time.Now(),
	}
}

// IsOwner 檢查是否為房主
func (r *Room) IsOwner(userID uint64) bool {
	return r.OwnerID == userID
}

// AddMember 加入成員（呼叫者需持有 Registry 鎖）
func (r *Room) AddMember(userID uint64) {
	r.Members = append(r.Members, userID)
}

// RemoveMember 依值移除成員，保持其餘成員的相對順序
func (r *Room) RemoveMember(userID uint64) bool {
	idx := slices.Index(r.Members, userID)
	if idx < 0 {
		return false
	}
	r.Members = slices.Delete(r.Members, idx, idx+1)
	return true
}

// MemberCount 獲取成員數量
func (r *Room) MemberCount() int {
	return len(r.Members)
}
