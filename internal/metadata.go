package internal

import (
	"log/slog"
	"strings"

	"github.com/gorilla/websocket"

	apperrors "github.com/koopa0/system-design/14-lobby-coordinator/pkg/errors"
)

// metadataFieldCount 握手幀的固定欄位數
const metadataFieldCount = 10

// Metadata 客戶端能力中繼資料
//
// 連線的第一幀必須是文字幀，恰好 10 行，依序為下列欄位。
// 內容純屬診斷用途（記錄在日誌、掛在 session 上），
// 不參與任何控制決策。
type Metadata struct {
	UserAgent   string `json:"user_agent"`
	CPUCores    string `json:"cpu_cores"`
	Memory      string `json:"memory"`
	GPUVendor   string `json:"gpu_vendor"`
	GPURenderer string `json:"gpu_renderer"`
	Languages   string `json:"languages"`
	Connection  string `json:"connection"`
	Battery     string `json:"battery"`
	Charging    bool   `json:"charging"`
	Timezone    string `json:"timezone"`
}

// ParseMetadata 驗證並解析握手幀
//
// 拒絕條件（任一即回傳錯誤，呼叫端應直接斷線、不回覆任何幀）：
//   - 不是文字幀
//   - 按行切分後不是恰好 10 個欄位
//
// 無重試：握手失敗對該連線是致命的。
func ParseMetadata(messageType int, payload []byte) (*Metadata, error) {
	if messageType != websocket.TextMessage {
		return nil, apperrors.ErrBadHandshake.WithDetails("not a text frame")
	}

	lines := splitLines(string(payload))
	if len(lines) != metadataFieldCount {
		return nil, apperrors.ErrBadHandshake.WithDetails("wrong field count")
	}

	return &Metadata{
		UserAgent:   lines[0],
		CPUCores:    lines[1],
		Memory:      lines[2],
		GPUVendor:   lines[3],
		GPURenderer: lines[4],
		Languages:   lines[5],
		Connection:  lines[6],
		Battery:     lines[7],
		Charging:    lines[8] == "y",
		Timezone:    lines[9],
	}, nil
}

// LogAttrs 轉成 slog 屬性（診斷日誌用）
func (m *Metadata) LogAttrs() []any {
	return []any{
		slog.String("user_agent", m.UserAgent),
		slog.String("cpu_cores", m.CPUCores),
		slog.String("memory_gb", m.Memory),
		slog.String("gpu_vendor", m.GPUVendor),
		slog.String("gpu_renderer", m.GPURenderer),
		slog.String("languages", m.Languages),
		slog.String("connection", m.Connection),
		slog.String("battery", m.Battery),
		slog.Bool("charging", m.Charging),
		slog.String("timezone", m.Timezone),
	}
}

// splitLines 按行切分
//
// 行為對齊常見客戶端的送出格式：
//   - 接受 \n 與 \r\n
//   - 單一結尾換行不會多出一個空欄位
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
