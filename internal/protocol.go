package internal

import (
	"strings"
	"unicode/utf8"
)

// PacketID 命令幀操作碼（二進位幀的首位元組）
type PacketID byte

const (
	// PacketCreateRoom 創建房間，其餘位元組為房間名稱
	PacketCreateRoom PacketID = 1
	// PacketJoinRoom 加入房間，其餘位元組為房間名稱
	PacketJoinRoom PacketID = 2
)

// nackMessage 命令被拒絕時回覆的文字幀內容。
// 成功沒有對應的正向回覆（靜默即成功）。
const nackMessage = "oopsies"

// Packet 已解碼的命令幀
type Packet struct {
	ID   PacketID
	Name string
}

// DecodePacket 解碼一個非空的二進位命令幀
//
// 名稱採寬鬆 UTF-8 解碼：無效位元組序列以 U+FFFD 取代、不拒絕。
func DecodePacket(data []byte) Packet {
	return Packet{
		ID:   PacketID(data[0]),
		Name: strings.ToValidUTF8(string(data[1:]), string(utf8.RuneError)),
	}
}
