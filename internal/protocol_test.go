package internal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/koopa0/system-design/14-lobby-coordinator/internal"
)

// TestDecodePacket 測試命令幀解碼
func TestDecodePacket(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wantID   internal.PacketID
		wantName string
	}{
		{
			name:     "create room packet",
			data:     append([]byte{1}, []byte("lobbyA")...),
			wantID:   internal.PacketCreateRoom,
			wantName: "lobbyA",
		},
		{
			name:     "join room packet",
			data:     append([]byte{2}, []byte("lobbyA")...),
			wantID:   internal.PacketJoinRoom,
			wantName: "lobbyA",
		},
		{
			name:     "opcode only has empty name",
			data:     []byte{1},
			wantID:   internal.PacketCreateRoom,
			wantName: "",
		},
		{
			name:     "invalid utf8 replaced not rejected",
			data:     []byte{1, 0xff, 0xfe, 'a'},
			wantID:   internal.PacketCreateRoom,
			wantName: "�a",
		},
		{
			name:     "utf8 room name preserved",
			data:     append([]byte{2}, []byte("測試房間")...),
			wantID:   internal.PacketJoinRoom,
			wantName: "測試房間",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packet := internal.DecodePacket(tt.data)
			assert.Equal(t, tt.wantID, packet.ID)
			assert.Equal(t, tt.wantName, packet.Name)
		})
	}
}
