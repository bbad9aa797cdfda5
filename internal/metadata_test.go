package internal_test

import (
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koopa0/system-design/14-lobby-coordinator/internal"
)

// validMetadataLines 測試用的合法 10 欄位中繼資料
func validMetadataLines() []string {
	return []string{
		"Mozilla/5.0 (X11; Linux x86_64)",
		"8",
		"16",
		"Intel Inc.",
		"Intel Iris OpenGL Engine",
		"en-US,en",
		"4g",
		"87",
		"y",
		"Asia/Taipei",
	}
}

// TestParseMetadata 測試中繼資料握手驗證
func TestParseMetadata(t *testing.T) {
	tests := []struct {
		name        string
		messageType int
		payload     string
		wantErr     bool
		validate    func(t *testing.T, meta *internal.Metadata)
	}{
		{
			name:        "valid 10 fields",
			messageType: websocket.TextMessage,
			payload:     strings.Join(validMetadataLines(), "\n"),
			validate: func(t *testing.T, meta *internal.Metadata) {
				assert.Equal(t, "Mozilla/5.0 (X11; Linux x86_64)", meta.UserAgent)
				assert.Equal(t, "8", meta.CPUCores)
				assert.Equal(t, "16", meta.Memory)
				assert.Equal(t, "Intel Inc.", meta.GPUVendor)
				assert.Equal(t, "Intel Iris OpenGL Engine", meta.GPURenderer)
				assert.Equal(t, "en-US,en", meta.Languages)
				assert.Equal(t, "4g", meta.Connection)
				assert.Equal(t, "87", meta.Battery)
				assert.True(t, meta.Charging)
				assert.Equal(t, "Asia/Taipei", meta.Timezone)
			},
		},
		{
			name:        "trailing newline does not add a field",
			messageType: websocket.TextMessage,
			payload:     strings.Join(validMetadataLines(), "\n") + "\n",
			validate: func(t *testing.T, meta *internal.Metadata) {
				assert.Equal(t, "Asia/Taipei", meta.Timezone)
			},
		},
		{
			name:        "crlf line endings",
			messageType: websocket.TextMessage,
			payload:     strings.Join(validMetadataLines(), "\r\n"),
			validate: func(t *testing.T, meta *internal.Metadata) {
				assert.Equal(t, "Mozilla/5.0 (X11; Linux x86_64)", meta.UserAgent)
				assert.Equal(t, "Asia/Taipei", meta.Timezone)
			},
		},
		{
			name:        "not charging",
			messageType: websocket.TextMessage,
			payload: strings.Join(func() []string {
				lines := validMetadataLines()
				lines[8] = "n"
				return lines
			}(), "\n"),
			validate: func(t *testing.T, meta *internal.Metadata) {
				assert.False(t, meta.Charging)
			},
		},
		{
			name:        "nine fields rejected",
			messageType: websocket.TextMessage,
			payload:     strings.Join(validMetadataLines()[:9], "\n"),
			wantErr:     true,
		},
		{
			name:        "eleven fields rejected",
			messageType: websocket.TextMessage,
			payload:     strings.Join(append(validMetadataLines(), "extra"), "\n"),
			wantErr:     true,
		},
		{
			name:        "empty payload rejected",
			messageType: websocket.TextMessage,
			payload:     "",
			wantErr:     true,
		},
		{
			name:        "binary frame rejected",
			messageType: websocket.BinaryMessage,
			payload:     strings.Join(validMetadataLines(), "\n"),
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := internal.ParseMetadata(tt.messageType, []byte(tt.payload))

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, meta)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, meta)
			if tt.validate != nil {
				tt.validate(t, meta)
			}
		})
	}
}
