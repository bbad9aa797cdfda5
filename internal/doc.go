// Package internal 實現了一個即時連線與房間協調器。
//
// 客戶端建立 WebSocket 連線後，先送出一次性的能力握手（10 欄位中繼資料），
// 之後透過精簡的二進位命令協定創建或加入具名房間。核心關注點：
//
// 連線生命週期
//
//   - 接受連線 → 中繼資料握手 → 命令迴圈 → 離線清理
//   - 每條連線一個 goroutine，彼此之間只透過房間註冊表互動
//   - 連線 ID 為行程生命週期內單調遞增，永不重用
//
// 房間註冊表
//
//   - 創建 / 查找 / 加入 / 離開，全程互斥保護
//   - 房間代號（handle）為穩定的單調 ID，不隨移除而位移
//   - 房主離線即解散房間；成員離線僅縮減成員序列
//
// 協定
//
//   - 握手幀：文字，恰好 10 行欄位，否則直接斷線
//   - 大廳列表幀：握手成功後回覆一次，換行串接的房間名稱
//   - 命令幀：二進位，首位元組為操作碼（1 = 創建、2 = 加入）
//   - 拒絕回覆：文字 "oopsies"；成功則靜默
//   - 空的二進位幀或串流結束：視為正常離線
package internal
