package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("zh", l10n.LexiconMap{
		// Before-send hook
		"Running before-send handler %s on message %s":   "正在对消息 %[2]s 运行发送前处理器 %[1]s",
		"Imagized message %s: %dx%d, %d bytes":           "消息 %s 已转为图片: %dx%d, %d 字节",
		"Failed to imagize message %s, sending text: %s": "消息 %s 转图片失败, 将以文本发送: %s",
		"Message %s sent as text":                        "消息 %s 以文本发送",

		// Render stages
		"Layout calculated: %d lines, %dx%d canvas": "布局完成: %d 行, %dx%d 画布",
		"Painted background: %s":                    "已绘制背景: %s",
		"Painted foreground: %s in %d passes":       "已绘制前景: %s, 共 %d 遍",
		"Image encoded: %d bytes":                   "图片编码完成: %d 字节",
		"Failed to save debug output: %s":           "保存调试输出失败: %s",

		// Configuration
		"Configuration loaded: %s":                                      "已加载配置: %s",
		"Configuration reload failed, keeping previous settings: %s":    "重新加载配置失败, 保留之前的设置: %s",
		"Configuration watcher error: %s":                               "配置监视出错: %s",
		"Configuration is valid: font %s, background %s, foreground %s": "配置有效: 字体 %s, 背景 %s, 前景 %s",

		// Commands
		"Output saved to %s":                                   "输出已保存到 %s",
		"Summary saved to %s":                                  "摘要已保存到 %s",
		"Failed to write summary: %s":                          "写入摘要失败: %s",
		"Processed %d messages: %d images, %d text, %d failed": "已处理 %d 条消息: %d 张图片, %d 条文本, %d 条失败",
		"Interrupted, shutting down...":                        "已中断, 正在退出...",
	})

	l10n.Register("ja", l10n.LexiconMap{
		// Before-send hook
		"Running before-send handler %s on message %s":   "メッセージ %[2]s に送信前ハンドラ %[1]s を実行中",
		"Imagized message %s: %dx%d, %d bytes":           "メッセージ %s を画像化しました: %dx%d, %d バイト",
		"Failed to imagize message %s, sending text: %s": "メッセージ %s の画像化に失敗したためテキストで送信します: %s",
		"Message %s sent as text":                        "メッセージ %s をテキストで送信します",

		// Render stages
		"Layout calculated: %d lines, %dx%d canvas": "レイアウト計算完了: %d 行, %dx%d キャンバス",
		"Painted background: %s":                    "背景を描画しました: %s",
		"Painted foreground: %s in %d passes":       "前景を描画しました: %s, %d パス",
		"Image encoded: %d bytes":                   "画像をエンコードしました: %d バイト",
		"Failed to save debug output: %s":           "デバッグ出力の保存に失敗しました: %s",

		// Configuration
		"Configuration loaded: %s":                                      "設定を読み込みました: %s",
		"Configuration reload failed, keeping previous settings: %s":    "設定の再読み込みに失敗したため以前の設定を維持します: %s",
		"Configuration watcher error: %s":                               "設定の監視でエラーが発生しました: %s",
		"Configuration is valid: font %s, background %s, foreground %s": "設定は有効です: フォント %s, 背景 %s, 前景 %s",

		// Commands
		"Output saved to %s":                                   "出力を %s に保存しました",
		"Summary saved to %s":                                  "サマリーを %s に保存しました",
		"Failed to write summary: %s":                          "サマリーの書き込みに失敗しました: %s",
		"Processed %d messages: %d images, %d text, %d failed": "%d 件のメッセージを処理しました: 画像 %d, テキスト %d, 失敗 %d",
		"Interrupted, shutting down...":                        "中断されました。シャットダウン中...",
	})
}
