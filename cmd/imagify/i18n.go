// Package main provides localization for the imagify CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

// translate adapts l10n for the summary formatter.
func translate(s string) string {
	return l10n.T(s)
}

func init() {
	// Register Chinese translations for CLI messages.
	l10n.Register("zh", l10n.LexiconMap{
		// Flag categories
		"Configuration": "配置",
		"Output":        "输出",
		"Input":         "输入",
		"Rendering":     "渲染",
		"Debug":         "调试",
		"Logging":       "日志",

		// Root command
		"Render long chat messages as images":                                                              "将过长的聊天消息渲染为图片",
		"imagify replaces messages that exceed a line or length threshold with a PNG image of their text.": "imagify 将超过行数或长度阈值的消息替换为其文本的 PNG 图片。",

		// Commands
		"Render message files as PNG images":                                                                                                                                          "将消息文件渲染为 PNG 图片",
		"Validate a configuration file and print the resolved settings":                                                                                                               "校验配置文件并输出解析后的设置",
		"Process a stream of messages from stdin":                                                                                                                                     "处理来自标准输入的消息流",
		"Each FILE holds one message in markup form. Messages over a threshold are written as PNG; others are reported as sent as text. Without FILE the message is read from stdin.": "每个 FILE 包含一条标记格式的消息。超过阈值的消息输出为 PNG, 其余消息以文本发送。未指定 FILE 时从标准输入读取。",
		"Messages are separated by a line containing only the separator. The configuration file is reloaded when it changes.":                                                         "消息之间以仅包含分隔符的行分隔。配置文件变更时自动重新加载。",

		// Flags
		"Configuration file (.yaml, .yml or .toml)":                 "配置文件 (.yaml, .yml 或 .toml)",
		"Output PNG path for a single message (- for stdout)":       "单条消息的输出 PNG 路径 (- 表示标准输出)",
		"Directory for output PNG files":                            "输出 PNG 文件的目录",
		"Directory for message-NNNN.png and message-NNNN.txt files": "message-NNNN.png 与 message-NNNN.txt 文件的目录",
		"Render every message regardless of thresholds":             "忽略阈值, 渲染所有消息",
		"Number of messages rendered concurrently":                  "并发渲染的消息数",
		"Line that separates messages":                              "分隔消息的行",
		"Write a YAML or Markdown summary of the batch here":        "将本批次的摘要写入该文件（YAML 或 Markdown）",
		"Enable debug output":                                       "启用调试输出",
		"Directory for debug output":                                "调试输出目录",
		"Log level (debug, info, warn, error)":                      "日志级别 (debug, info, warn, error)",
		"Suppress all log output":                                   "关闭所有日志输出",

		// Errors
		"--out accepts a single input; use --out-dir for several":          "--out 只接受一个输入; 多个输入请使用 --out-dir",
		"Refusing to write PNG data to a terminal; use --out or --out-dir": "不会向终端写入 PNG 数据; 请使用 --out 或 --out-dir",

		// Summary
		"Render Summary":       "渲染摘要",
		"Generated":            "生成时间",
		"Results":              "结果",
		"Settings":             "设置",
		"Item":                 "项目",
		"Value":                "值",
		"Messages":             "消息",
		"Imagized":             "已转图片",
		"Sent as text":         "以文本发送",
		"Render failures":      "渲染失败",
		"Defaults":             "默认值",
		"Max Line Count":       "最大行数",
		"Max Length":           "最大长度",
		"Font":                 "字体",
		"Background":           "背景",
		"Foreground":           "前景",
		"Message":              "消息",
		"Result":               "结果",
		"Lines":                "行数",
		"Length":               "长度",
		"Image Size":           "图片尺寸",
		"File Size":            "文件大小",
		"Image":                "图片",
		"Text":                 "文本",
		"Failed, sent as text": "失败, 以文本发送",
		"Generated by":         "生成工具:",
	})

	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Configuration": "設定",
		"Output":        "出力先",
		"Input":         "入力",
		"Rendering":     "描画",
		"Debug":         "デバッグ",
		"Logging":       "ログ",

		// Root command
		"Render long chat messages as images":                                                              "長いチャットメッセージを画像として描画",
		"imagify replaces messages that exceed a line or length threshold with a PNG image of their text.": "imagifyは行数または長さのしきい値を超えたメッセージを、そのテキストのPNG画像に置き換えます。",

		// Commands
		"Render message files as PNG images":                                                                                                                                          "メッセージファイルをPNG画像として描画",
		"Validate a configuration file and print the resolved settings":                                                                                                               "設定ファイルを検証し、解決された設定を表示",
		"Process a stream of messages from stdin":                                                                                                                                     "標準入力からのメッセージを順に処理",
		"Each FILE holds one message in markup form. Messages over a threshold are written as PNG; others are reported as sent as text. Without FILE the message is read from stdin.": "各FILEにはマークアップ形式のメッセージが1件入ります。しきい値を超えたメッセージはPNGとして書き出し、それ以外はテキスト送信として報告します。FILEがない場合は標準入力から読み込みます。",
		"Messages are separated by a line containing only the separator. The configuration file is reloaded when it changes.":                                                         "メッセージは区切り文字だけの行で区切ります。設定ファイルは変更時に再読み込みされます。",

		// Flags
		"Configuration file (.yaml, .yml or .toml)":                 "設定ファイル（.yaml, .yml, .toml）",
		"Output PNG path for a single message (- for stdout)":       "単一メッセージの出力PNGパス（- で標準出力）",
		"Directory for output PNG files":                            "出力PNGファイルのディレクトリ",
		"Directory for message-NNNN.png and message-NNNN.txt files": "message-NNNN.png と message-NNNN.txt のディレクトリ",
		"Render every message regardless of thresholds":             "しきい値に関係なく全メッセージを描画",
		"Number of messages rendered concurrently":                  "同時に描画するメッセージ数",
		"Line that separates messages":                              "メッセージの区切り行",
		"Write a YAML or Markdown summary of the batch here":        "バッチのサマリーをYAMLまたはMarkdownで出力",
		"Enable debug output":                                       "デバッグ出力を有効化",
		"Directory for debug output":                                "デバッグ出力のディレクトリ",
		"Log level (debug, info, warn, error)":                      "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                   "全てのログ出力を抑制",

		// Errors
		"--out accepts a single input; use --out-dir for several":          "--out は入力1件のみ対応です。複数の場合は --out-dir を使用してください",
		"Refusing to write PNG data to a terminal; use --out or --out-dir": "端末にはPNGデータを出力しません。--out または --out-dir を使用してください",

		// Summary
		"Render Summary":       "描画サマリー",
		"Generated":            "生成日時",
		"Results":              "実行結果",
		"Settings":             "設定",
		"Item":                 "項目",
		"Value":                "値",
		"Messages":             "メッセージ",
		"Imagized":             "画像化",
		"Sent as text":         "テキスト送信",
		"Render failures":      "描画失敗",
		"Defaults":             "デフォルト",
		"Max Line Count":       "最大行数",
		"Max Length":           "最大文字数",
		"Font":                 "フォント",
		"Background":           "背景",
		"Foreground":           "前景",
		"Message":              "メッセージ",
		"Result":               "結果",
		"Lines":                "行数",
		"Length":               "文字数",
		"Image Size":           "画像サイズ",
		"File Size":            "ファイルサイズ",
		"Image":                "画像",
		"Text":                 "テキスト",
		"Failed, sent as text": "失敗（テキスト送信）",
		"Generated by":         "生成:",
	})
}
