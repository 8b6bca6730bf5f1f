// Package main provides localization for the scenescan CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Detect scene changes in video streams for encoder keyframe placement": "エンコーダのキーフレーム配置のため動画ストリームのシーンチェンジを検出",

		// Detect command
		"Detect scene changes in a Y4M stream": "Y4Mストリームのシーンチェンジを検出",

		// Version command
		"Show version information": "バージョン情報を表示",
		"scenescan version %s":     "scenescan バージョン %s",

		// Input/output flags
		"Input Y4M file path (- or empty reads stdin)":                        "入力Y4Mファイルパス（- または省略で標準入力）",
		"Write pretty-printed results JSON to this file":                      "整形済みの結果JSONをこのファイルに書き込み",
		"Save a per-frame score plot to the debug directory":                  "フレーム毎のスコアプロットをデバッグディレクトリに保存",
		"Output run summary to file (.md for Markdown, plain text otherwise)": "実行サマリーをファイルに出力（.mdはMarkdown、それ以外はテキスト形式）",
		"Directory for plot and results output (default: ./debug)":            "プロットと結果出力のディレクトリ（デフォルト: ./debug）",

		// Detection flags
		"Disable suppression of short scene flashes":        "短いシーンフラッシュの抑制を無効化",
		"Minimum distance between two scene cuts in frames": "シーンカット間の最小距離（フレーム数）",
		"Maximum distance between two scene cuts in frames": "シーンカット間の最大距離（フレーム数）",
		"Number of lookahead frames (default: 5)":           "先読みフレーム数（デフォルト: 5）",

		// CPU flags
		"CPU capability ceiling (scalar, sse2, ssse3, sse4.1, avx2, avx512, avx512icl)": "CPU機能の上限（scalar, sse2, ssse3, sse4.1, avx2, avx512, avx512icl）",

		// Config flags
		"Load settings from a YAML config file": "YAML設定ファイルから設定を読み込み",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Runtime messages
		"Analyzed %d frames so far (%d scene changes)": "これまでに %d フレームを解析（シーンチェンジ %d 件）",
		"Summary saved to %s":                          "サマリーを %s に保存しました",
		"Failed to write summary: %s":                  "サマリーの書き込みに失敗しました: %s",
		"Failed to write score plot: %s":               "スコアプロットの書き込みに失敗しました: %s",
	})
}
