package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Run level messages (info)
		"Analyzing %dx%d %d-bit stream (%s chroma)":             "%dx%d %dビットストリームを解析中 (%s クロマ)",
		"Analyzed %d frames, found %d scene changes (%.1f fps)": "%d フレームを解析し、%d 件のシーンチェンジを検出しました (%.1f fps)",
		"Results written to %s":                                 "結果を %s に書き込みました",
		"Interrupted, shutting down...":                         "中断されました。シャットダウン中...",

		// Detector (debug)
		"Frame %d: cost=%.1f imp=%.1f threshold=%.1f cut=%v": "フレーム %d: コスト=%.1f 重要度=%.1f しきい値=%.1f カット=%v",
		"Scene cut at frame %d":                              "フレーム %d でシーンカット",

		// Summary
		"Scene Change Summary":      "シーンチェンジ概要",
		"Generated":                 "生成日時",
		"Stream":                    "ストリーム",
		"Resolution":                "解像度",
		"Bit depth":                 "ビット深度",
		"Frame rate":                "フレームレート",
		"Chroma subsampling":        "クロマサブサンプリング",
		"Detection":                 "検出",
		"Frames analyzed":           "解析フレーム数",
		"Scene changes":             "シーンチェンジ数",
		"Cut frames":                "カットフレーム",
		"Analysis speed":            "解析速度",
		"Scores":                    "スコア",
		"Mean":                      "平均",
		"Std dev":                   "標準偏差",
		"Median":                    "中央値",
		"95th percentile":           "95パーセンタイル",
		"Max":                       "最大",
		"Settings":                  "設定",
		"Min scenecut interval":     "最小シーンカット間隔",
		"Max scenecut interval":     "最大シーンカット間隔",
		"Lookahead":                 "先読み",
		"Flash detection":           "フラッシュ検出",
		"CPU level":                 "CPUレベル",
		"Generated by scenescan %s": "scenescan %s により生成",

		// Warnings
		"Stream contains no frames": "ストリームにフレームがありません",

		// Errors
		"Failed to read input: %s":   "入力の読み込みに失敗しました: %s",
		"Failed to write output: %s": "出力の書き込みに失敗しました: %s",
	})
}
