// Package main provides localization for the frameseq CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Verify frame sequence integrity of recorded videos with QR markers.": "QRマーカー付き録画動画のフレーム連続性を検証します。",

		// Version command
		"frameseq version %s": "frameseq バージョン %s",

		// Verify command
		"Ordinal drift: %s":               "フレーム番号のずれ: %s",
		"Failed to write report: %v":      "レポートの書き込みに失敗しました: %v",
		"Failed to write drift chart: %v": "ずれグラフの書き込みに失敗しました: %v",
		"Drift chart saved to %s":         "ずれグラフを %s に保存しました",

		"Cannot create evidence directory %s, evidence disabled: %v": "証拠ディレクトリ %s を作成できないため、証拠画像を保存しません: %v",
	})
}
