package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Verification (info)
		"Verifying %s (skip margin %d)":                  "%s を検証中 (スキップマージン %d)",
		"Processed %d frames":                            "%d フレームを処理しました",
		"Processed %d of %d frames":                      "%d / %d フレームを処理しました",
		"Verification finished: %d frames, %d anomalies": "検証完了: %d フレーム, 異常 %d 件",
		"Verification interrupted after %d frames":       "%d フレームで検証を中断しました",
		"Interrupted, shutting down...":                  "中断されました。終了処理中...",

		// Verification (debug)
		"Source reports %d frames":   "ソースのフレーム数は %d です",
		"Detected %s at position %d": "位置 %[2]d で %[1]s を検出しました",
		"Stage %s finished in %s":    "ステージ %s が %s で完了しました",

		// Frame source
		"Probed %s: codec %s, %dx%d, %d frames":                    "%s を解析: コーデック %s, %dx%d, %d フレーム",
		"Frame count unavailable before decoding: %s":              "デコード前にフレーム数を取得できません: %s",
		"Stream ended with an unreadable frame at position %d: %s": "位置 %d のフレームが読み取れないためストリームを終了します: %s",
		"ffmpeg exited early after %d frames: %s":                  "ffmpeg が %d フレームで終了しました: %s",
		"Frame stream ended early after %d frames: %v":             "フレームストリームが %d フレームで途切れました: %v",

		// Evidence
		"Saved evidence %s":              "証拠画像 %s を保存しました",
		"Failed to save evidence %s: %v": "証拠画像 %s の保存に失敗しました: %v",

		// Generator
		"Generating %d frames (%dx%d at %g fps, %s) to %s": "%[6]s に %[1]d フレームを生成中 (%[2]dx%[3]d, %[4]g fps, %[5]s)",
		"Generated frame %d of %d":                         "%d / %d フレームを生成しました",
		"Reference video written to %s":                    "リファレンス動画を %s に書き出しました",
		"Starting ffmpeg: %s %v":                           "ffmpeg を起動: %s %v",
		"Failed to finalize encoder after abort: %v":       "中断後のエンコーダ終了処理に失敗しました: %v",
		"Encoded %d frames":                                "%d フレームをエンコードしました",

		// Errors
		"Failed to open video: %v": "動画を開けません: %v",
	})
}
