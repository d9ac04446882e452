package report

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese labels for the text report.
	l10n.Register("ja", l10n.LexiconMap{
		"Verification Report":         "検証レポート",
		"Video":                       "動画",
		"Status":                      "状態",
		"interrupted, partial report": "中断（部分レポート）",
		"Total frames analyzed":       "解析フレーム数",
		"Skip margin":                 "スキップマージン",
		"classified positions":        "判定対象位置",
		"Frames with no marker":       "マーカーなしフレーム",
		"No marker positions":         "マーカーなし位置",
		"Missing frames":              "欠落フレーム",
		"gap":                         "箇所",
		"gaps":                        "箇所",
		"Missing frame numbers":       "欠落フレーム番号",
		"Repeated frames":             "重複フレーム",
		"Repeated frame numbers":      "重複フレーム番号",
		"Out of order frames":         "順序違いフレーム",
		"Out of order frame numbers":  "順序違いフレーム番号",
		"position":                    "位置",
		"Evidence":                    "証跡",
		"written":                     "保存",
		"failed":                      "失敗",
	})
}
