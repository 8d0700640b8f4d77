package enums

type RankMode string

const (
	RankModeInvalid RankMode = ""

	// RankModeThumbs ranks submissions by their 👍 (+1) reaction count only.
	RankModeThumbs RankMode = "thumbs"

	// RankModeAll ranks submissions by the sum of every reaction type,
	// including 👎 and 😕.
	RankModeAll RankMode = "all"
)
