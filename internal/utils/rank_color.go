package utils

import (
	"strings"
)

// GetRankColor returns an embed color code based on the tier of a summoner.
func GetRankColor(tier string) int {
	switch strings.ToUpper(tier) {
	case "IRON":
		return 0x3C3C3C
	case "BRONZE":
		return 0xCD7F32
	case "SILVER":
		return 0xC0C0C0
	case "GOLD":
		return 0xFFD700
	case "PLATINUM":
		return 0x00FFCC
	case "EMERALD":
		return 0x50C878
	case "DIAMOND":
		return 0x00BFFF
	case "MASTER":
		return 0x800080
	case "GRANDMASTER":
		return 0xFF4500
	case "CHALLENGER":
		return 0x1E90FF
	case "UNRANKED", "":
		return 0xCCCCCC
	default:
		return 0xFFFFFF
	}
}
