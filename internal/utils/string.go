package utils

import (
	"fmt"
	"strings"
	"unicode"
)

func CapitalizeFirst(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	return string(unicode.ToUpper(r[0])) + string(r[1:])
}

// FormatRank renders a tier/division pair as "Gold II (54 LP)", or "Unranked".
func FormatRank(tier, division string, leaguePoints int) string {
	if tier == "" || strings.EqualFold(tier, "UNRANKED") {
		return "Unranked"
	}
	name := CapitalizeFirst(strings.ToLower(tier))
	if division != "" {
		name += " " + division
	}
	return fmt.Sprintf("%s (%d LP)", name, leaguePoints)
}
