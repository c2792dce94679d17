package transformer

import (
	"encoding/json"
	"math"
	"strconv"
)

// Infinity is the KDA sentinel for deathless games.
const Infinity = "∞"

// Figure is a display number. It marshals as a JSON number unless it carries
// a suffix ("%", "k") or is infinite, in which case it marshals as a string.
type Figure struct {
	Value    float64
	Suffix   string
	Infinite bool
}

func Number(v float64) Figure {
	return Figure{Value: v}
}

func Suffixed(v float64, suffix string) Figure {
	return Figure{Value: v, Suffix: suffix}
}

func (f Figure) String() string {
	if f.Infinite {
		return Infinity
	}
	return strconv.FormatFloat(f.Value, 'f', -1, 64) + f.Suffix
}

func (f Figure) MarshalJSON() ([]byte, error) {
	if f.Infinite || f.Suffix != "" {
		return json.Marshal(f.String())
	}
	return []byte(strconv.FormatFloat(f.Value, 'f', -1, 64)), nil
}

// round rounds v to the given number of decimals, half away from zero.
func round(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}

// thousands formats 12345 as "12.3k".
func thousands(v int) Figure {
	return Suffixed(round(float64(v)/1000, 1), "k")
}

// share formats part/total as a percentage with one decimal. A zero total yields "0%".
func share(part, total int) Figure {
	if total == 0 {
		return Suffixed(0, "%")
	}
	return Suffixed(round(float64(part)*100/float64(total), 1), "%")
}

// perMinute divides v by the game length in minutes, two decimals.
func perMinute(v, durationSeconds int) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	return round(float64(v)/(float64(durationSeconds)/60), 2)
}
