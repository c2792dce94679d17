package riotapi

import (
	"net/url"
	"regexp"
	"strings"
)

// DefaultHost is the Riot API host template. {region} is replaced by the routing value.
const DefaultHost = "https://{region}.api.riotgames.com"

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// Request is an immutable description of one upstream call.
//   - Path is relative to the host, e.g. "lol/summoner/v4/summoners/by-name/{summonerName}"
//   - Region is the routing value (euw1, na1, europe, ...)
type Request struct {
	Path   string
	Region string
	params map[string]string
	query  url.Values
}

// NewRequest creates a Request. params are copied so the caller can reuse its map.
func NewRequest(path, region string, params map[string]string) Request {
	copied := make(map[string]string, len(params))
	for k, v := range params {
		copied[k] = v
	}
	return Request{Path: path, Region: region, params: copied}
}

// WithQuery returns a copy of the request carrying the given query string.
func (r Request) WithQuery(q url.Values) Request {
	cloned := make(url.Values, len(q))
	for k, v := range q {
		cloned[k] = append([]string(nil), v...)
	}
	r.query = cloned
	return r
}

// Param returns a resolved path parameter.
func (r Request) Param(name string) string {
	return r.params[name]
}

// URL builds the fully-qualified upstream URL against the given host template.
// Every placeholder must have a non-empty parameter; values are path-escaped.
func (r Request) URL(host string) (string, error) {
	if !IsRoutingValue(r.Region) {
		return "", &InvalidParameterError{Param: "region", Reason: "must be a known lowercase routing value"}
	}
	if host == "" {
		host = DefaultHost
	}

	var missing *InvalidParameterError
	path := placeholderPattern.ReplaceAllStringFunc(r.Path, func(match string) string {
		name := match[1 : len(match)-1]
		value := strings.TrimSpace(r.params[name])
		if value == "" {
			if missing == nil {
				missing = &InvalidParameterError{Param: name, Reason: "must not be empty"}
			}
			return match
		}
		return url.PathEscape(value)
	})
	if missing != nil {
		return "", missing
	}

	full := strings.TrimRight(strings.ReplaceAll(host, "{region}", r.Region), "/") + "/" + strings.TrimLeft(path, "/")
	if len(r.query) > 0 {
		full += "?" + r.query.Encode()
	}
	return full, nil
}

var regionalRoutes = map[string]string{
	"na1":  "americas",
	"br1":  "americas",
	"la1":  "americas",
	"la2":  "americas",
	"euw1": "europe",
	"eun1": "europe",
	"tr1":  "europe",
	"ru":   "europe",
	"me1":  "europe",
	"kr":   "asia",
	"jp1":  "asia",
	"oc1":  "sea",
	"ph2":  "sea",
	"sg2":  "sea",
	"th2":  "sea",
	"tw2":  "sea",
	"vn2":  "sea",
}

// IsRoutingValue reports whether region is a known platform or regional
// routing value. The check is case-sensitive.
func IsRoutingValue(region string) bool {
	if _, ok := regionalRoutes[region]; ok {
		return true
	}
	for _, route := range regionalRoutes {
		if route == region {
			return true
		}
	}
	return false
}

// RegionalRoute maps a platform routing value to the regional value used by
// match-v5. Values that already are regional are returned unchanged.
func RegionalRoute(platform string) string {
	platform = strings.ToLower(strings.TrimSpace(platform))
	if route, ok := regionalRoutes[platform]; ok {
		return route
	}
	return platform
}

// AccountRoute is RegionalRoute for account-v1, which has no sea cluster.
// SEA platforms are served by asia.
func AccountRoute(platform string) string {
	route := RegionalRoute(platform)
	if route == "sea" {
		return "asia"
	}
	return route
}
