package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	urlverify "github.com/davidmytton/url-verifier"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatDuration takes a duration as seconds and returns a hh:mm:ss string.
func FormatDuration(duration int64) string {
	var durationtext string

	input, err := time.ParseDuration(strconv.FormatInt(duration, 10) + "s")
	if err != nil {
		return "00:00"
	}

	d := input.Round(time.Second)

	h := d / time.Hour
	d -= h * time.Hour

	m := d / time.Minute
	d -= m * time.Minute

	s := d / time.Second

	if h > 0 {
		if h < 10 {
			durationtext += "0"
		}

		durationtext += strconv.Itoa(int(h))
		durationtext += ":"
	}

	if m > 0 {
		if m < 10 {
			durationtext += "0"
		}

		durationtext += strconv.Itoa(int(m))
	} else {
		durationtext += "00"
	}

	durationtext += ":"

	if s < 10 {
		durationtext += "0"
	}

	durationtext += strconv.Itoa(int(s))

	return durationtext
}

// FormatNumber takes a number and represents it in the
// billions(B), millions(M), or thousands(K) format, with
// one decimal place. If there is a zero after the decimal,
// it is removed.
func FormatNumber(num int) string {
	for i, n := range []int{
		1000000000,
		1000000,
		1000,
	} {
		if num >= n {
			str := fmt.Sprintf("%.1f%c", float64(num)/float64(n), "BMK"[i])

			split := strings.Split(str, ".")
			if strings.Contains(split[1], "0") {
				str = split[0]
			}

			return str
		}
	}

	return strconv.Itoa(num)
}

// HandlerName returns the handler property name for an event,
// with the given prefix ("on" or "once").
func HandlerName(prefix, event string) string {
	if event == "" {
		return ""
	}

	return prefix + cases.Title(language.Und, cases.NoLower).String(event)
}

// Deduplicate removes duplicate entries from a list, keeping
// the first occurrence of each.
func Deduplicate(values []string) []string {
	seen := make(map[string]struct{}, len(values))

	deduplicated := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		deduplicated = append(deduplicated, v)
	}

	return deduplicated
}

// IsValidURL checks if a URL is valid.
func IsValidURL(uri string) (*url.URL, error) {
	v, err := urlverify.NewVerifier().Verify(uri)
	if err != nil {
		return nil, err
	}
	if !v.IsURL {
		return nil, fmt.Errorf("invalid URL")
	}

	return url.Parse(uri)
}

// GetHostname gets the hostname of the given URL.
func GetHostname(hostURL string) string {
	uri, _ := url.Parse(hostURL)

	hostname := uri.Hostname()
	if hostname == "" {
		return hostURL
	}

	return hostname
}
