package testutil

import (
	"regexp"
)

// ReplaceWithStaticTimestamps replaces the klog, JSON and standard library
// timestamps with static ones, and line numbers with 000, so that log output
// can be compared verbatim.
//
//	From: I1018 15:12:57.953433   22183 logs.go:42] log
//	To:   I0000 00:00:00.000000   00000 logs.go:000] log
//
//	From: {"ts":1729258473588.828,"caller":"log/log.go:42","msg":"log Print","v":0}
//	To:   {"ts":0000000000000.000,"caller":"log/log.go:000","msg":"log Print","v":0}
//
//	From: 2024/10/18 15:40:50 log Print
//	To:   0000/00/00 00:00:00 log Print
func ReplaceWithStaticTimestamps(input string) string {
	for _, r := range staticReplacements {
		input = r.pattern.ReplaceAllString(input, r.replacement)
	}
	return input
}

// Order matters: the klog timestamp with a process ID must be replaced before
// the variant without one.
var staticReplacements = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\d{4} \d{2}:\d{2}:\d{2}\.\d{6} +\d+`), "0000 00:00:00.000000   00000"},
	{regexp.MustCompile(`\d{4} \d{2}:\d{2}:\d{2}\.\d{6}`), "0000 00:00:00.000000"},
	{regexp.MustCompile(`"ts":\d+\.?\d*`), `"ts":0000000000000.000`},
	{regexp.MustCompile(`\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}`), "0000/00/00 00:00:00"},
	{regexp.MustCompile(`"caller":"([^"]+).go:\d+"`), `"caller":"$1.go:000"`},
	{regexp.MustCompile(` ([^:]+).go:\d+`), " $1.go:000"},
}
