package usvgtext

import (
	"os"
	"strconv"
	"strings"
)

func readFile(path string) ([]byte, error) { return os.ReadFile(path) }

func splitFontFamilies(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		f = strings.Trim(f, `"'`)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func parseIntSimple(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}
