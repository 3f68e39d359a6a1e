package render

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/mailgun/raymond/v2"
)

// The helper set is fixed and registered exactly once, before the first
// compile. Renders never mutate it afterwards, which keeps parallel renders
// and parallel tests free of cross-call interference.
var helpersOnce sync.Once

func registerHelpers() {
	helpersOnce.Do(func() {
		raymond.RegisterHelper("formatNumber", formatNumberHelper)
		raymond.RegisterHelper("gte", gteHelper)
		raymond.RegisterHelper("colorForDelta", colorForDeltaHelper)
	})
}

// formatNumberHelper renders a numeric value with thousands separators.
// Used by analytics report templates: {{formatNumber totalOpens}}.
func formatNumberHelper(value interface{}) string {
	f, ok := toFloat(value)
	if !ok {
		return fmt.Sprintf("%v", value)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String()
	if neg {
		out = "-" + out
	}
	if hasFrac {
		out += "." + fracPart
	}
	return out
}

// gteHelper is a block helper: {{#gte opens threshold}}...{{else}}...{{/gte}}.
func gteHelper(a, b interface{}, options *raymond.Options) interface{} {
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if okA && okB && fa >= fb {
		return options.Fn()
	}
	return options.Inverse()
}

// colorForDeltaHelper maps a metric delta to a report accent color.
func colorForDeltaHelper(delta interface{}) string {
	f, ok := toFloat(delta)
	switch {
	case !ok:
		return "#6b7280"
	case f > 0:
		return "#15803d"
	case f < 0:
		return "#b91c1c"
	default:
		return "#6b7280"
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
