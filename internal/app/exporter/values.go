package exporter

import (
	"encoding/json"
	"log/slog"
	"strconv"

	anytypedomain "github.com/sleroq/anytype-to-markdown/internal/domain/anytype"
)

type valueFormatter struct {
	decodeTimestamps bool
	options          map[string]anytypedomain.RelationOption
	logger           *slog.Logger
}

// convertValue renders one relation value. Legacy ten digit timestamps become
// dates when decoding is on; everything else is looked up as an option id.
func (f valueFormatter) convertValue(value any) (string, bool) {
	if f.decodeTimestamps {
		if n, ok := anytypedomain.LegacyTimestamp(value); ok {
			date, err := anytypedomain.DecodeLegacyDate(n)
			if err == nil {
				return date, true
			}
			f.logger.Warn("Failed to convert timestamp", slog.Int64("value", n), slog.String("error", err.Error()))
		}
	}
	return f.optionName(value), false
}

func (f valueFormatter) optionName(value any) string {
	if id, ok := value.(string); ok {
		if opt, found := f.options[id]; found {
			return opt.Name
		}
	}
	return displayString(value)
}

func displayString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return yesNo(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
