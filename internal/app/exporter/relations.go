package exporter

import (
	"log/slog"
	"strings"

	"github.com/sleroq/anytype-to-markdown/internal/config"
	anytypedomain "github.com/sleroq/anytype-to-markdown/internal/domain/anytype"
)

type relationResolver struct {
	relations map[string]anytypedomain.RelationDef
	values    valueFormatter
	ignored   map[string]struct{}
	linkMode  string
	logger    *slog.Logger
}

func newRelationResolver(corpus anytypedomain.Corpus, decodeTimestamps bool, ignored map[string]struct{}, linkMode string, logger *slog.Logger) *relationResolver {
	if ignored == nil {
		ignored = map[string]struct{}{}
	}
	return &relationResolver{
		relations: corpus.Relations,
		values: valueFormatter{
			decodeTimestamps: decodeTimestamps,
			options:          corpus.Options,
			logger:           logger,
		},
		ignored:  ignored,
		linkMode: linkMode,
		logger:   logger,
	}
}

// extractRelations returns the frontmatter lines for doc in the order its
// relation links declare them.
func (r *relationResolver) extractRelations(doc anytypedomain.Document) []string {
	var names []string
	values := make(map[string][]string)

	for _, link := range doc.RelationLinks {
		key := link.Key
		if _, skip := r.ignored[key]; skip {
			continue
		}
		value, ok := doc.Details[key]
		if !ok || value == nil {
			continue
		}

		name := r.displayName(key)
		var formatted []string
		switch t := value.(type) {
		case []any:
			formatted = make([]string, 0, len(t))
			for _, item := range t {
				switch v := item.(type) {
				case nil:
					continue
				case bool:
					formatted = append(formatted, yesNo(v))
				default:
					formatted = append(formatted, r.formatValue(v, key))
				}
			}
		case bool:
			formatted = []string{yesNo(t)}
		default:
			formatted = []string{r.formatValue(t, key)}
		}

		if _, seen := values[name]; !seen {
			names = append(names, name)
		}
		values[name] = formatted
	}

	lines := make([]string, 0, len(names))
	for _, name := range names {
		vals := values[name]
		if len(vals) == 1 {
			lines = append(lines, name+": "+vals[0])
			continue
		}
		lines = append(lines, name+":")
		for _, v := range vals {
			lines = append(lines, " - "+v)
		}
	}
	r.logger.Debug("Extracted relations", slog.String("document", doc.ID), slog.String("lines", strings.Join(lines, "; ")))
	return lines
}

func (r *relationResolver) displayName(key string) string {
	def, ok := r.relations[key]
	if !ok {
		r.logger.Warn("Relation info not found for key", slog.String("key", key))
		return key
	}
	return def.Name
}

func (r *relationResolver) formatValue(value any, key string) string {
	converted, isDate := r.values.convertValue(value)
	if isDate {
		return converted
	}
	switch r.linkMode {
	case config.LinkModeAll:
		return wikiLink(converted)
	case config.LinkModeSelect:
		if r.hasOptions(key) {
			return wikiLink(converted)
		}
	}
	return converted
}

// hasOptions reports whether the relation is known and not free text.
func (r *relationResolver) hasOptions(key string) bool {
	def, ok := r.relations[key]
	return ok && !def.IsFreeText()
}

func wikiLink(s string) string {
	return `"[[` + s + `]]"`
}
