// Package css parses CSS declaration blocks used for layout style defaults
// and item style overrides.
package css

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses inline CSS declaration lists.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// ParseDeclarations parses "prop: value; ..." text. Malformed declarations
// are skipped, the rest is returned.
func (p *Parser) ParseDeclarations(data []byte, source ...string) Declarations {
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS declarations", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	decls := make(Declarations, 0, 8)
	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), true)
	for {
		gt, _, name := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if !parser.HasParseError() {
				if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
					p.log.Debug("CSS read error", zap.Error(err))
				}
				return decls
			}
			p.log.Debug("Skipping malformed CSS declaration", zap.Error(parser.Err()))
		case css.DeclarationGrammar:
			values := parser.Values()
			if len(values) == 0 {
				continue
			}
			val, important := parsePropertyValue(values)
			decls = append(decls, Declaration{
				Property:  string(name),
				Value:     val,
				Important: important,
			})
		case css.CustomPropertyGrammar:
			// custom properties (--var) are not used by renderers
			continue
		default:
			p.log.Debug("Unexpected CSS grammar in declaration list", zap.Stringer("grammar", gt))
		}
	}
}

// ParseValue parses single property value.
func (p *Parser) ParseValue(property, value string) Value {
	decls := p.ParseDeclarations([]byte(property + ":" + value))
	if v, ok := decls.Get(property); ok {
		return v
	}
	return Value{Raw: strings.TrimSpace(value), Keyword: strings.TrimSpace(value)}
}

// parsePropertyValue converts CSS tokens to a Value, reporting trailing
// !important separately.
func parsePropertyValue(tokens []css.Token) (Value, bool) {
	var important bool
	if n := len(tokens); n >= 2 &&
		tokens[n-2].TokenType == css.DelimToken && string(tokens[n-2].Data) == "!" &&
		tokens[n-1].TokenType == css.IdentToken && strings.EqualFold(string(tokens[n-1].Data), "important") {
		important = true
		tokens = tokens[:n-2]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].TokenType == css.WhitespaceToken {
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) == 0 {
		return Value{}, important
	}

	var sb strings.Builder
	for _, t := range tokens {
		switch t.TokenType {
		case css.WhitespaceToken:
			sb.WriteByte(' ')
		case css.CommaToken:
			sb.WriteString(", ")
		default:
			sb.Write(t.Data)
		}
	}
	raw := strings.TrimSpace(sb.String())

	val := Value{Raw: raw}
	if len(tokens) == 1 {
		t := tokens[0]
		switch t.TokenType {
		case css.DimensionToken:
			val.Value, val.Unit = parseDimension(string(t.Data))
		case css.PercentageToken:
			val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
			val.Unit = "%"
		case css.NumberToken:
			val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
		case css.IdentToken:
			val.Keyword = strings.ToLower(string(t.Data))
		case css.StringToken:
			val.Keyword = unquote(string(t.Data))
		case css.HashToken:
			val.Keyword = string(t.Data)
		default:
			val.Keyword = raw
		}
		return val, important
	}

	// functions (rgb(), url(), linear-gradient()) and multi-value properties
	val.Keyword = raw
	return val, important
}

// parseDimension splits "12px" into 12 and "px".
func parseDimension(s string) (float64, string) {
	i := 0
	for i < len(s) {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' || ((c == 'e' || c == 'E') && i > 0 && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9') {
			i++
			continue
		}
		break
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, ""
	}
	return v, strings.ToLower(s[i:])
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
