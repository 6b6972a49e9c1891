// Package query arma statements SQL parametrizados a partir de mapas de campos
// y filtros. No ejecuta nada: eso es trabajo de storage/sqlrepo.
package query

import (
	"fmt"
	"regexp"
	"strings"
)

// Dialect decide cómo se escriben los placeholders.
type Dialect int

const (
	Postgres Dialect = iota // $1, $2, ...
	SQLite                  // ?
)

func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postgres", "postgresql", "pgx", "":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return Postgres, fmt.Errorf("unknown sql dialect %q", s)
	}
}

func (d Dialect) String() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

// Placeholder devuelve el placeholder para el argumento n (1-based).
func (d Dialect) Placeholder(n int) string {
	if d == SQLite {
		return "?"
	}
	return fmt.Sprintf("$%d", n)
}

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidIdent indica si s puede ir tal cual como nombre de tabla/columna.
func ValidIdent(s string) bool {
	return identRe.MatchString(s)
}

func checkIdent(kind, s string) error {
	if !ValidIdent(s) {
		return fmt.Errorf("query: invalid %s identifier %q", kind, s)
	}
	return nil
}
