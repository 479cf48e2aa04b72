package repository

import (
	"strings"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern 用户输入中的 % 与 _ 按字面匹配
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func prefixPattern(term string) string {
	return likeEscaper.Replace(term) + "%"
}

// caseInsensitiveLike postgres 用 ILIKE；sqlite 的 LIKE 仅对 ASCII 忽略大小写
func caseInsensitiveLike(db *gorm.DB, column string) string {
	op := "LIKE"
	if db != nil && db.Dialector != nil && strings.HasPrefix(strings.ToLower(db.Dialector.Name()), "postgres") {
		op = "ILIKE"
	}
	return column + " " + op + ` ? ESCAPE '\'`
}

// matchAny 任一列命中 pattern 即保留该行
func matchAny(pattern string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		var parts []string
		var args []interface{}
		for _, column := range columns {
			if column = strings.TrimSpace(column); column == "" {
				continue
			}
			parts = append(parts, caseInsensitiveLike(q, column))
			args = append(args, pattern)
		}
		if len(parts) == 0 {
			return q
		}
		return q.Where(strings.Join(parts, " OR "), args...)
	}
}
