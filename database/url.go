package database

import (
	"fmt"
	"strings"
)

// ConstructDatabaseURL appends the database name to a server URL.
// Existing query parameters are preserved and sslmode=disable is added when no sslmode is set.
func ConstructDatabaseURL(baseURL, databaseName string) string {
	if databaseName == "" {
		return baseURL
	}

	base, query, hasQuery := strings.Cut(strings.TrimRight(baseURL, "/"), "?")
	base = strings.TrimRight(base, "/")

	params := []string{}
	if hasQuery && query != "" {
		params = append(params, query)
	}
	if !strings.Contains(query, "sslmode=") {
		params = append(params, "sslmode=disable")
	}

	return fmt.Sprintf("%s/%s?%s", base, databaseName, strings.Join(params, "&"))
}
