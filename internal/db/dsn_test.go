package db

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDSN(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"url form untouched", "postgres://u:p@localhost:5432/app", "postgres://u:p@localhost:5432/app"},
		{"quoted url", `"postgres://u:p@localhost/app"`, "postgres://u:p@localhost/app"},
		{"kv form gets sslmode", "host=localhost user=app dbname=app", "host=localhost user=app dbname=app sslmode=disable"},
		{"kv form keeps sslmode", "host=localhost sslmode=require", "host=localhost sslmode=require"},
		{"kv whitespace collapsed", "  host=localhost   user=app  ", "host=localhost user=app sslmode=disable"},
		{"sqlite path untouched", "file:practice.db", "file:practice.db"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, NormalizeDSN(tc.in))
		})
	}
}
