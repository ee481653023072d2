package algomancer

import (
	"net/http"

	crerr "github.com/cockroachdb/errors"
)

const maxLoggedBody = 256

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errCatalogTransient)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func uniqueNonEmpty(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func chunk(ids []string, size int) [][]string {
	out := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		out = append(out, ids[start:end])
	}
	return out
}

func abbreviate(raw []byte) string {
	if len(raw) <= maxLoggedBody {
		return string(raw)
	}
	return string(raw[:maxLoggedBody]) + "..."
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
