package middleware

import (
	"net/http"
	"os"
	"strconv"
)

// MaxBodyMiddleware caps request bodies via MAX_BODY_BYTES. The default of
// 8 MiB leaves room for base64-encoded receipt uploads, which arrive inline
// in the proof JSON.
func MaxBodyMiddleware(next http.Handler) http.Handler {
	max := int64(8 << 20)
	if s := os.Getenv("MAX_BODY_BYTES"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil && v > 0 {
			max = v
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, max)
		next.ServeHTTP(w, r)
	})
}
