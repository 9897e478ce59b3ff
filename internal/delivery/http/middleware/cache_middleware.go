package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/infrastructure/cache"

	"github.com/sirupsen/logrus"
)

const CacheHeader = "X-Cache"

// CacheMiddleware serves repeated GET requests from the response cache.
// Cache errors never fail a request.
type CacheMiddleware struct {
	store cache.ResponseCache
	ttl   time.Duration
	log   *logrus.Logger
}

func NewCacheMiddleware(store cache.ResponseCache, ttl time.Duration, log *logrus.Logger) *CacheMiddleware {
	return &CacheMiddleware{
		store: store,
		ttl:   ttl,
		log:   log,
	}
}

// Cache stores successful GET responses keyed by path and query.
func (m *CacheMiddleware) Cache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := r.URL.RequestURI()
		if body, ok, err := m.store.Get(r.Context(), key); err != nil {
			m.log.Warnf("Failed to read response cache: %+v", err)
		} else if ok {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set(CacheHeader, "HIT")
			w.WriteHeader(http.StatusOK)
			w.Write(body)
			return
		}

		w.Header().Set(CacheHeader, "MISS")
		rec := &recorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status == http.StatusOK {
			if err := m.store.Set(r.Context(), key, rec.body.Bytes(), m.ttl); err != nil {
				m.log.Warnf("Failed to write response cache: %+v", err)
			}
		}
	})
}

// Invalidate drops cached responses after a successful write request.
func (m *CacheMiddleware) Invalidate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		rec := &recorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status >= 200 && rec.status < 300 {
			if err := m.store.Flush(r.Context()); err != nil {
				m.log.Warnf("Failed to flush response cache: %+v", err)
			}
		}
	})
}

// recorder forwards the response while keeping a copy of status and body.
type recorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *recorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *recorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
