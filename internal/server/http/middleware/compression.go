package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultBodyLimit caps request payloads, measured after decompression.
const DefaultBodyLimit = 1 << 20

// DecompressRequest inflates gzip request bodies and caps every body at limit bytes.
func DecompressRequest(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		limit = DefaultBodyLimit
	}
	return func(c *gin.Context) {
		body := c.Request.Body
		if gzipEncoded(c.Request) {
			inflated, err := gzipBody(body)
			if err != nil {
				abort(c, http.StatusBadRequest, "malformed gzip body")
				return
			}
			defer inflated.Close()
			c.Request.Header.Del("Content-Encoding")
			body = inflated
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, body, limit)
		c.Next()
	}
}

func gzipEncoded(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Content-Encoding"), ",") {
		if strings.EqualFold(strings.TrimSpace(enc), "gzip") {
			return true
		}
	}
	return false
}

type gzipReadCloser struct {
	*gzip.Reader
	source io.Closer
}

func (g gzipReadCloser) Close() error {
	err := g.Reader.Close()
	if srcErr := g.source.Close(); err == nil {
		err = srcErr
	}
	return err
}

func gzipBody(body io.ReadCloser) (io.ReadCloser, error) {
	reader, err := gzip.NewReader(body)
	if err != nil {
		return nil, err
	}
	return gzipReadCloser{Reader: reader, source: body}, nil
}
