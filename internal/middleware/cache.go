package middleware

import (
    "bytes"
    "context"
    "encoding/binary"
    "encoding/json"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/invoice-dashboard/internal/cache"
)

// captureWriter captures response body/status while forwarding to the client.
type captureWriter struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
    size   int64
    limit  int64
}

func (cw *captureWriter) WriteHeader(code int) { cw.status = code; cw.ResponseWriter.WriteHeader(code) }

func (cw *captureWriter) Write(b []byte) (int, error) {
    if cw.limit <= 0 || cw.size+int64(len(b)) <= cw.limit {
        cw.buf.Write(b)
    }
    cw.size += int64(len(b))
    return cw.ResponseWriter.Write(b)
}

// overflowed reports whether the body outgrew the capture limit.
func (cw *captureWriter) overflowed() bool { return cw.limit > 0 && cw.size > cw.limit }

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
    hdrJSON, err := json.Marshal(header)
    if err != nil {
        return nil, err
    }
    out := make([]byte, 8+len(hdrJSON)+len(body))
    binary.BigEndian.PutUint32(out[0:4], uint32(status))
    binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
    copy(out[8:8+len(hdrJSON)], hdrJSON)
    copy(out[8+len(hdrJSON):], body)
    return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
    if len(bs) < 8 {
        return 0, nil, nil, false
    }
    status = int(binary.BigEndian.Uint32(bs[0:4]))
    hlen := int(binary.BigEndian.Uint32(bs[4:8]))
    if hlen < 0 || 8+hlen > len(bs) {
        return 0, nil, nil, false
    }
    hdr := make(http.Header)
    if hlen > 0 {
        if err := json.Unmarshal(bs[8:8+hlen], &hdr); err != nil {
            return 0, nil, nil, false
        }
    }
    return status, hdr, bs[8+hlen:], true
}

// ViewCache serves GET responses of the wrapped routes from the view store
// and fills it on a 200 miss.  Entries are keyed by request path and raw
// query, so InvalidateView(path) drops every page and search of a listing.
// A response is stored under the generation read before it was rendered,
// so one overtaken by an invalidation is never served.
// A nil store disables caching.  Redis failures fall through to the
// handler.
func ViewCache(store *cache.ViewStore, maxBodyBytes int, log logrus.FieldLogger) echo.MiddlewareFunc {
    if store == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    maxBody := int64(maxBodyBytes)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            r := c.Request()
            if r.Method != http.MethodGet {
                return next(c)
            }
            path, rawQuery := r.URL.Path, r.URL.RawQuery

            gen, err := store.Generation(r.Context(), path)
            if err != nil {
                log.WithFields(logrus.Fields{"view": path, "error": err}).Warn("view cache read failed")
                return next(c)
            }
            bs, hit, err := store.Get(r.Context(), path, gen, rawQuery)
            if err != nil {
                log.WithFields(logrus.Fields{"view": path, "error": err}).Warn("view cache read failed")
            }
            if hit {
                if status, hdr, body, ok := decodePayload(bs); ok {
                    for k, vals := range hdr {
                        if strings.EqualFold(k, echo.HeaderContentLength) {
                            continue
                        }
                        for _, v := range vals {
                            c.Response().Header().Add(k, v)
                        }
                    }
                    c.Response().Header().Set("X-Cache", "HIT")
                    c.Response().WriteHeader(status)
                    if len(body) > 0 {
                        _, _ = c.Response().Write(body)
                    }
                    return nil
                }
            }

            cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }
            if cw.status != http.StatusOK || cw.overflowed() {
                return nil
            }

            hdr := c.Response().Header().Clone()
            hdr.Del("X-Cache")
            payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes())
            if err != nil {
                return nil
            }
            // The request context may already be cancelled once the client
            // has its response.
            if err := store.Set(context.WithoutCancel(r.Context()), path, gen, rawQuery, payload); err != nil {
                log.WithFields(logrus.Fields{"view": path, "error": err}).Warn("view cache write failed")
            }
            return nil
        }
    }
}
