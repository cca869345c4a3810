package middleware

import (
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "github.com/sirupsen/logrus"
)

// RequestLogger writes one logrus entry per request with method, uri,
// status and latency.  Server errors are logged at error level.
func RequestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
    return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
        LogMethod:  true,
        LogURI:     true,
        LogStatus:  true,
        LogLatency: true,
        LogError:   true,
        LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
            entry := log.WithFields(logrus.Fields{
                "method":  v.Method,
                "uri":     v.URI,
                "status":  v.Status,
                "latency": v.Latency.String(),
            })
            if s, ok := SessionFrom(c); ok {
                entry = entry.WithField("user_id", s.UserID)
            }
            if v.Error != nil {
                entry = entry.WithField("error", v.Error)
            }
            if v.Status >= 500 {
                entry.Error("request")
                return nil
            }
            entry.Info("request")
            return nil
        },
    })
}
