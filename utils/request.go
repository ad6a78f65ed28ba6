package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// NewClient builds the shared resty client. Retry policy lives in the fetch
// orchestrator, not here, so a failed attempt surfaces immediately.
func NewClient(timeout time.Duration, userAgent string) *resty.Client {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetLogger(disableLogger{})
	client.SetHeader("Accept-Charset", "utf-8")
	client.SetHeader("User-Agent", userAgent)
	return client
}

type disableLogger struct{}

func (d disableLogger) Errorf(string, ...interface{}) {}
func (d disableLogger) Warnf(string, ...interface{})  {}
func (d disableLogger) Debugf(string, ...interface{}) {}
