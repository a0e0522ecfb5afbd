package repository

import (
	"os"
	"strings"
	"time"
)

// tableFromEnv resolves a DynamoDB table name; blank values fall back to def.
func tableFromEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Timestamps are stored as UTC RFC3339Nano strings so GSI sort keys order
// lexically the same way they order in time.
func formatStoredTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseStoredTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
