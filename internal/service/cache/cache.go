package cache

import "time"

// TextCache is a minimal cache API storing rendered text with TTL. Used to
// keep the latest digest warm between scheduled runs; in-process only, no
// state survives a restart.
type TextCache interface {
	GetText(key string) (string, bool)
	SetText(key, value string, ttl time.Duration)
}
