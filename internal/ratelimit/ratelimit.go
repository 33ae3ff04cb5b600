// File: internal/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Config holds rate limiting configuration.
type Config struct {
	WindowSize    time.Duration // time window for counting attempts
	MaxAttempts   int           // maximum attempts per window
	CleanupPeriod time.Duration // how often stale records are dropped
	BanDuration   time.Duration // lockout length after exceeding the limit
}

// DefaultAuthConfig limits credential guessing on the login endpoint.
func DefaultAuthConfig() *Config {
	return &Config{
		WindowSize:    15 * time.Minute,
		MaxAttempts:   5,
		CleanupPeriod: 30 * time.Minute,
		BanDuration:   30 * time.Minute,
	}
}

// DefaultTurnConfig bounds how many AI turns one caller can start per minute.
func DefaultTurnConfig() *Config {
	return &Config{
		WindowSize:    time.Minute,
		MaxAttempts:   20,
		CleanupPeriod: 10 * time.Minute,
		BanDuration:   5 * time.Minute,
	}
}

type attemptRecord struct {
	Count     int
	FirstSeen time.Time
	LastSeen  time.Time
	BannedAt  *time.Time
}

// RateLimitInfo describes the outcome of an Allow check.
type RateLimitInfo struct {
	Allowed    bool
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
	Banned     bool
}

// MemoryRateLimiter is a fixed-window in-memory limiter with a ban phase.
type MemoryRateLimiter struct {
	config   *Config
	attempts map[string]*attemptRecord
	mu       sync.Mutex
	stopCh   chan struct{}
}

func NewMemoryRateLimiter(config *Config) *MemoryRateLimiter {
	limiter := &MemoryRateLimiter{
		config:   config,
		attempts: make(map[string]*attemptRecord),
		stopCh:   make(chan struct{}),
	}
	go limiter.cleanupLoop()
	return limiter
}

// Allow records one attempt for identifier and reports whether it may proceed.
func (rl *MemoryRateLimiter) Allow(identifier string) (bool, *RateLimitInfo) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	record, exists := rl.attempts[identifier]

	if !exists {
		rl.attempts[identifier] = &attemptRecord{Count: 1, FirstSeen: now, LastSeen: now}
		return true, &RateLimitInfo{
			Allowed:   true,
			Remaining: rl.config.MaxAttempts - 1,
			ResetTime: now.Add(rl.config.WindowSize),
		}
	}

	if record.BannedAt != nil && now.Sub(*record.BannedAt) < rl.config.BanDuration {
		remainingBan := rl.config.BanDuration - now.Sub(*record.BannedAt)
		return false, &RateLimitInfo{
			ResetTime:  record.BannedAt.Add(rl.config.BanDuration),
			RetryAfter: remainingBan,
			Banned:     true,
		}
	}

	if now.Sub(record.FirstSeen) > rl.config.WindowSize {
		record.Count = 1
		record.FirstSeen = now
		record.LastSeen = now
		record.BannedAt = nil
		return true, &RateLimitInfo{
			Allowed:   true,
			Remaining: rl.config.MaxAttempts - 1,
			ResetTime: now.Add(rl.config.WindowSize),
		}
	}

	record.Count++
	record.LastSeen = now

	if record.Count > rl.config.MaxAttempts {
		banTime := now
		record.BannedAt = &banTime
		return false, &RateLimitInfo{
			ResetTime:  now.Add(rl.config.BanDuration),
			RetryAfter: rl.config.BanDuration,
			Banned:     true,
		}
	}

	return true, &RateLimitInfo{
		Allowed:   true,
		Remaining: rl.config.MaxAttempts - record.Count,
		ResetTime: record.FirstSeen.Add(rl.config.WindowSize),
	}
}

// RecordSuccess clears the attempt history for identifier.
func (rl *MemoryRateLimiter) RecordSuccess(identifier string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.attempts, identifier)
}

func (rl *MemoryRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *MemoryRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for identifier, record := range rl.attempts {
		windowExpired := now.Sub(record.FirstSeen) > rl.config.WindowSize
		banExpired := record.BannedAt != nil && now.Sub(*record.BannedAt) > rl.config.BanDuration

		if (windowExpired && record.BannedAt == nil) || banExpired {
			delete(rl.attempts, identifier)
		}
	}
}

// Close stops the cleanup goroutine.
func (rl *MemoryRateLimiter) Close() {
	close(rl.stopCh)
}

// GetClientIP extracts the real client IP, honoring proxy headers.
func GetClientIP(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(ips[0]); ip != "" {
			return ip
		}
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
