package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ipLimiter pairs a per-client limiter with its last activity time so
// idle entries can be evicted.
type ipLimiter struct {
	limiter  *rate.Limiter
	mutex    sync.Mutex
	lastSeen time.Time
}

func (il *ipLimiter) allow() bool {
	il.mutex.Lock()
	il.lastSeen = time.Now()
	il.mutex.Unlock()
	return il.limiter.Allow()
}

// TwoTierRateLimiter enforces both a global request rate and a per-IP rate.
// A request passes only when both limiters have capacity.
type TwoTierRateLimiter struct {
	global     *rate.Limiter
	ipLimiters sync.Map // map[string]*ipLimiter
	perIPRate  rate.Limit
	perIPBurst int
}

// NewTwoTierRateLimiter creates a new two-tier rate limiter
func NewTwoTierRateLimiter(globalPerSec, globalBurst, perIPPerSec, perIPBurst int) *TwoTierRateLimiter {
	limiter := &TwoTierRateLimiter{
		global:     rate.NewLimiter(rate.Limit(globalPerSec), globalBurst),
		perIPRate:  rate.Limit(perIPPerSec),
		perIPBurst: perIPBurst,
	}

	// Evict idle per-IP limiters in the background
	go limiter.cleanupIPLimiters()

	return limiter
}

// Allow checks both global and per-IP rate limits
func (trl *TwoTierRateLimiter) Allow(clientIP string) bool {
	// Check per-IP limit first so one noisy client cannot drain the
	// global budget for everyone else
	if !trl.getOrCreateIPLimiter(clientIP).allow() {
		return false
	}

	return trl.global.Allow()
}

// Wait blocks until a token becomes available for the given IP
func (trl *TwoTierRateLimiter) Wait(ctx context.Context, clientIP string) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if trl.Allow(clientIP) {
				return nil
			}
		}
	}
}

// getOrCreateIPLimiter gets or creates the limiter for the given IP
func (trl *TwoTierRateLimiter) getOrCreateIPLimiter(clientIP string) *ipLimiter {
	if existing, ok := trl.ipLimiters.Load(clientIP); ok {
		return existing.(*ipLimiter)
	}

	created := &ipLimiter{
		limiter:  rate.NewLimiter(trl.perIPRate, trl.perIPBurst),
		lastSeen: time.Now(),
	}
	actual, _ := trl.ipLimiters.LoadOrStore(clientIP, created)

	return actual.(*ipLimiter)
}

// cleanupIPLimiters removes idle per-IP limiters to prevent unbounded growth
func (trl *TwoTierRateLimiter) cleanupIPLimiters() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-30 * time.Minute)

		trl.ipLimiters.Range(func(key, value interface{}) bool {
			il := value.(*ipLimiter)
			il.mutex.Lock()
			lastSeen := il.lastSeen
			il.mutex.Unlock()

			if lastSeen.Before(cutoff) {
				trl.ipLimiters.Delete(key)
			}
			return true
		})
	}
}
