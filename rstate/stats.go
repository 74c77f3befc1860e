// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstate

import "log/slog"

var cacheCounters struct {
	composeHits, composeMisses int64
	invertHits, invertMisses   int64
	gcRemovedTotal             int64
}

// CacheStats is a snapshot of the state cache's size and hit/miss
// counters, returned by [Stats] for [pandacore.dev/engine/statsrv] and
// any other diagnostic consumer.
type CacheStats struct {
	Size           int
	ComposeHits    int64
	ComposeMisses  int64
	InvertHits     int64
	InvertMisses   int64
	GCRemovedTotal int64
}

// Stats returns the current cache size and cumulative hit/miss counts.
func Stats() CacheStats {
	globalLock.Lock()
	defer globalLock.Unlock()
	return statsLocked()
}

func statsLocked() CacheStats {
	return CacheStats{
		Size:           len(allStates),
		ComposeHits:    cacheCounters.composeHits,
		ComposeMisses:  cacheCounters.composeMisses,
		InvertHits:     cacheCounters.invertHits,
		InvertMisses:   cacheCounters.invertMisses,
		GCRemovedTotal: cacheCounters.gcRemovedTotal,
	}
}

var lastReported CacheStats

// MaybeReport logs the current cache stats at info level if they
// changed since the last call, so a host render loop can call this
// once per frame without spamming the log while the cache is idle.
func MaybeReport() {
	globalLock.Lock()
	cur := statsLocked()
	globalLock.Unlock()

	if cur == lastReported {
		return
	}
	slog.Info("rstate: cache stats",
		"size", cur.Size,
		"compose_hits", cur.ComposeHits, "compose_misses", cur.ComposeMisses,
		"invert_hits", cur.InvertHits, "invert_misses", cur.InvertMisses,
		"gc_removed_total", cur.GCRemovedTotal,
	)
	lastReported = cur
}
