package engine

import (
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/accesslog"
)

// RecoveryResult summarizes one recovery pass.
type RecoveryResult struct {
	Recovered     []int    `json:"recovered"`
	Lost          []int    `json:"lost"`
	FilesAffected []string `json:"filesAffected"`
}

// RecoverCorruptedBlocks visits every Corrupted block in ascending order and
// either restores it (with the configured probability) or frees it and drops
// it from its owner. Each attempt is logged as a single-block recover entry.
func (e *Engine) RecoverCorruptedBlocks() RecoveryResult {
	res := RecoveryResult{
		Recovered:     []int{},
		Lost:          []int{},
		FilesAffected: []string{},
	}
	seen := make(map[string]struct{})

	for _, id := range e.disk.IDsWithStatus(Corrupted) {
		ownerID := e.disk.Owner(id)
		var name string
		owner, hasOwner := e.table.Lookup(ownerID)
		if hasOwner {
			name = owner.Name
		}

		now := e.now()
		ok := e.rng.Float64() < e.cfg.RecoveryProbability
		if ok {
			_ = e.disk.Restore(id)
			res.Recovered = append(res.Recovered, id)
		} else {
			_ = e.disk.Release(id)
			res.Lost = append(res.Lost, id)
			if hasOwner && owner.RemoveBlock(id) {
				owner.SizeBytes = e.sizeOf(owner.Blocks)
				owner.ModifiedAt = now
			}
		}
		e.appendLog(now, accesslog.OpRecover, ownerID, name, []int{id}, ok)

		if ownerID == "" {
			continue
		}
		if _, dup := seen[ownerID]; !dup {
			seen[ownerID] = struct{}{}
			res.FilesAffected = append(res.FilesAffected, ownerID)
		}
	}
	return res
}
