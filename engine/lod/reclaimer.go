package lod

import "log"

// DefaultCyclesBetweenReclaim is the number of completed cycles between bulk reclaims.
const DefaultCyclesBetweenReclaim = 5

// Reclaimer counts completed scheduler cycles and issues one bulk reclaim request to
// the host resource system every configured number of cycles.
type Reclaimer struct {
	host      ResourceHost
	threshold int
	counter   int
	issued    int
}

// NewReclaimer creates a Reclaimer. A nil host makes every request a no-op that is
// still counted; a non-positive threshold falls back to DefaultCyclesBetweenReclaim.
//
// Parameters:
//   - host: the resource system to reclaim from
//   - cyclesBetweenReclaim: cycles per reclaim request
//
// Returns:
//   - *Reclaimer: the new reclaimer
func NewReclaimer(host ResourceHost, cyclesBetweenReclaim int) *Reclaimer {
	if cyclesBetweenReclaim <= 0 {
		cyclesBetweenReclaim = DefaultCyclesBetweenReclaim
	}
	return &Reclaimer{
		host:      host,
		threshold: cyclesBetweenReclaim,
	}
}

// OnCycleComplete records one completed cycle and issues the reclaim when the
// threshold is reached. The request is not awaited.
//
// Returns:
//   - bool: true if a reclaim was issued
func (r *Reclaimer) OnCycleComplete() bool {
	r.counter++
	if r.counter < r.threshold {
		return false
	}
	r.counter = 0
	r.issued++
	if r.host != nil {
		log.Printf("[LOD] issuing bulk resource reclaim #%d", r.issued)
		r.host.ReclaimUnused()
	}
	return true
}

// Pending returns the number of cycles counted since the last reclaim.
func (r *Reclaimer) Pending() int {
	return r.counter
}

// Issued returns the total number of reclaims issued.
func (r *Reclaimer) Issued() int {
	return r.issued
}
