package domain

import "time"

// LeasePolicy decides how long a granted lease keeps an account busy.
//
// An unbounded policy never lets a lease lapse on its own; the holder has to
// release it. A bounded policy treats the recorded grant time plus TTL as the
// last instant the lease is still held (inclusive), after which any caller may
// take the account over.
type LeasePolicy struct {
	ttl     time.Duration
	bounded bool
}

// UnboundedLeases returns the policy used when no TTL is configured.
func UnboundedLeases() LeasePolicy { return LeasePolicy{} }

// LeasesExpireAfter returns a policy where leases lapse once ttl has elapsed.
func LeasesExpireAfter(ttl time.Duration) LeasePolicy {
	return LeasePolicy{ttl: ttl, bounded: true}
}

// TTL returns the configured lifetime and whether one is set at all.
func (p LeasePolicy) TTL() (time.Duration, bool) { return p.ttl, p.bounded }

// Held reports whether a lease granted at grantedAt still holds at now.
func (p LeasePolicy) Held(grantedAt, now time.Time) bool {
	if !p.bounded {
		return true
	}
	return now.Sub(grantedAt) <= p.ttl
}

// Reclaimable reports whether an account may be granted to a new caller at now.
func (p LeasePolicy) Reclaimable(a Account, now time.Time) bool {
	if a.LeaseUntil == nil {
		return true
	}
	return !p.Held(*a.LeaseUntil, now)
}

// ReclaimBefore returns the cutoff used by conditional writes: a lease granted
// strictly before the cutoff has lapsed. The second value is false for
// unbounded policies, where only unleased accounts may be claimed.
func (p LeasePolicy) ReclaimBefore(now time.Time) (time.Time, bool) {
	if !p.bounded {
		return time.Time{}, false
	}
	return now.Add(-p.ttl), true
}

func (p LeasePolicy) String() string {
	if !p.bounded {
		return "unbounded"
	}
	return p.ttl.String()
}
