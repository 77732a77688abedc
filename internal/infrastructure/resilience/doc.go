/*
Package resilience provides circuit breakers for outbound fetches.

# Overview

A Breaker guards one upstream. A Group hands out one Breaker per key so the
scan fetcher can isolate target hosts from each other: a site that keeps
timing out is short-circuited without affecting scans of other sites.
A Group tracks at most DefaultGroupLimit keys and reports only aggregate
counts through Summary.

# Usage

	group := resilience.NewGroup("fetch", resilience.Settings{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	page, err := resilience.Execute(group.Get(host), func() (*Page, error) {
		return fetch(ctx, target)
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failure]
	                                           |
	                                           v
	                                         Open
*/
package resilience
