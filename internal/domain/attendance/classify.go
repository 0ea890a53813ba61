package attendance

import (
	"math"
	"time"

	"github.com/timecheck-hr/attendance-backend-go/internal/domain/schedule"
)

// Classification is pure: the functions here are deterministic over their
// inputs, and the service layer owns persistence and locking.

// DetermineKind decides whether the next record for a day is an entry or an
// exit, given the day's records so far. Exits pair off against entries, so a
// worker can clock in and out multiple times per day.
func DetermineKind(sameDay []Record) Kind {
	if len(sameDay) == 0 {
		return KindEntry
	}
	var entries, exits int
	for _, r := range sameDay {
		if r.Status.IsEntryType() {
			entries++
		} else if r.Status == StatusExit {
			exits++
		}
	}
	if exits >= entries {
		return KindEntry
	}
	return KindExit
}

// ClassifyLateness buckets a minutes-late value against the rule table.
// Early or exact arrivals are on time; lateness beyond every configured
// bucket is an absence. Rules must be non-overlapping; order is irrelevant.
func ClassifyLateness(rules []ToleranceRule, minutesLate int) Status {
	if minutesLate <= 0 {
		return StatusOnTime
	}
	for _, r := range rules {
		if minutesLate >= r.MinMinutes && minutesLate <= r.MaxMinutes {
			return r.Status
		}
	}
	return StatusAbsence
}

// MinutesLate is the floored difference between a check-in timestamp and the
// expected entry time anchored on the same calendar date, so only the
// time-of-day differs.
func MinutesLate(ts time.Time, expected schedule.TimeOfDay) int {
	anchored := expected.At(ts, ts.Location())
	return int(math.Floor(ts.Sub(anchored).Minutes()))
}

// ClassifyEntry computes the status for an entry-type record. Non-working and
// unscheduled days are never penalized.
func ClassifyEntry(sched *schedule.Schedule, rules []ToleranceRule, ts time.Time) Status {
	entry, expectation := schedule.Resolve(sched, ts)
	if expectation != schedule.ExpectationWorking {
		return StatusOnTime
	}
	return ClassifyLateness(rules, MinutesLate(ts, entry))
}

// ValidateRuleSet rejects a candidate rule that intersects any existing rule
// on the inclusive [MinMinutes, MaxMinutes] interval. excludeID skips the
// rule being updated.
func ValidateRuleSet(existing []ToleranceRule, candidate ToleranceRule, excludeID string) error {
	for _, r := range existing {
		if r.ID == excludeID {
			continue
		}
		if candidate.Overlaps(r) {
			return ErrOverlappingRule
		}
	}
	return nil
}
