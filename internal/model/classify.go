package model

import "time"

// Classification is the time-derived state of a task. It is never
// persisted: "now" advances on its own, so it is recomputed on every read.
type Classification struct {
	// Ended reports that the task's end time has passed.
	Ended bool

	// InProgress reports an incomplete task whose window contains now.
	InProgress bool

	// Due reports a task whose start time has arrived or which is already
	// completed. Due tasks form the denominator of the completion
	// percentage.
	Due bool
}

// Classify derives the classification of a task at the given instant.
// It is a pure function of (startTime, endTime, completed, now).
func Classify(t Task, now time.Time) Classification {
	return Classification{
		Ended:      t.EndTime.Before(now),
		InProgress: !t.Completed && !now.Before(t.StartTime) && !now.After(t.EndTime),
		Due:        t.Completed || !t.StartTime.After(now),
	}
}
