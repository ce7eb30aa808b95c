package tablequery

import (
	"time"

	"github.com/vsinha/backoffice/pkg/domain/services/shelflife"
)

// StatusColumn derives a shelf-life status column from a record's dates. It
// sorts Ok < Warning < Expired. A zero reference is captured as the current
// time when the column is built, so one table pass sees one reference day.
func StatusColumn[T any](key string, classifier *shelflife.Classifier, expiry, arrival func(T) time.Time, reference time.Time) Column[T] {
	if classifier == nil {
		classifier = shelflife.Default()
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return Column[T]{
		Key: key,
		Extract: func(record T) any {
			var a time.Time
			if arrival != nil {
				a = arrival(record)
			}
			return int(classifier.Classify(expiry(record), a, reference))
		},
	}
}
