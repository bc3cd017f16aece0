// Package bloom provides probabilistic website deduplication for batch
// crawls. A batch may cover hundreds of thousands of CSV rows; the filter
// answers "was this site already crawled" in constant space. False
// positives skip a site that was never crawled; false negatives cannot
// happen.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"

	"github.com/passivleads/leadscout"
)

// Dedup tracks which websites a batch run has already crawled. Websites
// are normalized before testing so trailing slashes and fragments do not
// defeat deduplication.
type Dedup struct {
	f *bloom.BloomFilter
}

// NewDedup creates a Dedup sized for n expected websites with the given
// false positive rate.
func NewDedup(n uint, fpRate float64) *Dedup {
	return &Dedup{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Visit records a website and reports whether it was new. A false return
// means the site was (almost certainly) crawled earlier in the batch.
func (d *Dedup) Visit(website string) bool {
	return !d.f.TestAndAddString(leadscout.Normalize(website))
}

// Seen returns true if the website might already be recorded.
func (d *Dedup) Seen(website string) bool {
	return d.f.TestString(leadscout.Normalize(website))
}

// EstimatedCount returns the approximate number of recorded websites.
func (d *Dedup) EstimatedCount() uint {
	return uint(d.f.ApproximatedSize())
}
