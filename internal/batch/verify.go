package batch

import (
	"github.com/roach88/covergen/internal/article"
	"github.com/roach88/covergen/internal/cover"
)

// Status classifies a verification check.
type Status string

const (
	StatusMatch    Status = "match"
	StatusMismatch Status = "mismatch"
	// StatusMissing means no baseline is recorded for the slug.
	StatusMissing Status = "missing"
	// StatusInvalid means the record itself could not be decoded.
	StatusInvalid Status = "invalid"
)

// Check is the verification outcome for one record.
type Check struct {
	Position int    `json:"position"`
	Slug     string `json:"slug"`
	Status   Status `json:"status"`
	Want     string `json:"want,omitempty"`
	Got      string `json:"got,omitempty"`
	Err      error  `json:"-"`
}

// Report is the outcome of a verification pass.
type Report struct {
	Checks   []Check `json:"checks"`
	Matched  int     `json:"matched"`
	Mismatch int     `json:"mismatched"`
	Missing  int     `json:"missing"`
	Invalid  int     `json:"invalid"`
}

// OK reports whether every record matched its baseline.
func (r *Report) OK() bool {
	return r.Mismatch == 0 && r.Missing == 0 && r.Invalid == 0
}

// Verify recomposes every task and compares its digest with baseline, a
// map from slug to recorded digest. Records without a slug get the same
// placeholder Run would give them.
func Verify(c *cover.Composer, tasks []article.Task, baseline map[string]string) *Report {
	if c == nil {
		c = cover.New()
	}
	rep := &Report{Checks: make([]Check, 0, len(tasks))}
	for i, t := range tasks {
		pos := t.Position
		if pos == 0 {
			pos = i + 1
		}
		m := t.Metadata.WithSlug(t.Metadata.SlugOr(article.PlaceholderSlug(pos)))
		chk := Check{Position: pos, Slug: m.Slug}

		switch {
		case t.Err != nil:
			chk.Status = StatusInvalid
			chk.Err = &RecordError{Position: pos, Err: t.Err}
			rep.Invalid++
		default:
			chk.Got = c.Compose(m).Digest()
			want, ok := baseline[m.Slug]
			chk.Want = want
			switch {
			case !ok:
				chk.Status = StatusMissing
				rep.Missing++
			case want == chk.Got:
				chk.Status = StatusMatch
				rep.Matched++
			default:
				chk.Status = StatusMismatch
				rep.Mismatch++
			}
		}
		rep.Checks = append(rep.Checks, chk)
	}
	return rep
}
