// Package summary computes per-strain serology summaries from a
// pipeline result.
package summary

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"serovis/domain/titer"
)

// StrainSummary aggregates one strain's paired measurements.
type StrainSummary struct {
	Strain string `json:"strain"`
	// Pairs is the number of subjects with both Pre and Post observed.
	Pairs int `json:"pairs"`

	// Geometric mean titers on the linear scale (titers are log2, so
	// GMT = 2^mean).
	GMTPre  float64 `json:"gmt_pre"`
	GMTPost float64 `json:"gmt_post"`

	// Seroconversion is the share of subjects with a known four-fold
	// flag whose flag is true. Missing flags are excluded from the
	// denominator, never counted as no-rise.
	Seroconversion float64 `json:"seroconversion"`
	Rises          int     `json:"rises"`
	KnownFlags     int     `json:"known_flags"`

	// Paired t-test of Post - Pre differences. NaN when fewer than
	// two pairs.
	TStat  float64 `json:"t_stat"`
	PValue float64 `json:"p_value"`
}

// Summarize computes one summary per strain, in the pipeline's strain
// order.
func Summarize(res *titer.Result) []StrainSummary {
	type pair struct{ pre, post *float64 }
	pairs := make(map[string]map[string]*pair) // strain -> subject -> pair

	for _, r := range res.Plot.Rows {
		if r.Titer == nil {
			continue
		}
		bySubject, ok := pairs[r.Strain]
		if !ok {
			bySubject = make(map[string]*pair)
			pairs[r.Strain] = bySubject
		}
		p, ok := bySubject[r.Subject]
		if !ok {
			p = &pair{}
			bySubject[r.Subject] = p
		}
		switch r.Condition {
		case titer.CondPre:
			if p.pre == nil {
				p.pre = r.Titer
			}
		case titer.CondPost:
			if p.post == nil {
				p.post = r.Titer
			}
		}
	}

	strains := strainOrder(res)

	out := make([]StrainSummary, 0, len(strains))
	for _, strain := range strains {
		s := StrainSummary{Strain: strain, TStat: math.NaN(), PValue: math.NaN()}

		var pre, post, diff []float64
		subjects := make([]string, 0, len(pairs[strain]))
		for subject := range pairs[strain] {
			subjects = append(subjects, subject)
		}
		sort.Strings(subjects)
		for _, subject := range subjects {
			p := pairs[strain][subject]
			if p.pre == nil || p.post == nil {
				continue
			}
			pre = append(pre, *p.pre)
			post = append(post, *p.post)
			diff = append(diff, *p.post-*p.pre)
		}
		s.Pairs = len(diff)

		if len(pre) > 0 {
			meanPre, _ := stats.Mean(pre)
			meanPost, _ := stats.Mean(post)
			s.GMTPre = math.Pow(2, meanPre)
			s.GMTPost = math.Pow(2, meanPost)
		}

		for key, flag := range res.Flags {
			if key.Strain != strain || flag == nil {
				continue
			}
			s.KnownFlags++
			if *flag {
				s.Rises++
			}
		}
		if s.KnownFlags > 0 {
			s.Seroconversion = float64(s.Rises) / float64(s.KnownFlags)
		}

		if len(diff) >= 2 {
			s.TStat, s.PValue = pairedT(diff)
		}

		out = append(out, s)
	}
	return out
}

// pairedT runs a two-sided paired t-test on the differences.
func pairedT(diff []float64) (t, p float64) {
	mean, _ := stats.Mean(diff)
	sd, _ := stats.StandardDeviationSample(diff)
	n := float64(len(diff))
	if sd == 0 {
		if mean == 0 {
			return 0, 1
		}
		return math.Inf(sign(mean)), 0
	}
	t = mean / (sd / math.Sqrt(n))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 1}
	p = 2 * dist.Survival(math.Abs(t))
	return t, p
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}

// strainOrder returns the distinct strain labels of the plotting rows
// in first-appearance order, falling back to the input table keys.
func strainOrder(res *titer.Result) []string {
	var order []string
	seen := make(map[string]bool)
	for _, r := range res.Plot.Rows {
		if !seen[r.Strain] {
			seen[r.Strain] = true
			order = append(order, r.Strain)
		}
	}
	if len(order) == 0 {
		return res.Plot.Strains
	}
	return order
}
