// Package catalog holds the read-only list of known providers that users pick
// from when adding records. The simulator never reads it: selecting a provider
// only pre-fills the name and category of a new record.
package catalog

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/lemove/lemove/sim"
)

// Provider is one catalog entry.
type Provider struct {
	ID       string
	Name     string
	Category sim.Category
	Domain   string // used to build the logo url when LogoURL is empty
	LogoURL  string
}

// Input returns the record input that selecting p pre-fills.
func (p Provider) Input() sim.RecordInput {
	return sim.RecordInput{ProviderID: p.ID, Name: p.Name, Category: p.Category}
}

// Logo returns the provider's logo url: the explicit LogoURL if set, else a
// brandfetch url derived from Domain, else "".
func (p Provider) Logo(cssPx int, opts LogoOptions) string {
	if p.LogoURL != "" {
		return p.LogoURL
	}
	if p.Domain == "" {
		return ""
	}
	return LogoURL(p.Domain, cssPx, opts)
}

var byID = func() map[string]Provider {
	m := make(map[string]Provider, len(providers))
	for _, p := range providers {
		m[p.ID] = p
	}
	return m
}()

// All returns every provider in catalog order.
func All() []Provider {
	out := make([]Provider, len(providers))
	copy(out, providers)
	return out
}

// Lookup returns the provider with the given id.
func Lookup(id string) (Provider, bool) {
	p, ok := byID[id]
	return p, ok
}

// ByCategory returns the providers of one category in catalog order.
func ByCategory(category sim.Category) []Provider {
	var out []Provider
	for _, p := range providers {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Search returns providers whose name or id contains query, case-insensitively.
// An empty query matches everything.
func Search(query string) []Provider {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return All()
	}
	var out []Provider
	for _, p := range providers {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(p.ID, q) {
			out = append(out, p)
		}
	}
	return out
}

// Resolve maps a selection of provider ids to record inputs, in selection
// order. Unknown ids are returned separately.
func Resolve(ids []string) (inputs []sim.RecordInput, unknown []string) {
	for _, id := range ids {
		p, ok := Lookup(id)
		if !ok {
			unknown = append(unknown, id)
			continue
		}
		inputs = append(inputs, p.Input())
	}
	return inputs, unknown
}

// LogoOptions tunes the brandfetch logo url.
type LogoOptions struct {
	ClientID string  // brandfetch client id, sent as the c parameter when set
	DPR      float64 // device pixel ratio for raster logos (0 means 2)
	SVG      bool    // request the vector logo instead of a sized raster
}

const brandfetchCDN = "https://cdn.brandfetch.io"

// LogoURL builds the brandfetch CDN url for domain. Raster urls carry the
// pixel size cssPx*DPR rounded up; SVG urls carry format=svg instead.
func LogoURL(domain string, cssPx int, opts LogoOptions) string {
	var path string
	if opts.SVG {
		path = fmt.Sprintf("%s/%s/logo", brandfetchCDN, domain)
	} else {
		dpr := opts.DPR
		if dpr <= 0 {
			dpr = 2
		}
		px := int(math.Ceil(float64(cssPx) * dpr))
		path = fmt.Sprintf("%s/%s/w/%d/h/%d/logo", brandfetchCDN, domain, px, px)
	}

	params := url.Values{}
	if opts.ClientID != "" {
		params.Set("c", opts.ClientID)
	}
	if opts.SVG {
		params.Set("format", "svg")
	}
	if qs := params.Encode(); qs != "" {
		return path + "?" + qs
	}
	return path
}

// FallbackLogoURL is the clearbit logo url tried when brandfetch fails.
func FallbackLogoURL(domain string) string {
	return "https://logo.clearbit.com/" + domain
}
