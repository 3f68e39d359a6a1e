package quota

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tier is a subscription level determining quota limits.
type Tier string

const (
	TierFree    Tier = "free-tier"
	TierCreator Tier = "creator-tier"
	TierPro     Tier = "pro-tier"
)

// tierLadder orders tiers from cheapest to most expensive; upgrade
// suggestions always point one rung up.
var tierLadder = []Tier{TierFree, TierCreator, TierPro}

// Limits holds the per-resource ceilings of a tier.
type Limits struct {
	Templates int64 `json:"templates" yaml:"templates"`
	Snippets  int64 `json:"snippets" yaml:"snippets"`
}

// DefaultTierLimits returns the built-in tier table.
func DefaultTierLimits() map[Tier]Limits {
	return map[Tier]Limits{
		TierFree:    {Templates: 1, Snippets: 2},
		TierCreator: {Templates: 5, Snippets: 10},
		TierPro:     {Templates: 100, Snippets: 100},
	}
}

// NextTier returns the next tier up the ladder, or false when t is already
// the top tier. Unknown tiers are treated as free-tier.
func NextTier(t Tier) (Tier, bool) {
	for i, tier := range tierLadder {
		if tier == t {
			if i == len(tierLadder)-1 {
				return "", false
			}
			return tierLadder[i+1], true
		}
	}
	return tierLadder[1], true
}

// tierFile is the YAML shape of an ops-editable tier definition file:
//
//	tiers:
//	  free-tier:
//	    templates: 1
//	    snippets: 2
type tierFile struct {
	Tiers map[Tier]Limits `yaml:"tiers"`
}

// LoadTierLimits reads tier limits from a YAML file. The result can be passed
// to WithTierLimits to override the built-in table.
func LoadTierLimits(path string) (map[Tier]Limits, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTierFile, err)
	}

	var f tierFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTierFile, err)
	}
	if len(f.Tiers) == 0 {
		return nil, fmt.Errorf("%w: no tiers defined", ErrInvalidTierFile)
	}
	for tier, limits := range f.Tiers {
		if limits.Templates < 0 || limits.Snippets < 0 {
			return nil, fmt.Errorf("%w: tier %q has negative limits", ErrInvalidTierFile, tier)
		}
	}
	return f.Tiers, nil
}
