package profile

import (
	domprof "github.com/kailas-cloud/visearch/internal/domain/profile"
	"github.com/kailas-cloud/visearch/internal/domain/rule"
)

// profileDoc is the stored JSON shape. Zero-valued weight fields mean
// "use the engine default" so partially written profiles stay usable.
type profileDoc struct {
	ImageWeight    float64   `json:"image_weight"`
	TextWeight     float64   `json:"text_weight"`
	Rerank         rerankDoc `json:"rerank"`
	Lambda         *float64  `json:"lambda,omitempty"`
	PoolMultiplier int       `json:"pool_multiplier"`
	Degraded       string    `json:"degraded_policy"`
	Rules          []ruleDoc `json:"rules,omitempty"`
}

type rerankDoc struct {
	Exact        float64 `json:"exact"`
	Region       float64 `json:"region"`
	Prior        float64 `json:"prior"`
	LevelPenalty float64 `json:"level_penalty"`
}

type ruleDoc struct {
	Name      string  `json:"name"`
	Condition string  `json:"condition"`
	Effect    string  `json:"effect"`
	Amount    float64 `json:"amount"`
}

func (d profileDoc) toDomain(orgID string) (domprof.Profile, error) {
	p := domprof.Default(orgID)

	if d.ImageWeight > 0 {
		p.ImageWeight = d.ImageWeight
	}
	if d.TextWeight > 0 {
		p.TextWeight = d.TextWeight
	}
	if d.Rerank.Exact > 0 {
		p.Rerank = domprof.RerankWeights{
			Exact:        d.Rerank.Exact,
			Region:       d.Rerank.Region,
			Prior:        d.Rerank.Prior,
			LevelPenalty: d.Rerank.LevelPenalty,
		}
	}
	if d.Lambda != nil {
		p.Lambda = *d.Lambda
	}
	if d.PoolMultiplier > 0 {
		p.PoolMultiplier = d.PoolMultiplier
	}
	if d.Degraded != "" {
		p.Degraded = domprof.DegradedPolicy(d.Degraded)
	}

	if len(d.Rules) > 0 {
		rules := make([]rule.Rule, 0, len(d.Rules))
		for _, rd := range d.Rules {
			r, err := rule.New(rd.Name, rd.Condition, rule.Effect(rd.Effect), rd.Amount)
			if err != nil {
				return domprof.Profile{}, err
			}
			rules = append(rules, r)
		}
		p.Rules = rules
	}

	if err := p.Validate(); err != nil {
		return domprof.Profile{}, err
	}
	return p, nil
}

func fromDomain(p domprof.Profile) profileDoc {
	lambda := p.Lambda
	doc := profileDoc{
		ImageWeight: p.ImageWeight,
		TextWeight:  p.TextWeight,
		Rerank: rerankDoc{
			Exact:        p.Rerank.Exact,
			Region:       p.Rerank.Region,
			Prior:        p.Rerank.Prior,
			LevelPenalty: p.Rerank.LevelPenalty,
		},
		Lambda:         &lambda,
		PoolMultiplier: p.PoolMultiplier,
		Degraded:       string(p.Degraded),
	}
	for _, r := range p.Rules {
		doc.Rules = append(doc.Rules, ruleDoc{
			Name:      r.Name(),
			Condition: r.Condition(),
			Effect:    string(r.Effect()),
			Amount:    r.Amount(),
		})
	}
	return doc
}
