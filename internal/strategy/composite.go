package strategy

import "impacted/internal/shared/util"

// Composite runs every configured sub-strategy with identical inputs and
// unions their outputs. It satisfies Strategy itself, so composites nest.
type Composite struct {
	strategies []Strategy
}

func NewComposite(strategies ...Strategy) *Composite {
	return &Composite{strategies: strategies}
}

func (c *Composite) FindImpactedTests(in Inputs) ([]string, error) {
	var all []string
	for _, s := range c.strategies {
		found, err := s.FindImpactedTests(in)
		if err != nil {
			return nil, err
		}
		all = append(all, found...)
	}
	return util.SortedUnique(all), nil
}
