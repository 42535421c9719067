package bank

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlRow mirrors the workbook columns. Scalars of any type decode into the
// string pointers; null or absent keys stay nil.
type yamlRow struct {
	ID            *string `yaml:"id"`
	Question      *string `yaml:"question"`
	OptionA       *string `yaml:"option_a"`
	OptionB       *string `yaml:"option_b"`
	OptionC       *string `yaml:"option_c"`
	OptionD       *string `yaml:"option_d"`
	CorrectOption *string `yaml:"correct_option"`
}

// readYAML reads a document whose top-level keys are partition names. A tier
// is found under its own name first, then under its configured sheet name.
func readYAML(ctx context.Context, path string, sheets map[Difficulty]string) (map[Difficulty][]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc map[string][]yamlRow
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	out := make(map[Difficulty][]Row, len(Tiers))
	for _, d := range Tiers {
		raw, ok := doc[string(d)]
		if !ok {
			raw, ok = doc[sheets[d]]
		}
		if !ok {
			return nil, fmt.Errorf("%w: key %q for %s", ErrMissingPartition, d, d)
		}
		rows := make([]Row, 0, len(raw))
		for i, r := range raw {
			rows = append(rows, Row{
				Line:          i + 1,
				ID:            r.ID,
				Question:      r.Question,
				Options:       [OptionCount]*string{r.OptionA, r.OptionB, r.OptionC, r.OptionD},
				CorrectOption: r.CorrectOption,
			})
		}
		out[d] = rows
	}
	return out, nil
}
