package importfile

import (
	"fmt"
	"sort"
	"strings"
)

// Input is one raw favorite input with the group it came from
type Input struct {
	Group string
	Raw   string
}

// Inputs flattens config into raw inputs in file order.
// Groups sharing a list item are visited by name so the result is stable.
// Blank inputs are skipped.
func Inputs(config Config) ([]Input, error) {
	inputs := make([]Input, 0)

	for _, group := range config {
		names := make([]string, 0, len(group))
		for name := range group {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			for _, entry := range group[name] {
				raw := strings.TrimSpace(entry.Input)
				if raw == "" {
					continue
				}
				inputs = append(inputs, Input{Group: name, Raw: raw})
			}
		}
	}

	if len(inputs) == 0 {
		return nil, fmt.Errorf("no inputs found in import file")
	}

	return inputs, nil
}
