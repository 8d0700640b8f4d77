package contests

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// WinnerLabel marks the winning submission(s) in any contest.
const WinnerLabel = "winner"

//go:embed contests.yml
var defaultContests []byte

// Contest drives one tab of the showcase page.
type Contest struct {
	ID              string    `yaml:"id"`
	Name            string    `yaml:"name"`
	Label           string    `yaml:"label"`
	TitlePrefix     string    `yaml:"title_prefix"`
	Template        string    `yaml:"template"`
	Description     string    `yaml:"description"`
	Prize           string    `yaml:"prize"`
	Deadline        time.Time `yaml:"deadline"`
	DeadlineDisplay string    `yaml:"deadline_display"`
	Icon            string    `yaml:"icon"`
}

type contestFile struct {
	Contests []Contest `yaml:"contests"`
}

// Load reads the contest configuration from path, or the embedded defaults
// when path is empty.
func Load(path string) ([]Contest, error) {
	raw := defaultContests
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}

	var file contestFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, err
	}
	if len(file.Contests) == 0 {
		return nil, fmt.Errorf("no contests configured")
	}
	for i, c := range file.Contests {
		if c.ID == "" || c.Label == "" {
			return nil, fmt.Errorf("contest %d: id and label are required", i)
		}
	}
	return file.Contests, nil
}
