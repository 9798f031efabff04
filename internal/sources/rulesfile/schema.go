package rulesfile

// RulesConfig is the root of a rules.yaml seed file.
type RulesConfig struct {
	Rules []RuleEntry `yaml:"rules"`
}

// RuleEntry is one classification rule as written in rules.yaml.
// Matchers are all optional but at least one must be present for the
// entry to be usable.
type RuleEntry struct {
	ID           string   `yaml:"id"`
	Label        string   `yaml:"label"`
	Category     string   `yaml:"category"`
	Tags         []string `yaml:"tags"`
	HostIncludes []string `yaml:"hostIncludes"`
	PathIncludes []string `yaml:"pathIncludes"`
	Keywords     []string `yaml:"keywords"`
	Regex        string   `yaml:"regex"`
}
