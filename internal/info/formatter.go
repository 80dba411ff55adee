package info

import (
	"fmt"
	"strings"
)

var plainStripper = strings.NewReplacer("**", "", "__", "", "`", "")

// Formatter renders help text for a platform, filling in game placeholders
type Formatter struct {
	vars *strings.Replacer
}

// NewFormatter creates a formatter. vars maps placeholders such as VarNoun to their values.
func NewFormatter(vars map[string]string) *Formatter {
	pairs := make([]string, 0, len(vars)*2)
	for _, k := range sortedKeys(vars) {
		pairs = append(pairs, k, vars[k])
	}
	return &Formatter{vars: strings.NewReplacer(pairs...)}
}

// Render fills placeholders and adapts markup to the platform
func (f *Formatter) Render(text, platform string) string {
	text = strings.TrimSpace(f.vars.Replace(text))
	if strings.ToLower(platform) == PlatformPlain {
		return plainStripper.Replace(text)
	}
	return text
}

// FormatFeature formats a feature overview with the commands it covers
func (f *Formatter) FormatFeature(feature *Feature, platform string) string {
	var b strings.Builder
	b.WriteString(f.Render(feature.Description, platform))

	var commands []string
	for _, name := range feature.TopicNames() {
		if cmd := feature.Topics[name].Command; cmd != "" {
			commands = append(commands, f.command(cmd, platform))
		}
	}
	if len(commands) > 0 {
		b.WriteString("\n\n")
		b.WriteString(strings.Join(commands, "\n"))
	}
	return b.String()
}

// FormatTopic formats a single topic
func (f *Formatter) FormatTopic(topic *Topic, platform string) string {
	desc := f.Render(topic.Description, platform)
	if topic.Command == "" {
		return desc
	}
	return f.command(topic.Command, platform) + "\n" + desc
}

// FormatFeatureList formats the list of features
func (f *Formatter) FormatFeatureList(features []*Feature, platform string) string {
	names := make([]string, 0, len(features))
	for _, feature := range features {
		names = append(names, feature.Name)
	}

	if strings.ToLower(platform) == PlatformPlain {
		return fmt.Sprintf("Help topics: %s", strings.Join(names, ", "))
	}
	return fmt.Sprintf("**Help topics**\nAvailable: %s\n\nUse `/help topic` for details.", strings.Join(names, ", "))
}

func (f *Formatter) command(cmd, platform string) string {
	if strings.ToLower(platform) == PlatformPlain {
		return cmd
	}
	return "**" + cmd + "**"
}
