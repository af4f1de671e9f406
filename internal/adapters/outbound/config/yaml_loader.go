// Package config loads per-site policy overrides from .pageforge.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pageforge/pageforge/internal/domain"
)

const fileName = ".pageforge.yaml"

// PolicyOverrides mirrors the tunable Policy fields. Pointer types
// distinguish "not specified" from an explicit zero.
type PolicyOverrides struct {
	ScriptAllowlist   []string            `yaml:"script_allowlist,omitempty"`
	CommonCDNOrigins  []string            `yaml:"common_cdn_origins,omitempty"`
	AcceptScore       *int                `yaml:"accept_score,omitempty"`
	MinRawChars       *int                `yaml:"min_raw_chars,omitempty"`
	MinVisibleChars   *int                `yaml:"min_visible_chars,omitempty"`
	TitleMaxLen       *int                `yaml:"title_max_len,omitempty"`
	DescriptionMaxLen *int                `yaml:"description_max_len,omitempty"`
	DefaultLang       string              `yaml:"default_lang,omitempty"`
	LargeInlineScript *int                `yaml:"large_inline_script,omitempty"`
	MaxInlineStyles   *int                `yaml:"max_inline_styles,omitempty"`
	PageSections      map[string][]string `yaml:"page_sections,omitempty"`
}

// YAMLLoader implements domain.PolicyLoader by overlaying .pageforge.yaml
// on the default policy.
type YAMLLoader struct{}

func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .pageforge.yaml from sitePath. A missing file yields the
// default policy.
func (l *YAMLLoader) Load(sitePath string) (domain.Policy, error) {
	policy := domain.DefaultPolicy()

	data, err := os.ReadFile(filepath.Join(sitePath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return policy, nil
		}
		return domain.Policy{}, err
	}

	var overrides PolicyOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return domain.Policy{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	policy = merge(policy, overrides)
	if err := policy.Validate(); err != nil {
		return domain.Policy{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}
	return policy, nil
}

// merge overlays explicit overrides on top of the defaults.
func merge(base domain.Policy, o PolicyOverrides) domain.Policy {
	if len(o.ScriptAllowlist) > 0 {
		base.ScriptAllowlist = o.ScriptAllowlist
	}
	if len(o.CommonCDNOrigins) > 0 {
		base.CommonCDNOrigins = o.CommonCDNOrigins
	}
	if o.AcceptScore != nil {
		base.AcceptScore = *o.AcceptScore
	}
	if o.MinRawChars != nil {
		base.MinRawChars = *o.MinRawChars
	}
	if o.MinVisibleChars != nil {
		base.MinVisibleChars = *o.MinVisibleChars
	}
	if o.TitleMaxLen != nil {
		base.TitleMaxLen = *o.TitleMaxLen
	}
	if o.DescriptionMaxLen != nil {
		base.DescriptionMaxLen = *o.DescriptionMaxLen
	}
	if o.DefaultLang != "" {
		base.DefaultLang = o.DefaultLang
	}
	if o.LargeInlineScript != nil {
		base.LargeInlineScript = *o.LargeInlineScript
	}
	if o.MaxInlineStyles != nil {
		base.MaxInlineStyles = *o.MaxInlineStyles
	}
	if len(o.PageSections) > 0 {
		base.PageSections = o.PageSections
	}
	return base
}
