// Package capability answers the role half of an authorization decision with
// a casbin enforcer. The role/action table is a YAML document; the default
// is embedded and CAPABILITY_POLICY_PATH may point at a replacement.
package capability

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"freight/internal/core/domain/model/actor"
	"freight/internal/core/domain/model/amendment"
	"freight/internal/core/domain/services"
	"freight/internal/metrics"
	"freight/internal/pkg/errs"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only policy document version understood.
const SupportedVersion = 1

const modelText = `
[request_definition]
r = sub, act

[policy_definition]
p = sub, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.act == p.act
`

//go:embed policy.yaml
var defaultDocument []byte

var _ services.CapabilityPolicy = (*Policy)(nil)

// Document is the YAML shape of a capability table.
type Document struct {
	Version      int                 `yaml:"version"`
	Capabilities map[string][]string `yaml:"capabilities"`
}

// Policy is a services.CapabilityPolicy backed by casbin.
type Policy struct {
	enforcer *casbin.Enforcer
	logger   *slog.Logger
}

// Load reads the document at path, or the embedded default when path is empty.
func Load(path string, logger *slog.Logger) (*Policy, error) {
	if path == "" {
		return NewPolicy(defaultDocument, logger)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("capability: read policy %s: %w", path, err)
	}
	return NewPolicy(raw, logger)
}

// Default returns the embedded policy.
func Default(logger *slog.Logger) (*Policy, error) {
	return NewPolicy(defaultDocument, logger)
}

// NewPolicy parses raw and loads every (role, action) pair into a fresh
// enforcer. Unknown roles or actions reject the whole document, and so does
// any action not granted to exactly one role.
func NewPolicy(raw []byte, logger *slog.Logger) (*Policy, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("capability policy", err)
	}
	if doc.Version != SupportedVersion {
		return nil, errs.NewVersionIsInvalidError("capability policy",
			fmt.Errorf("version %d is not supported, want %d", doc.Version, SupportedVersion))
	}

	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("capability: model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("capability: failed to initialize enforcer: %w", err)
	}

	grants := make(map[amendment.Action][]string, len(amendment.AllActions()))
	rules := 0
	for roleName, actionNames := range doc.Capabilities {
		role, roleErr := actor.RoleFromString(roleName)
		if roleErr != nil {
			return nil, roleErr
		}
		for _, actionName := range actionNames {
			action, actionErr := amendment.ActionFromString(actionName)
			if actionErr != nil {
				return nil, actionErr
			}
			added, addErr := enforcer.AddPolicy(role.String(), action.String())
			if addErr != nil {
				return nil, fmt.Errorf("capability: add %s/%s: %w", role, action, addErr)
			}
			if added {
				grants[action] = append(grants[action], role.String())
				rules++
			}
		}
	}
	if err := checkSingleOwner(grants); err != nil {
		return nil, err
	}

	logger = logger.With("component", "capability")
	logger.Info("capability policy loaded", "version", doc.Version, "rules", rules)

	return &Policy{enforcer: enforcer, logger: logger}, nil
}

// Allows reports whether role may perform action at all.
func (p *Policy) Allows(role actor.Role, action amendment.Action) (bool, error) {
	if err := role.Validate(); err != nil {
		return false, err
	}
	if err := action.Validate(); err != nil {
		return false, err
	}

	allowed, err := p.enforcer.Enforce(role.String(), action.String())
	if err != nil {
		return false, fmt.Errorf("capability: enforce failed: %w", err)
	}

	metrics.RecordCapabilityDecision(role.String(), action.String(), allowed)
	if !allowed {
		p.logger.Debug("capability denied", "role", role.String(), "action", action.String())
	}
	return allowed, nil
}

// checkSingleOwner requires every action to be granted to exactly one role.
func checkSingleOwner(grants map[amendment.Action][]string) error {
	var problems []string
	for _, action := range amendment.AllActions() {
		roles := grants[action]
		switch len(roles) {
		case 1:
		case 0:
			problems = append(problems, fmt.Sprintf("%s is granted to no role", action))
		default:
			sort.Strings(roles)
			problems = append(problems, fmt.Sprintf("%s is granted to %s", action, strings.Join(roles, ", ")))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("capability policy",
		fmt.Errorf("each action needs exactly one role: %s", strings.Join(problems, "; ")))
}
