package element

import (
	"sort"
	"strings"
)

type policyKind int

const (
	policyAll policyKind = iota
	policyNone
	policySet
)

// PermittedChildren decides which element types may be declared inside an
// element. The zero value permits every type.
type PermittedChildren struct {
	kind  policyKind
	types map[string]struct{}
}

// PermitAll permits any child type.
func PermitAll() PermittedChildren {
	return PermittedChildren{kind: policyAll}
}

// PermitNone permits no children.
func PermitNone() PermittedChildren {
	return PermittedChildren{kind: policyNone}
}

// PermitOnly permits the listed type names. Names are normalised with
// TypeName. The keywords "all" and "none" select the matching policies when
// passed alone.
func PermitOnly(typeNames ...string) PermittedChildren {
	if len(typeNames) == 1 {
		switch strings.TrimSpace(typeNames[0]) {
		case "all":
			return PermitAll()
		case "none":
			return PermitNone()
		}
	}
	set := make(map[string]struct{}, len(typeNames))
	for _, name := range typeNames {
		if normalized := TypeName(name); normalized != "" {
			set[normalized] = struct{}{}
		}
	}
	return PermittedChildren{kind: policySet, types: set}
}

// Permits reports whether typeName may be declared as a child.
func (p PermittedChildren) Permits(typeName string) bool {
	switch p.kind {
	case policyNone:
		return false
	case policySet:
		_, ok := p.types[TypeName(typeName)]
		return ok
	default:
		return true
	}
}

// IsAll reports whether p is the allow-all policy.
func (p PermittedChildren) IsAll() bool { return p.kind == policyAll }

// IsNone reports whether p is the allow-none policy.
func (p PermittedChildren) IsNone() bool { return p.kind == policyNone }

// Types returns the sorted allow-set, or nil for the all/none policies.
func (p PermittedChildren) Types() []string {
	if p.kind != policySet {
		return nil
	}
	out := make([]string, 0, len(p.types))
	for name := range p.types {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (p PermittedChildren) String() string {
	switch p.kind {
	case policyNone:
		return "none"
	case policySet:
		return "[" + strings.Join(p.Types(), ", ") + "]"
	default:
		return "all"
	}
}
