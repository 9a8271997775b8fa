package skill

import (
	"github.com/kirkdiggler/dungeonmaster/internal/core"
	"github.com/kirkdiggler/dungeonmaster/internal/repo"
)

// Component is the in-memory Skill attribute: every skill an entity has
// touched, keyed by skill name (spec §3's SkillComponent). repo.SkillState
// is reused directly rather than a parallel struct since its shape already
// matches what the engine needs.
type Component struct {
	skills map[string]repo.SkillState
}

// Kind implements core.Component.
func (Component) Kind() core.ComponentKind { return core.ComponentSkill }

var _ core.Component = Component{}

// NewComponent builds a Component from persisted skill states.
func NewComponent(skills map[string]repo.SkillState) Component {
	if skills == nil {
		skills = make(map[string]repo.SkillState)
	}
	return Component{skills: skills}
}

// Get returns the named skill's state, or a fresh zero-level unlocked=false
// state if the entity has never touched this skill.
func (c Component) Get(name string) repo.SkillState {
	if s, ok := c.skills[name]; ok {
		return s
	}
	return repo.SkillState{SkillName: name}
}

// With returns a copy of c with s's skill replaced/added.
func (c Component) With(s repo.SkillState) Component {
	next := make(map[string]repo.SkillState, len(c.skills)+1)
	for k, v := range c.skills {
		next[k] = v
	}
	next[s.SkillName] = s
	return Component{skills: next}
}

// All returns every skill state on this component.
func (c Component) All() map[string]repo.SkillState {
	return c.skills
}
