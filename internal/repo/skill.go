package repo

import (
	"context"
	"database/sql"
	"encoding/json"
)

// SkillState is one entity's progress in one skill (spec §3).
type SkillState struct {
	EntityID      string
	SkillName     string
	Level         int
	XP            int
	Unlocked      bool
	Tags          []string
	UnlockedPerks []string
	ResourceType  string // "" when the skill grants no resource pool
	Buffs         []string
}

// SkillRepository persists per-(entity,skill) rows.
type SkillRepository struct {
	db *DB
}

// NewSkillRepository constructs a SkillRepository over db.
func NewSkillRepository(db *DB) *SkillRepository {
	return &SkillRepository{db: db}
}

var skillColumns = []string{"entity_id", "skill_name", "level", "xp", "unlocked",
	"tags", "unlocked_perks", "resource_type", "buffs"}

func scanSkillState(scan func(dest ...any) error) (*SkillState, error) {
	var s SkillState
	var resourceType sql.NullString
	var tags, perks, buffs string
	if err := scan(&s.EntityID, &s.SkillName, &s.Level, &s.XP, &s.Unlocked,
		&tags, &perks, &resourceType, &buffs); err != nil {
		return nil, err
	}
	s.ResourceType = resourceType.String
	if err := json.Unmarshal([]byte(tags), &s.Tags); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(perks), &s.UnlockedPerks); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(buffs), &s.Buffs); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save upserts a skill state row.
func (r *SkillRepository) Save(ctx context.Context, s SkillState) error {
	tags, err := json.Marshal(s.Tags)
	if err != nil {
		return wrapErr("SkillRepository.Save", err)
	}
	perks, err := json.Marshal(s.UnlockedPerks)
	if err != nil {
		return wrapErr("SkillRepository.Save", err)
	}
	buffs, err := json.Marshal(s.Buffs)
	if err != nil {
		return wrapErr("SkillRepository.Save", err)
	}
	var resourceType any
	if s.ResourceType != "" {
		resourceType = s.ResourceType
	}
	sqlStr, args, err := builder.Insert("skill_state").
		Columns(skillColumns...).
		Values(s.EntityID, s.SkillName, s.Level, s.XP, s.Unlocked, string(tags), string(perks), resourceType, string(buffs)).
		Suffix(`ON CONFLICT(entity_id, skill_name) DO UPDATE SET
			level=excluded.level, xp=excluded.xp, unlocked=excluded.unlocked, tags=excluded.tags,
			unlocked_perks=excluded.unlocked_perks, resource_type=excluded.resource_type, buffs=excluded.buffs`).
		ToSql()
	if err != nil {
		return wrapErr("SkillRepository.Save", err)
	}
	return execUpdate(ctx, r.db, "SkillRepository.Save", sqlStr, args)
}

// FindByEntityAndSkill returns one skill state, or (nil, nil) if unset.
func (r *SkillRepository) FindByEntityAndSkill(ctx context.Context, entityID, skillName string) (*SkillState, error) {
	sqlStr, args, err := builder.Select(skillColumns...).From("skill_state").
		Where("entity_id = ? AND skill_name = ?", entityID, skillName).ToSql()
	if err != nil {
		return nil, wrapErr("SkillRepository.FindByEntityAndSkill", err)
	}
	row := r.db.Conn().QueryRowContext(ctx, sqlStr, args...)
	s, err := scanSkillState(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, wrapErr("SkillRepository.FindByEntityAndSkill", err)
	}
	return s, nil
}

// FindByEntity returns every skill state for entityID, ordered by skill name.
func (r *SkillRepository) FindByEntity(ctx context.Context, entityID string) ([]*SkillState, error) {
	sqlStr, args, err := builder.Select(skillColumns...).From("skill_state").
		Where("entity_id = ?", entityID).OrderBy("skill_name").ToSql()
	if err != nil {
		return nil, wrapErr("SkillRepository.FindByEntity", err)
	}
	rows, err := r.db.Conn().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, wrapErr("SkillRepository.FindByEntity", err)
	}
	defer rows.Close()

	var out []*SkillState
	for rows.Next() {
		s, err := scanSkillState(rows.Scan)
		if err != nil {
			return nil, wrapErr("SkillRepository.FindByEntity", err)
		}
		out = append(out, s)
	}
	return out, wrapErr("SkillRepository.FindByEntity", rows.Err())
}

// SkillComponentRepository persists an aggregated skill-component blob keyed
// by entity, for fast whole-component loads (spec §3's SkillComponent).
type SkillComponentRepository struct {
	db *DB
}

// NewSkillComponentRepository constructs a SkillComponentRepository over db.
func NewSkillComponentRepository(db *DB) *SkillComponentRepository {
	return &SkillComponentRepository{db: db}
}

// Save upserts the serialized skill component for entityID.
func (r *SkillComponentRepository) Save(ctx context.Context, entityID string, skills map[string]SkillState) error {
	b, err := json.Marshal(skills)
	if err != nil {
		return wrapErr("SkillComponentRepository.Save", err)
	}
	sqlStr, args, err := builder.Insert("skill_component").
		Columns("entity_id", "skills").
		Values(entityID, string(b)).
		Suffix("ON CONFLICT(entity_id) DO UPDATE SET skills=excluded.skills").
		ToSql()
	if err != nil {
		return wrapErr("SkillComponentRepository.Save", err)
	}
	return execUpdate(ctx, r.db, "SkillComponentRepository.Save", sqlStr, args)
}

// Get returns the deserialized skill component for entityID, or (nil, nil).
func (r *SkillComponentRepository) Get(ctx context.Context, entityID string) (map[string]SkillState, error) {
	sqlStr, args, err := builder.Select("skills").From("skill_component").
		Where("entity_id = ?", entityID).ToSql()
	if err != nil {
		return nil, wrapErr("SkillComponentRepository.Get", err)
	}
	var blob string
	row := r.db.Conn().QueryRowContext(ctx, sqlStr, args...)
	if err := row.Scan(&blob); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, wrapErr("SkillComponentRepository.Get", err)
	}
	var out map[string]SkillState
	if err := json.Unmarshal([]byte(blob), &out); err != nil {
		return nil, wrapErr("SkillComponentRepository.Get", err)
	}
	return out, nil
}

// SkillEventKind classifies an append-only SkillEvent log entry.
type SkillEventKind string

// Skill event kinds (spec §4.2, §4.7 unlock methods).
const (
	SkillEventAttempt      SkillEventKind = "Attempt"
	SkillEventObservation  SkillEventKind = "Observation"
	SkillEventTraining     SkillEventKind = "Training"
	SkillEventPrerequisite SkillEventKind = "Prerequisite"
	SkillEventLevelUp      SkillEventKind = "LevelUp"
	SkillEventPerkUnlock   SkillEventKind = "PerkUnlock"
)

// SkillEvent is one append-only log entry for a skill's history.
type SkillEvent struct {
	ID         string
	EntityID   string
	SkillName  string
	Kind       SkillEventKind
	Detail     string
	OccurredAt int64
}

// Append inserts a new skill event.
func (r *SkillRepository) Append(ctx context.Context, e SkillEvent) error {
	sqlStr, args, err := builder.Insert("skill_event").
		Columns("id", "entity_id", "skill_name", "kind", "detail", "occurred_at").
		Values(e.ID, e.EntityID, e.SkillName, string(e.Kind), e.Detail, e.OccurredAt).
		ToSql()
	if err != nil {
		return wrapErr("SkillRepository.Append", err)
	}
	return execUpdate(ctx, r.db, "SkillRepository.Append", sqlStr, args)
}

// Events returns entityID's skill events in reverse-chronological order
// (spec §4.2), optionally limited to 0 for unlimited.
func (r *SkillRepository) Events(ctx context.Context, entityID string, limit int) ([]*SkillEvent, error) {
	q := builder.Select("id", "entity_id", "skill_name", "kind", "detail", "occurred_at").
		From("skill_event").Where("entity_id = ?", entityID).OrderBy("occurred_at DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, wrapErr("SkillRepository.Events", err)
	}
	rows, err := r.db.Conn().QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, wrapErr("SkillRepository.Events", err)
	}
	defer rows.Close()

	var out []*SkillEvent
	for rows.Next() {
		var e SkillEvent
		var kind string
		if err := rows.Scan(&e.ID, &e.EntityID, &e.SkillName, &kind, &e.Detail, &e.OccurredAt); err != nil {
			return nil, wrapErr("SkillRepository.Events", err)
		}
		e.Kind = SkillEventKind(kind)
		out = append(out, &e)
	}
	return out, wrapErr("SkillRepository.Events", rows.Err())
}
