package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kirkdiggler/dungeonmaster/internal/intent"
)

// ExpandLore satisfies worldgen.LoreExpander (spec §4.3).
func (c *Collaborator) ExpandLore(ctx context.Context, prompt string) (string, error) {
	return c.chatCompletion(ctx, "Write one or two sentences of evocative dungeon lore, grounded in this "+
		"ancestor context, for the room a player is about to enter:\n\n"+prompt)
}

// MatchDirection satisfies nav.LLMDirectionMatcher (spec §4.4 phase 3):
// given a free-form phrase and the canonical exit directions, return the
// single best match or the "NONE" sentinel.
func (c *Collaborator) MatchDirection(ctx context.Context, phrase string, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "NONE", nil
	}
	prompt := fmt.Sprintf(
		"A player typed the direction phrase %q. The only valid exits from this room are: %s.\n"+
			"Reply with exactly one of those exit strings if the phrase clearly means one of them, "+
			"or reply with the single word NONE if it does not match any of them. Reply with nothing else.",
		phrase, strings.Join(candidates, ", "))

	reply, err := c.chatCompletion(ctx, prompt)
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	for _, candidate := range candidates {
		if strings.EqualFold(reply, candidate) {
			return candidate, nil
		}
	}
	return "NONE", nil
}

// ClassifyIntent satisfies intent.Classifier (spec §4.5 layer 2): prompts
// for a single closed-set intent kind and returns the raw JSON the caller
// re-validates before trusting.
func (c *Collaborator) ClassifyIntent(ctx context.Context, phrase string, ictx intent.IntentContext) (string, error) {
	prompt := fmt.Sprintf(
		"Classify this player command into exactly one intent kind from the closed set: %s.\n"+
			"Command: %q\n"+
			"Visible exits: %s\n"+
			"Visible entities: %s\n"+
			"Carried items: %s\n"+
			"Reply with ONLY a JSON object of the shape {\"kind\":\"<one of the set above or Unknown>\",\"args\":[...]}. "+
			"No other text.",
		strings.Join(knownIntentKinds(), ", "), phrase,
		strings.Join(ictx.Exits, ", "), strings.Join(ictx.Entities, ", "), strings.Join(ictx.Inventory, ", "))

	reply, err := c.chatCompletion(ctx, prompt)
	if err != nil {
		return "", err
	}
	return extractJSONObject(reply), nil
}

// ExpandKnowledge satisfies social.KnowledgeExpander (spec §4.8): asks for
// an in-character answer from an NPC given its personality and disposition.
func (c *Collaborator) ExpandKnowledge(ctx context.Context, spaceContext, personality string, traits []string, disposition int, topic string) (string, error) {
	prompt := fmt.Sprintf(
		"You are an NPC with personality %q and traits [%s], currently standing in: %s.\n"+
			"Your disposition toward the asking player is %d (negative is hostile, positive is friendly).\n"+
			"In one or two in-character sentences, answer what you know about: %q.",
		personality, strings.Join(traits, ", "), spaceContext, disposition, topic)
	return c.chatCompletion(ctx, prompt)
}

// CreateEmbedding satisfies memory.Embedder (spec §4.10).
func (c *Collaborator) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return c.createEmbedding(ctx, text)
}

func knownIntentKinds() []string {
	kinds := []intent.Kind{
		intent.Move, intent.Look, intent.Search, intent.Interact, intent.Take, intent.TakeAll,
		intent.Drop, intent.Give, intent.Equip, intent.Unequip, intent.Use, intent.Attack, intent.Flee,
		intent.Talk, intent.Say, intent.AskQuestion, intent.Emote, intent.Persuade, intent.Intimidate,
		intent.Check, intent.UseSkill, intent.TrainSkill, intent.ChoosePerk, intent.ViewSkills,
		intent.Quests, intent.AcceptQuest, intent.AbandonQuest, intent.ClaimReward, intent.Inventory,
		intent.Craft, intent.BuyItem, intent.SellItem, intent.ListStock, intent.Pickpocket, intent.Plant,
		intent.Loot, intent.Save, intent.Load, intent.Help, intent.Quit, intent.Unknown,
	}
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

// extractJSONObject trims any prose a model adds around the JSON object it
// was asked to reply with, returning just the object's text. Falls back to
// an Unknown-kind object if no object can be found, which intent's layer 2
// treats the same as an unparsable reply.
func extractJSONObject(reply string) string {
	start := strings.IndexByte(reply, '{')
	end := strings.LastIndexByte(reply, '}')
	if start < 0 || end < start {
		return `{"kind":"Unknown","args":[]}`
	}
	candidate := reply[start : end+1]
	var probe map[string]any
	if err := json.Unmarshal([]byte(candidate), &probe); err != nil {
		return `{"kind":"Unknown","args":[]}`
	}
	return candidate
}
