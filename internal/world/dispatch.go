package world

import (
	"context"
	"fmt"
	"strings"

	"github.com/kirkdiggler/dungeonmaster/internal/gamectx"
	"github.com/kirkdiggler/dungeonmaster/internal/intent"
	"github.com/kirkdiggler/dungeonmaster/internal/items"
	"github.com/kirkdiggler/dungeonmaster/internal/nav"
	"github.com/kirkdiggler/dungeonmaster/internal/repo"
	"github.com/kirkdiggler/dungeonmaster/internal/social"
	"github.com/kirkdiggler/dungeonmaster/internal/store"
)

const defaultChallengeDefenderLevel = 5

// HandleCommand is the single entry point a front end (cmd/dungeonmaster)
// calls per player line of input. It recognizes the intent, dispatches to
// the owning subsystem, and returns the player-facing reply, all inside one
// Exec call per spec §5.
func (w *World) HandleCommand(ctx context.Context, actorID, phrase string) (string, error) {
	result, err := w.Exec(ctx, func(ctx context.Context) (any, error) {
		return w.dispatch(ctx, actorID, phrase)
	})
	if err != nil {
		return "", err
	}
	reply, _ := result.(string)
	return reply, nil
}

func (w *World) dispatch(ctx context.Context, actorID, phrase string) (string, error) {
	// Reached through the per-command gamectx.GameContext Exec installs,
	// rather than w.Store directly, since resolving the acting entity by id
	// is exactly the narrow per-id lookup gamectx.EntityRegistry exists for.
	actor, ok := gamectx.RequireEntities(ctx).GetEntity(actorID).(store.Entity)
	if !ok {
		return "", fmt.Errorf("world: unknown actor %s", actorID)
	}

	props, err := w.currentSpace(ctx, actor.SpaceID)
	if err != nil {
		return "", err
	}

	in, err := w.Intent.Recognize(ctx, phrase, w.buildIntentContext(actor, props))
	if err != nil {
		return "", err
	}

	switch in.Kind {
	case intent.Move:
		return w.handleMove(ctx, actor, props, in)
	case intent.Look:
		return describeSpace(props), nil
	case intent.Attack:
		return w.handleAttack(ctx, actor, in)
	case intent.Flee:
		return w.handleFlee(ctx, actor, in)
	case intent.Talk, intent.AskQuestion:
		return w.handleAskQuestion(ctx, props, in)
	case intent.Say:
		return fmt.Sprintf("%s says, \"%s\"", actor.Name, in.ArgString()), nil
	case intent.Emote:
		return w.handleEmote(ctx, in)
	case intent.Persuade:
		return w.handleChallenge(ctx, actor, in, "persuade")
	case intent.Intimidate:
		return w.handleChallenge(ctx, actor, in, "intimidate")
	case intent.Check, intent.UseSkill:
		return w.handleCheck(ctx, actor, in)
	case intent.Take:
		return w.handleTake(ctx, actor, props, in)
	case intent.Drop:
		return w.handleDrop(ctx, actor, in)
	case intent.Equip:
		return w.handleEquip(ctx, actor, in)
	case intent.Unequip:
		return w.handleUnequip(ctx, actor, in)
	case intent.BuyItem:
		return w.handleBuy(ctx, actor, in)
	case intent.SellItem:
		return w.handleSell(ctx, actor, in)
	case intent.ListStock:
		return w.handleListStock(ctx, in)
	case intent.Inventory:
		return describeInventory(actor), nil
	case intent.Save:
		return w.handleSave(ctx)
	case intent.Help:
		return helpText, nil
	case intent.Quit:
		return "farewell", nil
	case intent.Quests, intent.AcceptQuest, intent.AbandonQuest, intent.ClaimReward,
		intent.ChoosePerk, intent.ViewSkills, intent.TrainSkill,
		intent.Search, intent.Interact, intent.TakeAll, intent.Give, intent.Use,
		intent.Craft, intent.Pickpocket, intent.Plant, intent.Loot, intent.Load:
		return "that's not available yet.", nil
	default:
		return "I don't understand that.", nil
	}
}

func (w *World) currentSpace(ctx context.Context, spaceID string) (*repo.SpaceProperties, error) {
	if spaceID == "" {
		return nil, nil
	}
	return w.WorldGen.Spaces().FindByChunkID(ctx, spaceID)
}

func (w *World) buildIntentContext(actor store.Entity, props *repo.SpaceProperties) intent.IntentContext {
	var ictx intent.IntentContext
	if props != nil {
		for _, e := range props.Exits {
			ictx.Exits = append(ictx.Exits, e.Direction)
		}
		for _, id := range props.Entities {
			if ent, ok := w.Store.Get(id); ok {
				ictx.Entities = append(ictx.Entities, ent.Name)
			}
		}
	}
	return ictx
}

func (w *World) handleMove(ctx context.Context, actor store.Entity, props *repo.SpaceProperties, in intent.Intent) (string, error) {
	if props == nil {
		return "there is nowhere to go from here.", nil
	}
	resolution, err := w.Nav.Resolve(ctx, in.ArgString(), props, actor.ID, 0, 0)
	if err != nil {
		return "", err
	}
	switch res := resolution.(type) {
	case nav.Moved:
		if _, err := w.WorldGen.EnsureSpace(ctx, res.Exit.TargetID); err != nil {
			return "", err
		}
		w.Store.Replace(actor.WithSpace(res.Exit.TargetID))
		if _, err := w.Persist.RecordMove(ctx); err != nil {
			w.Log.Warn("world: move-triggered autosave failed")
		}
		return fmt.Sprintf("You head %s.", res.Exit.Direction), nil
	case nav.ConditionFailed:
		return "You can't go that way: " + res.Reason, nil
	case nav.AmbiguousMatch:
		return "Which way did you mean: " + strings.Join(res.Suggestions, ", ") + "?", nil
	default:
		return "You can't go that way.", nil
	}
}

func describeSpace(props *repo.SpaceProperties) string {
	if props == nil {
		return "You are nowhere in particular."
	}
	return props.Name + " — " + props.Description
}

func describeInventory(actor store.Entity) string {
	return "your belongings: use 'equip'/'unequip'/'drop' to manage them"
}

func (w *World) handleAttack(ctx context.Context, actor store.Entity, in intent.Intent) (string, error) {
	targetID, err := w.resolveTargetByName(firstArg(in))
	if err != nil {
		return "", err
	}
	outcome, err := w.Combat.Attack(ctx, actor.ID, targetID)
	if err != nil {
		return "", err
	}
	if outcome.Miss {
		return "Your attack misses.", nil
	}
	return fmt.Sprintf("You hit for %d damage.", outcome.Damage), nil
}

func (w *World) handleFlee(ctx context.Context, actor store.Entity, in intent.Intent) (string, error) {
	targetID, err := w.resolveTargetByName(firstArg(in))
	if err != nil {
		return "", err
	}
	outcome, err := w.Combat.Flee(ctx, actor.ID, targetID)
	if err != nil {
		return "", err
	}
	if outcome.Escaped {
		return "You break away and flee.", nil
	}
	return "You fail to escape.", nil
}

func (w *World) handleAskQuestion(ctx context.Context, props *repo.SpaceProperties, in intent.Intent) (string, error) {
	npcID, err := w.resolveTargetByName(firstArg(in))
	if err != nil {
		return "", err
	}
	spaceContext := ""
	if props != nil {
		spaceContext = props.Name
	}
	return w.Social.AskQuestion(ctx, npcID, spaceContext, restArgs(in))
}

func (w *World) handleEmote(ctx context.Context, in intent.Intent) (string, error) {
	npcID, err := w.resolveTargetByName(firstArg(in))
	if err != nil {
		return "", err
	}
	outcome, err := w.Social.Emote(ctx, npcID, restArgs(in))
	if err != nil {
		return "", err
	}
	return outcome.Narrative, nil
}

func (w *World) handleChallenge(ctx context.Context, actor store.Entity, in intent.Intent, kind string) (string, error) {
	npcID, err := w.resolveTargetByName(firstArg(in))
	if err != nil {
		return "", err
	}
	outcome, err := w.Social.AttemptChallenge(ctx, npcID, 1, socialChallenge(kind, restArgs(in)))
	if err != nil {
		return "", err
	}
	if outcome.Succeeded {
		return "They're convinced.", nil
	}
	return "They don't budge.", nil
}

// socialChallenge builds an ad hoc Challenge for a free-form persuade or
// intimidate command. NPCs with a scripted gated challenge are expected to
// go through AttemptChallenge directly from worldgen-authored content; this
// covers the open-ended player-typed case with a flat defender level.
func socialChallenge(kind, topic string) social.Challenge {
	ck := social.ChallengePersuade
	if kind == "intimidate" {
		ck = social.ChallengeIntimidate
	}
	return social.Challenge{ID: "adhoc:" + topic, Kind: ck, DefenderLevel: defaultChallengeDefenderLevel}
}

func (w *World) handleCheck(ctx context.Context, actor store.Entity, in intent.Intent) (string, error) {
	ok, err := w.Skill.CheckSkill(ctx, actor.ID, firstArg(in), defaultCheckDC)
	if err != nil {
		return "", err
	}
	if ok {
		return "Success.", nil
	}
	return "Failure.", nil
}

func (w *World) handleDrop(ctx context.Context, actor store.Entity, in intent.Intent) (string, error) {
	instanceID := firstArg(in)
	if err := w.Inventory.RemoveItem(ctx, actor.ID, instanceID); err != nil {
		return "", err
	}
	return "dropped.", nil
}

func (w *World) handleEquip(ctx context.Context, actor store.Entity, in intent.Intent) (string, error) {
	if len(in.Args) < 2 {
		return "equip which item to which slot?", nil
	}
	slot, ok := parseSlot(in.Args[len(in.Args)-1])
	if !ok {
		return "unknown equipment slot.", nil
	}
	instanceID := in.Args[0]
	if err := w.Inventory.EquipItem(ctx, actor.ID, instanceID, slot); err != nil {
		return "", err
	}
	return "equipped.", nil
}

func (w *World) handleUnequip(ctx context.Context, actor store.Entity, in intent.Intent) (string, error) {
	slot, ok := parseSlot(firstArg(in))
	if !ok {
		return "unknown equipment slot.", nil
	}
	if err := w.Inventory.UnequipItem(ctx, actor.ID, slot); err != nil {
		return "", err
	}
	return "unequipped.", nil
}

func (w *World) handleBuy(ctx context.Context, actor store.Entity, in intent.Intent) (string, error) {
	if len(in.Args) < 2 {
		return "buy what from whom?", nil
	}
	instanceID, merchantName := in.Args[0], in.Args[1]
	merchantID, err := w.resolveTargetByName(merchantName)
	if err != nil {
		return "", err
	}
	if err := w.Inventory.BuyFromMerchant(ctx, actor.ID, merchantID, instanceID, 0); err != nil {
		return "", err
	}
	return "purchased.", nil
}

func (w *World) handleSell(ctx context.Context, actor store.Entity, in intent.Intent) (string, error) {
	if len(in.Args) < 2 {
		return "sell what to whom?", nil
	}
	instanceID, merchantName := in.Args[0], in.Args[1]
	merchantID, err := w.resolveTargetByName(merchantName)
	if err != nil {
		return "", err
	}
	price, err := w.Inventory.SellToMerchant(ctx, actor.ID, merchantID, instanceID, 0)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("sold for %d gold.", price), nil
}

func (w *World) handleListStock(ctx context.Context, in intent.Intent) (string, error) {
	merchantID, err := w.resolveTargetByName(firstArg(in))
	if err != nil {
		return "", err
	}
	stock, err := w.Inventory.ListMerchantStock(ctx, merchantID)
	if err != nil {
		return "", err
	}
	if len(stock) == 0 {
		return "nothing for sale.", nil
	}
	names := make([]string, 0, len(stock))
	for _, inst := range stock {
		names = append(names, inst.TemplateID)
	}
	return "for sale: " + strings.Join(names, ", "), nil
}

func (w *World) handleSave(ctx context.Context) (string, error) {
	report, err := w.Persist.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	if !report.Clean() {
		return fmt.Sprintf("saved with %d partial failures.", len(report.Failures)), nil
	}
	return "saved.", nil
}

func firstArg(in intent.Intent) string {
	if len(in.Args) == 0 {
		return ""
	}
	return in.Args[0]
}

// restArgs rejoins every argument after the first (the target name) for
// handlers where Args[0] names a target and the remainder is free text.
func restArgs(in intent.Intent) string {
	if len(in.Args) <= 1 {
		return ""
	}
	return strings.Join(in.Args[1:], " ")
}

func removeString(ss []string, target string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}

func parseSlot(name string) (items.EquipSlot, bool) {
	candidate := items.EquipSlot(strings.ToUpper(strings.ReplaceAll(name, " ", "_")))
	for _, s := range items.AllSlots {
		if s == candidate {
			return s, true
		}
	}
	return "", false
}

// resolveTargetByName finds the first entity whose Name matches target
// case-insensitively. Engines themselves operate on ids; the dispatcher is
// the only layer that turns player-typed names into ids, since it's the
// only layer that sees raw phrases.
func (w *World) resolveTargetByName(target string) (string, error) {
	target = strings.TrimSpace(target)
	for _, e := range w.Store.All() {
		if strings.EqualFold(e.Name, target) {
			return e.ID, nil
		}
	}
	return "", fmt.Errorf("world: no entity named %q nearby", target)
}

const defaultCheckDC = 12

const helpText = "commands: move/look/attack/flee/talk/take/drop/equip/unequip/buy/sell/inventory/save/quit"
