package inventory

import (
	"context"
	"fmt"

	"github.com/kirkdiggler/dungeonmaster/internal/core"
	"github.com/kirkdiggler/dungeonmaster/internal/dice"
	"github.com/kirkdiggler/dungeonmaster/internal/events"
	"github.com/kirkdiggler/dungeonmaster/internal/items"
	"github.com/kirkdiggler/dungeonmaster/internal/repo"
	"github.com/kirkdiggler/dungeonmaster/internal/store"
)

// EntityStore is the narrow store seam the engine needs, matching the
// shape combat.EntityStore and skill.EntityStore already established.
type EntityStore interface {
	Get(entityID string) (store.Entity, bool)
	Replace(e store.Entity)
}

// Engine resolves inventory mutations against the in-memory store,
// fetching item templates from internal/repo on demand. It satisfies
// nav.InventoryChecker (HasItem) and combat.EquipmentLookup
// (EffectiveWeaponBonus/EffectiveArmorDefense) structurally.
type Engine struct {
	Store   EntityStore
	Items   *repo.ItemRepository
	Roller  dice.Roller
	Bus     events.EventBus
	NewID   func() string
	NowTick func() int64
}

func componentOf(e store.Entity) Component {
	c, ok := e.ComponentOf(core.ComponentInventory).(Component)
	if !ok {
		return NewComponent(0)
	}
	return c
}

func tradingOf(e store.Entity) TradingComponent {
	c, ok := e.ComponentOf(core.ComponentTrading).(TradingComponent)
	if !ok {
		return NewTradingComponent()
	}
	return c
}

func (e *Engine) publish(ev events.Event) {
	if e.Bus == nil {
		return
	}
	_ = e.Bus.Publish(ev)
}

// buildTemplateLookup fetches every template referenced by comp's owned
// instances, plus any extra template ids the caller already knows it
// needs (e.g. the template of an instance about to be added).
func (e *Engine) buildTemplateLookup(ctx context.Context, comp Component, extra ...string) (MapTemplateLookup, error) {
	ids := make(map[string]bool)
	for _, inst := range comp.Instances {
		ids[inst.TemplateID] = true
	}
	for _, id := range extra {
		ids[id] = true
	}

	out := make(MapTemplateLookup, len(ids))
	for id := range ids {
		tmpl, err := e.Items.FindTemplate(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("inventory: fetch template %s: %w", id, err)
		}
		if tmpl != nil {
			out[id] = *tmpl
		}
	}
	return out, nil
}

func (e *Engine) getEntityAndComponent(entityID string) (store.Entity, Component, error) {
	entity, ok := e.Store.Get(entityID)
	if !ok {
		return store.Entity{}, Component{}, fmt.Errorf("inventory: entity %s not found", entityID)
	}
	return entity, componentOf(entity), nil
}

// HasItem satisfies nav.InventoryChecker.
func (e *Engine) HasItem(ctx context.Context, entityID, templateID string) (bool, error) {
	_, comp, err := e.getEntityAndComponent(entityID)
	if err != nil {
		return false, err
	}
	return comp.HasItem(templateID), nil
}

// EffectiveWeaponBonus satisfies combat.EquipmentLookup.
func (e *Engine) EffectiveWeaponBonus(ctx context.Context, entityID string, legacy int) (int, error) {
	_, comp, err := e.getEntityAndComponent(entityID)
	if err != nil {
		return legacy, err
	}
	templates, err := e.buildTemplateLookup(ctx, comp)
	if err != nil {
		return legacy, err
	}
	return comp.EffectiveWeaponBonus(templates, legacy), nil
}

// EffectiveArmorDefense satisfies combat.EquipmentLookup.
func (e *Engine) EffectiveArmorDefense(ctx context.Context, entityID string, legacy int) (int, error) {
	_, comp, err := e.getEntityAndComponent(entityID)
	if err != nil {
		return legacy, err
	}
	templates, err := e.buildTemplateLookup(ctx, comp)
	if err != nil {
		return legacy, err
	}
	return comp.EffectiveArmorDefense(templates, legacy), nil
}

// AddItem adds inst to entityID's inventory.
func (e *Engine) AddItem(ctx context.Context, entityID string, inst items.Instance) error {
	entity, comp, err := e.getEntityAndComponent(entityID)
	if err != nil {
		return err
	}
	templates, err := e.buildTemplateLookup(ctx, comp, inst.TemplateID)
	if err != nil {
		return err
	}
	next, err := Add(comp, templates, inst)
	if err != nil {
		return err
	}
	e.Store.Replace(entity.WithComponent(next))
	e.publish(events.NewSystem(events.SystemInfo, fmt.Sprintf("%s picked up %s", entityID, inst.TemplateID)))
	return nil
}

// RemoveItem removes instanceID from entityID's inventory.
func (e *Engine) RemoveItem(ctx context.Context, entityID, instanceID string) error {
	entity, comp, err := e.getEntityAndComponent(entityID)
	if err != nil {
		return err
	}
	next, err := Remove(comp, instanceID)
	if err != nil {
		return err
	}
	e.Store.Replace(entity.WithComponent(next))
	return nil
}

// EquipItem equips instanceID into slot on entityID.
func (e *Engine) EquipItem(ctx context.Context, entityID, instanceID string, slot items.EquipSlot) error {
	entity, comp, err := e.getEntityAndComponent(entityID)
	if err != nil {
		return err
	}
	templates, err := e.buildTemplateLookup(ctx, comp)
	if err != nil {
		return err
	}
	next, err := Equip(comp, templates, instanceID, slot)
	if err != nil {
		return err
	}
	e.Store.Replace(entity.WithComponent(next))
	e.publish(events.NewSystem(events.SystemInfo, fmt.Sprintf("%s equipped %s", entityID, instanceID)))
	return nil
}

// UnequipItem clears slot on entityID.
func (e *Engine) UnequipItem(ctx context.Context, entityID string, slot items.EquipSlot) error {
	entity, comp, err := e.getEntityAndComponent(entityID)
	if err != nil {
		return err
	}
	next, err := Unequip(comp, slot)
	if err != nil {
		return err
	}
	e.Store.Replace(entity.WithComponent(next))
	e.publish(events.NewSystem(events.SystemInfo, fmt.Sprintf("%s unequipped %s", entityID, slot)))
	return nil
}

// BuyItem transfers inst from a merchant's catalog to entityID for gold.
func (e *Engine) BuyItem(ctx context.Context, entityID string, tmpl items.Template, inst items.Instance, disposition int) error {
	entity, comp, err := e.getEntityAndComponent(entityID)
	if err != nil {
		return err
	}
	templates, err := e.buildTemplateLookup(ctx, comp, tmpl.ID)
	if err != nil {
		return err
	}
	templates[tmpl.ID] = tmpl
	next, err := Buy(comp, templates, tmpl, inst, disposition)
	if err != nil {
		return err
	}
	e.Store.Replace(entity.WithComponent(next))
	e.publish(events.NewSystem(events.SystemInfo, fmt.Sprintf("%s bought %s", entityID, tmpl.ID)))
	return nil
}

// SellItem sells instanceID out of entityID's inventory for gold.
func (e *Engine) SellItem(ctx context.Context, entityID, instanceID string, disposition int) (int, error) {
	entity, comp, err := e.getEntityAndComponent(entityID)
	if err != nil {
		return 0, err
	}
	templates, err := e.buildTemplateLookup(ctx, comp)
	if err != nil {
		return 0, err
	}
	next, price, err := Sell(comp, templates, instanceID, disposition)
	if err != nil {
		return 0, err
	}
	e.Store.Replace(entity.WithComponent(next))
	e.publish(events.NewSystem(events.SystemInfo, fmt.Sprintf("%s sold %s for %d gold", entityID, instanceID, price)))
	return price, nil
}

// CraftItem applies recipe against entityID's inventory.
func (e *Engine) CraftItem(ctx context.Context, entityID string, recipe Recipe, skillLevel int) (string, error) {
	entity, comp, err := e.getEntityAndComponent(entityID)
	if err != nil {
		return "", err
	}
	if e.NewID == nil {
		return "", fmt.Errorf("inventory: engine has no NewID generator")
	}
	next, outputID, err := Craft(comp, recipe, skillLevel, e.NewID())
	if err != nil {
		return "", err
	}
	e.Store.Replace(entity.WithComponent(next))
	e.publish(events.NewSystem(events.SystemInfo, fmt.Sprintf("%s crafted %s from recipe %s", entityID, outputID, recipe.ID)))
	return outputID, nil
}

// PickpocketFrom attempts to lift instanceID off targetID into actorID's
// inventory.
func (e *Engine) PickpocketFrom(ctx context.Context, actorID, targetID, instanceID string, stealthLevel, perceptionLevel int) (StealOutcome, error) {
	actorEntity, actorComp, err := e.getEntityAndComponent(actorID)
	if err != nil {
		return StealOutcome{}, err
	}
	targetEntity, targetComp, err := e.getEntityAndComponent(targetID)
	if err != nil {
		return StealOutcome{}, err
	}
	templates, err := e.buildTemplateLookup(ctx, targetComp)
	if err != nil {
		return StealOutcome{}, err
	}

	nextActor, nextTarget, outcome, err := Pickpocket(ctx, e.Roller, stealthLevel, perceptionLevel, actorComp, targetComp, templates, instanceID)
	if err != nil {
		return StealOutcome{}, err
	}
	if outcome.Succeeded {
		e.Store.Replace(actorEntity.WithComponent(nextActor))
		e.Store.Replace(targetEntity.WithComponent(nextTarget))
		e.publish(events.NewSystem(events.SystemInfo, fmt.Sprintf("%s pickpocketed %s from %s", actorID, instanceID, targetID)))
	}
	return outcome, nil
}

// PlantOn attempts to slip instanceID from actorID into targetID's
// inventory unnoticed.
func (e *Engine) PlantOn(ctx context.Context, actorID, targetID, instanceID string, stealthLevel, perceptionLevel int) (StealOutcome, error) {
	actorEntity, actorComp, err := e.getEntityAndComponent(actorID)
	if err != nil {
		return StealOutcome{}, err
	}
	targetEntity, targetComp, err := e.getEntityAndComponent(targetID)
	if err != nil {
		return StealOutcome{}, err
	}
	templates, err := e.buildTemplateLookup(ctx, actorComp)
	if err != nil {
		return StealOutcome{}, err
	}

	nextActor, nextTarget, outcome, err := Plant(ctx, e.Roller, stealthLevel, perceptionLevel, actorComp, targetComp, templates, instanceID)
	if err != nil {
		return StealOutcome{}, err
	}
	if outcome.Succeeded {
		e.Store.Replace(actorEntity.WithComponent(nextActor))
		e.Store.Replace(targetEntity.WithComponent(nextTarget))
		e.publish(events.NewSystem(events.SystemInfo, fmt.Sprintf("%s planted %s on %s", actorID, instanceID, targetID)))
	}
	return outcome, nil
}

// LootCorpse transfers a decoded corpse snapshot into entityID's
// inventory (spec §4.9; the corpse row itself is marked looted by the
// caller via repo.CorpseRepository.MarkLooted once this returns).
func (e *Engine) LootCorpse(ctx context.Context, entityID string, snapshot map[string]items.Instance, goldSnapshot int) (LootResult, error) {
	entity, comp, err := e.getEntityAndComponent(entityID)
	if err != nil {
		return LootResult{}, err
	}
	extra := make([]string, 0, len(snapshot))
	for _, inst := range snapshot {
		extra = append(extra, inst.TemplateID)
	}
	templates, err := e.buildTemplateLookup(ctx, comp, extra...)
	if err != nil {
		return LootResult{}, err
	}
	next, result := LootCorpse(comp, templates, snapshot, goldSnapshot)
	e.Store.Replace(entity.WithComponent(next))
	e.publish(events.NewSystem(events.SystemInfo, fmt.Sprintf("%s looted corpse: %d items, %d gold", entityID, len(result.Looted), result.Gold)))
	return result, nil
}

// StockMerchant adds inst to merchantID's trading catalog, creating the
// component on first use.
func (e *Engine) StockMerchant(ctx context.Context, merchantID string, inst items.Instance) error {
	entity, ok := e.Store.Get(merchantID)
	if !ok {
		return fmt.Errorf("inventory: merchant %s not found", merchantID)
	}
	next := tradingOf(entity).WithStocked(inst)
	e.Store.Replace(entity.WithComponent(next))
	return nil
}

// ListMerchantStock returns everything merchantID currently has for sale
// (spec §4.5 ListStock intent).
func (e *Engine) ListMerchantStock(ctx context.Context, merchantID string) ([]items.Instance, error) {
	entity, ok := e.Store.Get(merchantID)
	if !ok {
		return nil, fmt.Errorf("inventory: merchant %s not found", merchantID)
	}
	return tradingOf(entity).ListStock(), nil
}

// BuyFromMerchant resolves instanceID out of merchantID's trading catalog
// and transfers it to buyerID for gold, priced by disposition (spec §4.9
// "buy/sell(merchantEntityId, instance) -> price via trading component
// using disposition as a modifier"). The merchant is credited the sale
// price into its own inventory gold.
func (e *Engine) BuyFromMerchant(ctx context.Context, buyerID, merchantID, instanceID string, disposition int) error {
	buyerEntity, buyerComp, err := e.getEntityAndComponent(buyerID)
	if err != nil {
		return err
	}
	merchantEntity, ok := e.Store.Get(merchantID)
	if !ok {
		return fmt.Errorf("inventory: merchant %s not found", merchantID)
	}
	trading := tradingOf(merchantEntity)
	inst, ok := trading.Stock[instanceID]
	if !ok {
		return fmt.Errorf("inventory: merchant %s has no stock %s", merchantID, instanceID)
	}
	tmplPtr, err := e.Items.FindTemplate(ctx, inst.TemplateID)
	if err != nil {
		return fmt.Errorf("inventory: fetch template %s: %w", inst.TemplateID, err)
	}
	if tmplPtr == nil {
		return fmt.Errorf("inventory: unknown template %s for stock %s", inst.TemplateID, instanceID)
	}
	templates, err := e.buildTemplateLookup(ctx, buyerComp, tmplPtr.ID)
	if err != nil {
		return err
	}
	templates[tmplPtr.ID] = *tmplPtr

	nextBuyer, err := Buy(buyerComp, templates, *tmplPtr, inst, disposition)
	if err != nil {
		return err
	}
	price := Price(*tmplPtr, inst, disposition)

	merchantComp := componentOf(merchantEntity)
	merchantComp.Gold += price
	nextMerchant := merchantEntity.WithComponent(merchantComp).WithComponent(trading.WithoutStocked(instanceID))

	e.Store.Replace(buyerEntity.WithComponent(nextBuyer))
	e.Store.Replace(nextMerchant)
	e.publish(events.NewSystem(events.SystemInfo, fmt.Sprintf("%s bought %s from %s for %d gold", buyerID, inst.TemplateID, merchantID, price)))
	return nil
}

// SellToMerchant sells instanceID out of sellerID's inventory into
// merchantID's trading catalog, priced by disposition. The merchant pays
// out of its own inventory gold.
func (e *Engine) SellToMerchant(ctx context.Context, sellerID, merchantID, instanceID string, disposition int) (int, error) {
	sellerEntity, sellerComp, err := e.getEntityAndComponent(sellerID)
	if err != nil {
		return 0, err
	}
	inst, owned := sellerComp.Instances[instanceID]
	if !owned {
		return 0, fmt.Errorf("inventory: %s does not own %s", sellerID, instanceID)
	}
	merchantEntity, ok := e.Store.Get(merchantID)
	if !ok {
		return 0, fmt.Errorf("inventory: merchant %s not found", merchantID)
	}

	templates, err := e.buildTemplateLookup(ctx, sellerComp)
	if err != nil {
		return 0, err
	}
	nextSeller, price, err := Sell(sellerComp, templates, instanceID, disposition)
	if err != nil {
		return 0, err
	}

	merchantComp := componentOf(merchantEntity)
	merchantComp.Gold -= price
	nextMerchant := merchantEntity.WithComponent(merchantComp).WithComponent(tradingOf(merchantEntity).WithStocked(inst))

	e.Store.Replace(sellerEntity.WithComponent(nextSeller))
	e.Store.Replace(nextMerchant)
	e.publish(events.NewSystem(events.SystemInfo, fmt.Sprintf("%s sold %s to %s for %d gold", sellerID, instanceID, merchantID, price)))
	return price, nil
}
