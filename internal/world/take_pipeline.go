package world

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kirkdiggler/dungeonmaster/internal/core"
	"github.com/kirkdiggler/dungeonmaster/internal/intent"
	"github.com/kirkdiggler/dungeonmaster/internal/items"
	"github.com/kirkdiggler/dungeonmaster/internal/pipeline"
	"github.com/kirkdiggler/dungeonmaster/internal/repo"
	"github.com/kirkdiggler/dungeonmaster/internal/store"
)

var takeRef = &core.Ref{Module: "world", Type: "pipeline", Value: "take_item"}

// errItemNotHere is the sentinel the resolve stage returns when no item in
// the space matches the requested name. handleTake unwraps it from the
// pipeline's stage error to give it a narrative reply instead of surfacing
// it to the caller as a command failure.
var errItemNotHere = errors.New("item not here")

// takeRequest is the input handed to the take pipeline.
type takeRequest struct {
	actor store.Entity
	props *repo.SpaceProperties
	name  string
}

// takeResolved is what the resolve stage hands to the apply stage once it
// has matched a name against an instance sitting in the space.
type takeResolved struct {
	actor  store.Entity
	props  *repo.SpaceProperties
	instID string
	inst   *items.Instance
	tmpl   *items.Template
}

// newTakePipeline builds the two-stage take-item mechanic: resolve the named
// item against the space's instance ids, then move it into the actor's
// inventory and persist the space with it removed. Split into stages the way
// pipeline.Sequential is meant to be used, rather than as one handler
// function, so the name-resolution step and its stage.Name() show up
// independently in anything that inspects a Result's Data/stage trail.
func (w *World) newTakePipeline() pipeline.Pipeline {
	resolve := pipeline.NewStage("resolve-item", func(ctx context.Context, value any) (any, error) {
		req, ok := value.(takeRequest)
		if !ok {
			return nil, fmt.Errorf("world: take pipeline: unexpected input %T", value)
		}
		if req.props == nil {
			return nil, errItemNotHere
		}
		for _, instID := range req.props.Items {
			inst, err := w.Inventory.Items.FindInstance(ctx, instID)
			if err != nil {
				return nil, err
			}
			if inst == nil {
				continue
			}
			tmpl, err := w.Inventory.Items.FindTemplate(ctx, inst.TemplateID)
			if err != nil {
				return nil, err
			}
			if tmpl == nil || !strings.EqualFold(tmpl.Name, req.name) {
				continue
			}
			return takeResolved{actor: req.actor, props: req.props, instID: instID, inst: inst, tmpl: tmpl}, nil
		}
		return nil, errItemNotHere
	})

	apply := pipeline.NewStage("apply-take", func(ctx context.Context, value any) (any, error) {
		res, ok := value.(takeResolved)
		if !ok {
			return nil, fmt.Errorf("world: take pipeline: unexpected input %T", value)
		}
		if err := w.Inventory.AddItem(ctx, res.actor.ID, *res.inst); err != nil {
			return nil, err
		}
		res.props.Items = removeString(res.props.Items, res.instID)
		if err := w.WorldGen.Spaces().Save(ctx, *res.props); err != nil {
			return nil, err
		}
		return fmt.Sprintf("You take the %s.", res.tmpl.Name), nil
	})

	return pipeline.Sequential(takeRef, resolve, apply)
}

// handleTake resolves a name (e.g. "rusty sword") against the instance ids
// in props.Items, since SpaceProperties has no name-indexed lookup, and
// applies the take via newTakePipeline.
func (w *World) handleTake(ctx context.Context, actor store.Entity, props *repo.SpaceProperties, in intent.Intent) (string, error) {
	result := w.newTakePipeline().Process(ctx, takeRequest{actor: actor, props: props, name: in.ArgString()})

	output := result.GetOutput()
	if err, ok := output.(error); ok {
		if errors.Is(err, errItemNotHere) {
			return "You don't see that here.", nil
		}
		return "", err
	}
	reply, _ := output.(string)
	return reply, nil
}
