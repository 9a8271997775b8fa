package world

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kirkdiggler/dungeonmaster/internal/combat"
	"github.com/kirkdiggler/dungeonmaster/internal/config"
	"github.com/kirkdiggler/dungeonmaster/internal/content"
	"github.com/kirkdiggler/dungeonmaster/internal/dice"
	"github.com/kirkdiggler/dungeonmaster/internal/events"
	"github.com/kirkdiggler/dungeonmaster/internal/intent"
	"github.com/kirkdiggler/dungeonmaster/internal/inventory"
	"github.com/kirkdiggler/dungeonmaster/internal/llm"
	"github.com/kirkdiggler/dungeonmaster/internal/memory"
	"github.com/kirkdiggler/dungeonmaster/internal/nav"
	"github.com/kirkdiggler/dungeonmaster/internal/persistence"
	"github.com/kirkdiggler/dungeonmaster/internal/repo"
	"github.com/kirkdiggler/dungeonmaster/internal/skill"
	"github.com/kirkdiggler/dungeonmaster/internal/social"
	"github.com/kirkdiggler/dungeonmaster/internal/store"
	"github.com/kirkdiggler/dungeonmaster/internal/worldgen"
)

// llmCollaborator is the union of every forward-reference LLM seam in the
// engine. internal/llm.Collaborator and internal/llm.Fallback both satisfy
// it structurally; World only ever holds one concrete value behind it.
type llmCollaborator interface {
	worldgen.LoreExpander
	nav.LLMDirectionMatcher
	intent.Classifier
	social.KnowledgeExpander
	memory.Embedder
}

// World is the C1-C11 aggregate: the live entity store, every engine
// subsystem wired against it, and the single logical executor spec §5
// requires all of them to run behind.
type World struct {
	mu sync.Mutex

	Store *store.Store
	Bus   events.EventBus
	Cfg   *config.Config
	Log   *zap.Logger

	DB *repo.DB

	Nav       *nav.Resolver
	Intent    *intent.Recognizer
	Combat    *combat.Resolver
	Skill     *skill.Engine
	Social    *social.Engine
	Inventory *inventory.Engine
	WorldGen  *worldgen.Generator
	Memory    *memory.Store
	Persist   *persistence.Coordinator

	autosaveCancel context.CancelFunc
}

// New wires every subsystem against one shared store, event bus, dice
// roller (seeded from cfg.WorldSeed for reproducibility), and LLM
// collaborator (live Collaborator when cfg.HasLLM(), Fallback otherwise).
func New(ctx context.Context, cfg *config.Config, db *repo.DB, log *zap.Logger) (*World, error) {
	if log == nil {
		log = zap.NewNop()
	}
	bus := events.NewBus()
	entityStore := store.New(bus)
	roller := dice.NewSeededRoller(cfg.WorldSeed)

	var collab llmCollaborator
	if cfg.HasLLM() {
		c, err := llm.New(ctx, cfg.GenAIAPIKey, cfg.LLMModel, cfg.LLMEmbedModel, log)
		if err != nil {
			return nil, fmt.Errorf("world: build llm collaborator: %w", err)
		}
		collab = c
	} else {
		collab = llm.Fallback{}
	}

	items := repo.NewItemRepository(db)
	chunks := repo.NewWorldChunkRepository(db)
	spaces := repo.NewSpacePropertiesRepository(db)
	nodes := repo.NewGraphNodeRepository(db)
	treasure := repo.NewTreasureRoomRepository(db)
	corpses := repo.NewCorpseRepository(db)
	skillRepo := repo.NewSkillRepository(db)

	memStore, err := memory.Open(collab, cfg.SaveDir+"/memory.gob")
	if err != nil {
		return nil, fmt.Errorf("world: open memory store: %w", err)
	}

	invEngine := &inventory.Engine{
		Store:   entityStore,
		Items:   items,
		Roller:  roller,
		Bus:     bus,
		NewID:   uuid.NewString,
		NowTick: nowTick,
	}

	skillEngine := &skill.Engine{
		Store:   entityStore,
		Roller:  roller,
		Repo:    skillRepo,
		Cfg:     defaultSkillConfig(cfg),
		Bus:     bus,
		NewID:   uuid.NewString,
		NowTick: nowTick,
	}

	socialEngine := &social.Engine{
		Store:             entityStore,
		Roller:            roller,
		Emotes:            content.NewEmoteTable(),
		Expander:          collab,
		KnowledgeTTLTicks: social.DefaultKnowledgeTTLTicks,
		Bus:               bus,
		NowTick:           nowTick,
	}

	combatResolver := &combat.Resolver{
		Store:     entityStore,
		Roller:    roller,
		Equipment: invEngine,
		Defense:   skillEngine,
		Bus:       bus,
		Corpses:   corpses,
		DeathCfg:  combat.DefaultDeathConfig,
		NewID:     uuid.NewString,
		NowTick:   nowTick,
	}

	genCfg := worldgen.DefaultConfig()
	generator := worldgen.NewGenerator(cfg.WorldSeed, chunks, spaces, nodes, treasure, items,
		content.NewThemeTable(log), collab, log, genCfg)

	navResolver := nav.NewResolver(roller, collab, skillEngine, invEngine, &terrainLookup{spaces: spaces})

	recognizer := intent.NewRecognizer(collab)

	coordinator := persistence.New(entityStore, db, cfg.AutosaveMoves, cfg.AutosaveInterval, log)

	return &World{
		Store:     entityStore,
		Bus:       bus,
		Cfg:       cfg,
		Log:       log,
		DB:        db,
		Nav:       navResolver,
		Intent:    recognizer,
		Combat:    combatResolver,
		Skill:     skillEngine,
		Social:    socialEngine,
		Inventory: invEngine,
		WorldGen:  generator,
		Memory:    memStore,
		Persist:   coordinator,
	}, nil
}

func nowTick() int64 { return time.Now().Unix() }

// defaultSkillConfig applies cfg's env-tunable XP/lucky-progression knobs
// on top of skill.DefaultConfig.
func defaultSkillConfig(cfg *config.Config) skill.Config {
	c := skill.DefaultConfig
	c.SuccessXPFraction *= cfg.SkillXPMultiplier
	c.FailureXPFraction *= cfg.SkillXPMultiplier
	c.BaseLuckyChance = cfg.SkillBaseLuckyChance
	c.LuckyPromotionOn = cfg.SkillEnableLuckyProgression
	return c
}
