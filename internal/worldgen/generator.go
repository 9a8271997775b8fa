package worldgen

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kirkdiggler/dungeonmaster/internal/content"
	"github.com/kirkdiggler/dungeonmaster/internal/repo"
	"github.com/kirkdiggler/dungeonmaster/internal/rpgerr"
)

// Config tunes generation behavior. Zero value is usable; NewGenerator
// fills in defaults for anything left unset.
type Config struct {
	// MaxGraphRetries bounds the retry loop before the generator accepts a
	// looser layout (spec §4.3 step 6).
	MaxGraphRetries int
	// MinNodesPerSubzone / MaxNodesPerSubzone bound the generated node count.
	MinNodesPerSubzone int
	MaxNodesPerSubzone int
}

// DefaultConfig returns the generator's default tuning.
func DefaultConfig() Config {
	return Config{MaxGraphRetries: 3, MinNodesPerSubzone: 6, MaxNodesPerSubzone: 14}
}

// Generator materializes the world lazily from a WorldSeed (spec §4.3).
// Every Ensure* method is idempotent: if the chunk already exists, it is
// returned as-is and nothing is regenerated.
type Generator struct {
	chunks    *repo.WorldChunkRepository
	spaces    *repo.SpacePropertiesRepository
	nodes     *repo.GraphNodeRepository
	treasure  *repo.TreasureRoomRepository
	items     *repo.ItemRepository
	themes    *content.ThemeTable
	expander  LoreExpander
	log       *zap.Logger
	cfg       Config
	worldSeed string

	sf singleflight.Group
}

// NewGenerator constructs a Generator. A nil expander falls back to an
// identity expansion (no LLM call); a nil logger falls back to a no-op one.
func NewGenerator(
	worldSeed string,
	chunks *repo.WorldChunkRepository,
	spaces *repo.SpacePropertiesRepository,
	nodes *repo.GraphNodeRepository,
	treasure *repo.TreasureRoomRepository,
	items *repo.ItemRepository,
	themes *content.ThemeTable,
	expander LoreExpander,
	log *zap.Logger,
	cfg Config,
) *Generator {
	if expander == nil {
		expander = nopExpander{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.MaxGraphRetries <= 0 {
		cfg.MaxGraphRetries = DefaultConfig().MaxGraphRetries
	}
	if cfg.MinNodesPerSubzone <= 0 {
		cfg.MinNodesPerSubzone = DefaultConfig().MinNodesPerSubzone
	}
	if cfg.MaxNodesPerSubzone <= cfg.MinNodesPerSubzone {
		cfg.MaxNodesPerSubzone = DefaultConfig().MaxNodesPerSubzone
	}
	return &Generator{
		chunks: chunks, spaces: spaces, nodes: nodes, treasure: treasure, items: items,
		themes: themes, expander: expander, log: log, cfg: cfg, worldSeed: worldSeed,
	}
}

// EnsureWorld materializes the singleton WORLD chunk eagerly, along with its
// REGION children, if it does not already exist.
func (g *Generator) EnsureWorld(ctx context.Context, regionCount int) (*repo.WorldChunk, error) {
	existing, err := g.chunks.FindByID(ctx, "world")
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	world := repo.WorldChunk{
		ID: "world", Level: repo.LevelWorld,
		Lore:       "A world fractured by an ancient cataclysm, its depths still settling.",
		BiomeTheme: content.DefaultBiomeTheme,
	}
	rng := rngFor(g.worldSeed, world.ID)
	children := make([]string, 0, regionCount)
	for i := 0; i < regionCount; i++ {
		regionID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s:region:%d", g.worldSeed, i))).String()
		children = append(children, regionID)
	}
	world.Children = children
	if err := g.chunks.Save(ctx, world); err != nil {
		return nil, err
	}

	for i, regionID := range children {
		lorePrompt := buildLorePrompt([]string{world.Lore}, world.BiomeTheme)
		lore, err := g.expander.ExpandLore(ctx, lorePrompt)
		if err != nil {
			return nil, rpgerr.WrapWithCode(err, rpgerr.CodeExternalUnavailable, "worldgen: expand region lore")
		}
		region := repo.WorldChunk{
			ID: regionID, Level: repo.LevelRegion, ParentID: world.ID,
			Lore: lore, BiomeTheme: pickBiome(rng, i),
		}
		if err := g.chunks.Save(ctx, region); err != nil {
			return nil, err
		}
	}

	g.log.Info("materialized world", zap.Int("regions", regionCount))
	return &world, nil
}

var biomeRotation = []string{"ancient_abyss", "magma_cave", "frozen_depths", "bone_crypt"}

func pickBiome(rng interface{ IntN(int) int }, fallbackIndex int) string {
	if fallbackIndex < len(biomeRotation) {
		return biomeRotation[fallbackIndex]
	}
	return biomeRotation[rng.IntN(len(biomeRotation))]
}

// EnsureZone materializes a ZONE under parentRegionID on first crossing of
// its boundary (spec §4.3). zoneSeed identifies which zone slot to
// materialize, stable across calls for the same region.
func (g *Generator) EnsureZone(ctx context.Context, parentRegionID, zoneSeed string, index int) (*repo.WorldChunk, error) {
	zoneID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s:zone:%s:%d", g.worldSeed, parentRegionID, index))).String()
	existing, err := g.chunks.FindByID(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	region, err := g.chunks.FindByID(ctx, parentRegionID)
	if err != nil {
		return nil, err
	}
	if region == nil {
		return nil, rpgerr.New(rpgerr.CodeNotFoundEntity, "worldgen: parent region not found")
	}

	prompt := buildLorePrompt([]string{region.Lore}, region.BiomeTheme)
	lore, err := g.expander.ExpandLore(ctx, prompt)
	if err != nil {
		return nil, rpgerr.WrapWithCode(err, rpgerr.CodeExternalUnavailable, "worldgen: expand zone lore")
	}

	zone := repo.WorldChunk{
		ID: zoneID, Level: repo.LevelZone, ParentID: region.ID,
		Lore: lore, BiomeTheme: region.BiomeTheme,
		DifficultyTier: clampTier(index + 1),
	}
	if err := g.chunks.Save(ctx, zone); err != nil {
		return nil, err
	}
	if err := g.appendChild(ctx, region, zone.ID); err != nil {
		return nil, err
	}
	return &zone, nil
}

// EnsureSubzone materializes a SUBZONE under parentZoneID on entry,
// including its content graph (spec §4.3). Concurrent callers racing to
// materialize the same subzone collapse onto one generation via
// singleflight, keyed by the subzone id.
func (g *Generator) EnsureSubzone(ctx context.Context, parentZoneID, subzoneSeed string, index int) (*repo.WorldChunk, error) {
	subzoneID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s:subzone:%s:%d", g.worldSeed, parentZoneID, index))).String()

	result, err, _ := g.sf.Do(subzoneID, func() (interface{}, error) {
		existing, err := g.chunks.FindByID(ctx, subzoneID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}

		zone, err := g.chunks.FindByID(ctx, parentZoneID)
		if err != nil {
			return nil, err
		}
		if zone == nil {
			return nil, rpgerr.New(rpgerr.CodeNotFoundEntity, "worldgen: parent zone not found")
		}

		prompt := buildLorePrompt([]string{zone.Lore}, zone.BiomeTheme)
		lore, err := g.expander.ExpandLore(ctx, prompt)
		if err != nil {
			return nil, rpgerr.WrapWithCode(err, rpgerr.CodeExternalUnavailable, "worldgen: expand subzone lore")
		}

		subzone := repo.WorldChunk{
			ID: subzoneID, Level: repo.LevelSubzone, ParentID: zone.ID,
			Lore: lore, BiomeTheme: zone.BiomeTheme, DifficultyTier: zone.DifficultyTier,
		}
		if err := g.chunks.Save(ctx, subzone); err != nil {
			return nil, err
		}
		if err := g.appendChild(ctx, zone, subzone.ID); err != nil {
			return nil, err
		}

		if err := g.generateSubzoneGraph(ctx, &subzone); err != nil {
			return nil, err
		}
		return &subzone, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*repo.WorldChunk), nil
}

// EnsureSpace materializes per-space content (description, exits, mobs,
// items, features) on first entry to a SPACE chunk that already exists as a
// graph node but has no SpaceProperties row yet.
func (g *Generator) EnsureSpace(ctx context.Context, spaceID string) (*repo.SpaceProperties, error) {
	existing, err := g.spaces.FindByChunkID(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	chunk, err := g.chunks.FindByID(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if chunk == nil {
		return nil, rpgerr.New(rpgerr.CodeNotFoundEntity, "worldgen: space chunk not found")
	}
	node, err := g.nodes.FindByID(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, rpgerr.New(rpgerr.CodeNotFoundEntity, "worldgen: space has no graph node")
	}

	rng := rngFor(g.worldSeed, spaceID)
	fam := g.themes.ThemeFor(chunk.BiomeTheme)

	prompt := buildLorePrompt([]string{chunk.Lore, fam.DescriptionSeed}, chunk.BiomeTheme)
	description, err := g.expander.ExpandLore(ctx, prompt)
	if err != nil {
		return nil, rpgerr.WrapWithCode(err, rpgerr.CodeExternalUnavailable, "worldgen: expand space description")
	}

	props := repo.SpaceProperties{
		ChunkID:     spaceID,
		Name:        fmt.Sprintf("%s (%s)", fam.Name, node.NodeType),
		Description: description,
		Brightness:  50,
		Terrain:     repo.TerrainNormal,
		Flags:       map[string]bool{},
	}

	placeContent(rng, fam, node, &props)

	props.Exits = synthesizeExits(ctx, node, g.nodes, rng)

	if err := g.placeTreasureRoomIfDue(ctx, rng, chunk, node, fam, &props); err != nil {
		return nil, err
	}

	if err := g.spaces.Save(ctx, props); err != nil {
		return nil, err
	}
	return &props, nil
}

// Spaces exposes the underlying space properties repository for callers
// (internal/world's dispatcher) that need to read or rewrite a materialized
// space directly, such as removing a taken item from its Items list.
func (g *Generator) Spaces() *repo.SpacePropertiesRepository {
	return g.spaces
}

// Nodes exposes the underlying graph node repository, e.g. for a new-game
// bootstrap that needs to find a freshly generated subzone's Hub node to
// pick a starting space.
func (g *Generator) Nodes() *repo.GraphNodeRepository {
	return g.nodes
}

// placeTreasureRoomIfDue rolls for a treasure room at the space's hop
// distance from the subzone's Hub entry, skipping if a sibling space in the
// same subzone already has one (spec §4.3).
func (g *Generator) placeTreasureRoomIfDue(
	ctx context.Context, rng interface{ IntN(int) int },
	chunk *repo.WorldChunk, node *repo.GraphNode, fam content.ThemeFamily, props *repo.SpaceProperties,
) error {
	siblings, err := g.nodes.FindByChunk(ctx, chunk.ParentID)
	if err != nil {
		return err
	}
	distance := hopDistance(siblings, node.ID)

	alreadyPlaced := false
	for _, sib := range siblings {
		if sib.ID == node.ID {
			continue
		}
		sp, err := g.spaces.FindByChunkID(ctx, sib.ID)
		if err != nil {
			return err
		}
		if sp != nil && sp.IsTreasureRoom {
			alreadyPlaced = true
			break
		}
	}

	if !maybePlaceTreasureRoom(rng, distance, alreadyPlaced) {
		return nil
	}

	props.IsTreasureRoom = true
	room := repo.TreasureRoom{SpaceID: node.ID, Type: "vault", BiomeTheme: fam.Name}
	for i := 0; i < 3; i++ {
		itemID, ok := content.PickWeighted(fam.LootTable, rng.IntN(1000))
		if !ok {
			continue
		}
		room.Pedestals = append(room.Pedestals, repo.Pedestal{
			ID: fmt.Sprintf("%s-pedestal-%d", node.ID, i), ItemTemplateID: itemID,
			State: repo.PedestalAvailable, PedestalIndex: i,
		})
	}
	return g.treasure.Save(ctx, room)
}

// hopDistance is a BFS hop count from the subzone's Hub node to targetID.
func hopDistance(nodes []*repo.GraphNode, targetID string) int {
	var entry *repo.GraphNode
	for _, n := range nodes {
		if n.NodeType == repo.NodeHub {
			entry = n
			break
		}
	}
	if entry == nil || len(nodes) == 0 {
		return 0
	}

	byID := make(map[string]*repo.GraphNode, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	visited := map[string]int{entry.ID: 0}
	queue := []string{entry.ID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == targetID {
			return visited[cur]
		}
		for _, e := range byID[cur].Edges {
			if _, seen := visited[e.TargetID]; !seen {
				visited[e.TargetID] = visited[cur] + 1
				queue = append(queue, e.TargetID)
			}
		}
	}
	if d, ok := visited[targetID]; ok {
		return d
	}
	return 0
}

func (g *Generator) appendChild(ctx context.Context, parent *repo.WorldChunk, childID string) error {
	for _, c := range parent.Children {
		if c == childID {
			return nil
		}
	}
	parent.Children = append(parent.Children, childID)
	sort.Strings(parent.Children)
	return g.chunks.Save(ctx, *parent)
}

func clampTier(tier int) int {
	if tier < 1 {
		return 1
	}
	if tier > 20 {
		return 20
	}
	return tier
}
