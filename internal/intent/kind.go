package intent

// Kind is the closed set of recognizable player intents (spec §4.5).
type Kind string

// The full closed set of intents.
const (
	Move         Kind = "Move"
	Look         Kind = "Look"
	Search       Kind = "Search"
	Interact     Kind = "Interact"
	Take         Kind = "Take"
	TakeAll      Kind = "TakeAll"
	Drop         Kind = "Drop"
	Give         Kind = "Give"
	Equip        Kind = "Equip"
	Unequip      Kind = "Unequip"
	Use          Kind = "Use"
	Attack       Kind = "Attack"
	Flee         Kind = "Flee"
	Talk         Kind = "Talk"
	Say          Kind = "Say"
	AskQuestion  Kind = "AskQuestion"
	Emote        Kind = "Emote"
	Persuade     Kind = "Persuade"
	Intimidate   Kind = "Intimidate"
	Check        Kind = "Check"
	UseSkill     Kind = "UseSkill"
	TrainSkill   Kind = "TrainSkill"
	ChoosePerk   Kind = "ChoosePerk"
	ViewSkills   Kind = "ViewSkills"
	Quests       Kind = "Quests"
	AcceptQuest  Kind = "AcceptQuest"
	AbandonQuest Kind = "AbandonQuest"
	ClaimReward  Kind = "ClaimReward"
	Inventory    Kind = "Inventory"
	Craft        Kind = "Craft"
	BuyItem      Kind = "BuyItem"
	SellItem     Kind = "SellItem"
	ListStock    Kind = "ListStock"
	Pickpocket   Kind = "Pickpocket"
	Plant        Kind = "Plant"
	Loot         Kind = "Loot"
	Save         Kind = "Save"
	Load         Kind = "Load"
	Help         Kind = "Help"
	Quit         Kind = "Quit"
	Unknown      Kind = "Unknown"
)

// knownKinds is the membership set used to re-validate layer 2's output
// (spec §4.5: "Layer 2 output is re-validated against the same domain
// rules as layer 1").
var knownKinds = map[Kind]bool{
	Move: true, Look: true, Search: true, Interact: true, Take: true,
	TakeAll: true, Drop: true, Give: true, Equip: true, Unequip: true,
	Use: true, Attack: true, Flee: true, Talk: true, Say: true,
	AskQuestion: true, Emote: true, Persuade: true, Intimidate: true,
	Check: true, UseSkill: true, TrainSkill: true, ChoosePerk: true,
	ViewSkills: true, Quests: true, AcceptQuest: true, AbandonQuest: true,
	ClaimReward: true, Inventory: true, Craft: true, BuyItem: true,
	SellItem: true, ListStock: true, Pickpocket: true, Plant: true,
	Loot: true, Save: true, Load: true, Help: true, Quit: true,
}

// Valid reports whether k is a member of the closed intent set (excluding
// Unknown, which is always a valid fallback but never a positive match).
func Valid(k Kind) bool {
	return knownKinds[k]
}
