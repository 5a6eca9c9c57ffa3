package setup

import (
	"math/rand"
	"time"

	"github.com/minaorangina/spades/deck"
	"github.com/minaorangina/spades/machine"
)

const (
	SelectVariant machine.Mode = "selectVariant"
	SelectLevel   machine.Mode = "selectLevel"
	Play          machine.Mode = "play"
)

const (
	MinLevel = 1
	MaxLevel = 5

	DefaultHandSize = 13
)

// VariantData is the data of the SelectVariant mode
type VariantData struct {
	Variants    []Variant `json:"variants"`
	Highlighted Variant   `json:"highlighted,omitempty"`
}

// LevelData is the data of the SelectLevel mode
type LevelData struct {
	Variant Variant `json:"variant"`
	Levels  []int   `json:"levels"`
}

// PlayData is the data of the Play mode
type PlayData struct {
	Variant Variant     `json:"variant"`
	Level   int         `json:"level"`
	Hand    []deck.Card `json:"hand"`
}

// Opts configures a setup machine
type Opts struct {
	HandSize int
	Rand     *rand.Rand
}

// Config returns the mode table of the new game flow:
// selectVariant -> selectLevel -> play.
func Config(opts Opts) machine.Config[any] {
	handSize := opts.HandSize
	if handSize < 1 || handSize > len(deck.New()) {
		handSize = DefaultHandSize
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	initialVariantData := func() *VariantData {
		return &VariantData{Variants: Variants()}
	}
	toVariantSelection := func(machine.State[any], any) machine.State[any] {
		return machine.State[any]{Mode: SelectVariant, Data: initialVariantData()}
	}

	return machine.Config[any]{
		InitialMode: SelectVariant,
		Modes: map[machine.Mode]machine.ModeConfig[any]{
			SelectVariant: {
				InitialData: initialVariantData(),
				Actions: map[string]machine.ActionFunc[any]{
					"highlight": highlight,
				},
				Transitions: map[string]machine.TransitionFunc[any]{
					"chooseVariant": chooseVariant,
				},
			},
			SelectLevel: {
				InitialData: &LevelData{Variant: Standard, Levels: levels()},
				Transitions: map[string]machine.TransitionFunc[any]{
					"chooseLevel": chooseLevel(handSize, rng),
					"back":        toVariantSelection,
				},
			},
			Play: {
				InitialData: &PlayData{Variant: Standard, Level: MinLevel},
				Actions: map[string]machine.ActionFunc[any]{
					"sortHand": sortHand,
				},
				Transitions: map[string]machine.TransitionFunc[any]{
					"quit": toVariantSelection,
				},
			},
		},
	}
}

// New constructs a setup machine in the SelectVariant mode
func New(opts Opts) (*machine.Controller[any], error) {
	return machine.New(Config(opts))
}

func highlight(data any, payload any) any {
	current := data.(*VariantData)

	v, ok := ParseVariant(payload)
	if !ok || v == current.Highlighted {
		return current
	}

	return &VariantData{Variants: current.Variants, Highlighted: v}
}

func chooseVariant(s machine.State[any], payload any) machine.State[any] {
	v, ok := ParseVariant(payload)
	if !ok {
		return s
	}

	return machine.State[any]{
		Mode: SelectLevel,
		Data: &LevelData{Variant: v, Levels: levels()},
	}
}

func chooseLevel(handSize int, rng *rand.Rand) machine.TransitionFunc[any] {
	return func(s machine.State[any], payload any) machine.State[any] {
		level, ok := toInt(payload)
		if !ok || level < MinLevel || level > MaxLevel {
			return s
		}

		d := deck.New()
		d.Shuffle(rng)

		return machine.State[any]{
			Mode: Play,
			Data: &PlayData{
				Variant: s.Data.(*LevelData).Variant,
				Level:   level,
				Hand:    d.Deal(handSize),
			},
		}
	}
}

func sortHand(data any, _ any) any {
	current := data.(*PlayData)
	if deck.IsSorted(current.Hand) {
		return current
	}

	return &PlayData{
		Variant: current.Variant,
		Level:   current.Level,
		Hand:    deck.Sorted(current.Hand),
	}
}

func levels() []int {
	ls := []int{}
	for l := MinLevel; l <= MaxLevel; l++ {
		ls = append(ls, l)
	}
	return ls
}
