package threetile

import (
	"github.com/vovakirdan/threetile/internal/games/threetile/core"
	"github.com/vovakirdan/threetile/internal/registry"
)

func init() {
	registry.Register("classic", "Classic (7 slots, match 3)", core.ClassicRules)
	registry.Register("vita", "Vita (4 slots, match 2)", core.VitaRules)
}
