// Package all registers every contest with the registry.
// Import it for side effects.
package all

import (
	// Import contests to register them
	_ "github.com/vovakirdan/tui-duel/internal/games/balancing"
	_ "github.com/vovakirdan/tui-duel/internal/games/dodging"
	_ "github.com/vovakirdan/tui-duel/internal/games/flapping"
	_ "github.com/vovakirdan/tui-duel/internal/games/jumprope"
	_ "github.com/vovakirdan/tui-duel/internal/games/levitation"
	_ "github.com/vovakirdan/tui-duel/internal/games/parachute"
	_ "github.com/vovakirdan/tui-duel/internal/games/rollerskates"
	_ "github.com/vovakirdan/tui-duel/internal/games/stirring"
	_ "github.com/vovakirdan/tui-duel/internal/games/swearing"
	_ "github.com/vovakirdan/tui-duel/internal/games/traffic"
	_ "github.com/vovakirdan/tui-duel/internal/games/umbrella"
)
