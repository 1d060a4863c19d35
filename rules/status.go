package rules

var (
	// GameStatusStopped represents a game that was created but not started
	GameStatusStopped = "stopped"
	// GameStatusRunning represents a running game
	GameStatusRunning = "running"
	// GameStatusError represents a game that ended because of an error
	GameStatusError = "error"
	// GameStatusComplete represents a game whose session was ended by the player
	GameStatusComplete = "complete"
)

// Input types accepted by ApplyInput.
const (
	InputMove     = "move"
	InputToggle   = "toggle"
	InputSettings = "settings"
	InputQuit     = "quit"
)
