package rules

const (
	// DeathCauseObstacleCollision is when the player runs into an obstacle block
	DeathCauseObstacleCollision = "obstacle-collision"
	// DeathCauseWallCollision is when the player runs off the board with border wrap off
	DeathCauseWallCollision = "wall-collision"
	// DeathCauseEnemyCollision is when the player head lands on any enemy segment
	DeathCauseEnemyCollision = "enemy-collision"
	// DeathCauseSelfCollision is when the player head lands on its own body
	DeathCauseSelfCollision = "self-collision"
	// DeathCauseStarvation is when the player loses its last tail segment
	DeathCauseStarvation = "starvation"
)
