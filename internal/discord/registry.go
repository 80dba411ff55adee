package discord

// PlayerCommands are available to everyone in the allowed channels
func PlayerCommands() []CommandFactory {
	return []CommandFactory{
		PingCommand,
		HelpCommand,
		RegionsCommand,
		BetCommand,
		BetsCommand,
		ResultsCommand,
		ScoreCommand,
		LeaderboardCommand,
	}
}

// ModeratorCommands are refused unless the caller is a configured moderator
func ModeratorCommands() []CommandFactory {
	return []CommandFactory{
		SetResultCommand,
		RescoreCommand,
		PlacedCommand,
		ReloadRegionsCommand,
	}
}

// RegisterAll adds every command to the bot's registry
func (b *Bot) RegisterAll() {
	for _, factory := range PlayerCommands() {
		b.Registry.Register(factory())
	}
	for _, factory := range ModeratorCommands() {
		b.Registry.RegisterModerator(factory())
	}
}
