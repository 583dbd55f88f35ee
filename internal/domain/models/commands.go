package models

import "strings"

// CommandType enumerates the chat commands understood by the dispatcher.
type CommandType string

const (
	CommandBroilers     CommandType = "broilers"
	CommandSoldBroilers CommandType = "soldbroilers"
	CommandLayers       CommandType = "layers"
	CommandSoldLayers   CommandType = "soldlayers"
	CommandEggs         CommandType = "eggs"
	CommandSoldEggs     CommandType = "soldeggs"
	CommandDamagedEggs  CommandType = "damagedeggs"
	CommandProfile      CommandType = "profile"
	CommandReport       CommandType = "report"
	CommandHelp         CommandType = "help"
	CommandUnknown      CommandType = "unknown"
)

var knownCommands = map[string]CommandType{
	string(CommandBroilers):     CommandBroilers,
	string(CommandSoldBroilers): CommandSoldBroilers,
	string(CommandLayers):       CommandLayers,
	string(CommandSoldLayers):   CommandSoldLayers,
	string(CommandEggs):         CommandEggs,
	string(CommandSoldEggs):     CommandSoldEggs,
	string(CommandDamagedEggs):  CommandDamagedEggs,
	string(CommandProfile):      CommandProfile,
	string(CommandReport):       CommandReport,
	string(CommandHelp):         CommandHelp,
}

// Command represents a parsed worker instruction extracted from chat text.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// IsSlashCommand reports whether the text looks like an explicit command.
func IsSlashCommand(message string) bool {
	return strings.HasPrefix(strings.TrimSpace(message), "/")
}

// ParseCommand derives a Command instance from free-form text messages.
// Arguments keep their original casing so breed names survive untouched.
func ParseCommand(message string) Command {
	tokens := strings.Fields(message)
	cmd := Command{Type: CommandUnknown, Raw: message}

	if len(tokens) == 0 {
		return cmd
	}

	head := strings.ToLower(strings.TrimPrefix(tokens[0], "/"))
	if t, ok := knownCommands[head]; ok {
		cmd.Type = t
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}
