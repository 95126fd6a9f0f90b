package command

// ParsedCommand is a line of text turned into an argument list and its
// wire encoding.
type ParsedCommand struct {
	Text         string      // original input text
	Name         string      // upper-cased command name, empty if none
	Args         []string    // command arguments as typed, empty if none
	Arguments    *Arguments  // argument list, nil when Name is empty
	CommandBytes []byte      // RESP encoding of Arguments
	Modifier     string      // codec name e.g. "gzip", empty if none
	Pipe         string      // shell command after "|", empty if none
	Doc          *CommandDoc // documentation, nil if not found
}

// CommandDoc documents a single Redis command. Arity follows the COMMAND
// reply convention: it counts the command name, positive means exact and
// negative means at least |Arity|. Zero disables the check.
type CommandDoc struct {
	Command   string `json:"command"`
	Summary   string `json:"summary"`
	Arguments string `json:"arguments"`
	Since     string `json:"since"`
	Group     string `json:"group"`
	Arity     int64  `json:"arity"`
}
