package cmdparse

// Outcome is the terminal result of a parse. Values are ordered by
// severity, CommandNotFound being the most severe.
type Outcome int

const (
	CommandNotFound Outcome = iota // command name absent from the line
	NotEnoughData                  // command found, too few data blocks
	InvalidData                    // blocks present, a value failed validation
	Ok                             // command found, all blocks present and valid
)

func (o Outcome) String() string {
	switch o {
	case CommandNotFound:
		return "command not found"
	case NotEnoughData:
		return "not enough data"
	case InvalidData:
		return "invalid data"
	case Ok:
		return "ok"
	default:
		return "unknown outcome"
	}
}

// Err maps a failing outcome to its sentinel error. Ok maps to nil.
func (o Outcome) Err() error {
	switch o {
	case Ok:
		return nil
	case CommandNotFound:
		return ErrCommandNotFound
	case NotEnoughData:
		return ErrNotEnoughData
	default:
		return ErrInvalidData
	}
}
